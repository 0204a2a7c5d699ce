package carousel

// SnapResolver decides which slide a released gesture settles on.
type SnapResolver struct{}

// Resolve returns the next active index. An ineligible gesture snaps back
// to activeIndex. An eligible one moves a single step: a negative offset
// advances to the next slide, a positive offset returns to the previous
// one. The result is always within [0, length-1]; there is no wraparound.
func (SnapResolver) Resolve(activeIndex int, dragOffsetPercent float64, eligible bool, length int) int {
	idx := clampIndex(activeIndex, length)
	if !eligible {
		return idx
	}
	switch {
	case dragOffsetPercent < 0:
		idx++
	case dragOffsetPercent > 0:
		idx--
	}
	return clampIndex(idx, length)
}
