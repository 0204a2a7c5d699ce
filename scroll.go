package carousel

// ScrollOracle is a scroll-snap carousel that reports its own progress.
// Only the reported values are used; how the oracle scrolls is its own
// business.
type ScrollOracle interface {
	// ScrollProgress returns the scroll position in [0, 1].
	ScrollProgress() float64
	// ScrollSnapList returns each slide's snap point in the same units.
	ScrollSnapList() []float64
	// SelectedScrollSnap returns the index of the selected snap point.
	SelectedScrollSnap() int
	CanScrollPrev() bool
	CanScrollNext() bool
}

// ScrollPositions appends one position per slide, derived from the oracle's
// progress and snap list, to dst. Slides without a snap point sit at 0.
func ScrollPositions(o ScrollOracle, n int, dst []float64) []float64 {
	progress := o.ScrollProgress()
	snaps := o.ScrollSnapList()
	for i := 0; i < n; i++ {
		var snap float64
		if i < len(snaps) {
			snap = snaps[i]
		}
		dst = append(dst, -(snap - progress))
	}
	return dst
}

// MapScroll appends a SlideTransform for every slide using positions read
// from the oracle and the given mapper. Slides outside cullRadius are
// skipped; a cullRadius <= 0 keeps every slide.
func MapScroll(o ScrollOracle, slides []Slide, m PositionMapper, cullRadius float64, dst []SlideTransform) []SlideTransform {
	var buf [16]float64
	positions := ScrollPositions(o, len(slides), buf[:0])
	for i, p := range positions {
		if cullRadius > 0 && (p > cullRadius || p < -cullRadius) {
			continue
		}
		dst = append(dst, SlideTransform{
			Index:     i,
			Slide:     slides[i],
			Position:  p,
			Transform: m.Map(p),
		})
	}
	return dst
}

// EngineScroll presents an Engine as a ScrollOracle with evenly spaced snap
// points, so the continuous mapper can be driven by gesture input when no
// external scroll-snap carousel is present.
type EngineScroll struct {
	engine *Engine
	snaps  []float64
}

// NewEngineScroll wraps e.
func NewEngineScroll(e *Engine) *EngineScroll {
	n := e.Len()
	snaps := make([]float64, n)
	if n > 1 {
		for i := range snaps {
			snaps[i] = float64(i) / float64(n-1)
		}
	}
	return &EngineScroll{engine: e, snaps: snaps}
}

// ScrollProgress implements ScrollOracle. The live drag offset is included.
func (s *EngineScroll) ScrollProgress() float64 {
	n := s.engine.Len()
	if n <= 1 {
		return 0
	}
	st := s.engine.State()
	p := (float64(st.ActiveIndex) + st.DragOffsetPercent) / float64(n-1)
	switch {
	case p < 0:
		return 0
	case p > 1:
		return 1
	}
	return p
}

// ScrollSnapList implements ScrollOracle.
func (s *EngineScroll) ScrollSnapList() []float64 { return s.snaps }

// SelectedScrollSnap implements ScrollOracle.
func (s *EngineScroll) SelectedScrollSnap() int { return s.engine.ActiveIndex() }

// CanScrollPrev implements ScrollOracle.
func (s *EngineScroll) CanScrollPrev() bool { return s.engine.CanScrollPrev() }

// CanScrollNext implements ScrollOracle.
func (s *EngineScroll) CanScrollNext() bool { return s.engine.CanScrollNext() }
