package carousel

import "math"

// Classification is the outcome of a completed pointer gesture.
type Classification uint8

const (
	ClassNone  Classification = iota // no gesture was in progress
	ClassClick                       // movement stayed within the drag threshold
	ClassDrag                        // movement exceeded the drag threshold
)

// String returns a lowercase name for the classification.
func (c Classification) String() string {
	switch c {
	case ClassClick:
		return "click"
	case ClassDrag:
		return "drag"
	default:
		return "none"
	}
}

// GestureSession tracks a single press-move-release sequence. It is created
// on pointer down and discarded on pointer up.
type GestureSession struct {
	StartX               float64
	StartTimestamp       float64 // milliseconds
	CurrentX             float64
	HasExceededThreshold bool
}

// GestureResult is returned when a gesture ends.
type GestureResult struct {
	Classification Classification
	Flick          bool
	Velocity       float64 // px/ms; zero for clicks
	Offset         float64 // drag offset fraction at release
	Eligible       bool    // whether the gesture may change the active index
}

// minGestureElapsed bounds the velocity denominator so a release in the
// same millisecond as the press never divides by zero.
const minGestureElapsed = 1.0

// GestureController is the pointer state machine. It turns raw horizontal
// pointer coordinates into a drag offset fraction and, on release, a
// classification. The zero value is not usable; create one with
// NewGestureController.
type GestureController struct {
	cfg     Config
	session *GestureSession
	offset  float64
}

// NewGestureController creates a controller using the thresholds in cfg.
// Zero fields in cfg take their defaults.
func NewGestureController(cfg Config) *GestureController {
	return &GestureController{cfg: cfg.withDefaults()}
}

// Session returns a copy of the in-flight session and whether one exists.
func (g *GestureController) Session() (GestureSession, bool) {
	if g.session == nil {
		return GestureSession{}, false
	}
	return *g.session, true
}

// Dragging reports whether the current session has crossed the threshold.
func (g *GestureController) Dragging() bool {
	return g.session != nil && g.session.HasExceededThreshold
}

// Offset returns the most recent drag offset fraction.
func (g *GestureController) Offset() float64 {
	return g.offset
}

// Start begins a new session at x, replacing any session still in flight.
func (g *GestureController) Start(x, t float64) {
	g.session = &GestureSession{
		StartX:         x,
		StartTimestamp: t,
		CurrentX:       x,
	}
	g.offset = 0
}

// Abort discards the in-flight session without classifying it.
func (g *GestureController) Abort() {
	g.session = nil
	g.offset = 0
}

// Move records a pointer position and returns the drag offset fraction of
// the container width. Until movement exceeds the drag threshold the
// previous offset is returned unchanged, which lets a tap pass through as a
// click. Dragging past the first or last slide is damped by the edge
// resistance factor.
func (g *GestureController) Move(x, t, containerWidth float64, activeIndex, length int) float64 {
	s := g.session
	if s == nil {
		return g.offset
	}
	s.CurrentX = x

	if !s.HasExceededThreshold {
		if math.Abs(x-s.StartX) <= g.cfg.DragThreshold {
			return g.offset
		}
		s.HasExceededThreshold = true
	}

	if !(containerWidth > 0) || math.IsInf(containerWidth, 0) {
		return g.offset
	}

	dragPercent := -(x - s.StartX) / containerWidth
	last := length - 1
	if (activeIndex <= 0 && dragPercent > 0) || (activeIndex >= last && dragPercent < 0) {
		dragPercent *= g.cfg.EdgeResistance
	}
	g.offset = dragPercent
	return g.offset
}

// End closes the session at time t (milliseconds) and classifies it.
func (g *GestureController) End(t float64) GestureResult {
	s := g.session
	if s == nil {
		return GestureResult{}
	}
	offset := g.offset
	g.session = nil
	g.offset = 0

	if !s.HasExceededThreshold {
		return GestureResult{Classification: ClassClick}
	}

	elapsed := t - s.StartTimestamp
	if !(elapsed >= minGestureElapsed) {
		elapsed = minGestureElapsed
	}
	velocity := math.Abs(s.CurrentX-s.StartX) / elapsed
	flick := velocity > g.cfg.FlickVelocity

	return GestureResult{
		Classification: ClassDrag,
		Flick:          flick,
		Velocity:       velocity,
		Offset:         offset,
		Eligible:       flick || math.Abs(offset) > g.cfg.SnapDistance,
	}
}
