package carousel

// syntheticPointerEvent is one queued pointer sample in screen coordinates.
// Each event is consumed by a single frame.
type syntheticPointerEvent struct {
	screenX, screenY float64
	pressed          bool
	button           MouseButton
}

func (s *Stage) inject(x, y float64, pressed bool) {
	s.injectQueue = append(s.injectQueue, syntheticPointerEvent{
		screenX: x,
		screenY: y,
		pressed: pressed,
		button:  MouseButtonLeft,
	})
}

// InjectPress queues a primary-button press at (x, y).
func (s *Stage) InjectPress(x, y float64) { s.inject(x, y, true) }

// InjectMove queues a pointer sample with the button still held. Between a
// press and a release it drives the drag.
func (s *Stage) InjectMove(x, y float64) { s.inject(x, y, true) }

// InjectHover queues a pointer sample with no button held, which feeds the
// tilt of the card under it.
func (s *Stage) InjectHover(x, y float64) { s.inject(x, y, false) }

// InjectRelease queues a release at (x, y).
func (s *Stage) InjectRelease(x, y float64) { s.inject(x, y, false) }

// InjectClick queues a press and a release at the same point. Clicks never
// change the active slide; they surface through Engine.OnGesture.
func (s *Stage) InjectClick(x, y float64) {
	s.InjectPress(x, y)
	s.InjectRelease(x, y)
}

// InjectDrag queues a press at the start point, frames-2 evenly spaced
// moves, and a release at the end point, one event per frame. Fewer than
// two frames is treated as two.
func (s *Stage) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	frames = max(frames, 2)
	s.InjectPress(fromX, fromY)
	for i := 1; i < frames-1; i++ {
		t := float64(i) / float64(frames-1)
		s.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	s.InjectRelease(toX, toY)
}

// InjectSwipe queues a horizontal drag through the container center that
// covers fraction of the container width. Positive fractions move the
// pointer right, which advances to the next slide once past the snap
// distance.
func (s *Stage) InjectSwipe(fraction float64, frames int) {
	c := s.Container()
	cx, cy := c.Center()
	half := fraction * c.Width / 2
	s.InjectDrag(cx-half, cy, cx+half, cy, frames)
}

// processInjectedInput feeds the oldest queued event through processPointer
// and reports whether one was consumed. Real input is skipped for that
// frame.
func (s *Stage) processInjectedInput() bool {
	if len(s.injectQueue) == 0 {
		return false
	}
	evt := s.injectQueue[0]
	s.injectQueue = append(s.injectQueue[:0], s.injectQueue[1:]...)
	s.processPointer(evt.screenX, evt.screenY, evt.pressed, evt.button)
	return true
}
