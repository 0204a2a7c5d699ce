package carousel

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// --- Per-pointer state ---

type pointerState struct {
	down    bool
	button  MouseButton // button captured at press time
	lastX   float64
	lastY   float64
	inside  bool  // last position was inside the container
	hover   *card // card under the pointer, for tilt
	started bool  // press began inside the container
}

// --- Input processing ---

// processInput is called from Stage.Update to handle mouse and touch input.
// Injected events take priority; while any are queued, real input is
// ignored for that frame.
func (s *Stage) processInput() {
	if s.processInjectedInput() {
		return
	}
	if s.processTouchPointer() {
		return
	}
	s.processMousePointer()
}

// processMousePointer feeds the cursor through the pointer state machine.
func (s *Stage) processMousePointer() {
	mx, my := ebiten.CursorPosition()

	// Detect which button is pressed. A press already in progress keeps the
	// button it started with.
	var pressed bool
	var button MouseButton
	left := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	right := ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	middle := ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle)

	if left || right || middle {
		pressed = true
		switch {
		case left:
			button = MouseButtonLeft
		case right:
			button = MouseButtonRight
		default:
			button = MouseButtonMiddle
		}
	}

	s.processPointer(float64(mx), float64(my), pressed, button)
}

// processTouchPointer tracks the first active touch. It reports whether a
// touch was handled this frame, in which case mouse input is skipped.
func (s *Stage) processTouchPointer() bool {
	touchIDs := ebiten.AppendTouchIDs(s.prevTouchIDs[:0])
	s.prevTouchIDs = touchIDs

	if s.touchActive {
		for _, tid := range touchIDs {
			if tid == s.touchID {
				tx, ty := ebiten.TouchPosition(tid)
				s.processPointer(float64(tx), float64(ty), true, MouseButtonLeft)
				return true
			}
		}
		// The tracked touch lifted.
		s.touchActive = false
		s.processPointer(s.pointer.lastX, s.pointer.lastY, false, MouseButtonLeft)
		return true
	}

	if len(touchIDs) == 0 {
		return false
	}
	s.touchID = touchIDs[0]
	s.touchActive = true
	tx, ty := ebiten.TouchPosition(s.touchID)
	s.processPointer(float64(tx), float64(ty), true, MouseButtonLeft)
	return true
}

// processPointer runs the pointer state machine for one sample.
func (s *Stage) processPointer(x, y float64, pressed bool, button MouseButton) {
	ps := &s.pointer
	t := s.now()
	cont := s.Container()
	inside := cont.Contains(x, y)
	moved := x != ps.lastX || y != ps.lastY

	s.updateHover(x, y)

	switch {
	case pressed && !ps.down:
		// Just pressed. Only presses inside the container start gestures.
		ps.down = true
		ps.button = button
		ps.started = inside
		if inside {
			s.engine.PointerDown(x, t, button)
		}
	case !pressed && ps.down:
		// Just released.
		if ps.started {
			s.engine.PointerUp(t)
		}
		ps.down = false
		ps.started = false
	case pressed && ps.down:
		if ps.started && moved {
			s.engine.PointerMove(x, t, cont.Width)
		}
		if ps.started && !inside && ps.inside {
			// Leaving the container ends a drag in progress.
			s.engine.PointerLeave(t)
		}
	}

	ps.lastX, ps.lastY = x, y
	ps.inside = inside
}

// updateHover routes the pointer to the tilt animator of the card under it
// and relaxes the tilt of the card it left.
func (s *Stage) updateHover(x, y float64) {
	ps := &s.pointer
	target := s.hitCard(x, y)
	if target != ps.hover {
		if ps.hover != nil && ps.hover.tilt != nil {
			ps.hover.tilt.PointerLeave()
		}
		ps.hover = target
	}
	if target != nil && target.tilt != nil {
		target.tilt.PointerMove(x, y, target.position)
	}
}
