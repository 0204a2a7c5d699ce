package carousel

// frameCallback is a one-shot callback waiting for the next tick.
type frameCallback struct {
	id uint32
	fn func(dt float64)
}

// FrameScheduler runs one-shot callbacks on the next display frame, the
// way a browser's animation-frame queue does. The host calls Tick once per
// frame; a callback that wants to keep running requests itself again.
//
// There is no global scheduler; each Stage owns one.
type FrameScheduler struct {
	queue  []frameCallback
	run    []frameCallback
	nextID uint32
}

// FrameHandle identifies a pending frame callback.
type FrameHandle struct {
	id    uint32
	sched *FrameScheduler
}

// Valid reports whether the handle was returned by RequestFrame.
func (h FrameHandle) Valid() bool {
	return h.sched != nil && h.id != 0
}

// Cancel removes the callback if it has not run yet. Cancelling an expired
// or zero handle is a no-op.
func (h FrameHandle) Cancel() {
	if h.sched == nil {
		return
	}
	h.sched.cancel(h.id)
}

// RequestFrame schedules fn to run on the next Tick. Callbacks requested
// from inside a running callback wait for the tick after that.
func (s *FrameScheduler) RequestFrame(fn func(dt float64)) FrameHandle {
	s.nextID++
	if s.nextID == 0 {
		s.nextID = 1
	}
	s.queue = append(s.queue, frameCallback{id: s.nextID, fn: fn})
	return FrameHandle{id: s.nextID, sched: s}
}

// Pending returns the number of callbacks waiting for the next tick.
func (s *FrameScheduler) Pending() int {
	return len(s.queue)
}

// Tick runs every callback that was pending when it was called.
func (s *FrameScheduler) Tick(dt float64) {
	if len(s.queue) == 0 {
		return
	}
	s.run, s.queue = s.queue, s.run[:0]
	for i := range s.run {
		// A callback earlier in this batch may have cancelled this one.
		if s.run[i].fn == nil {
			continue
		}
		s.run[i].fn(dt)
	}
	clear(s.run)
	s.run = s.run[:0]
}

func (s *FrameScheduler) cancel(id uint32) {
	s.queue = removeHandler(s.queue, func(c frameCallback) bool { return c.id == id })
	for i := range s.run {
		if s.run[i].id == id {
			s.run[i].fn = nil
		}
	}
}
