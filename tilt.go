package carousel

import "math"

const (
	defaultTiltFactor      = 0.05 // degrees per pixel of pointer offset
	defaultParallaxDivisor = 30.0
	defaultTiltRadius      = 0.5
)

// TiltConfig tunes a TiltAnimator. Zero fields take their defaults.
type TiltConfig struct {
	Factor          float64 `yaml:"factor,omitempty"`
	ParallaxDivisor float64 `yaml:"parallaxDivisor,omitempty"`
	// Radius is the largest |position| at which a slide responds to the
	// pointer. Only the centered slide qualifies by default.
	Radius float64 `yaml:"radius,omitempty"`
}

func (c TiltConfig) withDefaults() TiltConfig {
	if c.Factor == 0 {
		c.Factor = defaultTiltFactor
	}
	if c.ParallaxDivisor == 0 {
		c.ParallaxDivisor = defaultParallaxDivisor
	}
	if c.Radius <= 0 {
		c.Radius = defaultTiltRadius
	}
	return c
}

// PointerOffset is the pointer's distance from a slide's center, in pixels.
type PointerOffset struct {
	DX, DY float64
}

// Tilt is the per-frame output of a TiltAnimator.
type Tilt struct {
	RotateX   float64 // degrees about the horizontal axis
	RotateY   float64 // degrees about the vertical axis
	ParallaxX float64 // pixels
	ParallaxY float64 // pixels
}

// BoundsFunc reports a slide's current on-screen bounds, or false when the
// slide is not laid out. It is queried on every pointer move.
type BoundsFunc func() (Rect, bool)

// TiltAnimator drives the pointer-follow tilt for one slide. Pointer moves
// only record an offset; the frame loop turns the latest offset into a Tilt
// and hands it to the publish callback once per frame until Stop.
type TiltAnimator struct {
	cfg     TiltConfig
	sched   *FrameScheduler
	bounds  BoundsFunc
	publish func(Tilt)

	offset  PointerOffset
	handle  FrameHandle
	running bool
	frameFn func(float64)
}

// NewTiltAnimator creates an animator that ticks on sched and writes each
// frame's Tilt to publish. The loop does not run until Start.
func NewTiltAnimator(sched *FrameScheduler, bounds BoundsFunc, publish func(Tilt), cfg TiltConfig) *TiltAnimator {
	a := &TiltAnimator{
		cfg:     cfg.withDefaults(),
		sched:   sched,
		bounds:  bounds,
		publish: publish,
	}
	a.frameFn = a.tick
	return a
}

// Start schedules the frame loop. Calling Start on a running animator is a
// no-op.
func (a *TiltAnimator) Start() {
	if a.running || a.sched == nil {
		return
	}
	a.running = true
	a.handle = a.sched.RequestFrame(a.frameFn)
}

// Stop cancels the outstanding frame callback. No Tilt is published after
// Stop returns.
func (a *TiltAnimator) Stop() {
	if !a.running {
		return
	}
	a.running = false
	a.handle.Cancel()
	a.handle = FrameHandle{}
}

// Running reports whether the frame loop is scheduled.
func (a *TiltAnimator) Running() bool { return a.running }

// Offset returns the latest recorded pointer offset.
func (a *TiltAnimator) Offset() PointerOffset { return a.offset }

// PointerMove records the pointer at (px, py) relative to the slide's
// center. Slides outside the tilt radius, and slides without bounds, ignore
// the move.
func (a *TiltAnimator) PointerMove(px, py, position float64) {
	if math.Abs(position) > a.cfg.Radius {
		return
	}
	if a.bounds == nil {
		return
	}
	r, ok := a.bounds()
	if !ok {
		return
	}
	cx, cy := r.Center()
	a.offset = PointerOffset{DX: px - cx, DY: py - cy}
}

// PointerLeave relaxes the tilt back to neutral.
func (a *TiltAnimator) PointerLeave() {
	a.offset = PointerOffset{}
}

// Current returns the Tilt for the latest offset without waiting a frame.
func (a *TiltAnimator) Current() Tilt {
	o := a.offset
	return Tilt{
		RotateX:   o.DY * a.cfg.Factor,
		RotateY:   o.DX * -a.cfg.Factor,
		ParallaxX: o.DX / a.cfg.ParallaxDivisor,
		ParallaxY: o.DY / a.cfg.ParallaxDivisor,
	}
}

func (a *TiltAnimator) tick(float64) {
	if !a.running {
		return
	}
	if a.publish != nil {
		if a.bounds == nil {
			a.publish(a.Current())
		} else if _, ok := a.bounds(); ok {
			a.publish(a.Current())
		}
	}
	// publish may have stopped the loop.
	if a.running {
		a.handle = a.sched.RequestFrame(a.frameFn)
	}
}
