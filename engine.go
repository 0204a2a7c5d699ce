package carousel

import "math"

// --- Defaults ---

const (
	defaultStartIndex     = 1
	defaultDragThreshold  = 10.0 // pixels
	defaultEdgeResistance = 0.2
	defaultFlickVelocity  = 0.5 // px/ms
	defaultSnapDistance   = 0.15
	defaultCullRadius     = 1.5
)

// Config tunes an Engine. Zero-valued fields take their defaults, so the
// zero Config is ready to use.
type Config struct {
	// StartIndex is the slide shown first. Out-of-range values are clamped.
	// A nil pointer selects the second slide.
	StartIndex *int `yaml:"startIndex,omitempty"`

	Policy MapperPolicy `yaml:"policy,omitempty"`

	DragThreshold  float64 `yaml:"dragThreshold,omitempty"`  // pixels before a press becomes a drag
	EdgeResistance float64 `yaml:"edgeResistance,omitempty"` // overscroll damping at the ends
	FlickVelocity  float64 `yaml:"flickVelocity,omitempty"`  // px/ms above which a release is a flick
	SnapDistance   float64 `yaml:"snapDistance,omitempty"`   // drag fraction that changes slide without a flick
	CullRadius     float64 `yaml:"cullRadius,omitempty"`     // |position| beyond which slides are not rendered
}

// withDefaults returns a copy of c with zero fields filled in.
func (c Config) withDefaults() Config {
	if c.DragThreshold <= 0 {
		c.DragThreshold = defaultDragThreshold
	}
	if c.EdgeResistance <= 0 {
		c.EdgeResistance = defaultEdgeResistance
	}
	if c.FlickVelocity <= 0 {
		c.FlickVelocity = defaultFlickVelocity
	}
	if c.SnapDistance <= 0 {
		c.SnapDistance = defaultSnapDistance
	}
	if c.CullRadius <= 0 {
		c.CullRadius = defaultCullRadius
	}
	return c
}

// Index returns a pointer to i, for use with Config.StartIndex.
func Index(i int) *int { return &i }

// --- State ---

// State is the engine's navigation state. DragOffsetPercent is only
// nonzero while IsDragging is true.
type State struct {
	ActiveIndex       int
	DragOffsetPercent float64
	IsDragging        bool
}

// IndexChange is passed to OnChange callbacks.
type IndexChange struct {
	Previous int
	Current  int
}

// SlideTransform pairs a slide with its relative position and transform.
type SlideTransform struct {
	Index     int
	Slide     Slide
	Position  float64
	Transform Transform
}

// Event is delivered to an EventSink.
type Event struct {
	Type     EventType
	Index    int
	Previous int
	Result   GestureResult
}

// EventSink receives engine events. Set one with Engine.SetEventSink to
// forward navigation into another system, such as an ECS world.
type EventSink interface {
	EmitEvent(event Event)
}

// --- Handler registry ---

type changeHandler struct {
	id uint32
	fn func(IndexChange)
}

type gestureHandler struct {
	id uint32
	fn func(GestureResult)
}

type handlerRegistry struct {
	change  []changeHandler
	gesture []gestureHandler
	nextID  uint32
}

type handlerKind uint8

const (
	handlerChange handlerKind = iota
	handlerGesture
)

// CallbackHandle allows removing a registered callback.
type CallbackHandle struct {
	id   uint32
	reg  *handlerRegistry
	kind handlerKind
}

// Remove unregisters this callback so it no longer fires.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	switch h.kind {
	case handlerChange:
		h.reg.change = removeHandler(h.reg.change, func(c changeHandler) bool { return c.id == h.id })
	case handlerGesture:
		h.reg.gesture = removeHandler(h.reg.gesture, func(c gestureHandler) bool { return c.id == h.id })
	}
}

func removeHandler[T any](s []T, match func(T) bool) []T {
	for i := range s {
		if match(s[i]) {
			var zero T
			copy(s[i:], s[i+1:])
			s[len(s)-1] = zero
			return s[:len(s)-1]
		}
	}
	return s
}

// --- Engine ---

// Engine owns the carousel state. It feeds pointer input through a
// GestureController, commits releases through a SnapResolver and exposes a
// Transform for every slide inside the culling window.
//
// Engine is not safe for concurrent use; drive it from a single update loop.
type Engine struct {
	slides   []Slide
	cfg      Config
	mapper   PositionMapper
	gesture  *GestureController
	resolver SnapResolver
	state    State
	handlers handlerRegistry
	sink     EventSink
}

// NewEngine creates an engine over slides. The slice is copied.
func NewEngine(slides []Slide, cfg Config) (*Engine, error) {
	if len(slides) == 0 {
		return nil, ErrNoSlides
	}
	cfg = cfg.withDefaults()
	start := defaultStartIndex
	if cfg.StartIndex != nil {
		start = *cfg.StartIndex
	}
	e := &Engine{
		slides:  append([]Slide(nil), slides...),
		cfg:     cfg,
		mapper:  NewMapper(cfg.Policy),
		gesture: NewGestureController(cfg),
	}
	e.state.ActiveIndex = clampIndex(start, len(slides))
	return e, nil
}

// Len returns the number of slides.
func (e *Engine) Len() int { return len(e.slides) }

// Slides returns the engine's slides. The returned slice MUST NOT be mutated.
func (e *Engine) Slides() []Slide { return e.slides }

// Config returns the engine configuration with defaults applied.
func (e *Engine) Config() Config { return e.cfg }

// Mapper returns the engine's position mapper.
func (e *Engine) Mapper() PositionMapper { return e.mapper }

// State returns a snapshot of the navigation state.
func (e *Engine) State() State { return e.state }

// ActiveIndex returns the settled slide index.
func (e *Engine) ActiveIndex() int { return e.state.ActiveIndex }

// Gesture returns the engine's gesture controller.
func (e *Engine) Gesture() *GestureController { return e.gesture }

// SetEventSink sets the optional event sink.
func (e *Engine) SetEventSink(sink EventSink) { e.sink = sink }

// OnChange registers a callback fired after the active index changes.
func (e *Engine) OnChange(fn func(IndexChange)) CallbackHandle {
	e.handlers.nextID++
	id := e.handlers.nextID
	e.handlers.change = append(e.handlers.change, changeHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &e.handlers, kind: handlerChange}
}

// OnGesture registers a callback fired whenever a gesture ends, including
// clicks. Clicks never navigate on their own; this is the hook for attaching
// an action to them.
func (e *Engine) OnGesture(fn func(GestureResult)) CallbackHandle {
	e.handlers.nextID++
	id := e.handlers.nextID
	e.handlers.gesture = append(e.handlers.gesture, gestureHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &e.handlers, kind: handlerGesture}
}

// --- Pointer input ---

// PointerDown starts a gesture at x (pixels) and t (milliseconds). Only the
// primary button starts a gesture. A press while a previous gesture is
// still open aborts that gesture without navigating.
func (e *Engine) PointerDown(x, t float64, button MouseButton) {
	if button != MouseButtonLeft {
		return
	}
	if _, ok := e.gesture.Session(); ok {
		e.gesture.Abort()
		e.state.DragOffsetPercent = 0
		e.state.IsDragging = false
	}
	e.gesture.Start(x, t)
}

// PointerMove updates the live drag offset. containerWidth is the current
// width of the rendering container and is read on every call.
func (e *Engine) PointerMove(x, t, containerWidth float64) {
	if _, ok := e.gesture.Session(); !ok {
		return
	}
	off := e.gesture.Move(x, t, containerWidth, e.state.ActiveIndex, len(e.slides))
	e.state.DragOffsetPercent = off
	e.state.IsDragging = e.gesture.Dragging()
}

// PointerUp ends the gesture at t and commits its result. Releases with no
// open gesture return a zero GestureResult.
func (e *Engine) PointerUp(t float64) GestureResult {
	if _, ok := e.gesture.Session(); !ok {
		return GestureResult{}
	}
	res := e.gesture.End(t)

	prev := e.state.ActiveIndex
	if res.Classification == ClassDrag {
		e.state.ActiveIndex = e.resolver.Resolve(prev, res.Offset, res.Eligible, len(e.slides))
	}
	e.state.DragOffsetPercent = 0
	e.state.IsDragging = false

	e.fireGesture(res)
	if e.state.ActiveIndex != prev {
		e.fireChange(prev, e.state.ActiveIndex)
	}
	return res
}

// PointerLeave ends an active drag when the pointer leaves the container.
// A press that has not yet become a drag is left open.
func (e *Engine) PointerLeave(t float64) GestureResult {
	if !e.state.IsDragging {
		return GestureResult{}
	}
	return e.PointerUp(t)
}

// --- Programmatic navigation ---

// ScrollTo commits index i (clamped) and discards any gesture in flight.
func (e *Engine) ScrollTo(i int) {
	e.gesture.Abort()
	e.state.DragOffsetPercent = 0
	e.state.IsDragging = false

	prev := e.state.ActiveIndex
	e.state.ActiveIndex = clampIndex(i, len(e.slides))
	if e.state.ActiveIndex != prev {
		e.fireChange(prev, e.state.ActiveIndex)
	}
}

// Next moves to the following slide, if any.
func (e *Engine) Next() { e.ScrollTo(e.state.ActiveIndex + 1) }

// Prev moves to the preceding slide, if any.
func (e *Engine) Prev() { e.ScrollTo(e.state.ActiveIndex - 1) }

// CanScrollPrev reports whether a previous slide exists.
func (e *Engine) CanScrollPrev() bool { return e.state.ActiveIndex > 0 }

// CanScrollNext reports whether a following slide exists.
func (e *Engine) CanScrollNext() bool { return e.state.ActiveIndex < len(e.slides)-1 }

// --- Output ---

// Position returns slide i's position relative to the active index,
// including any live drag offset.
func (e *Engine) Position(i int) float64 {
	return float64(i-e.state.ActiveIndex) - e.state.DragOffsetPercent
}

// Visible reports whether a position lies inside the culling window.
func (e *Engine) Visible(position float64) bool {
	return math.Abs(position) <= e.cfg.CullRadius
}

// Descriptors returns a SlideTransform for every slide inside the culling
// window, in slide order.
func (e *Engine) Descriptors() []SlideTransform {
	return e.AppendDescriptors(nil)
}

// AppendDescriptors appends the visible slides' transforms to dst and
// returns the extended slice. Passing a reused buffer avoids allocation on
// the per-move path.
func (e *Engine) AppendDescriptors(dst []SlideTransform) []SlideTransform {
	for i := range e.slides {
		p := e.Position(i)
		if !e.Visible(p) {
			continue
		}
		dst = append(dst, SlideTransform{
			Index:     i,
			Slide:     e.slides[i],
			Position:  p,
			Transform: e.mapper.Map(p),
		})
	}
	return dst
}

// --- Dispatch ---

func (e *Engine) fireChange(prev, cur int) {
	c := IndexChange{Previous: prev, Current: cur}
	for _, h := range e.handlers.change {
		h.fn(c)
	}
	if e.sink != nil {
		e.sink.EmitEvent(Event{Type: EventIndexChanged, Index: cur, Previous: prev})
	}
}

func (e *Engine) fireGesture(res GestureResult) {
	for _, h := range e.handlers.gesture {
		h.fn(res)
	}
	if e.sink == nil {
		return
	}
	typ := EventGestureEnd
	if res.Classification == ClassClick {
		typ = EventClick
	}
	e.sink.EmitEvent(Event{Type: typ, Index: e.state.ActiveIndex, Previous: e.state.ActiveIndex, Result: res})
}
