package carousel

import (
	"errors"
	"testing"
)

func testSlides(n int) []Slide {
	slides := make([]Slide, n)
	for i := range slides {
		slides[i] = Slide{Title: string(rune('A' + i)), Source: "images/slide.webp"}
	}
	return slides
}

func newTestEngine(t *testing.T, n int, cfg Config) *Engine {
	t.Helper()
	e, err := NewEngine(testSlides(n), cfg)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return e
}

// drag presses at from, moves to to, and releases dt milliseconds later.
func drag(e *Engine, from, to, dt float64) GestureResult {
	e.PointerDown(from, 0, MouseButtonLeft)
	e.PointerMove(to, dt/2, 600)
	return e.PointerUp(dt)
}

// --- Construction ---

func TestNewEngineNoSlides(t *testing.T) {
	if _, err := NewEngine(nil, Config{}); !errors.Is(err, ErrNoSlides) {
		t.Errorf("NewEngine(nil) error = %v, want ErrNoSlides", err)
	}
}

func TestNewEngineStartIndex(t *testing.T) {
	tests := []struct {
		name  string
		n     int
		start *int
		want  int
	}{
		{"default is second slide", 8, nil, 1},
		{"default clamps for one slide", 1, nil, 0},
		{"explicit zero", 8, Index(0), 0},
		{"explicit last", 8, Index(7), 7},
		{"too large", 8, Index(20), 7},
		{"negative", 8, Index(-3), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine(t, tt.n, Config{StartIndex: tt.start})
			if got := e.ActiveIndex(); got != tt.want {
				t.Errorf("ActiveIndex = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestNewEngineCopiesSlides(t *testing.T) {
	slides := testSlides(3)
	e, err := NewEngine(slides, Config{})
	if err != nil {
		t.Fatal(err)
	}
	slides[0].Title = "changed"
	if e.Slides()[0].Title == "changed" {
		t.Error("engine should not alias the caller's slice")
	}
}

func TestEngineConfigDefaults(t *testing.T) {
	e := newTestEngine(t, 3, Config{})
	cfg := e.Config()
	if cfg.DragThreshold != 10 || cfg.EdgeResistance != 0.2 || cfg.FlickVelocity != 0.5 ||
		cfg.SnapDistance != 0.15 || cfg.CullRadius != 1.5 {
		t.Errorf("defaults not applied: %+v", cfg)
	}
}

// --- Positions ---

func TestEnginePositions(t *testing.T) {
	e := newTestEngine(t, 8, Config{StartIndex: Index(3)})
	for i := 0; i < 8; i++ {
		if got, want := e.Position(i), float64(i-3); got != want {
			t.Errorf("Position(%d) = %v, want %v", i, got, want)
		}
	}
	if got := e.Position(3); got != 0 {
		t.Errorf("active slide position = %v, want 0", got)
	}
}

func TestEngineDescriptorsCulling(t *testing.T) {
	e := newTestEngine(t, 8, Config{StartIndex: Index(3)})
	ds := e.Descriptors()
	if len(ds) != 3 {
		t.Fatalf("len(Descriptors) = %d, want 3", len(ds))
	}
	for k, want := range []int{2, 3, 4} {
		if ds[k].Index != want {
			t.Errorf("descriptor %d index = %d, want %d", k, ds[k].Index, want)
		}
		if ds[k].Slide != e.Slides()[want] {
			t.Errorf("descriptor %d carries the wrong slide", k)
		}
	}
	if ds[1].Transform.Scale != 1 || ds[1].Transform.ZIndex != 10 {
		t.Errorf("center transform = %+v", ds[1].Transform)
	}
}

func TestEngineDescriptorsDuringDrag(t *testing.T) {
	e := newTestEngine(t, 8, Config{StartIndex: Index(3)})
	e.PointerDown(300, 0, MouseButtonLeft)
	e.PointerMove(0, 100, 600) // offset 0.5

	if !e.State().IsDragging {
		t.Fatal("expected dragging state")
	}
	ds := e.Descriptors()
	got := make(map[int]float64, len(ds))
	for _, d := range ds {
		got[d.Index] = d.Position
	}
	want := map[int]float64{2: -1.5, 3: -0.5, 4: 0.5, 5: 1.5}
	if len(got) != len(want) {
		t.Fatalf("visible = %v, want %v", got, want)
	}
	for i, p := range want {
		if !approx(got[i], p) {
			t.Errorf("Position(%d) = %v, want %v", i, got[i], p)
		}
	}
}

func TestEngineAppendDescriptorsReusesBuffer(t *testing.T) {
	e := newTestEngine(t, 8, Config{})
	buf := make([]SlideTransform, 0, 8)
	out := e.AppendDescriptors(buf)
	if &out[:1][0] != &buf[:1][0] {
		t.Error("AppendDescriptors should reuse a buffer with room")
	}
}

func TestEngineContinuousPolicy(t *testing.T) {
	e := newTestEngine(t, 4, Config{Policy: PolicyContinuous})
	if _, ok := e.Mapper().(ContinuousMapper); !ok {
		t.Fatalf("Mapper = %T, want ContinuousMapper", e.Mapper())
	}
	for _, d := range e.Descriptors() {
		if d.Transform.TranslateXPercent != 0 {
			t.Errorf("continuous slide %d translate = %v, want 0", d.Index, d.Transform.TranslateXPercent)
		}
	}
}

// --- Gestures ---

func TestEngineDragCommits(t *testing.T) {
	tests := []struct {
		name   string
		start  int
		from   float64
		to     float64
		dt     float64
		want   int
		change bool
	}{
		// Moving the pointer left gives a positive offset.
		{"slow long drag left goes back", 1, 300, 180, 1000, 0, true},
		{"slow long drag right advances", 1, 180, 300, 1000, 2, true},
		{"slow short drag snaps back", 1, 300, 250, 1000, 1, false},
		{"flick left goes back", 3, 300, 260, 50, 2, true},
		{"flick right advances", 3, 260, 300, 50, 4, true},
		{"flick past last stays", 7, 200, 300, 50, 7, false},
		{"flick past first stays", 0, 300, 200, 50, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine(t, 8, Config{StartIndex: Index(tt.start)})
			var changes []IndexChange
			e.OnChange(func(c IndexChange) { changes = append(changes, c) })

			res := drag(e, tt.from, tt.to, tt.dt)
			if res.Classification != ClassDrag {
				t.Fatalf("Classification = %v, want drag", res.Classification)
			}
			if got := e.ActiveIndex(); got != tt.want {
				t.Errorf("ActiveIndex = %d, want %d", got, tt.want)
			}
			if tt.change != (len(changes) == 1) {
				t.Errorf("changes = %v, want change=%v", changes, tt.change)
			}
			if tt.change && (changes[0].Previous != tt.start || changes[0].Current != tt.want) {
				t.Errorf("change = %+v", changes[0])
			}

			st := e.State()
			if st.IsDragging || st.DragOffsetPercent != 0 {
				t.Errorf("state after release = %+v", st)
			}
		})
	}
}

func TestEngineClickNeverNavigates(t *testing.T) {
	e := newTestEngine(t, 8, Config{StartIndex: Index(3)})
	var results []GestureResult
	e.OnGesture(func(r GestureResult) { results = append(results, r) })
	changed := false
	e.OnChange(func(IndexChange) { changed = true })

	e.PointerDown(100, 0, MouseButtonLeft)
	e.PointerMove(105, 5, 600)
	if e.State().IsDragging {
		t.Error("5px move should not start a drag")
	}
	e.PointerUp(10)

	if e.ActiveIndex() != 3 || changed {
		t.Errorf("click changed index to %d", e.ActiveIndex())
	}
	if len(results) != 1 || results[0].Classification != ClassClick {
		t.Errorf("gesture results = %+v, want one click", results)
	}
}

func TestEngineIgnoresSecondaryButtons(t *testing.T) {
	e := newTestEngine(t, 8, Config{StartIndex: Index(3)})
	e.PointerDown(300, 0, MouseButtonRight)
	e.PointerMove(100, 10, 600)
	if e.State().IsDragging {
		t.Error("right button should not drag")
	}
	if res := e.PointerUp(20); res != (GestureResult{}) {
		t.Errorf("PointerUp without gesture = %+v", res)
	}
}

func TestEngineRepressAbortsGesture(t *testing.T) {
	e := newTestEngine(t, 8, Config{StartIndex: Index(3)})
	e.PointerDown(300, 0, MouseButtonLeft)
	e.PointerMove(100, 10, 600)

	e.PointerDown(400, 20, MouseButtonLeft)
	st := e.State()
	if st.IsDragging || st.DragOffsetPercent != 0 || st.ActiveIndex != 3 {
		t.Errorf("state after re-press = %+v", st)
	}
	s, ok := e.Gesture().Session()
	if !ok || s.StartX != 400 {
		t.Errorf("new session = %+v, %v", s, ok)
	}
}

func TestEnginePointerLeave(t *testing.T) {
	e := newTestEngine(t, 8, Config{StartIndex: Index(3)})

	// A press that has not become a drag survives leaving.
	e.PointerDown(300, 0, MouseButtonLeft)
	if res := e.PointerLeave(5); res.Classification != ClassNone {
		t.Errorf("leave before drag = %+v", res)
	}
	if _, ok := e.Gesture().Session(); !ok {
		t.Error("session should survive leave before drag")
	}

	// An active drag is released on leave and commits like a release.
	e.PointerMove(150, 100, 600)
	res := e.PointerLeave(1000)
	if res.Classification != ClassDrag {
		t.Fatalf("leave during drag = %+v", res)
	}
	if e.ActiveIndex() != 2 {
		t.Errorf("ActiveIndex = %d, want 2", e.ActiveIndex())
	}
	if e.State().IsDragging {
		t.Error("drag should end on leave")
	}
}

func TestEngineEdgeResistanceDuringDrag(t *testing.T) {
	e := newTestEngine(t, 8, Config{StartIndex: Index(0)})
	e.PointerDown(0, 0, MouseButtonLeft)
	e.PointerMove(300, 100, 600)
	if got := e.State().DragOffsetPercent; !approx(got, -0.5) {
		t.Errorf("offset away from edge = %v, want -0.5", got)
	}
	e.PointerMove(-300, 200, 600)
	if got := e.State().DragOffsetPercent; !approx(got, 0.1) {
		t.Errorf("offset into edge = %v, want 0.1", got)
	}
}

func TestEnginePointerMoveReadsWidth(t *testing.T) {
	e := newTestEngine(t, 8, Config{StartIndex: Index(3)})
	e.PointerDown(300, 0, MouseButtonLeft)
	e.PointerMove(200, 10, 1000)
	if got := e.State().DragOffsetPercent; !approx(got, 0.1) {
		t.Errorf("offset = %v, want 0.1", got)
	}
	e.PointerMove(200, 20, 500)
	if got := e.State().DragOffsetPercent; !approx(got, 0.2) {
		t.Errorf("offset after resize = %v, want 0.2", got)
	}
}

// --- Navigation ---

func TestEngineScrollTo(t *testing.T) {
	e := newTestEngine(t, 5, Config{})
	var changes []IndexChange
	e.OnChange(func(c IndexChange) { changes = append(changes, c) })

	e.ScrollTo(3)
	e.ScrollTo(3)
	e.ScrollTo(99)
	e.ScrollTo(-1)

	want := []IndexChange{{1, 3}, {3, 4}, {4, 0}}
	if len(changes) != len(want) {
		t.Fatalf("changes = %v, want %v", changes, want)
	}
	for i := range want {
		if changes[i] != want[i] {
			t.Errorf("change %d = %+v, want %+v", i, changes[i], want[i])
		}
	}
}

func TestEngineScrollToAbortsDrag(t *testing.T) {
	e := newTestEngine(t, 5, Config{})
	e.PointerDown(300, 0, MouseButtonLeft)
	e.PointerMove(100, 10, 600)
	e.ScrollTo(4)
	st := e.State()
	if st.IsDragging || st.DragOffsetPercent != 0 || st.ActiveIndex != 4 {
		t.Errorf("state = %+v", st)
	}
	if res := e.PointerUp(20); res.Classification != ClassNone {
		t.Errorf("release after ScrollTo = %+v, want none", res)
	}
}

func TestEngineNextPrev(t *testing.T) {
	e := newTestEngine(t, 3, Config{StartIndex: Index(0)})
	if e.CanScrollPrev() || !e.CanScrollNext() {
		t.Error("at first slide: expected only next")
	}
	e.Prev()
	if e.ActiveIndex() != 0 {
		t.Errorf("Prev at first = %d", e.ActiveIndex())
	}
	e.Next()
	e.Next()
	e.Next()
	if e.ActiveIndex() != 2 {
		t.Errorf("Next past last = %d", e.ActiveIndex())
	}
	if !e.CanScrollPrev() || e.CanScrollNext() {
		t.Error("at last slide: expected only prev")
	}
}

// --- Callbacks ---

func TestEngineCallbackRemove(t *testing.T) {
	e := newTestEngine(t, 5, Config{})
	var a, b int
	ha := e.OnChange(func(IndexChange) { a++ })
	e.OnChange(func(IndexChange) { b++ })

	e.Next()
	ha.Remove()
	ha.Remove()
	e.Next()

	if a != 1 || b != 2 {
		t.Errorf("a=%d b=%d, want 1 and 2", a, b)
	}

	var zero CallbackHandle
	zero.Remove()
}

func TestEngineGestureBeforeChange(t *testing.T) {
	e := newTestEngine(t, 8, Config{StartIndex: Index(3)})
	var order []string
	e.OnGesture(func(GestureResult) { order = append(order, "gesture") })
	e.OnChange(func(IndexChange) { order = append(order, "change") })
	drag(e, 300, 100, 50)
	if len(order) != 2 || order[0] != "gesture" || order[1] != "change" {
		t.Errorf("order = %v", order)
	}
}

type recordingSink struct {
	events []Event
}

func (r *recordingSink) EmitEvent(ev Event) { r.events = append(r.events, ev) }

func TestEngineEventSink(t *testing.T) {
	e := newTestEngine(t, 8, Config{StartIndex: Index(3)})
	sink := &recordingSink{}
	e.SetEventSink(sink)

	e.PointerDown(300, 0, MouseButtonLeft)
	e.PointerUp(5)
	drag(e, 300, 100, 50)

	want := []EventType{EventClick, EventGestureEnd, EventIndexChanged}
	if len(sink.events) != len(want) {
		t.Fatalf("events = %+v", sink.events)
	}
	for i, typ := range want {
		if sink.events[i].Type != typ {
			t.Errorf("event %d type = %v, want %v", i, sink.events[i].Type, typ)
		}
	}
	last := sink.events[2]
	if last.Previous != 3 || last.Index != 2 {
		t.Errorf("index event = %+v", last)
	}
}

func TestEngineSnapBackRestoresDescriptors(t *testing.T) {
	e := newTestEngine(t, 8, Config{StartIndex: Index(3)})
	before := e.Descriptors()

	e.PointerDown(300, 0, MouseButtonLeft)
	e.PointerMove(250, 500, 600)
	if mid := e.Descriptors(); mid[0].Position == before[0].Position {
		t.Fatal("descriptors should move during the drag")
	}
	if res := e.PointerUp(1000); res.Eligible {
		t.Fatalf("short slow drag should not be eligible: %+v", res)
	}

	after := e.Descriptors()
	if len(after) != len(before) {
		t.Fatalf("len = %d, want %d", len(after), len(before))
	}
	for i := range before {
		if after[i] != before[i] {
			t.Errorf("descriptor %d = %+v, want %+v", i, after[i], before[i])
		}
	}
}
