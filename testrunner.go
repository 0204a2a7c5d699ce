package carousel

import (
	"encoding/json"
	"fmt"
)

// testStep is one scripted action. Pointer actions use X/Y or the
// From/To pair; navigation uses Index; swipe uses Fraction.
type testStep struct {
	Action   string  `json:"action"`
	Label    string  `json:"label,omitempty"`
	X        float64 `json:"x,omitempty"`
	Y        float64 `json:"y,omitempty"`
	FromX    float64 `json:"fromX,omitempty"`
	FromY    float64 `json:"fromY,omitempty"`
	ToX      float64 `json:"toX,omitempty"`
	ToY      float64 `json:"toY,omitempty"`
	Fraction float64 `json:"fraction,omitempty"`
	Frames   int     `json:"frames,omitempty"`
	Index    int     `json:"index,omitempty"`
}

type testScript struct {
	Steps []testStep `json:"steps"`
}

// stepActions maps each script action to what it does on the stage.
var stepActions = map[string]func(r *TestRunner, s *Stage, st testStep){
	"screenshot": func(_ *TestRunner, s *Stage, st testStep) { s.Screenshot(st.Label) },
	"press":      func(_ *TestRunner, s *Stage, st testStep) { s.InjectPress(st.X, st.Y) },
	"move":       func(_ *TestRunner, s *Stage, st testStep) { s.InjectMove(st.X, st.Y) },
	"hover":      func(_ *TestRunner, s *Stage, st testStep) { s.InjectHover(st.X, st.Y) },
	"release":    func(_ *TestRunner, s *Stage, st testStep) { s.InjectRelease(st.X, st.Y) },
	"click":      func(_ *TestRunner, s *Stage, st testStep) { s.InjectClick(st.X, st.Y) },
	"drag": func(_ *TestRunner, s *Stage, st testStep) {
		s.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	},
	"swipe": func(_ *TestRunner, s *Stage, st testStep) { s.InjectSwipe(st.Fraction, st.Frames) },
	"wait": func(r *TestRunner, _ *Stage, st testStep) {
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	},
	"next": func(_ *TestRunner, s *Stage, _ testStep) { s.engine.Next() },
	"prev": func(_ *TestRunner, s *Stage, _ testStep) { s.engine.Prev() },
	"goto": func(_ *TestRunner, s *Stage, st testStep) { s.engine.ScrollTo(st.Index) },
	"expect": func(r *TestRunner, s *Stage, st testStep) {
		if got := s.engine.ActiveIndex(); got != st.Index {
			msg := fmt.Sprintf("step %d: active slide %d, want %d", r.cursor-1, got, st.Index)
			r.failures = append(r.failures, msg)
			logf("test script: %s", msg)
		}
	},
}

// TestRunner plays a JSON script against a Stage, one action per frame.
// Pointer actions are injected and drained before the next step runs, so
// an "expect" after a "drag" sees the settled slide.
//
//	{"steps": [
//	  {"action": "swipe", "fraction": 0.5, "frames": 6},
//	  {"action": "expect", "index": 2},
//	  {"action": "screenshot", "label": "second"}
//	]}
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
	failures  []string
}

// LoadTestScript parses a JSON test script.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	for i, st := range script.Steps {
		if _, ok := stepActions[st.Action]; !ok {
			return nil, fmt.Errorf("parse test script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

// SetTestRunner attaches a runner; Stage.Update steps it before input.
func (s *Stage) SetTestRunner(runner *TestRunner) {
	s.testRunner = runner
}

// Done reports whether every step has run.
func (r *TestRunner) Done() bool {
	return r.done
}

// Failures returns the messages of "expect" steps that did not hold.
func (r *TestRunner) Failures() []string {
	return r.failures
}

func (r *TestRunner) step(s *Stage) {
	if r.done || len(s.injectQueue) > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++
	stepActions[st.Action](r, s, st)

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(s.injectQueue) == 0 {
		r.done = true
	}
}
