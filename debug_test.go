package carousel

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func captureStderr(t *testing.T, fn func()) string {
	t.Helper()
	oldStderr := os.Stderr
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	os.Stderr = w
	fn()
	w.Close()
	os.Stderr = oldStderr

	var buf bytes.Buffer
	buf.ReadFrom(r)
	return buf.String()
}

func TestDebugLog(t *testing.T) {
	s, _ := newTestStage(t, 5, Config{StartIndex: Index(2)})
	s.SetDebugMode(true)
	s.frame = 7

	output := captureStderr(t, func() {
		s.debugLog(debugStats{drawnCards: 3, tiltLoops: 1, state: s.engine.State()})
	})
	for _, want := range []string{"[carousel] frame 7", "cards: 3", "tilt loops: 1", "active: 2", "dragging: false"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in debug output, got: %q", want, output)
		}
	}
}

func TestDebugLog_Disabled(t *testing.T) {
	s, _ := newTestStage(t, 3, Config{})
	output := captureStderr(t, func() {
		s.debugLog(debugStats{})
	})
	if output != "" {
		t.Errorf("expected no output with debug mode off, got: %q", output)
	}
}

func TestLogf(t *testing.T) {
	output := captureStderr(t, func() {
		logf("screenshot %q saved", "x.png")
	})
	if output != "[carousel] screenshot \"x.png\" saved\n" {
		t.Errorf("logf output = %q", output)
	}
}
