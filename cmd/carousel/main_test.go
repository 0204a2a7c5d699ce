package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/phanxgames/carousel"
)

func runRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestInspect(t *testing.T) {
	out, err := runRoot(t, "inspect", "--slides", "4", "--index", "1")
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 5 {
		t.Fatalf("got %d lines, want header plus 4:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[0], "position") {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.Contains(lines[2], "+0.000") || !strings.Contains(lines[2], "true") {
		t.Errorf("active row = %q", lines[2])
	}
	if !strings.Contains(lines[4], "+2.000") || !strings.Contains(lines[4], "false") {
		t.Errorf("culled row = %q", lines[4])
	}
}

func TestInspectOffset(t *testing.T) {
	out, err := runRoot(t, "inspect", "--slides", "3", "--index", "1", "--offset", "0.25", "--policy", "continuous")
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
	if !strings.Contains(out, "-0.250") {
		t.Errorf("offset not applied:\n%s", out)
	}
}

func TestInspectErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"policy", []string{"inspect", "--policy", "bouncy"}, "unknown mapper policy"},
		{"slides", []string{"inspect", "--slides", "0"}, "at least 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runRoot(t, tt.args...)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %v, want mention of %q", err, tt.want)
			}
		})
	}
}

func TestLoadConfigDefault(t *testing.T) {
	cfg, err := loadConfig("")
	if err != nil {
		t.Fatal(err)
	}
	if len(cfg.Slides) != 8 {
		t.Errorf("default slides = %d, want 8", len(cfg.Slides))
	}
}

func TestExitAfter(t *testing.T) {
	runner, err := carousel.LoadTestScript([]byte(`{"steps": [{"action": "screenshot"}]}`))
	if err != nil {
		t.Fatal(err)
	}
	update := exitAfter(runner)
	if err := update(); err != nil {
		t.Fatalf("exited before the script ran: %v", err)
	}
}
