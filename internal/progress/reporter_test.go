package progress

import (
	"bytes"
	"errors"
	"testing"
)

func TestLineReporter(t *testing.T) {
	var buf bytes.Buffer
	r := &LineReporter{W: &buf}

	r.Start("Analyzing repository")
	r.Done("Rendered 3 nodes")
	r.Fail(errors.New("repository not found"))

	want := "Analyzing repository...\nRendered 3 nodes\nError: repository not found\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

func TestNewReporterInCI(t *testing.T) {
	t.Setenv("CI", "true")
	if _, ok := NewReporter().(*LineReporter); !ok {
		t.Error("expected LineReporter when CI is set")
	}
}
