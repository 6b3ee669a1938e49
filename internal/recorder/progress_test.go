package recorder

import (
	"bytes"
	"testing"

	"demoreel/internal/logging"
)

func TestNewProgressFallsBackToLogs(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgress(&buf, logging.NewNop())
	if _, ok := p.(*logProgress); !ok {
		t.Fatalf("expected log progress for non-terminal writer, got %T", p)
	}

	p.Start(Segment{Number: 2}, 10)
	p.Add(4)
	p.Finish()
	if buf.Len() != 0 {
		t.Fatalf("log progress should not write to the terminal writer, got %q", buf.String())
	}
}

func TestBarProgressLifecycle(t *testing.T) {
	var buf bytes.Buffer
	p := &barProgress{out: &buf}
	p.Add(1) // before Start is a no-op
	p.Start(Segment{Number: 3}, 4)
	p.Add(4)
	p.Finish()
	if p.bar != nil {
		t.Fatal("expected bar to be released after Finish")
	}
	p.Finish()
}
