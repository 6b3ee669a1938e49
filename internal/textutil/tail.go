package textutil

import (
	"strings"
	"sync"
)

// LineTail is an io.Writer that keeps only the last N complete or partial
// lines written to it. It is safe for concurrent use, so a stderr draining
// goroutine can write while the owner reads.
type LineTail struct {
	mu      sync.Mutex
	limit   int
	lines   []string
	partial strings.Builder
}

// NewLineTail returns a tail retaining at most limit lines (minimum 1).
func NewLineTail(limit int) *LineTail {
	if limit < 1 {
		limit = 1
	}
	return &LineTail{limit: limit}
}

// Write implements io.Writer. It never fails.
func (t *LineTail) Write(p []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, b := range p {
		if b == '\n' {
			t.push(t.partial.String())
			t.partial.Reset()
			continue
		}
		t.partial.WriteByte(b)
	}
	return len(p), nil
}

func (t *LineTail) push(line string) {
	line = strings.TrimRight(line, "\r")
	if strings.TrimSpace(line) == "" {
		return
	}
	t.lines = append(t.lines, line)
	if over := len(t.lines) - t.limit; over > 0 {
		t.lines = append(t.lines[:0], t.lines[over:]...)
	}
}

// Lines returns the retained lines, including any unterminated trailing line.
func (t *LineTail) Lines() []string {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := append([]string(nil), t.lines...)
	if rest := strings.TrimSpace(t.partial.String()); rest != "" {
		out = append(out, rest)
		if len(out) > t.limit {
			out = out[len(out)-t.limit:]
		}
	}
	return out
}

// String joins the retained lines with "; ".
func (t *LineTail) String() string {
	return strings.Join(t.Lines(), "; ")
}
