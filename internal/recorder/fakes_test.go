package recorder

import (
	"context"
	"errors"
	"sync"
)

type fakeGrabber struct {
	mu    sync.Mutex
	calls int
	// failOn lists 1-based call numbers that fail.
	failOn map[int]bool
}

func (g *fakeGrabber) Grab(context.Context) ([]byte, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls++
	if g.failOn[g.calls] {
		return nil, errors.New("grab failed")
	}
	return []byte("frame"), nil
}

type fakeWriter struct {
	mu     sync.Mutex
	frames int
	closed bool
	err    error
}

func (w *fakeWriter) WriteFrame([]byte) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.err != nil {
		return w.err
	}
	w.frames++
	return nil
}

func (w *fakeWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closed = true
	return nil
}

func (w *fakeWriter) factory() WriterFactory {
	return func(context.Context, string) (FrameWriter, error) { return w, nil }
}

type fakeSpeaker struct {
	said  []string
	err   error
	onSay func(n int)
}

func (s *fakeSpeaker) Say(_ context.Context, text string) error {
	s.said = append(s.said, text)
	if s.onSay != nil {
		s.onSay(len(s.said))
	}
	return s.err
}

type fakeRunner struct {
	ran    []Action
	errors map[string]error
	output string
}

func (r *fakeRunner) Run(_ context.Context, action Action) (string, error) {
	r.ran = append(r.ran, action)
	if err := r.errors[action.Name]; err != nil {
		return "boom", err
	}
	return r.output, nil
}
