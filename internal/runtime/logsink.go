package runtime

import (
	"sync"

	"github.com/forgecore/engine/internal/app"
)

// RingSink is a bounded in-memory log ring: an io.Writer that keeps only the
// most recent capacity lines. It backs the Runtime-wide logger so
// invariant-violation failures stay inspectable without unbounded memory
// growth, the same shape as a bounded log buffer feeding an editor panel.
type RingSink struct {
	mu       sync.Mutex
	capacity int
	lines    [][]byte
	start    int
	size     int
}

// NewRingSink returns a RingSink holding at most capacity lines. capacity
// <= 0 is treated as 1.
func NewRingSink(capacity int) *RingSink {
	if capacity <= 0 {
		capacity = 1
	}
	return &RingSink{capacity: capacity, lines: make([][]byte, capacity)}
}

// Write implements io.Writer, storing p as one ring entry. A writer writing
// multiple log lines in one call (app.Logger never does; each log call is
// one Write) would be stored as a single entry; Lines returns entries
// exactly as written and does not split them on newlines.
func (s *RingSink) Write(p []byte) (int, error) {
	cp := make([]byte, len(p))
	copy(cp, p)

	s.mu.Lock()
	defer s.mu.Unlock()
	idx := (s.start + s.size) % s.capacity
	s.lines[idx] = cp
	if s.size < s.capacity {
		s.size++
	} else {
		s.start = (s.start + 1) % s.capacity
	}
	return len(p), nil
}

// Lines returns every currently buffered line, oldest first.
func (s *RingSink) Lines() [][]byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([][]byte, s.size)
	for i := 0; i < s.size; i++ {
		out[i] = s.lines[(s.start+i)%s.capacity]
	}
	return out
}

// Len reports how many lines are currently buffered.
func (s *RingSink) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.size
}

// NewLogger returns an app.Logger writing into a fresh RingSink of the given
// capacity, plus the sink itself so a collaborator (an editor log panel) can
// read it back.
func NewLogger(component string, capacity int) (*app.Logger, *RingSink) {
	sink := NewRingSink(capacity)
	logger := app.NewLogger(app.LoggerConfig{Output: sink}).WithComponent(component)
	return logger, sink
}
