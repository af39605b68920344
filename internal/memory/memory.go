// Package memory holds the append-only conversation log kept for one
// interaction mode. Each mode (search, extract) owns its own instance;
// the logs are never merged and never read across modes.
package memory

import "sync"

// Turn is one recorded (input, output) pair. Immutable once appended.
type Turn struct {
	Input  string `json:"input"`
	Output string `json:"output"`
}

// Memory is an in-process, append-only sequence of turns, most recent last.
// It lives for the process lifetime only; nothing is persisted.
type Memory struct {
	mu    sync.RWMutex
	turns []Turn
}

func New() *Memory {
	return &Memory{}
}

// Save appends a turn. There is no capacity bound.
func (m *Memory) Save(input, output string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.turns = append(m.turns, Turn{Input: input, Output: output})
}

// Recent returns the last n turns in original insertion order, or fewer
// if the history is shorter. The returned slice is a copy.
func (m *Memory) Recent(n int) []Turn {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if n <= 0 || len(m.turns) == 0 {
		return nil
	}
	if n > len(m.turns) {
		n = len(m.turns)
	}
	out := make([]Turn, n)
	copy(out, m.turns[len(m.turns)-n:])
	return out
}

// Len reports how many turns have been saved.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.turns)
}
