package logger

import (
	"sync"
	"time"
)

// Console stores terminal output lines in memory for the on-screen log.
// Unlike the structured logger, these lines are user-facing and stay in
// the order the user saw them.
type Console struct {
	mu    sync.Mutex
	lines []string
}

// NewConsole returns an empty console buffer.
func NewConsole() *Console {
	return &Console{lines: make([]string, 0)}
}

// Log appends a line, prefixed with a wall-clock timestamp.
func (c *Console) Log(line string) {
	stamped := "[" + time.Now().Format("15:04:05") + "] " + line
	c.mu.Lock()
	c.lines = append(c.lines, stamped)
	c.mu.Unlock()
}

// Lines returns a copy of all stored lines.
func (c *Console) Lines() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.lines))
	copy(out, c.lines)
	return out
}
