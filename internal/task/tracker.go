// Package task tracks the single in-flight background operation per kind.
//
// Starting a task cancels the one it supersedes. Results carry the task ID
// so the receiver can drop anything that is no longer current.
package task

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// Tracker owns the cancel function of the latest task
type Tracker struct {
	mu     sync.Mutex
	id     string
	cancel context.CancelFunc
}

// Start cancels the previous task and returns a context and ID for a new one
func (t *Tracker) Start(parent context.Context) (context.Context, string) {
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)
	id := uuid.NewString()

	t.mu.Lock()
	if t.cancel != nil {
		t.cancel()
	}
	t.id = id
	t.cancel = cancel
	t.mu.Unlock()

	return ctx, id
}

// IsCurrent reports whether id belongs to the latest started task
func (t *Tracker) IsCurrent(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return id != "" && id == t.id
}

// Finish releases the context of task id if it is still current
func (t *Tracker) Finish(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if id != t.id {
		return
	}
	if t.cancel != nil {
		t.cancel()
	}
	t.cancel = nil
}

// Cancel aborts the current task; later results for it are stale
func (t *Tracker) Cancel() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.cancel != nil {
		t.cancel()
	}
	t.id = ""
	t.cancel = nil
}
