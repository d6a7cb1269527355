package query

import (
	"sync"
	"time"
)

// SearchDebounce is the quiet window applied to the free-text search input.
// Dropdown-style controls are not debounced; they fire once per change event.
const SearchDebounce = 250 * time.Millisecond

// Debouncer coalesces a rapid burst of triggers into a single deferred
// invocation. Each Trigger cancels any pending invocation and schedules a new
// one after the quiet window, so a burst of keystrokes produces at most one
// callback per quiet period.
type Debouncer struct {
	mu    sync.Mutex
	after time.Duration
	timer *time.Timer
}

// NewDebouncer creates a Debouncer with the given quiet window.
func NewDebouncer(after time.Duration) *Debouncer {
	return &Debouncer{after: after}
}

// Trigger schedules fn to run after the quiet window, cancelling any
// previously scheduled invocation. fn runs on its own goroutine.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.after, fn)
}

// Stop cancels the pending invocation, if any.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
