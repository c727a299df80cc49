package engine

import "sync"

// TimeoutLedger counts timeouts against a cap that grows with every granted
// overtime. All mutations clamp rather than fail: using a timeout past the
// cap and undoing past zero are both no-ops.
type TimeoutLedger struct {
	mu        sync.Mutex
	base      int
	used      int
	overtimes int
}

// NewTimeoutLedger creates a timeout ledger with the given base allowance
func NewTimeoutLedger(base int) *TimeoutLedger {
	if base < 0 {
		base = 0
	}
	return &TimeoutLedger{base: base}
}

// Use consumes a timeout, clamped at the cap
func (t *TimeoutLedger) Use() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.used < t.capLocked() {
		t.used++
	}
}

// Undo returns a timeout, floored at zero
func (t *TimeoutLedger) Undo() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.used > 0 {
		t.used--
	}
}

// AddOvertime grants an overtime, raising the cap by one; the used count is
// never touched
func (t *TimeoutLedger) AddOvertime() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.overtimes++
}

// Used returns the number of timeouts consumed
func (t *TimeoutLedger) Used() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.used
}

// Cap returns the current timeout allowance
func (t *TimeoutLedger) Cap() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.capLocked()
}

// Overtimes returns the number of overtimes granted
func (t *TimeoutLedger) Overtimes() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.overtimes
}

// Restore seeds the counters from persisted state, clamping into range
func (t *TimeoutLedger) Restore(used, overtimes int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if overtimes < 0 {
		overtimes = 0
	}
	t.overtimes = overtimes

	if used < 0 {
		used = 0
	}
	if used > t.capLocked() {
		used = t.capLocked()
	}
	t.used = used
}

// Reset clears the used count and granted overtimes
func (t *TimeoutLedger) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.used = 0
	t.overtimes = 0
}

func (t *TimeoutLedger) capLocked() int {
	return t.base + t.overtimes
}
