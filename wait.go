package stm

import "sync"

// waitBlock is the one-shot semaphore used by blocking retry to park a
// goroutine until a subscribed VCB is written. It is created fresh for
// each retry attempt, attached to every VCB in that attempt's read
// set, and discarded once it wakes.
type waitBlock struct {
	mu      sync.Mutex
	cond    *sync.Cond
	blocked bool
}

// newWaitBlock creates a wait block in the blocked state.
func newWaitBlock() *waitBlock {
	w := &waitBlock{blocked: true}
	w.cond = sync.NewCond(&w.mu)
	return w
}

// setChanged atomically clears blocked and signals the condition
// variable. Idempotent, and safe to call before the retryer has begun
// waiting: wait always tests blocked before sleeping, so a signal that
// arrives early still releases the eventual waiter instead of being
// lost.
func (w *waitBlock) setChanged() {
	w.mu.Lock()
	w.blocked = false
	w.mu.Unlock()
	w.cond.Signal()
}

// wait blocks until setChanged has been called at least once. The
// predicate is checked explicitly under the mutex, so there is no
// spurious-wakeup hazard.
func (w *waitBlock) wait() {
	w.mu.Lock()
	for w.blocked {
		w.cond.Wait()
	}
	w.mu.Unlock()
}
