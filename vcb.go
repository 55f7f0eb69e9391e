package stm

import (
	"sync"
	"unsafe"
)

// box is the shared-ownership container a vcb's value lives in. Commit
// replaces the box wholesale; a reader that captured a pointer to an
// old box before a replacement keeps seeing it, since nothing mutates a
// box in place. Two reads observed the same committed version iff they
// hold the same *box pointer — that pointer equality is the whole
// validation primitive.
type box struct {
	v any
}

// vcb is the Variable Control Block: the per-variable record that holds
// the current committed value behind a reader/writer gate, plus the
// wait subscriptions used by blocking retry. One or more TVar handles
// may share a vcb (TVar.Clone).
//
// The gate is a plain sync.RWMutex: multiple readers proceed
// concurrently, and a single committer holds the write side while it
// installs a new value. A writer waits for readers that already hold
// the read side to release it, and readers wait behind a writer that
// holds or is waiting for the gate.
type vcb struct {
	gate sync.RWMutex
	cur  *box

	waitMu  sync.Mutex
	waiters []*waitBlock
}

// newVCB allocates a VCB holding the given initial value.
func newVCB(v any) *vcb {
	return &vcb{cur: &box{v: v}}
}

// identity is the VCB's stable, totally ordered key: its own address.
// Two VCBs are equal iff their identities are equal, and transaction
// logs are ordered by this value to guarantee deadlock-free write-side
// lock acquisition during commit.
func (c *vcb) identity() uintptr {
	return uintptr(unsafe.Pointer(c))
}

// readLatest returns the currently committed value's box. Non-blocking
// for concurrent readers; blocks only if a writer currently holds the
// gate.
func (c *vcb) readLatest() *box {
	c.gate.RLock()
	b := c.cur
	c.gate.RUnlock()
	return b
}

// install replaces the current value. The caller must already hold the
// write side of the gate (acquired via lockWrite).
func (c *vcb) install(b *box) {
	c.cur = b
}

// lockWrite/unlockWrite expose the write side of the gate to the
// transaction manager, which acquires it across every written VCB in
// identity order during commit.
func (c *vcb) lockWrite()   { c.gate.Lock() }
func (c *vcb) unlockWrite() { c.gate.Unlock() }

// sameValue reports whether two observed value references are the same
// committed version: identity equality of the shared-ownership
// container, not a deep comparison of payloads.
func sameValue(a, b *box) bool {
	return a == b
}

// subscribe attaches a wait block to this VCB's pending-notification
// set. It must be detached either by a future notifyAll or by the
// retrying transaction tearing down on an early restart.
func (c *vcb) subscribe(w *waitBlock) {
	c.waitMu.Lock()
	c.waiters = append(c.waiters, w)
	c.waitMu.Unlock()
}

// unsubscribe removes a wait block from this VCB's set without
// signaling it, used when a transaction abandons a stale subscription
// before sleeping.
func (c *vcb) unsubscribe(w *waitBlock) {
	c.waitMu.Lock()
	for i, cur := range c.waiters {
		if cur == w {
			c.waiters = append(c.waiters[:i], c.waiters[i+1:]...)
			break
		}
	}
	c.waitMu.Unlock()
}

// notifyAll wakes and detaches every wait block currently subscribed to
// this VCB. A committing transaction must call this on every VCB it
// writes, before releasing the clock.
func (c *vcb) notifyAll() {
	c.waitMu.Lock()
	waiters := c.waiters
	c.waiters = nil
	c.waitMu.Unlock()

	for _, w := range waiters {
		w.setChanged()
	}
}
