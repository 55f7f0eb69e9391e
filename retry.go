package stm

import "log/slog"

// runBlockingRetry parks the calling goroutine until some variable read
// during the failed attempt changes. It requires a non-empty read log
// to have anything to subscribe to; an empty read log is treated as an
// immediate restart rather than a panic, since calling Retry before any
// read is legal usage. A closure that retries on every attempt without
// reading anything therefore restarts in a busy loop and never blocks.
func runBlockingRetry(tx *Transaction, logger *slog.Logger) {
	if len(tx.readLog) == 0 {
		return
	}

	w := newWaitBlock()
	for _, e := range tx.readLog {
		e.v.subscribe(w)
	}

	// Revalidate after subscribing to close the lost-wakeup race: a
	// write landing between the initial read and this subscription
	// would otherwise notify a subscriber that was never attached.
	if _, ok := tx.validate(); !ok {
		for _, e := range tx.readLog {
			e.v.unsubscribe(w)
		}
		return
	}

	logger.Debug("stm: parked in blocking retry", "readSetSize", len(tx.readLog))
	w.wait()

	// Defensive teardown: a committer that touched only some of the
	// subscribed VCBs already removed this block from those; remove it
	// from any others it is still attached to.
	for _, e := range tx.readLog {
		e.v.unsubscribe(w)
	}
}
