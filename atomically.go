package stm

import (
	"errors"
	"time"
)

// Atomically runs f speculatively against a fresh Transaction, committing
// it in one logical instant if f succeeds and validation passes, or
// restarting f from the beginning otherwise. This is the plain restart
// loop with no backoff and no diagnostics.
func Atomically[T any](f TxnFunc[T]) T {
	return AtomicallyWithOptions(f)
}

// AtomicallyWithOptions is Atomically with tunable backoff and
// diagnostic logging; see WithBackoff and WithLogger.
func AtomicallyWithOptions[T any](f TxnFunc[T], opts ...RunOption) T {
	cfg := defaultConfig()
	for _, o := range opts {
		o(&cfg)
	}

	for attempt := 0; ; attempt++ {
		tx := newTransaction()

		result, err := f(tx)
		switch {
		case err == nil:
			if cerr := tx.commit(); cerr == nil {
				tx.state = txnCommitted
				cfg.logger.Debug("stm: committed", "attempts", attempt+1)
				return result
			}
			// Commit found a conflict; fall through and restart.

		case errors.Is(err, ErrRetry):
			tx.state = txnRetrying
			runBlockingRetry(tx, cfg.logger)

		default:
			// Transient conflict (ErrFail or caller-defined): absorbed
			// silently, the closure restarts from the top.
		}

		tx.state = txnAborted
		if cfg.backoff != nil {
			time.Sleep(cfg.backoff(attempt))
		}
	}
}

// Retry requests the blocking-retry protocol: the current attempt is
// abandoned and the calling goroutine parks until a variable read
// during this attempt is written by another transaction.
func Retry[T any]() (T, error) {
	var zero T
	return zero, ErrRetry
}

// Select runs each alternative in turn against the same Transaction,
// stopping at the first that does not request retry. If every
// alternative requests retry, Select itself requests retry; because
// every alternative ran against the shared tx, the combined read log is
// the union of everything any alternative touched, so a subsequent
// blocking retry subscribes to all of it.
func Select[T any](fns ...TxnFunc[T]) TxnFunc[T] {
	return func(tx *Transaction) (T, error) {
		var zero T
		if len(fns) == 0 {
			return zero, ErrRetry
		}
		for _, fn := range fns {
			v, err := fn(tx)
			if err == nil {
				return v, nil
			}
			if !errors.Is(err, ErrRetry) {
				return zero, err
			}
		}
		return zero, ErrRetry
	}
}

// Assert requests retry when cond is false, and otherwise succeeds.
func Assert(tx *Transaction, cond bool) error {
	tx.assertActive()
	if !cond {
		return ErrRetry
	}
	return nil
}
