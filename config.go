package stm

import (
	"io"
	"log/slog"
	"time"
)

// TxnFunc is a transaction closure: it runs speculatively against tx
// and either returns a success value or a control error (ErrFail,
// ErrRetry, or any caller-defined transient error).
type TxnFunc[T any] func(*Transaction) (T, error)

// config holds the tunables for AtomicallyWithOptions. Plain Atomically
// uses defaultConfig unmodified: immediate restart, no diagnostics.
type config struct {
	logger  *slog.Logger
	backoff func(attempt int) time.Duration
}

func defaultConfig() config {
	return config{
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		backoff: nil,
	}
}

// RunOption configures AtomicallyWithOptions.
type RunOption func(*config)

// WithLogger attaches a structured logger that receives one debug-level
// line per successful commit and one per goroutine parked in blocking
// retry. The runtime never logs from inside a running closure or from
// the commit hot path itself: transaction bodies must stay free of
// observable side effects, since any attempt may be discarded and
// retried.
func WithLogger(l *slog.Logger) RunOption {
	return func(c *config) { c.logger = l }
}

// WithBackoff installs a delay inserted between failed attempts, keyed
// by the zero-based attempt index that just failed. Bounded exponential
// backoff can be layered on top of the restart loop without changing
// its correctness; the default installs no delay at all.
func WithBackoff(f func(attempt int) time.Duration) RunOption {
	return func(c *config) { c.backoff = f }
}
