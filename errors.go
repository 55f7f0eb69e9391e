package stm

import "errors"

// ErrFail signals a transient conflict: the top-level loop absorbs it
// and restarts the closure from the beginning. It is never surfaced to
// caller code beyond causing a restart.
var ErrFail = errors.New("stm: transaction conflicts, restarting")

// ErrRetry signals an explicit request, via Retry, to block until a
// variable read during the current attempt changes.
var ErrRetry = errors.New("stm: explicit retry requested")

