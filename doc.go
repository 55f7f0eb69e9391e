// Package stm implements a Software Transactional Memory runtime: a
// concurrency primitive that lets goroutines compose speculative
// read/write operations on shared TVars into atomic transactions.
//
// A caller wraps a closure in Atomically. The runtime runs it against a
// private per-attempt log, detects conflicts with other committing
// transactions using a TL2-style sequence-lock protocol, and either
// commits the log to shared memory in one logical instant or restarts
// the closure from the beginning. A closure may also request a blocking
// retry, which parks the calling goroutine until a variable it read is
// written by another transaction.
//
//	balance := stm.NewTVar(100)
//	stm.Atomically(func(tx *stm.Transaction) (struct{}, error) {
//		cur, err := balance.Read(tx)
//		if err != nil {
//			return struct{}{}, err
//		}
//		return struct{}{}, balance.Write(tx, cur-10)
//	})
//
// Closures passed to Atomically may run more than once and must not
// perform I/O or other externally visible side effects; the runtime
// cannot enforce this.
package stm
