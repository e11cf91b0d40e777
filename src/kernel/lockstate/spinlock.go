package lockstate

import (
	"runtime"
	"sync/atomic"
)

// Spinlock is a busy-wait mutual-exclusion primitive. Real RTOS spinlocks
// disable preemption on the acquiring CPU and spin rather than block; the
// closest hosted-Go analog is a CAS loop that yields the P between tries
// instead of parking the goroutine in the scheduler's wait queues. It is
// used for cpu_schedlock, cpu_irqlock, cpu_locksetlock and cpu_irqsetlock
// (spec.md §3).
type Spinlock struct {
	held atomic.Bool
}

// Lock spins until the lock is acquired.
func (s *Spinlock) Lock() {
	for !s.held.CompareAndSwap(false, true) {
		runtime.Gosched()
	}
}

// Unlock releases the lock. Unlocking an unheld lock is a programming
// error in the caller, not something Spinlock defends against, mirroring
// real spinlock primitives.
func (s *Spinlock) Unlock() {
	s.held.Store(false)
}

// TryLock attempts to acquire the lock without spinning.
func (s *Spinlock) TryLock() bool {
	return s.held.CompareAndSwap(false, true)
}

// IsHeld cheaply tests whether the lock is currently held, without
// acquiring it. This is the "readers cheap-test the outer spinlock"
// primitive spec.md §9 describes for cpu_schedlock/cpu_irqlock.
func (s *Spinlock) IsHeld() bool {
	return s.held.Load()
}
