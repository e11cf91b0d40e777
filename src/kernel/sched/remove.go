package sched

import (
	"nimbos/src/kernel/queue"
	"nimbos/src/kernel/tcb"
)

// RemoveReady is the symmetric removal routine spec.md §8's round-trip
// property references as a collaborator: it unlinks btcb from whichever
// queue its current State says it occupies, restoring the lock bitmaps and
// re-promoting a new assigned[cpu] head to RUNNING where that applies.
func (k *Kernel) RemoveReady(btcb *tcb.TCB) {
	switch btcb.State {
	case tcb.Unlinked:
		return

	case tcb.Pending:
		queue.Remove(k.Pending, btcb)

	case tcb.ReadyToRun:
		queue.Remove(k.ReadyToRun, btcb)

	case tcb.Running, tcb.Assigned:
		k.removeFromAssigned(btcb)
	}

	btcb.State = tcb.Unlinked
	btcb.CPU = -1
}

// removeFromAssigned handles the RUNNING/ASSIGNED case, which under UP is
// really readytorun's head and under SMP is assigned[cpu].
func (k *Kernel) removeFromAssigned(btcb *tcb.TCB) {
	cpu := btcb.CPU
	q := k.ReadyToRun
	if k.SMP {
		q = k.Assigned[cpu]
	}

	wasHead := q.First() != nil && q.First().Value() == btcb
	queue.Remove(q, btcb)

	if !wasHead {
		return
	}

	newHead := q.First()
	if newHead == nil {
		propagateLockBit(&k.Locks.SchedLock, cpu, false)
		propagateLockBit(&k.Locks.IRQLock, cpu, false)
		return
	}

	next := newHead.Value()
	next.State = tcb.Running
	propagateLockBit(&k.Locks.SchedLock, cpu, next.LockCount > 0)
	propagateLockBit(&k.Locks.IRQLock, cpu, next.IRQCount > 0)
}
