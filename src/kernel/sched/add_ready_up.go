package sched

import (
	"nimbos/src/kernel/queue"
	"nimbos/src/kernel/tcb"
	"nimbos/src/lib/assert"
)

// addReadyUP implements spec.md §4.C, the uniprocessor contract for
// add_ready. The head of ReadyToRun doubles as assigned[0]'s head: it is
// always the task currently RUNNING.
func (k *Kernel) addReadyUP(btcb *tcb.TCB) bool {
	head := k.ReadyToRun.First()

	if head != nil {
		rtcb := head.Value()
		// Deferred dispatch (spec.md §4.C.1).
		if rtcb.LockCount > 0 && btcb.SchedPriority > rtcb.SchedPriority {
			queue.Insert(k.Pending, btcb)
			btcb.State = tcb.Pending
			k.Log.Debugf("add_ready(UP): %s deferred to pendingtasks (runner %s holds the scheduler lock)", btcb.Name, rtcb.Name)
			return false
		}
	}

	placedAtHead := queue.Insert(k.ReadyToRun, btcb)
	if !placedAtHead {
		btcb.State = tcb.ReadyToRun
		k.Log.Debugf("add_ready(UP): %s inserted mid-queue", btcb.Name)
		return false
	}

	// spec.md §4.C.2: btcb became the new head.
	if head != nil {
		rtcb := head.Value()
		assert.Holds(rtcb.LockCount == 0, "preempted runner %s must not hold the scheduler lock", rtcb.Name)
		next := k.ReadyToRun.First().Next()
		assert.Holds(next != nil, "new head's successor must exist: the preempted runner")
		assert.Holds(next.Value() == rtcb, "new head's successor must be the former head")
		rtcb.State = tcb.ReadyToRun
	}
	btcb.State = tcb.Running
	btcb.CPU = 0
	k.Log.Debugf("add_ready(UP): %s is now RUNNING, caller must switch", btcb.Name)
	return true
}
