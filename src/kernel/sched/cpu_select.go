package sched

import (
	"nimbos/src/kernel/kerrors"
	"nimbos/src/kernel/lockstate"
)

// DefaultCPUSelect is a concrete cpu_select (spec.md §1 treats it as an
// external collaborator "assumed to return a valid CPU index"; nimbos
// supplements the spec with a working default so the SMP path is runnable
// without the caller supplying one). It returns the admissible CPU whose
// assigned-head has the lowest priority, breaking ties by lowest CPU
// index (spec.md §9 OQ2: tie-breaking is implementation-defined).
func DefaultCPUSelect(k *Kernel, affinity *lockstate.CPUSet) int {
	best := -1
	bestPriority := -1
	affinity.Each(func(cpu int) {
		if cpu >= len(k.Assigned) {
			return
		}
		head := k.Assigned[cpu].First()
		priority := -1 // an idle/empty assigned queue outranks every busy one
		if head != nil {
			priority = int(head.Value().SchedPriority)
		}
		if best == -1 || priority < bestPriority {
			best = cpu
			bestPriority = priority
		}
	})
	if best == -1 {
		panic(kerrors.New(kerrors.SubsystemScheduler, kerrors.ErrNumAffinityEmpty, k.CurrentCPU()).Error())
	}
	return best
}
