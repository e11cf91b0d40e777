// Package tcb implements the Task Control Block (spec.md §3), the unit of
// schedulable work the admission routine places into a queue. It plays the
// role the teacher's joy/family.go (family) and joy/domain.go
// (DomainControlBlock) played for the Raspberry Pi kernel, generalized from
// a single run-queue-of-one design to the full {readytorun, assigned[cpu],
// pendingtasks} model spec.md requires.
package tcb

import "nimbos/src/kernel/lockstate"

// State is the tagged discriminant spec.md §9 calls for ("the task_state
// field is a tagged discriminant with exactly five relevant values here;
// model as a sum type").
type State int

const (
	// Unlinked is the state of a TCB before its first admission, or
	// after RemoveReady. It is not one of the five states spec.md §3
	// lists as relevant to the routine, but every TCB starts here.
	Unlinked State = iota
	Running
	Assigned
	ReadyToRun
	Pending
)

func (s State) String() string {
	switch s {
	case Unlinked:
		return "UNLINKED"
	case Running:
		return "RUNNING"
	case Assigned:
		return "ASSIGNED"
	case ReadyToRun:
		return "READYTORUN"
	case Pending:
		return "PENDING"
	default:
		return "INVALID"
	}
}

// Flags are the boolean pins spec.md §9 says may be modeled as dedicated
// fields rather than folded into the state discriminant.
type Flags struct {
	// CPULocked pins the task to CPU (spec.md §3, §4.A invariant 8).
	CPULocked bool
}

// TCB is the Task Control Block, spec.md §3.
type TCB struct {
	// Name is not part of the spec's data model; it exists purely so
	// tests and nimbosctl can print something more useful than a
	// pointer address.
	Name string

	SchedPriority uint8
	State         State
	CPU           int
	Flags         Flags
	Affinity      *lockstate.CPUSet

	LockCount int
	IRQCount  int
}

// New returns an Unlinked TCB with the given name and priority, admissible
// on every CPU of an ncpu-CPU kernel unless Affinity is narrowed
// afterwards.
func New(name string, priority uint8, ncpu int) *TCB {
	affinity := lockstate.NewCPUSet(ncpu)
	for c := 0; c < ncpu; c++ {
		affinity.Set(c)
	}
	return &TCB{
		Name:          name,
		SchedPriority: priority,
		State:         Unlinked,
		CPU:           -1,
		Affinity:      affinity,
	}
}
