package sched_test

import (
	"testing"

	"nimbos/src/kernel/lockstate"
	"nimbos/src/kernel/sched"
)

func TestNewPanicsOnInvalidNCPU(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("New(0) must panic")
		}
	}()
	sched.New(0)
}

func TestNewUPHasNoAssignedQueues(t *testing.T) {
	k := sched.New(1)
	if k.SMP {
		t.Fatalf("ncpu=1 must select the UP contract")
	}
	if k.Assigned != nil {
		t.Fatalf("UP kernels must not allocate per-CPU assigned queues")
	}
}

func TestNewSMPAllocatesOneQueuePerCPU(t *testing.T) {
	k := sched.New(4)
	if !k.SMP {
		t.Fatalf("ncpu=4 must select the SMP contract")
	}
	if len(k.Assigned) != 4 {
		t.Fatalf("len(Assigned) = %d, want 4", len(k.Assigned))
	}
}

func TestReadyTransitionsInitState(t *testing.T) {
	k := sched.New(2)
	if k.Locks.InitState != lockstate.OSBooting {
		t.Fatalf("a fresh kernel must start OSBooting")
	}
	k.Ready()
	if k.Locks.InitState != lockstate.OSReady {
		t.Fatalf("Ready() must transition to OSReady")
	}
}

func TestWithCurrentCPUOverride(t *testing.T) {
	k := sched.New(2, sched.WithCurrentCPU(func() int { return 1 }))
	if k.CurrentCPU() != 1 {
		t.Fatalf("WithCurrentCPU override did not take effect")
	}
}
