package sched_test

import (
	"testing"

	"nimbos/src/kernel/queue"
	"nimbos/src/kernel/sched"
	"nimbos/src/kernel/tcb"
)

func TestDefaultCPUSelectPrefersEmptyQueue(t *testing.T) {
	k := sched.New(3)
	queue.Insert(k.Assigned[0], newRunning("r0", 10, 0, 3))
	queue.Insert(k.Assigned[1], newRunning("r1", 5, 1, 3))
	// cpu 2's assigned queue is empty.

	b := tcb.New("b", 1, 3)
	got := sched.DefaultCPUSelect(k, b.Affinity)
	if got != 2 {
		t.Fatalf("DefaultCPUSelect = %d, want 2 (the empty queue)", got)
	}
}

func TestDefaultCPUSelectBreaksTiesByLowestIndex(t *testing.T) {
	k := sched.New(3)
	queue.Insert(k.Assigned[0], newRunning("r0", 10, 0, 3))
	queue.Insert(k.Assigned[1], newRunning("r1", 10, 1, 3))
	queue.Insert(k.Assigned[2], newRunning("r2", 10, 2, 3))

	b := tcb.New("b", 1, 3)
	got := sched.DefaultCPUSelect(k, b.Affinity)
	if got != 0 {
		t.Fatalf("DefaultCPUSelect = %d, want 0 (lowest index on a tie)", got)
	}
}

func TestDefaultCPUSelectRespectsAffinity(t *testing.T) {
	k := sched.New(3)
	queue.Insert(k.Assigned[0], newRunning("r0", 10, 0, 3))
	// cpu 1 and 2 are both empty, but only cpu 2 is in the affinity mask.

	b := tcb.New("b", 1, 3)
	b.Affinity.Clear(0)
	b.Affinity.Clear(1)

	got := sched.DefaultCPUSelect(k, b.Affinity)
	if got != 2 {
		t.Fatalf("DefaultCPUSelect = %d, want 2 (the only admissible cpu)", got)
	}
}

func TestDefaultCPUSelectPanicsOnEmptyAffinity(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("an empty affinity mask must panic rather than return an invalid cpu")
		}
	}()
	k := sched.New(2)
	b := tcb.New("b", 1, 2)
	b.Affinity.Clear(0)
	b.Affinity.Clear(1)
	sched.DefaultCPUSelect(k, b.Affinity)
}
