package queue

import (
	"testing"

	"nimbos/src/kernel/tcb"
)

func names(t *testing.T, q *TCBDoublyLinkedList) []string {
	t.Helper()
	var out []string
	q.Traverse(func(v *tcb.TCB) error {
		out = append(out, v.Name)
		return nil
	})
	return out
}

func sameOrder(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestInsertDescendingOrder(t *testing.T) {
	q := NewQueue(8)
	r := tcb.New("R", 10, 1)
	x := tcb.New("X", 5, 1)
	Insert(q, r)
	Insert(q, x)

	b := tcb.New("B", 20, 1)
	atHead := Insert(q, b)
	if !atHead {
		t.Fatalf("inserting the highest priority task must land at the head")
	}
	if got := names(t, q); !sameOrder(got, []string{"B", "R", "X"}) {
		t.Fatalf("order = %v, want [B R X]", got)
	}
}

func TestInsertMidQueueReturnsFalse(t *testing.T) {
	q := NewQueue(8)
	Insert(q, tcb.New("R", 30, 1))
	Insert(q, tcb.New("X", 10, 1))

	b := tcb.New("B", 20, 1)
	if Insert(q, b) {
		t.Fatalf("mid-queue insertion must not report landing at the head")
	}
	if got := names(t, q); !sameOrder(got, []string{"R", "B", "X"}) {
		t.Fatalf("order = %v, want [R B X]", got)
	}
}

func TestInsertFIFOAmongEqualPriorities(t *testing.T) {
	q := NewQueue(8)
	Insert(q, tcb.New("first", 10, 1))
	Insert(q, tcb.New("second", 10, 1))
	Insert(q, tcb.New("third", 10, 1))

	if got := names(t, q); !sameOrder(got, []string{"first", "second", "third"}) {
		t.Fatalf("order = %v, want arrival order preserved among equal priorities", got)
	}
}

func TestRemoveUnlinksAndReleasesNode(t *testing.T) {
	q := NewQueue(8)
	r := tcb.New("R", 10, 1)
	x := tcb.New("X", 5, 1)
	Insert(q, r)
	Insert(q, x)

	Remove(q, r)
	if got := names(t, q); !sameOrder(got, []string{"X"}) {
		t.Fatalf("order after remove = %v, want [X]", got)
	}
	if q.FindNode(r) != nil {
		t.Fatalf("removed TCB must no longer be findable in the queue")
	}
}

func TestRemoveOfUnlinkedTaskPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("Remove of a TCB that isn't linked in the queue must panic")
		}
	}()
	q := NewQueue(8)
	Remove(q, tcb.New("ghost", 1, 1))
}

func TestPoolExhaustionPanics(t *testing.T) {
	q := NewQueue(2)
	Insert(q, tcb.New("a", 1, 1))
	Insert(q, tcb.New("b", 1, 1))

	defer func() {
		if recover() == nil {
			t.Fatalf("inserting past pool capacity must panic rather than silently allocate")
		}
	}()
	Insert(q, tcb.New("c", 1, 1))
}
