package queue

import "nimbos/src/kernel/tcb"

// Insert implements spec.md §4.A's prio_insert: inserts t into q so the
// queue stays sorted by descending SchedPriority, with new arrivals placed
// after existing equal-priority entries (FIFO). Returns true iff t became
// the new head. t must not already be linked in any queue.
func Insert(q *TCBDoublyLinkedList, t *tcb.TCB) bool {
	var before *TCBNodeDL
	q.TraverseNodes(func(n *TCBNodeDL) error {
		if before == nil && n.value.SchedPriority < t.SchedPriority {
			before = n
		}
		return nil
	})

	n := q.newNode(t)
	if before == nil {
		q.AppendNode(n)
	} else {
		q.InsertBefore(before, n)
	}
	return q.First() == n
}

// Remove unlinks t from q, wherever in the queue it sits, and returns the
// node to q's pool. It is a precondition that t is actually linked in q;
// Remove panics otherwise, when FindNode finds no node holding t.
func Remove(q *TCBDoublyLinkedList, t *tcb.TCB) {
	n := q.FindNode(t)
	if n == nil {
		panic("queue: Remove called with a TCB that is not linked in this queue")
	}
	q.RemoveAndRelease(n)
}
