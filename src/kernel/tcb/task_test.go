package tcb

import "testing"

func TestNewIsUnlinkedWithFullAffinity(t *testing.T) {
	task := New("worker", 42, 4)
	if task.State != Unlinked {
		t.Fatalf("State = %s, want UNLINKED", task.State)
	}
	if task.CPU != -1 {
		t.Fatalf("CPU = %d, want -1", task.CPU)
	}
	if task.SchedPriority != 42 {
		t.Fatalf("SchedPriority = %d, want 42", task.SchedPriority)
	}
	for c := 0; c < 4; c++ {
		if !task.Affinity.On(c) {
			t.Fatalf("cpu %d must be in the default affinity mask", c)
		}
	}
}

func TestStateStringCovers(t *testing.T) {
	cases := map[State]string{
		Unlinked:   "UNLINKED",
		Running:    "RUNNING",
		Assigned:   "ASSIGNED",
		ReadyToRun: "READYTORUN",
		Pending:    "PENDING",
		State(99):  "INVALID",
	}
	for s, want := range cases {
		if got := s.String(); got != want {
			t.Fatalf("State(%d).String() = %q, want %q", s, got, want)
		}
	}
}
