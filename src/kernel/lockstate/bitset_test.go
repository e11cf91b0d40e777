package lockstate

import "testing"

func TestCPUSetSetClearOn(t *testing.T) {
	s := NewCPUSet(70) // exercises the second word
	if !s.Zero() {
		t.Fatalf("new set must start zero")
	}
	s.Set(3)
	s.Set(68)
	if !s.On(3) || !s.On(68) {
		t.Fatalf("bits 3 and 68 must read back set")
	}
	if s.On(4) || s.On(67) {
		t.Fatalf("neighboring bits must remain clear")
	}
	if s.Zero() {
		t.Fatalf("set with bits on must not report Zero")
	}
	s.Clear(3)
	if s.On(3) {
		t.Fatalf("cleared bit must read back unset")
	}
	s.ClearAll()
	if !s.Zero() {
		t.Fatalf("ClearAll must zero every word")
	}
}

func TestCPUSetEachAscending(t *testing.T) {
	s := NewCPUSet(10)
	s.Set(7)
	s.Set(1)
	s.Set(9)

	var seen []int
	s.Each(func(cpu int) { seen = append(seen, cpu) })
	want := []int{1, 7, 9}
	if len(seen) != len(want) {
		t.Fatalf("Each visited %v, want %v", seen, want)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("Each visited %v, want %v", seen, want)
		}
	}
}

func TestCPUSetOutOfRangePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("out-of-range bit access must panic")
		}
	}()
	NewCPUSet(4).On(64)
}
