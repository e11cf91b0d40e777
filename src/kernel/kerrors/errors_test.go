package kerrors

import "testing"

func TestNoErrorIsZero(t *testing.T) {
	if NoError != 0 {
		t.Fatalf("NoError must be the zero value")
	}
	if NoError.Error() != "no error" {
		t.Fatalf("NoError.Error() = %q, want %q", NoError.Error(), "no error")
	}
}

func TestNewRoundTripsCPU(t *testing.T) {
	e := New(SubsystemScheduler, ErrNumPauseFailed, 3)
	if e.CPU() != 3 {
		t.Fatalf("CPU() = %d, want 3", e.CPU())
	}
	if e == NoError {
		t.Fatalf("a constructed error must not equal NoError")
	}
}

func TestErrorMessageKnownVsUnknown(t *testing.T) {
	known := New(SubsystemScheduler, ErrNumAffinityEmpty, 0)
	if known.Error() == "cpu 0: unknown kernel error" {
		t.Fatalf("ErrNumAffinityEmpty must have a registered message")
	}

	unknown := New(SubsystemQueue, 999, 1)
	want := "cpu 1: unknown kernel error"
	if unknown.Error() != want {
		t.Fatalf("Error() = %q, want %q", unknown.Error(), want)
	}
}

func TestDistinctSubsystemsDoNotCollide(t *testing.T) {
	a := New(SubsystemScheduler, 1, 0)
	b := New(SubsystemQueue, 1, 0)
	if a == b {
		t.Fatalf("errors from different subsystems with the same number must not collide")
	}
}
