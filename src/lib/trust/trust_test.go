package trust

import "testing"

func TestSetLevelReturnsPrevious(t *testing.T) {
	l := New("test", ErrorMask|WarnMask)
	prev := l.SetLevel(InfoMask)
	if prev != ErrorMask|WarnMask {
		t.Fatalf("SetLevel returned %v, want the prior mask", prev)
	}
	if l.Level() != InfoMask {
		t.Fatalf("Level() = %v, want InfoMask", l.Level())
	}
}

func TestMaskedCallsDoNotPanic(t *testing.T) {
	l := New("test", Nothing)
	// None of these are enabled; they must be silent no-ops, not panics.
	l.Errorf("x")
	l.Warnf("x")
	l.Infof("x")
	l.Debugf("x")
	l.Statsf("gauge", "x")

	l.SetLevel(ErrorMask | WarnMask | InfoMask | DebugMask | StatsMask)
	l.Errorf("x=%d", 1)
	l.Warnf("x=%d", 1)
	l.Infof("x=%d", 1)
	l.Debugf("x=%d", 1)
	l.Statsf("gauge", "x=%d", 1)
}
