//go:build debug

package assert

import "testing"

func TestHoldsPanicsOnFalse(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected Holds(false, ...) to panic in a debug build")
		}
	}()
	Holds(false, "should have panicked")
}

func TestHoldsSilentOnTrue(t *testing.T) {
	Holds(true, "never printed")
}
