//go:build !debug

package assert

import "testing"

func TestHoldsNeverPanicsInReleaseBuild(t *testing.T) {
	defer func() {
		if recover() != nil {
			t.Fatalf("Holds(false, ...) must be a no-op outside a debug build")
		}
	}()
	Holds(false, "not expected to panic")
}
