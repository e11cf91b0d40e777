package smp

import "testing"

func TestNoopPauser(t *testing.T) {
	var p NoopPauser
	if err := p.Pause(0); err != nil {
		t.Fatalf("Pause: %v", err)
	}
	if err := p.Resume(0); err != nil {
		t.Fatalf("Resume: %v", err)
	}
}

func TestChannelPauserPauseBlocksUntilCheckpoint(t *testing.T) {
	p := NewChannelPauser(2)
	stop := make(chan struct{})
	done := make(chan struct{})

	// Simulates a CPU's dispatcher loop calling Checkpoint at its own
	// repeated safe points, the way a real caller must.
	go func() {
		for {
			select {
			case <-stop:
				close(done)
				return
			default:
				p.Checkpoint(1)
			}
		}
	}()

	if err := p.Pause(1); err != nil {
		t.Fatalf("Pause: %v", err)
	}

	select {
	case <-done:
		t.Fatalf("goroutine must remain parked until Resume is called")
	default:
	}

	if err := p.Resume(1); err != nil {
		t.Fatalf("Resume: %v", err)
	}
	close(stop)
	<-done
}

func TestChannelPauserOutOfRange(t *testing.T) {
	p := NewChannelPauser(1)
	if err := p.Pause(5); err == nil {
		t.Fatalf("Pause of an out-of-range cpu must error")
	}
	if err := p.Resume(5); err == nil {
		t.Fatalf("Resume of an out-of-range cpu must error")
	}
}
