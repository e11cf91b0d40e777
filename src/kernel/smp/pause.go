// Package smp implements the CPU pause/resume handshake of spec.md §4.D.5
// and §9 ("Pause the world primitive"). spec.md §1 lists cpu_pause/
// cpu_resume as external collaborators "referenced only by contract," but
// a hosted simulation needs something concrete behind that contract to be
// testable end-to-end, so this package gives the handshake one real
// implementation in terms of ordinary goroutines and channels — the
// hosted-Go analog of the teacher's joy/schedule.go, where switching away
// from a domain meant masking interrupts (upbeat.MaskDAIF), mutating
// shared scheduler state, and unmasking them again on the way out
// (EnableIRQAndFIQ/DisableIRQAndFIQ).
package smp

import "fmt"

// Pauser quiesces and resumes a remote CPU so its assigned queue can be
// mutated safely. cpu_pause failure is fatal per spec.md §7: Pause
// returns an error only so the caller can assert on it, not to offer a
// recoverable path.
type Pauser interface {
	Pause(cpu int) error
	Resume(cpu int) error
}

// ChannelPauser models each CPU as a goroutine that checks a per-CPU
// quiesce request at its own safe points (the way a real kernel's
// dispatcher checks cpu_pause requests between instructions, not
// mid-instruction) and parks until resumed.
type ChannelPauser struct {
	quiesce []chan struct{}
	resume  []chan struct{}
	parked  []chan struct{}
}

// NewChannelPauser returns a Pauser for ncpu CPUs. Each CPU's goroutine
// must call Checkpoint(cpu) at its own safe points for Pause to ever
// complete; Checkpoint blocks the calling goroutine while that CPU is
// paused.
func NewChannelPauser(ncpu int) *ChannelPauser {
	p := &ChannelPauser{
		quiesce: make([]chan struct{}, ncpu),
		resume:  make([]chan struct{}, ncpu),
		parked:  make([]chan struct{}, ncpu),
	}
	for c := 0; c < ncpu; c++ {
		p.quiesce[c] = make(chan struct{}, 1)
		p.resume[c] = make(chan struct{}, 1)
		p.parked[c] = make(chan struct{}, 1)
	}
	return p
}

// Checkpoint is called by CPU cpu's own goroutine at a point where it is
// safe to be paused. If a pause is pending it parks until Resume is
// called, then returns.
func (p *ChannelPauser) Checkpoint(cpu int) {
	select {
	case <-p.quiesce[cpu]:
	default:
		return
	}
	p.parked[cpu] <- struct{}{}
	<-p.resume[cpu]
}

// Pause blocks until cpu's goroutine reaches a Checkpoint and parks there.
func (p *ChannelPauser) Pause(cpu int) error {
	if cpu < 0 || cpu >= len(p.quiesce) {
		return fmt.Errorf("smp: pause requested for out-of-range cpu %d", cpu)
	}
	p.quiesce[cpu] <- struct{}{}
	<-p.parked[cpu]
	return nil
}

// Resume releases a CPU previously quiesced by Pause.
func (p *ChannelPauser) Resume(cpu int) error {
	if cpu < 0 || cpu >= len(p.resume) {
		return fmt.Errorf("smp: resume requested for out-of-range cpu %d", cpu)
	}
	p.resume[cpu] <- struct{}{}
	return nil
}

// NoopPauser is a Pauser for a single-goroutine caller (e.g. table tests)
// where there is no separate goroutine running on the target CPU to
// quiesce — Pause/Resume are therefore trivially satisfied. It is the
// Kernel's default Pauser and the one the end-to-end tests of spec.md §8
// use for "SMP, remote preempt": the test harness drives every CPU from one goroutine,
// so pausing CPU 1 from CPU 0 has nothing concurrent to wait for.
type NoopPauser struct{}

func (NoopPauser) Pause(cpu int) error  { return nil }
func (NoopPauser) Resume(cpu int) error { return nil }
