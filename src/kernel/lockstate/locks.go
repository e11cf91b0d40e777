package lockstate

import "nimbos/src/lib/assert"

// InitState is the monotonic boot phase referenced by spec.md §3
// ("os_initstate") and §4.B/§9 OQ3. SMP invariants only hold once it
// reaches OSReady.
type InitState int

const (
	// OSBooting means the system is still single-threaded; SMP bitmap
	// state is not yet authoritative (spec.md §4.B, §9 OQ3).
	OSBooting InitState = iota
	// OSReady means cpu_irqset/cpu_lockset are authoritative.
	OSReady
)

// LockPair is the two-level structure spec.md §9 describes: an inner
// spinlock guarding read-modify-write of a CPU bitmap, paired with an
// outer spinlock that is cheap to test ("held iff bitmap != 0") and is
// only itself acquired/released on a zero-crossing transition of the
// bitmap.
type LockPair struct {
	inner Spinlock // cpu_locksetlock / cpu_irqsetlock
	outer Spinlock // cpu_schedlock / cpu_irqlock
	set   CPUSet   // cpu_lockset / cpu_irqset
}

func newLockPair(ncpu int) LockPair {
	return LockPair{set: *NewCPUSet(ncpu)}
}

// Held reports whether the outer spinlock is held, i.e. whether the
// bitmap is non-zero (spec.md invariant P4 / §3 invariant 6).
func (p *LockPair) Held() bool {
	p.inner.Lock()
	defer p.inner.Unlock()
	return !p.set.Zero()
}

// SetBit sets bit cpu in the bitmap, taking the outer spinlock iff this
// transitions the bitmap from zero to non-zero. This is the set_bit
// primitive spec.md §9 asks implementations to route all mutation
// through, to keep the bitmap/outer-spinlock pair synchronized.
func (p *LockPair) SetBit(cpu int) {
	p.inner.Lock()
	wasZero := p.set.Zero()
	if wasZero {
		p.outer.Lock()
	}
	p.set.Set(cpu)
	p.inner.Unlock()
}

// ClearBit clears bit cpu, releasing the outer spinlock iff this
// transitions the bitmap from non-zero to zero.
func (p *LockPair) ClearBit(cpu int) {
	p.inner.Lock()
	wasSet := p.set.On(cpu)
	p.set.Clear(cpu)
	becameZero := wasSet && p.set.Zero()
	if becameZero {
		p.outer.Unlock()
	}
	p.inner.Unlock()
}

// On reports whether bit cpu is currently set.
func (p *LockPair) On(cpu int) bool {
	p.inner.Lock()
	defer p.inner.Unlock()
	return p.set.On(cpu)
}

// LockState bundles cpu_schedlock/cpu_lockset and cpu_irqlock/cpu_irqset
// (spec.md §3) along with the boot-phase marker they depend on.
type LockState struct {
	SchedLock LockPair
	IRQLock   LockPair
	InitState InitState
}

// NewLockState returns lock state for a kernel with ncpu CPUs, in the
// pre-OSReady boot phase.
func NewLockState(ncpu int) *LockState {
	return &LockState{
		SchedLock: newLockPair(ncpu),
		IRQLock:   newLockPair(ncpu),
		InitState: OSBooting,
	}
}

// LockedElsewhere implements spec.md §4.B: "the IRQ lock is held, and this
// CPU is not among the holders."
func (s *LockState) LockedElsewhere(me int, inInterrupt bool) bool {
	s.IRQLock.inner.Lock()
	defer s.IRQLock.inner.Unlock()

	if s.InitState < OSReady {
		// Pre-OSREADY boot phase: system is effectively single-threaded.
		return false
	}
	if !s.IRQLock.set.Zero() {
		assert.Holds(s.IRQLock.outer.IsHeld(),
			"cpu_irqlock must be held when cpu_irqset is non-zero")
		return !s.IRQLock.set.On(me)
	}
	// cpu_irqlock may still be held here if an ISR took the outer lock
	// without setting any CPU bit.
	if s.IRQLock.outer.IsHeld() {
		assert.Holds(inInterrupt,
			"cpu_irqlock held with empty cpu_irqset outside interrupt context")
	}
	return false
}
