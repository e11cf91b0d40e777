// Package sched is Component E of spec.md: the ready-to-run admission
// routine itself, plus the kernel context spec.md §9 asks to be modeled
// "as a single kernel context passed by reference" rather than as ad hoc
// globals — the teacher's joy package used package-level globals
// (familyImpl, currentFamily, CurrentDomain) for exactly this state, which
// worked for a single-core Pi kernel but does not generalize to the
// N-kernel-instances-per-test-process shape an SMP scheduler library
// needs, so nimbos bundles it into *Kernel instead.
package sched

import (
	"nimbos/src/kernel/kerrors"
	"nimbos/src/kernel/lockstate"
	"nimbos/src/kernel/queue"
	"nimbos/src/kernel/smp"
	"nimbos/src/kernel/tcb"
	"nimbos/src/lib/trust"
)

// CPUSelectFunc is the cpu_select collaborator of spec.md §1/§4.D.1: given
// an affinity mask, return the admissible CPU whose assigned-head has the
// lowest priority. Tie-breaking is implementation-defined (spec.md §9 OQ2).
type CPUSelectFunc func(k *Kernel, affinity *lockstate.CPUSet) int

// Kernel is the scheduling data structures of spec.md §2/§3/§9, bundled
// into one value so a test (or nimbosctl) can run several independent
// schedulers in one process.
type Kernel struct {
	NCPU int
	SMP  bool

	// ReadyToRun holds runnable tasks that are not pinned to a CPU. Under
	// UP it additionally plays the role of assigned[0]: its head is the
	// current running task (spec.md §3).
	ReadyToRun *queue.TCBDoublyLinkedList
	// Assigned is nil under UP. Under SMP, Assigned[c].First() is
	// always the task RUNNING on CPU c (spec.md invariant P2).
	Assigned []*queue.TCBDoublyLinkedList
	// Pending holds tasks withheld from dispatch by a held lock
	// (spec.md §3, "pendingtasks").
	Pending *queue.TCBDoublyLinkedList

	Locks *lockstate.LockState

	// CPUSelect is the cpu_select collaborator (spec.md §1), pluggable
	// per spec.md §9 OQ2's "must be inherited from the collaborator's
	// contract" note.
	CPUSelect CPUSelectFunc
	// Pauser is the cpu_pause/cpu_resume collaborator (spec.md §4.D.5).
	Pauser smp.Pauser
	// CurrentCPU returns current_cpu(): the caller's CPU identity,
	// stable within a critical section (spec.md §6). Ignored under UP.
	CurrentCPU func() int
	// InInterrupt returns interrupt_context() (spec.md §6), used only by
	// lockstate.LockedElsewhere's assertion.
	InInterrupt func() bool

	Log *trust.Logger

	queueCapacity int
}

// Option configures a Kernel at construction time.
type Option func(*Kernel)

// WithLogger overrides the default trust.Logger.
func WithLogger(l *trust.Logger) Option {
	return func(k *Kernel) { k.Log = l }
}

// WithCPUSelect overrides the default lowest-priority-head CPU selector.
func WithCPUSelect(fn CPUSelectFunc) Option {
	return func(k *Kernel) { k.CPUSelect = fn }
}

// WithPauser overrides the default smp.NoopPauser.
func WithPauser(p smp.Pauser) Option {
	return func(k *Kernel) { k.Pauser = p }
}

// WithCurrentCPU overrides current_cpu(); useful in tests to pin "me" to
// a specific CPU without real per-goroutine CPU affinity.
func WithCurrentCPU(fn func() int) Option {
	return func(k *Kernel) { k.CurrentCPU = fn }
}

// WithInterruptContext overrides interrupt_context().
func WithInterruptContext(fn func() bool) Option {
	return func(k *Kernel) { k.InInterrupt = fn }
}

// WithQueueCapacity sets the fixed capacity of each role queue's node
// pool (spec.md §4.A: prio_insert must not allocate). Defaults to 256.
func WithQueueCapacity(n int) Option {
	return func(k *Kernel) { k.queueCapacity = n }
}

// New returns a Kernel for ncpu CPUs (ncpu == 1 selects the UP contract of
// spec.md §4.C; ncpu > 1 selects the SMP contract of §4.D), in the
// pre-OSReady boot phase.
func New(ncpu int, opts ...Option) *Kernel {
	if ncpu < 1 {
		panic("sched: ncpu must be >= 1")
	}
	k := &Kernel{
		NCPU:          ncpu,
		SMP:           ncpu > 1,
		Locks:         lockstate.NewLockState(ncpu),
		Pauser:        smp.NoopPauser{},
		CurrentCPU:    func() int { return 0 },
		InInterrupt:   func() bool { return false },
		Log:           trust.New("sched", trust.ErrorMask|trust.WarnMask),
		queueCapacity: 256,
	}
	for _, opt := range opts {
		opt(k)
	}
	k.CPUSelect = orDefault(k.CPUSelect, DefaultCPUSelect)

	k.ReadyToRun = queue.NewQueue(k.queueCapacity)
	k.Pending = queue.NewQueue(k.queueCapacity)
	if k.SMP {
		k.Assigned = make([]*queue.TCBDoublyLinkedList, ncpu)
		for c := range k.Assigned {
			k.Assigned[c] = queue.NewQueue(k.queueCapacity)
		}
	}
	return k
}

func orDefault(fn CPUSelectFunc, def CPUSelectFunc) CPUSelectFunc {
	if fn != nil {
		return fn
	}
	return def
}

// Ready marks initialization complete: SMP lock-bitmap invariants become
// authoritative from this point on (spec.md §3 "os_initstate", §4.B, §9
// OQ3).
func (k *Kernel) Ready() {
	k.Locks.InitState = lockstate.OSReady
}

// propagateLockBit routes a TCB's hold-count into a LockPair's bitmap
// through the set_bit/clear_bit primitives (spec.md §9), rather than
// touching the bitmap directly.
func propagateLockBit(p *lockstate.LockPair, cpu int, held bool) {
	if held {
		p.SetBit(cpu)
	} else {
		p.ClearBit(cpu)
	}
}

// AddReady is the ready-to-run admission routine of spec.md §4: it
// dispatches to the uniprocessor contract (§4.C) or the SMP contract
// (§4.D) depending on how the Kernel was constructed, and returns true iff
// the caller must now switch to btcb.
func (k *Kernel) AddReady(btcb *tcb.TCB) bool {
	if k.SMP {
		return k.addReadySMP(btcb)
	}
	return k.addReadyUP(btcb)
}

// fatalPauseFailure reports a cpu_pause failure as a fatal assertion per
// spec.md §7: "the kernel cannot make forward progress if a targeted CPU
// will not quiesce."
func (k *Kernel) fatalPauseFailure(cpu int, err error) {
	k.Log.Fatalf("cpu_pause(%d) failed: %v (%s)", cpu, err,
		kerrors.New(kerrors.SubsystemScheduler, kerrors.ErrNumPauseFailed, cpu))
}
