// Package lockstate implements the global lock bitmaps described in
// spec.md §3 ("Global lock state") and §9 ("cyclic state references"):
// cpu_schedlock/cpu_lockset and cpu_irqlock/cpu_irqset, plus the CPU
// bitset used for task affinity masks.
//
// The bit-twiddling is adapted from the teacher's lib/upbeat/bitset.go,
// which used unsafe.Pointer arithmetic over a statically-placed array
// because it ran on bare metal with no heap. nimbos runs hosted, so the
// same bit layout is kept but backed by a plain []uint64 slice.
package lockstate

import "fmt"

// CPUSet is a bitset of CPU indices, used both for cpu_lockset/cpu_irqset
// and for a TCB's affinity mask.
type CPUSet struct {
	words []uint64
}

// NewCPUSet returns an empty bitset capable of holding CPU indices
// [0, ncpu).
func NewCPUSet(ncpu int) *CPUSet {
	if ncpu <= 0 {
		panic(fmt.Sprintf("lockstate: invalid cpu count %d", ncpu))
	}
	return &CPUSet{words: make([]uint64, (ncpu+63)/64)}
}

func (b *CPUSet) wordAndMask(cpu int) (int, uint64) {
	if cpu < 0 || cpu >= len(b.words)*64 {
		panic(fmt.Sprintf("lockstate: cpu index %d out of range", cpu))
	}
	return cpu >> 6, uint64(1) << uint(cpu%64)
}

// On reports whether bit cpu is set.
func (b *CPUSet) On(cpu int) bool {
	w, mask := b.wordAndMask(cpu)
	return b.words[w]&mask != 0
}

// Set sets bit cpu.
func (b *CPUSet) Set(cpu int) {
	w, mask := b.wordAndMask(cpu)
	b.words[w] |= mask
}

// Clear clears bit cpu.
func (b *CPUSet) Clear(cpu int) {
	w, mask := b.wordAndMask(cpu)
	b.words[w] &^= mask
}

// ClearAll zeroes the whole bitset.
func (b *CPUSet) ClearAll() {
	for i := range b.words {
		b.words[i] = 0
	}
}

// Zero reports whether no bit is set, i.e. cpu_lockset == 0.
func (b *CPUSet) Zero() bool {
	for _, w := range b.words {
		if w != 0 {
			return false
		}
	}
	return true
}

// Each calls fn for every CPU index currently set, in ascending order.
func (b *CPUSet) Each(fn func(cpu int)) {
	for w, word := range b.words {
		if word == 0 {
			continue
		}
		for bit := 0; bit < 64; bit++ {
			if word&(uint64(1)<<uint(bit)) != 0 {
				fn(w*64 + bit)
			}
		}
	}
}
