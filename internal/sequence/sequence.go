// Package sequence holds the CPU-bound workload used by the benchmark and the scheduler tests.
package sequence

import "math/bits"

// Uint128 is an unsigned 128-bit integer; arithmetic on it wraps around.
type Uint128 struct {
	Hi, Lo uint64
}

// Add returns a+b modulo 2^128.
func (a Uint128) Add(b Uint128) Uint128 {
	lo, carry := bits.Add64(a.Lo, b.Lo, 0)
	hi, _ := bits.Add64(a.Hi, b.Hi, carry)
	return Uint128{Hi: hi, Lo: lo}
}

// Doubling returns the first n terms of the recurrence curr' = curr + prev, prev' = curr,
// starting from prev = 0, curr = 1 and wrapping at 2^128. The result is freshly allocated and
// grown one term at a time so that each call also exercises the allocator.
func Doubling(n int) []Uint128 {
	var out []Uint128
	prev, curr := Uint128{}, Uint128{Lo: 1}
	for i := 0; i < n; i++ {
		prev, curr = curr, curr.Add(prev)
		out = append(out, curr)
	}
	return out
}
