package retail

import "math/rand/v2"

// Choice is a value with its relative weight.
type Choice[T any] struct {
	Value  T
	Weight float64
}

// Weighted is an immutable discrete distribution over a fixed set of values.
type Weighted[T any] struct {
	values []T
	cum    []float64
	total  float64
}

// NewWeighted builds a distribution from (value, weight) pairs. Weights need
// not sum to one; non-positive weights make a value unreachable.
func NewWeighted[T any](choices ...Choice[T]) Weighted[T] {
	w := Weighted[T]{
		values: make([]T, len(choices)),
		cum:    make([]float64, len(choices)),
	}
	for i, c := range choices {
		if c.Weight > 0 {
			w.total += c.Weight
		}
		w.values[i] = c.Value
		w.cum[i] = w.total
	}
	return w
}

// Uniform builds a distribution giving every value the same weight.
func Uniform[T any](values ...T) Weighted[T] {
	choices := make([]Choice[T], len(values))
	for i, v := range values {
		choices[i] = Choice[T]{Value: v, Weight: 1}
	}
	return NewWeighted(choices...)
}

// Pick draws one value using r. It consumes exactly one Float64 from r.
func (w Weighted[T]) Pick(r *rand.Rand) T {
	x := r.Float64() * w.total
	// linear scan, tables here have at most a handful of entries
	for i, c := range w.cum {
		if x < c {
			return w.values[i]
		}
	}
	return w.values[len(w.values)-1]
}

// Values returns the support of the distribution in declaration order.
func (w Weighted[T]) Values() []T {
	out := make([]T, len(w.values))
	copy(out, w.values)
	return out
}

// Len returns the number of values.
func (w Weighted[T]) Len() int { return len(w.values) }

// pick returns a uniformly chosen element of s.
func pick[T any](r *rand.Rand, s []T) T {
	return s[r.IntN(len(s))]
}
