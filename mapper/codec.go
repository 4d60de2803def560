package mapper

import (
	"reflect"

	"query-mapper/flat"
	"query-mapper/internal/diagnostic"
)

// Codec converts values of T, a struct or pointer to struct, to and from flat maps.
// A Codec is safe for concurrent use.
type Codec[T any] struct {
	compiled *Compiled
}

// New returns the codec of T from the given registry, or from Default when none is given.
// It fails with ErrUnsupportedRootType when T is not a struct or pointer to struct.
func New[T any](reg ...*Registry) (*Codec[T], error) {
	r := Default
	if len(reg) > 0 && reg[0] != nil {
		r = reg[0]
	}

	compiled, err := r.Compiled(reflect.TypeFor[T]())
	if err != nil {
		return nil, err
	}

	return &Codec[T]{compiled: compiled}, nil
}

// Must is like New but panics on error.
func Must[T any](reg ...*Registry) *Codec[T] {
	c, err := New[T](reg...)
	if err != nil {
		panic(err)
	}

	return c
}

// Map flattens v into a new ordered list of pairs.
func (c *Codec[T]) Map(v T) *flat.Pairs {
	out := flat.NewPairs(len(c.compiled.Plan.Flatten.Keys))
	c.MapInto(v, out)

	return out
}

// MapInto appends the pairs of v to dst.
func (c *Codec[T]) MapInto(v T, dst flat.Map) {
	c.compiled.Flatten(reflect.ValueOf(&v).Elem(), dst)
}

// Load builds a new T from src. Missing keys and unparsable values leave the
// corresponding fields at their zero values.
func (c *Codec[T]) Load(src flat.Map) T {
	var out T
	c.compiled.Unflatten(src, reflect.ValueOf(&out).Elem())

	return out
}

// Keys returns every key Map can produce, in output order.
func (c *Codec[T]) Keys() []string {
	return c.compiled.Plan.Keys()
}

// Diagnostics reports the fields the codec leaves out.
func (c *Codec[T]) Diagnostics() diagnostic.Diagnostics {
	return c.compiled.Plan.Diagnostics()
}

// Dump renders the compiled plan for debugging.
func (c *Codec[T]) Dump() string {
	return c.compiled.Plan.Dump()
}

// Map flattens v with the Default registry.
func Map[T any](v T) (*flat.Pairs, error) {
	c, err := New[T]()
	if err != nil {
		return nil, err
	}

	return c.Map(v), nil
}

// Load builds a T from src with the Default registry.
func Load[T any](src flat.Map) (T, error) {
	c, err := New[T]()
	if err != nil {
		var zero T
		return zero, err
	}

	return c.Load(src), nil
}
