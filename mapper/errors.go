package mapper

import (
	"gopkg.in/src-d/go-errors.v1"
)

var (
	// ErrUnsupportedRootType is returned when a codec is requested for a type that is not
	// a struct or a pointer to a struct.
	ErrUnsupportedRootType = errors.NewKind("unsupported root type %s: expected a struct or a pointer to a struct")

	// ErrDuplicateCaster is returned when two casters are registered for the same type.
	ErrDuplicateCaster = errors.NewKind("caster for %s registered more than once")
)
