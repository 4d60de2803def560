package node

import (
	"reflect"

	"query-mapper/primitive"
)

// Casters maps custom scalar types to their registered conversions.
type Casters map[reflect.Type]*ScalarCaster

// Dispatch decides how a field of type t is handled by the walker.
// Custom casters take precedence over the built-in scalar kinds.
func Dispatch(t reflect.Type, casters Casters) DispatcherEnum {
	if t == nil {
		return DispatcherUnknown
	}

	if _, ok := casters[t]; ok {
		return DispatcherScalar
	}

	if primitive.IsScalar(t) {
		return DispatcherScalar
	}

	switch t.Kind() {
	case reflect.Struct:
		return DispatcherStruct
	case reflect.Pointer:
		elem := t.Elem()
		if _, custom := casters[elem]; custom || elem.Kind() != reflect.Struct || primitive.IsScalar(elem) {
			return DispatcherUnsupported
		}

		return DispatcherPointer
	default:
		return DispatcherUnsupported
	}
}

// IsComposite reports whether t is walked field by field.
func IsComposite(t reflect.Type, casters Casters) bool {
	switch Dispatch(t, casters) {
	case DispatcherStruct, DispatcherPointer:
		return true
	default:
		return false
	}
}

// base strips one level of pointer from a composite type, giving the struct type used as
// its identity on the trail.
func base(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	return t
}
