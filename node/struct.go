package node

import (
	"reflect"
	"strings"
)

// DefaultTagKey is the struct tag consulted for key segment names.
const DefaultTagKey = "qs"

// Field is one exported struct field as seen by the walker.
type Field struct {
	Name     string // Go field name
	Segment  string // key segment: the tag name or the Go field name
	Index    int    // field index in the struct
	Type     reflect.Type
	Dispatch DispatcherEnum
}

// IsPointer reports whether the field shares its composite value with the parent.
func (f Field) IsPointer() bool {
	return f.Dispatch == DispatcherPointer
}

// Fields lists the fields of struct type t in declaration order. Unexported fields
// are left out; fields tagged "-" are returned in ignored.
//
// Segment names come from the tag, e.g.:
//
//	// Field is ignored.
//	Field int `qs:"-"`
//
//	// Field appears under key "id" (or "Parent_id" when nested).
//	Field int `qs:"id"`
func Fields(t reflect.Type, tagKey string, casters Casters) (fields, ignored []Field) {
	if tagKey == "" {
		tagKey = DefaultTagKey
	}

	for i := range t.NumField() {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}

		f := Field{
			Name:     sf.Name,
			Segment:  sf.Name,
			Index:    i,
			Type:     sf.Type,
			Dispatch: Dispatch(sf.Type, casters),
		}

		name, skip := tagName(sf, tagKey)
		if skip {
			ignored = append(ignored, f)
			continue
		}

		if name != "" {
			f.Segment = name
		}

		fields = append(fields, f)
	}

	return fields, ignored
}

// tagName returns the name part of the tag (before any comma) and whether the field is
// excluded with "-".
func tagName(f reflect.StructField, tagKey string) (string, bool) {
	tag := f.Tag.Get(tagKey)
	if tag == "-" {
		return "", true
	}

	if idx := strings.IndexByte(tag, ','); idx >= 0 {
		tag = tag[:idx]
	}

	return tag, false
}
