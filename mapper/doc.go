// Package mapper converts structs to flat, query-string shaped key/value pairs and back.
//
// Nested struct fields are keyed by their path, joined with "_":
//
//	type Inner struct{ TestOne int }
//	type Outer struct {
//		Name  string
//		Inner Inner
//	}
//
//	// Name=x&Inner_TestOne=1
//	mapper.Must[Outer]().Map(Outer{Name: "x", Inner: Inner{TestOne: 1}}).Encode()
//
// The conversion of each type is compiled once per Registry and reused by every Codec
// of that type. A struct type appears at most once on any path below the root: a field
// that re-enters a type already being walked is left out and reported in Diagnostics.
package mapper
