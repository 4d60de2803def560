// Package diagnostic records what a compiled codec leaves out.
//
// Mapping never fails on a field; fields that cannot be represented are dropped
// and a diagnostic explains why:
//   - Recursion truncated: a struct type already entered on the current path
//   - Unsupported field types: slices, maps, interfaces and the like
//   - Struct fields with no exported fields to flatten
//   - Duplicate keys produced by renaming tags
//   - Fields ignored by tag
package diagnostic
