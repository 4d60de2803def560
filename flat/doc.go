// Package flat provides the flat key/value containers that structs are mapped into.
//
// A container is anything implementing [Map]: an ordered multi-map of strings with
// Add and first-match Get. [Pairs] keeps insertion order and renders it as a query
// string; [Values] adapts a url.Values so existing request parsing can feed Load directly.
package flat
