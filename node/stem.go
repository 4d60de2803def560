package node

// DefaultSeparator joins the field names of nested levels.
const DefaultSeparator = "_"

// NewStem creates a root Stem that joins levels with separator.
// An empty separator falls back to DefaultSeparator.
func NewStem(separator string) Stem {
	if separator == "" {
		separator = DefaultSeparator
	}

	return Stem{separator: separator}
}

// Stem is the key prefix of one level of a plan. At the root the prefix is empty;
// each nested level appends the parent's field name and the separator.
type Stem struct {
	prefix    string
	separator string
}

// Key returns the flattened key of a scalar field named name at this level.
func (s Stem) Key(name string) string {
	return s.prefix + name
}

// Child returns the stem of the nested level reached through the field named name.
func (s Stem) Child(name string) Stem {
	return Stem{prefix: s.prefix + name + s.separator, separator: s.separator}
}

// Prefix returns the accumulated key prefix, separator included.
func (s Stem) Prefix() string {
	return s.prefix
}

// Path returns the prefix without its trailing separator: the key the nested level
// would have had if it were a scalar.
func (s Stem) Path() string {
	if s.prefix == "" {
		return ""
	}

	return s.prefix[:len(s.prefix)-len(s.separator)]
}
