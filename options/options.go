// Package options configures how codecs are compiled: the key separator, the struct tag
// consulted for names, the logger and custom scalar casters.
package options

import (
	"github.com/sirupsen/logrus"
)

const (
	DefaultSeparator = "_"
	DefaultTagKey    = "qs"
)

// CasterPair is a format/parse function pair for one custom scalar type.
// See node.NewScalarCaster for the accepted signatures.
type CasterPair struct {
	Format any
	Parse  any
}

type Options struct {
	Separator string
	TagKey    string
	Logger    *logrus.Logger
	Casters   []CasterPair
}

type Option func(*Options)

// Default returns the options used when none are given.
func Default() Options {
	return Options{
		Separator: DefaultSeparator,
		TagKey:    DefaultTagKey,
		Logger:    logrus.StandardLogger(),
	}
}

// Apply returns Default with opts applied in order.
func Apply(opts ...Option) Options {
	o := Default()
	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// WithSeparator sets the string joining nested field names. Empty keeps the current one.
func WithSeparator(sep string) Option {
	return func(o *Options) {
		if sep != "" {
			o.Separator = sep
		}
	}
}

// WithTagKey sets the struct tag consulted for key names. Empty keeps the current one.
func WithTagKey(key string) Option {
	return func(o *Options) {
		if key != "" {
			o.TagKey = key
		}
	}
}

// WithLogger sets the logger compilation reports to. Nil keeps the current one.
func WithLogger(logger *logrus.Logger) Option {
	return func(o *Options) {
		if logger != nil {
			o.Logger = logger
		}
	}
}

// WithCaster registers a conversion for a scalar type outside the built-in set.
// The pair is validated when the registry is created.
func WithCaster(format, parse any) Option {
	return func(o *Options) {
		o.Casters = append(o.Casters, CasterPair{Format: format, Parse: parse})
	}
}
