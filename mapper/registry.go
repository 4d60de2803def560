package mapper

import (
	"context"
	"fmt"
	"reflect"
	"sync"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"query-mapper/flat"
	"query-mapper/internal/common"
	"query-mapper/node"
	"query-mapper/options"
)

// Default is the process-wide registry used when no registry is given.
var Default = newRegistry(options.Default(), nil)

// Registry caches the compiled conversions of each root type. It is safe for
// concurrent use; entries are built once and never removed.
type Registry struct {
	builder node.Builder
	logger  *logrus.Logger

	entries sync.Map // reflect.Type -> *entry
}

type entry struct {
	once     sync.Once
	compiled *Compiled
	err      error
}

// NewRegistry creates an empty registry configured by opts.
func NewRegistry(opts ...options.Option) (*Registry, error) {
	o := options.Apply(opts...)

	casters := make(node.Casters, len(o.Casters))
	for _, pair := range o.Casters {
		sc, err := node.NewScalarCaster(pair.Format, pair.Parse)
		if err != nil {
			return nil, fmt.Errorf("register caster: %w", err)
		}

		if _, ok := casters[sc.Type]; ok {
			return nil, ErrDuplicateCaster.New(common.TypeName(sc.Type))
		}

		casters[sc.Type] = sc
	}

	return newRegistry(o, casters), nil
}

func newRegistry(o options.Options, casters node.Casters) *Registry {
	return &Registry{
		builder: node.Builder{Separator: o.Separator, TagKey: o.TagKey, Casters: casters},
		logger:  o.Logger,
	}
}

// Compiled returns the conversion of t, building it on first use. Concurrent first
// requests build once and receive the same *Compiled.
func (r *Registry) Compiled(t reflect.Type) (*Compiled, error) {
	if t == nil || !node.IsComposite(t, r.builder.Casters) {
		return nil, ErrUnsupportedRootType.New(common.TypeName(t))
	}

	v, _ := r.entries.LoadOrStore(t, &entry{})
	e := v.(*entry)
	e.once.Do(func() {
		e.compiled, e.err = r.compile(t)
	})

	return e.compiled, e.err
}

func (r *Registry) compile(t reflect.Type) (*Compiled, error) {
	plan, err := r.builder.Compile(t)
	if err != nil {
		return nil, ErrUnsupportedRootType.Wrap(err, common.TypeName(t))
	}

	diags := plan.Diagnostics()
	name := common.TypeName(t)

	r.logger.WithFields(logrus.Fields{
		"type":     name,
		"keys":     len(plan.Keys()),
		"warnings": len(diags.Warnings),
	}).Debug("compiled query codec")

	for _, d := range diags.All() {
		r.logger.WithFields(logrus.Fields{
			"type": name,
			"key":  d.Key,
			"code": d.Code,
		}).Debug(d.Message)
	}

	return &Compiled{Type: t, Plan: plan}, nil
}

// Len returns the number of types the registry holds an entry for.
func (r *Registry) Len() int {
	n := 0
	r.entries.Range(func(_, _ any) bool {
		n++
		return true
	})

	return n
}

// Warm compiles types concurrently and returns the first error. Types not yet started
// are skipped once ctx is done.
func (r *Registry) Warm(ctx context.Context, types ...reflect.Type) error {
	g, ctx := errgroup.WithContext(ctx)

	for _, t := range types {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			_, err := r.Compiled(t)
			return err
		})
	}

	return g.Wait()
}

// Compiled is the immutable conversion of one root type.
type Compiled struct {
	Type reflect.Type // as requested, possibly a pointer to a struct
	Plan *node.Plan
}

// Flatten appends the keys of v, a value of c.Type, to dst. A nil root pointer
// produces no keys.
func (c *Compiled) Flatten(v reflect.Value, dst flat.Map) {
	if v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return
		}

		v = v.Elem()
	}

	c.Plan.Flatten.Run(v, dst)
}

// Unflatten populates the settable v, a value of c.Type, from src. A pointer root is
// always allocated, even when no key is present.
func (c *Compiled) Unflatten(src flat.Map, v reflect.Value) {
	if v.Kind() == reflect.Pointer {
		p := reflect.New(c.Plan.Unflatten.Type)
		c.Plan.Unflatten.Run(src, p.Elem())
		v.Set(p)

		return
	}

	c.Plan.Unflatten.Run(src, v)
}
