package node

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/davecgh/go-spew/spew"

	"query-mapper/flat"
	"query-mapper/internal/common"
	"query-mapper/internal/diagnostic"
	"query-mapper/primitive"
)

var ErrNotComposite = errors.New("type is not a struct or pointer to struct")

// FlattenStep writes the keys of one field of the struct v into dst.
type FlattenStep func(v reflect.Value, dst flat.Map)

// UnflattenStep populates one field of the addressable struct v from src.
// It reports whether any key belonging to the field was present.
type UnflattenStep func(src flat.Map, v reflect.Value) bool

// Builder walks struct types and produces their plans.
// The zero value uses DefaultSeparator, DefaultTagKey and no custom casters.
type Builder struct {
	Separator string
	TagKey    string
	Casters   Casters
}

// FlattenPlan is the compiled struct to flat map conversion of one level and everything
// below it.
type FlattenPlan struct {
	Type        reflect.Type
	Steps       []FlattenStep
	Keys        []string
	Diagnostics diagnostic.Diagnostics
}

// Run appends the keys of the struct v to dst.
func (p *FlattenPlan) Run(v reflect.Value, dst flat.Map) {
	for _, step := range p.Steps {
		step(v, dst)
	}
}

// UnflattenPlan is the compiled flat map to struct conversion of one level and everything
// below it.
type UnflattenPlan struct {
	Type        reflect.Type
	Steps       []UnflattenStep
	Keys        []string
	Diagnostics diagnostic.Diagnostics
}

// Run populates the addressable struct v from src and reports whether any key was present.
func (p *UnflattenPlan) Run(src flat.Map, v reflect.Value) bool {
	return runUnflatten(p.Steps, src, v)
}

// Plan is the pair of compiled conversions of a root type.
type Plan struct {
	Root      reflect.Type // as requested, possibly a pointer
	Flatten   *FlattenPlan
	Unflatten *UnflattenPlan
}

// Keys returns every key the plan can emit, in emission order.
func (p *Plan) Keys() []string {
	return append([]string(nil), p.Flatten.Keys...)
}

// Diagnostics returns what the plan leaves out.
func (p *Plan) Diagnostics() diagnostic.Diagnostics {
	return p.Flatten.Diagnostics
}

var dumpConfig = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	DisableMethods:          true,
}

// Dump renders the plan's type, keys and diagnostics for debugging.
func (p *Plan) Dump() string {
	diags := p.Diagnostics()

	summary := struct {
		Type        string
		Keys        []string
		Diagnostics []string
	}{Type: common.TypeName(p.Root), Keys: p.Keys()}

	for _, d := range diags.All() {
		summary.Diagnostics = append(summary.Diagnostics, d.String())
	}

	return dumpConfig.Sdump(summary)
}

// Compile builds the flatten and unflatten plans of root, which must be a struct or a
// pointer to one. The root type itself starts outside the trail, so a struct holding a
// pointer to its own type is expanded exactly once.
func (b *Builder) Compile(root reflect.Type) (*Plan, error) {
	if root == nil || !IsComposite(root, b.Casters) {
		return nil, fmt.Errorf("%s: %w", common.TypeName(root), ErrNotComposite)
	}

	t := base(root)
	stem := NewStem(b.Separator)

	return &Plan{
		Root:      root,
		Flatten:   b.BuildFlattenPlan(t, stem, nil),
		Unflatten: b.BuildUnflattenPlan(t, stem, nil),
	}, nil
}

// BuildFlattenPlan compiles the struct to flat map conversion of struct type t, keyed
// under stem, skipping every struct type already on trail.
func (b *Builder) BuildFlattenPlan(t reflect.Type, stem Stem, trail *Trail) *FlattenPlan {
	st := newWalkState(t)
	steps := b.flattenLevel(st, t, stem, trail)

	return &FlattenPlan{Type: t, Steps: steps, Keys: st.keys, Diagnostics: st.diags}
}

// BuildUnflattenPlan compiles the flat map to struct conversion of struct type t, keyed
// under stem, skipping every struct type already on trail.
func (b *Builder) BuildUnflattenPlan(t reflect.Type, stem Stem, trail *Trail) *UnflattenPlan {
	st := newWalkState(t)
	steps := b.unflattenLevel(st, t, stem, trail)

	return &UnflattenPlan{Type: t, Steps: steps, Keys: st.keys, Diagnostics: st.diags}
}

func (b *Builder) flattenLevel(st *walkState, t reflect.Type, stem Stem, trail *Trail) []FlattenStep {
	scalars, composites := b.level(st, t, stem)
	steps := make([]FlattenStep, 0, len(scalars)+len(composites))

	for _, f := range scalars {
		key := st.key(stem.Key(f.Segment))
		if f.Type.Kind() == reflect.Pointer {
			steps = append(steps, flattenNilable(f.Index, key, b.formatter(f.Type)))
		} else {
			steps = append(steps, flattenScalar(f.Index, key, b.formatter(f.Type)))
		}
	}

	for _, f := range composites {
		ct, child, ok := st.enter(f, stem, trail)
		if !ok {
			continue
		}

		childSteps := b.flattenLevel(st, ct, child, trail.With(ct))
		if len(childSteps) == 0 {
			st.empty(f, ct, child)
			continue
		}

		if f.IsPointer() {
			steps = append(steps, flattenPointer(f.Index, childSteps))
		} else {
			steps = append(steps, flattenStruct(f.Index, childSteps))
		}
	}

	return steps
}

func (b *Builder) unflattenLevel(st *walkState, t reflect.Type, stem Stem, trail *Trail) []UnflattenStep {
	scalars, composites := b.level(st, t, stem)
	steps := make([]UnflattenStep, 0, len(scalars)+len(composites))

	for _, f := range scalars {
		key := st.key(stem.Key(f.Segment))
		steps = append(steps, unflattenScalar(f.Index, key, b.parser(f.Type)))
	}

	for _, f := range composites {
		ct, child, ok := st.enter(f, stem, trail)
		if !ok {
			continue
		}

		childSteps := b.unflattenLevel(st, ct, child, trail.With(ct))
		if len(childSteps) == 0 {
			st.empty(f, ct, child)
			continue
		}

		if f.IsPointer() {
			steps = append(steps, unflattenPointer(f.Index, ct, childSteps))
		} else {
			steps = append(steps, unflattenStruct(f.Index, ct, childSteps))
		}
	}

	return steps
}

// level lists the fields of t, recording ignored ones, split into scalars and the rest.
func (b *Builder) level(st *walkState, t reflect.Type, stem Stem) (scalars, composites []Field) {
	fields, ignored := Fields(t, b.TagKey, b.Casters)
	for _, f := range ignored {
		st.diags.AddInfo(diagnostic.CodeFieldIgnored,
			fmt.Sprintf("field %s.%s is excluded by its tag", common.TypeName(t), f.Name), st.root, stem.Key(f.Segment))
	}

	return partition(fields)
}

func (b *Builder) formatter(t reflect.Type) primitive.Formatter {
	if c, ok := b.Casters[t]; ok {
		return c.Format
	}

	return primitive.FormatterFor(t)
}

func (b *Builder) parser(t reflect.Type) primitive.Parser {
	if c, ok := b.Casters[t]; ok {
		return c.Parse
	}

	return primitive.ParserFor(t)
}

// walkState is the per-build bookkeeping shared by all levels of one plan.
type walkState struct {
	root  string
	keys  []string
	taken map[string]struct{}
	diags diagnostic.Diagnostics
}

func newWalkState(t reflect.Type) *walkState {
	return &walkState{root: common.TypeName(t), taken: make(map[string]struct{})}
}

// key records an emitted key, flagging duplicates produced by renaming tags.
func (st *walkState) key(key string) string {
	if _, ok := st.taken[key]; ok {
		st.diags.AddWarning(diagnostic.CodeDuplicateKey,
			"key is produced by more than one field; loading reads the first value for every one of them", st.root, key)
	}

	st.taken[key] = struct{}{}
	st.keys = append(st.keys, key)

	return key
}

// enter decides whether the composite field f is walked. It returns the struct type to
// walk and the child stem, or false when the field is dropped.
func (st *walkState) enter(f Field, stem Stem, trail *Trail) (reflect.Type, Stem, bool) {
	child := stem.Child(f.Segment)

	if f.Dispatch == DispatcherUnsupported {
		st.diags.AddWarning(diagnostic.CodeUnsupportedType,
			fmt.Sprintf("field %s of type %s has no flat representation", f.Name, f.Type), st.root, child.Path())
		return nil, child, false
	}

	ct := base(f.Type)
	if trail.Contains(ct) {
		st.diags.AddWarning(diagnostic.CodeRecursionTruncated,
			fmt.Sprintf("field %s re-enters %s, which is already on the path", f.Name, common.TypeName(ct)), st.root, child.Path())
		return nil, child, false
	}

	return ct, child, true
}

// empty records a walked struct field that produced no keys.
func (st *walkState) empty(f Field, ct reflect.Type, child Stem) {
	st.diags.AddWarning(diagnostic.CodeEmptyStruct,
		fmt.Sprintf("field %s of type %s produces no keys", f.Name, common.TypeName(ct)), st.root, child.Path())
}

func flattenScalar(index int, key string, format primitive.Formatter) FlattenStep {
	return func(v reflect.Value, dst flat.Map) {
		dst.Add(key, format(v.Field(index)))
	}
}

// flattenNilable is flattenScalar for custom scalars of pointer type. A nil pointer emits
// no key and is left nil on load.
func flattenNilable(index int, key string, format primitive.Formatter) FlattenStep {
	return func(v reflect.Value, dst flat.Map) {
		fv := v.Field(index)
		if fv.IsNil() {
			return
		}

		dst.Add(key, format(fv))
	}
}

// flattenStruct walks a struct field in place; the parent owns the value.
func flattenStruct(index int, steps []FlattenStep) FlattenStep {
	return func(v reflect.Value, dst flat.Map) {
		fv := v.Field(index)
		for _, step := range steps {
			step(fv, dst)
		}
	}
}

// flattenPointer walks the struct a pointer field refers to. A nil pointer emits no keys.
func flattenPointer(index int, steps []FlattenStep) FlattenStep {
	return func(v reflect.Value, dst flat.Map) {
		fv := v.Field(index)
		if fv.IsNil() {
			return
		}

		fv = fv.Elem()
		for _, step := range steps {
			step(fv, dst)
		}
	}
}

// unflattenScalar leaves the field at its zero value when the key is absent or its text
// does not parse.
func unflattenScalar(index int, key string, parse primitive.Parser) UnflattenStep {
	return func(src flat.Map, v reflect.Value) bool {
		text, ok := src.Get(key)
		if !ok {
			return false
		}

		parse(text, v.Field(index))
		return true
	}
}

// unflattenStruct populates a fresh child value and writes it back into the parent,
// which owns the copy.
func unflattenStruct(index int, t reflect.Type, steps []UnflattenStep) UnflattenStep {
	return func(src flat.Map, v reflect.Value) bool {
		child := reflect.New(t).Elem()
		touched := runUnflatten(steps, src, child)
		v.Field(index).Set(child)

		return touched
	}
}

// unflattenPointer allocates the child and shares it with the parent only if at least one
// of its keys was present, so a nil pointer stays nil.
func unflattenPointer(index int, t reflect.Type, steps []UnflattenStep) UnflattenStep {
	return func(src flat.Map, v reflect.Value) bool {
		child := reflect.New(t)
		if !runUnflatten(steps, src, child.Elem()) {
			return false
		}

		v.Field(index).Set(child)
		return true
	}
}

func runUnflatten(steps []UnflattenStep, src flat.Map, v reflect.Value) bool {
	touched := false
	for _, step := range steps {
		if step(src, v) {
			touched = true
		}
	}

	return touched
}
