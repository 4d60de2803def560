package node

import (
	"errors"
	"fmt"
	"reflect"

	"query-mapper/primitive"
)

var (
	ErrIsNotACaster         = errors.New("provided function is not a recognizable caster")
	ErrCasterIsNotAFunction = errors.New("provided caster is not a function")
	ErrDoublePointer        = errors.New("caster function does not support double pointers")
	ErrCasterNotText        = errors.New("caster must convert between a type and string")
	ErrCasterMismatch       = errors.New("format and parse casters disagree on the scalar type")
	ErrCasterBuiltin        = errors.New("caster cannot override a built-in scalar or string type")
)

var stringType = reflect.TypeFor[string]()

type Caster struct {
	Src, Dst     reflect.Type
	PackageAlias string
	Name         string
	HasBool      bool
	HasErr       bool

	fn reflect.Value
}

// ParseCaster inspects the provided function and returns a Caster struct if it is a valid caster function.
//
// Supports interfaces:
//   - func(src Type) (dst Type)
//   - func(src Type) (dst Type, bool)
//   - func(src Type) (dst Type, error)
//   - func(src Type) (dst Type, bool, error)
func ParseCaster(fn any) (Caster, error) {
	fnVal := reflect.ValueOf(fn)
	if fn == nil || fnVal.Kind() != reflect.Func || fnVal.IsNil() {
		return Caster{}, ErrCasterIsNotAFunction
	}

	fnType := fnVal.Type()
	if fnType.NumIn() != 1 || fnType.NumOut() == 0 || fnType.IsVariadic() {
		return Caster{}, ErrIsNotACaster
	}

	src := fnType.In(0)
	if src.Kind() == reflect.Pointer && src.Elem().Kind() == reflect.Pointer {
		return Caster{}, ErrDoublePointer
	}

	dst := fnType.Out(0)
	if dst.Kind() == reflect.Pointer && dst.Elem().Kind() == reflect.Pointer {
		return Caster{}, ErrDoublePointer
	}

	alias, name := funcName(fnVal)

	caster := Caster{
		Src:          src,
		Dst:          dst,
		Name:         name,
		PackageAlias: alias,
		fn:           fnVal,
	}

	switch fnType.NumOut() {
	default:
		return Caster{}, ErrIsNotACaster

	case 1:
		return caster, nil

	case 2:
		last := fnType.Out(1)

		switch {
		default:
			return Caster{}, ErrIsNotACaster
		case last.Kind() == reflect.Bool:
			caster.HasBool = true
		case isError(last):
			caster.HasErr = true
		}
		return caster, nil

	case 3:
		tbool, terr := fnType.Out(1), fnType.Out(2)
		if tbool.Kind() != reflect.Bool || !isError(terr) {
			return Caster{}, ErrIsNotACaster
		}

		caster.HasBool = true
		caster.HasErr = true
		return caster, nil
	}
}

// String returns the qualified function name, e.g. "strconv.Itoa".
func (c Caster) String() string {
	if c.PackageAlias == "" {
		return c.Name
	}

	return c.PackageAlias + "." + c.Name
}

// call invokes the caster and folds its optional bool and error results into ok.
func (c Caster) call(in reflect.Value) (reflect.Value, bool) {
	out := c.fn.Call([]reflect.Value{in})

	ok := true
	if c.HasBool {
		ok = out[1].Bool()
	}

	if c.HasErr && !out[len(out)-1].IsNil() {
		ok = false
	}

	return out[0], ok
}

// ScalarCaster converts a custom scalar type to and from text.
type ScalarCaster struct {
	Type   reflect.Type
	Format primitive.Formatter
	Parse  primitive.Parser

	formatter, parser Caster
}

// NewScalarCaster pairs a format caster func(T) string with a parse caster
// func(string) T, func(string) (T, bool) or func(string) (T, error).
// A parse caster reporting false or an error leaves the field at its zero value.
func NewScalarCaster(format, parse any) (*ScalarCaster, error) {
	formatter, err := ParseCaster(format)
	if err != nil {
		return nil, fmt.Errorf("format caster: %w", err)
	}

	parser, err := ParseCaster(parse)
	if err != nil {
		return nil, fmt.Errorf("parse caster: %w", err)
	}

	if formatter.Dst != stringType || formatter.HasBool || formatter.HasErr {
		return nil, fmt.Errorf("format caster %s: %w", formatter, ErrCasterNotText)
	}

	if parser.Src != stringType {
		return nil, fmt.Errorf("parse caster %s: %w", parser, ErrCasterNotText)
	}

	if formatter.Src != parser.Dst {
		return nil, fmt.Errorf("%s takes %s, %s returns %s: %w",
			formatter, formatter.Src, parser, parser.Dst, ErrCasterMismatch)
	}

	t := formatter.Src
	if primitive.IsScalar(t) {
		return nil, fmt.Errorf("%s: %w", t, ErrCasterBuiltin)
	}

	sc := &ScalarCaster{Type: t, formatter: formatter, parser: parser}
	sc.Format = func(v reflect.Value) string {
		out, _ := formatter.call(v)
		return out.String()
	}
	sc.Parse = func(text string, dst reflect.Value) bool {
		out, ok := parser.call(reflect.ValueOf(text))
		if !ok {
			return false
		}

		dst.Set(out)
		return true
	}

	return sc, nil
}

// String describes the caster pair, e.g. "netip.Addr via netip.Addr.String/netip.ParseAddr".
func (sc *ScalarCaster) String() string {
	return fmt.Sprintf("%s via %s/%s", sc.Type, sc.formatter, sc.parser)
}
