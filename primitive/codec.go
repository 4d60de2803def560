package primitive

import (
	"reflect"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// Formatter renders a scalar value as query string text.
type Formatter func(v reflect.Value) string

// Parser parses text into dst, which must be settable. It reports false and leaves dst
// untouched when the text does not hold a valid value of the destination type.
type Parser func(text string, dst reflect.Value) bool

// FormatterFor returns the formatter of a scalar type, or nil if rtype is not scalar.
func FormatterFor(rtype reflect.Type) Formatter {
	kind := FromReflectType(rtype)
	if kind == KindPrimitiveEnum {
		kind = EnumBase(rtype)
	}

	switch {
	case kind == KindString:
		return formatString
	case kind == KindBool:
		return formatBool
	case kind.IsSigned():
		return formatInt
	case kind.IsUnsigned():
		return formatUint
	case kind == KindFloat32:
		return formatFloat32
	case kind == KindFloat64:
		return formatFloat64
	case kind == KindDecimal:
		return formatDecimal
	case kind == KindTime:
		return formatTime
	case kind == KindDuration:
		return formatDuration
	default:
		return nil
	}
}

// ParserFor returns the parser of a scalar type, or nil if rtype is not scalar.
func ParserFor(rtype reflect.Type) Parser {
	kind := FromReflectType(rtype)
	if kind == KindPrimitiveEnum {
		kind = EnumBase(rtype)
	}

	switch {
	case kind == KindString:
		return parseString
	case kind == KindBool:
		return parseBool
	case kind.IsSigned():
		return intParser(kind.Bits())
	case kind.IsUnsigned():
		return uintParser(kind.Bits())
	case kind.IsFloat():
		return floatParser(kind.Bits())
	case kind == KindDecimal:
		return parseDecimal
	case kind == KindTime:
		return parseTime
	case kind == KindDuration:
		return parseDuration
	default:
		return nil
	}
}

// Format renders v as text. It panics if v's type is not scalar.
func Format(v reflect.Value) string {
	format := FormatterFor(v.Type())
	if format == nil {
		panic("primitive: cannot format non-scalar type " + v.Type().String())
	}

	return format(v)
}

// Parse converts text into a new value of rtype. Unparsable text yields the zero value of
// rtype and false; it never fails otherwise. It panics if rtype is not scalar.
func Parse(rtype reflect.Type, text string) (reflect.Value, bool) {
	parse := ParserFor(rtype)
	if parse == nil {
		panic("primitive: cannot parse non-scalar type " + rtype.String())
	}

	dst := reflect.New(rtype).Elem()
	if !parse(text, dst) {
		return dst, false
	}

	return dst, true
}

func formatString(v reflect.Value) string { return v.String() }
func formatBool(v reflect.Value) string   { return strconv.FormatBool(v.Bool()) }
func formatInt(v reflect.Value) string    { return strconv.FormatInt(v.Int(), 10) }
func formatUint(v reflect.Value) string   { return strconv.FormatUint(v.Uint(), 10) }

func formatFloat32(v reflect.Value) string {
	return strconv.FormatFloat(v.Float(), 'g', -1, 32)
}

func formatFloat64(v reflect.Value) string {
	return strconv.FormatFloat(v.Float(), 'g', -1, 64)
}

func formatDecimal(v reflect.Value) string {
	return v.Interface().(decimal.Decimal).String()
}

func formatTime(v reflect.Value) string {
	return v.Interface().(time.Time).Format(time.RFC3339Nano)
}

func formatDuration(v reflect.Value) string {
	return time.Duration(v.Int()).String()
}

func parseString(text string, dst reflect.Value) bool {
	dst.SetString(text)
	return true
}

func parseBool(text string, dst reflect.Value) bool {
	b, err := strconv.ParseBool(text)
	if err != nil {
		return false
	}

	dst.SetBool(b)
	return true
}

func intParser(bits int) Parser {
	return func(text string, dst reflect.Value) bool {
		n, err := strconv.ParseInt(text, 10, bits)
		if err != nil {
			return false
		}

		dst.SetInt(n)
		return true
	}
}

func uintParser(bits int) Parser {
	return func(text string, dst reflect.Value) bool {
		n, err := strconv.ParseUint(text, 10, bits)
		if err != nil {
			return false
		}

		dst.SetUint(n)
		return true
	}
}

func floatParser(bits int) Parser {
	return func(text string, dst reflect.Value) bool {
		f, err := strconv.ParseFloat(text, bits)
		if err != nil {
			return false
		}

		dst.SetFloat(f)
		return true
	}
}

func parseDecimal(text string, dst reflect.Value) bool {
	d, err := decimal.NewFromString(text)
	if err != nil {
		return false
	}

	dst.Set(reflect.ValueOf(d))
	return true
}

func parseTime(text string, dst reflect.Value) bool {
	t, err := time.Parse(time.RFC3339Nano, text)
	if err != nil {
		return false
	}

	dst.Set(reflect.ValueOf(t))
	return true
}

func parseDuration(text string, dst reflect.Value) bool {
	d, err := time.ParseDuration(text)
	if err != nil {
		return false
	}

	dst.SetInt(int64(d))
	return true
}
