package primitive_test

import (
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"query-mapper/primitive"
)

func Example() {
	type IntEnum int
	type ByteEnum uint8
	type Name string
	type Empty struct{}

	fmt.Println(primitive.FromReflectType(reflect.TypeOf(int(0))))
	fmt.Println(primitive.FromReflectType(reflect.TypeOf("")))
	fmt.Println(primitive.FromReflectType(reflect.TypeOf(IntEnum(0))))
	fmt.Println(primitive.FromReflectType(reflect.TypeOf(ByteEnum(0))))
	fmt.Println(primitive.FromReflectType(reflect.TypeOf(Name(""))))
	fmt.Println(primitive.FromReflectType(reflect.TypeOf(time.Duration(0))))
	fmt.Println(primitive.FromReflectType(reflect.TypeOf(time.Time{})))
	fmt.Println(primitive.FromReflectType(reflect.TypeOf(decimal.Decimal{})))
	fmt.Println(primitive.FromReflectType(reflect.TypeOf(Empty{})))
	// Output:
	// KindInt
	// KindString
	// KindPrimitiveEnum
	// KindPrimitiveEnum
	// KindString
	// KindDuration
	// KindTime
	// KindDecimal
	// KindEnum(0)
}

type classified struct{ Field int }

func TestIsScalar(t *testing.T) {
	t.Parallel()

	scalars := []any{
		"", false, int(0), int8(0), int16(0), int32(0), int64(0),
		uint(0), uint8(0), uint16(0), uint32(0), uint64(0),
		float32(0), float64(0), 'x', byte(0),
		decimal.Decimal{}, time.Time{}, time.Duration(0),
	}
	for _, v := range scalars {
		assert.True(t, primitive.IsScalar(reflect.TypeOf(v)), "%T", v)
	}

	composites := []any{
		classified{}, &classified{}, []int{}, [2]int{}, map[string]int{},
		complex64(0), struct{}{}, new(int), uintptr(0),
	}
	for _, v := range composites {
		assert.False(t, primitive.IsScalar(reflect.TypeOf(v)), "%T", v)
	}

	assert.False(t, primitive.IsScalar(nil))
}

func TestKindProperties(t *testing.T) {
	t.Parallel()

	assert.True(t, primitive.KindInt8.IsSigned())
	assert.True(t, primitive.KindUint16.IsUnsigned())
	assert.True(t, primitive.KindFloat32.IsFloat())
	assert.True(t, primitive.KindDecimal.IsNumber())
	assert.False(t, primitive.KindDecimal.IsInteger())

	assert.False(t, primitive.KindFloat64.IsExact())
	assert.True(t, primitive.KindDecimal.IsExact())
	assert.True(t, primitive.KindPrimitiveEnum.IsExact())

	assert.Equal(t, 8, primitive.KindUint8.Bits())
	assert.Equal(t, 32, primitive.KindFloat32.Bits())
	assert.Equal(t, 64, primitive.KindInt64.Bits())
	assert.Panics(t, func() { primitive.KindString.Bits() })
}

func TestEnumBase(t *testing.T) {
	t.Parallel()

	type Small int8
	type Large uint64

	assert.Equal(t, primitive.KindInt8, primitive.EnumBase(reflect.TypeFor[Small]()))
	assert.Equal(t, primitive.KindUint64, primitive.EnumBase(reflect.TypeFor[Large]()))
}
