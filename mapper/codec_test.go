package mapper_test

import (
	"math"
	"net/netip"
	"net/url"
	"reflect"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"query-mapper/flat"
	"query-mapper/internal/diagnostic"
	"query-mapper/mapper"
	"query-mapper/options"
	"query-mapper/primitive"
	"query-mapper/store"
)

var orderKeys = []string{
	"ID", "Status", "Total", "Discount", "Currency", "Grade", "Flags", "OrderedAt", "Window",
	"Customer_ID", "Customer_Email", "Customer_name", "Customer_IsActive",
	"Customer_Address_Street", "Customer_Address_City", "Customer_Address_zip", "Customer_Address_Country",
	"Category_Code",
}

func TestCodecKeys(t *testing.T) {
	t.Parallel()

	c := mapper.Must[store.Order]()
	assert.Equal(t, orderKeys, c.Keys())
	assert.Equal(t, orderKeys, c.Map(store.SampleOrder()).Keys())
}

func TestCodecRoundTrip(t *testing.T) {
	t.Parallel()

	c := mapper.Must[store.Order]()
	src := store.SampleOrder()

	out := c.Map(src)
	v, ok := out.Get("Customer_Address_zip")
	require.True(t, ok)
	assert.Equal(t, "12345", v)

	v, _ = out.Get("Grade")
	assert.Equal(t, "65", v)

	got := c.Load(out)
	if diff := cmp.Diff(src, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
	assert.NotSame(t, src.Customer, got.Customer)
}

func TestCodecRoundTripThroughQueryString(t *testing.T) {
	t.Parallel()

	c := mapper.Must[store.Order]()
	src := store.SampleOrder()
	src.Customer.FullName = "Jane & John = Roe?"

	parsed, err := flat.ParseQuery(c.Map(src).Encode())
	require.NoError(t, err)

	got := c.Load(parsed)
	if diff := cmp.Diff(src, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}

	values := c.Map(src).Values()
	got = c.Load(flat.Values(values))
	assert.True(t, cmp.Equal(src, got))
}

func TestCodecDiagnostics(t *testing.T) {
	t.Parallel()

	diags := mapper.Must[store.Order]().Diagnostics()

	require.Len(t, diags.Warnings, 2)
	assert.Equal(t, diagnostic.CodeRecursionTruncated, diags.Warnings[0].Code)
	assert.Equal(t, "Category_Parent", diags.Warnings[0].Key)
	assert.Equal(t, diagnostic.CodeUnsupportedType, diags.Warnings[1].Code)
	assert.Equal(t, "Items", diags.Warnings[1].Key)

	require.Len(t, diags.Infos, 1)
	assert.Equal(t, "Customer_Password", diags.Infos[0].Key)
	assert.Len(t, diags.All(), 3)
}

func TestCodecSelfReference(t *testing.T) {
	t.Parallel()

	c := mapper.Must[store.Category]()
	assert.Equal(t, []string{"Code", "Parent_Code"}, c.Keys())

	deep := store.Category{Code: "a", Parent: &store.Category{Code: "b", Parent: &store.Category{Code: "c"}}}
	got := c.Load(c.Map(deep))
	assert.Equal(t, store.Category{Code: "a", Parent: &store.Category{Code: "b"}}, got)
}

func TestCodecUnsupportedRootType(t *testing.T) {
	t.Parallel()

	reg, err := mapper.NewRegistry()
	require.NoError(t, err)

	check := func(err error) {
		t.Helper()
		assert.True(t, mapper.ErrUnsupportedRootType.Is(err), "got %v", err)
	}

	_, err = mapper.New[int](reg)
	check(err)
	_, err = mapper.New[string](reg)
	check(err)
	_, err = mapper.New[store.OrderStatus](reg)
	check(err)
	_, err = mapper.New[time.Time](reg)
	check(err)
	_, err = mapper.New[decimal.Decimal](reg)
	check(err)
	_, err = mapper.New[[]store.Order](reg)
	check(err)
	_, err = mapper.New[map[string]string](reg)
	check(err)
	_, err = mapper.New[any](reg)
	check(err)
	_, err = mapper.Map(42)
	check(err)
	_, err = mapper.Load[float64](flat.NewPairs(0))
	check(err)

	assert.Zero(t, reg.Len())
	assert.Panics(t, func() { mapper.Must[bool](reg) })
}

func TestCodecAbsentAndInvalid(t *testing.T) {
	t.Parallel()

	c := mapper.Must[store.Order]()
	assert.Equal(t, store.Order{}, c.Load(flat.NewPairs(0)))

	src := flat.NewPairs(0)
	src.Add("ID", "twelve")
	src.Add("Status", "300")
	src.Add("Total", "1.2.3")
	src.Add("OrderedAt", "yesterday")
	src.Add("Currency", "USD")
	src.Add("Customer_Address_City", "Paris")

	got := c.Load(src)
	assert.Equal(t, store.Order{
		Currency: "USD",
		Customer: &store.Customer{Address: store.Address{City: "Paris"}},
	}, got)
}

func TestCodecFirstValueWins(t *testing.T) {
	t.Parallel()

	src, err := flat.ParseQuery("Currency=USD&Currency=EUR")
	require.NoError(t, err)

	assert.Equal(t, "USD", mapper.Must[store.Order]().Load(src).Currency)
}

func TestCodecEnumDuplicates(t *testing.T) {
	t.Parallel()

	c := mapper.Must[store.Order]()

	for _, status := range []store.OrderStatus{store.StatusPending, store.StatusNew, store.StatusCancelled, math.MaxInt8} {
		got := c.Load(c.Map(store.Order{Status: status}))
		assert.Equal(t, status, got.Status)
	}

	got := c.Load(c.Map(store.Order{Status: store.StatusPending}))
	assert.Equal(t, store.StatusNew, got.Status)
}

type bounds struct {
	I   int
	I8  int8
	I64 int64
	U   uint
	U16 uint16
	U64 uint64
	R   rune
	B   byte
	F32 float32
	F64 float64
	On  bool
	S   string
	D   time.Duration
}

func TestCodecExactBoundaries(t *testing.T) {
	t.Parallel()

	c := mapper.Must[bounds]()

	for _, v := range []bounds{
		{I: math.MinInt, I8: math.MinInt8, I64: math.MinInt64, R: math.MinInt32, D: -1500 * time.Millisecond},
		{I: math.MaxInt, I8: math.MaxInt8, I64: math.MaxInt64, U: math.MaxUint, U16: math.MaxUint16,
			U64: math.MaxUint64, R: math.MaxInt32, B: math.MaxUint8, On: true, S: "ü&=%", D: 90 * time.Hour},
	} {
		assert.Equal(t, v, c.Load(c.Map(v)))
	}
}

func TestCodecFloatBoundaries(t *testing.T) {
	t.Parallel()

	c := mapper.Must[bounds]()

	for _, f := range []float64{0, -0.1, 1.0 / 3, math.MaxFloat64, -math.MaxFloat64, math.SmallestNonzeroFloat64} {
		want, ok := primitive.Parse(reflect.TypeFor[float64](), primitive.Format(reflect.ValueOf(f)))
		require.True(t, ok)
		assert.Equal(t, want.Float(), c.Load(c.Map(bounds{F64: f})).F64)
	}

	for _, f := range []float32{math.MaxFloat32, -math.MaxFloat32, math.SmallestNonzeroFloat32, 0.1} {
		want, ok := primitive.Parse(reflect.TypeFor[float32](), primitive.Format(reflect.ValueOf(f)))
		require.True(t, ok)
		assert.Equal(t, float32(want.Float()), c.Load(c.Map(bounds{F32: f})).F32)
	}
}

func TestCodecPointerRoot(t *testing.T) {
	t.Parallel()

	c := mapper.Must[*store.Customer]()
	assert.Equal(t, 0, c.Map(nil).Len())

	empty := c.Load(flat.NewPairs(0))
	require.NotNil(t, empty)
	assert.Equal(t, store.Customer{}, *empty)

	src := &store.Customer{ID: 7, Email: "a@b.c", Address: store.Address{Country: "NL"}}
	assert.Equal(t, src, c.Load(c.Map(src)))
}

func TestCodecNilPointerField(t *testing.T) {
	t.Parallel()

	c := mapper.Must[store.Order]()

	out := c.Map(store.Order{ID: 1})
	for _, key := range out.Keys() {
		assert.NotContains(t, key, "Customer_")
	}

	assert.Nil(t, c.Load(out).Customer)
}

func TestCodecSeparatorAndTag(t *testing.T) {
	t.Parallel()

	type page struct {
		Number int    `url:"page"`
		Filter string `url:"q"`
		Order  store.Address
	}

	reg, err := mapper.NewRegistry(options.WithSeparator("."), options.WithTagKey("url"))
	require.NoError(t, err)

	c := mapper.Must[page](reg)
	assert.Equal(t, []string{"page", "q", "Order.Street", "Order.City", "Order.PostalCode", "Order.Country"}, c.Keys())
	assert.Equal(t, "page=2&q=a+b&Order.Street=&Order.City=&Order.PostalCode=&Order.Country=",
		c.Map(page{Number: 2, Filter: "a b"}).Encode())
}

type endpoint struct {
	Host netip.Addr
	Port uint16
}

func TestCodecCustomCaster(t *testing.T) {
	t.Parallel()

	reg, err := mapper.NewRegistry(options.WithCaster(netip.Addr.String, netip.ParseAddr))
	require.NoError(t, err)

	c := mapper.Must[endpoint](reg)
	assert.Equal(t, []string{"Host", "Port"}, c.Keys())

	src := endpoint{Host: netip.MustParseAddr("2001:db8::1"), Port: 8080}
	assert.Equal(t, "Host=2001%3Adb8%3A%3A1&Port=8080", c.Map(src).Encode())
	assert.Equal(t, src, c.Load(c.Map(src)))

	bad := flat.NewPairs(0)
	bad.Add("Host", "nowhere")
	assert.Equal(t, endpoint{}, c.Load(bad))

	// without the caster netip.Addr is walked as a struct with no exported fields
	plain := mapper.Must[endpoint]()
	assert.Equal(t, []string{"Port"}, plain.Keys())

	warnings := plain.Diagnostics().WithCode(diagnostic.CodeEmptyStruct)
	require.Len(t, warnings, 1)
	assert.Equal(t, "Host", warnings[0].Key)
	assert.Equal(t, diagnostic.DiagnosticWarning, warnings[0].Severity)
}

type profile struct {
	Name string
	Home *url.URL
}

func TestCodecPointerCaster(t *testing.T) {
	t.Parallel()

	reg, err := mapper.NewRegistry(options.WithCaster((*url.URL).String, url.Parse))
	require.NoError(t, err)

	c := mapper.Must[profile](reg)
	assert.Equal(t, []string{"Name", "Home"}, c.Keys())

	out := c.Map(profile{Name: "x"})
	assert.Equal(t, []string{"Name"}, out.Keys())
	assert.Equal(t, profile{Name: "x"}, c.Load(out))

	home, err := url.Parse("https://example.com/a?b=c")
	require.NoError(t, err)

	src := profile{Name: "y", Home: home}
	v, ok := c.Map(src).Get("Home")
	require.True(t, ok)
	assert.Equal(t, "https://example.com/a?b=c", v)
	assert.Equal(t, src, c.Load(c.Map(src)))
}

func TestPackageMapLoad(t *testing.T) {
	t.Parallel()

	out := flat.NewPairs(0)
	mapper.Must[store.Address]().MapInto(store.Address{City: "Oslo"}, out)
	out.Add("extra", "1")

	got, err := mapper.Load[store.Address](out)
	require.NoError(t, err)
	assert.Equal(t, store.Address{City: "Oslo"}, got)

	pairs, err := mapper.Map(got)
	require.NoError(t, err)
	assert.Equal(t, 4, pairs.Len())
}

func TestCodecDump(t *testing.T) {
	t.Parallel()

	dump := mapper.Must[store.Category]().Dump()
	assert.Contains(t, dump, `"store.Category"`)
	assert.Contains(t, dump, `"Parent_Code"`)
}
