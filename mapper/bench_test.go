package mapper_test

import (
	"reflect"
	"testing"

	"query-mapper/flat"
	"query-mapper/mapper"
	"query-mapper/store"
)

func BenchmarkMap(b *testing.B) {
	c := mapper.Must[store.Order]()
	order := store.SampleOrder()

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		c.Map(order)
	}
}

func BenchmarkLoad(b *testing.B) {
	c := mapper.Must[store.Order]()
	src := c.Map(store.SampleOrder())

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		c.Load(src)
	}
}

func BenchmarkRoundTripParallel(b *testing.B) {
	c := mapper.Must[store.Order]()
	order := store.SampleOrder()

	b.ReportAllocs()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			c.Load(c.Map(order))
		}
	})
}

func BenchmarkQueryString(b *testing.B) {
	c := mapper.Must[store.Order]()
	query := c.Map(store.SampleOrder()).Encode()

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		src, err := flat.ParseQuery(query)
		if err != nil {
			b.Fatal(err)
		}

		c.Load(src)
	}
}

func BenchmarkCompile(b *testing.B) {
	t := reflect.TypeFor[store.Order]()

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		reg, err := mapper.NewRegistry()
		if err != nil {
			b.Fatal(err)
		}

		if _, err := reg.Compiled(t); err != nil {
			b.Fatal(err)
		}
	}
}
