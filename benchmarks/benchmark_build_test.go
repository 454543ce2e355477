package schemagen_test

import (
	"reflect"
	"testing"

	"github.com/reoring/schemagen"
	"github.com/reoring/schemagen/examples/models"
	"github.com/reoring/schemagen/jsonschema"
	"github.com/reoring/schemagen/sink"
)

func Benchmark_Build_Person(b *testing.B) {
	typ := reflect.TypeOf(models.Person{})
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := schemagen.Build(typ); err != nil {
			b.Fatal(err)
		}
	}
}

func Benchmark_Build_SelfReference(b *testing.B) {
	typ := reflect.TypeOf(models.Node{})
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := schemagen.Build(typ); err != nil {
			b.Fatal(err)
		}
	}
}

func Benchmark_Render_Person(b *testing.B) {
	s, err := schemagen.Build(reflect.TypeOf(models.Person{}))
	if err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := jsonschema.Render(s); err != nil {
			b.Fatal(err)
		}
	}
}

// Memory sink: measures the pipeline without disk I/O.
func Benchmark_Generate_Batch(b *testing.B) {
	reg := schemagen.NewRegistry().
		MustRegister(models.Person{}, models.Address{}, models.Node{}, models.Drawing{}).
		RegisterVariants((*models.Shape)(nil), models.Circle{}, models.Square{})
	names := reg.Names()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		rep := schemagen.New(reg, sink.NewMemory(), schemagen.WithLogger(quietLogger)).Generate(names)
		if err := rep.Err(); err != nil {
			b.Fatal(err)
		}
	}
}
