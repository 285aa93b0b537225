package store

import (
	"fmt"
	"testing"
)

var benchSink Entry

func BenchmarkLRUPut(b *testing.B) {
	s, err := NewLRU(1 << 20)
	if err != nil {
		b.Fatal(err)
	}
	e := entry(4 << 10)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; b.Loop(); i++ {
		s.Put(fmt.Sprintf("key-%d", i%1024), e)
	}
}

func BenchmarkLRUGet(b *testing.B) {
	s, err := NewLRU(1 << 20)
	if err != nil {
		b.Fatal(err)
	}
	const numKeys = 128
	for i := range numKeys {
		s.Put(fmt.Sprintf("key-%d", i), entry(1<<10))
	}
	keys := make([]string, numKeys)
	for i := range keys {
		keys[i] = fmt.Sprintf("key-%d", i)
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; b.Loop(); i++ {
		e, _ := s.Get(keys[i%numKeys])
		benchSink = e
	}
}
