package store

import (
	"bytes"
	"fmt"
	"sync"
	"testing"
)

func TestUnboundedPutGet(t *testing.T) {
	t.Parallel()

	s := NewUnbounded()

	data := []byte("payload")
	s.Put("a", Entry{Data: data, Artifact: "decoded"})

	e, ok := s.Get("a")
	if !ok {
		t.Fatal("Get() ok = false, want true")
	}
	if !bytes.Equal(e.Data, data) {
		t.Errorf("Get() data = %q, want %q", e.Data, data)
	}
	if e.Artifact != "decoded" {
		t.Errorf("Get() artifact = %v, want %q", e.Artifact, "decoded")
	}

	if _, ok := s.Get("missing"); ok {
		t.Error("Get(missing) ok = true, want false")
	}
}

func TestUnboundedSizeAccounting(t *testing.T) {
	t.Parallel()

	s := NewUnbounded()

	s.Put("a", entry(10))
	s.Put("b", entry(20))
	if got := s.SizeBytes(); got != 30 {
		t.Errorf("SizeBytes() = %d, want 30", got)
	}

	// Replacing a key counts its size exactly once.
	s.Put("a", entry(5))
	if got := s.SizeBytes(); got != 25 {
		t.Errorf("SizeBytes() = %d, want 25", got)
	}

	s.Remove("b")
	if got := s.SizeBytes(); got != 5 {
		t.Errorf("SizeBytes() = %d, want 5", got)
	}
	s.Remove("b") // no-op
	if got := s.SizeBytes(); got != 5 {
		t.Errorf("SizeBytes() = %d, want 5 after duplicate remove", got)
	}

	s.Clear()
	if got := s.SizeBytes(); got != 0 {
		t.Errorf("SizeBytes() = %d, want 0", got)
	}
	if got := s.Len(); got != 0 {
		t.Errorf("Len() = %d, want 0", got)
	}
}

func TestUnboundedNeverEvicts(t *testing.T) {
	t.Parallel()

	s := NewUnbounded()
	for i := range 1000 {
		s.Put(fmt.Sprintf("key-%d", i), entry(10))
	}
	if got := s.Len(); got != 1000 {
		t.Errorf("Len() = %d, want 1000", got)
	}
	if got := s.SizeBytes(); got != 10000 {
		t.Errorf("SizeBytes() = %d, want 10000", got)
	}
}

func TestUnboundedConcurrentAccess(t *testing.T) {
	t.Parallel()

	s := NewUnbounded()

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			key := fmt.Sprintf("key-%d", i)
			for range 100 {
				s.Put(key, entry(10))
				s.Get(key)
				s.Remove(key)
			}
		}()
	}
	wg.Wait()

	if got := s.SizeBytes(); got != 0 {
		t.Errorf("SizeBytes() = %d, want 0 after removing all keys", got)
	}
}
