package queue

import (
	"sync"
	"testing"
)

type testItem struct {
	ID   int
	Name string
}

func TestQueue_New(t *testing.T) {
	q := New[testItem](4)
	if q == nil {
		t.Fatal("expected non-nil queue")
	}
	if !q.Empty() {
		t.Error("expected empty queue")
	}
	if q.Len() != 0 {
		t.Errorf("expected length 0, got %d", q.Len())
	}
}

func TestQueue_PushDrain(t *testing.T) {
	q := New[testItem](0)
	q.Push(testItem{ID: 1, Name: "first"})
	q.Push(testItem{ID: 2}, testItem{ID: 3})
	if q.Len() != 3 {
		t.Fatalf("expected length 3, got %d", q.Len())
	}

	items := q.Drain()
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}
	for i, it := range items {
		if it.ID != i+1 {
			t.Errorf("item %d: expected ID %d, got %d", i, i+1, it.ID)
		}
	}
	if !q.Empty() {
		t.Error("expected empty queue after drain")
	}

	// drained slice must not be overwritten by later pushes
	q.Push(testItem{ID: 99})
	if items[0].ID != 1 {
		t.Errorf("drained slice was mutated: %+v", items[0])
	}
}

func TestQueue_PushFront(t *testing.T) {
	q := New[int](0)
	q.Push(4, 5)
	q.PushFront(1, 2, 3)
	q.PushFront()

	got := q.Drain()
	want := []int{1, 2, 3, 4, 5}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("item %d: expected %d, got %d", i, want[i], got[i])
		}
	}
}

func TestQueue_Clear(t *testing.T) {
	q := New[int](0)
	q.Push(1, 2, 3)
	q.Clear()
	if !q.Empty() {
		t.Error("expected empty queue after clear")
	}
	if got := q.Drain(); len(got) != 0 {
		t.Errorf("expected nothing to drain, got %v", got)
	}
}

func TestQueue_Concurrent(t *testing.T) {
	q := New[int](0)
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				q.Push(i)
			}
		}()
	}
	wg.Wait()
	if q.Len() != 800 {
		t.Errorf("expected 800 items, got %d", q.Len())
	}
}

func TestRing_EvictsOldest(t *testing.T) {
	r := NewRing[int](3)
	for i := 1; i <= 5; i++ {
		r.Push(i)
	}
	if r.Len() != 3 {
		t.Fatalf("expected length 3, got %d", r.Len())
	}
	got := r.Items()
	want := []int{3, 4, 5}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestRing_PartialAndReset(t *testing.T) {
	r := NewRing[int](15)
	r.Push(1)
	r.Push(2)
	if got := r.Items(); len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Fatalf("unexpected items %v", got)
	}
	if r.Cap() != 15 {
		t.Errorf("expected cap 15, got %d", r.Cap())
	}
	r.Reset()
	if r.Len() != 0 || len(r.Items()) != 0 {
		t.Error("expected empty ring after reset")
	}
	r.Push(7)
	if got := r.Items(); len(got) != 1 || got[0] != 7 {
		t.Errorf("unexpected items after reset %v", got)
	}
}

func TestRing_MinimumCapacity(t *testing.T) {
	r := NewRing[string](0)
	r.Push("a")
	r.Push("b")
	if got := r.Items(); len(got) != 1 || got[0] != "b" {
		t.Errorf("expected [b], got %v", got)
	}
}
