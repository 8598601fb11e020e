package ecs

import "testing"

func TestEntityAllocator_AllocIsValid(t *testing.T) {
	a := NewEntityAllocator()

	e := a.Alloc()
	if e.ID == 0 {
		t.Fatalf("alloc returned reserved world id 0")
	}
	if !a.IsValid(e) {
		t.Fatalf("freshly allocated entity %+v reports invalid", e)
	}
}

func TestEntityAllocator_WorldEntityReserved(t *testing.T) {
	a := NewEntityAllocator()
	for i := 0; i < 10; i++ {
		if e := a.Alloc(); e.ID == 0 {
			t.Fatalf("allocator handed out reserved world entity id on alloc #%d", i)
		}
	}
}

func TestEntityAllocator_FreeInvalidatesGeneration(t *testing.T) {
	a := NewEntityAllocator()
	e := a.Alloc()

	if ok := a.Free(e); !ok {
		t.Fatalf("Free returned false for a valid entity")
	}
	if a.IsValid(e) {
		t.Fatalf("entity still valid after Free")
	}
}

func TestEntityAllocator_FreeRecyclesIDWithNewGeneration(t *testing.T) {
	a := NewEntityAllocator()
	e1 := a.Alloc()
	a.Free(e1)
	e2 := a.Alloc()

	if e1.ID != e2.ID {
		t.Fatalf("expected id reuse after free, got %d then %d", e1.ID, e2.ID)
	}
	if e1.Generation == e2.Generation {
		t.Fatalf("expected distinct generations across reuse, got %d twice", e1.Generation)
	}
	if a.IsValid(e1) {
		t.Fatalf("stale handle e1 %+v should not validate after recycle", e1)
	}
	if !a.IsValid(e2) {
		t.Fatalf("recycled handle e2 %+v should validate", e2)
	}
}

func TestEntityAllocator_FreeUnknownEntityFails(t *testing.T) {
	a := NewEntityAllocator()
	if a.Free(InvalidEntity) {
		t.Fatalf("Free should fail for the invalid sentinel")
	}
	if a.Free(Entity{ID: 999, Generation: 1}) {
		t.Fatalf("Free should fail for an entity never allocated")
	}
}

func TestEntityAllocator_GrowsPastInitialCapacity(t *testing.T) {
	a := NewEntityAllocator()
	var last Entity
	for i := 0; i < int(initialEntityCapacity)+10; i++ {
		last = a.Alloc()
	}
	if a.MaxEntities() <= initialEntityCapacity {
		t.Fatalf("expected allocator to have grown past %d, got max %d", initialEntityCapacity, a.MaxEntities())
	}
	if !a.IsValid(last) {
		t.Fatalf("entity allocated after growth should be valid")
	}
}

func TestEntityAllocator_FreeRewindsCursor(t *testing.T) {
	a := NewEntityAllocator()
	e1 := a.Alloc()
	e2 := a.Alloc()
	e3 := a.Alloc()
	_ = e3

	a.Free(e1)
	e4 := a.Alloc()
	if e4.ID != e1.ID {
		t.Fatalf("expected freed low id %d to be reused first, got %d", e1.ID, e4.ID)
	}
	_ = e2
}
