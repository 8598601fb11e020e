package ecs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type position struct{ X, Y float64 }
type name struct{ Value string }
type isMagic struct{}

func TestComponentStore_RegisterIsIdempotent(t *testing.T) {
	s := NewComponentStore()
	RegisterComponent[position](s, Dense)
	AddComponent(s, 3, position{X: 1, Y: 2})

	RegisterComponent[position](s, Map)

	v, ok := GetComponent[position](s, 3)
	require.True(t, ok, "re-registration must not wipe existing data")
	assert.Equal(t, position{X: 1, Y: 2}, *v)
}

func TestComponentStore_AddGetRemove_Dense(t *testing.T) {
	s := NewComponentStore()
	RegisterComponent[position](s, Dense)

	AddComponent(s, 5, position{X: 1, Y: 1})
	v, ok := GetComponent[position](s, 5)
	require.True(t, ok)
	assert.Equal(t, position{X: 1, Y: 1}, *v)

	_, ok = GetComponent[position](s, 6)
	assert.False(t, ok, "unset id must report absent")

	removed, ok := RemoveComponent[position](s, 5)
	require.True(t, ok)
	assert.Equal(t, position{X: 1, Y: 1}, removed)

	_, ok = GetComponent[position](s, 5)
	assert.False(t, ok, "removed component must report absent")
}

func TestComponentStore_AddGetRemove_Map(t *testing.T) {
	s := NewComponentStore()
	RegisterComponent[name](s, Map)

	AddComponent(s, 100, name{Value: "alice"})
	v, ok := GetComponent[name](s, 100)
	require.True(t, ok)
	assert.Equal(t, "alice", v.Value)

	_, ok = RemoveComponent[name](s, 100)
	assert.True(t, ok)
	_, ok = GetComponent[name](s, 100)
	assert.False(t, ok)
}

func TestComponentStore_SingletonMarker(t *testing.T) {
	s := NewComponentStore()
	RegisterComponent[isMagic](s, Singleton)

	AddComponent(s, 42, isMagic{})
	_, ok := GetComponent[isMagic](s, 42)
	assert.True(t, ok)

	_, ok = GetComponent[isMagic](s, 43)
	assert.False(t, ok, "singleton storage still gates presence through the mask")
}

func TestComponentStore_AddOverwriteDropsOldValue(t *testing.T) {
	s := NewComponentStore()
	RegisterComponent[position](s, Dense)

	AddComponent(s, 1, position{X: 1, Y: 1})
	AddComponent(s, 1, position{X: 9, Y: 9})

	v, ok := GetComponent[position](s, 1)
	require.True(t, ok)
	assert.Equal(t, position{X: 9, Y: 9}, *v)
}

func TestComponentStore_GrowsPastInitialMask(t *testing.T) {
	s := NewComponentStore()
	RegisterComponent[position](s, Dense)

	AddComponent(s, initialMaskBits+50, position{X: 1, Y: 2})
	v, ok := GetComponent[position](s, initialMaskBits+50)
	require.True(t, ok)
	assert.Equal(t, position{X: 1, Y: 2}, *v)
}

func TestComponentStore_AccessingUnregisteredTypePanics(t *testing.T) {
	s := NewComponentStore()
	assert.Panics(t, func() {
		GetComponent[position](s, 0)
	})
}

func TestComponentStore_FreeAllComponents(t *testing.T) {
	s := NewComponentStore()
	RegisterComponent[position](s, Dense)
	RegisterComponent[name](s, Map)

	AddComponent(s, 7, position{X: 1, Y: 2})
	AddComponent(s, 7, name{Value: "bob"})

	s.FreeAllComponents(7)

	_, ok := GetComponent[position](s, 7)
	assert.False(t, ok)
	_, ok = GetComponent[name](s, 7)
	assert.False(t, ok)
}

func TestComponentStore_PresenceBijection_Dense(t *testing.T) {
	s := NewComponentStore()
	RegisterComponent[position](s, Dense)

	for id := uint32(0); id < 20; id++ {
		if id%2 == 0 {
			AddComponent(s, id, position{X: float64(id)})
		}
	}

	mask := MaskFor[position](s)
	for id := uint32(0); id < 20; id++ {
		_, ok := GetComponent[position](s, id)
		assert.Equal(t, id%2 == 0, ok)
		assert.Equal(t, id%2 == 0, mask.Contains(id), "mask bit must match presence for a non-self-bookkeeping storage")
	}
}
