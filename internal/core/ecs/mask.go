package ecs

import "github.com/grayrock-games/ecscore/internal/core/ecs/bitset"

// EntityMask is a snapshotted bitset of entity ids that possess some
// component, bounded by max. Accessors produce masks; masks compose via And
// and AndNot to express multi-component queries.
type EntityMask struct {
	bits *bitset.BitSet
	max  int
}

// newEntityMask snapshots bits at the moment of the call: it clones rather
// than aliasing the store's live presence bitset, so a mask captured before
// a later Add/Remove never observes that mutation.
func newEntityMask(bits *bitset.BitSet, max int) EntityMask {
	return EntityMask{bits: bits.Clone(), max: max}
}

// Max reports the upper bound below which set bits are meaningful.
func (m EntityMask) Max() int {
	return m.max
}

// Contains reports whether id is present in the mask.
func (m EntityMask) Contains(id uint32) bool {
	return int(id) < m.max && m.bits.Get(int(id))
}

// And returns a new mask holding the intersection of m and other, whose max
// is the smaller of the two operands' max.
func (m EntityMask) And(other EntityMask) EntityMask {
	max := m.max
	if other.max < max {
		max = other.max
	}
	result := m.bits.Clone()
	result.And(other.bits)
	result.Resize(max)
	return EntityMask{bits: result, max: max}
}

// AndNot returns a new mask holding the entities of m that are absent from
// other, bounded by m's max.
func (m EntityMask) AndNot(other EntityMask) EntityMask {
	result := m.bits.Clone()
	result.AndNot(other.bits)
	return EntityMask{bits: result, max: m.max}
}

// IterUntil calls fn for every set bit below Max, in ascending order,
// stopping early if fn returns false.
func (m EntityMask) IterUntil(fn func(id uint32) bool) {
	m.bits.IterSetBitsUntil(m.max, func(i int) bool {
		return fn(uint32(i))
	})
}

// Count reports the number of set bits below Max.
func (m EntityMask) Count() int {
	n := 0
	m.IterUntil(func(uint32) bool {
		n++
		return true
	})
	return n
}
