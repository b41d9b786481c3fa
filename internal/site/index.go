package site

import (
	"fmt"
	"slices"
)

// Index is a site index: an ordered set of tags plus an integer dimension.
//
// Tag order is significant and caller-controlled. The engine scans tags
// left-to-right; for operator resolution the first tag yielding a match
// wins, while state and fermion-string resolution scan all tags to detect
// ambiguity.
//
// Index values are immutable; AddTags and Prime return derived copies
// sharing the same identity.
type Index struct {
	id    string
	dim   int
	tags  []Tag
	prime int
}

// NewIndex creates an index of the given dimension carrying tags in order.
// A fresh identity is drawn from the configured IDGenerator.
func NewIndex(dim int, tags ...Tag) Index {
	return Index{
		id:   newID(),
		dim:  dim,
		tags: slices.Clone(tags),
	}
}

// ID returns the index identity. Derived indices (AddTags, Prime) keep
// the identity of the index they were derived from.
func (i Index) ID() string { return i.id }

// Dim returns the index dimension.
func (i Index) Dim() int { return i.dim }

// Tags returns the ordered tag set as a copy.
func (i Index) Tags() []Tag {
	return slices.Clone(i.tags)
}

// HasTag reports whether t is among the index tags.
func (i Index) HasTag(t Tag) bool {
	return slices.Contains(i.tags, t)
}

// AddTags returns a copy of the index with the given tags appended.
// Tags already present are not duplicated.
func (i Index) AddTags(tags ...Tag) Index {
	out := i
	out.tags = slices.Clone(i.tags)
	for _, t := range tags {
		if !slices.Contains(out.tags, t) {
			out.tags = append(out.tags, t)
		}
	}
	return out
}

// PrimeLevel returns the prime level of the index.
func (i Index) PrimeLevel() int { return i.prime }

// Prime returns a copy of the index with the prime level raised by inc.
// The engine consumes this transform opaquely; it never interprets prime
// levels itself.
func (i Index) Prime(inc int) Index {
	out := i
	out.prime += inc
	return out
}

// NoPrime returns a copy of the index with the prime level reset to zero.
func (i Index) NoPrime() Index {
	out := i
	out.prime = 0
	return out
}

// Same reports whether two indices share identity and prime level.
// Tag augmentation does not change identity.
func (i Index) Same(other Index) bool {
	return i.id == other.id && i.prime == other.prime
}

// String renders the index for logs and error messages.
func (i Index) String() string {
	return fmt.Sprintf("(dim=%d|%s)%s", i.dim, FormatTags(i.tags), primeMarks(i.prime))
}

func primeMarks(n int) string {
	marks := ""
	for range n {
		marks += "'"
	}
	return marks
}

// Val returns the basis-state handle at 1-based position n.
func (i Index) Val(n int) (IndexVal, error) {
	if n < 1 || n > i.dim {
		return IndexVal{}, fmt.Errorf("site: value %d out of range 1..%d for index %s", n, i.dim, i)
	}
	return IndexVal{Index: i, Val: n}, nil
}

// IndexVal is a basis-state handle: an index paired with a 1-based
// position within it.
type IndexVal struct {
	Index Index
	Val   int
}

// String renders the handle for logs and error messages.
func (v IndexVal) String() string {
	return fmt.Sprintf("%s=%d", v.Index, v.Val)
}
