package site

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// IDGenerator produces unique identifiers for site indices.
// Implemented by UUIDGenerator (production) and SequenceGenerator (tests).
type IDGenerator interface {
	NewID() string
}

// UUIDGenerator generates time-sortable UUIDv7 identifiers.
//
// Thread-safety: stateless, safe for concurrent use.
type UUIDGenerator struct{}

// NewID returns a new UUIDv7 as a hyphenated string.
// Panics if UUID generation fails (should never happen in practice).
func (UUIDGenerator) NewID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// SequenceGenerator returns "<prefix>-1", "<prefix>-2", ... in order.
// Used in tests and golden-file runs where index identity must be
// deterministic.
//
// Thread-safety: safe for concurrent use via internal mutex.
type SequenceGenerator struct {
	mu     sync.Mutex
	prefix string
	n      int
}

// NewSequenceGenerator creates a generator with the given prefix.
func NewSequenceGenerator(prefix string) *SequenceGenerator {
	return &SequenceGenerator{prefix: prefix}
}

// NewID returns the next identifier in the sequence.
func (g *SequenceGenerator) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("%s-%d", g.prefix, g.n)
}

var (
	idMu  sync.Mutex
	idGen IDGenerator = UUIDGenerator{}
)

// SetIDGenerator swaps the generator used by NewIndex and returns the
// previous one. Intended for tests; swap back when done.
func SetIDGenerator(g IDGenerator) IDGenerator {
	idMu.Lock()
	defer idMu.Unlock()
	prev := idGen
	idGen = g
	return prev
}

func newID() string {
	idMu.Lock()
	g := idGen
	idMu.Unlock()
	return g.NewID()
}
