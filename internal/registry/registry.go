// Package registry holds the process-wide handler table the resolution
// engine dispatches against. External packages populate it once at load
// time (append-only: bindings are added, never removed or overwritten);
// the engine only reads it.
//
// Registration is expected to happen-before the first resolution call.
// The internal lock makes concurrent registration safe, but no ordering
// between late registration and in-flight lookups is promised.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/latticeworks/sitekit/internal/site"
)

// Params carries opaque options from a resolution call site to space and
// bulk providers. The registry and engine never interpret the values.
type Params map[string]any

// OpFunc is a pure operator handler: given an atomic operator name and
// the index being resolved, it returns the artifact and true, or false
// if it does not define the name.
type OpFunc func(name site.OpName, ind site.Index) (site.Artifact, bool, error)

// OpPopulateFunc fills a pre-allocated empty artifact in place. Success
// is detected by the artifact becoming non-empty after the call; a
// handler that does not define name leaves art empty and returns nil.
type OpPopulateFunc func(art site.Artifact, name site.OpName, ind site.Index) error

// LegacyOpFunc is the backward-compatible operator handler shape taking
// the raw name string. Kept for older registrations; tried last.
type LegacyOpFunc func(ind site.Index, rawName string) (site.Artifact, bool, error)

// StateFunc maps a named basis state to its 1-based position within the
// index. Registered per (tag, state name) so existence can be counted
// without invocation.
type StateFunc func(ind site.Index) (int, error)

// FermionFunc reports whether the named operator carries a fermion
// string on this index. Registered per (tag, operator name).
type FermionFunc func(ind site.Index, name site.OpName) (bool, error)

// SpaceFunc returns the dimension of the local space for a tag.
type SpaceFunc func(params Params) (int, error)

// BulkFunc generates a full sequence of count site indices for a tag,
// allowing inter-site structure (e.g. alternating dimensions). Returning
// false means the tag declines and per-site construction applies.
type BulkFunc func(count int, params Params) ([]site.Index, bool, error)

type stateKey struct {
	tag  site.Tag
	name string
}

type fermionKey struct {
	tag  site.Tag
	name site.OpName
}

// Registry is the handler table. The zero value is not usable; call New.
type Registry struct {
	mu        sync.RWMutex
	ops       map[site.Tag]OpFunc
	populates map[site.Tag]OpPopulateFunc
	legacy    map[site.Tag]LegacyOpFunc
	states    map[stateKey]StateFunc
	fermions  map[fermionKey]FermionFunc
	spaces    map[site.Tag]SpaceFunc
	bulks     map[site.Tag]BulkFunc
}

// Default is the process-wide registry. Libraries that extend the engine
// register into it from their setup code; applications may instead build
// private registries with New.
var Default = New()

// New constructs an empty registry.
func New() *Registry {
	return &Registry{
		ops:       make(map[site.Tag]OpFunc),
		populates: make(map[site.Tag]OpPopulateFunc),
		legacy:    make(map[site.Tag]LegacyOpFunc),
		states:    make(map[stateKey]StateFunc),
		fermions:  make(map[fermionKey]FermionFunc),
		spaces:    make(map[site.Tag]SpaceFunc),
		bulks:     make(map[site.Tag]BulkFunc),
	}
}

// RegisterOp binds a pure operator handler to tag.
func (r *Registry) RegisterOp(tag site.Tag, fn OpFunc) error {
	if fn == nil {
		return fmt.Errorf("registry: nil op handler for tag %q", tag)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.ops[tag]; exists {
		return fmt.Errorf("registry: op handler already registered for tag %q", tag)
	}
	r.ops[tag] = fn
	return nil
}

// RegisterOpPopulate binds a populate-style operator handler to tag.
func (r *Registry) RegisterOpPopulate(tag site.Tag, fn OpPopulateFunc) error {
	if fn == nil {
		return fmt.Errorf("registry: nil populate handler for tag %q", tag)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.populates[tag]; exists {
		return fmt.Errorf("registry: populate handler already registered for tag %q", tag)
	}
	r.populates[tag] = fn
	return nil
}

// RegisterLegacyOp binds a legacy raw-name operator handler to tag.
func (r *Registry) RegisterLegacyOp(tag site.Tag, fn LegacyOpFunc) error {
	if fn == nil {
		return fmt.Errorf("registry: nil legacy handler for tag %q", tag)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.legacy[tag]; exists {
		return fmt.Errorf("registry: legacy handler already registered for tag %q", tag)
	}
	r.legacy[tag] = fn
	return nil
}

// RegisterState binds a basis-state handler to (tag, name).
func (r *Registry) RegisterState(tag site.Tag, name string, fn StateFunc) error {
	if fn == nil {
		return fmt.Errorf("registry: nil state handler for (%q, %q)", tag, name)
	}
	if name == "" {
		return fmt.Errorf("registry: state name must not be empty (tag %q)", tag)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	key := stateKey{tag: tag, name: name}
	if _, exists := r.states[key]; exists {
		return fmt.Errorf("registry: state %q already registered for tag %q", name, tag)
	}
	r.states[key] = fn
	return nil
}

// RegisterFermion binds a fermion-string handler to (tag, operator name).
func (r *Registry) RegisterFermion(tag site.Tag, name site.OpName, fn FermionFunc) error {
	if fn == nil {
		return fmt.Errorf("registry: nil fermion handler for (%q, %q)", tag, name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	key := fermionKey{tag: tag, name: name}
	if _, exists := r.fermions[key]; exists {
		return fmt.Errorf("registry: fermion handler for %q already registered for tag %q", name, tag)
	}
	r.fermions[key] = fn
	return nil
}

// RegisterSpace binds a dimension provider to tag.
func (r *Registry) RegisterSpace(tag site.Tag, fn SpaceFunc) error {
	if fn == nil {
		return fmt.Errorf("registry: nil space provider for tag %q", tag)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.spaces[tag]; exists {
		return fmt.Errorf("registry: space provider already registered for tag %q", tag)
	}
	r.spaces[tag] = fn
	return nil
}

// RegisterBulk binds a bulk site-index generator to tag.
func (r *Registry) RegisterBulk(tag site.Tag, fn BulkFunc) error {
	if fn == nil {
		return fmt.Errorf("registry: nil bulk generator for tag %q", tag)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.bulks[tag]; exists {
		return fmt.Errorf("registry: bulk generator already registered for tag %q", tag)
	}
	r.bulks[tag] = fn
	return nil
}

// OpFor returns the pure operator handler for tag, if any.
func (r *Registry) OpFor(tag site.Tag) (OpFunc, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.ops[tag]
	return fn, ok
}

// PopulateFor returns the populate handler for tag, if any.
func (r *Registry) PopulateFor(tag site.Tag) (OpPopulateFunc, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.populates[tag]
	return fn, ok
}

// LegacyFor returns the legacy operator handler for tag, if any.
func (r *Registry) LegacyFor(tag site.Tag) (LegacyOpFunc, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.legacy[tag]
	return fn, ok
}

// StateFor returns the state handler for (tag, name), if any. Existence
// can be queried without invoking the handler.
func (r *Registry) StateFor(tag site.Tag, name string) (StateFunc, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.states[stateKey{tag: tag, name: name}]
	return fn, ok
}

// FermionFor returns the fermion handler for (tag, name), if any.
func (r *Registry) FermionFor(tag site.Tag, name site.OpName) (FermionFunc, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.fermions[fermionKey{tag: tag, name: name}]
	return fn, ok
}

// SpaceFor returns the dimension provider for tag, if any.
func (r *Registry) SpaceFor(tag site.Tag) (SpaceFunc, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.spaces[tag]
	return fn, ok
}

// BulkFor returns the bulk generator for tag, if any.
func (r *Registry) BulkFor(tag site.Tag) (BulkFunc, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.bulks[tag]
	return fn, ok
}

// SpaceTags returns the tags with a registered dimension provider,
// sorted by label. Used for introspection (CLI listing).
func (r *Registry) SpaceTags() []site.Tag {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tags := make([]site.Tag, 0, len(r.spaces))
	for tag := range r.spaces {
		tags = append(tags, tag)
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i].String() < tags[j].String() })
	return tags
}

// StateNames returns the state names registered for tag, sorted.
func (r *Registry) StateNames(tag site.Tag) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var names []string
	for key := range r.states {
		if key.tag == tag {
			names = append(names, key.name)
		}
	}
	sort.Strings(names)
	return names
}
