// Package resolve implements the tag-based capability resolution engine:
// operator construction (Op), named basis-state lookup (State), the
// fermion-string classifier (HasFermionString), and the site index
// factory (SiteIndex / SiteIndices).
//
// Every public operation is a pure function of its inputs plus the
// read-only handler registry. Nothing blocks or spans multiple steps;
// concurrent resolution against a stable registry is safe.
package resolve

import (
	"github.com/latticeworks/sitekit/internal/registry"
	"github.com/latticeworks/sitekit/internal/site"
)

// Resolver dispatches resolution requests against a handler registry,
// delegating artifact construction to an Algebra collaborator.
type Resolver struct {
	reg *registry.Registry
	alg site.Algebra
}

// New creates a Resolver reading from reg and building artifacts with alg.
func New(reg *registry.Registry, alg site.Algebra) *Resolver {
	return &Resolver{reg: reg, alg: alg}
}

// Registry returns the registry the resolver reads from.
// Used for introspection and registration by callers that own the resolver.
func (r *Resolver) Registry() *registry.Registry {
	return r.reg
}

type config struct {
	addTags []site.Tag
	params  registry.Params
}

// Option configures a single site index factory call. Op, State, and
// HasFermionString take no options; everything they need is on the index.
type Option func(*config)

// WithAddTags appends extra tags to indices built by the factory.
func WithAddTags(tags ...site.Tag) Option {
	return func(c *config) {
		c.addTags = append(c.addTags, tags...)
	}
}

// WithParam passes an opaque key/value through to space and bulk
// providers. The engine never interprets it.
func WithParam(key string, value any) Option {
	return func(c *config) {
		if c.params == nil {
			c.params = registry.Params{}
		}
		c.params[key] = value
	}
}

func newConfig(opts []Option) *config {
	c := &config{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}
