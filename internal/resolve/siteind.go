package resolve

import (
	"fmt"
	"log/slog"

	"github.com/latticeworks/sitekit/internal/site"
)

// SiteTag is the tag every factory-built index carries.
var SiteTag = site.NewTag("Site")

// SiteIndex builds one site index for tag. The dimension comes from the
// tag's registered space provider; a missing provider fails with
// CodeNotFound. The index carries tags {"Site", tag, addtags...}.
func (r *Resolver) SiteIndex(tag site.Tag, opts ...Option) (site.Index, error) {
	cfg := newConfig(opts)
	return r.buildSiteIndex(tag, cfg)
}

// SiteIndexAt is SiteIndex with an additional positional "n=<n>" tag.
func (r *Resolver) SiteIndexAt(tag site.Tag, n int, opts ...Option) (site.Index, error) {
	cfg := newConfig(opts)
	ind, err := r.buildSiteIndex(tag, cfg)
	if err != nil {
		return site.Index{}, err
	}
	return ind.AddTags(positionTag(n)), nil
}

// GenericIndex bypasses tag resolution entirely: a site index of the
// given dimension tagged {"Site", "n=<n>", addtags...}. This is the
// escape hatch for untagged/generic sites.
func (r *Resolver) GenericIndex(dim, n int, opts ...Option) (site.Index, error) {
	if dim < 1 {
		return site.Index{}, fmt.Errorf("resolve: site dimension must be positive, got %d", dim)
	}
	cfg := newConfig(opts)
	tags := append([]site.Tag{SiteTag, positionTag(n)}, cfg.addTags...)
	return site.NewIndex(dim, tags...), nil
}

// SiteIndices builds count site indices for tag.
//
// A registered bulk generator is consulted first: if it accepts, its
// sequence is returned verbatim, allowing a tag to define inter-site
// structure such as alternating dimensions. Otherwise each index is built
// independently with SiteIndexAt for positions 1..count.
func (r *Resolver) SiteIndices(tag site.Tag, count int, opts ...Option) ([]site.Index, error) {
	cfg := newConfig(opts)

	if fn, ok := r.reg.BulkFor(tag); ok {
		inds, accepted, err := fn(count, cfg.params)
		if err != nil {
			return nil, fmt.Errorf("resolve: bulk generator for tag %q: %w", tag, err)
		}
		if accepted {
			slog.Debug("site indices built by bulk generator",
				"tag", tag.String(),
				"count", len(inds),
			)
			return inds, nil
		}
	}

	inds := make([]site.Index, count)
	for n := 1; n <= count; n++ {
		ind, err := r.buildSiteIndex(tag, cfg)
		if err != nil {
			return nil, err
		}
		inds[n-1] = ind.AddTags(positionTag(n))
	}
	return inds, nil
}

// SiteIndicesFunc builds count site indices, asking fn for the tag of
// each 1-based position. Enables heterogeneous per-site tagging.
func (r *Resolver) SiteIndicesFunc(fn func(n int) site.Tag, count int, opts ...Option) ([]site.Index, error) {
	cfg := newConfig(opts)
	inds := make([]site.Index, count)
	for n := 1; n <= count; n++ {
		ind, err := r.buildSiteIndex(fn(n), cfg)
		if err != nil {
			return nil, err
		}
		inds[n-1] = ind.AddTags(positionTag(n))
	}
	return inds, nil
}

// GenericIndices builds count generic indices of the given dimension,
// bypassing tag resolution.
func (r *Resolver) GenericIndices(dim, count int, opts ...Option) ([]site.Index, error) {
	inds := make([]site.Index, count)
	for n := 1; n <= count; n++ {
		ind, err := r.GenericIndex(dim, n, opts...)
		if err != nil {
			return nil, err
		}
		inds[n-1] = ind
	}
	return inds, nil
}

// buildSiteIndex constructs one index for tag without a positional tag.
func (r *Resolver) buildSiteIndex(tag site.Tag, cfg *config) (site.Index, error) {
	fn, ok := r.reg.SpaceFor(tag)
	if !ok {
		return site.Index{}, NewNotFoundError("space", []site.Tag{tag})
	}
	dim, err := fn(cfg.params)
	if err != nil {
		return site.Index{}, fmt.Errorf("resolve: space provider for tag %q: %w", tag, err)
	}
	if dim < 1 {
		return site.Index{}, fmt.Errorf("resolve: space provider for tag %q returned dimension %d", tag, dim)
	}
	tags := append([]site.Tag{SiteTag, tag}, cfg.addTags...)
	return site.NewIndex(dim, tags...), nil
}

func positionTag(n int) site.Tag {
	return site.NewTag(fmt.Sprintf("n=%d", n))
}
