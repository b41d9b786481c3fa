package resolve

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/latticeworks/sitekit/internal/registry"
	"github.com/latticeworks/sitekit/internal/site"
)

// State resolves a named basis state against ind.
//
// Every tag of the index is scanned and registered (tag, name) handlers
// are counted without invocation. Exactly one match invokes the handler
// and returns the basis-state handle at the returned 1-based position.
// Zero matches fail with CodeNotFound; more than one fails with
// CodeAmbiguous naming all conflicting tags, since silent first-match
// could mask genuine multi-registration bugs in state enumeration.
func (r *Resolver) State(ind site.Index, name string) (site.IndexVal, error) {
	name = strings.TrimSpace(name)

	var (
		conflicting []site.Tag
		fn          registry.StateFunc
	)
	for _, tag := range ind.Tags() {
		if f, ok := r.reg.StateFor(tag, name); ok {
			conflicting = append(conflicting, tag)
			fn = f
		}
	}

	switch len(conflicting) {
	case 0:
		return site.IndexVal{}, NewNotFoundError(name, ind.Tags())
	case 1:
		pos, err := fn(ind)
		if err != nil {
			return site.IndexVal{}, fmt.Errorf("resolve: state handler for tag %q: %w", conflicting[0], err)
		}
		val, err := ind.Val(pos)
		if err != nil {
			return site.IndexVal{}, fmt.Errorf("resolve: state %q: %w", name, err)
		}
		slog.Debug("state resolved",
			"name", name,
			"tag", conflicting[0].String(),
			"position", pos,
		)
		return val, nil
	default:
		return site.IndexVal{}, NewAmbiguousError(name, conflicting)
	}
}

// StateAt is the integer passthrough: the basis-state handle at 1-based
// position n within ind. No dispatch logic.
func (r *Resolver) StateAt(ind site.Index, n int) (site.IndexVal, error) {
	return ind.Val(n)
}

// StateAtSite is the collection passthrough: the basis-state handle at
// 1-based position n within the pos-th index of inds. No dispatch logic.
func (r *Resolver) StateAtSite(inds []site.Index, pos, n int) (site.IndexVal, error) {
	if pos < 1 || pos > len(inds) {
		return site.IndexVal{}, fmt.Errorf("resolve: site position %d out of range 1..%d", pos, len(inds))
	}
	return inds[pos-1].Val(n)
}
