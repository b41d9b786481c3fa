package resolve

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/latticeworks/sitekit/internal/registry"
	"github.com/latticeworks/sitekit/internal/site"
)

// HasFermionString reports whether the named operator carries a fermion
// string on ind.
//
// Same scan-and-count pattern as State, with a permissive zero case:
// most operators are not fermionic, so an unregistered name returns
// false with a nil error rather than a not-found failure. More than one
// registered tag still fails with CodeAmbiguous.
func (r *Resolver) HasFermionString(name string, ind site.Index) (bool, error) {
	opName := site.NewOpName(strings.TrimSpace(name))

	var (
		conflicting []site.Tag
		fn          registry.FermionFunc
	)
	for _, tag := range ind.Tags() {
		if f, ok := r.reg.FermionFor(tag, opName); ok {
			conflicting = append(conflicting, tag)
			fn = f
		}
	}

	switch len(conflicting) {
	case 0:
		return false, nil
	case 1:
		has, err := fn(ind, opName)
		if err != nil {
			return false, fmt.Errorf("resolve: fermion handler for tag %q: %w", conflicting[0], err)
		}
		slog.Debug("fermion string classified",
			"name", opName.String(),
			"tag", conflicting[0].String(),
			"has_string", has,
		)
		return has, nil
	default:
		return false, NewAmbiguousError(opName.String(), conflicting)
	}
}
