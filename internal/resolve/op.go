package resolve

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/latticeworks/sitekit/internal/site"
)

// Op resolves an operator expression against ind and returns its artifact.
//
// A composite expression ("Sz*Sz") splits at the first "*": the left and
// right parts are resolved recursively and combined with the algebra's
// ordered product. Resolution of an N-fold product is therefore
// left-associative: "A*B*C" is product(product(A, B), C).
//
// An atomic name is resolved by scanning the index tags left-to-right,
// trying three conventions per tag in fixed priority: pure handler,
// populate handler (success detected by the artifact becoming non-empty),
// then legacy raw-name handler. The first success wins; there is no
// ambiguity check across tags, unlike State.
//
// Fails with CodeNotFound when no tag and no convention matches, or
// CodeMalformed when an operand of "*" is empty after trimming.
func (r *Resolver) Op(expr string, ind site.Index) (site.Artifact, error) {
	trimmed := strings.TrimSpace(expr)

	if i := strings.Index(trimmed, "*"); i >= 0 {
		left := strings.TrimSpace(trimmed[:i])
		right := strings.TrimSpace(trimmed[i+1:])
		if left == "" || right == "" {
			return nil, NewMalformedError(expr)
		}

		lart, err := r.Op(left, ind)
		if err != nil {
			return nil, err
		}
		rart, err := r.Op(right, ind)
		if err != nil {
			return nil, err
		}

		prod, err := r.alg.Product(lart, rart)
		if err != nil {
			return nil, fmt.Errorf("resolve: product %q * %q: %w", left, right, err)
		}
		return prod, nil
	}

	return r.resolveAtomic(trimmed, ind)
}

// resolveAtomic resolves a bare operator name with no "*".
func (r *Resolver) resolveAtomic(name string, ind site.Index) (site.Artifact, error) {
	opName := site.NewOpName(name)

	// An untagged index still resolves tag-independent operators via the
	// generic empty-tag placeholder.
	tags := ind.Tags()
	scan := tags
	if len(scan) == 0 {
		scan = []site.Tag{site.GenericTag}
	}

	for _, tag := range scan {
		if fn, ok := r.reg.OpFor(tag); ok {
			art, matched, err := fn(opName, ind)
			if err != nil {
				return nil, fmt.Errorf("resolve: op handler for tag %q: %w", tag, err)
			}
			if matched {
				slog.Debug("operator resolved",
					"name", name,
					"tag", tag.String(),
					"convention", "pure",
				)
				return art, nil
			}
		}

		if fn, ok := r.reg.PopulateFor(tag); ok {
			art := r.alg.Empty(ind)
			if err := fn(art, opName, ind); err != nil {
				return nil, fmt.Errorf("resolve: populate handler for tag %q: %w", tag, err)
			}
			if !art.IsEmpty() {
				slog.Debug("operator resolved",
					"name", name,
					"tag", tag.String(),
					"convention", "populate",
				)
				return art, nil
			}
		}

		if fn, ok := r.reg.LegacyFor(tag); ok {
			art, matched, err := fn(ind, name)
			if err != nil {
				return nil, fmt.Errorf("resolve: legacy handler for tag %q: %w", tag, err)
			}
			if matched {
				slog.Debug("operator resolved",
					"name", name,
					"tag", tag.String(),
					"convention", "legacy",
				)
				return art, nil
			}
		}
	}

	return nil, NewNotFoundError(name, tags)
}
