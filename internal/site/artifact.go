package site

// Artifact is an operator artifact produced by a handler. The engine
// never inspects artifacts beyond the emptiness predicate: an artifact
// starts empty when pre-allocated for the populate convention and becomes
// non-empty once a handler fills it.
type Artifact interface {
	IsEmpty() bool
}

// Algebra is the tensor-algebra collaborator. The engine requests empty
// artifacts shaped for an index and ordered products of two artifacts;
// it implements neither.
type Algebra interface {
	// Empty returns an empty artifact of the operator shape expected
	// for ind. Used to pre-allocate for populate-style handlers.
	Empty(ind Index) Artifact

	// Product returns the ordered product a·b in matrix-multiplication
	// order. Not commutative; operand order must be preserved.
	Product(a, b Artifact) (Artifact, error)
}
