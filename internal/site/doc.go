// Package site defines the core identity types of the resolution engine:
// interned tags and operator names, site indices, and the collaborator
// contracts (Artifact, Algebra) through which operator artifacts are
// produced and combined.
//
// Tags and operator names are pure lookup keys. Construction is
// deterministic and total: two constructions from equal strings are
// interchangeable as map keys for the process lifetime. Strings are
// NFC-normalized before interning so visually identical Unicode spellings
// resolve to the same key.
package site
