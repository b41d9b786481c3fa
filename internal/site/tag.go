package site

import (
	"strings"
	"unique"

	"golang.org/x/text/unicode/norm"
)

// Tag is an interned immutable string label attached to a site index and
// used as a dispatch key (e.g. "S=1/2", "Site", "n=3").
//
// Tags compare with ==. Two tags built from equal strings are equal;
// identity is stable for the process lifetime.
type Tag struct {
	h unique.Handle[string]
}

// NewTag interns s as a Tag. The string is NFC-normalized first.
func NewTag(s string) Tag {
	return Tag{h: unique.Make(norm.NFC.String(s))}
}

// GenericTag is the empty-tag placeholder substituted when an index
// carries no tags, so tag-independent operators (e.g. "Id") still resolve.
var GenericTag = NewTag("")

// String returns the tag's label.
func (t Tag) String() string {
	if t == (Tag{}) {
		return ""
	}
	return t.h.Value()
}

// IsZero reports whether t is the zero Tag (never constructed).
// The zero Tag is distinct from GenericTag, which is an interned "".
func (t Tag) IsZero() bool {
	return t == Tag{}
}

// Tags interns each string in order.
func Tags(labels ...string) []Tag {
	out := make([]Tag, len(labels))
	for i, l := range labels {
		out[i] = NewTag(l)
	}
	return out
}

// TagStrings returns the labels of tags in order.
func TagStrings(tags []Tag) []string {
	out := make([]string, len(tags))
	for i, t := range tags {
		out[i] = t.String()
	}
	return out
}

// FormatTags renders tags as a comma-joined list for error messages
// and logs, e.g. "Site,S=1/2,n=3".
func FormatTags(tags []Tag) string {
	return strings.Join(TagStrings(tags), ",")
}

// OpName is an interned immutable string naming one atomic operator
// (e.g. "Sz", "S+"). It is distinct from a composite operator expression,
// which is a raw string possibly containing "*" separators.
type OpName struct {
	h unique.Handle[string]
}

// NewOpName interns s as an OpName. The string is NFC-normalized first.
func NewOpName(s string) OpName {
	return OpName{h: unique.Make(norm.NFC.String(s))}
}

// String returns the operator name.
func (n OpName) String() string {
	if n == (OpName{}) {
		return ""
	}
	return n.h.Value()
}
