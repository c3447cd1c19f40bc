package match

import (
	"cmp"
	"slices"

	"adapter-generator/internal/common"
	"adapter-generator/internal/meta"
)

// Via tells how a source member serves a contract accessor.
type Via int

const (
	// ViaMethod calls a source method.
	ViaMethod Via = iota
	// ViaField reads or assigns a source field.
	ViaField
	// ViaIndex indexes the source's own map, slice or array.
	ViaIndex
)

func (v Via) String() string {
	switch v {
	case ViaMethod:
		return "method"
	case ViaField:
		return "field"
	case ViaIndex:
		return "index"
	default:
		return common.UnknownStr
	}
}

// Candidate is a source member considered for one contract accessor.
type Candidate struct {
	Member meta.Member
	Via    Via
	// Explicit is set for name-mangled explicit implementations.
	Explicit bool
	Compat   Result
}

// String returns the selector of the candidate, "[]" for index expressions.
func (c Candidate) String() string {
	if c.Via == ViaIndex {
		return "[]"
	}

	return c.Member.Selector()
}

// owner identifies the source property, indexer or event a candidate
// belongs to, so the accessors of one contract member can be checked for
// consistency.
func (c Candidate) owner() string {
	switch c.Via {
	case ViaIndex:
		return "[]"
	case ViaField:
		return c.pathKey() + "." + c.Member.Name
	default:
		return c.pathKey()
	}
}

func (c Candidate) pathKey() string {
	key := ""
	if c.Member.Owner != nil {
		key = meta.Canonical(c.Member.Owner)
	}

	for _, f := range c.Member.Path {
		key += "/" + f.Name()
	}

	if c.Explicit {
		key += "#explicit"
	}

	return key
}

// CandidateList is a list of candidates with precedence ranking.
type CandidateList []Candidate

// Sort orders by precedence: explicit implementations first, then
// shallower depth, then methods before fields and index expressions.
// Selectors break ties for deterministic reports.
func (c CandidateList) Sort() {
	slices.SortStableFunc(c, func(a, b Candidate) int {
		return cmp.Or(
			-cmpBool(a.Explicit, b.Explicit),
			cmp.Compare(a.Member.Depth, b.Member.Depth),
			cmp.Compare(a.Via, b.Via),
			cmp.Compare(a.String(), b.String()),
		)
	})
}

// Winners returns the candidates sharing the best precedence. More than one
// winner is an ambiguity. The list must be sorted.
func (c CandidateList) Winners() CandidateList {
	if len(c) == 0 {
		return nil
	}

	n := 1
	for n < len(c) && samePrecedence(c[0], c[n]) {
		n++
	}

	return c[:n]
}

// Names returns the selectors of the candidates.
func (c CandidateList) Names() []string {
	names := make([]string, len(c))
	for i, cand := range c {
		names[i] = cand.String()
	}

	return names
}

func samePrecedence(a, b Candidate) bool {
	return a.Explicit == b.Explicit && a.Member.Depth == b.Member.Depth && a.Via == b.Via
}

func cmpBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case a:
		return 1
	default:
		return -1
	}
}
