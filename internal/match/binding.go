package match

import (
	"adapter-generator/internal/meta"
)

// Binding is the resolved form of one contract against one source. Every
// contract member appears exactly once. Targets are nil when the binding
// has no source.
type Binding struct {
	Contract meta.Type
	Source   meta.Type

	Methods    []MethodBinding
	Properties []PropertyBinding
	Indexers   []IndexerBinding
	Events     []EventBinding
}

// MethodBinding binds a plain contract method.
type MethodBinding struct {
	Contract meta.Method
	Target   *Candidate
}

// PropertyBinding binds a getter and an optional setter.
type PropertyBinding struct {
	Contract meta.Property
	Get      *Candidate
	Set      *Candidate
}

// IndexerBinding binds At and an optional SetAt.
type IndexerBinding struct {
	Contract meta.Indexer
	Get      *Candidate
	Set      *Candidate
}

// EventBinding binds an add/remove pair.
type EventBinding struct {
	Contract meta.Event
	Add      *Candidate
	Remove   *Candidate
}

// HasTarget reports whether the binding forwards to a source.
func (b *Binding) HasTarget() bool {
	return b.Source != nil
}

// Len returns the number of contract members.
func (b *Binding) Len() int {
	return len(b.Methods) + len(b.Properties) + len(b.Indexers) + len(b.Events)
}

// ContractMethods lists every contract method covered by the binding,
// accessors included, in binding order.
func (b *Binding) ContractMethods() []meta.Method {
	var out []meta.Method

	for _, m := range b.Methods {
		out = append(out, m.Contract)
	}

	for _, p := range b.Properties {
		out = appendNonNil(out, p.Contract.Getter, p.Contract.Setter)
	}

	for _, ix := range b.Indexers {
		out = appendNonNil(out, ix.Contract.Getter, ix.Contract.Setter)
	}

	for _, ev := range b.Events {
		out = appendNonNil(out, ev.Contract.Add, ev.Contract.Remove)
	}

	return out
}

func appendNonNil(out []meta.Method, ms ...meta.Method) []meta.Method {
	for _, m := range ms {
		if m != nil {
			out = append(out, m)
		}
	}

	return out
}
