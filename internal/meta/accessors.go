package meta

import "strings"

// Accessor naming conventions.
const (
	SetterPrefix      = "Set"
	IndexerGetter     = "At"
	IndexerSetter     = "SetAt"
	EventAddPrefix    = "Add"
	EventRemovePrefix = "Remove"
	EventSuffix       = "Handler"
)

// Property is a getter X() T with an optional setter SetX(v T).
type Property struct {
	Name   string
	Type   Type
	Getter Method
	Setter Method
}

// Indexer is At(k K) V with an optional SetAt(k K, v V).
type Indexer struct {
	Key    Type
	Value  Type
	Getter Method
	Setter Method
}

// Event is the pair AddXHandler(h H) / RemoveXHandler(h H).
type Event struct {
	Name    string
	Handler Type
	Add     Method
	Remove  Method
}

// Groups partitions a method list into plain methods and accessor groups.
type Groups struct {
	Methods    []Method
	Properties []Property
	Indexers   []Indexer
	Events     []Event
}

// Len returns the number of contract members after grouping.
func (g Groups) Len() int {
	return len(g.Methods) + len(g.Properties) + len(g.Indexers) + len(g.Events)
}

// GroupAccessors partitions methods. A setter, an indexer setter or an
// event remover without its counterpart stays a plain method, as does a
// setter whose value type differs from its getter's result.
func GroupAccessors(methods []Method) Groups {
	byName := make(map[string]Method, len(methods))
	for _, m := range methods {
		byName[m.Name()] = m
	}

	used := make(map[string]bool)

	var g Groups

	for _, m := range methods {
		name := m.Name()

		switch {
		case name == IndexerGetter && isIndexGetter(m):
			ix := Indexer{Key: m.Params()[0].Type(), Value: m.Results()[0].Type(), Getter: m}
			if s, ok := byName[IndexerSetter]; ok && isIndexSetterFor(s, ix) {
				ix.Setter = s
				used[IndexerSetter] = true
			}

			g.Indexers = append(g.Indexers, ix)
			used[name] = true
		case isGetter(m):
			p := Property{Name: name, Type: m.Results()[0].Type(), Getter: m}
			if s, ok := byName[SetterPrefix+name]; ok && isSetterFor(s, p.Type) {
				p.Setter = s
				used[s.Name()] = true
			}

			g.Properties = append(g.Properties, p)
			used[name] = true
		default:
			ev, ok := EventOf(name, EventAddPrefix)
			if !ok || !isHandlerMethod(m) {
				continue
			}

			rm, ok := byName[EventRemovePrefix+ev+EventSuffix]
			if !ok || !isHandlerMethod(rm) || !Equal(rm.Params()[0].Type(), m.Params()[0].Type()) {
				continue
			}

			g.Events = append(g.Events, Event{Name: ev, Handler: m.Params()[0].Type(), Add: m, Remove: rm})
			used[name] = true
			used[rm.Name()] = true
		}
	}

	for _, m := range methods {
		if !used[m.Name()] {
			g.Methods = append(g.Methods, m)
		}
	}

	return g
}

// EventOf extracts X from AddXHandler or RemoveXHandler.
func EventOf(name, prefix string) (string, bool) {
	if !strings.HasPrefix(name, prefix) || !strings.HasSuffix(name, EventSuffix) {
		return "", false
	}

	ev := name[len(prefix) : len(name)-len(EventSuffix)]

	return ev, ev != ""
}

func plain(m Method) bool {
	if m.Variadic() || len(m.TypeParams()) > 0 {
		return false
	}

	for _, p := range m.Params() {
		if p.Kind() != ParamNone {
			return false
		}
	}

	return true
}

func isGetter(m Method) bool {
	return plain(m) && len(m.Params()) == 0 && len(m.Results()) == 1 && !IsError(m.Results()[0].Type())
}

func isSetterFor(m Method, t Type) bool {
	return plain(m) && len(m.Params()) == 1 && len(m.Results()) == 0 && Equal(m.Params()[0].Type(), t)
}

func isIndexGetter(m Method) bool {
	return plain(m) && len(m.Params()) == 1 && len(m.Results()) == 1
}

func isIndexSetterFor(m Method, ix Indexer) bool {
	if !plain(m) || len(m.Params()) != 2 || len(m.Results()) != 0 {
		return false
	}

	return Equal(m.Params()[0].Type(), ix.Key) && Equal(m.Params()[1].Type(), ix.Value)
}

func isHandlerMethod(m Method) bool {
	return plain(m) && len(m.Params()) == 1 && len(m.Results()) == 0
}
