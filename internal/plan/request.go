package plan

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"unicode"
	"unicode/utf8"

	"adapter-generator/adapter"
	"adapter-generator/internal/meta"
)

// Output selects the shape of the synthesized unit.
type Output int

const (
	// OutputStandalone is a complete, compilable file.
	OutputStandalone Output = iota
	// OutputEmbeddable is a fragment merged into a larger unit.
	OutputEmbeddable
)

// String returns a human-readable output name.
func (o Output) String() string {
	if o == OutputEmbeddable {
		return "embeddable"
	}

	return "standalone"
}

// ParseOutput converts the textual form used in configuration files.
func ParseOutput(s string) (Output, bool) {
	switch s {
	case "", "standalone":
		return OutputStandalone, true
	case "embeddable":
		return OutputEmbeddable, true
	default:
		return OutputStandalone, false
	}
}

// DefaultPackageName is the package name of runtime-compiled units.
const DefaultPackageName = "adapters"

// Request describes one adaptation unit. It is immutable once built.
type Request struct {
	contract meta.Type
	source   meta.Type
	mode     adapter.Mode
	output   Output
	pkgPath  string
	pkgName  string
	name     string
	sink     Collector
	key      string
}

// RequestOption configures a Request.
type RequestOption func(*Request)

// WithOutput sets the unit shape.
func WithOutput(o Output) RequestOption {
	return func(r *Request) { r.output = o }
}

// WithPackage sets the import path and name of the package the adapter is
// generated into.
func WithPackage(path, name string) RequestOption {
	return func(r *Request) {
		r.pkgPath = path
		if name != "" {
			r.pkgName = name
		}
	}
}

// WithName overrides the adapter's type name.
func WithName(name string) RequestOption {
	return func(r *Request) { r.name = name }
}

// WithCollector sets a sink that receives every package and type the
// adapter references.
func WithCollector(c Collector) RequestOption {
	return func(r *Request) { r.sink = c }
}

// NewRequest builds a request. source may be nil for interception adapters
// without a target.
func NewRequest(contract, source meta.Type, mode adapter.Mode, opts ...RequestOption) *Request {
	r := &Request{
		contract: contract,
		source:   source,
		mode:     mode,
		pkgName:  DefaultPackageName,
	}

	for _, opt := range opts {
		opt(r)
	}

	if r.name == "" {
		r.name = DefaultName(contract, source, mode)
	}

	r.key = computeKey(r)

	return r
}

func (r *Request) Contract() meta.Type { return r.contract }
func (r *Request) Source() meta.Type   { return r.source }
func (r *Request) Mode() adapter.Mode  { return r.mode }
func (r *Request) Output() Output      { return r.output }
func (r *Request) Package() string     { return r.pkgPath }
func (r *Request) PackageName() string { return r.pkgName }
func (r *Request) Name() string        { return r.name }
func (r *Request) Collector() Collector {
	return r.sink
}

// Key is the deterministic structural hash of the request. It covers the
// mode, the output shape and the full structure of contract and source,
// and nothing else: adapter names and packages never influence it.
func (r *Request) Key() string { return r.key }

// String labels the request in diagnostics: "contract<-source".
func (r *Request) String() string {
	src := "interceptor"
	if r.source != nil {
		src = meta.TypeString(r.source)
	}

	return meta.TypeString(r.contract) + "<-" + src
}

// DefaultName derives an adapter name: greeterFromGreeting for duck
// adapters, greeterProxyForGreeting (or greeterProxy) for interception.
func DefaultName(contract, source meta.Type, mode adapter.Mode) string {
	name := lowerFirst(baseName(contract))

	srcName := ""
	if source != nil {
		srcName = upperFirst(baseName(source))
	}

	switch {
	case mode == adapter.ModeIntercept && srcName == "":
		return name + "Proxy"
	case mode == adapter.ModeIntercept:
		return name + "ProxyFor" + srcName
	default:
		return name + "From" + srcName
	}
}

func baseName(t meta.Type) string {
	if t == nil {
		return ""
	}

	if elem, ok := meta.Deref(t); ok {
		t = elem
	}

	if n := t.Name(); n != "" {
		return n
	}

	return "Anon"
}

func lowerFirst(s string) string {
	r, n := utf8.DecodeRuneInString(s)
	return string(unicode.ToLower(r)) + s[n:]
}

func upperFirst(s string) string {
	r, n := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[n:]
}

const keyVersion = "adapter-request/v1"

func computeKey(r *Request) string {
	var sb strings.Builder

	sb.WriteString(keyVersion + "\n")
	sb.WriteString(r.mode.String() + "\n")
	sb.WriteString(r.output.String() + "\n")
	describe(&sb, "contract", r.contract)
	describe(&sb, "source", r.source)

	sum := sha256.Sum256([]byte(sb.String()))

	return hex.EncodeToString(sum[:])
}

// describe writes the structural description hashed by Key: the canonical
// type and its exported member set with depths, kinds and signatures.
// Unexported methods are left out because the loaded universe cannot see
// them.
func describe(sb *strings.Builder, label string, t meta.Type) {
	sb.WriteString(label + " " + meta.Canonical(t) + "\n")

	if t == nil {
		return
	}

	for _, m := range meta.MemberSet(t).All() {
		if m.Method != nil && !m.Method.Visibility().Has(meta.VisPublic) {
			continue
		}

		sb.WriteString("  ")
		sb.WriteString(m.Selector())
		sb.WriteString(" ")

		if m.Method != nil {
			sb.WriteString(meta.CanonicalSignature(m.Method))

			if m.Callable() {
				sb.WriteString(" callable")
			}
		} else {
			sb.WriteString(meta.Canonical(m.Field.Type()))
		}

		sb.WriteString("\n")
	}
}
