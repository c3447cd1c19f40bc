package diagnostic

import (
	"fmt"
	"strings"

	"adapter-generator/internal/common"
)

// Diagnostic codes.
const (
	CodeTypeNotFound          = "type_not_found"
	CodeMissingImplementation = "missing_implementation"
	CodeAmbiguousMatch        = "ambiguous_match"
	CodeInvalidContract       = "invalid_contract"
	CodeVisibilityViolation   = "visibility_violation"
	CodeCompileFailure        = "compile_failure"
	CodeInvalidConfig         = "invalid_config"
	CodeDuplicateMember       = "duplicate_member"
)

// Diagnostics holds all diagnostic information from planning a request.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
	Infos    []Diagnostic
}

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity DiagnosticSeverity
	// Code is a unique identifier for this type of diagnostic.
	Code string
	// Message is the human-readable description.
	Message string
	// Request identifies the generation request (contract<-source) this relates to.
	Request string
	// Member identifies the contract member this relates to (if any).
	Member string
	// Candidates lists the source members involved (ambiguity reports).
	Candidates []string
}

// DiagnosticSeverity represents the severity level of a diagnostic.
type DiagnosticSeverity int

const (
	DiagnosticInfo DiagnosticSeverity = iota
	DiagnosticWarning
	DiagnosticError
)

// String returns a human-readable severity name.
func (s DiagnosticSeverity) String() string {
	switch s {
	case DiagnosticInfo:
		return "info"
	case DiagnosticWarning:
		return "warning"
	case DiagnosticError:
		return "error"
	default:
		return common.UnknownStr
	}
}

// AddError adds an error diagnostic.
func (d *Diagnostics) AddError(code, message, request, member string) {
	d.Errors = append(d.Errors, Diagnostic{
		Severity: DiagnosticError,
		Code:     code,
		Message:  message,
		Request:  request,
		Member:   member,
	})
}

// AddAmbiguity adds an ambiguous_match error naming every candidate.
func (d *Diagnostics) AddAmbiguity(request, member string, candidates []string) {
	d.Errors = append(d.Errors, Diagnostic{
		Severity:   DiagnosticError,
		Code:       CodeAmbiguousMatch,
		Message:    fmt.Sprintf("%d equally valid candidates: %s", len(candidates), strings.Join(candidates, ", ")),
		Request:    request,
		Member:     member,
		Candidates: candidates,
	})
}

// AddWarning adds a warning diagnostic.
func (d *Diagnostics) AddWarning(code, message, request, member string) {
	d.Warnings = append(d.Warnings, Diagnostic{
		Severity: DiagnosticWarning,
		Code:     code,
		Message:  message,
		Request:  request,
		Member:   member,
	})
}

// AddInfo adds an info diagnostic.
func (d *Diagnostics) AddInfo(code, message, request, member string) {
	d.Infos = append(d.Infos, Diagnostic{
		Severity: DiagnosticInfo,
		Code:     code,
		Message:  message,
		Request:  request,
		Member:   member,
	})
}

// HasErrors returns true if there are any error diagnostics.
func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// Merge merges another Diagnostics instance into this one.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.Errors = append(d.Errors, other.Errors...)
	d.Warnings = append(d.Warnings, other.Warnings...)
	d.Infos = append(d.Infos, other.Infos...)
}

// IsValid returns true if there are no errors.
func (d *Diagnostics) IsValid() bool {
	return len(d.Errors) == 0
}

// Err returns a single error enumerating every error diagnostic, or nil if valid.
func (d *Diagnostics) Err() error {
	if d.IsValid() {
		return nil
	}

	return &Error{Diagnostics: append([]Diagnostic(nil), d.Errors...)}
}

// ByCode returns the error diagnostics carrying code.
func (d *Diagnostics) ByCode(code string) []Diagnostic {
	var out []Diagnostic

	for _, e := range d.Errors {
		if e.Code == code {
			out = append(out, e)
		}
	}

	return out
}

// String returns a formatted diagnostic string.
func (d Diagnostic) String() string {
	var prefix []string
	if d.Request != "" {
		prefix = append(prefix, "["+d.Request+"]")
	}

	if d.Member != "" {
		prefix = append(prefix, d.Member)
	}

	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if len(prefix) > 0 {
		return strings.Join(prefix, " ") + ": " + msg
	}

	return msg
}
