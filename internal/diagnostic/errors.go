package diagnostic

import (
	"errors"
	"strings"
)

// Sentinel errors, one per diagnostic code. An *Error unwraps to the
// sentinels of every code it contains.
var (
	ErrTypeNotFound          = errors.New("type not found")
	ErrMissingImplementation = errors.New("missing implementation")
	ErrAmbiguousMatch        = errors.New("ambiguous match")
	ErrInvalidContract       = errors.New("invalid contract")
	ErrVisibilityViolation   = errors.New("visibility violation")
	ErrCompileFailure        = errors.New("compile failure")
	ErrInvalidConfig         = errors.New("invalid configuration")
	ErrDuplicateMember       = errors.New("duplicate member")
)

var sentinels = map[string]error{
	CodeTypeNotFound:          ErrTypeNotFound,
	CodeMissingImplementation: ErrMissingImplementation,
	CodeAmbiguousMatch:        ErrAmbiguousMatch,
	CodeInvalidContract:       ErrInvalidContract,
	CodeVisibilityViolation:   ErrVisibilityViolation,
	CodeCompileFailure:        ErrCompileFailure,
	CodeInvalidConfig:         ErrInvalidConfig,
	CodeDuplicateMember:       ErrDuplicateMember,
}

// Sentinel returns the sentinel error for code, or nil for unknown codes.
func Sentinel(code string) error {
	return sentinels[code]
}

// Error is the aggregate error returned for a failed request. It lists every
// independent problem found rather than only the first one.
type Error struct {
	Diagnostics []Diagnostic
}

// Error joins every diagnostic on its own line.
func (e *Error) Error() string {
	if len(e.Diagnostics) == 1 {
		return e.Diagnostics[0].String()
	}

	var sb strings.Builder

	sb.WriteString("adapter generation failed:")

	for _, d := range e.Diagnostics {
		sb.WriteString("\n  ")
		sb.WriteString(d.String())
	}

	return sb.String()
}

// Unwrap returns the sentinel errors of every code present.
func (e *Error) Unwrap() []error {
	seen := make(map[string]bool)

	var errs []error

	for _, d := range e.Diagnostics {
		if seen[d.Code] {
			continue
		}

		seen[d.Code] = true

		if s := sentinels[d.Code]; s != nil {
			errs = append(errs, s)
		}
	}

	return errs
}

// Codes returns the distinct codes in order of first appearance.
func (e *Error) Codes() []string {
	seen := make(map[string]bool)

	var codes []string

	for _, d := range e.Diagnostics {
		if !seen[d.Code] {
			seen[d.Code] = true
			codes = append(codes, d.Code)
		}
	}

	return codes
}

// Single builds an *Error holding one diagnostic.
func Single(code, message, request, member string) *Error {
	var d Diagnostics
	d.AddError(code, message, request, member)

	return &Error{Diagnostics: d.Errors}
}

// AsError extracts the aggregate error from err.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}

	return nil, false
}
