package meta

import (
	"fmt"
	"strings"

	"adapter-generator/internal/diagnostic"
)

// Universe resolves qualified type names to descriptors.
type Universe interface {
	// Name identifies the universe in diagnostics ("reflect", "packages").
	Name() string
	// Lookup resolves a name in ParseTypeName syntax. Unknown names fail with
	// *TypeNotFoundError.
	Lookup(name string) (Type, error)
	// References lists what Lookup searches: package paths or registered types.
	References() []string
}

// TypeNotFoundError reports a name that cannot be resolved in a universe.
// It is fatal: the member resolver propagates it instead of treating it as
// "no candidate".
type TypeNotFoundError struct {
	Name     string
	Universe string
	Searched []string
}

func (e *TypeNotFoundError) Error() string {
	msg := fmt.Sprintf("type %q not found", e.Name)
	if e.Universe != "" {
		msg += " in " + e.Universe + " universe"
	}

	if len(e.Searched) > 0 {
		msg += " (searched: " + strings.Join(e.Searched, ", ") + ")"
	}

	return msg
}

// Is matches diagnostic.ErrTypeNotFound.
func (e *TypeNotFoundError) Is(target error) bool {
	return target == diagnostic.ErrTypeNotFound
}

// NotFound builds a *TypeNotFoundError for universe u.
func NotFound(u Universe, name string) *TypeNotFoundError {
	return &TypeNotFoundError{Name: name, Universe: u.Name(), Searched: u.References()}
}
