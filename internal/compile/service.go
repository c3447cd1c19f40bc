package compile

import (
	"context"
	"os"
)

// PluginPackage is the module path of build modules. Units compiled by a
// Service are generated into this package with package name "main".
const PluginPackage = "adapterplugin"

// TableSymbol is the variable every standalone unit exports.
const TableSymbol = "Adapters"

// Unit is one assembled source file ready for compilation.
type Unit struct {
	// Name is the human readable artifact name, e.g. "greeterFromGreeting".
	Name string
	// Key is the request key the unit was generated for.
	Key string
	// Filename is the name the source is written under.
	Filename string
	// Source is the complete Go file.
	Source []byte
	// References lists every import path the unit's types touch.
	References []string
}

// Artifact is a compiled unit.
type Artifact struct {
	Name string
	// Path is the binary on disk.
	Path string
	// Dir is the build directory. It is removed by Release.
	Dir string
}

// Release removes the build directory. A binary already opened by a
// Loader stays usable.
func (a *Artifact) Release() error {
	if a == nil || a.Dir == "" {
		return nil
	}

	return os.RemoveAll(a.Dir)
}

// Service compiles units. Any diagnostic the compiler reports is fatal and
// surfaces as a *diagnostic.Error with code compile_failure.
type Service interface {
	Compile(ctx context.Context, unit Unit) (*Artifact, error)
}

// ServiceFunc adapts a function to Service.
type ServiceFunc func(ctx context.Context, unit Unit) (*Artifact, error)

// Compile calls f.
func (f ServiceFunc) Compile(ctx context.Context, unit Unit) (*Artifact, error) {
	return f(ctx, unit)
}
