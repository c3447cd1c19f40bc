package compile

import (
	"context"
	"fmt"
	"plugin"

	"adapter-generator/adapter"
)

// Loader opens a compiled binary and returns the table it exports.
type Loader interface {
	Load(ctx context.Context, path string) (*adapter.Table, error)
}

// LoaderFunc adapts a function to Loader.
type LoaderFunc func(ctx context.Context, path string) (*adapter.Table, error)

// Load calls f.
func (f LoaderFunc) Load(ctx context.Context, path string) (*adapter.Table, error) {
	return f(ctx, path)
}

// PluginLoader loads Go plugins built by GoBuild.
type PluginLoader struct{}

var _ Loader = PluginLoader{}

// Load opens path and looks up its Adapters table. Types of the table get
// their Path set to the binary.
func (PluginLoader) Load(ctx context.Context, path string) (*adapter.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p, err := plugin.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}

	sym, err := p.Lookup(TableSymbol)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	table, err := tableOf(sym)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	for _, key := range table.Keys() {
		typ, _ := table.Lookup(key)
		typ.Path = path
	}

	return table, nil
}

// tableOf accepts the symbol of a `var Adapters = adapter.NewTable(...)`
// declaration.
func tableOf(sym any) (*adapter.Table, error) {
	switch t := sym.(type) {
	case **adapter.Table:
		if t == nil || *t == nil {
			return nil, fmt.Errorf("%s is nil", TableSymbol)
		}

		return *t, nil
	case *adapter.Table:
		return t, nil
	default:
		return nil, fmt.Errorf("%s has type %T, want *adapter.Table", TableSymbol, sym)
	}
}
