package generator

import (
	"log/slog"

	"adapter-generator/adapter"
	"adapter-generator/internal/compile"
	"adapter-generator/internal/reflected"
)

type options struct {
	logger   *slog.Logger
	universe *reflected.Universe
	tables   []*adapter.Table
	cacheDir string
	debugDir string
	service  compile.Service
	loader   compile.Loader
	goBuild  *compile.GoBuildConfig
}

// Option configures a Generator.
type Option func(*options)

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithUniverse sets the loaded universe types are described with. Use it to
// share annotations (Universe.Annotate) with the generator.
func WithUniverse(u *reflected.Universe) Option {
	return func(o *options) { o.universe = u }
}

// WithTables embeds adapter tables generated ahead of time.
func WithTables(tables ...*adapter.Table) Option {
	return func(o *options) { o.tables = append(o.tables, tables...) }
}

// WithCacheDir persists compiled binaries in dir. Without it compiled
// adapters only live as long as the process.
func WithCacheDir(dir string) Option {
	return func(o *options) { o.cacheDir = dir }
}

// WithDebugDir receives unformatted sources when formatting fails.
func WithDebugDir(dir string) Option {
	return func(o *options) { o.debugDir = dir }
}

// WithCompiler enables runtime compilation through service.
func WithCompiler(service compile.Service) Option {
	return func(o *options) { o.service = service }
}

// WithGoBuild enables runtime compilation with the go command.
func WithGoBuild(config compile.GoBuildConfig) Option {
	return func(o *options) { o.goBuild = &config }
}

// WithLoader sets how compiled binaries are loaded. Defaults to
// compile.PluginLoader.
func WithLoader(loader compile.Loader) Option {
	return func(o *options) { o.loader = loader }
}
