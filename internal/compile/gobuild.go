package compile

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"runtime/debug"
	"strings"

	"adapter-generator/internal/diagnostic"
	"adapter-generator/internal/logging"
)

// GoBuildConfig configures GoBuild.
type GoBuildConfig struct {
	// GoBin is the go command. Defaults to "go".
	GoBin string
	// WorkDir holds build directories. Defaults to os.TempDir().
	WorkDir string
	// Replace maps module paths to local directories. The host's main
	// module needs an entry unless it was installed with a version.
	Replace map[string]string
	// GoSum seeds the build module's go.sum, typically the host's.
	GoSum []byte
	// Env is appended to the environment of the go command.
	Env []string
	// BuildInfo describes the host binary. Defaults to debug.ReadBuildInfo.
	BuildInfo *debug.BuildInfo
	Logger    *slog.Logger
}

// GoBuild compiles units into Go plugins.
type GoBuild struct {
	config GoBuildConfig
	reqs   *requirements
	logger *slog.Logger
}

var _ Service = (*GoBuild)(nil)

// NewGoBuild prepares a GoBuild for the running binary.
func NewGoBuild(config GoBuildConfig) (*GoBuild, error) {
	if config.GoBin == "" {
		config.GoBin = "go"
	}

	if config.WorkDir == "" {
		config.WorkDir = os.TempDir()
	}

	bi := config.BuildInfo
	if bi == nil {
		bi, _ = debug.ReadBuildInfo()
	}

	reqs, err := newRequirements(bi, config.Replace)
	if err != nil {
		return nil, fmt.Errorf("preparing build requirements: %w", err)
	}

	return &GoBuild{config: config, reqs: reqs, logger: logging.For(config.Logger, "compile")}, nil
}

// Compile builds unit into <WorkDir>/<tmp>/<unit.Name>.so.
func (b *GoBuild) Compile(ctx context.Context, unit Unit) (*Artifact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if missing := b.reqs.check(unit.References); len(missing) > 0 {
		var diags diagnostic.Diagnostics
		for _, pkg := range missing {
			diags.AddError(diagnostic.CodeCompileFailure,
				fmt.Sprintf("package %s is not provided by any module of the host binary", pkg), unit.Name, "")
		}

		return nil, diags.Err()
	}

	dir, err := b.prepare(unit)
	if err != nil {
		return nil, err
	}

	art := &Artifact{Name: unit.Name, Path: filepath.Join(dir, unit.Name+".so"), Dir: dir}

	cmd := exec.CommandContext(ctx, b.config.GoBin, "build", "-buildmode=plugin", "-o", art.Path, ".")
	cmd.Dir = dir
	cmd.Env = append(append(os.Environ(), "GOFLAGS=-mod=mod", "GOWORK=off"), b.config.Env...)

	var stderr bytes.Buffer
	cmd.Stdout = &stderr
	cmd.Stderr = &stderr

	b.logger.DebugContext(ctx, "compiling unit", "unit", unit.Name, "dir", dir)

	if err := cmd.Run(); err != nil {
		_ = art.Release()

		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}

		var exit *exec.ExitError
		if !errors.As(err, &exit) {
			return nil, fmt.Errorf("running %s: %w", b.config.GoBin, err)
		}

		return nil, ParseDiagnostics(unit.Name, stderr.Bytes())
	}

	if _, err := os.Stat(art.Path); err != nil {
		_ = art.Release()
		return nil, fmt.Errorf("compiler produced no binary for %s: %w", unit.Name, err)
	}

	b.logger.InfoContext(ctx, "unit compiled", "unit", unit.Name, "path", art.Path)

	return art, nil
}

// prepare writes the build module: go.mod, go.sum and the unit source.
func (b *GoBuild) prepare(unit Unit) (string, error) {
	gomod, err := b.reqs.render()
	if err != nil {
		return "", fmt.Errorf("rendering go.mod for %s: %w", unit.Name, err)
	}

	dir, err := os.MkdirTemp(b.config.WorkDir, "adapter-build-*")
	if err != nil {
		return "", fmt.Errorf("creating build directory: %w", err)
	}

	filename := unit.Filename
	if filename == "" {
		filename = unit.Name + ".go"
	}

	files := map[string][]byte{
		"go.mod":  gomod,
		filename: unit.Source,
	}
	if len(b.config.GoSum) > 0 {
		files["go.sum"] = b.config.GoSum
	}

	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), content, 0o644); err != nil {
			_ = os.RemoveAll(dir)
			return "", fmt.Errorf("writing %s: %w", name, err)
		}
	}

	return dir, nil
}

// ParseDiagnostics turns compiler output into compile_failure diagnostics,
// one per line. Package headers ("# pkg") are dropped; every other line is
// forwarded as written.
func ParseDiagnostics(unit string, output []byte) error {
	var diags diagnostic.Diagnostics

	for _, line := range strings.Split(string(output), "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "# ") {
			continue
		}

		diags.AddError(diagnostic.CodeCompileFailure, line, unit, "")
	}

	if !diags.HasErrors() {
		diags.AddError(diagnostic.CodeCompileFailure, "compiler failed without output", unit, "")
	}

	return diags.Err()
}
