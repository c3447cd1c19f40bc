package gen

import (
	"bytes"
	"context"
	"fmt"
	"go/format"
	"slices"
	"strings"

	"golang.org/x/tools/imports"

	"adapter-generator/internal/diagnostic"
	"adapter-generator/internal/logging"
	"adapter-generator/internal/plan"
)

// DefaultFilename is the file name of assembled units.
const DefaultFilename = "adapters_gen.go"

// GeneratedFile represents a generated Go source file.
type GeneratedFile struct {
	// Filename is the name of the file (e.g., "adapters_gen.go").
	Filename string
	// Content is the formatted Go source code.
	Content []byte
}

// Assemble merges synthesized adapters into one file of the generator's
// package. When any unit is standalone the file is complete: it carries an
// Adapters table of the standalone units and RegisterAdapters. Otherwise it
// is a fragment holding declarations and imports only.
func (g *Generator) Assemble(ctx context.Context, filename string, units ...*Synthesized) (*GeneratedFile, error) {
	if filename == "" {
		filename = DefaultFilename
	}

	units = slices.Clone(units)
	slices.SortFunc(units, func(a, b *Synthesized) int { return strings.Compare(a.Name, b.Name) })

	if err := checkUnits(units); err != nil {
		return nil, err
	}

	data := &unitData{PackageName: g.config.PackageName}
	used := make(usedImports)

	for _, u := range units {
		data.Decls = append(data.Decls, u.Decls)

		for p := range u.imports {
			used[p] = true
		}

		if u.Output == plan.OutputStandalone {
			data.Standalone = true
		}
	}

	if data.Standalone {
		data.A = g.imports.alias(adapterPkg) + "."
		used[adapterPkg] = true

		for _, u := range units {
			if u.Output != plan.OutputStandalone || u.Entry == nil {
				continue
			}

			data.Entries = append(data.Entries, u.Entry)

			for p := range u.entryImports {
				used[p] = true
			}
		}
	}

	data.Imports = g.imports.specs(used.paths())

	var buf bytes.Buffer
	if err := unitTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing unit template: %w", err)
	}

	content, err := g.format(filename, buf.Bytes())
	logging.DumpSource(ctx, g.logger, filename, content)

	return &GeneratedFile{Filename: filename, Content: content}, err
}

// checkUnits rejects units that cannot share a file: two adapters with one
// name, or two table entries for one request key.
func checkUnits(units []*Synthesized) error {
	var diags diagnostic.Diagnostics

	names := make(map[string]bool)
	keys := make(map[string]string)

	for _, u := range units {
		if names[u.Name] {
			diags.AddError(diagnostic.CodeDuplicateMember,
				fmt.Sprintf("adapter %s is declared twice", u.Name), "", u.Name)
		}

		names[u.Name] = true

		if u.Entry == nil || u.Output != plan.OutputStandalone {
			continue
		}

		if prev, ok := keys[u.Key]; ok {
			diags.AddError(diagnostic.CodeDuplicateMember,
				fmt.Sprintf("adapters %s and %s were generated for the same request", prev, u.Name), "", u.Name)
		}

		keys[u.Key] = u.Name
	}

	return diags.Err()
}

// format sorts imports and formats src. It falls back to go/format, and
// when that fails too, dumps the unformatted source next to the output.
func (g *Generator) format(filename string, src []byte) ([]byte, error) {
	out, err := imports.Process(filename, src, &imports.Options{
		Comments:   true,
		TabIndent:  true,
		TabWidth:   8,
		FormatOnly: true,
	})
	if err == nil {
		return out, nil
	}

	g.logger.Debug("imports formatting failed, falling back to go/format", "file", filename, "error", err)

	out, err = format.Source(src)
	if err == nil {
		return out, nil
	}

	if g.config.DebugDir != "" {
		_ = writeDebugUnformatted(g.config.DebugDir, filename, src)
	}

	return src, fmt.Errorf("formatting %s: %w", filename, err)
}
