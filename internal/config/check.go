package config

import (
	"errors"
	"fmt"
	"strings"

	"adapter-generator/adapter"
	"adapter-generator/internal/diagnostic"
	"adapter-generator/internal/meta"
	"adapter-generator/internal/plan"
)

// Target is a resolved request and the file it is generated into.
type Target struct {
	Request *plan.Request
	File    string
}

// Requests resolves the configured requests against u. Every problem is
// reported: unknown types, duplicate adapter names and requests listed
// twice.
func Requests(f *File, u meta.Universe) ([]Target, error) {
	var (
		diags   diagnostic.Diagnostics
		targets []Target
	)

	names := make(map[string]string)
	keys := make(map[string]string)

	for i := range f.Requests {
		r := &f.Requests[i]

		req, ok := build(r, f, u, &diags)
		if !ok {
			continue
		}

		if prev, dup := names[req.Name()]; dup {
			diags.AddError(diagnostic.CodeDuplicateMember,
				fmt.Sprintf("adapter name %s is already used by %s", req.Name(), prev), r.Label(), "")

			continue
		}

		names[req.Name()] = r.Label()

		if prev, dup := keys[req.Key()]; dup {
			diags.AddError(diagnostic.CodeDuplicateMember,
				fmt.Sprintf("same request as %s", prev), r.Label(), "")

			continue
		}

		keys[req.Key()] = r.Label()
		targets = append(targets, Target{Request: req, File: fileFor(r, req, f)})
	}

	if err := diags.Err(); err != nil {
		return nil, err
	}

	return targets, nil
}

// fileFor puts standalone adapters into the output file and each
// embeddable one into its own file unless configured otherwise.
func fileFor(r *Request, req *plan.Request, f *File) string {
	switch {
	case req.Output() == plan.OutputStandalone:
		return f.Output.File
	case r.File != "":
		return r.File
	default:
		return strings.ToLower(req.Name()) + "_gen.go"
	}
}

func build(r *Request, f *File, u meta.Universe, diags *diagnostic.Diagnostics) (*plan.Request, bool) {
	mode, ok := adapter.ParseMode(r.Mode)
	if !ok {
		diags.AddError(diagnostic.CodeInvalidConfig, fmt.Sprintf("unknown mode %q", r.Mode), r.Label(), "")
		return nil, false
	}

	output, ok := plan.ParseOutput(r.Output)
	if !ok {
		diags.AddError(diagnostic.CodeInvalidConfig, fmt.Sprintf("unknown output %q", r.Output), r.Label(), "")
		return nil, false
	}

	contract := lookup(u, r.Contract, r.Label(), diags)

	var source meta.Type
	if r.Source != "" {
		source = lookup(u, r.Source, r.Label(), diags)
		if source == nil {
			return nil, false
		}
	}

	if contract == nil {
		return nil, false
	}

	opts := []plan.RequestOption{
		plan.WithOutput(output),
		plan.WithPackage(f.Output.Package, f.Output.Name),
	}
	if r.Name != "" {
		opts = append(opts, plan.WithName(r.Name))
	}

	return plan.NewRequest(contract, source, mode, opts...), true
}

func lookup(u meta.Universe, name, label string, diags *diagnostic.Diagnostics) meta.Type {
	t, err := u.Lookup(name)
	if err == nil {
		return t
	}

	var nf *meta.TypeNotFoundError
	if errors.As(err, &nf) {
		diags.AddError(diagnostic.CodeTypeNotFound, nf.Error(), label, "")
	} else {
		diags.AddError(diagnostic.CodeInvalidConfig, err.Error(), label, "")
	}

	return nil
}
