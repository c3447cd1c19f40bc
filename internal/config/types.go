package config

// File is the root of an adapters.yaml file.
type File struct {
	Version string `yaml:"version" validate:"oneof=1"`
	// Packages are go/packages patterns loaded into the symbol universe.
	Packages []string  `yaml:"packages" validate:"required,min=1,dive,required"`
	Output   Output    `yaml:"output"`
	Requests []Request `yaml:"requests" validate:"required,min=1,dive"`
}

// Output says where generated code goes.
type Output struct {
	// Dir is the directory files are written to.
	Dir string `yaml:"dir" validate:"required"`
	// Package is the import path of Dir.
	Package string `yaml:"package" validate:"required"`
	// Name is the package name. Defaults to the last element of Package.
	Name string `yaml:"name,omitempty" validate:"omitempty,goident"`
	// File is the standalone unit's file name.
	File string `yaml:"file,omitempty" validate:"endswith=.go,excludesall=/\\"`
}

// Request is one adapter to generate.
type Request struct {
	Contract string `yaml:"contract" validate:"required"`
	// Source is empty for interception adapters without a target.
	Source string `yaml:"source,omitempty" validate:"required_if=Mode duck"`
	Mode   string `yaml:"mode,omitempty" validate:"oneof=duck intercept"`
	Name   string `yaml:"name,omitempty" validate:"omitempty,goident"`
	Output string `yaml:"output,omitempty" validate:"oneof=standalone embeddable"`
	// File receives embeddable adapters. Defaults to <name>_gen.go.
	File string `yaml:"file,omitempty" validate:"omitempty,endswith=.go,excludesall=/\\"`
}

// Label identifies r in diagnostics.
func (r *Request) Label() string {
	if r.Source == "" {
		return r.Contract + "<-interceptor"
	}

	return r.Contract + "<-" + r.Source
}
