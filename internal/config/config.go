// Package config loads the salad-rustgen.yaml project file.
package config

import (
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"

	"salad-rustgen/internal/codegen"
	"salad-rustgen/internal/diagnostic"
	"salad-rustgen/internal/module"
	"salad-rustgen/internal/rust"
)

// DefaultFileName is the project file looked up when no path is given.
const DefaultFileName = "salad-rustgen.yaml"

// CodeInvalidConfig marks a project file value that cannot be used.
const CodeInvalidConfig = "invalid-config"

// File is the project file. Every key is optional except base_uri.
type File struct {
	// BaseURI is the base URI of the schema documents.
	BaseURI string `yaml:"base_uri"`

	// Package is the namespace prefix of the compiled schemas (e.g., "org.w3id.cwl.cwl").
	Package string `yaml:"package,omitempty"`

	// SaladVersion is the schema language version (e.g., "v1.3").
	SaladVersion string `yaml:"salad_version,omitempty"`

	// Target is the output directory of the generated crate.
	Target string `yaml:"target,omitempty"`

	// ExternalPrefixes are namespaces only reachable through presets.
	ExternalPrefixes []string `yaml:"external_prefixes,omitempty"`

	// Presets maps schema names to Rust path strings.
	// Example: { "org.w3id.cwl.cwl.Expression": "crate::core::StrValue" }
	Presets map[string]string `yaml:"presets,omitempty"`

	// MacroWrapper wraps every generated item in "<name>! { ... }".
	MacroWrapper string `yaml:"macro_wrapper,omitempty"`

	// RootModules are extra modules declared in the crate root.
	RootModules []string `yaml:"root_modules,omitempty"`

	// Schemas are schema document paths, relative to the project file.
	Schemas []string `yaml:"schemas,omitempty"`
}

// LoadFile loads and parses a project file from the given path.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses YAML data into a File.
func Parse(data []byte) (*File, error) {
	var f File

	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	applyDefaults(&f)

	return &f, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(f *File) {
	defaults := codegen.DefaultConfig()

	if f.Target == "" {
		f.Target = defaults.Target
	}

	if f.ExternalPrefixes == nil {
		f.ExternalPrefixes = defaults.ExternalPrefixes
	}

	if f.RootModules == nil {
		f.RootModules = defaults.RootModules
	}
}

// Default returns a project file with every default applied.
func Default() *File {
	var f File

	applyDefaults(&f)

	return &f
}

// Marshal serializes a File to YAML.
func Marshal(f *File) ([]byte, error) {
	return yaml.Marshal(f)
}

// WriteFile writes a File to the given path.
func WriteFile(f *File, path string) error {
	data, err := Marshal(f)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file %s: %w", path, err)
	}

	return nil
}

// Validate reports every value that would make generation fail or produce an
// unusable crate.
func (f *File) Validate() diagnostic.Diagnostics {
	var diags diagnostic.Diagnostics

	if f.BaseURI == "" {
		diags.AddError(CodeInvalidConfig, "base_uri is required", "", "base_uri")
	}

	for _, name := range slices.Sorted(maps.Keys(f.Presets)) {
		if _, err := rust.ParsePath(f.Presets[name]); err != nil {
			diags.AddError(CodeInvalidConfig, err.Error(), name, "presets")
		}
	}

	if f.MacroWrapper != "" {
		if _, err := rust.ParsePath(f.MacroWrapper); err != nil {
			diags.AddError(CodeInvalidConfig, err.Error(), "", "macro_wrapper")
		}
	}

	for _, prefix := range f.ExternalPrefixes {
		if f.Package != "" && prefix == f.Package {
			diags.AddWarning(CodeInvalidConfig,
				"external prefix equals package, every schema will be skipped", prefix, "external_prefixes")
		}
	}

	return diags
}

// Codegen converts the file into a generator configuration.
func (f *File) Codegen() codegen.Config {
	config := codegen.DefaultConfig()

	config.BaseURI = f.BaseURI
	config.Package = f.Package
	config.SaladVersion = f.SaladVersion
	config.Target = f.Target
	config.ExternalPrefixes = f.ExternalPrefixes
	config.Presets = f.Presets
	config.MacroWrapper = f.MacroWrapper
	config.RootModules = f.RootModules
	config.SourceDir = module.DefaultSourceDir
	config.RootFile = module.DefaultRootFile

	return config
}

// SchemaPaths returns the schema document paths resolved against dir, the
// directory of the project file.
func (f *File) SchemaPaths(dir string) []string {
	paths := make([]string, len(f.Schemas))

	for i, p := range f.Schemas {
		if filepath.IsAbs(p) {
			paths[i] = p
		} else {
			paths[i] = filepath.Join(dir, p)
		}
	}

	return paths
}
