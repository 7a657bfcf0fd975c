package codegen

import (
	"strings"

	"github.com/rs/zerolog"

	"salad-rustgen/internal/module"
)

// DefaultExternalPrefix is the namespace of the schema language's own
// metaschema, whose types are provided by the runtime crate.
const DefaultExternalPrefix = "org.w3id.cwl.salad"

// Config holds configuration for code generation.
type Config struct {
	// BaseURI is written verbatim into the root document attribute.
	BaseURI string
	// Package is the namespace prefix of the schemas being compiled. When set,
	// names outside it are external, and namespaces are made relative to it.
	Package string
	// SaladVersion is the schema language version; a leading "v" is ignored.
	SaladVersion string
	// Target is the output directory.
	Target string
	// ExternalPrefixes are namespaces whose names resolve through presets only.
	ExternalPrefixes []string
	// Presets maps extra schema names to Rust path strings.
	Presets map[string]string
	// MacroWrapper, when set, wraps every emitted item in a macro invocation.
	MacroWrapper string
	// SourceDir is the crate source directory, relative to Target.
	SourceDir string
	// RootFile is the file name of the crate root module.
	RootFile string
	// RootModules are extra modules declared in the root file.
	RootModules []string
	// Logger receives warnings and progress messages.
	Logger zerolog.Logger
}

// DefaultConfig returns the default generator configuration.
func DefaultConfig() Config {
	return Config{
		Target:           ".",
		ExternalPrefixes: []string{DefaultExternalPrefix},
		SourceDir:        module.DefaultSourceDir,
		RootFile:         module.DefaultRootFile,
		RootModules:      []string{"core"},
		Logger:           zerolog.Nop(),
	}
}

// Version returns SaladVersion without its "v" prefix.
func (c Config) Version() string {
	return strings.TrimPrefix(c.SaladVersion, "v")
}

// Layout returns the module tree layout options.
func (c Config) Layout() module.Options {
	return module.Options{
		SourceDir:    c.SourceDir,
		RootFile:     c.RootFile,
		RootModules:  c.RootModules,
		MacroWrapper: c.MacroWrapper,
	}
}
