package main

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"salad-rustgen/internal/codegen"
	"salad-rustgen/internal/config"
	"salad-rustgen/internal/schema"
)

// globalFlags are shared by every subcommand.
type globalFlags struct {
	ConfigPath   string
	BaseURI      string
	Package      string
	SaladVersion string
	Target       string
	MacroWrapper string
	Verbose      bool
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:           "salad-rustgen",
		Short:         "Generate Rust types from Schema Salad documents",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&flags.ConfigPath, "config", "c", "", "project file (default ./"+config.DefaultFileName+" when present)")
	pf.StringVar(&flags.BaseURI, "base-uri", "", "base URI of the schema documents")
	pf.StringVar(&flags.Package, "package", "", "namespace prefix of the compiled schemas")
	pf.StringVar(&flags.SaladVersion, "salad-version", "", "schema language version")
	pf.StringVarP(&flags.Target, "target", "o", "", "output directory")
	pf.StringVar(&flags.MacroWrapper, "macro-wrapper", "", "wrap every item in <name>! { ... }")
	pf.BoolVarP(&flags.Verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		newGenCmd(flags),
		newTreeCmd(flags),
		newWatchCmd(flags),
		newInitCmd(flags),
	)

	return root
}

func newLogger(w io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}

	output := zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}

	return zerolog.New(output).Level(level).With().Timestamp().Logger()
}

// project is a loaded project file together with its schema documents.
type project struct {
	file    *config.File
	schemas []string
	config  codegen.Config
}

// loadProject reads the project file, applies flag overrides, and resolves the
// schema document paths. args take precedence over the file's schema list.
func loadProject(flags *globalFlags, args []string, logger zerolog.Logger) (*project, error) {
	file, dir, err := readProjectFile(flags.ConfigPath)
	if err != nil {
		return nil, err
	}

	overrides := []struct {
		value string
		dst   *string
	}{
		{flags.BaseURI, &file.BaseURI},
		{flags.Package, &file.Package},
		{flags.SaladVersion, &file.SaladVersion},
		{flags.Target, &file.Target},
		{flags.MacroWrapper, &file.MacroWrapper},
	}

	for _, o := range overrides {
		if o.value != "" {
			*o.dst = o.value
		}
	}

	diags := file.Validate()
	for _, w := range diags.Warnings {
		logger.Warn().Msg(w.String())
	}

	if err := diags.Error(); err != nil {
		return nil, err
	}

	schemas := args
	if len(schemas) == 0 {
		schemas = file.SchemaPaths(dir)
	}

	if len(schemas) == 0 {
		return nil, errors.New("no schema documents given")
	}

	cfg := file.Codegen()
	cfg.Logger = logger

	return &project{file: file, schemas: schemas, config: cfg}, nil
}

// readProjectFile loads the explicit project file, or the default one when it
// exists in the working directory, or falls back to defaults.
func readProjectFile(path string) (*config.File, string, error) {
	if path == "" {
		if _, err := os.Stat(config.DefaultFileName); err != nil {
			return config.Default(), ".", nil
		}

		path = config.DefaultFileName
	}

	file, err := config.LoadFile(path)
	if err != nil {
		return nil, "", err
	}

	return file, filepath.Dir(path), nil
}

// compile loads the schema documents and runs the generator.
func (p *project) compile() (*codegen.Result, error) {
	doc, err := schema.LoadFiles(p.schemas...)
	if err != nil {
		return nil, err
	}

	gen, err := codegen.NewGenerator(p.config)
	if err != nil {
		return nil, err
	}

	p.config.Logger.Debug().Int("schemas", len(doc.Schemas)).Strs("files", p.schemas).Msg("schemas loaded")

	return gen.Generate(doc.Schemas)
}
