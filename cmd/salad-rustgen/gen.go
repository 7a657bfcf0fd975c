package main

import (
	"context"
	"fmt"
	"io"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"salad-rustgen/internal/codegen"
	"salad-rustgen/internal/module"
	"salad-rustgen/internal/skeleton"
)

type genFlags struct {
	NoSkeleton bool
	Dump       bool
	Stdout     bool
}

func newGenCmd(global *globalFlags) *cobra.Command {
	flags := &genFlags{}

	c := &cobra.Command{
		Use:   "gen [schema files...]",
		Short: "Generate the Rust crate",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(cmd.ErrOrStderr(), global.Verbose)

			p, err := loadProject(global, args, logger)
			if err != nil {
				return err
			}

			return p.generate(cmd.Context(), flags, cmd.OutOrStdout())
		},
	}

	c.Flags().BoolVar(&flags.NoSkeleton, "no-skeleton", false, "do not write the Cargo project skeleton")
	c.Flags().BoolVar(&flags.Dump, "dump", false, "dump the module tree before writing")
	c.Flags().BoolVar(&flags.Stdout, "stdout", false, "write generated code to stdout")

	return c
}

// generate compiles the project and writes or prints its files.
func (p *project) generate(ctx context.Context, flags *genFlags, out io.Writer) error {
	result, err := p.compile()
	if err != nil {
		return err
	}

	if flags.Dump {
		dumpResult(out, result)
	}

	files, err := p.files(result, !flags.NoSkeleton)
	if err != nil {
		return err
	}

	if flags.Stdout {
		for _, f := range files {
			fmt.Fprintf(out, "// ==> %s <==\n%s\n", f.Filename, f.Content)
		}

		return nil
	}

	if err := module.WriteFiles(ctx, files, p.config.Target, p.config.Logger); err != nil {
		return err
	}

	p.config.Logger.Info().
		Str("target", p.config.Target).
		Int("files", len(files)).
		Int("warnings", len(result.Diagnostics.Warnings)).
		Msg("crate generated")

	return nil
}

// files returns the rendered sources, preceded by the skeleton when asked.
func (p *project) files(result *codegen.Result, withSkeleton bool) ([]module.GeneratedFile, error) {
	generated, err := result.Files()
	if err != nil {
		return nil, err
	}

	if !withSkeleton {
		return generated, nil
	}

	vars, err := skeleton.NewVars(p.config.Target, p.config.SaladVersion)
	if err != nil {
		return nil, err
	}

	files, err := skeleton.Files(vars)
	if err != nil {
		return nil, err
	}

	return append(files, generated...), nil
}

func dumpResult(out io.Writer, result *codegen.Result) {
	cfg := spew.ConfigState{
		Indent:                  "  ",
		DisablePointerAddresses: true,
		DisableCapacities:       true,
		SortKeys:                true,
		MaxDepth:                6,
	}

	cfg.Fdump(out, result.RootTypes)
	cfg.Fdump(out, result.Diagnostics)
	fmt.Fprintln(out, module.Print(result.Root))
}
