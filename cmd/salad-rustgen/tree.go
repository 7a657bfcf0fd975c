package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"salad-rustgen/internal/module"
)

func newTreeCmd(global *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "tree [schema files...]",
		Short: "Print the module tree without writing files",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(cmd.ErrOrStderr(), global.Verbose)

			p, err := loadProject(global, args, logger)
			if err != nil {
				return err
			}

			result, err := p.compile()
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), module.Print(result.Root))

			return nil
		},
	}
}
