package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"salad-rustgen/internal/config"
)

func newInitCmd(global *globalFlags) *cobra.Command {
	var force bool

	c := &cobra.Command{
		Use:   "init",
		Short: "Write a default " + config.DefaultFileName,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := global.ConfigPath
			if path == "" {
				path = config.DefaultFileName
			}

			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists", path)
			}

			f := config.Default()
			f.BaseURI = global.BaseURI
			f.Package = global.Package
			f.SaladVersion = global.SaladVersion
			f.MacroWrapper = global.MacroWrapper

			if global.Target != "" {
				f.Target = global.Target
			}

			if err := config.WriteFile(f, path); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "wrote", path)

			return nil
		},
	}

	c.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")

	return c
}
