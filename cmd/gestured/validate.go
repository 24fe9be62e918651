package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the config file for errors",
	Long:  `Loads the config with environment and flag overrides applied and reports the first problem found.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := newConfigSource(cmd)
		if err != nil {
			return err
		}
		cfg, err := src.load()
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "config %s is valid (%d gesture bindings, %d app overrides)\n",
			src.path, len(cfg.Commands()), len(cfg.Apps))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
