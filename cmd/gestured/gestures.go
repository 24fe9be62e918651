package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"gestured/internal/gesture"
)

var gesturesCmd = &cobra.Command{
	Use:   "gestures",
	Short: "List every gesture and its binding",
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
		settings := cfg.EngineSettings()
		commands := cfg.Commands()

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "GESTURE\tENABLED\tON LIFT\tCOMMAND")
		for _, id := range gesture.AllIDs() {
			fmt.Fprintf(w, "%s\t%t\t%t\t%s\n", id, settings.Enabled("", id), settings.DeferUntilLift(id), strings.Join(commands[id], " "))
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(gesturesCmd)
}
