package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Clean the dataset, then render the report from the in-memory result",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c := current()
		res, err := runClean(c.InputPath, c.OutputPath)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Cleaned %d rows into %d: %s\n", res.Raw.Len(), res.Clean.Len(), c.OutputPath)
		return presentDisplay(cmd.OutOrStdout(), cmd.InOrStdin(), res.Raw, res.Clean)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}
