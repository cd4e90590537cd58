package cmd

import (
	"fmt"
	"log/slog"

	"github.com/KaramelBytes/popclean/internal/clean"
	"github.com/spf13/cobra"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Clean the raw dataset and write the cleaned CSV",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c := current()
		res, err := runClean(c.InputPath, c.OutputPath)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Cleaned %d rows into %d: %s\n", res.Raw.Len(), res.Clean.Len(), c.OutputPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(cleanCmd)
}

func runClean(src, dst string) (*clean.Result, error) {
	return clean.NewPipeline(slog.Default()).CleanFile(src, dst)
}
