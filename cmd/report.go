package cmd

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/KaramelBytes/popclean/internal/dataset"
	"github.com/KaramelBytes/popclean/internal/display"
	"github.com/KaramelBytes/popclean/internal/report"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Render summaries and charts from the cleaned CSV",
	Long: `report reloads the cleaned CSV and renders the textual summaries to the terminal and
each chart as a PNG under charts_dir. When wait_for_dismiss is set and stdin is a terminal,
every chart waits for Enter before the next one is drawn.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c := current()
		raw, cleaned, err := loadForReport(c.InputPath, c.OutputPath)
		if err != nil {
			return err
		}
		return presentDisplay(cmd.OutOrStdout(), cmd.InOrStdin(), raw, cleaned)
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
}

// loadForReport loads the persisted cleaned table. The raw table only feeds the
// "before" summary, so a missing raw file is a warning.
func loadForReport(rawPath, cleanPath string) (*dataset.Table, *dataset.Table, error) {
	cleaned, err := dataset.Load(cleanPath)
	if err != nil {
		return nil, nil, fmt.Errorf("%w (run `popclean clean` first)", err)
	}
	raw, err := dataset.Load(rawPath)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, nil, err
		}
		fmt.Fprintf(os.Stderr, "⚠ Warning: raw dataset not found, skipping initial summary: %s\n", rawPath)
		raw = nil
	}
	return raw, cleaned, nil
}

func presentDisplay(out io.Writer, in io.Reader, raw, cleaned *dataset.Table) error {
	c := current()
	opts := []display.Option{display.WithLogger(slog.Default())}
	if c.WaitForDismiss && interactive(in) {
		opts = append(opts, display.WithDismiss(in))
	}
	p := display.New(out, c.ChartsDir, opts...)
	err := report.Present(p, raw, cleaned)
	fmt.Fprintf(out, "\n✓ Wrote %d charts to %s\n", len(p.Saved()), c.ChartsDir)
	if err != nil {
		return fmt.Errorf("some charts failed: %w", err)
	}
	return nil
}

func interactive(in io.Reader) bool {
	f, ok := in.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}
