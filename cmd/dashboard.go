package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/KaramelBytes/popclean/internal/dashboard"
	"github.com/spf13/cobra"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Serve every summary and chart on one browser page",
	Long: `dashboard reloads the raw and cleaned CSVs, renders all charts into a single session
and serves it at dashboard_addr until interrupted.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c := current()
		raw, cleaned, err := loadForReport(c.InputPath, c.OutputPath)
		if err != nil {
			return err
		}
		session := dashboard.NewSession()
		if err := session.Populate(raw, cleaned); err != nil {
			// failed charts are listed on the page
			fmt.Fprintf(os.Stderr, "⚠ Warning: %v\n", err)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Dashboard ready at http://%s (Ctrl+C to stop)\n", c.DashboardAddr)
		return serveDashboard(ctx, session, c.DashboardAddr)
	},
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}

func serveDashboard(ctx context.Context, s *dashboard.Session, addr string) error {
	return dashboard.NewServer(s, slog.Default()).ListenAndServe(ctx, addr)
}
