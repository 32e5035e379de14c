package cli

import (
	"context"

	"github.com/spf13/cobra"
)

// NewDlBatchCmd creates the dlbatch command.
func NewDlBatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dlbatch <config-file> <section> <start-date> <end-date>",
		Short: "Download product files for a date range",
		Long: `Download every product matching the section's filters for each date in the
range, inclusive. Dates are given as YYYYMMDD or YYYY-MM-DD. Files whose
checksums do not verify are written to the record file; the run still exits
zero, since a recorded failure is a normal outcome.`,
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDlBatch(cmd.Context(), args[0], args[1], args[2], args[3])
		},
	}
	return cmd
}

func runDlBatch(ctx context.Context, configFile, section, startArg, endArg string) error {
	log := newLogger()
	settings, err := loadSettings(configFile, section)
	if err != nil {
		return err
	}
	if err := settings.RequireProduct(); err != nil {
		return err
	}
	start, err := parseDate(startArg)
	if err != nil {
		return err
	}
	end, err := parseDate(endArg)
	if err != nil {
		return err
	}
	orch, err := buildOrchestrator(settings, log)
	if err != nil {
		return err
	}
	return orch.DownloadBatch(ctx, start, end, settings.RecordFile)
}
