package cli

import (
	"context"

	"github.com/spf13/cobra"
)

// NewCheckByDatesCmd creates the check-by-dates command.
func NewCheckByDatesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "check-by-dates <config-file> <section> <start-date> <end-date>",
		Aliases: []string{"cbd"},
		Short:   "Verify existing files against remote checksums",
		Long: `Fetch the current checksum for every product in the date range and compare
it against the file already on disk, without re-downloading anything. Missing
files and mismatches are written to the record file, ready for dlfailed.`,
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheckByDates(cmd.Context(), args[0], args[1], args[2], args[3])
		},
	}
	return cmd
}

func runCheckByDates(ctx context.Context, configFile, section, startArg, endArg string) error {
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
	return orch.CheckByDates(ctx, start, end, settings.RecordFile)
}
