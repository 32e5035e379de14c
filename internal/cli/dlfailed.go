package cli

import (
	"context"

	"github.com/spf13/cobra"
)

// NewDlFailedCmd creates the dlfailed command.
func NewDlFailedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dlfailed <config-file> <section> <failed-list-file>",
		Short: "Redownload files whose checksums did not match",
		Long: `Re-attempt every download listed in a previously written record file. When
the list file is also the configured record file, it is first copied to a
timestamped backup so the input list survives the run.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDlFailed(cmd.Context(), args[0], args[1], args[2])
		},
	}
	return cmd
}

func runDlFailed(ctx context.Context, configFile, section, listFile string) error {
	log := newLogger()
	settings, err := loadSettings(configFile, section)
	if err != nil {
		return err
	}
	orch, err := buildOrchestrator(settings, log)
	if err != nil {
		return err
	}
	return orch.RedownloadFailed(ctx, listFile, settings.RecordFile)
}
