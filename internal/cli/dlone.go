package cli

import (
	"context"

	"github.com/spf13/cobra"
)

// NewDlOneCmd creates the dlone command.
func NewDlOneCmd() *cobra.Command {
	var section string

	cmd := &cobra.Command{
		Use:   "dlone <config-file> <product-id> <output-name>",
		Short: "Download a single product file",
		Long: `Download a single product from the data hub by its hex ID and verify it
against the hub's checksum. A download that fails to verify is written to the
record file for a later dlfailed run; this is not an error.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDlOne(cmd.Context(), args[0], section, args[1], args[2])
		},
	}

	cmd.Flags().StringVar(&section, "section", "", "config section to use (defaults to the defaults block)")

	return cmd
}

func runDlOne(ctx context.Context, configFile, section, productID, outputName string) error {
	log := newLogger()
	settings, err := loadSettings(configFile, section)
	if err != nil {
		return err
	}
	orch, err := buildOrchestrator(settings, log)
	if err != nil {
		return err
	}
	return orch.DownloadOne(ctx, productID, outputName, settings.RecordFile)
}
