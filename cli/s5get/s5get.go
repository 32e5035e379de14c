package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/gggplot/s5get/internal/cli"
)

var (
	verbose bool
	quiet   bool
	noColor bool
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	rootCmd := newRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		cancel()
		os.Exit(1)
	}

	cancel()
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "s5get",
		Short: "Batch downloader for Sentinel-5P data products",
		Long: `s5get downloads satellite data products from a Copernicus-style data hub,
verifies each file against the hub's checksum, and records failed transfers
in a plain-text ledger so they can be repaired later with dlfailed.`,
		SilenceUsage: true,
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "set console logger to maximum")
	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "set console logger to minimum")
	cmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	// Set up CLI pkg variables
	cli.Verbose = &verbose
	cli.Quiet = &quiet
	cli.NoColor = &noColor

	// Add subcommands
	cmd.AddCommand(
		cli.NewDlOneCmd(),
		cli.NewDlBatchCmd(),
		cli.NewCheckByDatesCmd(),
		cli.NewDlFailedCmd(),
		cli.NewMakeCfgCmd(),
		cli.NewVersionCmd(),
	)

	return cmd
}
