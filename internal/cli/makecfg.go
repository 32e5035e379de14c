package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gggplot/s5get/pkg/config"
)

// NewMakeCfgCmd creates the make-cfg command.
func NewMakeCfgCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "make-cfg <path>",
		Short: "Create a sample config file",
		Long: `Write a sample configuration file to the given path. Pass "help" as the
path to print the config format and every recognized key instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if args[0] == "help" {
				fmt.Fprint(cmd.OutOrStdout(), config.SampleHelp())
				return nil
			}
			if err := config.WriteSample(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Sample config written to %s\n", args[0])
			return nil
		},
	}
	return cmd
}
