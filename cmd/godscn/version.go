package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ludo-technologies/godscn/internal/version"
)

// NewVersionCmd creates the version command
func NewVersionCmd() *cobra.Command {
	var short bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long: `Display the version, commit, build date, Go version and platform.
Use --short to print only the version number.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			build := version.Current()
			if short {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), build.Version)
				return err
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), build)
			return err
		},
	}
	cmd.Flags().BoolVarP(&short, "short", "s", false, "Show only the version number")
	return cmd
}
