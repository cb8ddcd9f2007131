package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func resolvedVersion(version string) string {
	if v := strings.TrimSpace(version); v != "" {
		return v
	}
	return "dev"
}

// NewRootCommand builds the complete command tree.
func NewRootCommand(deps Dependencies) *cobra.Command {
	version := resolvedVersion(deps.Version)

	root := &cobra.Command{
		Use:           "ptalkctl",
		Short:         "Parse pasted opening hours and coordinates, and manage PTalk venues.",
		SilenceErrors: true,
		SilenceUsage:  true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			showVersion, _ := cmd.Flags().GetBool("version")
			if showVersion {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), version)
				return errVersionShown
			}
			return cmd.Help()
		},
	}
	root.Flags().BoolP("version", "v", false, "Show CLI version and exit.")

	root.AddCommand(newHoursCommand(deps))
	root.AddCommand(newCoordCommand(deps))
	root.AddCommand(newVenuesCommand(deps))
	root.AddCommand(newLoginCommand(deps))

	return root
}
