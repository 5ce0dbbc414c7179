package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var (
	applyMounts []string
	applyJSON   bool
)

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Apply all plugins and print extension point values",
	Long: `Discovers every descriptor in the plugin root, applies their filters in
order and prints the resulting value of each extension point.

Folders given with --mount are auto-mounted first: their mounts are added
to COMPOSE_MOUNTS before any descriptor is applied.`,
	Args: cobra.NoArgs,
	RunE: runApply,
}

func init() {
	applyCmd.Flags().StringArrayVarP(&applyMounts, "mount", "m", nil, "host folder to auto-mount (repeatable)")
	applyCmd.Flags().BoolVar(&applyJSON, "json", false, "output values as JSON")
	rootCmd.AddCommand(applyCmd)
}

func runApply(cmd *cobra.Command, _ []string) error {
	if pluginService == nil {
		return errors.New("plugin service not configured")
	}

	result, err := pluginService.Apply(cmd.Context(), applyMounts)
	if err != nil {
		return fmt.Errorf("apply failed: %w", err)
	}

	if len(result.Unknown) > 0 {
		st := stylesFor(cmd.ErrOrStderr())
		fmt.Fprintf(cmd.ErrOrStderr(), "%s not host extension points: %s\n",
			st.Warning.Render("warning:"), strings.Join(result.Unknown, ", "))
	}

	if applyJSON {
		return writeJSON(cmd, result.Values)
	}
	return writeYAML(cmd, result.Values)
}
