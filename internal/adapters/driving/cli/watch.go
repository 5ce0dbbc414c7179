package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-validate plugins whenever the plugin root changes",
	Long: `Watches the plugin root and re-runs discovery after every burst of
changes, reporting either the loaded plugins or the first invalid descriptor.
Runs until interrupted.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, _ []string) error {
	if pluginService == nil {
		return errors.New("plugin service not configured")
	}

	events, err := pluginService.Watch(cmd.Context())
	if err != nil {
		return fmt.Errorf("watch failed: %w", err)
	}

	st := stylesFor(cmd.OutOrStdout())
	cmd.Println(st.Muted.Render("Watching for changes. Press Ctrl+C to stop."))
	for ev := range events {
		changed := strings.Join(ev.Changed, ", ")
		if ev.Err != nil {
			cmd.Printf("%s %s: %s\n", st.Error.Render("FAIL"), changed, ev.Err)
			continue
		}
		cmd.Printf("%s %s: %d plugin(s) loaded\n", st.Success.Render("OK  "), changed, len(ev.Plugins))
	}
	return nil
}
