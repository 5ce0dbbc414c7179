package cli

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var mountsCmd = &cobra.Command{
	Use:   "mounts <folder>...",
	Short: "Show auto-mount targets for host folders",
	Long: `Prints the services and container paths each folder is mounted at.

  venv-openedx         /openedx/venv in lms, cms and their -job/-worker variants
  venv-<service>       /openedx/venv in <service> and <service>-job
  xblock-*             /openedx/mounted-packages/<name> in lms and cms variants
  platform-plugin-*    as xblock-*
  platform-lib-*       as xblock-*`,
	Args: cobra.MinimumNArgs(1),
	RunE: runMounts,
}

func init() {
	rootCmd.AddCommand(mountsCmd)
}

func runMounts(cmd *cobra.Command, args []string) error {
	if mountResolver == nil {
		return errors.New("mount resolver not configured")
	}

	st := stylesFor(cmd.OutOrStdout())
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "FOLDER\tSERVICE\tPATH")
	for _, folder := range args {
		mounts := mountResolver.Resolve(folder)
		if len(mounts) == 0 {
			fmt.Fprintf(tw, "%s\t%s\t\n", folder, st.Muted.Render("(none)"))
			continue
		}
		for _, m := range mounts {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", folder, m.Service, m.Path)
		}
	}
	return tw.Flush()
}
