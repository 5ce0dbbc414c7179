package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var listJSON bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List plugins in the plugin root",
	Long: `Discovers every descriptor in the plugin root and lists them in path
order. Discovery stops at the first invalid descriptor.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "output plugins as JSON")
	rootCmd.AddCommand(listCmd)
}

// pluginSummary is the JSON shape of a listed plugin.
type pluginSummary struct {
	Name    string  `json:"name"`
	Version *string `json:"version"`
	Filters int     `json:"filters"`
	Path    string  `json:"path"`
}

func runList(cmd *cobra.Command, _ []string) error {
	if pluginService == nil {
		return errors.New("plugin service not configured")
	}

	plugins, err := pluginService.Discover(cmd.Context())
	if err != nil {
		return fmt.Errorf("discovery failed: %w", err)
	}

	if listJSON {
		summaries := make([]pluginSummary, 0, len(plugins))
		for _, p := range plugins {
			summaries = append(summaries, pluginSummary{
				Name:    p.Descriptor.Name,
				Version: p.Descriptor.Version,
				Filters: len(p.Descriptor.Filters),
				Path:    p.Path,
			})
		}
		data, err := json.MarshalIndent(summaries, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode plugins: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(plugins) == 0 {
		cmd.Println("No plugins found.")
		return nil
	}

	st := stylesFor(cmd.OutOrStdout())
	cmd.Println(st.Title.Render(fmt.Sprintf("Plugins (%d)", len(plugins))))
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tVERSION\tFILTERS\tPATH")
	for _, p := range plugins {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n",
			p.Descriptor.Name, p.Descriptor.VersionString(), len(p.Descriptor.Filters), p.Path)
	}
	return tw.Flush()
}
