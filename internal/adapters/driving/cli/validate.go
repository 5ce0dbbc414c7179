package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file>...",
	Short: "Validate plugin descriptor files",
	Long: `Loads each descriptor file and checks it against the YAML v1 schema.
Every file is reported; the command fails if any file is invalid.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	if pluginService == nil {
		return errors.New("plugin service not configured")
	}

	st := stylesFor(cmd.OutOrStdout())
	failed := 0
	for _, path := range args {
		d, err := pluginService.Validate(cmd.Context(), path)
		if err != nil {
			failed++
			cmd.Printf("%s %s\n", st.Error.Render("FAIL"), err)
			continue
		}
		cmd.Printf("%s %s %s\n", st.Success.Render("OK  "), path,
			st.Muted.Render(fmt.Sprintf("(%s %s, %d filters)", d.Name, d.VersionString(), len(d.Filters))))
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d descriptor(s) failed validation", failed, len(args))
	}
	return nil
}
