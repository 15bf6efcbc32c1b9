package cmd

import (
	"errors"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/cmmoran/pyscaffold/pkg/action/check"
)

// ErrStale is returned by the check command when generated files differ from
// what the project file would produce.
var ErrStale = errors.New("generated files are out of date")

func init() {
	rootCmd.AddCommand(NewCheckCommand())
}

func NewCheckCommand() *cobra.Command {
	checkCmd := &cobra.Command{
		Use:     "check",
		Short:   "verify generated sources are current",
		Long:    "Render the project in memory and diff it against the files in the output directory",
		PreRunE: bindScaffoldFlags,
		RunE: func(c *cobra.Command, args []string) error {
			opts, err := loadOptions()
			if err != nil {
				return err
			}
			stale, err := check.Diff(opts)
			if err != nil {
				return err
			}
			if len(stale) == 0 {
				return nil
			}
			names := make([]string, 0, len(stale))
			for name := range stale {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				fmt.Fprintf(c.OutOrStdout(), "--- %s (-on disk +generated)\n%s\n", name, stale[name])
			}
			return fmt.Errorf("%w: %d file(s)", ErrStale, len(stale))
		},
	}
	addScaffoldFlags(checkCmd.Flags())
	return checkCmd
}
