package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cmmoran/pyscaffold/pkg/action/generate"
	"github.com/cmmoran/pyscaffold/pkg/manifest"
	"github.com/cmmoran/pyscaffold/pkg/scaffold"
)

func init() {
	rootCmd.AddCommand(NewRenderCommand())
}

func NewRenderCommand() *cobra.Command {
	renderCmd := &cobra.Command{
		Use:     "render",
		Short:   "print free-form classes and functions",
		Long:    "Render the classes and functions sections of a project file to stdout",
		PreRunE: bindScaffoldFlags,
		RunE: func(c *cobra.Command, args []string) error {
			opts, err := loadOptions()
			if err != nil {
				return err
			}
			p, err := manifest.Load(opts.Project)
			if err != nil {
				return err
			}
			text, err := generate.RenderExtras(p)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(c.OutOrStdout(), text)
			return err
		},
	}
	renderCmd.Flags().StringP("project", "p", scaffold.NewOptions().Project, "project file describing classes and functions")
	return renderCmd
}
