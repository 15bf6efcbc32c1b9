package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/cmmoran/pyscaffold/pkg/action/generate"
	"github.com/cmmoran/pyscaffold/pkg/scaffold"
)

func init() {
	rootCmd.AddCommand(NewGenerateCommand())
}

// scaffoldConfig is the shape viper unmarshals into; flags, env and config
// files all land under the scaffold key.
type scaffoldConfig struct {
	Scaffold scaffold.Options `mapstructure:"scaffold"`
}

var scaffoldKeys = map[string]string{
	"project":          "scaffold.project",
	"output-directory": "scaffold.out_dir",
	"models-file":      "scaffold.models_file",
	"schemas-file":     "scaffold.schemas_file",
	"crud-file":        "scaffold.crud_file",
	"main-file":        "scaffold.main_file",
	"extras-file":      "scaffold.extras_file",
	"pydantic-v2":      "scaffold.pydantic_v2",
	"skip-routes":      "scaffold.skip_routes",
}

// addScaffoldFlags registers the shared generation flags on fs.
func addScaffoldFlags(fs *pflag.FlagSet) {
	def := scaffold.NewOptions()
	fs.StringP("project", "p", def.Project, "project file describing models, classes and functions")
	fs.StringP("output-directory", "o", def.OutDir, "directory to write generated files")
	fs.String("models-file", def.ModelsFile, "SQLAlchemy models output file")
	fs.String("schemas-file", def.SchemasFile, "pydantic schemas output file")
	fs.String("crud-file", def.CrudFile, "CRUD helpers output file")
	fs.String("main-file", def.MainFile, "FastAPI application output file")
	fs.String("extras-file", def.ExtrasFile, "free-form classes and functions output file")
	fs.Bool("pydantic-v2", false, "emit pydantic v2 idioms")
	fs.Bool("skip-routes", false, "do not generate the FastAPI application file")
}

// bindScaffoldFlags points each scaffold.* viper key at the running
// command's flag. Commands share keys, so binding happens per run. Keys
// whose flag the command does not define keep their previous source.
func bindScaffoldFlags(c *cobra.Command, _ []string) error {
	for flag, key := range scaffoldKeys {
		f := c.Flags().Lookup(flag)
		if f == nil {
			continue
		}
		if err := viper.BindPFlag(key, f); err != nil {
			return fmt.Errorf("bind %s: %w", flag, err)
		}
	}
	return nil
}

// loadOptions resolves scaffold options from viper (flags > env > config > defaults).
func loadOptions() (*scaffold.Options, error) {
	var cfg scaffoldConfig
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("read options: %w", err)
	}
	opts := cfg.Scaffold
	opts.Normalize()
	return &opts, nil
}

func NewGenerateCommand() *cobra.Command {
	genCmd := &cobra.Command{
		Use:     "generate",
		Short:   "generate python sources",
		Long:    "Render models, schemas, CRUD helpers and routes from a project file",
		PreRunE: bindScaffoldFlags,
		RunE: func(c *cobra.Command, args []string) error {
			opts, err := loadOptions()
			if err != nil {
				return err
			}
			written, err := generate.Generate(opts)
			if err != nil {
				return err
			}
			for _, path := range written {
				fmt.Fprintln(c.OutOrStdout(), path)
			}
			return nil
		},
	}
	addScaffoldFlags(genCmd.Flags())
	return genCmd
}
