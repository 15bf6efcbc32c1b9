package generate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/cmmoran/pyscaffold/internal/orm"
	"github.com/cmmoran/pyscaffold/pkg/manifest"
	"github.com/cmmoran/pyscaffold/pkg/scaffold"
)

const projectFile = "testdata/project.yaml"

func TestGenerate(ttt *testing.T) {
	tests := []struct {
		name  string
		opts  []scaffold.Option
		files []string
	}{
		{
			name:  "defaults",
			files: []string{"crud.py", "extras.py", "main.py", "models.py", "schemas.py"},
		},
		{
			name:  "skip routes",
			opts:  []scaffold.Option{scaffold.WithSkipRoutes()},
			files: []string{"crud.py", "extras.py", "models.py", "schemas.py"},
		},
		{
			name:  "nested output names",
			opts:  []scaffold.Option{scaffold.WithModelsFile("db/models.py"), scaffold.WithCrudFile("db/repo/crud.py")},
			files: []string{"db/models.py", "db/repo/crud.py", "extras.py", "main.py", "schemas.py"},
		},
		{
			name:  "renamed outputs",
			opts:  []scaffold.Option{scaffold.WithModelsFile("db_models.py"), scaffold.WithExtrasFile("settings.py")},
			files: []string{"crud.py", "db_models.py", "main.py", "schemas.py", "settings.py"},
		},
	}
	for _, tt := range tests {
		tt := tt
		ttt.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			outDir := t.TempDir()
			opts := scaffold.New(append([]scaffold.Option{
				scaffold.WithProject(projectFile),
				scaffold.WithOutDir(outDir),
			}, tt.opts...)...)

			written, err := Generate(opts)
			require.NoError(t, err)

			want := make([]string, len(tt.files))
			for i, f := range tt.files {
				want[i] = filepath.Join(outDir, f)
			}
			require.Equal(t, want, written)
		})
	}
}

func TestGenerateModelsMatchesRenderer(t *testing.T) {
	t.Parallel()
	outDir := t.TempDir()
	opts := scaffold.New(scaffold.WithProject(projectFile), scaffold.WithOutDir(outDir))
	_, err := Generate(opts)
	require.NoError(t, err)

	p, err := manifest.Load(projectFile)
	require.NoError(t, err)
	want, err := orm.ModelsPage(p.Models)
	require.NoError(t, err)

	got, err := os.ReadFile(filepath.Join(outDir, "models.py"))
	require.NoError(t, err)
	require.Equalf(t, want, string(got), "diff = %s", cmp.Diff(want, string(got)))
}

func TestRenderExtras(t *testing.T) {
	t.Parallel()
	p, err := manifest.Load(projectFile)
	require.NoError(t, err)

	got, err := RenderExtras(p)
	require.NoError(t, err)

	want := `class Settings(BaseSettings):

    database_url: str = "sqlite:///./sql_app.db"

    class Config:

        env_file: str = ".env"


@app.get("/")
def root():
    return {"message": "Hello World"}
`
	require.Equalf(t, want, got, "diff = %s", cmp.Diff(want, got))
}

func TestRenderIsDeterministic(t *testing.T) {
	t.Parallel()
	p, err := manifest.Load(projectFile)
	require.NoError(t, err)
	opts := scaffold.New(scaffold.WithPydanticV2())

	first, err := Render(p, opts)
	require.NoError(t, err)
	second, err := Render(p, opts)
	require.NoError(t, err)
	require.Equal(t, first, second)
	require.Contains(t, first["schemas.py"], "from_attributes: bool = True")
	require.Contains(t, first["crud.py"], `user.model_dump(exclude={"password"})`)
}

func TestRenderEmptyProject(t *testing.T) {
	t.Parallel()
	p := &manifest.Project{}
	files, err := Render(p, scaffold.New())
	require.NoError(t, err)
	require.Empty(t, files)
}

func TestGenerateErrors(ttt *testing.T) {
	tests := []struct {
		name string
		doc  string
		opts []scaffold.Option
	}{
		{
			name: "unknown type mapping",
			doc:  "models:\n  - name: invoice\n    fields: [{name: total, datatype: Decimal}]\n",
		},
		{
			name: "invalid project",
			doc:  "models:\n  - name: invoice\n",
		},
		{
			name: "clashing file names",
			doc:  "functions: [{name: f, return: '1'}]\n",
			opts: []scaffold.Option{scaffold.WithMainFile("models.py")},
		},
	}
	for _, tt := range tests {
		tt := tt
		ttt.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			dir := t.TempDir()
			project := filepath.Join(dir, "project.yaml")
			require.NoError(t, os.WriteFile(project, []byte(tt.doc), 0o644))

			opts := scaffold.New(append([]scaffold.Option{
				scaffold.WithProject(project),
				scaffold.WithOutDir(filepath.Join(dir, "out")),
			}, tt.opts...)...)
			written, err := Generate(opts)
			require.Error(t, err)
			require.Empty(t, written)
			require.NoDirExists(t, filepath.Join(dir, "out"))
		})
	}
}
