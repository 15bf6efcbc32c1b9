package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const projectFile = "../pkg/action/generate/testdata/project.yaml"

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	out := new(bytes.Buffer)
	rootCmd.SetOut(out)
	rootCmd.SetErr(out)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestGenerateAndCheckCommands(t *testing.T) {
	outDir := t.TempDir()

	out, err := run(t, "generate", "-l", "error", "-p", projectFile, "-o", outDir, "--skip-routes")
	require.NoError(t, err)
	require.Contains(t, out, filepath.Join(outDir, "models.py"))
	require.NoFileExists(t, filepath.Join(outDir, "main.py"))

	_, err = run(t, "check", "-l", "error", "-p", projectFile, "-o", outDir, "--skip-routes")
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(outDir, "schemas.py"), []byte("\n"), 0o644))
	out, err = run(t, "check", "-l", "error", "-p", projectFile, "-o", outDir, "--skip-routes")
	require.ErrorIs(t, err, ErrStale)
	require.Contains(t, out, "--- schemas.py")
}

func TestRenderCommand(t *testing.T) {
	out, err := run(t, "render", "-l", "error", "-p", projectFile)
	require.NoError(t, err)
	require.Contains(t, out, "class Settings(BaseSettings):\n")
	require.Contains(t, out, "@app.get(\"/\")\ndef root():\n    return {\"message\": \"Hello World\"}\n")
}

func TestRenderCommandReadsProjectFromEnv(t *testing.T) {
	c, _, err := rootCmd.Find([]string{"render"})
	require.NoError(t, err)
	f := c.Flags().Lookup("project")
	require.NoError(t, f.Value.Set(filepath.Join(t.TempDir(), "missing.yaml")))
	f.Changed = false
	t.Setenv("SCAFFOLD_PROJECT", projectFile)

	out, err := run(t, "render", "-l", "error")
	require.NoError(t, err)
	require.Contains(t, out, "class Settings(BaseSettings):\n")
}

func TestParseLevel(ttt *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "trace", want: "DEBUG-4"},
		{in: "TRACE", want: "DEBUG-4"},
		{in: "info", want: "INFO"},
		{in: "debug+1", want: "DEBUG+1"},
		{in: "loud", wantErr: true},
	}
	for _, tt := range tests {
		tt := tt
		ttt.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			got, err := parseLevel(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got.String())
		})
	}
}
