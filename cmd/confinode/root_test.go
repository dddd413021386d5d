package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amitgilad3/confinode/gateway"
)

func testFS(t *testing.T) afero.Fs {
	t.Helper()
	fsys := afero.NewMemMapFs()
	require.NoError(t, fsys.MkdirAll("/home/user/project/src", 0o755))
	require.NoError(t, afero.WriteFile(fsys, "/home/user/project/.apprc.json", []byte(`{"port": 8080}`), 0o644))
	require.NoError(t, afero.WriteFile(fsys, "/opt/mods/shared/app.yaml", []byte("shared: true\n"), 0o644))
	return fsys
}

func run(t *testing.T, fsys afero.Fs, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCmdWith(gateway.NewFS(fsys))
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestSearch(t *testing.T) {
	stdout, _, err := run(t, testFS(t),
		"search", "--name", "app", "--base-dir", "/home/user/project", "--stop-dir", "/home/user",
		"--format", "json", "src")
	require.NoError(t, err)

	var doc struct {
		Config map[string]any `json:"config"`
		Files  struct {
			Name string `json:"name"`
		} `json:"files"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &doc))
	assert.Equal(t, map[string]any{"port": 8080.0}, doc.Config)
	assert.Equal(t, "/home/user/project/.apprc.json", doc.Files.Name)
}

func TestSearch_Async(t *testing.T) {
	stdout, _, err := run(t, testFS(t),
		"search", "--name", "app", "--base-dir", "/home/user/project", "--stop-dir", "/home/user",
		"--async", "--format", "text")
	require.NoError(t, err)
	assert.Equal(t, "# source: /home/user/project/.apprc.json\nport: 8080\n", stdout)
}

func TestSearch_NotFound(t *testing.T) {
	_, _, err := run(t, testFS(t),
		"search", "--name", "other", "--base-dir", "/home/user/project", "--stop-dir", "/home/user")

	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 1, exitErr.Code)
	assert.ErrorIs(t, err, errNotFound)
	assert.Equal(t, "configuration not found", err.Error())
}

func TestSearch_RequiresName(t *testing.T) {
	_, _, err := run(t, testFS(t), "search")
	assert.ErrorContains(t, err, "--name is required")
}

func TestSearch_NameFromEnvironment(t *testing.T) {
	t.Setenv("CONFINODE_NAME", "app")
	t.Setenv("CONFINODE_STOP_DIR", "/home/user")

	stdout, _, err := run(t, testFS(t), "search", "--base-dir", "/home/user/project", "--format", "text")
	require.NoError(t, err)
	assert.Contains(t, stdout, "port: 8080")
}

func TestLoad_ModulePath(t *testing.T) {
	stdout, _, err := run(t, testFS(t),
		"load", "--name", "app", "--base-dir", "/home/user/project", "--module-path", "/opt/mods",
		"--format", "text", "shared/app.yaml")
	require.NoError(t, err)
	assert.Equal(t, "# source: /opt/mods/shared/app.yaml\nshared: true\n", stdout)
}

func TestLoad_MissingFileLogsError(t *testing.T) {
	_, stderr, err := run(t, testFS(t),
		"load", "--name", "app", "--base-dir", "/home/user/project", "--log-format", "json", "./missing.yaml")

	assert.ErrorIs(t, err, errNotFound)
	assert.Contains(t, stderr, `"@message":"loadingError"`)
}

func TestStats(t *testing.T) {
	_, stderr, err := run(t, testFS(t),
		"search", "--name", "app", "--base-dir", "/home/user/project", "--stop-dir", "/home/user", "--stats")
	require.NoError(t, err)
	assert.Contains(t, stderr, `confinode_gateway_requests_total{op="read_and_parse"} 1`)
	assert.Contains(t, stderr, `confinode_gateway_requests_total{op="list_entries"} 1`)
}

func TestInvalidFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "format", args: []string{"search", "--name", "app", "--format", "xml"}},
		{name: "log level", args: []string{"search", "--name", "app", "--log-level", "loud"}},
		{name: "log format", args: []string{"search", "--name", "app", "--log-format", "xml"}},
		{name: "load needs an argument", args: []string{"load", "--name", "app"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := run(t, testFS(t), tt.args...)
			assert.Error(t, err)
		})
	}
}

func TestLoaders(t *testing.T) {
	stdout, _, err := run(t, afero.NewMemMapFs(), "loaders")
	require.NoError(t, err)

	for _, suffix := range []string{".yaml", ".yml", ".json", ".toml", ".hcl", ".cue", ".env", ".properties"} {
		assert.Contains(t, stdout, suffix)
	}
	assert.Contains(t, stdout, "builtin")
}
