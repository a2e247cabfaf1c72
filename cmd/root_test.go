package cmd

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/oakwood-commons/jsonexplorer/internal/navigator"
	"github.com/oakwood-commons/jsonexplorer/internal/session"
)

const sampleDoc = `{"name":"svc","ports":[80,443]}`

// isolateConfig keeps tests away from the user's real config directory.
func isolateConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("HOME", dir)
	return dir
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func runCLIWithInput(t *testing.T, stdin io.Reader, args ...string) (string, error) {
	t.Helper()
	isolateConfig(t)
	o := newRootOptions()
	o.isTerminal = func() bool { return false }
	c := newRootCmd(o)
	var out bytes.Buffer
	c.SetOut(&out)
	c.SetErr(io.Discard)
	if stdin != nil {
		c.SetIn(stdin)
	}
	c.SetArgs(args)
	err := c.Execute()
	return out.String(), err
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return runCLIWithInput(t, nil, args...)
}

func TestCLI_Version(t *testing.T) {
	out, err := runCLI(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "jsonexplorer v0.0.0-nightly"), out)
	assert.Contains(t, out, "go ")
}

func TestCLI_PrintTree(t *testing.T) {
	path := writeFile(t, "doc.json", sampleDoc)
	out, err := runCLI(t, "print", path)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "root{2}\n"), out)
	assert.Contains(t, out, `name : (String) "svc"`)
	assert.Contains(t, out, "ports : [2]")
	assert.Contains(t, out, "0 : (Double) 80")
	assert.Contains(t, out, "1 : (Double) 443")
}

func TestCLI_PrintNoValuesAndDepth(t *testing.T) {
	path := writeFile(t, "doc.json", `{"a":{"b":{"c":1}},"d":true}`)

	out, err := runCLI(t, "print", "--no-values", path)
	require.NoError(t, err)
	assert.Contains(t, out, "d : (Bool)")
	assert.NotContains(t, out, "true")

	out, err = runCLI(t, "print", "--depth", "1", path)
	require.NoError(t, err)
	assert.Contains(t, out, "a : {1}")
	assert.Contains(t, out, "...")
	assert.NotContains(t, out, "b : {1}")
}

func TestCLI_PrintPath(t *testing.T) {
	path := writeFile(t, "doc.json", sampleDoc)

	out, err := runCLI(t, "print", "--path", "$.ports", path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "$.ports : [2]\n"), out)
	assert.Contains(t, out, "1 : (Double) 443")
	assert.NotContains(t, out, "svc")

	out, err = runCLI(t, "print", "--path", "ports[1]", path)
	require.NoError(t, err)
	assert.Equal(t, "$.ports[1] : (Double) 443\n", out)

	_, err = runCLI(t, "print", "--path", "$.nope", path)
	assert.ErrorIs(t, err, navigator.ErrNotFound)

	_, err = runCLI(t, "print", "--path", "$.ports[", path)
	assert.ErrorIs(t, err, navigator.ErrSyntax)
}

func TestCLI_PrintStdin(t *testing.T) {
	out, err := runCLIWithInput(t, strings.NewReader(`[true,"x"]`), "print", "-")
	require.NoError(t, err)
	assert.Contains(t, out, "root[2]")
	assert.Contains(t, out, "0 : (Bool) true")
}

func TestCLI_PrintErrors(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.json")
	cases := []struct {
		name string
		path string
		kind session.ErrorKind
		msg  string
	}{
		{"missing", missing, session.KindFileOpen, "Could not open file: " + missing},
		{"parse", writeFile(t, "bad.json", `{"a":`), session.KindParse, "Failed to parse file: "},
		{"scalar", writeFile(t, "scalar.json", `"text"`), session.KindUnsupportedRoot, "Unsupported root: String (expected array or object)"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := runCLI(t, "print", tc.path)
			require.Error(t, err)
			assert.Empty(t, out)
			assert.True(t, strings.HasPrefix(err.Error(), tc.msg), err.Error())

			var le *session.LoadError
			require.ErrorAs(t, err, &le)
			assert.Equal(t, tc.kind, le.Kind)
		})
	}
}

func TestCLI_ConfigGet(t *testing.T) {
	out, err := runCLI(t, "config", "get")
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &doc))
	assert.Contains(t, doc, "themes")

	out, err = runCLI(t, "config", "get", "-o", "json")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	ui, ok := doc["ui"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "dark", ui["theme"])

	out, err = runCLI(t, "config", "get", "-o", "toml")
	require.NoError(t, err)
	assert.Contains(t, out, "[ui]")

	_, err = runCLI(t, "config", "get", "-o", "xml")
	assert.Error(t, err)
}

func TestCLI_ConfigFileOverrides(t *testing.T) {
	tomlPath := writeFile(t, "config.toml", "[ui]\ntheme = \"warm\"\nexpand_depth = 3\n")
	out, err := runCLI(t, "--config-file", tomlPath, "config", "get", "-o", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"theme": "warm"`)
	assert.Contains(t, out, `"expand_depth": 3`)

	yamlPath := writeFile(t, "config.yaml", "themes:\n  mono:\n    accent: \"#ffffff\"\nui:\n  theme: mono\n")
	out, err = runCLI(t, "--config-file", yamlPath, "themes")
	require.NoError(t, err)
	assert.Contains(t, out, "* mono")
	assert.Contains(t, out, "  dark")
}

func TestCLI_ConfigFileErrors(t *testing.T) {
	_, err := runCLI(t, "--config-file", filepath.Join(t.TempDir(), "nope.yaml"), "themes")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config")

	bad := writeFile(t, "bad.yaml", "ui:\n  theme: missing\n")
	_, err = runCLI(t, "--config-file", bad, "themes")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown theme "missing"`)
}

func TestCLI_Themes(t *testing.T) {
	out, err := runCLI(t, "themes")
	require.NoError(t, err)
	assert.Equal(t, "  cool\n* dark\n  warm\n", out)

	again, err := runCLI(t, "config", "themes")
	require.NoError(t, err)
	assert.Equal(t, out, again)
}

func TestCLI_Snapshot(t *testing.T) {
	path := writeFile(t, "doc.json", sampleDoc)
	out, err := runCLI(t, "--snapshot", "--no-color", "--width", "80", "--height", "20", path)
	require.NoError(t, err)

	assert.NotContains(t, out, "38;5;", "no-color output sets no foreground colors")
	assert.NotContains(t, out, "48;5;", "no-color output sets no background colors")
	assert.Contains(t, out, "jsonexplorer  "+path)
	assert.Contains(t, out, "root{2}")
	assert.Contains(t, out, "Editor (object)")
	assert.Len(t, strings.Split(strings.TrimSuffix(out, "\n"), "\n"), 20)
}

func TestCLI_SnapshotPressKeys(t *testing.T) {
	path := writeFile(t, "doc.json", sampleDoc)
	out, err := runCLI(t, "--snapshot", "--no-color", "--width", "90", "--height", "20",
		"--no-raw", "--press", "jj", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Editor (array)")
	assert.Contains(t, out, "443")
	assert.NotContains(t, out, "Raw")
}

func TestCLI_SnapshotExpandDepth(t *testing.T) {
	path := writeFile(t, "doc.json", `{"a":{"b":{"c":1}}}`)

	out, err := runCLI(t, "--snapshot", "--no-color", "--width", "80", "--height", "20", "--expand-depth", "0", path)
	require.NoError(t, err)
	assert.NotContains(t, out, "a : {1}")

	out, err = runCLI(t, "--snapshot", "--no-color", "--width", "80", "--height", "20", "--expand-depth", "3", path)
	require.NoError(t, err)
	assert.Contains(t, out, "c : (Double)")

	_, err = runCLI(t, "--snapshot", "--expand-depth=-1", path)
	assert.Error(t, err)
}

func TestCLI_UnknownTheme(t *testing.T) {
	path := writeFile(t, "doc.json", sampleDoc)
	_, err := runCLI(t, "--snapshot", "--theme", "nope", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown theme "nope"`)
}

func TestCLI_ViewerNeedsTerminal(t *testing.T) {
	path := writeFile(t, "doc.json", sampleDoc)
	_, err := runCLI(t, path)
	assert.ErrorIs(t, err, errNoTerminal)
}

func TestCLI_TooManyArgs(t *testing.T) {
	_, err := runCLI(t, "a.json", "b.json")
	assert.Error(t, err)
}

func TestOpenLogSink(t *testing.T) {
	w, closer, err := openLogSink("", false)
	require.NoError(t, err)
	assert.Equal(t, os.Stderr, w)
	assert.NoError(t, closer())

	w, closer, err = openLogSink("", true)
	require.NoError(t, err)
	assert.Equal(t, io.Discard, w)
	assert.NoError(t, closer())

	logPath := filepath.Join(t.TempDir(), "logs", "run.log")
	w, closer, err = openLogSink(logPath, true)
	require.NoError(t, err)
	_, err = io.WriteString(w, "line\n")
	require.NoError(t, err)
	require.NoError(t, closer())
	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Equal(t, "line\n", string(data))
}
