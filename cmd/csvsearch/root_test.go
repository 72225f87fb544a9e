package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nao1215/csvsearch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testApp struct {
	*app
	stdout *bytes.Buffer
	stderr *bytes.Buffer
}

// newTestApp returns an app with in-memory streams. A nil lines means stdin
// is piped; otherwise stdin is a terminal and lines feed the prompt.
func newTestApp(stdin string, lines *string) *testApp {
	ta := &testApp{stdout: &bytes.Buffer{}, stderr: &bytes.Buffer{}}
	ta.app = &app{
		stdin:           strings.NewReader(stdin),
		stdout:          ta.stdout,
		stderr:          ta.stderr,
		stdinIsTerminal: func() bool { return lines != nil },
		newLineReader: func(cfg csvsearch.Config) (csvsearch.LineReader, error) {
			return csvsearch.NewPromptReader(strings.NewReader(*lines), ta.stdout, cfg.Prompt), nil
		},
	}
	return ta
}

func (ta *testApp) execute(t *testing.T, args ...string) error {
	t.Helper()

	config := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(config, nil, 0o600))

	cmd := newRootCmd(ta.app, "1.2.3")
	cmd.SetArgs(append([]string{"--config", config}, args...))
	return cmd.ExecuteContext(context.Background())
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestRootCmd_Version(t *testing.T) {
	t.Parallel()

	ta := newTestApp("", nil)
	require.NoError(t, ta.execute(t, "--version"))
	assert.Equal(t, "csvsearch 1.2.3\n", ta.stdout.String())
}

func TestRootCmd_CommandOneShot(t *testing.T) {
	t.Parallel()

	users := writeFile(t, t.TempDir(), "users.csv", "id,name\n1,alice\n2,bob\n")
	ta := newTestApp("", new(string))

	require.NoError(t, ta.execute(t, "-c", "select count(*) as n from users >>", users))
	assert.Equal(t, "n\n2\n", ta.stdout.String())
	assert.Empty(t, ta.stderr.String())
}

func TestRootCmd_CommandScript(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	users := writeFile(t, dir, "users.csv", "id,name\n1,alice\n2,bob\n")
	out := filepath.Join(dir, "names.tsv")
	script := writeFile(t, dir, "script.sql", "select name from users order by id >> "+out+";\nselect 1 >> !\n")
	ta := newTestApp("", new(string))

	require.NoError(t, ta.execute(t, "--command", script, users))
	assert.Empty(t, ta.stdout.String())

	got, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "name\nalice\nbob\n", string(got))
}

func TestRootCmd_PipedStdin(t *testing.T) {
	t.Parallel()

	ta := newTestApp("a,b\n1,2\n3,4\n", nil)
	require.NoError(t, ta.execute(t))
	assert.Equal(t, "a,b\n1,2\n3,4\n", ta.stdout.String())
}

func TestRootCmd_PipedStdinWithQuery(t *testing.T) {
	t.Parallel()

	ta := newTestApp("host\tstatus\nx\t500\ny\t200\n", nil)
	require.NoError(t, ta.execute(t, "--format", "tsv", "--infer-types", "-c", "select host from input where status > 300 >>"))
	assert.Equal(t, "host\nx\n", ta.stdout.String())
}

func TestRootCmd_Interactive(t *testing.T) {
	t.Parallel()

	lines := "version\nselect 5 as n >>\nquit\nversion\n"
	ta := newTestApp("", &lines)

	require.NoError(t, ta.execute(t))
	out := ta.stdout.String()
	assert.Contains(t, out, "import <file> [as <name>]", "help banner is shown first")
	assert.Equal(t, 1, strings.Count(out, "csvsearch 1.2.3"))
	assert.Contains(t, out, "n\n5\n")
}

func TestRootCmd_DatabaseTarget(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	dbPath := filepath.Join(dir, "app.db")
	users := writeFile(t, dir, "users.csv", "id,name\n1,alice\n")

	ta := newTestApp("", new(string))
	require.NoError(t, ta.execute(t, "-c", "select 1 >> !", dbPath, users))

	ta = newTestApp("", new(string))
	require.NoError(t, ta.execute(t, "-c", "select name from users >>", dbPath))
	assert.Equal(t, "name\nalice\n", ta.stdout.String())
}

func TestRootCmd_StartupErrors(t *testing.T) {
	t.Parallel()

	ta := newTestApp("", new(string))
	err := ta.execute(t, "-c", "tables", filepath.Join(t.TempDir(), "missing.csv"))
	assert.ErrorIs(t, err, csvsearch.ErrLoad)

	ta = newTestApp("", new(string))
	assert.Error(t, ta.execute(t, "--format", "json"))

	ta = newTestApp("", new(string))
	cmd := newRootCmd(ta.app, "1.2.3")
	cmd.SetArgs([]string{"--config", filepath.Join(t.TempDir(), "missing.yaml")})
	assert.Error(t, cmd.ExecuteContext(context.Background()))
}

func TestRootCmd_QueryErrorsAreNotFatal(t *testing.T) {
	t.Parallel()

	ta := newTestApp("", new(string))
	require.NoError(t, ta.execute(t, "-c", "select * from nope; version"))
	assert.Contains(t, ta.stderr.String(), "Error: query error")
	assert.Equal(t, "csvsearch 1.2.3\n", ta.stdout.String())
}

func TestSplitTarget(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		args   []string
		target string
		files  []string
	}{
		{name: "no args", args: nil, target: csvsearch.MemoryTarget, files: nil},
		{name: "files only", args: []string{"a.csv", "b.tsv"}, target: csvsearch.MemoryTarget, files: []string{"a.csv", "b.tsv"}},
		{name: "memory token", args: []string{"-", "a.csv"}, target: "-", files: []string{"a.csv"}},
		{name: "database file", args: []string{"app.db", "a.csv.gz"}, target: "app.db", files: []string{"a.csv.gz"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			target, files := splitTarget(tt.args)
			assert.Equal(t, tt.target, target)
			assert.Equal(t, tt.files, files)
		})
	}
}

func TestNewLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	newLogger(&buf, false).Info("hidden")
	newLogger(&buf, false).Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")

	buf.Reset()
	newLogger(&buf, true).Debug("detail")
	assert.Contains(t, buf.String(), "detail")
}
