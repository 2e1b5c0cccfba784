package cmd

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/quantmind-br/pkgreq/internal/config"
	"github.com/quantmind-br/pkgreq/internal/db"
	"github.com/quantmind-br/pkgreq/internal/ui"
)

const testCatalog = `
[[repo]]
alias = "oss"
name = "Main Repository"
priority = 10

[[repo]]
alias = "extra"
priority = 20

[[package]]
name = "vim"
version = "9.0-1"
arch = "x86_64"
vendor = "openSUSE"
installed = true
provides = ["editor"]

[[package]]
name = "vim"
version = "9.1-1"
arch = "x86_64"
vendor = "openSUSE"
repo = "oss"

[[package]]
name = "nano"
version = "7.2-1"
arch = "x86_64"
vendor = "openSUSE"
installed = true
provides = ["editor"]

[[package]]
name = "emacs"
version = "29.1-1"
arch = "x86_64"
vendor = "openSUSE"
repo = "extra"
provides = ["editor"]

[[package]]
name = "joe"
version = "4.6-1"
arch = "x86_64"
vendor = "openSUSE"
repo = "oss"

[[package]]
name = "openSUSE-2024-1"
kind = "patch"
repo = "oss"

[package.patch]
state = "needed"
`

type testEnv struct {
	cfg *config.Config
	log zerolog.Logger
	dir string
}

// newTestEnv creates a config pointing at a fresh database and silences
// the global ui streams for the duration of the test
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dir := t.TempDir()
	cfg := &config.Config{}
	cfg.Paths.DataDir = dir
	cfg.Paths.DBFile = filepath.Join(dir, "pkgreq.db")
	cfg.Repos.DefaultPriority = 99

	oldOut, oldErr := ui.Stdout, ui.Stderr
	ui.Stdout, ui.Stderr = io.Discard, io.Discard
	ui.DisableColors()
	t.Cleanup(func() {
		ui.Stdout, ui.Stderr = oldOut, oldErr
		ui.EnableColors()
	})

	return &testEnv{cfg: cfg, log: zerolog.New(io.Discard), dir: dir}
}

// newImportedEnv is newTestEnv with the test catalog already imported
func newImportedEnv(t *testing.T) *testEnv {
	t.Helper()

	e := newTestEnv(t)
	path := filepath.Join(e.dir, "catalog.toml")
	require.NoError(t, os.WriteFile(path, []byte(testCatalog), 0o600))

	_, err := e.run("import", "-q", path)
	require.NoError(t, err)
	return e
}

// run executes the root command with args and returns its output
func (e *testEnv) run(args ...string) (string, error) {
	var buf bytes.Buffer
	root := NewRootCmd(e.cfg, &e.log, "test")
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return buf.String(), err
}

// sessions reads the saved sessions straight from the store
func (e *testEnv) sessions(t *testing.T) []db.Session {
	t.Helper()

	database, err := db.New(context.Background(), e.cfg.Paths.DBFile)
	require.NoError(t, err)
	defer database.Close()

	sessions, err := database.ListSessions(context.Background())
	require.NoError(t, err)
	return sessions
}

// stubConfirm replaces the confirmation prompt for the duration of the test
func stubConfirm(t *testing.T, answer bool) *int {
	t.Helper()

	calls := 0
	old := confirm
	confirm = func(string) (bool, error) {
		calls++
		return answer, nil
	}
	t.Cleanup(func() { confirm = old })
	return &calls
}
