package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantmind-br/pkgreq/internal/core"
	"github.com/quantmind-br/pkgreq/internal/db"
)

func TestInstall_DryRun(t *testing.T) {
	e := newImportedEnv(t)
	calls := stubConfirm(t, true)

	out, err := e.run("install", "--dry-run", "joe")
	require.NoError(t, err)

	assert.Contains(t, out, "install")
	assert.Contains(t, out, "joe")
	assert.Contains(t, out, "4.6-1")
	assert.Contains(t, out, "Dry run, nothing was saved.")
	assert.Zero(t, *calls, "dry run must not ask")
	assert.Empty(t, e.sessions(t))
}

func TestInstall_SavesSession(t *testing.T) {
	e := newImportedEnv(t)

	out, err := e.run("install", "-y", "joe", "!nano")
	require.NoError(t, err)
	assert.Contains(t, out, "Saved session")

	sessions := e.sessions(t)
	require.Len(t, sessions, 1)
	s := sessions[0]
	assert.Equal(t, "install", s.Command)
	assert.Equal(t, []string{"joe", "!nano"}, s.Args)

	var actions []string
	for _, a := range s.Actions {
		actions = append(actions, a.Action)
	}
	assert.Equal(t, []string{db.ActionInstall, db.ActionRemove}, actions)
}

func TestInstall_UpdatesInstalled(t *testing.T) {
	e := newImportedEnv(t)

	out, err := e.run("install", "-y", "-v", "vim")
	require.NoError(t, err)
	assert.Contains(t, out, "Selecting 'vim-9.1-1")

	sessions := e.sessions(t)
	require.Len(t, sessions, 1)
	require.Len(t, sessions[0].Actions, 1)
	assert.Contains(t, sessions[0].Actions[0].Subject, "vim-9.1-1")
}

func TestInstall_Confirm(t *testing.T) {
	tests := []struct {
		name     string
		answer   bool
		want     string
		sessions int
	}{
		{"accepted", true, "Saved session", 1},
		{"declined", false, "Cancelled, nothing was saved.", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newImportedEnv(t)
			calls := stubConfirm(t, tt.answer)

			out, err := e.run("install", "joe")
			require.NoError(t, err)
			assert.Equal(t, 1, *calls)
			assert.Contains(t, out, tt.want)
			assert.Len(t, e.sessions(t), tt.sessions)
		})
	}
}

func TestInstall_NotFound(t *testing.T) {
	e := newImportedEnv(t)

	out, err := e.run("install", "-y", "nosuchthing")
	require.Error(t, err)
	assert.Equal(t, core.ExitNotFound, ExitCode(err))
	assert.True(t, Silent(err))

	assert.Contains(t, out, "'nosuchthing' not found in package names. Trying capabilities.")
	assert.Contains(t, out, "No provider of 'nosuchthing' found.")
	assert.Contains(t, out, "Nothing to do.")
	assert.Empty(t, e.sessions(t))
}

func TestInstall_NameOnlyNotFound(t *testing.T) {
	e := newImportedEnv(t)

	out, err := e.run("install", "-y", "--name", "editor")
	require.Error(t, err)
	assert.Equal(t, core.ExitNotFound, ExitCode(err))
	assert.Contains(t, out, "No package 'editor' found.")
	assert.NotContains(t, out, "Trying capabilities")
}

func TestInstall_AlreadyInstalledProvider(t *testing.T) {
	e := newImportedEnv(t)

	out, err := e.run("install", "-y", "--capability", "editor")
	require.NoError(t, err)
	assert.Contains(t, out, "already installed")
	assert.Contains(t, out, "Nothing to do.")
}

func TestInstall_InvalidArguments(t *testing.T) {
	e := newImportedEnv(t)

	tests := []struct {
		name string
		args []string
	}{
		{"unknown repository", []string{"install", "--from", "nosuch", "joe"}},
		{"unknown kind", []string{"install", "-t", "bogus", "joe"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.run(tt.args...)
			require.Error(t, err)
			assert.Equal(t, core.ExitInvalidArgs, ExitCode(err))
		})
	}
}

func TestInstall_ExclusiveFlags(t *testing.T) {
	e := newImportedEnv(t)

	_, err := e.run("install", "--capability", "--name", "joe")
	require.Error(t, err)
	assert.Equal(t, core.ExitGeneral, ExitCode(err))
}

func TestRemove(t *testing.T) {
	e := newImportedEnv(t)

	out, err := e.run("remove", "-y", "nano")
	require.NoError(t, err)
	assert.Contains(t, out, "remove")
	assert.Contains(t, out, "nano")

	sessions := e.sessions(t)
	require.Len(t, sessions, 1)
	assert.Equal(t, "remove", sessions[0].Command)
	require.Len(t, sessions[0].Actions, 1)
	assert.Equal(t, db.ActionRemove, sessions[0].Actions[0].Action)
}

func TestRemove_NoInstalledProvider(t *testing.T) {
	e := newImportedEnv(t)

	out, err := e.run("remove", "-y", "joe")
	require.NoError(t, err)
	assert.Contains(t, out, "Package 'joe' is not installed.")
	assert.Contains(t, out, "No provider of 'joe' is installed.")
	assert.Contains(t, out, "Nothing to do.")
}

func TestUpdate(t *testing.T) {
	e := newImportedEnv(t)

	out, err := e.run("update", "--dry-run", "vim", "joe")
	require.NoError(t, err)
	assert.Contains(t, out, "Package 'joe' is not installed.")
	assert.Contains(t, out, "vim")
	assert.Contains(t, out, "9.1-1")
	assert.Contains(t, out, "Dry run, nothing was saved.")
}

func TestUpdate_BestEffort(t *testing.T) {
	e := newImportedEnv(t)

	_, err := e.run("update", "-y", "--best-effort", "vim")
	require.NoError(t, err)

	sessions := e.sessions(t)
	require.Len(t, sessions, 1)
	require.Len(t, sessions[0].Actions, 1)
	assert.Equal(t, db.ActionRequire, sessions[0].Actions[0].Action)
	assert.Contains(t, sessions[0].Actions[0].Subject, "vim > 9.0-1")
}

func TestPatch(t *testing.T) {
	e := newImportedEnv(t)

	out, err := e.run("patch", "-y")
	require.NoError(t, err)
	assert.Contains(t, out, "openSUSE-2024-1")

	sessions := e.sessions(t)
	require.Len(t, sessions, 1)
	assert.Equal(t, "patch", sessions[0].Command)
	assert.Empty(t, sessions[0].Args)
}

func TestPatch_RejectsArguments(t *testing.T) {
	e := newTestEnv(t)

	_, err := e.run("patch", "foo")
	require.Error(t, err)
}

func TestRequestFlags_Options(t *testing.T) {
	e := newTestEnv(t)
	e.cfg.Solver.BestEffort = true
	e.cfg.Solver.FromRepos = []string{"oss"}

	f := requestFlags{byName: true}
	opts := f.options(e.cfg)
	assert.True(t, opts.BestEffort)
	assert.True(t, opts.ForceByName())
	assert.False(t, opts.ForceByCap())
	assert.Equal(t, []string{"oss"}, opts.FromRepos)

	f = requestFlags{fromRepos: []string{"extra"}}
	opts = f.options(e.cfg)
	assert.Equal(t, []string{"extra"}, opts.FromRepos)
	assert.False(t, opts.ForceByName())
}
