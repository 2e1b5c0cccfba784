package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	// Test loading config (will use defaults if file doesn't exist)
	cfg, err := Load()
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "auto", cfg.Logging.Color)
	assert.Equal(t, 99, cfg.Repos.DefaultPriority)
	assert.False(t, cfg.Solver.BestEffort)
	assert.NotEmpty(t, cfg.Paths.DataDir)
	assert.Equal(t, "pkgreq.db", filepath.Base(cfg.Paths.DBFile))
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("PKGREQ_LOGGING_LEVEL", "debug")
	t.Setenv("PKGREQ_SOLVER_BEST_EFFORT", "true")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Solver.BestEffort)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	data := `
[paths]
db_file = "$PKGREQ_TEST_DIR/catalog.db"

[solver]
skip_interactive = true
from_repos = ["oss", "update"]

[repos]
default_priority = 50

[logging]
color = "never"
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))
	t.Setenv("PKGREQ_TEST_DIR", dir)

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "catalog.db"), cfg.Paths.DBFile)
	assert.True(t, cfg.Solver.SkipInteractive)
	assert.Equal(t, []string{"oss", "update"}, cfg.Solver.FromRepos)
	assert.Equal(t, 50, cfg.Repos.DefaultPriority)
	assert.Equal(t, "never", cfg.Logging.Color)
}

func TestLoadFile_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"syntax", "[logging\n"},
		{"color", "[logging]\ncolor = \"sometimes\"\n"},
		{"priority", "[repos]\ndefault_priority = -1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			require.NoError(t, os.WriteFile(path, []byte(tt.data), 0o600))
			_, err := LoadFile(path)
			assert.Error(t, err)
		})
	}
}

func TestExpandPath(t *testing.T) {
	homeDir, _ := os.UserHomeDir()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "empty path",
			input: "",
			want:  "",
		},
		{
			name:  "absolute path",
			input: "/usr/local/bin",
			want:  "/usr/local/bin",
		},
		{
			name:  "home expansion",
			input: "~/test",
			want:  filepath.Join(homeDir, "test"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := expandPath(tt.input)
			if got != tt.want {
				t.Errorf("expandPath(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
