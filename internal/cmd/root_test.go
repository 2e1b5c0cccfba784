package cmd

import (
	"io"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/quantmind-br/pkgreq/internal/config"
)

func TestNewRootCmd(t *testing.T) {
	t.Parallel()
	logger := zerolog.New(io.Discard)
	cfg := &config.Config{}

	cmd := NewRootCmd(cfg, &logger, "1.0.0")

	assert.NotNil(t, cmd)
	assert.Equal(t, "pkgreq", cmd.Use)

	var names []string
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	for _, want := range []string{"install", "remove", "update", "patch", "info", "list", "repos", "import", "sessions", "lock", "unlock", "completion", "version"} {
		assert.Contains(t, names, want)
	}
}
