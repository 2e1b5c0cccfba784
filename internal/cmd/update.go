package cmd

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/quantmind-br/pkgreq/internal/config"
	"github.com/quantmind-br/pkgreq/internal/requester"
)

// NewUpdateCmd creates the update command
func NewUpdateCmd(cfg *config.Config, log *zerolog.Logger) *cobra.Command {
	cmd := newRequestCmd(cfg, log, requester.CommandUpdate,
		"update name...",
		"Request updates of installed packages",
		`Request updates of the named installed objects. Objects that are not
installed are reported and left alone; negative arguments are ignored.

With --best-effort the update is requested as a version constraint
("name > installed version") and left to the solver.`)
	cmd.Aliases = []string{"up"}
	return cmd
}
