package cmd

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/quantmind-br/pkgreq/internal/config"
	"github.com/quantmind-br/pkgreq/internal/requester"
)

// NewRemoveCmd creates the remove command
func NewRemoveCmd(cfg *config.Config, log *zerolog.Logger) *cobra.Command {
	cmd := newRequestCmd(cfg, log, requester.CommandRemove,
		"remove [kind:]name[.arch][op version]...",
		"Request removal of packages",
		`Request removal of the named installed objects. If no installed object
matches by name, every installed provider of the capability is removed.
Prefix an argument with '+' to request its installation in the same run.`)
	cmd.Aliases = []string{"rm"}
	return cmd
}
