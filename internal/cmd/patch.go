package cmd

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/quantmind-br/pkgreq/internal/config"
	"github.com/quantmind-br/pkgreq/internal/requester"
)

// NewPatchCmd creates the patch command
func NewPatchCmd(cfg *config.Config, log *zerolog.Logger) *cobra.Command {
	return newRequestCmd(cfg, log, requester.CommandPatch,
		"patch",
		"Request installation of needed patches",
		`Request installation of every needed patch. Patches affecting the
package manager are selected on their own first; run the command again once
they are applied to get the remaining ones.`)
}
