package cmd

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/quantmind-br/pkgreq/internal/config"
	"github.com/quantmind-br/pkgreq/internal/requester"
)

// NewInstallCmd creates the install command
func NewInstallCmd(cfg *config.Config, log *zerolog.Logger) *cobra.Command {
	return newRequestCmd(cfg, log, requester.CommandInstall,
		"install [repo:][kind:]name[.arch][op version]...",
		"Request installation of packages",
		`Request installation of the named objects. Arguments may be names, globs
or versioned capabilities ("vim>=9", "libfoo.so.1"), optionally prefixed by a
repository alias ("oss:vim"). Prefix an argument with '!' or '~' to request its
removal in the same run; a leading '-' works after "--".

Installed objects are updated to the best candidate; if no object matches by
name the argument is looked up as a capability.`)
}
