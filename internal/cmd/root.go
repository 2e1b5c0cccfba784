package cmd

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/quantmind-br/pkgreq/internal/config"
)

// NewRootCmd creates the root command
func NewRootCmd(cfg *config.Config, log *zerolog.Logger, version string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pkgreq",
		Short: "Package request tool",
		Long: `pkgreq turns install, remove and update requests into concrete selections
on a package catalog or into jobs for a dependency solver, and explains every
choice it makes.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Add subcommands
	cmd.AddCommand(NewInstallCmd(cfg, log))
	cmd.AddCommand(NewRemoveCmd(cfg, log))
	cmd.AddCommand(NewUpdateCmd(cfg, log))
	cmd.AddCommand(NewPatchCmd(cfg, log))
	cmd.AddCommand(NewInfoCmd(cfg, log))
	cmd.AddCommand(NewListCmd(cfg, log))
	cmd.AddCommand(NewReposCmd(cfg, log))
	cmd.AddCommand(NewImportCmd(cfg, log))
	cmd.AddCommand(NewSessionsCmd(cfg, log))
	cmd.AddCommand(NewLockCmd(cfg, log))
	cmd.AddCommand(NewUnlockCmd(cfg, log))
	cmd.AddCommand(NewCompletionCmd(cfg, log))
	cmd.AddCommand(NewVersionCmd(version))

	registerCompletions(cmd, cfg)

	return cmd
}
