package cmd

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/quantmind-br/pkgreq/internal/config"
	"github.com/quantmind-br/pkgreq/internal/core"
	"github.com/quantmind-br/pkgreq/internal/db"
	"github.com/quantmind-br/pkgreq/internal/security"
	"github.com/quantmind-br/pkgreq/internal/ui"
)

// NewLockCmd creates the lock command
func NewLockCmd(cfg *config.Config, log *zerolog.Logger) *cobra.Command {
	return newLockCmd(cfg, log, true)
}

// NewUnlockCmd creates the unlock command
func NewUnlockCmd(cfg *config.Config, log *zerolog.Logger) *cobra.Command {
	return newLockCmd(cfg, log, false)
}

func newLockCmd(cfg *config.Config, log *zerolog.Logger, locked bool) *cobra.Command {
	var kindName string

	use, short, done := "lock name...", "Lock objects against updates", "Locked"
	if !locked {
		use, short, done = "unlock name...", "Unlock objects", "Unlocked"
	}

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Long: `Locked objects keep their installed version: install and update report
an available update candidate as locked instead of selecting it.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, names []string) error {
			ctx := commandContext(cmd)

			kind, err := parseKind(kindName)
			if err != nil {
				ui.PrintError("%v", err)
				return err
			}

			database, err := openStore(ctx, cfg)
			if err != nil {
				return err
			}
			defer closeStore(database, log)

			for _, name := range names {
				if err := security.ValidateObjectName(name); err != nil {
					ui.PrintError("%v", err)
					return exitErr(core.ExitInvalidArgs, "lock: %w", err)
				}
			}

			for _, name := range names {
				n, err := database.SetLocked(ctx, kind, name, locked)
				if errors.Is(err, db.ErrNotFound) {
					ui.PrintError("%s not found: %s", kind, name)
					return exitErr(core.ExitNotFound, "%s %s not found", kind, name)
				}
				if err != nil {
					ui.PrintError("failed to update lock: %v", err)
					return exitErr(core.ExitDatabase, "set lock: %w", err)
				}

				log.Info().Str("name", name).Str("kind", string(kind)).Bool("locked", locked).Int64("objects", n).Msg("lock changed")
				fmt.Fprintln(cmd.OutOrStdout(), ui.SprintSuccess("%s %s (%d objects)", done, core.Ident{Kind: kind, Name: name}, n))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&kindName, "type", "t", "", "kind of the named objects")

	return cmd
}
