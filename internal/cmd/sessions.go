package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/quantmind-br/pkgreq/internal/config"
	"github.com/quantmind-br/pkgreq/internal/core"
	"github.com/quantmind-br/pkgreq/internal/db"
	"github.com/quantmind-br/pkgreq/internal/security"
	"github.com/quantmind-br/pkgreq/internal/ui"
)

// NewSessionsCmd creates the sessions command and its subcommands
func NewSessionsCmd(cfg *config.Config, log *zerolog.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "Show saved request sessions",
		Long:  `List, show and drop the request sessions saved by install, remove, update and patch.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := commandContext(cmd)

			database, err := openStore(ctx, cfg)
			if err != nil {
				return err
			}
			defer closeStore(database, log)

			sessions, err := database.ListSessions(ctx)
			if err != nil {
				ui.PrintError("failed to list sessions: %v", err)
				return exitErr(core.ExitDatabase, "list sessions: %w", err)
			}

			if len(sessions) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.SprintInfo("No sessions saved"))
				return nil
			}

			table := tablewriter.NewTable(cmd.OutOrStdout(),
				tablewriter.WithHeader([]string{"Session", "Command", "Arguments", "Feedback", "Date"}),
				tablewriter.WithAlignment(tw.MakeAlign(5, tw.AlignLeft)),
				tablewriter.WithSymbols(tw.NewSymbols(tw.StyleNone)),
			)
			for _, s := range sessions {
				table.Append(
					s.SessionID,
					s.Command,
					joinArgs(s.Args),
					strconv.Itoa(len(s.Feedback)),
					s.CreatedAt.Format("2006-01-02 15:04"),
				)
			}
			table.Render()
			return nil
		},
	}

	cmd.AddCommand(newSessionsShowCmd(cfg, log))
	cmd.AddCommand(newSessionsDropCmd(cfg, log))

	return cmd
}

func newSessionsShowCmd(cfg *config.Config, log *zerolog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "show session-id",
		Short: "Show the requests of a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)
			out := cmd.OutOrStdout()

			if err := validSessionIDs(args); err != nil {
				return err
			}

			database, err := openStore(ctx, cfg)
			if err != nil {
				return err
			}
			defer closeStore(database, log)

			s, err := database.GetSession(ctx, args[0])
			if err != nil {
				return sessionError(args[0], err)
			}

			fmt.Fprintln(out)
			ui.Bold.Fprintf(out, "Session %s\n", s.SessionID)
			ui.Muted.Fprintln(out, "────────────────────────────────────────")
			keyValue(out, "Command", s.Command)
			keyValue(out, "Arguments", joinArgs(s.Args))
			keyValue(out, "Date", s.CreatedAt.Format("2006-01-02 15:04:05"))
			if len(s.Feedback) > 0 {
				keyValue(out, "Feedback", strings.Join(s.Feedback, ", "))
			}

			if len(s.Actions) == 0 {
				return nil
			}
			fmt.Fprintln(out)
			table := tablewriter.NewTable(out,
				tablewriter.WithHeader([]string{"#", "Action", "Subject"}),
				tablewriter.WithAlignment(tw.MakeAlign(3, tw.AlignLeft)),
				tablewriter.WithSymbols(tw.NewSymbols(tw.StyleNone)),
			)
			for _, a := range s.Actions {
				table.Append(strconv.Itoa(a.Seq+1), a.Action, a.Subject)
			}
			table.Render()
			return nil
		},
	}
}

func newSessionsDropCmd(cfg *config.Config, log *zerolog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:     "drop session-id...",
		Aliases: []string{"rm"},
		Short:   "Delete saved sessions",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, ids []string) error {
			ctx := commandContext(cmd)

			if err := validSessionIDs(ids); err != nil {
				return err
			}

			database, err := openStore(ctx, cfg)
			if err != nil {
				return err
			}
			defer closeStore(database, log)

			for _, id := range ids {
				if err := database.DeleteSession(ctx, id); err != nil {
					return sessionError(id, err)
				}
				log.Info().Str("session_id", id).Msg("session dropped")
				fmt.Fprintln(cmd.OutOrStdout(), ui.SprintSuccess("Dropped session %s", id))
			}
			return nil
		},
	}
}

func validSessionIDs(ids []string) error {
	for _, id := range ids {
		if err := security.ValidateSessionID(id); err != nil {
			ui.PrintError("%v", err)
			return exitErr(core.ExitInvalidArgs, "%w", err)
		}
	}
	return nil
}

func sessionError(id string, err error) error {
	if errors.Is(err, db.ErrNotFound) {
		ui.PrintError("session not found: %s", id)
		ui.PrintInfo("Use 'pkgreq sessions' to see saved sessions")
		return exitErr(core.ExitNotFound, "session %s not found", id)
	}
	ui.PrintError("failed to query session: %v", err)
	return exitErr(core.ExitDatabase, "query session: %w", err)
}

// joinArgs is used for log and table output of raw arguments
func joinArgs(raw []string) string {
	if len(raw) == 0 {
		return "-"
	}
