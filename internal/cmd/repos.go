package cmd

import (
	"context"
	"errors"
	"fmt"
	"strconv"

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

// NewReposCmd creates the repos command and its subcommands
func NewReposCmd(cfg *config.Config, log *zerolog.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "repos",
		Aliases: []string{"lr"},
		Short:   "Manage repositories",
		Long:    `List, add and remove the repositories of the catalog. Without a subcommand the repositories are listed.`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return listRepos(cmd, cfg, log)
		},
	}

	cmd.AddCommand(newReposAddCmd(cfg, log))
	cmd.AddCommand(newReposRemoveCmd(cfg, log))

	return cmd
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func listRepos(cmd *cobra.Command, cfg *config.Config, log *zerolog.Logger) error {
	ctx := commandContext(cmd)

	database, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore(database, log)

	repos, err := database.ListRepos(ctx)
	if err != nil {
		ui.PrintError("failed to list repositories: %v", err)
		return exitErr(core.ExitDatabase, "list repos: %w", err)
	}

	if len(repos) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), ui.SprintInfo("No repositories defined. Use 'pkgreq import' or 'pkgreq repos add'."))
		return nil
	}

	table := tablewriter.NewTable(cmd.OutOrStdout(),
		tablewriter.WithHeader([]string{"#", "Alias", "Name", "Enabled", "Priority"}),
		tablewriter.WithAlignment(tw.MakeAlign(5, tw.AlignLeft)),
		tablewriter.WithSymbols(tw.NewSymbols(tw.StyleNone)),
	)
	for i, r := range repos {
		enabled := ui.Success.Sprint("Yes")
		if !r.Enabled {
			enabled = ui.Muted.Sprint("No")
		}
		table.Append(strconv.Itoa(i+1), r.Alias, r.Name, enabled, strconv.Itoa(r.Priority))
	}
	table.Render()
	return nil
}

func newReposAddCmd(cfg *config.Config, log *zerolog.Logger) *cobra.Command {
	var (
		name     string
		priority int
		disabled bool
	)

	cmd := &cobra.Command{
		Use:   "add alias",
		Short: "Add or update a repository",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)
			alias := args[0]
			if err := security.ValidateRepoAlias(alias); err != nil {
				ui.PrintError("%v", err)
				return exitErr(core.ExitInvalidArgs, "add repo: %w", err)
			}

			if !cmd.Flags().Changed("priority") {
				priority = cfg.Repos.DefaultPriority
			}
			if priority <= 0 {
				priority = core.DefaultPriority
			}
			if name == "" {
				name = alias
			}

			database, err := openStore(ctx, cfg)
			if err != nil {
				return err
			}
			defer closeStore(database, log)

			repo := core.Repository{Alias: alias, Name: name, Priority: priority, Enabled: !disabled}
			if err := database.UpsertRepo(ctx, repo); err != nil {
				ui.PrintError("%v", err)
				return exitErr(core.ExitInvalidArgs, "add repo: %w", err)
			}

			log.Info().Str("alias", alias).Int("priority", priority).Bool("enabled", repo.Enabled).Msg("repository saved")
			fmt.Fprintln(cmd.OutOrStdout(), ui.SprintSuccess("Repository '%s' saved", alias))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "human readable name")
	cmd.Flags().IntVarP(&priority, "priority", "p", 0, "priority, lower wins (default from config)")
	cmd.Flags().BoolVar(&disabled, "disable", false, "add the repository disabled")

	return cmd
}

func newReposRemoveCmd(cfg *config.Config, log *zerolog.Logger) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "remove alias",
		Aliases: []string{"rm"},
		Short:   "Remove a repository and its objects",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)
			alias := args[0]

			if !yes {
				ok, err := confirm(fmt.Sprintf("Remove repository '%s' and all its objects", alias))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), ui.SprintWarning("Cancelled"))
					return nil
				}
			}

			database, err := openStore(ctx, cfg)
			if err != nil {
				return err
			}
			defer closeStore(database, log)

			if err := database.DeleteRepo(ctx, alias); err != nil {
				if errors.Is(err, db.ErrNotFound) {
					ui.PrintError("repository not found: %s", alias)
					return exitErr(core.ExitNotFound, "repository %s not found", alias)
				}
				ui.PrintError("failed to remove repository: %v", err)
				return exitErr(core.ExitDatabase, "remove repo: %w", err)
			}

			log.Info().Str("alias", alias).Msg("repository removed")
			fmt.Fprintln(cmd.OutOrStdout(), ui.SprintSuccess("Repository '%s' removed", alias))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")

	return cmd
}
