package cmd

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/quantmind-br/pkgreq/internal/catalog"
	"github.com/quantmind-br/pkgreq/internal/config"
	"github.com/quantmind-br/pkgreq/internal/core"
	"github.com/quantmind-br/pkgreq/internal/db"
	"github.com/quantmind-br/pkgreq/internal/ui"
)

// NewCompletionCmd creates the completion command
func NewCompletionCmd(cfg *config.Config, log *zerolog.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for pkgreq.

Object names, repository aliases and kinds are completed from the imported
catalog.

Bash:
  $ source <(pkgreq completion bash)

Zsh:
  $ pkgreq completion zsh > "${fpath[1]}/_pkgreq"

Fish:
  $ pkgreq completion fish > ~/.config/fish/completions/pkgreq.fish

PowerShell:
  PS> pkgreq completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			shell := args[0]

			var err error
			switch shell {
			case "bash":
				err = cmd.Root().GenBashCompletionV2(cmd.OutOrStdout(), true)
			case "zsh":
				err = cmd.Root().GenZshCompletion(cmd.OutOrStdout())
			case "fish":
				err = cmd.Root().GenFishCompletion(cmd.OutOrStdout(), true)
			case "powershell":
				err = cmd.Root().GenPowerShellCompletionWithDesc(cmd.OutOrStdout())
			}
			if err != nil {
				ui.PrintError("Failed to generate %s completion: %v", shell, err)
				return err
			}

			log.Info().Str("shell", shell).Msg("generated shell completion")
			return nil
		},
	}

	return cmd
}

// completer answers shell completion requests from the stored catalog.
// Store failures complete nothing.
type completer struct {
	cfg *config.Config
}

func (c completer) objectNames(cmd *cobra.Command, _ []string, prefix string) ([]string, cobra.ShellCompDirective) {
	kind := core.KindPackage
	if f := cmd.Flags().Lookup("type"); f != nil && f.Value.String() != "" {
		if k, ok := core.ParseKind(f.Value.String()); ok {
			kind = k
		}
	}

	var out []string
	c.withStore(cmd, func(ctx context.Context, database *db.DB) {
		nop := zerolog.Nop()
		p, err := catalog.Build(ctx, database, &nop)
		if err != nil {
			return
		}
		for _, name := range p.Names(kind) {
			if strings.HasPrefix(name, prefix) {
				out = append(out, name)
			}
		}
	})
	return out, cobra.ShellCompDirectiveNoFileComp
}

func (c completer) repoAliases(cmd *cobra.Command, _ []string, prefix string) ([]string, cobra.ShellCompDirective) {
	var out []string
	c.withStore(cmd, func(ctx context.Context, database *db.DB) {
		repos, err := database.ListRepos(ctx)
		if err != nil {
			return
		}
		for _, r := range repos {
			if strings.HasPrefix(r.Alias, prefix) {
				out = append(out, r.Alias+"\t"+r.Name)
			}
		}
	})
	return out, cobra.ShellCompDirectiveNoFileComp
}

func (c completer) withStore(cmd *cobra.Command, fn func(context.Context, *db.DB)) {
	if c.cfg == nil || c.cfg.Paths.DBFile == "" || !storeExists(c.cfg) {
		return
	}
	ctx := commandContext(cmd)
	database, err := db.New(ctx, c.cfg.Paths.DBFile)
	if err != nil {
		return
	}
	defer database.Close()
	fn(ctx, database)
}

func completeKinds(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	return []string{
		string(core.KindPackage),
		string(core.KindPatch),
		string(core.KindPattern),
		string(core.KindProduct),
		string(core.KindSrcPackage),
	}, cobra.ShellCompDirectiveNoFileComp
}

// registerCompletions wires catalog completions into the commands of root
func registerCompletions(root *cobra.Command, cfg *config.Config) {
	c := completer{cfg: cfg}

	for _, sub := range root.Commands() {
		switch sub.Name() {
		case "install", "remove", "update", "info", "lock", "unlock":
			sub.ValidArgsFunction = c.objectNames
		}
		if sub.Flags().Lookup("type") != nil {
			_ = sub.RegisterFlagCompletionFunc("type", completeKinds)
		}
		for _, name := range []string{"from", "repo"} {
			if sub.Flags().Lookup(name) != nil {
				_ = sub.RegisterFlagCompletionFunc(name, c.repoAliases)
			}
		}
		if sub.Name() == "repos" {
			for _, rs := range sub.Commands() {
				if rs.Name() == "remove" {
					rs.ValidArgsFunction = c.repoAliases
				}
			}
		}
	}
}
