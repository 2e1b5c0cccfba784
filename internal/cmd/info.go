package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/quantmind-br/pkgreq/internal/args"
	"github.com/quantmind-br/pkgreq/internal/config"
	"github.com/quantmind-br/pkgreq/internal/core"
	"github.com/quantmind-br/pkgreq/internal/pool"
	"github.com/quantmind-br/pkgreq/internal/report"
	"github.com/quantmind-br/pkgreq/internal/ui"
)

// NewInfoCmd creates the info command
func NewInfoCmd(cfg *config.Config, log *zerolog.Logger) *cobra.Command {
	var kindName string

	cmd := &cobra.Command{
		Use:   "info name...",
		Short: "Show object information",
		Long:  `Show the installed object, the candidates and every known version of the named objects.`,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, names []string) error {
			ctx := commandContext(cmd)
			out := cmd.OutOrStdout()

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

			p, err := loadPool(ctx, database, log)
			if err != nil {
				return err
			}

			opts := args.Options{Kind: kind, KnownRepo: p.KnownRepo}
			missing := false
			for _, name := range names {
				spec, err := args.ParseSpec(name, opts)
				if err != nil {
					ui.PrintError("%v", err)
					return exitErr(core.ExitInvalidArgs, "parse argument: %w", err)
				}

				objects := p.QueryByName(spec.Cap, nil, spec.RepoAlias)
				if len(objects) == 0 {
					missing = true
					msg := fmt.Sprintf("%s '%s' not found.", kind, spec.Cap)
					if hints := report.Suggest(spec.Cap.Name, p.Names(kind), 3); len(hints) > 0 {
						msg += fmt.Sprintf(" Did you mean: %s?", strings.Join(hints, ", "))
					}
					fmt.Fprintln(out, ui.SprintWarning("%s", msg))
					continue
				}

				for _, group := range groupObjects(objects) {
					printGroupInfo(out, p, group)
				}
			}

			log.Debug().Strs("names", names).Msg("displayed object info")

			if missing {
				return &ExitError{Code: core.ExitNotFound}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&kindName, "type", "t", "", "kind of the named objects")

	return cmd
}

// groupObjects splits objects by identity, keeping first-seen order
func groupObjects(objects []*core.Object) [][]*core.Object {
	index := make(map[core.Ident]int)
	var groups [][]*core.Object
	for _, obj := range objects {
		i, ok := index[obj.Ident()]
		if !ok {
			i = len(groups)
			index[obj.Ident()] = i
			groups = append(groups, nil)
		}
		groups[i] = append(groups[i], obj)
	}
	return groups
}

// printGroupInfo displays one identity group
func printGroupInfo(out io.Writer, p *pool.Pool, objects []*core.Object) {
	first := objects[0]
	g := p.Group(first)
	if g == nil {
		return
	}

	fmt.Fprintln(out)
	ui.Bold.Fprintf(out, "Information for %s %s:\n", first.Kind, first.Name)
	ui.Muted.Fprintln(out, "────────────────────────────────────────")

	installed := g.Installed()
	candidate := g.Candidate()

	keyValue(out, "Name", first.Name)
	keyValue(out, "Kind", ui.ColorizeKind(string(first.Kind)))
	keyValue(out, "Installed", describe(installed))
	keyValue(out, "Candidate", describe(candidate))
	keyValue(out, "Highest", describe(g.HighestAvailable()))
	keyValue(out, "Status", status(g))
	keyValue(out, "Locked", strconv.FormatBool(g.IsProtected()))

	if first.Patch != nil {
		keyValue(out, "Patch State", string(first.Patch.State))
		keyValue(out, "Affects Package Manager", strconv.FormatBool(first.Patch.AffectsPackageManager))
		keyValue(out, "Needs Confirmation", strconv.FormatBool(first.Patch.NeedsConfirmation()))
	}

	fmt.Fprintln(out)
	table := tablewriter.NewTable(out,
		tablewriter.WithHeader([]string{"S", "Version", "Arch", "Vendor", "Repository", "Priority"}),
		tablewriter.WithAlignment(tw.MakeAlign(6, tw.AlignLeft)),
		tablewriter.WithSymbols(tw.NewSymbols(tw.StyleNone)),
	)
	for _, obj := range objects {
		table.Append(
			statusFlag(obj, installed),
			obj.Edition.String(),
			dash(obj.Arch),
			dash(obj.Vendor),
			obj.Repo,
			strconv.Itoa(p.Priority(obj)),
		)
	}
	table.Render()
}

func keyValue(out io.Writer, key, value string) {
	ui.Bold.Fprintf(out, "%s: ", key)
	fmt.Fprintln(out, value)
}

func describe(obj *core.Object) string {
	if obj == nil {
		return "-"
	}
	return obj.String()
}

func status(g core.Group) string {
	installed := g.Installed()
	switch {
	case installed == nil:
		return "not installed"
	case g.UpdateCandidate() != nil:
		return fmt.Sprintf("out-of-date (version %s available)", g.UpdateCandidate().Edition)
	default:
		return "up-to-date"
	}
}

// statusFlag is "i" for the installed object, "l" when it is locked and
// "v" for other versions of an installed identity
func statusFlag(obj, installed *core.Object) string {
	switch {
	case obj.Installed() && obj.Status.Locked:
		return "il"
	case obj.Installed():
		return "i"
	case obj.Status.Locked:
		return "l"
	case installed != nil:
		return "v"
	}
	return ""
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
