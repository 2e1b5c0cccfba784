package cmd

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/quantmind-br/pkgreq/internal/config"
	"github.com/quantmind-br/pkgreq/internal/core"
	"github.com/quantmind-br/pkgreq/internal/ui"
)

// listEntry is one row of the list output
type listEntry struct {
	Status  string `json:"status"`
	Kind    string `json:"kind"`
	Name    string `json:"name"`
	Version string `json:"version"`
	Arch    string `json:"arch"`
	Vendor  string `json:"vendor,omitempty"`
	Repo    string `json:"repo"`
	Locked  bool   `json:"locked"`
}

// NewListCmd creates the list command
func NewListCmd(cfg *config.Config, log *zerolog.Logger) *cobra.Command {
	var (
		jsonOutput    bool
		installedOnly bool
		filterKind    string
		filterRepo    string
		filterName    string
		sortBy        string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalog objects",
		Long:  `List the installed and available objects of the catalog with filtering and sorting options.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := commandContext(cmd)

			database, err := openStore(ctx, cfg)
			if err != nil {
				return err
			}
			defer closeStore(database, log)

			p, err := loadPool(ctx, database, log)
			if err != nil {
				return err
			}

			var kind core.Kind
			if filterKind != "" {
				if kind, err = parseKind(filterKind); err != nil {
					ui.PrintError("%v", err)
					return err
				}
			}

			entries := make([]listEntry, 0)
			for _, obj := range p.Objects() {
				if kind != "" && obj.Kind != kind {
					continue
				}
				if installedOnly && !obj.Installed() {
					continue
				}
				if filterRepo != "" && obj.Repo != filterRepo {
					continue
				}
				// Filter by name (case-insensitive partial match)
				if filterName != "" && !strings.Contains(strings.ToLower(obj.Name), strings.ToLower(filterName)) {
					continue
				}

				var installed *core.Object
				if g := p.Group(obj); g != nil {
					installed = g.Installed()
				}
				entries = append(entries, listEntry{
					Status:  statusFlag(obj, installed),
					Kind:    string(obj.Kind),
					Name:    obj.Name,
					Version: obj.Edition.String(),
					Arch:    obj.Arch,
					Vendor:  obj.Vendor,
					Repo:    obj.Repo,
					Locked:  obj.Status.Locked,
				})
			}

			sortEntries(entries, sortBy)

			// JSON output
			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(entries)
			}

			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.SprintInfo("No objects found"))
				return nil
			}

			table := tablewriter.NewTable(cmd.OutOrStdout(),
				tablewriter.WithHeader([]string{"S", "Repository", "Kind", "Name", "Version", "Arch"}),
				tablewriter.WithAlignment(tw.MakeAlign(6, tw.AlignLeft)),
				tablewriter.WithSymbols(tw.NewSymbols(tw.StyleNone)),
			)
			for _, e := range entries {
				table.Append(e.Status, e.Repo, ui.ColorizeKind(e.Kind), e.Name, dash(e.Version), dash(e.Arch))
			}
			table.Render()

			log.Debug().Int("count", len(entries)).Msg("listed objects")
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output in JSON format")
	cmd.Flags().BoolVarP(&installedOnly, "installed", "i", false, "only show installed objects")
	cmd.Flags().StringVarP(&filterKind, "type", "t", "", "filter by kind (package, patch, pattern, product, srcpackage)")
	cmd.Flags().StringVarP(&filterRepo, "repo", "r", "", "filter by repository alias")
	cmd.Flags().StringVar(&filterName, "name", "", "filter by name (partial match)")
	cmd.Flags().StringVar(&sortBy, "sort", "name", "sort by: name, repo")

	return cmd
}

// sortEntries sorts entries by the specified field; versions of one name
// are always listed newest first
func sortEntries(entries []listEntry, sortBy string) {
	byName := func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Name != b.Name {
			return strings.ToLower(a.Name) < strings.ToLower(b.Name)
		}
		if a.Kind != b.Kind {
			return a.Kind < b.Kind
		}
		if c := core.ParseEdition(a.Version).Compare(core.ParseEdition(b.Version)); c != 0 {
			return c > 0
		}
		return a.Repo < b.Repo
	}

	switch strings.ToLower(sortBy) {
	case "repo":
		sort.SliceStable(entries, func(i, j int) bool {
			if entries[i].Repo != entries[j].Repo {
				return entries[i].Repo < entries[j].Repo
			}
			return byName(i, j)
		})
	default:
		sort.SliceStable(entries, byName)
	}
}
