// Package report turns requester feedback into user facing messages,
// "did you mean" hints, pending-request tables and exit codes.
package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/fatih/color"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/quantmind-br/pkgreq/internal/core"
	"github.com/quantmind-br/pkgreq/internal/requester"
	"github.com/quantmind-br/pkgreq/internal/ui"
)

// Level is the severity a feedback kind is shown with
type Level int

const (
	LevelInfo Level = iota
	LevelWarning
	LevelError
)

// LevelOf returns the severity of a feedback kind
func LevelOf(id requester.FeedbackID) Level {
	switch id {
	case requester.NotFoundName, requester.NotFoundCap:
		return LevelError
	case requester.NotFoundNameTryingCaps, requester.NotInstalled, requester.NoInstalledProvider,
		requester.UpdCandidateChangesVendor, requester.UpdCandidateHasLowerPrio,
		requester.UpdCandidateIsLocked, requester.SelectedIsOlder,
		requester.PatchInteractiveSkipped, requester.ForcedInstall:
		return LevelWarning
	}
	return LevelInfo
}

// Catalog is what the renderer needs from the pool
type Catalog interface {
	Group(obj *core.Object) core.Group
	Names(kind core.Kind) []string
}

// Renderer formats feedback against a catalog
type Renderer struct {
	catalog Catalog
	out     io.Writer
	verbose bool
}

// NewRenderer creates a renderer writing to out. Verbose also prints the
// mutation records (SET_TO_INSTALL and friends).
func NewRenderer(catalog Catalog, out io.Writer, verbose bool) *Renderer {
	return &Renderer{catalog: catalog, out: out, verbose: verbose}
}

// Message returns the user string of one feedback entry
func (r *Renderer) Message(fb requester.Feedback) string {
	name := fb.Cap.String()

	switch fb.ID {
	case requester.NotFoundNameTryingCaps:
		return fmt.Sprintf("'%s' not found in package names. Trying capabilities.", name)

	case requester.NotFoundName:
		msg := notFoundIn(fb, "package")
		if hint := r.hint(fb); hint != "" {
			msg += " " + hint
		}
		return msg

	case requester.NotFoundCap:
		msg := notFoundIn(fb, "provider of")
		if hint := r.hint(fb); hint != "" {
			msg += " " + hint
		}
		return msg

	case requester.NotInstalled:
		if fb.Cap.Kind == core.KindPackage || fb.Cap.Kind == "" {
			return fmt.Sprintf("Package '%s' is not installed.", name)
		}
		return fmt.Sprintf("%s '%s' is not installed.", titleKind(fb.Cap.Kind), fb.Cap.Name)

	case requester.NoInstalledProvider:
		return fmt.Sprintf("No provider of '%s' is installed.", name)

	case requester.AlreadyInstalled:
		if fb.Selected != nil && fb.Installed != nil && !fb.Selected.Installed() &&
			fb.Selected.Edition.Compare(fb.Installed.Edition) == 0 {
			return fmt.Sprintf("'%s' providing '%s' is already installed.", fb.Installed.Name, name)
		}
		obj := fb.Installed
		if obj == nil {
			obj = fb.Selected
		}
		return fmt.Sprintf("%s '%s' is already installed.", titleKind(kindOf(obj, fb.Cap)), objectName(obj, fb.Cap))

	case requester.NoUpdCandidate:
		obj := fb.Installed
		if obj == nil {
			obj = fb.Selected
		}
		if highest := r.highest(fb); highest != nil && obj != nil && highest.Edition.Compare(obj.Edition) < 0 {
			return fmt.Sprintf("The installed '%s' has a higher version than any available. Nothing to update.", nameEdition(obj))
		}
		return fmt.Sprintf("No update candidate for '%s'. The highest available version is already installed.", nameEdition(obj))

	case requester.UpdCandidateChangesVendor:
		highest := r.highest(fb)
		return fmt.Sprintf("There is an update candidate '%s' for '%s', but it comes from a vendor (%s) other than the installed one (%s). Use '%s' to install it.",
			nameEdition(highest), nameEdition(fb.Installed), vendorOf(highest), vendorOf(fb.Installed), forceHint(highest))

	case requester.UpdCandidateHasLowerPrio:
		highest := r.highest(fb)
		return fmt.Sprintf("There is an update candidate '%s' for '%s', but it comes from a repository with a lower priority (%s). Use '%s' to install it.",
			nameEdition(highest), nameEdition(fb.Installed), repoOf(highest), forceHint(highest))

	case requester.UpdCandidateIsLocked:
		highest := r.highest(fb)
		return fmt.Sprintf("There is an update candidate for '%s', but it is locked. Use 'pkgreq unlock %s' to unlock it.",
			objectName(fb.Installed, fb.Cap), objectName(highest, fb.Cap))

	case requester.UpdCandidateUserRestricted:
		highest := r.highest(fb)
		return fmt.Sprintf("There is an update candidate '%s' for '%s', but it does not match the specified version, architecture, or repository.",
			nameEdition(highest), nameEdition(fb.Installed))

	case requester.SelectedIsOlder:
		return fmt.Sprintf("The selected '%s' is older than the installed '%s'. Use '--force' to downgrade.",
			nameEdition(fb.Selected), nameEdition(fb.Installed))

	case requester.PatchNotNeeded:
		return fmt.Sprintf("Patch '%s' is not needed.", objectName(fb.Selected, fb.Cap))

	case requester.PatchInteractiveSkipped:
		return fmt.Sprintf("Patch '%s' is interactive, skipping.", objectName(fb.Selected, fb.Cap))

	case requester.SetToInstall:
		return fmt.Sprintf("Selecting '%s' for installation.", fb.Selected)

	case requester.ForcedInstall:
		return fmt.Sprintf("Forcing installation of '%s'.", fb.Selected)

	case requester.SetToRemove:
		return fmt.Sprintf("Selecting '%s' for removal.", fb.Selected)

	case requester.AddedRequirement:
		return fmt.Sprintf("Adding requirement: '%s'.", name)

	case requester.AddedConflict:
		return fmt.Sprintf("Adding conflict: '%s'.", name)
	}

	return fb.String()
}

// Print writes every feedback entry colored by its level. Mutation records
// are only shown in verbose mode.
func (r *Renderer) Print(fbs []requester.Feedback) {
	for _, fb := range fbs {
		if fb.ID.IsMutation() && !r.verbose {
			continue
		}
		msg := r.Message(fb)
		switch LevelOf(fb.ID) {
		case LevelError:
			ui.Error.Fprintln(r.out, msg)
		case LevelWarning:
			ui.Warning.Fprintln(r.out, msg)
		default:
			fmt.Fprintln(r.out, msg)
		}
	}
}

func (r *Renderer) highest(fb requester.Feedback) *core.Object {
	if r.catalog == nil || fb.Selected == nil {
		return nil
	}
	g := r.catalog.Group(fb.Selected)
	if g == nil {
		return nil
	}
	return g.HighestAvailable()
}

func (r *Renderer) hint(fb requester.Feedback) string {
	if r.catalog == nil || fb.Cap.Name == "" {
		return ""
	}
	kind := fb.Cap.Kind
	if kind == "" {
		kind = core.KindPackage
	}
	matches := Suggest(fb.Cap.Name, r.catalog.Names(kind), 3)
	if len(matches) == 0 {
		return ""
	}
	return "Did you mean: " + strings.Join(matches, ", ") + "?"
}

func notFoundIn(fb requester.Feedback, what string) string {
	name := fb.Cap.String()
	if fb.Repo != "" {
		return fmt.Sprintf("No %s '%s' found in repository '%s'.", what, name, fb.Repo)
	}
	return fmt.Sprintf("No %s '%s' found.", what, name)
}

// Suggest returns up to limit candidates close to name: fuzzy subsequence
// matches plus names within a small edit distance, closest first
func Suggest(name string, candidates []string, limit int) []string {
	if name == "" || limit <= 0 {
		return nil
	}

	maxDist := len(name) / 3
	if maxDist < 1 {
		maxDist = 1
	}

	type scored struct {
		name string
		dist int
	}
	seen := make(map[string]struct{})
	var picks []scored
	add := func(c string) {
		if c == name {
			return
		}
		if _, ok := seen[c]; ok {
			return
		}
		seen[c] = struct{}{}
		picks = append(picks, scored{name: c, dist: levenshtein.ComputeDistance(strings.ToLower(name), strings.ToLower(c))})
	}

	for _, rank := range fuzzy.RankFindFold(name, candidates) {
		add(rank.Target)
	}
	for _, c := range candidates {
		if levenshtein.ComputeDistance(strings.ToLower(name), strings.ToLower(c)) <= maxDist {
			add(c)
		}
	}

	sort.Slice(picks, func(i, j int) bool {
		if picks[i].dist != picks[j].dist {
			return picks[i].dist < picks[j].dist
		}
		return picks[i].name < picks[j].name
	})

	if len(picks) > limit {
		picks = picks[:limit]
	}
	out := make([]string, len(picks))
	for i, p := range picks {
		out[i] = p.name
	}
	return out
}

// Pending is the outcome of a request run
type Pending struct {
	ToInstall []*core.Object
	ToRemove  []*core.Object
	Requires  []core.Capability
	Conflicts []core.Capability
}

// Empty reports whether nothing is pending
func (p Pending) Empty() bool {
	return len(p.ToInstall) == 0 && len(p.ToRemove) == 0 && len(p.Requires) == 0 && len(p.Conflicts) == 0
}

// Summary writes the pending requests as a table
func Summary(w io.Writer, p Pending) {
	table := tablewriter.NewTable(w,
		tablewriter.WithHeader([]string{"Action", "Kind", "Name", "Version", "Arch", "Repository"}),
		tablewriter.WithAlignment(tw.MakeAlign(6, tw.AlignLeft)),
		tablewriter.WithSymbols(tw.NewSymbols(tw.StyleNone)),
	)

	for _, obj := range p.ToInstall {
		table.Append(objectRow(color.GreenString("install"), obj)...)
	}
	for _, obj := range p.ToRemove {
		table.Append(objectRow(color.RedString("remove"), obj)...)
	}
	for _, c := range p.Requires {
		table.Append(capRow(color.CyanString("require"), c)...)
	}
	for _, c := range p.Conflicts {
		table.Append(capRow(color.YellowString("conflict"), c)...)
	}

	table.Render()
}

func objectRow(action string, obj *core.Object) []any {
	version := obj.Edition.String()
	if version == "" {
		version = "-"
	}
	arch := obj.Arch
	if arch == "" {
		arch = "-"
	}
	return []any{action, ui.ColorizeKind(string(kindOf(obj, core.Capability{}))), obj.Name, version, arch, obj.Repo}
}

func capRow(action string, c core.Capability) []any {
	kind := c.Kind
	if kind == "" {
		kind = core.KindPackage
	}
	version := "-"
	if c.IsVersioned() {
		version = string(c.Rel) + " " + c.Edition.String()
	}
	return []any{action, ui.ColorizeKind(string(kind)), c.Name, version, "-", "-"}
}

// ExitCode maps a feedback ledger to the process exit code
func ExitCode(fbs []requester.Feedback) int {
	for _, fb := range fbs {
		if fb.ID == requester.NotFoundName || fb.ID == requester.NotFoundCap {
			return core.ExitNotFound
		}
	}
	return core.ExitSuccess
}

func kindOf(obj *core.Object, c core.Capability) core.Kind {
	if obj != nil && obj.Kind != "" {
		return obj.Kind
	}
	if c.Kind != "" {
		return c.Kind
	}
	return core.KindPackage
}

func titleKind(k core.Kind) string {
	if k == "" {
		k = core.KindPackage
	}
	s := string(k)
	return strings.ToUpper(s[:1]) + s[1:]
}

func objectName(obj *core.Object, c core.Capability) string {
	if obj == nil {
		return c.Name
	}
	return obj.Name
}

func nameEdition(obj *core.Object) string {
	if obj == nil {
		return "<none>"
	}
	if obj.Edition.IsZero() {
		return obj.Name
	}
	return obj.Name + "-" + obj.Edition.String()
}

func vendorOf(obj *core.Object) string {
	if obj == nil || obj.Vendor == "" {
		return "unknown"
	}
	return obj.Vendor
}

func repoOf(obj *core.Object) string {
	if obj == nil {
		return "unknown"
	}
	return obj.Repo
}

func forceHint(obj *core.Object) string {
	if obj == nil {
		return "pkgreq install --force"
	}
	return fmt.Sprintf("pkgreq install --force %s-%s", obj.Name, obj.Edition)
}
