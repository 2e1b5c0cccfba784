package cmd

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/quantmind-br/pkgreq/internal/args"
	"github.com/quantmind-br/pkgreq/internal/config"
	"github.com/quantmind-br/pkgreq/internal/core"
	"github.com/quantmind-br/pkgreq/internal/db"
	"github.com/quantmind-br/pkgreq/internal/logging"
	"github.com/quantmind-br/pkgreq/internal/report"
	"github.com/quantmind-br/pkgreq/internal/requester"
	"github.com/quantmind-br/pkgreq/internal/solver"
	"github.com/quantmind-br/pkgreq/internal/ui"
)

// confirm asks the user before a request run is saved; replaced in tests
var confirm = ui.ConfirmPrompt

// requestFlags are shared by install, remove, update and patch
type requestFlags struct {
	force           bool
	byCapability    bool
	byName          bool
	bestEffort      bool
	skipInteractive bool
	fromRepos       []string
	kind            string
	dryRun          bool
	yes             bool
	verbose         bool
}

func (f *requestFlags) bind(cmd *cobra.Command, command requester.Command) {
	flags := cmd.Flags()

	if command != requester.CommandPatch {
		flags.StringVarP(&f.kind, "type", "t", "", "kind of the named objects (package, patch, pattern, product, srcpackage)")
		flags.BoolVarP(&f.byCapability, "capability", "C", false, "select objects by capability only")
		flags.BoolVarP(&f.byName, "name", "n", false, "select objects by name only, never by capability")
		flags.StringSliceVar(&f.fromRepos, "from", nil, "restrict candidates to these repositories")
		cmd.MarkFlagsMutuallyExclusive("capability", "name")
	}
	if command == requester.CommandInstall || command == requester.CommandUpdate {
		flags.BoolVarP(&f.force, "force", "f", false, "install the selected object even if it is older or already installed")
		flags.BoolVar(&f.bestEffort, "best-effort", false, "request updates as version constraints for the solver")
	}
	if command != requester.CommandRemove {
		flags.BoolVar(&f.skipInteractive, "skip-interactive", false, "skip patches that need confirmation or a license")
	}

	flags.BoolVarP(&f.dryRun, "dry-run", "D", false, "show what would be requested without saving it")
	flags.BoolVarP(&f.yes, "yes", "y", false, "do not ask for confirmation")
	flags.BoolVarP(&f.verbose, "verbose", "v", false, "also show every issued request")
}

// options merges the flags with the configured defaults
func (f *requestFlags) options(cfg *config.Config) requester.Options {
	opts := requester.Options{
		Force:           f.force,
		BestEffort:      f.bestEffort || cfg.Solver.BestEffort,
		SkipInteractive: f.skipInteractive || cfg.Solver.SkipInteractive,
		FromRepos:       f.fromRepos,
	}
	if len(opts.FromRepos) == 0 {
		opts.FromRepos = cfg.Solver.FromRepos
	}
	opts.SetForceByCap(f.byCapability)
	opts.SetForceByName(f.byName)
	return opts
}

// runRequest issues one request run and, unless it is a dry run, saves it
// as a session
func runRequest(cmd *cobra.Command, cfg *config.Config, log *zerolog.Logger, command requester.Command, raw []string, f *requestFlags) error {
	ctx := commandContext(cmd)
	out := cmd.OutOrStdout()

	kind, err := parseKind(f.kind)
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

	opts := f.options(cfg)
	for _, alias := range opts.FromRepos {
		if !p.KnownRepo(alias) {
			ui.PrintError("unknown repository: %s", alias)
			return exitErr(core.ExitInvalidArgs, "unknown repository %s", alias)
		}
	}

	log.Info().
		Str("command", command.String()).
		Strs("args", raw).
		Str("force_by", opts.ForceBy.String()).
		Bool("force", opts.Force).
		Bool("best_effort", opts.BestEffort).
		Bool("dry_run", f.dryRun).
		Msg("starting request")

	queue := solver.NewQueue(logging.Component(log, "solver"))
	req := requester.New(p, queue, opts, logging.Component(log, "requester"))

	var fbs []requester.Feedback
	if command == requester.CommandPatch {
		fbs = req.UpdatePatches()
	} else {
		pa, err := args.Parse(raw, args.Options{
			DoByDefault: command != requester.CommandRemove,
			Kind:        kind,
			KnownRepo:   p.KnownRepo,
		})
		if err != nil {
			ui.PrintError("%v", err)
			return exitErr(core.ExitInvalidArgs, "parse arguments: %w", err)
		}

		switch command {
		case requester.CommandInstall:
			fbs = req.Install(pa)
		case requester.CommandRemove:
			fbs = req.Remove(pa)
		case requester.CommandUpdate:
			fbs = req.Update(pa)
		}
	}

	report.NewRenderer(p, out, f.verbose).Print(fbs)

	pending := report.Pending{
		ToInstall: req.ToInstall(),
		ToRemove:  req.ToRemove(),
		Requires:  req.Requires(),
		Conflicts: req.Conflicts(),
	}
	code := report.ExitCode(fbs)

	if pending.Empty() {
		fmt.Fprintln(out, ui.SprintInfo("Nothing to do."))
		return exitCode(code)
	}

	fmt.Fprintln(out)
	report.Summary(out, pending)

	if f.dryRun {
		fmt.Fprintln(out, ui.SprintInfo("Dry run, nothing was saved."))
		return exitCode(code)
	}

	if !f.yes {
		ok, err := confirm("Save these requests")
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(out, ui.SprintWarning("Cancelled, nothing was saved."))
			return exitCode(code)
		}
	}

	session := newSession(command, raw, fbs, pending)
	if err := database.SaveSession(ctx, session); err != nil {
		ui.PrintError("failed to save session: %v", err)
		return exitErr(core.ExitDatabase, "save session: %w", err)
	}

	log.Info().
		Str("session_id", session.SessionID).
		Int("actions", len(session.Actions)).
		Msg("session saved")

	fmt.Fprintln(out, ui.SprintSuccess("Saved session %s", session.SessionID))
	return exitCode(code)
}

// exitCode turns a non-zero code into a silent error
func exitCode(code int) error {
	if code == core.ExitSuccess {
		return nil
	}
	return &ExitError{Code: code}
}

func newSession(command requester.Command, raw []string, fbs []requester.Feedback, pending report.Pending) *db.Session {
	s := &db.Session{
		SessionID: uuid.NewString(),
		Command:   command.String(),
		Args:      raw,
		Feedback:  make([]string, 0, len(fbs)),
	}
	if s.Args == nil {
		s.Args = []string{}
	}
	for _, fb := range fbs {
		s.Feedback = append(s.Feedback, fb.ID.String())
	}

	for _, obj := range pending.ToInstall {
		s.Actions = append(s.Actions, db.Action{Action: db.ActionInstall, Subject: obj.String()})
	}
	for _, obj := range pending.ToRemove {
		s.Actions = append(s.Actions, db.Action{Action: db.ActionRemove, Subject: obj.String()})
	}
	for _, c := range pending.Requires {
		s.Actions = append(s.Actions, db.Action{Action: db.ActionRequire, Subject: c.String()})
	}
	for _, c := range pending.Conflicts {
		s.Actions = append(s.Actions, db.Action{Action: db.ActionConflict, Subject: c.String()})
	}
	return s
}

// newRequestCmd builds one of the request commands
func newRequestCmd(cfg *config.Config, log *zerolog.Logger, command requester.Command, use, short, long string) *cobra.Command {
	var flags requestFlags

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Long:  long,
		RunE: func(cmd *cobra.Command, raw []string) error {
			return runRequest(cmd, cfg, log, command, raw, &flags)
		},
	}
	flags.bind(cmd, command)

	if command == requester.CommandPatch {
		cmd.Args = cobra.NoArgs
	} else {
		cmd.Args = cobra.MinimumNArgs(1)
	}
	return cmd
}
