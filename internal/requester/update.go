package requester

import (
	"github.com/quantmind-br/pkgreq/internal/core"
)

// updateTo requests an update of the installed object to selected and
// reports every reason why selected may not be the best object available.
// cap and repoAlias only describe the user request.
func (r *Requester) updateTo(cap core.Capability, repoAlias string, selected *core.Object) {
	if selected == nil {
		r.log.Error().Str("cap", cap.String()).Msg("internal error: no object selected for update")
		return
	}

	g := r.pool.Group(selected)
	if g == nil {
		r.log.Error().Str("object", selected.String()).Msg("internal error: selected object has no group")
		return
	}

	installed := g.Installed()
	if installed == nil {
		r.log.Error().Str("object", selected.String()).Msg("internal error: nothing installed to update")
		return
	}
	highest := g.HighestAvailable()

	r.log.Debug().
		Str("selected", selected.String()).
		Str("best", g.UpdateCandidate().String()).
		Str("highest", highest.String()).
		Str("installed", installed.String()).
		Msg("update")

	same := core.Identical(installed, selected)

	if !same || r.opts.Force {
		switch {
		case r.opts.BestEffort:
			req := core.NewCapability(g.Name(), core.RelGT, installed.Edition, g.Kind())
			r.log.Info().Str("cap", req.String()).Msg("update: adding requirement")
			r.addRequirement(req)
		case selected.Edition.Compare(installed.Edition) > 0:
			r.log.Info().Str("object", selected.String()).Msg("update: setting to install")
			r.setToInstall(selected)
		case r.opts.Force:
			r.log.Info().Str("object", selected.String()).Msg("update: forced setting to install")
			r.setToInstall(selected)
		}
	}

	if same {
		if r.opts.Force {
			return
		}
		if r.command == CommandInstall {
			r.addFeedback(AlreadyInstalled, cap, repoAlias, selected, installed)
		}
		if g.AvailableEmpty() || highest == nil {
			r.addFeedback(NoUpdCandidate, cap, repoAlias, nil, installed)
			return
		}
		if core.Identical(installed, highest) || highest.Edition.Compare(installed.Edition) < 0 {
			r.addFeedback(NoUpdCandidate, cap, repoAlias, selected, installed)
		}
	} else if installed.Edition.Compare(selected.Edition) > 0 {
		r.addFeedback(SelectedIsOlder, cap, repoAlias, selected, installed)
		r.log.Info().Msg("selected is older than the installed object, not downgrading without force")
	}

	if highest == nil || core.Identical(selected, highest) || highest.Edition.Compare(installed.Edition) <= 0 {
		return
	}

	// a newer object exists: repo priorities, locks, vendor stickiness or
	// the user's own restrictions kept it from being chosen
	if userConstrained(cap, r.opts.FromRepos, repoAlias) {
		r.addFeedback(UpdCandidateUserRestricted, cap, repoAlias, selected, installed)
	}
	if g.IsProtected() || highest.Status.Locked {
		r.addFeedback(UpdCandidateIsLocked, cap, repoAlias, selected, installed)
	}
	if highest.Vendor != installed.Vendor {
		r.addFeedback(UpdCandidateChangesVendor, cap, repoAlias, selected, installed)
	}
	if r.pool.Priority(highest) > r.pool.Priority(selected) {
		r.addFeedback(UpdCandidateHasLowerPrio, cap, repoAlias, selected, installed)
	}
	r.log.Debug().Str("highest", highest.String()).Msg("newer object exists")
}
