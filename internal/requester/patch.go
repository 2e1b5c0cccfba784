package requester

import (
	"github.com/quantmind-br/pkgreq/internal/core"
)

// UpdatePatches marks needed patches for installation. Patches affecting
// the package manager are selected alone on a first pass; if any is found
// the sweep stops and the caller is expected to run it again once they are
// applied.
func (r *Requester) UpdatePatches() []Feedback {
	start := len(r.feedback)
	r.command = CommandPatch

	marked := false
	for _, ignorePkgmgmt := range []bool{false, true} {
		for _, g := range r.pool.Groups(core.KindPatch) {
			cap := core.NewCapability(g.Name(), core.RelNone, core.Edition{}, core.KindPatch)
			if r.installPatch(cap, "", g.Candidate(), ignorePkgmgmt) {
				marked = true
			}
		}
		if marked {
			if !ignorePkgmgmt {
				r.log.Info().Msg("got some package manager patches, will install these first")
			}
			break
		}
	}
	return r.since(start)
}

// installPatch selects a needed patch for installation and reports whether
// it did. Unless ignorePkgmgmt is set only patches affecting the package
// manager are selected.
func (r *Requester) installPatch(cap core.Capability, repoAlias string, selected *core.Object, ignorePkgmgmt bool) bool {
	if selected == nil || selected.Patch == nil {
		return false
	}
	info := selected.Patch
	reporting := r.command == CommandInstall || r.command == CommandUpdate

	switch info.State {
	case core.PatchNeeded:
		r.log.Debug().
			Str("patch", selected.String()).
			Bool("affects_pkgmgmt", info.AffectsPackageManager).
			Bool("ignored", ignorePkgmgmt).
			Msg("needed candidate patch")

		if !ignorePkgmgmt && !info.AffectsPackageManager {
			return false
		}
		if r.opts.SkipInteractive && info.NeedsConfirmation() {
			r.addFeedback(PatchInteractiveSkipped, cap, "", selected, nil)
			return false
		}
		r.setToInstall(selected)
		r.log.Info().Str("patch", selected.String()).Msg("installing")
		return true

	case core.PatchSatisfied:
		if reporting {
			r.addFeedback(AlreadyInstalled, cap, "", selected, selected)
		}

	default:
		if reporting {
			r.addFeedback(PatchNotNeeded, cap, "", selected, nil)
		}
	}
	return false
}
