package requester

import (
	"github.com/quantmind-br/pkgreq/internal/args"
)

// remove marks installed objects matching the package spec by name for removal, or
// registers a solver conflict on the capability. Removal is never
// restricted to a repository.
func (r *Requester) remove(spec args.PackageSpec) {
	cap := spec.Cap

	if !r.opts.ForceByCap() {
		matches := r.pool.QueryByName(cap, nil, "")
		if len(matches) > 0 {
			removed := false
			for _, obj := range matches {
				if obj.Installed() {
					r.log.Debug().Str("object", obj.String()).Msg("marking for deletion")
					r.setToRemove(obj)
					removed = true
				}
			}
			if removed {
				return
			}

			r.addFeedback(NotInstalled, cap, "", nil, nil)
			r.log.Info().Str("cap", cap.String()).Msg("not installed")
			if r.opts.ForceByName() {
				return
			}
		} else if r.opts.ForceByName() || spec.Modified {
			r.addFeedback(NotFoundName, cap, "", nil, nil)
			r.log.Warn().Str("spec", spec.String()).Msg("not found")
			return
		}
	}

	r.addFeedback(NotFoundNameTryingCaps, cap, "", nil, nil)

	if len(r.pool.WhatProvides(cap)) == 0 {
		r.addFeedback(NotFoundCap, cap, "", nil, nil)
		r.log.Warn().Str("spec", spec.String()).Msg("no provider found")
		return
	}

	if len(r.pool.InstalledProviders(cap)) == 0 {
		r.addFeedback(NoInstalledProvider, cap, "", nil, nil)
		r.log.Info().Str("cap", cap.String()).Msg("no provider installed")
		return
	}

	r.log.Debug().Str("cap", cap.String()).Msg("adding conflict")
	r.addConflict(cap)
}
