package requester

import (
	"github.com/quantmind-br/pkgreq/internal/args"
	"github.com/quantmind-br/pkgreq/internal/core"
)

// install tries the package spec by name first and falls back to a solver
// requirement on the capability unless the options or the package spec forbid it.
func (r *Requester) install(spec args.PackageSpec) {
	cap := spec.Cap

	if !r.opts.ForceByCap() {
		matches := r.pool.BestMatches(cap, r.opts.FromRepos, spec.RepoAlias)
		if len(matches) > 0 {
			for _, match := range matches {
				r.installMatch(spec, match)
			}
			return
		}

		if r.opts.ForceByName() || spec.Modified {
			r.addFeedback(NotFoundName, cap, spec.RepoAlias, nil, nil)
			r.log.Warn().Str("spec", spec.String()).Msg("not found")
			return
		}

		r.addFeedback(NotFoundNameTryingCaps, cap, spec.RepoAlias, nil, nil)
	}

	if len(r.pool.WhatProvides(cap)) == 0 {
		r.addFeedback(NotFoundCap, cap, spec.RepoAlias, nil, nil)
		r.log.Warn().Str("spec", spec.String()).Msg("no provider found")
		return
	}

	providers := r.pool.InstalledProviders(cap)
	for _, p := range providers {
		if r.command == CommandInstall {
			r.addFeedback(AlreadyInstalled, cap, spec.RepoAlias, p, p)
		}
		r.log.Debug().Str("provider", p.String()).Str("cap", cap.String()).Msg("provider installed")
	}

	if len(providers) == 0 {
		r.log.Debug().Str("cap", cap.String()).Msg("adding requirement")
		r.addRequirement(cap)
	}
}

func (r *Requester) installMatch(spec args.PackageSpec, match *core.Object) {
	if match.Kind == core.KindPatch {
		r.installPatch(spec.Cap, spec.RepoAlias, match, true)
		return
	}

	g := r.pool.Group(match)
	var installed *core.Object
	if g != nil {
		installed = g.Installed()
	}

	switch {
	case installed != nil:
		r.updateTo(spec.Cap, spec.RepoAlias, r.pickUpdate(spec, g, match, installed))
	case r.command == CommandInstall:
		r.setToInstall(match)
		r.log.Info().Str("object", match.String()).Msg("installing")
	default:
		r.addFeedback(NotInstalled, spec.Cap, spec.RepoAlias, nil, nil)
	}
}

// pickUpdate chooses the object handed to updateTo. Explicit user
// constraints win; otherwise the vendor-sticky update candidate is used,
// and a match that would change vendor falls back to the installed object.
func (r *Requester) pickUpdate(spec args.PackageSpec, g core.Group, match, installed *core.Object) *core.Object {
	if userConstrained(spec.Cap, r.opts.FromRepos, spec.RepoAlias) {
		return match
	}
	if best := g.UpdateCandidate(); best != nil {
		return best
	}
	if installed.Vendor != match.Vendor {
		return installed
	}
	return match
}

func userConstrained(cap core.Capability, fromRepos []string, repoAlias string) bool {
	return cap.IsVersioned() || cap.HasArch() || len(fromRepos) > 0 || repoAlias != ""
}
