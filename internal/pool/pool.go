// Package pool holds the in-memory package catalog: installed and
// available objects grouped by identity, name/glob and capability queries,
// and the status changes requested against them.
package pool

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gobwas/glob"
	"github.com/rs/zerolog"

	"github.com/quantmind-br/pkgreq/internal/core"
)

// Pool implements core.Pool over a fixed set of repositories and objects
type Pool struct {
	repos   map[string]core.Repository
	order   []core.Repository
	objects []*core.Object
	groups  map[core.Ident]*Group
	idents  []core.Ident
	log     *zerolog.Logger
}

var _ core.Pool = (*Pool)(nil)

// New builds a pool. Objects from unknown or disabled repositories are
// dropped; installed objects are always kept.
func New(repos []core.Repository, objects []*core.Object, log *zerolog.Logger) *Pool {
	if log == nil {
		nop := zerolog.Nop()
		log = &nop
	}

	p := &Pool{
		repos:  make(map[string]core.Repository, len(repos)),
		groups: make(map[core.Ident]*Group),
		log:    log,
	}

	for _, r := range repos {
		if r.Alias == core.SystemRepo {
			continue
		}
		p.repos[r.Alias] = r
		p.order = append(p.order, r)
	}
	sort.SliceStable(p.order, func(i, j int) bool {
		if p.order[i].Priority != p.order[j].Priority {
			return p.order[i].Priority < p.order[j].Priority
		}
		return p.order[i].Alias < p.order[j].Alias
	})

	for _, obj := range objects {
		if obj == nil {
			continue
		}
		if obj.Kind == "" {
			obj.Kind = core.KindPackage
		}
		if !obj.Installed() {
			r, ok := p.repos[obj.Repo]
			if !ok || !r.Enabled {
				p.log.Debug().Str("object", obj.String()).Msg("skipping object from unknown or disabled repository")
				continue
			}
		}
		p.objects = append(p.objects, obj)

		id := obj.Ident()
		g, ok := p.groups[id]
		if !ok {
			g = &Group{pool: p, ident: id}
			p.groups[id] = g
			p.idents = append(p.idents, id)
		}
		g.add(obj)
	}

	sort.Slice(p.idents, func(i, j int) bool {
		if p.idents[i].Kind != p.idents[j].Kind {
			return p.idents[i].Kind < p.idents[j].Kind
		}
		return p.idents[i].Name < p.idents[j].Name
	})
	for _, g := range p.groups {
		g.sort()
	}

	return p
}

// Repositories returns the known repositories ordered by priority
func (p *Pool) Repositories() []core.Repository {
	out := make([]core.Repository, len(p.order))
	copy(out, p.order)
	return out
}

// KnownRepo reports whether alias names a repository of the pool
func (p *Pool) KnownRepo(alias string) bool {
	_, ok := p.repos[alias]
	return ok
}

// Objects returns every object of the pool
func (p *Pool) Objects() []*core.Object {
	out := make([]*core.Object, len(p.objects))
	copy(out, p.objects)
	return out
}

// Names returns the sorted names of every identity of the given kind
func (p *Pool) Names(kind core.Kind) []string {
	var names []string
	for _, id := range p.idents {
		if id.Kind == kind {
			names = append(names, id.Name)
		}
	}
	return names
}

// Priority returns the priority of the repository obj comes from
func (p *Pool) Priority(obj *core.Object) int {
	if obj == nil {
		return core.DefaultPriority
	}
	if r, ok := p.repos[obj.Repo]; ok {
		return r.Priority
	}
	return core.DefaultPriority
}

// Group returns the identity group of obj
func (p *Pool) Group(obj *core.Object) core.Group {
	if obj == nil {
		return nil
	}
	if g, ok := p.groups[obj.Ident()]; ok {
		return g
	}
	return nil
}

// Groups returns every group of the given kind, sorted by name
func (p *Pool) Groups(kind core.Kind) []core.Group {
	var out []core.Group
	for _, id := range p.idents {
		if id.Kind == kind {
			out = append(out, p.groups[id])
		}
	}
	return out
}

// QueryByName returns the objects whose name matches cap (globs allowed),
// honoring kind, arch and version constraints. With a repository
// restriction only available objects from those repositories match.
func (p *Pool) QueryByName(cap core.Capability, fromRepos []string, repoAlias string) []*core.Object {
	match, err := nameMatcher(cap.Name)
	if err != nil {
		p.log.Warn().Err(err).Str("pattern", cap.Name).Msg("invalid name pattern")
		return nil
	}
	allowed := repoFilter(fromRepos, repoAlias)
	kind := cap.Kind
	if kind == "" {
		kind = core.KindPackage
	}

	var out []*core.Object
	for _, id := range p.idents {
		if id.Kind != kind || !match(id.Name) {
			continue
		}
		for _, obj := range p.groups[id].all() {
			if allowed != nil {
				if _, ok := allowed[obj.Repo]; !ok || obj.Installed() {
					continue
				}
			}
			if cap.HasArch() && !strings.EqualFold(cap.Arch, obj.Arch) {
				continue
			}
			if cap.IsVersioned() && !obj.Edition.Satisfies(cap.Rel, cap.Edition) {
				continue
			}
			out = append(out, obj)
		}
	}
	return out
}

// BestMatches returns one object per identity matched by QueryByName: the
// best ranked available match, or the installed object when no available
// object matched.
func (p *Pool) BestMatches(cap core.Capability, fromRepos []string, repoAlias string) []*core.Object {
	var (
		out   []*core.Object
		index = make(map[core.Ident]int)
	)
	for _, obj := range p.QueryByName(cap, fromRepos, repoAlias) {
		id := obj.Ident()
		i, seen := index[id]
		if !seen {
			index[id] = len(out)
			out = append(out, obj)
			continue
		}
		if p.better(obj, out[i]) {
			out[i] = obj
		}
	}
	return out
}

// better reports whether a should be preferred over b as a match
func (p *Pool) better(a, b *core.Object) bool {
	if a.Installed() != b.Installed() {
		return !a.Installed()
	}
	return p.rankLess(a, b)
}

// rankLess orders objects by repository priority, then newest edition,
// then machine arch before noarch, then repository alias
func (p *Pool) rankLess(a, b *core.Object) bool {
	if pa, pb := p.Priority(a), p.Priority(b); pa != pb {
		return pa < pb
	}
	if c := a.Edition.Compare(b.Edition); c != 0 {
		return c > 0
	}
	if na, nb := core.IsNoarch(a.Arch), core.IsNoarch(b.Arch); na != nb {
		return nb
	}
	return a.Repo < b.Repo
}

// WhatProvides returns every object providing cap, installed ones included
func (p *Pool) WhatProvides(cap core.Capability) []*core.Object {
	var out []*core.Object
	for _, obj := range p.objects {
		if provides(obj, cap) {
			out = append(out, obj)
		}
	}
	return out
}

// InstalledProviders returns the installed objects providing cap
func (p *Pool) InstalledProviders(cap core.Capability) []*core.Object {
	var out []*core.Object
	for _, obj := range p.WhatProvides(cap) {
		if obj.Installed() {
			out = append(out, obj)
		}
	}
	return out
}

func provides(obj *core.Object, cap core.Capability) bool {
	if cap.HasArch() && !strings.EqualFold(cap.Arch, obj.Arch) {
		return false
	}
	kind := cap.Kind
	if kind == "" {
		kind = core.KindPackage
	}
	for i, pc := range obj.Capabilities() {
		// the implicit self-provide carries the object kind
		if i == 0 && obj.Kind != kind {
			continue
		}
		if i > 0 && pc.Kind != "" && pc.Kind != kind {
			continue
		}
		if cap.MatchedBy(pc) {
			return true
		}
	}
	return false
}

// MarkToInstall marks obj for installation. Other objects of the same
// identity marked for installation are unmarked.
func (p *Pool) MarkToInstall(obj *core.Object, actor core.Actor) {
	if g, ok := p.groups[obj.Ident()]; ok {
		for _, other := range g.all() {
			if other != obj && other.Status.ToBeInstalled() {
				p.setStatus(other, core.TransactNone, actor)
			}
		}
	}
	p.setStatus(obj, core.TransactInstall, actor)
}

// MarkToRemove marks obj for removal
func (p *Pool) MarkToRemove(obj *core.Object, actor core.Actor) {
	p.setStatus(obj, core.TransactRemove, actor)
}

func (p *Pool) setStatus(obj *core.Object, t core.Transact, actor core.Actor) {
	obj.Status.Transact = t
	obj.Status.Actor = actor
	p.log.Debug().Str("object", obj.String()).Str("status", transactName(t)).Str("actor", string(actor)).Msg("status changed")
}

func transactName(t core.Transact) string {
	switch t {
	case core.TransactInstall:
		return "install"
	case core.TransactRemove:
		return "remove"
	default:
		return "keep"
	}
}

func repoFilter(fromRepos []string, repoAlias string) map[string]struct{} {
	if len(fromRepos) == 0 && repoAlias == "" {
		return nil
	}
	allowed := make(map[string]struct{}, len(fromRepos)+1)
	for _, r := range fromRepos {
		allowed[r] = struct{}{}
	}
	if repoAlias != "" {
		allowed[repoAlias] = struct{}{}
	}
	return allowed
}

func nameMatcher(pattern string) (func(string) bool, error) {
	if !strings.ContainsAny(pattern, "*?[{") {
		return func(name string) bool { return name == pattern }, nil
	}
	g, err := glob.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("compile pattern %q: %w", pattern, err)
	}
	return g.Match, nil
}
