package pool

import (
	"sort"

	"github.com/quantmind-br/pkgreq/internal/core"
)

// Group is every object of one name+kind identity
type Group struct {
	pool      *Pool
	ident     core.Ident
	installed []*core.Object
	available []*core.Object
}

var _ core.Group = (*Group)(nil)

func (g *Group) add(obj *core.Object) {
	if obj.Installed() {
		g.installed = append(g.installed, obj)
	} else {
		g.available = append(g.available, obj)
	}
}

// sort orders installed objects newest first and available objects by rank
func (g *Group) sort() {
	sort.SliceStable(g.installed, func(i, j int) bool {
		return g.installed[i].Edition.Compare(g.installed[j].Edition) > 0
	})
	sort.SliceStable(g.available, func(i, j int) bool {
		return g.pool.rankLess(g.available[i], g.available[j])
	})
}

func (g *Group) all() []*core.Object {
	out := make([]*core.Object, 0, len(g.installed)+len(g.available))
	out = append(out, g.installed...)
	return append(out, g.available...)
}

func (g *Group) Kind() core.Kind { return g.ident.Kind }

func (g *Group) Name() string { return g.ident.Name }

// Installed returns the newest installed object
func (g *Group) Installed() *core.Object {
	if len(g.installed) == 0 {
		return nil
	}
	return g.installed[0]
}

// Candidate returns the best ranked available object. When something is
// installed only objects of the installed vendor qualify.
func (g *Group) Candidate() *core.Object {
	installed := g.Installed()
	for _, obj := range g.available {
		if installed == nil || obj.Vendor == installed.Vendor {
			return obj
		}
	}
	return nil
}

func (g *Group) UpdateCandidate() *core.Object {
	c := g.Candidate()
	if c == nil {
		return nil
	}
	installed := g.Installed()
	if installed == nil || c.Edition.Compare(installed.Edition) > 0 {
		return c
	}
	return nil
}

// HighestAvailable returns the newest available object; ties go to the
// better ranked one
func (g *Group) HighestAvailable() *core.Object {
	var best *core.Object
	for _, obj := range g.available {
		if best == nil || obj.Edition.Compare(best.Edition) > 0 {
			best = obj
		}
	}
	return best
}

// IsProtected reports whether an installed object is locked
func (g *Group) IsProtected() bool {
	for _, obj := range g.installed {
		if obj.Status.Locked {
			return true
		}
	}
	return false
}

func (g *Group) AvailableEmpty() bool { return len(g.available) == 0 }
