package pool

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantmind-br/pkgreq/internal/core"
)

func obj(name, edition, repo, vendor string) *core.Object {
	return &core.Object{
		Kind:    core.KindPackage,
		Name:    name,
		Edition: core.ParseEdition(edition),
		Arch:    "x86_64",
		Vendor:  vendor,
		Repo:    repo,
	}
}

func testRepos() []core.Repository {
	return []core.Repository{
		{Alias: "oss", Name: "Main", Priority: 10, Enabled: true},
		{Alias: "extra", Name: "Extra", Priority: 20, Enabled: true},
		{Alias: "off", Name: "Disabled", Priority: 1, Enabled: false},
	}
}

func capOf(name string) core.Capability {
	return core.NewCapability(name, core.RelNone, core.Edition{}, "")
}

func names(objs []*core.Object) []string {
	out := make([]string, 0, len(objs))
	for _, o := range objs {
		out = append(out, o.Name+"-"+o.Edition.String()+"@"+o.Repo)
	}
	return out
}

func TestNew_SkipsDisabledAndUnknownRepos(t *testing.T) {
	p := New(testRepos(), []*core.Object{
		obj("vim", "1.0", core.SystemRepo, "X"),
		obj("vim", "2.0", "oss", "X"),
		obj("vim", "9.0", "off", "X"),
		obj("vim", "9.1", "nowhere", "X"),
	}, nil)

	assert.Len(t, p.Objects(), 2)
	assert.True(t, p.KnownRepo("oss"))
	assert.False(t, p.KnownRepo("nowhere"))
	assert.Equal(t, []string{"off", "oss", "extra"}, aliases(p.Repositories()))
}

func aliases(repos []core.Repository) []string {
	out := make([]string, 0, len(repos))
	for _, r := range repos {
		out = append(out, r.Alias)
	}
	return out
}

func TestQueryByName(t *testing.T) {
	p := New(testRepos(), []*core.Object{
		obj("vim", "1.0", core.SystemRepo, "X"),
		obj("vim", "2.0", "oss", "X"),
		obj("vim-data", "2.0", "extra", "X"),
		obj("emacs", "29", "oss", "X"),
	}, nil)

	tests := []struct {
		name      string
		cap       core.Capability
		fromRepos []string
		repoAlias string
		want      []string
	}{
		{"exact", capOf("vim"), nil, "", []string{"vim-1.0@@System", "vim-2.0@oss"}},
		{"glob", capOf("vim*"), nil, "", []string{"vim-1.0@@System", "vim-2.0@oss", "vim-data-2.0@extra"}},
		{"repo alias", capOf("vim*"), nil, "extra", []string{"vim-data-2.0@extra"}},
		{"from repos", capOf("vim*"), []string{"oss"}, "", []string{"vim-2.0@oss"}},
		{"versioned", core.NewCapability("vim", core.RelGT, core.ParseEdition("1.0"), ""), nil, "", []string{"vim-2.0@oss"}},
		{"wrong kind", core.NewCapability("vim", core.RelNone, core.Edition{}, core.KindPattern), nil, "", []string{}},
		{"no match", capOf("nano"), nil, "", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := p.QueryByName(tt.cap, tt.fromRepos, tt.repoAlias)
			assert.Equal(t, tt.want, names(got))
		})
	}
}

func TestQueryByName_Arch(t *testing.T) {
	i586 := obj("vim", "2.0", "oss", "X")
	i586.Arch = "i586"
	p := New(testRepos(), []*core.Object{obj("vim", "2.0", "oss", "X"), i586}, nil)

	got := p.QueryByName(core.Capability{Name: "vim", Kind: core.KindPackage, Arch: "i586"}, nil, "")
	require.Len(t, got, 1)
	assert.Same(t, i586, got[0])
}

func TestBestMatches(t *testing.T) {
	p := New(testRepos(), []*core.Object{
		obj("vim", "1.0", core.SystemRepo, "X"),
		obj("vim", "3.0", "extra", "Y"),
		obj("vim", "2.0", "oss", "X"),
		obj("vim", "1.5", "oss", "X"),
		obj("joe", "1.0", core.SystemRepo, "X"),
	}, nil)

	got := p.BestMatches(capOf("vim"), nil, "")
	assert.Equal(t, []string{"vim-2.0@oss"}, names(got))

	got = p.BestMatches(capOf("joe"), nil, "")
	assert.Equal(t, []string{"joe-1.0@@System"}, names(got))

	got = p.BestMatches(capOf("*"), nil, "")
	assert.Equal(t, []string{"joe-1.0@@System", "vim-2.0@oss"}, names(got))
}

func TestBestMatches_NoarchLast(t *testing.T) {
	noarch := obj("tool", "1.0", "oss", "X")
	noarch.Arch = "noarch"
	native := obj("tool", "1.0", "oss", "X")
	p := New(testRepos(), []*core.Object{noarch, native}, nil)

	got := p.BestMatches(capOf("tool"), nil, "")
	require.Len(t, got, 1)
	assert.Same(t, native, got[0])
}

func TestWhatProvides(t *testing.T) {
	baz := obj("baz", "1.0", core.SystemRepo, "X")
	baz.Provides = []core.Capability{{Name: "bar"}}
	qux := obj("qux", "2.0", "oss", "X")
	qux.Provides = []core.Capability{{Name: "bar", Rel: core.RelEQ, Edition: core.ParseEdition("2.0")}}
	p := New(testRepos(), []*core.Object{baz, qux}, nil)

	assert.Equal(t, []string{"baz-1.0@@System", "qux-2.0@oss"}, names(p.WhatProvides(capOf("bar"))))
	assert.Equal(t, []string{"baz-1.0@@System"}, names(p.InstalledProviders(capOf("bar"))))

	versioned := core.NewCapability("bar", core.RelGE, core.ParseEdition("2.0"), "")
	assert.Equal(t, []string{"baz-1.0@@System", "qux-2.0@oss"}, names(p.WhatProvides(versioned)))

	versioned = core.NewCapability("qux", core.RelGE, core.ParseEdition("3.0"), "")
	assert.Empty(t, p.WhatProvides(versioned))
}

func TestGroup(t *testing.T) {
	installed := obj("vim", "1.0", core.SystemRepo, "X")
	fromOss := obj("vim", "2.0", "oss", "X")
	fromExtra := obj("vim", "3.0", "extra", "Y")
	p := New(testRepos(), []*core.Object{installed, fromExtra, fromOss}, nil)

	g := p.Group(fromOss)
	require.NotNil(t, g)
	assert.Equal(t, "vim", g.Name())
	assert.Equal(t, core.KindPackage, g.Kind())
	assert.Same(t, installed, g.Installed())
	assert.Same(t, fromOss, g.Candidate())
	assert.Same(t, fromOss, g.UpdateCandidate())
	assert.Same(t, fromExtra, g.HighestAvailable())
	assert.False(t, g.IsProtected())
	assert.False(t, g.AvailableEmpty())

	assert.Equal(t, 10, p.Priority(fromOss))
	assert.Equal(t, 20, p.Priority(fromExtra))
	assert.Equal(t, core.DefaultPriority, p.Priority(installed))
}

func TestGroup_NothingInstalled(t *testing.T) {
	fromOss := obj("vim", "2.0", "oss", "X")
	fromExtra := obj("vim", "3.0", "extra", "Y")
	p := New(testRepos(), []*core.Object{fromExtra, fromOss}, nil)

	g := p.Group(fromExtra)
	assert.Nil(t, g.Installed())
	assert.Same(t, fromOss, g.Candidate())
	assert.Same(t, fromOss, g.UpdateCandidate())
}

func TestGroup_NoUpdate(t *testing.T) {
	installed := obj("vim", "2.0", core.SystemRepo, "X")
	installed.Status.Locked = true
	p := New(testRepos(), []*core.Object{installed}, nil)

	g := p.Group(installed)
	assert.Nil(t, g.Candidate())
	assert.Nil(t, g.UpdateCandidate())
	assert.Nil(t, g.HighestAvailable())
	assert.True(t, g.AvailableEmpty())
	assert.True(t, g.IsProtected())
}

func TestGroup_Unknown(t *testing.T) {
	p := New(testRepos(), nil, nil)
	assert.Nil(t, p.Group(obj("vim", "1.0", "oss", "X")))
	assert.Nil(t, p.Group(nil))
}

func TestGroups(t *testing.T) {
	p1 := &core.Object{Kind: core.KindPatch, Name: "p2", Repo: "oss", Patch: &core.PatchInfo{State: core.PatchNeeded}}
	p2 := &core.Object{Kind: core.KindPatch, Name: "p1", Repo: "oss", Patch: &core.PatchInfo{State: core.PatchNeeded}}
	p := New(testRepos(), []*core.Object{p1, p2, obj("vim", "1.0", "oss", "X")}, nil)

	groups := p.Groups(core.KindPatch)
	require.Len(t, groups, 2)
	assert.Equal(t, "p1", groups[0].Name())
	assert.Equal(t, "p2", groups[1].Name())
	assert.Equal(t, []string{"vim"}, p.Names(core.KindPackage))
}

func TestMark(t *testing.T) {
	installed := obj("vim", "1.0", core.SystemRepo, "X")
	v2 := obj("vim", "2.0", "oss", "X")
	v3 := obj("vim", "3.0", "extra", "X")
	p := New(testRepos(), []*core.Object{installed, v2, v3}, nil)

	p.MarkToInstall(v2, core.ActorUser)
	assert.True(t, v2.Status.ToBeInstalled())
	assert.Equal(t, core.ActorUser, v2.Status.Actor)

	p.MarkToInstall(v3, core.ActorUser)
	assert.False(t, v2.Status.ToBeInstalled())
	assert.True(t, v3.Status.ToBeInstalled())

	p.MarkToRemove(installed, core.ActorUser)
	assert.True(t, installed.Status.ToBeRemoved())
	assert.Equal(t, core.ActorUser, installed.Status.Actor)
	assert.False(t, v2.Status.ToBeRemoved())
}
