// Package catalog reads TOML catalog files describing repositories and
// their objects, and loads them into the store and the pool.
package catalog

import (
	"fmt"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"

	"github.com/quantmind-br/pkgreq/internal/core"
	"github.com/quantmind-br/pkgreq/internal/security"
)

// RepoEntry is one [[repo]] table
type RepoEntry struct {
	Alias    string `toml:"alias"`
	Name     string `toml:"name"`
	Priority *int   `toml:"priority"`
	Enabled  *bool  `toml:"enabled"`
}

// PatchEntry is the optional [package.patch] table
type PatchEntry struct {
	State                 string `toml:"state"`
	AffectsPackageManager bool   `toml:"affects_package_manager"`
	Interactive           bool   `toml:"interactive"`
	License               string `toml:"license"`
}

// PackageEntry is one [[package]] table
type PackageEntry struct {
	Name      string      `toml:"name"`
	Kind      string      `toml:"kind"`
	Version   string      `toml:"version"`
	Arch      string      `toml:"arch"`
	Vendor    string      `toml:"vendor"`
	Repo      string      `toml:"repo"`
	Installed bool        `toml:"installed"`
	Locked    bool        `toml:"locked"`
	Provides  []string    `toml:"provides"`
	Patch     *PatchEntry `toml:"patch"`
}

// File is a parsed catalog file
type File struct {
	Path     string         `toml:"-"`
	Repo     []RepoEntry    `toml:"repo"`
	Package  []PackageEntry `toml:"package"`
	repos    []core.Repository
	objects  []*core.Object
	priority int
}

// Load reads and validates a catalog file. Repositories without a priority
// get defaultPriority.
func Load(fs afero.Fs, path string, defaultPriority int) (*File, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	f, err := Parse(data, defaultPriority)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	f.Path = path
	return f, nil
}

// Parse decodes and validates catalog data
func Parse(data []byte, defaultPriority int) (*File, error) {
	var f File
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if defaultPriority <= 0 {
		defaultPriority = core.DefaultPriority
	}
	f.priority = defaultPriority

	if err := f.validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

func (f *File) validate() error {
	known := make(map[string]struct{}, len(f.Repo))
	for i, r := range f.Repo {
		if r.Alias == "" {
			return fmt.Errorf("repo #%d: alias is required", i+1)
		}
		if err := security.ValidateRepoAlias(r.Alias); err != nil {
			return fmt.Errorf("repo #%d: %w", i+1, err)
		}
		if _, dup := known[r.Alias]; dup {
			return fmt.Errorf("repo %s: declared twice", r.Alias)
		}
		known[r.Alias] = struct{}{}

		repo := core.Repository{Alias: r.Alias, Name: security.SanitizeString(r.Name), Priority: f.priority, Enabled: true}
		if repo.Name == "" {
			repo.Name = r.Alias
		}
		if r.Priority != nil {
			repo.Priority = *r.Priority
		}
		if r.Enabled != nil {
			repo.Enabled = *r.Enabled
		}
		f.repos = append(f.repos, repo)
	}

	for i, p := range f.Package {
		obj, err := p.object(known)
		if err != nil {
			return fmt.Errorf("package #%d (%s): %w", i+1, p.Name, err)
		}
		f.objects = append(f.objects, obj)
	}
	return nil
}

func (p PackageEntry) object(known map[string]struct{}) (*core.Object, error) {
	if p.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if err := security.ValidateObjectName(p.Name); err != nil {
		return nil, err
	}
	if err := security.ValidateVersion(p.Version); err != nil {
		return nil, err
	}

	kind := core.KindPackage
	if p.Kind != "" {
		k, ok := core.ParseKind(p.Kind)
		if !ok {
			return nil, fmt.Errorf("unknown kind %q", p.Kind)
		}
		kind = k
	}

	repo := p.Repo
	switch {
	case p.Installed && repo != "" && repo != core.SystemRepo:
		return nil, fmt.Errorf("installed objects cannot name repo %s", repo)
	case p.Installed:
		repo = core.SystemRepo
	case repo == "":
		return nil, fmt.Errorf("repo is required")
	case repo != core.SystemRepo:
		if _, ok := known[repo]; !ok {
			return nil, fmt.Errorf("unknown repo %s", repo)
		}
	}

	obj := &core.Object{
		Kind:    kind,
		Name:    p.Name,
		Edition: core.ParseEdition(p.Version),
		Arch:    p.Arch,
		Vendor:  security.SanitizeString(p.Vendor),
		Repo:    repo,
		Status:  core.Status{Locked: p.Locked},
	}

	for _, text := range p.Provides {
		c, err := core.ParseCapability(text, core.KindPackage)
		if err != nil {
			return nil, fmt.Errorf("provides: %w", err)
		}
		obj.Provides = append(obj.Provides, c)
	}

	if kind == core.KindPatch {
		if p.Patch == nil {
			return nil, fmt.Errorf("patch table is required for patches")
		}
		state := core.PatchState(p.Patch.State)
		switch state {
		case core.PatchNeeded, core.PatchSatisfied, core.PatchIrrelevant:
		case "":
			state = core.PatchNeeded
		default:
			return nil, fmt.Errorf("unknown patch state %q", p.Patch.State)
		}
		obj.Patch = &core.PatchInfo{
			State:                 state,
			AffectsPackageManager: p.Patch.AffectsPackageManager,
			Interactive:           p.Patch.Interactive,
			License:               p.Patch.License,
		}
	} else if p.Patch != nil {
		return nil, fmt.Errorf("patch table on a %s", kind)
	}

	return obj, nil
}

// Repositories returns the repositories declared by the file
func (f *File) Repositories() []core.Repository {
	out := make([]core.Repository, len(f.repos))
	copy(out, f.repos)
	return out
}

// Objects returns the objects declared by the file
func (f *File) Objects() []*core.Object {
	out := make([]*core.Object, len(f.objects))
	copy(out, f.objects)
	return out
}
