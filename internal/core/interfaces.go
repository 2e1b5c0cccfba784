package core

// Group aggregates every known object (installed and available, across
// repositories) sharing one name+kind identity
type Group interface {
	Kind() Kind
	Name() string

	// Installed returns the canonical installed object or nil
	Installed() *Object

	// Candidate returns the best available object honoring repository
	// priority and vendor stickiness, or nil
	Candidate() *Object

	// UpdateCandidate returns Candidate if nothing is installed or if it is
	// newer than the installed object, nil otherwise
	UpdateCandidate() *Object

	// HighestAvailable returns the highest edition visible in any repository
	HighestAvailable() *Object

	// IsProtected reports whether the installed object is locked
	IsProtected() bool

	// AvailableEmpty reports whether no repository offers this identity
	AvailableEmpty() bool
}

// Pool is the catalog query and mutation surface consumed by the requester
type Pool interface {
	// QueryByName returns every object matching cap by name or glob,
	// restricted to fromRepos and repoAlias when given
	QueryByName(cap Capability, fromRepos []string, repoAlias string) []*Object

	// BestMatches returns the best matching object per identity
	BestMatches(cap Capability, fromRepos []string, repoAlias string) []*Object

	// WhatProvides returns the objects providing cap
	WhatProvides(cap Capability) []*Object

	// InstalledProviders returns the installed objects providing cap
	InstalledProviders(cap Capability) []*Object

	// Group returns the identity group of obj, nil if obj is unknown
	Group(obj *Object) Group

	// Groups returns every identity group of the given kind
	Groups(kind Kind) []Group

	// Priority returns the priority of the repository obj comes from
	Priority(obj *Object) int

	MarkToInstall(obj *Object, actor Actor)
	MarkToRemove(obj *Object, actor Actor)
}

// Resolver accepts abstract jobs for the dependency solver
type Resolver interface {
	AddRequire(cap Capability)
	AddConflict(cap Capability)
}
