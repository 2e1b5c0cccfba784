package core

import "fmt"

// Kind represents the kind of a catalog object
type Kind string

const (
	KindPackage    Kind = "package"
	KindPatch      Kind = "patch"
	KindPattern    Kind = "pattern"
	KindProduct    Kind = "product"
	KindSrcPackage Kind = "srcpackage"
)

var knownKinds = map[string]Kind{
	"package":    KindPackage,
	"patch":      KindPatch,
	"pattern":    KindPattern,
	"product":    KindProduct,
	"srcpackage": KindSrcPackage,
}

// ParseKind converts a kind name (as used in "kind:name" arguments) to a Kind
func ParseKind(s string) (Kind, bool) {
	k, ok := knownKinds[s]
	return k, ok
}

// SystemRepo is the pseudo repository alias holding installed objects
const SystemRepo = "@System"

// DefaultPriority is the priority of repositories that do not set one
const DefaultPriority = 99

// Repository describes a package source
type Repository struct {
	Alias    string `json:"alias"`
	Name     string `json:"name"`
	Priority int    `json:"priority"` // lower number = higher precedence
	Enabled  bool   `json:"enabled"`
}

// Ident identifies every object sharing one name and kind
type Ident struct {
	Kind Kind
	Name string
}

func (i Ident) String() string {
	if i.Kind == KindPackage || i.Kind == "" {
		return i.Name
	}
	return string(i.Kind) + ":" + i.Name
}

// Transact is the pending transaction state of an object
type Transact int

const (
	TransactNone Transact = iota
	TransactInstall
	TransactRemove
)

// Actor records who caused a status change
type Actor string

const (
	ActorUser   Actor = "user"
	ActorSolver Actor = "solver"
)

// Status is the mutable part of an object
type Status struct {
	Transact Transact
	Actor    Actor
	Locked   bool
}

// ToBeInstalled reports whether the object is marked for installation
func (s Status) ToBeInstalled() bool { return s.Transact == TransactInstall }

// ToBeRemoved reports whether the object is marked for removal
func (s Status) ToBeRemoved() bool { return s.Transact == TransactRemove }

// PatchState is the applicability of a patch to this system
type PatchState string

const (
	PatchNeeded     PatchState = "needed"
	PatchSatisfied  PatchState = "satisfied"
	PatchIrrelevant PatchState = "irrelevant"
)

// PatchInfo carries patch specific attributes
type PatchInfo struct {
	State                 PatchState `json:"state"`
	AffectsPackageManager bool       `json:"affects_package_manager,omitempty"`
	Interactive           bool       `json:"interactive,omitempty"`
	License               string     `json:"license,omitempty"`
}

// NeedsConfirmation reports whether installing the patch requires user interaction
func (p *PatchInfo) NeedsConfirmation() bool {
	return p.Interactive || p.License != ""
}

// Object is one concrete (name, edition, arch, repo, vendor) entry of the catalog
type Object struct {
	ID       int64
	Kind     Kind
	Name     string
	Edition  Edition
	Arch     string
	Vendor   string
	Repo     string
	Provides []Capability
	Patch    *PatchInfo
	Status   Status
}

// Installed reports whether the object lives in the system repository
func (o *Object) Installed() bool {
	return o.Repo == SystemRepo
}

// Ident returns the name+kind identity of the object
func (o *Object) Ident() Ident {
	return Ident{Kind: o.Kind, Name: o.Name}
}

// Capabilities returns the explicit provides plus the implicit "name = edition"
func (o *Object) Capabilities() []Capability {
	caps := make([]Capability, 0, len(o.Provides)+1)
	caps = append(caps, Capability{Name: o.Name, Kind: o.Kind, Rel: RelEQ, Edition: o.Edition})
	caps = append(caps, o.Provides...)
	return caps
}

func (o *Object) String() string {
	if o == nil {
		return "<none>"
	}
	s := o.Ident().String()
	if !o.Edition.IsZero() {
		s += "-" + o.Edition.String()
	}
	if o.Arch != "" {
		s += "." + o.Arch
	}
	return fmt.Sprintf("%s (%s)", s, o.Repo)
}

// Identical reports whether two objects describe the same package build,
// regardless of the repository they come from
func Identical(a, b *Object) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Kind == b.Kind &&
		a.Name == b.Name &&
		a.Edition.Compare(b.Edition) == 0 &&
		a.Arch == b.Arch &&
		a.Vendor == b.Vendor
}

// Exit codes
const (
	ExitSuccess     = 0
	ExitGeneral     = 1
	ExitInvalidArgs = 2
	ExitDatabase    = 5
	ExitNotFound    = 104
	ExitInterrupted = 130
)
