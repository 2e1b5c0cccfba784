// Package requester turns parsed package arguments into concrete pool
// mutations or abstract solver jobs, and records why each choice was made.
package requester

import (
	"github.com/rs/zerolog"

	"github.com/quantmind-br/pkgreq/internal/args"
	"github.com/quantmind-br/pkgreq/internal/core"
)

// Command is the command mode the requester currently runs in
type Command int

const (
	CommandNone Command = iota
	CommandInstall
	CommandRemove
	CommandUpdate
	CommandPatch
)

func (c Command) String() string {
	switch c {
	case CommandInstall:
		return "install"
	case CommandRemove:
		return "remove"
	case CommandUpdate:
		return "update"
	case CommandPatch:
		return "patch"
	default:
		return "none"
	}
}

// Requester issues install/remove/update requests against a pool and a
// resolver. It is not safe for concurrent use.
type Requester struct {
	pool     core.Pool
	resolver core.Resolver
	opts     Options
	log      *zerolog.Logger

	command  Command
	feedback []Feedback

	toInstall objectSet
	toRemove  objectSet
	requires  capSet
	conflicts capSet
}

// New creates a requester. A nil logger disables logging.
func New(pool core.Pool, resolver core.Resolver, opts Options, log *zerolog.Logger) *Requester {
	if log == nil {
		nop := zerolog.Nop()
		log = &nop
	}
	return &Requester{
		pool:     pool,
		resolver: resolver,
		opts:     opts,
		log:      log,
	}
}

// Options returns the options of the requester
func (r *Requester) Options() Options { return r.opts }

// Command returns the mode of the last call
func (r *Requester) Command() Command { return r.command }

// Install requests installation of the "do" specs and removal of the
// "don't" specs. All dos are processed before any don't.
func (r *Requester) Install(pa args.PackageArgs) []Feedback {
	start := len(r.feedback)
	r.command = CommandInstall
	r.installRemove(pa)
	return r.since(start)
}

// Remove requests removal of the "don't" specs and installation of the
// "do" specs. The arguments must be parsed with DoByDefault unset.
func (r *Requester) Remove(pa args.PackageArgs) []Feedback {
	start := len(r.feedback)
	r.command = CommandRemove
	if pa.Options().DoByDefault {
		r.log.Error().Msg("internal error: remove called with arguments parsed with DoByDefault set")
		return r.since(start)
	}
	r.installRemove(pa)
	return r.since(start)
}

// Update requests updates of the installed objects matching the "do" specs.
// Nothing new is installed and don'ts are ignored.
func (r *Requester) Update(pa args.PackageArgs) []Feedback {
	start := len(r.feedback)
	if pa.Empty() {
		return nil
	}
	r.command = CommandUpdate
	for _, spec := range pa.Dos() {
		r.install(spec)
	}
	if len(pa.Donts()) > 0 {
		r.log.Debug().Int("count", len(pa.Donts())).Msg("update ignores negative arguments")
	}
	return r.since(start)
}

func (r *Requester) installRemove(pa args.PackageArgs) {
	if pa.Empty() {
		return
	}
	for _, spec := range pa.Dos() {
		r.install(spec)
	}
	for _, spec := range pa.Donts() {
		r.remove(spec)
	}
}

// HasFeedback reports whether any feedback of the given kind was recorded
func (r *Requester) HasFeedback(id FeedbackID) bool {
	return Contains(r.feedback, id)
}

// Feedback returns every feedback recorded so far, oldest first
func (r *Requester) Feedback() []Feedback {
	out := make([]Feedback, len(r.feedback))
	copy(out, r.feedback)
	return out
}

// ToInstall returns the objects marked for installation
func (r *Requester) ToInstall() []*core.Object { return r.toInstall.list() }

// ToRemove returns the objects marked for removal
func (r *Requester) ToRemove() []*core.Object { return r.toRemove.list() }

// Requires returns the capabilities registered as solver requirements
func (r *Requester) Requires() []core.Capability { return r.requires.list() }

// Conflicts returns the capabilities registered as solver conflicts
func (r *Requester) Conflicts() []core.Capability { return r.conflicts.list() }

func (r *Requester) since(start int) []Feedback {
	if start >= len(r.feedback) {
		return nil
	}
	out := make([]Feedback, len(r.feedback)-start)
	copy(out, r.feedback[start:])
	return out
}

func (r *Requester) addFeedback(id FeedbackID, cap core.Capability, repo string, selected, installed *core.Object) {
	r.feedback = append(r.feedback, Feedback{
		ID:        id,
		Cap:       cap,
		Repo:      repo,
		Selected:  selected,
		Installed: installed,
	})
}

func (r *Requester) setToInstall(obj *core.Object) {
	r.pool.MarkToInstall(obj, core.ActorUser)
	if r.opts.Force {
		r.addFeedback(ForcedInstall, core.Capability{}, "", obj, nil)
	} else {
		r.addFeedback(SetToInstall, core.Capability{}, "", obj, nil)
	}
	r.toInstall.add(obj)
}

func (r *Requester) setToRemove(obj *core.Object) {
	r.pool.MarkToRemove(obj, core.ActorUser)
	r.addFeedback(SetToRemove, core.Capability{}, "", obj, nil)
	r.toRemove.add(obj)
}

func (r *Requester) addRequirement(cap core.Capability) {
	r.resolver.AddRequire(cap)
	r.addFeedback(AddedRequirement, cap, "", nil, nil)
	r.requires.add(cap)
}

func (r *Requester) addConflict(cap core.Capability) {
	r.resolver.AddConflict(cap)
	r.addFeedback(AddedConflict, cap, "", nil, nil)
	r.conflicts.add(cap)
}

// objectSet keeps insertion order and ignores repeated objects
type objectSet struct {
	items []*core.Object
	seen  map[*core.Object]struct{}
}

func (s *objectSet) add(obj *core.Object) {
	if s.seen == nil {
		s.seen = make(map[*core.Object]struct{})
	}
	if _, ok := s.seen[obj]; ok {
		return
	}
	s.seen[obj] = struct{}{}
	s.items = append(s.items, obj)
}

func (s *objectSet) list() []*core.Object {
	out := make([]*core.Object, len(s.items))
	copy(out, s.items)
	return out
}

type capSet struct {
	items []core.Capability
	seen  map[core.Capability]struct{}
}

func (s *capSet) add(cap core.Capability) {
	if s.seen == nil {
		s.seen = make(map[core.Capability]struct{})
	}
	if _, ok := s.seen[cap]; ok {
		return
	}
	s.seen[cap] = struct{}{}
	s.items = append(s.items, cap)
}

func (s *capSet) list() []core.Capability {
	out := make([]core.Capability, len(s.items))
	copy(out, s.items)
	return out
}
