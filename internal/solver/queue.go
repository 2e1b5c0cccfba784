// Package solver collects the abstract jobs handed to the dependency solver.
package solver

import (
	"github.com/rs/zerolog"

	"github.com/quantmind-br/pkgreq/internal/core"
)

// JobKind is the kind of a solver job
type JobKind string

const (
	JobRequire  JobKind = "require"
	JobConflict JobKind = "conflict"
)

// Job asks the solver to satisfy or to exclude a capability
type Job struct {
	Kind JobKind
	Cap  core.Capability
}

func (j Job) String() string {
	return string(j.Kind) + " " + j.Cap.String()
}

// Queue is an ordered job list. Adding a job twice is a no-op.
type Queue struct {
	jobs []Job
	seen map[Job]struct{}
	log  *zerolog.Logger
}

var _ core.Resolver = (*Queue)(nil)

// NewQueue creates an empty job queue
func NewQueue(log *zerolog.Logger) *Queue {
	if log == nil {
		nop := zerolog.Nop()
		log = &nop
	}
	return &Queue{seen: make(map[Job]struct{}), log: log}
}

func (q *Queue) AddRequire(cap core.Capability) { q.add(Job{Kind: JobRequire, Cap: cap}) }

func (q *Queue) AddConflict(cap core.Capability) { q.add(Job{Kind: JobConflict, Cap: cap}) }

func (q *Queue) add(job Job) {
	if _, ok := q.seen[job]; ok {
		q.log.Debug().Str("job", job.String()).Msg("job already queued")
		return
	}
	q.seen[job] = struct{}{}
	q.jobs = append(q.jobs, job)
	q.log.Debug().Str("job", job.String()).Msg("job queued")
}

// Jobs returns the queued jobs in insertion order
func (q *Queue) Jobs() []Job {
	out := make([]Job, len(q.jobs))
	copy(out, q.jobs)
	return out
}

// Len returns the number of queued jobs
func (q *Queue) Len() int { return len(q.jobs) }

// Reset drops every queued job
func (q *Queue) Reset() {
	q.jobs = nil
	q.seen = make(map[Job]struct{})
}
