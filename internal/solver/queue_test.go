package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/quantmind-br/pkgreq/internal/core"
)

func TestQueue_Idempotent(t *testing.T) {
	q := NewQueue(nil)
	bar := core.NewCapability("bar", core.RelNone, core.Edition{}, "")
	vim := core.NewCapability("vim", core.RelGT, core.ParseEdition("9.0"), "")

	q.AddRequire(vim)
	q.AddConflict(bar)
	q.AddRequire(vim)
	q.AddRequire(bar)

	assert.Equal(t, []Job{
		{Kind: JobRequire, Cap: vim},
		{Kind: JobConflict, Cap: bar},
		{Kind: JobRequire, Cap: bar},
	}, q.Jobs())
	assert.Equal(t, 3, q.Len())
}

func TestQueue_Reset(t *testing.T) {
	q := NewQueue(nil)
	q.AddRequire(core.NewCapability("vim", core.RelNone, core.Edition{}, ""))
	q.Reset()
	assert.Equal(t, 0, q.Len())
	assert.Empty(t, q.Jobs())
}

func TestJob_String(t *testing.T) {
	job := Job{Kind: JobRequire, Cap: core.NewCapability("vim", core.RelGT, core.ParseEdition("9.0"), "")}
	assert.Equal(t, "require vim > 9.0", job.String())
}
