package catalog

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/quantmind-br/pkgreq/internal/core"
	"github.com/quantmind-br/pkgreq/internal/pool"
)

// Writer is the part of the store used by Import. *db.Tx implements it so
// that a whole import shares one transaction.
type Writer interface {
	UpsertRepo(ctx context.Context, repo core.Repository) error
	InsertObject(ctx context.Context, obj *core.Object) error
}

// Reader is the part of the store used by Build
type Reader interface {
	ListRepos(ctx context.Context) ([]core.Repository, error)
	ListObjects(ctx context.Context) ([]*core.Object, error)
}

// Stats counts what an import wrote
type Stats struct {
	Repos   int
	Objects int
}

// ProgressFunc is called after every stored object
type ProgressFunc func(done, total int)

// Import writes the repositories and objects of f through w. It stops at the
// first error or when ctx is cancelled; the caller discards what was written
// by rolling back the transaction behind w.
func (f *File) Import(ctx context.Context, w Writer, progress ProgressFunc) (Stats, error) {
	var stats Stats

	for _, r := range f.repos {
		if err := w.UpsertRepo(ctx, r); err != nil {
			return stats, fmt.Errorf("import repo %s: %w", r.Alias, err)
		}
		stats.Repos++
	}

	for i, obj := range f.objects {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		if err := w.InsertObject(ctx, obj); err != nil {
			return stats, fmt.Errorf("import %s: %w", obj, err)
		}
		stats.Objects++
		if progress != nil {
			progress(i+1, len(f.objects))
		}
	}

	return stats, nil
}

// Build loads the stored catalog into a pool
func Build(ctx context.Context, r Reader, log *zerolog.Logger) (*pool.Pool, error) {
	repos, err := r.ListRepos(ctx)
	if err != nil {
		return nil, fmt.Errorf("load repos: %w", err)
	}
	objects, err := r.ListObjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("load objects: %w", err)
	}

	if log != nil {
		log.Debug().Int("repos", len(repos)).Int("objects", len(objects)).Msg("catalog loaded")
	}
	return pool.New(repos, objects, log), nil
}
