package db

import (
	"context"
	"fmt"

	"github.com/quantmind-br/pkgreq/internal/core"
)

// UpsertRepo creates or updates a repository
func (db *DB) UpsertRepo(ctx context.Context, repo core.Repository) error {
	return db.Update(ctx, func(tx *Tx) error {
		return tx.UpsertRepo(ctx, repo)
	})
}

// UpsertRepo is DB.UpsertRepo inside the transaction
func (t *Tx) UpsertRepo(ctx context.Context, repo core.Repository) error {
	if repo.Alias == "" || repo.Alias == core.SystemRepo {
		return fmt.Errorf("invalid repository alias %q", repo.Alias)
	}

	query := `
INSERT INTO repos (alias, name, priority, enabled)
VALUES (?, ?, ?, ?)
ON CONFLICT(alias) DO UPDATE SET name = excluded.name, priority = excluded.priority, enabled = excluded.enabled
	`

	_, err := t.tx.ExecContext(ctx, query, repo.Alias, repo.Name, repo.Priority, boolInt(repo.Enabled))
	if err != nil {
		return fmt.Errorf("upsert repo: %w", err)
	}
	return nil
}

// ListRepos returns every repository ordered by priority then alias
func (db *DB) ListRepos(ctx context.Context) ([]core.Repository, error) {
	rows, err := db.read.QueryContext(ctx, "SELECT alias, name, priority, enabled FROM repos ORDER BY priority, alias")
	if err != nil {
		return nil, fmt.Errorf("query repos: %w", err)
	}
	defer rows.Close()

	var repos []core.Repository
	for rows.Next() {
		var (
			r       core.Repository
			enabled int
		)
		if err := rows.Scan(&r.Alias, &r.Name, &r.Priority, &enabled); err != nil {
			return nil, fmt.Errorf("scan repo: %w", err)
		}
		r.Enabled = enabled != 0
		repos = append(repos, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return repos, nil
}

// DeleteRepo removes a repository together with its objects
func (db *DB) DeleteRepo(ctx context.Context, alias string) error {
	tx, err := db.write.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, "DELETE FROM repos WHERE alias = ?", alias)
	if err != nil {
		return fmt.Errorf("delete repo: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("repo %s: %w", alias, ErrNotFound)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM objects WHERE repo = ?", alias); err != nil {
		return fmt.Errorf("delete repo objects: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
