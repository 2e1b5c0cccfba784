package db

import (
	"context"
	"database/sql"
	"fmt"
)

// Tx groups several writes so they land together or not at all
type Tx struct {
	tx *sql.Tx
}

// Update runs fn inside a single write transaction. The transaction is
// committed when fn returns nil and rolled back otherwise, including when
// ctx is cancelled before the commit. Ids written back to objects by a
// rolled back transaction are meaningless.
func (db *DB) Update(ctx context.Context, fn func(tx *Tx) error) error {
	tx, err := db.write.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if err := fn(&Tx{tx: tx}); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
