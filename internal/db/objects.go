package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/quantmind-br/pkgreq/internal/core"
)

// InsertObject stores an object and its provides. An object with the same
// kind, name, edition, arch and repo is replaced. The assigned id is written
// back to obj.ID.
func (db *DB) InsertObject(ctx context.Context, obj *core.Object) error {
	return db.Update(ctx, func(tx *Tx) error {
		return tx.InsertObject(ctx, obj)
	})
}

// InsertObject is DB.InsertObject inside the transaction
func (t *Tx) InsertObject(ctx context.Context, obj *core.Object) error {
	if obj.Kind == "" {
		obj.Kind = core.KindPackage
	}
	if obj.Name == "" || obj.Repo == "" {
		return fmt.Errorf("object needs a name and a repo")
	}

	var (
		patchState  sql.NullString
		pkgmgmt     bool
		interactive bool
		license     string
	)
	if obj.Patch != nil {
		patchState = sql.NullString{String: string(obj.Patch.State), Valid: true}
		pkgmgmt = obj.Patch.AffectsPackageManager
		interactive = obj.Patch.Interactive
		license = obj.Patch.License
	}

	query := `
INSERT INTO objects (kind, name, edition, arch, vendor, repo, locked, patch_state, patch_pkgmgmt, patch_interactive, patch_license)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(kind, name, edition, arch, repo) DO UPDATE SET
    vendor = excluded.vendor,
    locked = excluded.locked,
    patch_state = excluded.patch_state,
    patch_pkgmgmt = excluded.patch_pkgmgmt,
    patch_interactive = excluded.patch_interactive,
    patch_license = excluded.patch_license
RETURNING id
	`

	var id int64
	err := t.tx.QueryRowContext(ctx, query,
		string(obj.Kind),
		obj.Name,
		obj.Edition.String(),
		obj.Arch,
		obj.Vendor,
		obj.Repo,
		boolInt(obj.Status.Locked),
		patchState,
		boolInt(pkgmgmt),
		boolInt(interactive),
		license,
	).Scan(&id)
	if err != nil {
		return fmt.Errorf("insert object: %w", err)
	}

	if _, err := t.tx.ExecContext(ctx, "DELETE FROM provides WHERE object_id = ?", id); err != nil {
		return fmt.Errorf("clear provides: %w", err)
	}
	for _, c := range obj.Provides {
		if _, err := t.tx.ExecContext(ctx, "INSERT INTO provides (object_id, capability) VALUES (?, ?)", id, c.String()); err != nil {
			return fmt.Errorf("insert provide: %w", err)
		}
	}

	obj.ID = id
	return nil
}

// ListObjects returns every stored object with its provides
func (db *DB) ListObjects(ctx context.Context) ([]*core.Object, error) {
	query := `
SELECT id, kind, name, edition, arch, vendor, repo, locked, patch_state, patch_pkgmgmt, patch_interactive, patch_license
FROM objects ORDER BY kind, name, repo, id
	`

	rows, err := db.read.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query objects: %w", err)
	}
	defer rows.Close()

	var (
		objects []*core.Object
		byID    = make(map[int64]*core.Object)
	)
	for rows.Next() {
		var (
			obj         core.Object
			kind        string
			edition     string
			locked      int
			patchState  sql.NullString
			pkgmgmt     int
			interactive int
			license     string
		)
		err := rows.Scan(&obj.ID, &kind, &obj.Name, &edition, &obj.Arch, &obj.Vendor, &obj.Repo,
			&locked, &patchState, &pkgmgmt, &interactive, &license)
		if err != nil {
			return nil, fmt.Errorf("scan object: %w", err)
		}

		obj.Kind = core.Kind(kind)
		obj.Edition = core.ParseEdition(edition)
		obj.Status.Locked = locked != 0
		if patchState.Valid {
			obj.Patch = &core.PatchInfo{
				State:                 core.PatchState(patchState.String),
				AffectsPackageManager: pkgmgmt != 0,
				Interactive:           interactive != 0,
				License:               license,
			}
		}

		objects = append(objects, &obj)
		byID[obj.ID] = &obj
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	if err := db.loadProvides(ctx, byID); err != nil {
		return nil, err
	}
	return objects, nil
}

func (db *DB) loadProvides(ctx context.Context, byID map[int64]*core.Object) error {
	rows, err := db.read.QueryContext(ctx, "SELECT object_id, capability FROM provides ORDER BY rowid")
	if err != nil {
		return fmt.Errorf("query provides: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id   int64
			text string
		)
		if err := rows.Scan(&id, &text); err != nil {
			return fmt.Errorf("scan provide: %w", err)
		}
		obj, ok := byID[id]
		if !ok {
			continue
		}
		c, err := core.ParseCapability(text, core.KindPackage)
		if err != nil {
			return fmt.Errorf("object %d: %w", id, err)
		}
		obj.Provides = append(obj.Provides, c)
	}
	return rows.Err()
}

// SetLocked sets the lock flag of every object with the given identity and
// returns the number of objects changed
func (db *DB) SetLocked(ctx context.Context, kind core.Kind, name string, locked bool) (int64, error) {
	result, err := db.write.ExecContext(ctx, "UPDATE objects SET locked = ? WHERE kind = ? AND name = ?",
		boolInt(locked), string(kind), name)
	if err != nil {
		return 0, fmt.Errorf("update lock: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("check rows affected: %w", err)
	}
	if n == 0 {
		return 0, fmt.Errorf("%s: %w", core.Ident{Kind: kind, Name: name}, ErrNotFound)
	}
	return n, nil
}
