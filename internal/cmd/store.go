package cmd

import (
	"context"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/quantmind-br/pkgreq/internal/catalog"
	"github.com/quantmind-br/pkgreq/internal/config"
	"github.com/quantmind-br/pkgreq/internal/core"
	"github.com/quantmind-br/pkgreq/internal/db"
	"github.com/quantmind-br/pkgreq/internal/fsops"
	"github.com/quantmind-br/pkgreq/internal/logging"
	"github.com/quantmind-br/pkgreq/internal/pool"
	"github.com/quantmind-br/pkgreq/internal/ui"
)

// storeFs holds the database directory
var storeFs = afero.NewOsFs()

// openStore opens the catalog database, creating its directory if needed
func openStore(ctx context.Context, cfg *config.Config) (*db.DB, error) {
	dir := filepath.Dir(cfg.Paths.DBFile)
	if err := fsops.EnsureDir(storeFs, dir, 0o755); err != nil {
		ui.PrintError("failed to create data directory: %v", err)
		return nil, exitErr(core.ExitDatabase, "create data directory: %w", err)
	}
	if !fsops.Exists(storeFs, cfg.Paths.DBFile) {
		if err := fsops.CheckWritable(storeFs, dir); err != nil {
			ui.PrintError("data directory %s is not writable", dir)
			return nil, exitErr(core.ExitDatabase, "data directory: %w", err)
		}
	}

	database, err := db.New(ctx, cfg.Paths.DBFile)
	if err != nil {
		ui.PrintError("failed to open database: %v", err)
		return nil, exitErr(core.ExitDatabase, "open database: %w", err)
	}
	return database, nil
}

// loadPool reads the stored catalog into a pool
func loadPool(ctx context.Context, database *db.DB, log *zerolog.Logger) (*pool.Pool, error) {
	p, err := catalog.Build(ctx, database, logging.Component(log, "pool"))
	if err != nil {
		ui.PrintError("failed to load catalog: %v", err)
		return nil, exitErr(core.ExitDatabase, "load catalog: %w", err)
	}
	return p, nil
}

func parseKind(value string) (core.Kind, error) {
	if value == "" {
		return core.KindPackage, nil
	}
	k, ok := core.ParseKind(value)
	if !ok {
		return "", exitErr(core.ExitInvalidArgs, "unknown kind %q (package, patch, pattern, product, srcpackage)", value)
	}
	return k, nil
}

// closeStore closes the database, logging failures
func closeStore(database *db.DB, log *zerolog.Logger) {
	if err := database.Close(); err != nil {
		log.Warn().Err(err).Msg("failed to close database")
	}
}

// storeExists reports whether the database file was created already
func storeExists(cfg *config.Config) bool {
	return fsops.Exists(storeFs, cfg.Paths.DBFile)
}
