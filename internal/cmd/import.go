package cmd

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/quantmind-br/pkgreq/internal/catalog"
	"github.com/quantmind-br/pkgreq/internal/config"
	"github.com/quantmind-br/pkgreq/internal/core"
	"github.com/quantmind-br/pkgreq/internal/db"
	"github.com/quantmind-br/pkgreq/internal/fsops"
	"github.com/quantmind-br/pkgreq/internal/paths"
	"github.com/quantmind-br/pkgreq/internal/security"
	"github.com/quantmind-br/pkgreq/internal/ui"
)

// catalogFs is where catalog files are read from
var catalogFs = afero.NewOsFs()

// NewImportCmd creates the import command
func NewImportCmd(cfg *config.Config, log *zerolog.Logger) *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "import [file...]",
		Short: "Import catalog files",
		Long: `Import TOML catalog files describing repositories and their objects.

Objects already known are replaced, so a file can be imported again after
it changed. Installed objects are listed without a repository and land in
the @System repository.

Without arguments every *.toml file of the catalogs directory under the
data directory is imported.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, files []string) error {
			ctx := commandContext(cmd)

			if len(files) == 0 {
				resolver := paths.NewResolver(cfg)
				matches, err := afero.Glob(catalogFs, resolver.CatalogPattern())
				if err != nil {
					return exitErr(core.ExitInvalidArgs, "list catalogs: %w", err)
				}
				if len(matches) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), ui.SprintInfo("No catalog files in %s", resolver.CatalogDir()))
					return nil
				}
				sort.Strings(matches)
				files = matches
			}

			// Validate every file before touching the store
			parsed := make([]*catalog.File, 0, len(files))
			for _, path := range files {
				if err := security.ValidateFilePath(path); err != nil {
					ui.PrintError("%v", err)
					return exitErr(core.ExitInvalidArgs, "catalog path: %w", err)
				}
				if fsops.IsDir(catalogFs, path) {
					ui.PrintError("%s is a directory", path)
					return exitErr(core.ExitInvalidArgs, "catalog path %s is a directory", path)
				}
				f, err := catalog.Load(catalogFs, path, cfg.Repos.DefaultPriority)
				if err != nil {
					ui.PrintError("%v", err)
					return exitErr(core.ExitInvalidArgs, "load catalog: %w", err)
				}
				parsed = append(parsed, f)
			}

			database, err := openStore(ctx, cfg)
			if err != nil {
				return err
			}
			defer closeStore(database, log)

			// All files share one transaction: a failure leaves the store untouched
			perFile := make([]catalog.Stats, len(parsed))
			err = database.Update(ctx, func(tx *db.Tx) error {
				for i, f := range parsed {
					var progress catalog.ProgressFunc
					var bar *ui.ProgressBar
					if !quiet && len(f.Objects()) > 0 {
						bar = ui.NewProgressBar(int64(len(f.Objects())), "Importing "+f.Path)
						progress = func(done, _ int) {
							_ = bar.Set(done)
						}
					}

					stats, err := f.Import(ctx, tx, progress)
					if bar != nil {
						_ = bar.Finish()
					}
					if err != nil {
						return fmt.Errorf("import %s: %w", f.Path, err)
					}
					perFile[i] = stats
				}
				return nil
			})
			if err != nil {
				ui.PrintError("%v, nothing was imported", err)
				if errors.Is(err, context.Canceled) {
					return exitErr(core.ExitInterrupted, "%w", err)
				}
				return exitErr(core.ExitDatabase, "%w", err)
			}

			var total catalog.Stats
			for i, stats := range perFile {
				log.Info().
					Str("file", parsed[i].Path).
					Int("repos", stats.Repos).
					Int("objects", stats.Objects).
					Msg("catalog imported")

				total.Repos += stats.Repos
				total.Objects += stats.Objects
			}

			fmt.Fprintln(cmd.OutOrStdout(), ui.SprintSuccess("Imported %d repositories and %d objects", total.Repos, total.Objects))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "do not show progress")

	return cmd
}
