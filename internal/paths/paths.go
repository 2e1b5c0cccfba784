package paths

import (
	"os"
	"path/filepath"

	"github.com/quantmind-br/pkgreq/internal/config"
)

// Resolver centralizes the default pkgreq locations. Base directories come
// from HOME and the configuration.
type Resolver struct {
	homeDir string
	cfg     *config.Config
}

// NewResolver creates a Resolver for the current user's HOME.
func NewResolver(cfg *config.Config) *Resolver {
	homeDir, _ := os.UserHomeDir()
	return &Resolver{
		homeDir: homeDir,
		cfg:     cfg,
	}
}

// NewResolverWithHome creates a Resolver with an explicit homeDir.
func NewResolverWithHome(cfg *config.Config, homeDir string) *Resolver {
	return &Resolver{
		homeDir: homeDir,
		cfg:     cfg,
	}
}

// HomeDir returns the resolved HOME directory.
func (r *Resolver) HomeDir() string {
	return r.homeDir
}

// ConfigDir returns ~/.config/pkgreq.
func (r *Resolver) ConfigDir() string {
	return filepath.Join(r.homeDir, ".config", "pkgreq")
}

// DataDir returns cfg.Paths.DataDir, or ~/.local/share/pkgreq when unset.
func (r *Resolver) DataDir() string {
	if r.cfg != nil && r.cfg.Paths.DataDir != "" {
		return r.cfg.Paths.DataDir
	}
	return filepath.Join(r.homeDir, ".local", "share", "pkgreq")
}

// CatalogDir returns the directory imported when no catalog file is named.
func (r *Resolver) CatalogDir() string {
	return filepath.Join(r.DataDir(), "catalogs")
}

// CatalogPattern returns the glob matching the files of CatalogDir.
func (r *Resolver) CatalogPattern() string {
	return filepath.Join(r.CatalogDir(), "*.toml")
}
