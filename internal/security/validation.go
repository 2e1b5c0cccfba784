// Package security validates names and identifiers that reach the store
// from catalog files and the command line.
package security

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var (
	// ValidNameRegex allows alphanumeric, dash, underscore, dot and plus
	ValidNameRegex = regexp.MustCompile(`^[a-zA-Z0-9._+-]+$`)

	// ValidAliasRegex allows alphanumeric, dash, underscore and dot
	ValidAliasRegex = regexp.MustCompile(`^[a-zA-Z0-9._-]+$`)

	// ValidVersionRegex allows epochs, tildes and the usual release separators
	ValidVersionRegex = regexp.MustCompile(`^[a-zA-Z0-9._+~:-]+$`)
)

const (
	maxNameLength    = 255
	maxVersionLength = 100
	maxPathLength    = 4096
)

// ValidateObjectName validates the name of a catalog object
func ValidateObjectName(name string) error {
	if name == "" {
		return fmt.Errorf("name cannot be empty")
	}

	if len(name) > maxNameLength {
		return fmt.Errorf("name too long (max %d characters)", maxNameLength)
	}

	if !ValidNameRegex.MatchString(name) {
		return fmt.Errorf("invalid name %q: must contain only alphanumeric, dash, underscore, dot or plus characters", name)
	}

	// '-' and '!' prefixes are removal markers on the command line
	if strings.HasPrefix(name, "-") {
		return fmt.Errorf("invalid name %q: cannot start with a dash", name)
	}

	return nil
}

// ValidateRepoAlias validates a repository alias. Aliases starting with '@'
// are reserved for the system repository.
func ValidateRepoAlias(alias string) error {
	if alias == "" {
		return fmt.Errorf("alias cannot be empty")
	}

	if len(alias) > maxNameLength {
		return fmt.Errorf("alias too long (max %d characters)", maxNameLength)
	}

	if strings.HasPrefix(alias, "@") {
		return fmt.Errorf("alias %q is reserved", alias)
	}

	if !ValidAliasRegex.MatchString(alias) {
		return fmt.Errorf("invalid alias %q: must contain only alphanumeric, dash, underscore, or dot characters", alias)
	}

	return nil
}

// ValidateVersion validates a version string. The empty version is valid and
// matches any edition.
func ValidateVersion(version string) error {
	if version == "" {
		return nil
	}

	if len(version) >= maxVersionLength {
		return fmt.Errorf("version string too long (max %d characters)", maxVersionLength)
	}

	if strings.Contains(version, "..") {
		return fmt.Errorf("invalid version %q: contains ..", version)
	}

	if !ValidVersionRegex.MatchString(version) {
		return fmt.Errorf("invalid version %q: must be alphanumeric with dots, dashes, tildes, colons or plus signs", version)
	}

	return nil
}

// ValidateFilePath validates a catalog file path given on the command line
func ValidateFilePath(path string) error {
	if path == "" {
		return fmt.Errorf("file path cannot be empty")
	}

	if len(path) >= maxPathLength {
		return fmt.Errorf("file path too long (max %d characters)", maxPathLength)
	}

	// path truncation
	if strings.Contains(path, "\x00") {
		return fmt.Errorf("file path contains null byte")
	}

	return nil
}

// ValidateSessionID validates a session ID format
func ValidateSessionID(id string) error {
	if id == "" {
		return fmt.Errorf("session ID cannot be empty")
	}

	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("invalid session ID %q", id)
	}

	return nil
}

// SanitizeString strips control characters from text shown to the user
func SanitizeString(input string) string {
	var b strings.Builder
	b.Grow(len(input))
	for _, r := range input {
		if r == '\t' || r >= 0x20 && r != 0x7f {
			b.WriteRune(r)
		}
	}
	return b.String()
}
