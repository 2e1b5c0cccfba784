// Package args turns raw command line words into package specs.
package args

import (
	"fmt"
	"strings"

	"github.com/quantmind-br/pkgreq/internal/core"
)

// PackageSpec is one parsed package argument
type PackageSpec struct {
	Raw       string
	Cap       core.Capability
	RepoAlias string
	// Modified is set when the argument carried explicit version or arch
	// qualifiers beyond a bare name
	Modified bool
}

func (s PackageSpec) String() string {
	if s.RepoAlias != "" {
		return s.RepoAlias + ":" + s.Cap.String()
	}
	return s.Cap.String()
}

// Options control how raw arguments are split
type Options struct {
	// DoByDefault puts arguments without a +/- marker on the "do" side
	DoByDefault bool
	// Kind is the default kind of arguments without a kind: prefix
	Kind core.Kind
	// KnownRepo reports whether a prefix names a repository alias
	KnownRepo func(alias string) bool
}

// DefaultOptions returns options for install-like commands
func DefaultOptions() Options {
	return Options{DoByDefault: true, Kind: core.KindPackage}
}

// PackageArgs holds the "do" and "don't" specs of one command invocation
type PackageArgs struct {
	opts  Options
	dos   []PackageSpec
	donts []PackageSpec
}

// Parse splits raw arguments into dos and don'ts. A leading '-', '!' or '~'
// marks a don't, a leading '+' a do. Duplicates are dropped, order is kept.
func Parse(raw []string, opts Options) (PackageArgs, error) {
	if opts.Kind == "" {
		opts.Kind = core.KindPackage
	}
	pa := PackageArgs{opts: opts}
	seenDo := make(map[string]struct{})
	seenDont := make(map[string]struct{})

	for _, word := range raw {
		word = strings.TrimSpace(word)
		if word == "" {
			continue
		}

		do := opts.DoByDefault
		switch word[0] {
		case '-', '!', '~':
			do = false
			word = word[1:]
		case '+':
			do = true
			word = word[1:]
		}

		spec, err := ParseSpec(word, opts)
		if err != nil {
			return PackageArgs{}, err
		}

		key := spec.String()
		if do {
			if _, dup := seenDo[key]; dup {
				continue
			}
			seenDo[key] = struct{}{}
			pa.dos = append(pa.dos, spec)
		} else {
			if _, dup := seenDont[key]; dup {
				continue
			}
			seenDont[key] = struct{}{}
			pa.donts = append(pa.donts, spec)
		}
	}

	return pa, nil
}

// ParseSpec parses a single "[repo:][kind:]name[.arch][op edition]" argument
func ParseSpec(word string, opts Options) (PackageSpec, error) {
	spec := PackageSpec{Raw: word}
	text := word

	if i := strings.IndexByte(text, ':'); i > 0 && opts.KnownRepo != nil {
		if _, isKind := core.ParseKind(text[:i]); !isKind && opts.KnownRepo(text[:i]) {
			spec.RepoAlias = text[:i]
			text = text[i+1:]
		}
	}

	c, err := core.ParseCapability(text, opts.Kind)
	if err != nil {
		return PackageSpec{}, fmt.Errorf("invalid package argument %q: %w", word, err)
	}
	spec.Cap = c
	spec.Modified = c.IsVersioned() || c.HasArch()
	return spec, nil
}

// Options returns the options the arguments were parsed with
func (a PackageArgs) Options() Options { return a.opts }

// Dos returns the specs to act on
func (a PackageArgs) Dos() []PackageSpec { return a.dos }

// Donts returns the specs to act against
func (a PackageArgs) Donts() []PackageSpec { return a.donts }

// Empty reports whether there is nothing to do
func (a PackageArgs) Empty() bool { return len(a.dos) == 0 && len(a.donts) == 0 }
