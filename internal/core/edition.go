package core

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/Masterminds/semver/v3"
)

// Edition is a totally ordered [epoch:]version[-release] value
type Edition struct {
	Epoch   int
	Version string
	Release string
}

// ParseEdition parses "[epoch:]version[-release]". An empty string yields the zero Edition.
func ParseEdition(s string) Edition {
	s = strings.TrimSpace(s)
	if s == "" {
		return Edition{}
	}

	var ed Edition
	if i := strings.IndexByte(s, ':'); i > 0 {
		if epoch, err := strconv.Atoi(s[:i]); err == nil {
			ed.Epoch = epoch
			s = s[i+1:]
		}
	}
	if i := strings.LastIndexByte(s, '-'); i > 0 {
		ed.Release = s[i+1:]
		s = s[:i]
	}
	ed.Version = s
	return ed
}

// IsZero reports whether no edition was given
func (e Edition) IsZero() bool {
	return e.Epoch == 0 && e.Version == "" && e.Release == ""
}

func (e Edition) String() string {
	var b strings.Builder
	if e.Epoch > 0 {
		b.WriteString(strconv.Itoa(e.Epoch))
		b.WriteByte(':')
	}
	b.WriteString(e.Version)
	if e.Release != "" {
		b.WriteByte('-')
		b.WriteString(e.Release)
	}
	return b.String()
}

// Compare returns -1, 0 or 1. A missing release sorts before any release.
func (e Edition) Compare(o Edition) int {
	if e.Epoch != o.Epoch {
		if e.Epoch < o.Epoch {
			return -1
		}
		return 1
	}
	if c := compareVersion(e.Version, o.Version); c != 0 {
		return c
	}
	return compareVersion(e.Release, o.Release)
}

// Satisfies evaluates "e rel o". Used for matching, so a constraint without
// a release matches every release of the same version.
func (e Edition) Satisfies(rel Rel, o Edition) bool {
	if rel == RelNone {
		return true
	}
	c := e.Compare(o)
	if o.Release == "" {
		c = Edition{Epoch: e.Epoch, Version: e.Version}.Compare(Edition{Epoch: o.Epoch, Version: o.Version})
	}
	switch rel {
	case RelEQ:
		return c == 0
	case RelNE:
		return c != 0
	case RelLT:
		return c < 0
	case RelLE:
		return c <= 0
	case RelGT:
		return c > 0
	case RelGE:
		return c >= 0
	default:
		return false
	}
}

// compareVersion compares two version strings. Strict X.Y.Z versions are
// compared with semver; everything else, including semver prereleases, uses
// rpm style segment comparison so that mixed inputs still order consistently.
func compareVersion(a, b string) int {
	if a == b {
		return 0
	}
	if a == "" {
		return -1
	}
	if b == "" {
		return 1
	}
	if va, vb := plainSemver(a), plainSemver(b); va != nil && vb != nil {
		if c := va.Compare(vb); c != 0 {
			return c
		}
	}
	return compareSegments(a, b)
}

// plainSemver parses s as a strict semver without prerelease, nil otherwise
func plainSemver(s string) *semver.Version {
	v, err := semver.StrictNewVersion(s)
	if err != nil || v.Prerelease() != "" {
		return nil
	}
	return v
}

// compareSegments splits both strings into alternating digit and letter runs
// and compares them pairwise. Digit runs beat letter runs.
func compareSegments(a, b string) int {
	for {
		a = strings.TrimLeftFunc(a, isSeparator)
		b = strings.TrimLeftFunc(b, isSeparator)
		if a == "" || b == "" {
			break
		}

		segA, restA, numA := nextSegment(a)
		segB, restB, numB := nextSegment(b)
		a, b = restA, restB

		if numA != numB {
			if numA {
				return 1
			}
			return -1
		}

		var c int
		if numA {
			c = compareNumeric(segA, segB)
		} else {
			c = strings.Compare(segA, segB)
		}
		if c != 0 {
			return c
		}
	}

	switch {
	case a == "" && b == "":
		return 0
	case a == "":
		return -1
	default:
		return 1
	}
}

func nextSegment(s string) (seg, rest string, numeric bool) {
	first, _ := utf8.DecodeRuneInString(s)
	numeric = unicode.IsDigit(first)
	end := len(s)
	for i, r := range s {
		if (numeric && !unicode.IsDigit(r)) || (!numeric && !unicode.IsLetter(r)) {
			end = i
			break
		}
	}
	return s[:end], s[end:], numeric
}

func compareNumeric(a, b string) int {
	a = strings.TrimLeft(a, "0")
	b = strings.TrimLeft(b, "0")
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	return strings.Compare(a, b)
}

func isSeparator(r rune) bool {
	return !unicode.IsDigit(r) && !unicode.IsLetter(r)
}
