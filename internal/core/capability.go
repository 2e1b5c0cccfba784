package core

import (
	"fmt"
	"strings"
)

// Rel is a relational operator of a versioned capability
type Rel string

const (
	RelNone Rel = ""
	RelEQ   Rel = "="
	RelNE   Rel = "!="
	RelLT   Rel = "<"
	RelLE   Rel = "<="
	RelGT   Rel = ">"
	RelGE   Rel = ">="
)

// operators in match order: two character operators first
var operators = []struct {
	token string
	rel   Rel
}{
	{">=", RelGE},
	{"<=", RelLE},
	{"!=", RelNE},
	{"==", RelEQ},
	{"=", RelEQ},
	{">", RelGT},
	{"<", RelLT},
}

// Capability describes a desired package property: a name with optional
// version constraint and architecture.
type Capability struct {
	Name    string
	Kind    Kind
	Rel     Rel
	Edition Edition
	Arch    string
}

// NewCapability builds a versioned capability for the given identity
func NewCapability(name string, rel Rel, ed Edition, kind Kind) Capability {
	if kind == "" {
		kind = KindPackage
	}
	return Capability{Name: name, Kind: kind, Rel: rel, Edition: ed}
}

// IsZero reports whether the capability is empty
func (c Capability) IsZero() bool {
	return c.Name == ""
}

// IsVersioned reports whether an explicit version constraint was given
func (c Capability) IsVersioned() bool {
	return c.Rel != RelNone && !c.Edition.IsZero()
}

// HasArch reports whether an explicit architecture was given
func (c Capability) HasArch() bool {
	return c.Arch != ""
}

func (c Capability) String() string {
	if c.IsZero() {
		return ""
	}
	s := Ident{Kind: c.Kind, Name: c.Name}.String()
	if c.HasArch() {
		s += "." + c.Arch
	}
	if c.IsVersioned() {
		s += " " + string(c.Rel) + " " + c.Edition.String()
	}
	return s
}

// MatchedBy reports whether a provided capability satisfies this one.
// Unversioned provides satisfy any version constraint.
func (c Capability) MatchedBy(provided Capability) bool {
	if provided.Name != c.Name {
		return false
	}
	if !c.IsVersioned() || provided.Edition.IsZero() {
		return true
	}
	return provided.Edition.Satisfies(c.Rel, c.Edition)
}

// ParseCapability parses "[kind:]name[.arch][ op edition]". Kind defaults to
// defaultKind (or package). An arch suffix is only split off when it names a
// known architecture.
func ParseCapability(text string, defaultKind Kind) (Capability, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Capability{}, fmt.Errorf("empty capability")
	}

	kind := defaultKind
	if kind == "" {
		kind = KindPackage
	}
	if i := strings.IndexByte(text, ':'); i > 0 {
		if k, ok := ParseKind(text[:i]); ok {
			kind = k
			text = text[i+1:]
		}
	}

	name, rel, edText := splitOperator(text)
	if name == "" {
		return Capability{}, fmt.Errorf("missing name in %q", text)
	}
	if rel != RelNone && edText == "" {
		return Capability{}, fmt.Errorf("missing edition after %q in %q", rel, text)
	}

	capa := Capability{Name: name, Kind: kind, Rel: rel, Edition: ParseEdition(edText)}
	if i := strings.LastIndexByte(name, '.'); i > 0 && KnownArch(name[i+1:]) {
		capa.Name = name[:i]
		capa.Arch = name[i+1:]
	}
	return capa, nil
}

func splitOperator(text string) (name string, rel Rel, edition string) {
	pos, width := -1, 0
	for _, op := range operators {
		i := strings.Index(text, op.token)
		if i < 0 {
			continue
		}
		if pos < 0 || i < pos || (i == pos && len(op.token) > width) {
			pos, width, rel = i, len(op.token), op.rel
		}
	}
	if pos < 0 {
		return text, RelNone, ""
	}
	return strings.TrimSpace(text[:pos]), rel, strings.TrimSpace(text[pos+width:])
}
