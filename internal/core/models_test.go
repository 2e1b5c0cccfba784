package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		input string
		want  Kind
		ok    bool
	}{
		{"package", KindPackage, true},
		{"patch", KindPatch, true},
		{"pattern", KindPattern, true},
		{"product", KindProduct, true},
		{"srcpackage", KindSrcPackage, true},
		{"repo", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseKind(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestObject_Installed(t *testing.T) {
	installed := &Object{Name: "foo", Repo: SystemRepo}
	available := &Object{Name: "foo", Repo: "oss"}

	assert.True(t, installed.Installed())
	assert.False(t, available.Installed())
}

func TestObject_String(t *testing.T) {
	obj := &Object{Kind: KindPackage, Name: "vim", Edition: ParseEdition("9.0-1.1"), Arch: "x86_64", Repo: "oss"}
	assert.Equal(t, "vim-9.0-1.1.x86_64 (oss)", obj.String())

	patch := &Object{Kind: KindPatch, Name: "openSUSE-2024-1", Repo: "updates"}
	assert.Equal(t, "patch:openSUSE-2024-1 (updates)", patch.String())

	var none *Object
	assert.Equal(t, "<none>", none.String())
}

func TestObject_Capabilities(t *testing.T) {
	obj := &Object{
		Kind:     KindPackage,
		Name:     "baz",
		Edition:  ParseEdition("1.2"),
		Provides: []Capability{{Name: "bar", Kind: KindPackage}},
	}

	caps := obj.Capabilities()
	assert.Len(t, caps, 2)
	assert.Equal(t, "baz", caps[0].Name)
	assert.Equal(t, RelEQ, caps[0].Rel)
	assert.Equal(t, "bar", caps[1].Name)
}

func TestIdentical(t *testing.T) {
	base := &Object{Kind: KindPackage, Name: "foo", Edition: ParseEdition("2.0"), Arch: "x86_64", Vendor: "X", Repo: SystemRepo}

	tests := []struct {
		name  string
		other *Object
		want  bool
	}{
		{"same build other repo", &Object{Kind: KindPackage, Name: "foo", Edition: ParseEdition("2.0"), Arch: "x86_64", Vendor: "X", Repo: "oss"}, true},
		{"different edition", &Object{Kind: KindPackage, Name: "foo", Edition: ParseEdition("2.1"), Arch: "x86_64", Vendor: "X"}, false},
		{"different vendor", &Object{Kind: KindPackage, Name: "foo", Edition: ParseEdition("2.0"), Arch: "x86_64", Vendor: "Y"}, false},
		{"different arch", &Object{Kind: KindPackage, Name: "foo", Edition: ParseEdition("2.0"), Arch: "i586", Vendor: "X"}, false},
		{"different kind", &Object{Kind: KindPatch, Name: "foo", Edition: ParseEdition("2.0"), Arch: "x86_64", Vendor: "X"}, false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Identical(base, tt.other))
		})
	}

	assert.True(t, Identical(nil, nil))
}

func TestPatchInfo_NeedsConfirmation(t *testing.T) {
	assert.False(t, (&PatchInfo{State: PatchNeeded}).NeedsConfirmation())
	assert.True(t, (&PatchInfo{Interactive: true}).NeedsConfirmation())
	assert.True(t, (&PatchInfo{License: "EULA"}).NeedsConfirmation())
}

func TestStatus(t *testing.T) {
	var s Status
	assert.False(t, s.ToBeInstalled())
	assert.False(t, s.ToBeRemoved())

	s.Transact = TransactInstall
	assert.True(t, s.ToBeInstalled())

	s.Transact = TransactRemove
	assert.True(t, s.ToBeRemoved())
}

func TestExitCodes(t *testing.T) {
	assert.Equal(t, 0, ExitSuccess)
	assert.Equal(t, 104, ExitNotFound)
	assert.Equal(t, 130, ExitInterrupted)
}
