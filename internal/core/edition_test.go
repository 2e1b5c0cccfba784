package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseEdition(t *testing.T) {
	tests := []struct {
		input string
		want  Edition
	}{
		{"", Edition{}},
		{"1.0", Edition{Version: "1.0"}},
		{"1.0-3", Edition{Version: "1.0", Release: "3"}},
		{"2:1.0-3.1", Edition{Epoch: 2, Version: "1.0", Release: "3.1"}},
		{" 9.0.1 ", Edition{Version: "9.0.1"}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := ParseEdition(tt.input)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEdition_String(t *testing.T) {
	assert.Equal(t, "1.0", ParseEdition("1.0").String())
	assert.Equal(t, "1.0-3", ParseEdition("1.0-3").String())
	assert.Equal(t, "2:1.0-3", ParseEdition("2:1.0-3").String())
	assert.True(t, Edition{}.IsZero())
}

func TestEdition_Compare(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"1.0", "1.0", 0},
		{"1.0", "2.0", -1},
		{"2.0", "1.0", 1},
		{"1.10", "1.9", 1},
		{"1.0", "1.0.1", -1},
		{"1.2.3.4", "1.2.3.10", -1},
		{"1.0a", "1.0b", -1},
		{"1.0.1", "1.0a", 1},
		{"1.0-1", "1.0-2", -1},
		{"1.0", "1.0-1", -1},
		{"1:1.0", "2.0", 1},
		{"2.0.01", "2.0.1", 0},
		{"1.0.0", "1.0.1", -1},
		{"1.2.0", "1.10.0", -1},
		{"1.0-rc1-2", "1.0-2", 1},
		{"1.0.0-rc1", "1.0.0", 1},
	}

	for _, tt := range tests {
		t.Run(tt.a+"_vs_"+tt.b, func(t *testing.T) {
			got := ParseEdition(tt.a).Compare(ParseEdition(tt.b))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEdition_Satisfies(t *testing.T) {
	tests := []struct {
		name string
		ed   string
		rel  Rel
		con  string
		want bool
	}{
		{"no operator", "1.0", RelNone, "", true},
		{"equal", "1.0-3", RelEQ, "1.0", true},
		{"equal release", "1.0-3", RelEQ, "1.0-4", false},
		{"not equal", "1.0", RelNE, "2.0", true},
		{"greater", "2.0", RelGT, "1.0", true},
		{"greater equal", "1.0", RelGE, "1.0", true},
		{"less", "1.0", RelLT, "1.0", false},
		{"less equal", "0.9", RelLE, "1.0", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseEdition(tt.ed).Satisfies(tt.rel, ParseEdition(tt.con))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEdition_CompareIsConsistent(t *testing.T) {
	inputs := []string{
		"1.0-rc1-2", "1.0-2", "1.0.a-2",
		"1.0.0", "1.0.0-rc1", "1.0.0-alpha", "1.0.0+build", "1.0.1",
		"1.0", "1.0a", "1.0.1a", "2.0", "1:0.1", "1.10", "1.9",
	}
	editions := make([]Edition, len(inputs))
	for i, s := range inputs {
		editions[i] = ParseEdition(s)
	}

	for i, a := range editions {
		assert.Zero(t, a.Compare(a), inputs[i])
		for j, b := range editions {
			assert.Equal(t, a.Compare(b), -b.Compare(a), "%s vs %s", inputs[i], inputs[j])
			for k, c := range editions {
				if a.Compare(b) < 0 && b.Compare(c) < 0 {
					assert.Negative(t, a.Compare(c), "%s < %s < %s", inputs[i], inputs[j], inputs[k])
				}
			}
		}
	}
}
