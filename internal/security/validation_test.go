package security

import (
	"strings"
	"testing"
)

func TestValidateObjectName(t *testing.T) {
	tests := []struct {
		name    string
		objName string
		wantErr bool
	}{
		{
			name:    "valid simple name",
			objName: "vim",
			wantErr: false,
		},
		{
			name:    "valid with dashes and dots",
			objName: "openSUSE-2024-1.x",
			wantErr: false,
		},
		{
			name:    "valid with plus",
			objName: "libstdc++6",
			wantErr: false,
		},
		{
			name:    "empty name",
			objName: "",
			wantErr: true,
		},
		{
			name:    "name with spaces",
			objName: "vim data",
			wantErr: true,
		},
		{
			name:    "name with path",
			objName: "/usr/bin/vim",
			wantErr: true,
		},
		{
			name:    "name with removal marker",
			objName: "-vim",
			wantErr: true,
		},
		{
			name:    "name with glob",
			objName: "vim*",
			wantErr: true,
		},
		{
			name:    "null byte injection",
			objName: "vim\x00bad",
			wantErr: true,
		},
		{
			name:    "name too long",
			objName: strings.Repeat("a", 256),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateObjectName(tt.objName)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateObjectName() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateRepoAlias(t *testing.T) {
	tests := []struct {
		name      string
		alias     string
		wantErr   bool
		errSubstr string
	}{
		{
			name:    "valid alias",
			alias:   "repo-oss_15.6",
			wantErr: false,
		},
		{
			name:      "empty alias",
			alias:     "",
			wantErr:   true,
			errSubstr: "empty",
		},
		{
			name:      "reserved alias",
			alias:     "@System",
			wantErr:   true,
			errSubstr: "reserved",
		},
		{
			name:      "alias with colon",
			alias:     "oss:vim",
			wantErr:   true,
			errSubstr: "invalid alias",
		},
		{
			name:      "alias with plus",
			alias:     "oss+",
			wantErr:   true,
			errSubstr: "invalid alias",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRepoAlias(tt.alias)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRepoAlias() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if err != nil && tt.errSubstr != "" && !strings.Contains(err.Error(), tt.errSubstr) {
				t.Errorf("ValidateRepoAlias() error = %v, want error containing %q", err, tt.errSubstr)
			}
		})
	}
}

func TestValidateVersion(t *testing.T) {
	tests := []struct {
		name      string
		version   string
		wantErr   bool
		errSubstr string
	}{
		{
			name:    "empty version",
			version: "",
			wantErr: false,
		},
		{
			name:    "version with release",
			version: "9.1-150500.1.1",
			wantErr: false,
		},
		{
			name:    "version with epoch",
			version: "2:1.0-1",
			wantErr: false,
		},
		{
			name:    "version with tilde",
			version: "1.0~rc1+git3",
			wantErr: false,
		},
		{
			name:      "version with path traversal",
			version:   "../../etc/passwd",
			wantErr:   true,
			errSubstr: "contains ..",
		},
		{
			name:      "version too long",
			version:   strings.Repeat("1", 100),
			wantErr:   true,
			errSubstr: "too long",
		},
		{
			name:      "version with script injection",
			version:   "1.0; rm -rf /",
			wantErr:   true,
			errSubstr: "invalid version",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateVersion(tt.version)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateVersion() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if err != nil && tt.errSubstr != "" && !strings.Contains(err.Error(), tt.errSubstr) {
				t.Errorf("ValidateVersion() error = %v, want error containing %q", err, tt.errSubstr)
			}
		})
	}
}

func TestValidateFilePath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"absolute path", "/srv/catalogs/oss.toml", false},
		{"relative path", "catalogs/oss.toml", false},
		{"empty path", "", true},
		{"null byte", "oss.toml\x00.txt", true},
		{"too long", strings.Repeat("a", 4096), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFilePath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFilePath() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateSessionID(t *testing.T) {
	if err := ValidateSessionID("6ba7b810-9dad-11d1-80b4-00c04fd430c8"); err != nil {
		t.Errorf("ValidateSessionID() unexpected error = %v", err)
	}
	for _, id := range []string{"", "abc", "6ba7b810-9dad-11d1-80b4"} {
		if err := ValidateSessionID(id); err == nil {
			t.Errorf("ValidateSessionID(%q) expected error", id)
		}
	}
}

func TestSanitizeString(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "clean string",
			input:    "openSUSE",
			expected: "openSUSE",
		},
		{
			name:     "spaces and tabs preserved",
			input:    "Main\tRepository 1",
			expected: "Main\tRepository 1",
		},
		{
			name:     "escape sequences stripped",
			input:    "evil\x1b[2Jvendor",
			expected: "evil[2Jvendor",
		},
		{
			name:     "newlines stripped",
			input:    "a\nb\r",
			expected: "ab",
		},
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := SanitizeString(tt.input)
			if result != tt.expected {
				t.Errorf("SanitizeString() = %q, want %q", result, tt.expected)
			}
		})
	}
}
