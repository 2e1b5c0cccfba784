package core

import "strings"

var archTokens = map[string]struct{}{
	"noarch": {}, "src": {}, "nosrc": {},
	"x86_64": {}, "amd64": {}, "x86_64_v2": {}, "x86_64_v3": {},
	"i386": {}, "i486": {}, "i586": {}, "i686": {}, "athlon": {},
	"aarch64": {}, "arm64": {}, "armv6hl": {}, "armv7hl": {}, "armv7l": {}, "armhf": {},
	"ppc": {}, "ppc64": {}, "ppc64le": {}, "s390": {}, "s390x": {},
	"riscv64": {},
}

// KnownArch reports whether s names a package architecture
func KnownArch(s string) bool {
	_, ok := archTokens[strings.ToLower(s)]
	return ok
}

// IsNoarch reports whether the architecture is independent of the machine
func IsNoarch(arch string) bool {
	return arch == "noarch" || arch == ""
}
