package requester

// ForceMode selects how package arguments are resolved
type ForceMode int

const (
	// ForceAuto tries names first and falls back to capabilities
	ForceAuto ForceMode = iota
	// ForceByCapability skips the lookup by name
	ForceByCapability
	// ForceByName never falls back to a capability lookup
	ForceByName
)

func (m ForceMode) String() string {
	switch m {
	case ForceByCapability:
		return "capability"
	case ForceByName:
		return "name"
	default:
		return "auto"
	}
}

// Options are applied to every requested spec of one run
type Options struct {
	// Force permits downgrades and reinstalls of the selected object
	Force bool

	ForceBy ForceMode

	// BestEffort requests updates as "name > installed edition" jobs instead
	// of picking a concrete object
	BestEffort bool

	// SkipInteractive skips patches that need confirmation or license acceptance
	SkipInteractive bool

	// FromRepos restricts candidate lookup to these repository aliases
	FromRepos []string
}

// SetForceByCap switches selection by capability on or off
func (o *Options) SetForceByCap(value bool) {
	if value {
		o.ForceBy = ForceByCapability
	} else if o.ForceBy == ForceByCapability {
		o.ForceBy = ForceAuto
	}
}

// SetForceByName switches selection by name on or off
func (o *Options) SetForceByName(value bool) {
	if value {
		o.ForceBy = ForceByName
	} else if o.ForceBy == ForceByName {
		o.ForceBy = ForceAuto
	}
}

// ForceByCap reports whether lookup by name is skipped
func (o Options) ForceByCap() bool { return o.ForceBy == ForceByCapability }

// ForceByName reports whether capability fallback is disabled
func (o Options) ForceByName() bool { return o.ForceBy == ForceByName }
