package requester

import (
	"fmt"

	"github.com/quantmind-br/pkgreq/internal/core"
)

// FeedbackID identifies a kind of requester feedback
type FeedbackID int

const (
	// NotFoundNameTryingCaps: no object matched by name, trying capabilities
	NotFoundNameTryingCaps FeedbackID = iota
	NotFoundName
	NotFoundCap

	// NotInstalled: removal or update requested, but nothing is installed
	NotInstalled

	// NoInstalledProvider: removal by capability requested, no provider installed
	NoInstalledProvider

	AlreadyInstalled
	NoUpdCandidate
	UpdCandidateChangesVendor
	UpdCandidateHasLowerPrio
	UpdCandidateIsLocked

	// UpdCandidateUserRestricted: the selected object is not the highest
	// available because of user restrictions like repos, version or arch
	UpdCandidateUserRestricted

	// SelectedIsOlder: selected object is older than the installed one and
	// is not installed without Force
	SelectedIsOlder

	PatchNotNeeded

	// PatchInteractiveSkipped: patch needs interaction and SkipInteractive is set
	PatchInteractiveSkipped

	SetToInstall
	ForcedInstall
	SetToRemove
	AddedRequirement
	AddedConflict
)

var feedbackNames = [...]string{
	NotFoundNameTryingCaps:     "NOT_FOUND_NAME_TRYING_CAPS",
	NotFoundName:               "NOT_FOUND_NAME",
	NotFoundCap:                "NOT_FOUND_CAP",
	NotInstalled:               "NOT_INSTALLED",
	NoInstalledProvider:        "NO_INSTALLED_PROVIDER",
	AlreadyInstalled:           "ALREADY_INSTALLED",
	NoUpdCandidate:             "NO_UPD_CANDIDATE",
	UpdCandidateChangesVendor:  "UPD_CANDIDATE_CHANGES_VENDOR",
	UpdCandidateHasLowerPrio:   "UPD_CANDIDATE_HAS_LOWER_PRIO",
	UpdCandidateIsLocked:       "UPD_CANDIDATE_IS_LOCKED",
	UpdCandidateUserRestricted: "UPD_CANDIDATE_USER_RESTRICTED",
	SelectedIsOlder:            "SELECTED_IS_OLDER",
	PatchNotNeeded:             "PATCH_NOT_NEEDED",
	PatchInteractiveSkipped:    "PATCH_INTERACTIVE_SKIPPED",
	SetToInstall:               "SET_TO_INSTALL",
	ForcedInstall:              "FORCED_INSTALL",
	SetToRemove:                "SET_TO_REMOVE",
	AddedRequirement:           "ADDED_REQUIREMENT",
	AddedConflict:              "ADDED_CONFLICT",
}

// FeedbackIDs lists every feedback kind in declaration order
func FeedbackIDs() []FeedbackID {
	ids := make([]FeedbackID, len(feedbackNames))
	for i := range feedbackNames {
		ids[i] = FeedbackID(i)
	}
	return ids
}

// String returns the stable identifier of the feedback kind
func (id FeedbackID) String() string {
	if id < 0 || int(id) >= len(feedbackNames) {
		return fmt.Sprintf("FeedbackID(%d)", int(id))
	}
	return feedbackNames[id]
}

// IsMutation reports whether the feedback records an issued request rather
// than a diagnostic
func (id FeedbackID) IsMutation() bool {
	switch id {
	case SetToInstall, ForcedInstall, SetToRemove, AddedRequirement, AddedConflict:
		return true
	}
	return false
}

// Feedback is one immutable entry of the diagnostic ledger
type Feedback struct {
	ID        FeedbackID
	Cap       core.Capability
	Repo      string
	Selected  *core.Object
	Installed *core.Object
}

func (f Feedback) String() string {
	s := f.ID.String()
	if !f.Cap.IsZero() {
		s += " " + f.Cap.String()
	}
	if f.Selected != nil {
		s += " selected=" + f.Selected.String()
	}
	return s
}

// IDs returns the feedback kinds of fbs in order
func IDs(fbs []Feedback) []FeedbackID {
	ids := make([]FeedbackID, 0, len(fbs))
	for _, fb := range fbs {
		ids = append(ids, fb.ID)
	}
	return ids
}

// Diagnostics returns the feedback kinds of fbs that are not mutation records
func Diagnostics(fbs []Feedback) []FeedbackID {
	ids := make([]FeedbackID, 0, len(fbs))
	for _, fb := range fbs {
		if !fb.ID.IsMutation() {
			ids = append(ids, fb.ID)
		}
	}
	return ids
}

// Contains reports whether any of fbs has the given kind
func Contains(fbs []Feedback, id FeedbackID) bool {
	for _, fb := range fbs {
		if fb.ID == id {
			return true
		}
	}
	return false
}
