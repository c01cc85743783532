package domain

import "time"

// View names, in pipeline order.
const (
	ViewSpeakersUnfiltered            = "speakersUnfiltered"
	ViewAdmins                        = "admins"
	ViewSpeakers                      = "speakers"
	ViewArchivedSpeakers              = "archivedSpeakers"
	ViewUnArchivedSpeakers            = "unArchivedSpeakers"
	ViewProfileCompleted              = "profileCompleted"
	ViewProfileNotDone                = "profileNotDone"
	ViewSpeakersActive                = "speakersActive"
	ViewActiveProfileCompleted        = "activeProfileCompleted"
	ViewActiveProfileNotDone          = "activeProfileNotDone"
	ViewActiveScheduledNoResponseForm = "activeScheduledNoResponseForm"
	ViewActiveApprovedNoTerms         = "activeApprovedNoTerms"
)

// ViewNames lists every named subset in the order the pipeline produces them.
var ViewNames = []string{
	ViewSpeakersUnfiltered,
	ViewAdmins,
	ViewSpeakers,
	ViewArchivedSpeakers,
	ViewUnArchivedSpeakers,
	ViewProfileCompleted,
	ViewProfileNotDone,
	ViewSpeakersActive,
	ViewActiveProfileCompleted,
	ViewActiveProfileNotDone,
	ViewActiveScheduledNoResponseForm,
	ViewActiveApprovedNoTerms,
}

// SpeakerViews is one derive pass over a speaker snapshot.
type SpeakerViews struct {
	DefaultConf string    `json:"defaultConf"`
	GeneratedAt time.Time `json:"generatedAt"`

	SpeakersUnfiltered []Speaker `json:"speakersUnfiltered"`
	Admins             []Speaker `json:"admins"`
	Speakers           []Speaker `json:"speakers"`
	ArchivedSpeakers   []Speaker `json:"archivedSpeakers"`
	UnArchivedSpeakers []Speaker `json:"unArchivedSpeakers"`
	ProfileCompleted   []Speaker `json:"profileCompleted"`
	ProfileNotDone     []Speaker `json:"profileNotDone"`

	SpeakersActive                []Speaker `json:"speakersActive"`
	ActiveProfileCompleted        []Speaker `json:"activeProfileCompleted"`
	ActiveProfileNotDone          []Speaker `json:"activeProfileNotDone"`
	ActiveScheduledNoResponseForm []Speaker `json:"activeScheduledNoResponseForm"`
	ActiveApprovedNoTerms         []Speaker `json:"activeApprovedNoTerms"`
}

// Subset returns the named subset.
func (v SpeakerViews) Subset(name string) ([]Speaker, bool) {
	switch name {
	case ViewSpeakersUnfiltered:
		return v.SpeakersUnfiltered, true
	case ViewAdmins:
		return v.Admins, true
	case ViewSpeakers:
		return v.Speakers, true
	case ViewArchivedSpeakers:
		return v.ArchivedSpeakers, true
	case ViewUnArchivedSpeakers:
		return v.UnArchivedSpeakers, true
	case ViewProfileCompleted:
		return v.ProfileCompleted, true
	case ViewProfileNotDone:
		return v.ProfileNotDone, true
	case ViewSpeakersActive:
		return v.SpeakersActive, true
	case ViewActiveProfileCompleted:
		return v.ActiveProfileCompleted, true
	case ViewActiveProfileNotDone:
		return v.ActiveProfileNotDone, true
	case ViewActiveScheduledNoResponseForm:
		return v.ActiveScheduledNoResponseForm, true
	case ViewActiveApprovedNoTerms:
		return v.ActiveApprovedNoTerms, true
	default:
		return nil, false
	}
}
