package domain

// Speaker is a person known to the conference backend, admins included.
type Speaker struct {
	ID              string        `json:"_id"`
	NameFirst       string        `json:"nameFirst"`
	NameLast        string        `json:"nameLast"`
	Email           string        `json:"email"`
	Admin           bool          `json:"admin"`
	Archived        bool          `json:"archived"`
	ProfileComplete bool          `json:"profileComplete"`
	Sessions        []string      `json:"sessions"`
	ResponseForm    *ResponseForm `json:"responseForm,omitempty"`
	Arrangements    []Arrangement `json:"arrangements,omitempty"`
}

// ResponseForm is the logistics questionnaire a speaker fills in once scheduled.
type ResponseForm struct {
	Completed bool `json:"completed"`
}

// Arrangement holds per-conference logistics for a speaker.
type Arrangement struct {
	AssociatedConf string `json:"associatedConf"`
	LodgingAmount  Amount `json:"lodgingAmount"`
	TravelAmount   Amount `json:"travelAmount"`
	Honorarium     Amount `json:"honorarium"`
}

// HasTerms reports whether lodging, travel and honorarium are all filled in.
func (a Arrangement) HasTerms() bool {
	return !a.LodgingAmount.IsMissing() && !a.TravelAmount.IsMissing() && !a.Honorarium.IsMissing()
}

// Clone returns a copy that shares no slices with s.
func (s Speaker) Clone() Speaker {
	c := s
	if s.Sessions != nil {
		c.Sessions = append(make([]string, 0, len(s.Sessions)), s.Sessions...)
	}
	if s.Arrangements != nil {
		c.Arrangements = append(make([]Arrangement, 0, len(s.Arrangements)), s.Arrangements...)
	}
	if s.ResponseForm != nil {
		rf := *s.ResponseForm
		c.ResponseForm = &rf
	}
	return c
}

// HasCompletedResponseForm is false when the form is absent.
func (s Speaker) HasCompletedResponseForm() bool {
	return s.ResponseForm != nil && s.ResponseForm.Completed
}

// ArrangementFor returns the first arrangement recorded for conf.
func (s Speaker) ArrangementFor(conf string) (Arrangement, bool) {
	for _, a := range s.Arrangements {
		if a.AssociatedConf == conf {
			return a, true
		}
	}
	return Arrangement{}, false
}

// SpeakerIDList is the presenter block stored on a session.
type SpeakerIDList struct {
	MainPresenter string   `json:"mainPresenter"`
	CoPresenters  []string `json:"coPresenters"`
}

// Involves reports whether speakerID presents or co-presents.
func (l SpeakerIDList) Involves(speakerID string) bool {
	if speakerID == "" {
		return false
	}
	if l.MainPresenter == speakerID {
		return true
	}
	for _, id := range l.CoPresenters {
		if id == speakerID {
			return true
		}
	}
	return false
}

// SpeakerList is a SpeakerIDList resolved to speaker records.
type SpeakerList struct {
	MainPresenter *Speaker  `json:"mainPresenter"`
	CoPresenters  []Speaker `json:"coPresenters"`
}
