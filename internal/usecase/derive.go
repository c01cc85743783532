package usecase

import (
	"slices"
	"strings"

	"github.com/totegamma/confadmin/internal/domain"
)

// AnnotateSessions returns copies of speakers whose Sessions list every session they present
// or co-present. Ids already on the record are kept first; each session is added at most once,
// even when a speaker is listed both as main presenter and co-presenter.
// A speaker that had no Sessions and matches nothing keeps a nil list.
func AnnotateSessions(speakers []domain.Speaker, sessions []domain.Session) []domain.Speaker {
	annotated := make([]domain.Speaker, 0, len(speakers))
	for _, speaker := range speakers {
		s := speaker.Clone()

		var ids []string
		seen := make(map[string]struct{}, len(s.Sessions))
		add := func(id string) {
			if _, ok := seen[id]; ok {
				return
			}
			seen[id] = struct{}{}
			ids = append(ids, id)
		}

		for _, id := range s.Sessions {
			add(id)
		}
		for _, session := range sessions {
			if session.Involves(s.ID) {
				add(session.ID)
			}
		}

		if ids == nil && s.Sessions != nil {
			ids = []string{}
		}
		s.Sessions = ids
		annotated = append(annotated, s)
	}
	return annotated
}

// SortByLastName orders speakers by last name, case-insensitively. Ties keep their input order.
func SortByLastName(speakers []domain.Speaker) {
	slices.SortStableFunc(speakers, func(a, b domain.Speaker) int {
		return strings.Compare(strings.ToLower(a.NameLast), strings.ToLower(b.NameLast))
	})
}

// DeriveViews runs the whole dashboard pipeline over one snapshot.
// The returned subsets share records with each other and must be treated as read-only.
func DeriveViews(speakers []domain.Speaker, sessions []domain.Session, defaultConf string) domain.SpeakerViews {
	all := AnnotateSessions(speakers, sessions)
	SortByLastName(all)

	index := make(map[string]domain.Session, len(sessions))
	for _, session := range sessions {
		index[session.ID] = session
	}

	inDefaultConf := func(session domain.Session) bool {
		return session.AssociatedConf == defaultConf
	}

	v := domain.SpeakerViews{
		DefaultConf:        defaultConf,
		SpeakersUnfiltered: all,
	}

	v.Admins, v.Speakers = partition(all, func(s domain.Speaker) bool { return s.Admin })
	v.ArchivedSpeakers, v.UnArchivedSpeakers = partition(v.Speakers, func(s domain.Speaker) bool { return s.Archived })
	v.ProfileCompleted, v.ProfileNotDone = partition(v.UnArchivedSpeakers, func(s domain.Speaker) bool { return s.ProfileComplete })

	v.SpeakersActive = filter(v.UnArchivedSpeakers, func(s domain.Speaker) bool {
		return hasSession(s, index, func(session domain.Session) bool {
			return inDefaultConf(session) && !session.Denied()
		})
	})

	v.ActiveProfileCompleted, v.ActiveProfileNotDone = partition(v.SpeakersActive, func(s domain.Speaker) bool { return s.ProfileComplete })

	v.ActiveScheduledNoResponseForm = filter(v.SpeakersActive, func(s domain.Speaker) bool {
		scheduled := hasSession(s, index, func(session domain.Session) bool {
			return inDefaultConf(session) && session.Scheduled()
		})
		return scheduled && !s.HasCompletedResponseForm()
	})

	v.ActiveApprovedNoTerms = filter(v.SpeakersActive, func(s domain.Speaker) bool {
		approved := hasSession(s, index, func(session domain.Session) bool {
			return inDefaultConf(session) && session.Approved()
		})
		if !approved {
			return false
		}
		arrangement, ok := s.ArrangementFor(defaultConf)
		if !ok {
			return false
		}
		return !arrangement.HasTerms()
	})

	return v
}

// hasSession is false for speakers without sessions. Ids missing from index are skipped.
func hasSession(s domain.Speaker, index map[string]domain.Session, pred func(domain.Session) bool) bool {
	for _, id := range s.Sessions {
		session, ok := index[id]
		if !ok {
			continue
		}
		if pred(session) {
			return true
		}
	}
	return false
}

func filter(speakers []domain.Speaker, pred func(domain.Speaker) bool) []domain.Speaker {
	out := make([]domain.Speaker, 0)
	for _, s := range speakers {
		if pred(s) {
			out = append(out, s)
		}
	}
	return out
}

func partition(speakers []domain.Speaker, pred func(domain.Speaker) bool) (matched, rest []domain.Speaker) {
	matched = make([]domain.Speaker, 0)
	rest = make([]domain.Speaker, 0)
	for _, s := range speakers {
		if pred(s) {
			matched = append(matched, s)
		} else {
			rest = append(rest, s)
		}
	}
	return matched, rest
}
