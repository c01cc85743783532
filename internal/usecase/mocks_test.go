package usecase

import (
	"context"
	"encoding/json"

	"github.com/totegamma/confadmin/internal/domain"
)

type mockSpeakerGateway struct {
	speakers []domain.Speaker
	err      error

	deleted  string
	notified bool
	updated  *domain.Speaker
	fetches  int
}

func (m *mockSpeakerGateway) GetAllSpeakers(ctx context.Context) ([]domain.Speaker, error) {
	m.fetches++
	if m.err != nil {
		return nil, m.err
	}
	return m.speakers, nil
}

func (m *mockSpeakerGateway) DeleteSpeaker(ctx context.Context, speakerID string) error {
	if m.err != nil {
		return m.err
	}
	m.deleted = speakerID
	kept := m.speakers[:0:0]
	for _, s := range m.speakers {
		if s.ID != speakerID {
			kept = append(kept, s)
		}
	}
	m.speakers = kept
	return nil
}

func (m *mockSpeakerGateway) UpdateSpeaker(ctx context.Context, speaker domain.Speaker, notify bool) (domain.Speaker, error) {
	if m.err != nil {
		return domain.Speaker{}, m.err
	}
	m.notified = notify
	if m.updated != nil {
		return *m.updated, nil
	}
	return speaker, nil
}

func (m *mockSpeakerGateway) SendToDropbox(ctx context.Context, filename, directory, name string) (json.RawMessage, error) {
	if m.err != nil {
		return nil, m.err
	}
	return json.RawMessage(`{"file":"` + filename + `"}`), nil
}

type mockSessionGateway struct {
	sessions   []domain.Session
	err        error
	message    string
	deletedDay string
	deletedRm  string
}

func (m *mockSessionGateway) GetAllSessions(ctx context.Context) ([]domain.Session, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.sessions, nil
}

func (m *mockSessionGateway) DeleteTimeslot(ctx context.Context, conferenceTitle, date string, slot domain.TimeSlot) (domain.BackendMessage, error) {
	if m.err != nil {
		return domain.BackendMessage{}, m.err
	}
	m.deletedDay = date
	return domain.BackendMessage{Message: m.message}, nil
}

func (m *mockSessionGateway) DeleteRoom(ctx context.Context, conferenceTitle, room string) (domain.BackendMessage, error) {
	if m.err != nil {
		return domain.BackendMessage{}, m.err
	}
	m.deletedRm = room
	return domain.BackendMessage{Message: m.message}, nil
}

type mockConferenceGateway struct {
	conferences []domain.Conference
	err         error

	updatedTo   string
	added       []string
	moved       string
	archived    *bool
	listErr     error
	freshFetch  int
	cachedFetch int
}

func (m *mockConferenceGateway) GetAllConferences(ctx context.Context, fresh bool) ([]domain.Conference, error) {
	if fresh {
		m.freshFetch++
	} else {
		m.cachedFetch++
	}
	if m.err != nil {
		return nil, m.err
	}
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.conferences, nil
}

func (m *mockConferenceGateway) UpdateConference(ctx context.Context, currentTitle, title, venueName, venueAddress string) error {
	if m.err != nil {
		return m.err
	}
	m.updatedTo = title
	for i, c := range m.conferences {
		if c.Title == currentTitle {
			m.conferences[i].Title = title
			m.conferences[i].VenueName = venueName
			m.conferences[i].VenueAddress = venueAddress
		}
	}
	return nil
}

func (m *mockConferenceGateway) AddTimeslot(ctx context.Context, conferenceTitle, date, start, end string) (domain.Conference, error) {
	if m.err != nil {
		return domain.Conference{}, m.err
	}
	m.added = append(m.added, start+"-"+end)
	return domain.Conference{
		Title: conferenceTitle,
		Days:  []domain.ConfDay{{Date: date, TimeSlots: []domain.TimeSlot{{Start: start, End: end}}}},
	}, nil
}

func (m *mockConferenceGateway) AddRoom(ctx context.Context, conferenceTitle, name string) (domain.Conference, error) {
	if m.err != nil {
		return domain.Conference{}, m.err
	}
	m.added = append(m.added, name)
	return domain.Conference{Title: conferenceTitle, Rooms: []string{name}}, nil
}

func (m *mockConferenceGateway) MoveRoom(ctx context.Context, conferenceTitle, room, direction string) (domain.Conference, error) {
	if m.err != nil {
		return domain.Conference{}, m.err
	}
	m.moved = room + ":" + direction
	return domain.Conference{Title: conferenceTitle}, nil
}

func (m *mockConferenceGateway) ArchiveConference(ctx context.Context, conferenceTitle string, archive bool) error {
	if m.err != nil {
		return m.err
	}
	m.archived = &archive
	return nil
}

type staticConference string

func (s staticConference) DefaultConferenceTitle() string { return string(s) }

type mockPublisher struct {
	published []domain.SpeakerViews
	err       error
}

func (m *mockPublisher) Publish(ctx context.Context, views domain.SpeakerViews) error {
	m.published = append(m.published, views)
	return m.err
}

type mockTrigger struct {
	published int
	err       error
}

func (m *mockTrigger) PublishSpeakerUpdate(ctx context.Context) error {
	if m.err != nil {
		return m.err
	}
	m.published++
	return nil
}

func (m *mockTrigger) Subscribe(ctx context.Context, handler func(ctx context.Context)) error {
	for i := 0; i < m.published; i++ {
		handler(ctx)
	}
	return nil
}

type mockSnapshotStore struct {
	views domain.SpeakerViews
	err   error
}

func (m *mockSnapshotStore) Load(ctx context.Context) (domain.SpeakerViews, error) {
	return m.views, m.err
}

func ids(speakers []domain.Speaker) []string {
	out := make([]string, 0, len(speakers))
	for _, s := range speakers {
		out = append(out, s.ID)
	}
	return out
}
