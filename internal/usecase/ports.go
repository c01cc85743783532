package usecase

import (
	"context"
	"encoding/json"

	"github.com/totegamma/confadmin/internal/domain"
)

// SpeakerGateway is the backend API for speaker records.
type SpeakerGateway interface {
	GetAllSpeakers(ctx context.Context) ([]domain.Speaker, error)
	DeleteSpeaker(ctx context.Context, speakerID string) error
	UpdateSpeaker(ctx context.Context, speaker domain.Speaker, notify bool) (domain.Speaker, error)
	SendToDropbox(ctx context.Context, filename, directory, name string) (json.RawMessage, error)
}

// SessionGateway is the backend API for sessions and the slots/rooms they occupy.
type SessionGateway interface {
	GetAllSessions(ctx context.Context) ([]domain.Session, error)
	DeleteTimeslot(ctx context.Context, conferenceTitle, date string, slot domain.TimeSlot) (domain.BackendMessage, error)
	DeleteRoom(ctx context.Context, conferenceTitle, room string) (domain.BackendMessage, error)
}

// ConferenceGateway is the backend API for conference metadata.
type ConferenceGateway interface {
	GetAllConferences(ctx context.Context, fresh bool) ([]domain.Conference, error)
	UpdateConference(ctx context.Context, currentTitle, title, venueName, venueAddress string) error
	AddTimeslot(ctx context.Context, conferenceTitle, date, start, end string) (domain.Conference, error)
	AddRoom(ctx context.Context, conferenceTitle, name string) (domain.Conference, error)
	MoveRoom(ctx context.Context, conferenceTitle, room, direction string) (domain.Conference, error)
	ArchiveConference(ctx context.Context, conferenceTitle string, archive bool) error
}

// SessionSource exposes the current session snapshot.
type SessionSource interface {
	Sessions() []domain.Session
	GetSession(id string) (domain.Session, bool)
}

// ConferenceContext exposes the conference the dashboard is scoped to.
type ConferenceContext interface {
	DefaultConferenceTitle() string
}

// SlotRemover deletes timeslots and rooms, refusing when sessions occupy them.
type SlotRemover interface {
	DeleteTimeSlot(ctx context.Context, date, conferenceTitle string, slot domain.TimeSlot) error
	DeleteRoom(ctx context.Context, conferenceTitle, room string) error
}

// ViewPublisher receives every derived view set.
type ViewPublisher interface {
	Publish(ctx context.Context, views domain.SpeakerViews) error
}

// ViewSnapshotStore returns the last view set published by any process.
type ViewSnapshotStore interface {
	Load(ctx context.Context) (domain.SpeakerViews, error)
}

// Trigger carries the "speaker update requested" signal.
type Trigger interface {
	PublishSpeakerUpdate(ctx context.Context) error
	Subscribe(ctx context.Context, handler func(ctx context.Context)) error
}

// Refresher reloads a store from the backend.
type Refresher interface {
	Refresh(ctx context.Context) error
}
