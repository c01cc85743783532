package usecase

import (
	"context"
	"log/slog"
	"sync"

	"github.com/pkg/errors"

	"github.com/totegamma/confadmin/internal/domain"
)

type SessionUsecase struct {
	gateway SessionGateway

	mu       sync.RWMutex
	sessions []domain.Session
	index    map[string]int
}

func NewSessionUsecase(gateway SessionGateway) *SessionUsecase {
	return &SessionUsecase{
		gateway: gateway,
		index:   map[string]int{},
	}
}

// Refresh replaces the session snapshot with the backend's list.
func (uc *SessionUsecase) Refresh(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "Session.Usecase.Refresh")
	defer span.End()

	sessions, err := uc.gateway.GetAllSessions(ctx)
	if err != nil {
		span.RecordError(err)
		slog.ErrorContext(ctx, "failed to fetch sessions", slog.String("error", err.Error()), slog.String("module", "session"))
		return errors.Wrap(err, "SessionUsecase.Refresh")
	}

	index := make(map[string]int, len(sessions))
	for i, s := range sessions {
		index[s.ID] = i
	}

	uc.mu.Lock()
	uc.sessions = sessions
	uc.index = index
	uc.mu.Unlock()

	slog.DebugContext(ctx, "sessions refreshed", slog.Int("count", len(sessions)), slog.String("module", "session"))
	return nil
}

// Sessions returns the current snapshot. Callers must not modify it.
func (uc *SessionUsecase) Sessions() []domain.Session {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return uc.sessions
}

func (uc *SessionUsecase) GetSession(id string) (domain.Session, bool) {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	i, ok := uc.index[id]
	if !ok {
		return domain.Session{}, false
	}
	return uc.sessions[i], true
}

// GetSpeakerSessions lists the sessions speakerID presents or co-presents.
func (uc *SessionUsecase) GetSpeakerSessions(speakerID string) []domain.Session {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	result := make([]domain.Session, 0)
	for _, s := range uc.sessions {
		if s.Involves(speakerID) {
			result = append(result, s)
		}
	}
	return result
}

func (uc *SessionUsecase) DeleteTimeSlot(ctx context.Context, date, conferenceTitle string, slot domain.TimeSlot) error {
	ctx, span := tracer.Start(ctx, "Session.Usecase.DeleteTimeSlot")
	defer span.End()

	msg, err := uc.gateway.DeleteTimeslot(ctx, conferenceTitle, date, slot)
	if err != nil {
		span.RecordError(err)
		return errors.Wrap(err, "SessionUsecase.DeleteTimeSlot")
	}
	if msg.Message == domain.MessageSlotHasSessions {
		return domain.ErrSlotHasSessions
	}
	return nil
}

func (uc *SessionUsecase) DeleteRoom(ctx context.Context, conferenceTitle, room string) error {
	ctx, span := tracer.Start(ctx, "Session.Usecase.DeleteRoom")
	defer span.End()

	msg, err := uc.gateway.DeleteRoom(ctx, conferenceTitle, room)
	if err != nil {
		span.RecordError(err)
		return errors.Wrap(err, "SessionUsecase.DeleteRoom")
	}
	if msg.Message == domain.MessageRoomHasSessions {
		return domain.ErrRoomHasSessions
	}
	return nil
}
