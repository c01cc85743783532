package usecase

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/totegamma/confadmin/internal/domain"
)

// SpeakerUsecase holds the speaker store and the views derived from it.
// Every refresh or update rederives all views from scratch and publishes them.
type SpeakerUsecase struct {
	gateway   SpeakerGateway
	sessions  SessionSource
	conf      ConferenceContext
	publisher ViewPublisher
	now       func() time.Time

	mu         sync.RWMutex
	unfiltered []domain.Speaker
	views      domain.SpeakerViews
}

func NewSpeakerUsecase(
	gateway SpeakerGateway,
	sessions SessionSource,
	conf ConferenceContext,
	publisher ViewPublisher,
) *SpeakerUsecase {
	return &SpeakerUsecase{
		gateway:   gateway,
		sessions:  sessions,
		conf:      conf,
		publisher: publisher,
		now:       time.Now,
	}
}

// Refresh fetches every speaker and rederives the views.
func (uc *SpeakerUsecase) Refresh(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "Speaker.Usecase.Refresh")
	defer span.End()

	speakers, err := uc.gateway.GetAllSpeakers(ctx)
	if err != nil {
		span.RecordError(err)
		slog.ErrorContext(ctx, "failed to fetch speakers", slog.String("error", err.Error()), slog.String("module", "speaker"))
		return errors.Wrap(err, "SpeakerUsecase.Refresh")
	}

	uc.derive(ctx, speakers)
	return nil
}

// Restore seeds the views from a snapshot published earlier, unless a derive pass already ran.
func (uc *SpeakerUsecase) Restore(ctx context.Context, store ViewSnapshotStore) error {
	views, err := store.Load(ctx)
	if err != nil {
		return errors.Wrap(err, "SpeakerUsecase.Restore")
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()
	if !uc.views.GeneratedAt.IsZero() {
		return nil
	}
	uc.views = views
	uc.unfiltered = views.SpeakersUnfiltered
	return nil
}

func (uc *SpeakerUsecase) derive(ctx context.Context, speakers []domain.Speaker) {
	defaultConf := uc.conf.DefaultConferenceTitle()
	views := DeriveViews(speakers, uc.sessions.Sessions(), defaultConf)
	views.GeneratedAt = uc.now().UTC()

	uc.mu.Lock()
	uc.unfiltered = views.SpeakersUnfiltered
	uc.views = views
	uc.mu.Unlock()

	slog.DebugContext(
		ctx, "speaker views derived",
		slog.String("defaultConf", defaultConf),
		slog.Int("speakers", len(views.SpeakersUnfiltered)),
		slog.Int("active", len(views.SpeakersActive)),
		slog.String("module", "speaker"),
	)

	if uc.publisher == nil {
		return
	}
	if err := uc.publisher.Publish(ctx, views); err != nil {
		slog.WarnContext(ctx, "failed to publish speaker views", slog.String("error", err.Error()), slog.String("module", "speaker"))
	}
}

// Views returns the last derived view set.
func (uc *SpeakerUsecase) Views() domain.SpeakerViews {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return uc.views
}

// View returns one named subset of the last derived view set.
func (uc *SpeakerUsecase) View(name string) ([]domain.Speaker, error) {
	views := uc.Views()
	subset, ok := views.Subset(name)
	if !ok {
		return nil, domain.NotFoundError{Resource: "view " + name}
	}
	return subset, nil
}

func (uc *SpeakerUsecase) GetSpeaker(id string) (domain.Speaker, error) {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	for _, s := range uc.unfiltered {
		if s.ID == id {
			return s, nil
		}
	}
	return domain.Speaker{}, domain.NotFoundError{Resource: "speaker"}
}

func (uc *SpeakerUsecase) FindSpeakerByEmail(email string) (domain.Speaker, error) {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	for _, s := range uc.unfiltered {
		if s.Email == email {
			return s, nil
		}
	}
	return domain.Speaker{}, domain.NotFoundError{Resource: "speaker"}
}

// DeleteSpeaker removes the speaker on the backend and reloads the whole store.
func (uc *SpeakerUsecase) DeleteSpeaker(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "Speaker.Usecase.DeleteSpeaker")
	defer span.End()

	if err := uc.gateway.DeleteSpeaker(ctx, id); err != nil {
		span.RecordError(err)
		slog.ErrorContext(ctx, "failed to delete speaker", slog.String("id", id), slog.String("error", err.Error()), slog.String("module", "speaker"))
		return errors.Wrap(err, "SpeakerUsecase.DeleteSpeaker")
	}
	return uc.Refresh(ctx)
}

// UpdateSpeaker saves speaker on the backend and patches the local store with the returned record
// until the next refresh.
func (uc *SpeakerUsecase) UpdateSpeaker(ctx context.Context, speaker domain.Speaker, notify bool) (domain.Speaker, error) {
	ctx, span := tracer.Start(ctx, "Speaker.Usecase.UpdateSpeaker")
	defer span.End()

	updated, err := uc.gateway.UpdateSpeaker(ctx, speaker, notify)
	if err != nil {
		span.RecordError(err)
		slog.ErrorContext(ctx, "failed to update speaker", slog.String("id", speaker.ID), slog.String("error", err.Error()), slog.String("module", "speaker"))
		return domain.Speaker{}, errors.Wrap(err, "SpeakerUsecase.UpdateSpeaker")
	}

	uc.mu.RLock()
	speakers := make([]domain.Speaker, 0, len(uc.unfiltered)+1)
	replaced := false
	for _, s := range uc.unfiltered {
		if s.ID == updated.ID {
			speakers = append(speakers, updated)
			replaced = true
			continue
		}
		speakers = append(speakers, s)
	}
	uc.mu.RUnlock()
	if !replaced {
		speakers = append(speakers, updated)
	}

	uc.derive(ctx, speakers)
	return updated, nil
}

// GetSpeakerSessions resolves session ids; unknown ids are skipped.
func (uc *SpeakerUsecase) GetSpeakerSessions(ids []string) []domain.Session {
	result := make([]domain.Session, 0, len(ids))
	for _, id := range ids {
		if session, ok := uc.sessions.GetSession(id); ok {
			result = append(result, session)
		}
	}
	return result
}

// GetSpeakerList resolves a session's presenter ids to speaker records.
// An unknown main presenter stays nil; unknown co-presenters are dropped.
func (uc *SpeakerUsecase) GetSpeakerList(ids domain.SpeakerIDList) domain.SpeakerList {
	list := domain.SpeakerList{CoPresenters: make([]domain.Speaker, 0, len(ids.CoPresenters))}
	if main, err := uc.GetSpeaker(ids.MainPresenter); err == nil {
		list.MainPresenter = &main
	}
	for _, id := range ids.CoPresenters {
		if co, err := uc.GetSpeaker(id); err == nil {
			list.CoPresenters = append(list.CoPresenters, co)
		}
	}
	return list
}

// SendToDropbox forwards a file transfer request and returns the backend reply untouched.
func (uc *SpeakerUsecase) SendToDropbox(ctx context.Context, filename, directory, name string) (json.RawMessage, error) {
	ctx, span := tracer.Start(ctx, "Speaker.Usecase.SendToDropbox")
	defer span.End()

	result, err := uc.gateway.SendToDropbox(ctx, filename, directory, name)
	if err != nil {
		span.RecordError(err)
		slog.ErrorContext(ctx, "dropbox transfer failed", slog.String("file", filename), slog.String("error", err.Error()), slog.String("module", "speaker"))
		return nil, errors.Wrap(err, "SpeakerUsecase.SendToDropbox")
	}
	return result, nil
}
