package usecase

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/totegamma/confadmin/internal/domain"
)

const (
	dateLayout     = "2006-01-02"
	timeLayout     = "15:04"
	dateTimeLayout = dateLayout + " " + timeLayout
)

// ConferenceUsecase is the admin context: the conference list, which one is default or active,
// and edits to conference metadata, timeslots and rooms.
type ConferenceUsecase struct {
	gateway ConferenceGateway
	slots   SlotRemover
	trigger Trigger

	mu          sync.RWMutex
	conferences []domain.Conference
}

func NewConferenceUsecase(gateway ConferenceGateway, slots SlotRemover, trigger Trigger) *ConferenceUsecase {
	return &ConferenceUsecase{
		gateway: gateway,
		slots:   slots,
		trigger: trigger,
	}
}

// Refresh replaces the conference list with the backend's current one, bypassing the client cache.
func (uc *ConferenceUsecase) Refresh(ctx context.Context) error {
	return uc.load(ctx, true)
}

func (uc *ConferenceUsecase) load(ctx context.Context, fresh bool) error {
	ctx, span := tracer.Start(ctx, "Conference.Usecase.Refresh")
	defer span.End()

	conferences, err := uc.gateway.GetAllConferences(ctx, fresh)
	if err != nil {
		span.RecordError(err)
		slog.ErrorContext(ctx, "failed to fetch conferences", slog.String("error", err.Error()), slog.String("module", "conference"))
		return errors.Wrap(err, "ConferenceUsecase.Refresh")
	}

	uc.mu.Lock()
	uc.conferences = conferences
	uc.mu.Unlock()
	return nil
}

func (uc *ConferenceUsecase) Conferences() []domain.Conference {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return uc.conferences
}

func (uc *ConferenceUsecase) Conference(title string) (domain.Conference, error) {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	for _, c := range uc.conferences {
		if c.Title == title {
			return c, nil
		}
	}
	return domain.Conference{}, domain.NotFoundError{Resource: "conference"}
}

func (uc *ConferenceUsecase) DefaultConference() (domain.Conference, bool) {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	for _, c := range uc.conferences {
		if c.DefaultConf {
			return c, true
		}
	}
	return domain.Conference{}, false
}

// DefaultConferenceTitle is empty until a default conference is known.
func (uc *ConferenceUsecase) DefaultConferenceTitle() string {
	conf, _ := uc.DefaultConference()
	return conf.Title
}

// ActiveConference is the one last opened for editing, or the default one.
func (uc *ConferenceUsecase) ActiveConference() (domain.Conference, bool) {
	uc.mu.RLock()
	for _, c := range uc.conferences {
		if c.LastActive {
			uc.mu.RUnlock()
			return c, true
		}
	}
	uc.mu.RUnlock()
	return uc.DefaultConference()
}

// IsDuplicateTitle reports whether newTitle collides with another conference.
// The conference being renamed never collides with itself.
func IsDuplicateTitle(conferences []domain.Conference, newTitle, currentTitle string) bool {
	if newTitle == currentTitle {
		return false
	}
	for _, c := range conferences {
		if c.Title == currentTitle {
			continue
		}
		if domain.SameTitle(c.Title, newTitle) {
			return true
		}
	}
	return false
}

func (uc *ConferenceUsecase) UpdateConference(ctx context.Context, currentTitle, newTitle, venueName, venueAddress string) error {
	ctx, span := tracer.Start(ctx, "Conference.Usecase.UpdateConference")
	defer span.End()

	if len(newTitle) < 1 {
		return domain.ValidationError{Message: "Conference must have a title"}
	}
	if len(venueName) < 1 || len(venueAddress) < 1 {
		return domain.ValidationError{Message: "Enter a venue name and address for your conference"}
	}

	conferences, err := uc.gateway.GetAllConferences(ctx, true)
	if err != nil {
		span.RecordError(err)
		return errors.Wrap(err, "ConferenceUsecase.UpdateConference")
	}
	if IsDuplicateTitle(conferences, newTitle, currentTitle) {
		return domain.ValidationError{Message: "Conference title already exists, please choose another"}
	}

	if err := uc.gateway.UpdateConference(ctx, currentTitle, newTitle, venueName, venueAddress); err != nil {
		span.RecordError(err)
		slog.ErrorContext(ctx, "failed to update conference", slog.String("title", currentTitle), slog.String("error", err.Error()), slog.String("module", "conference"))
		return errors.Wrap(err, "ConferenceUsecase.UpdateConference")
	}

	uc.reloadAfterWrite(ctx, "UpdateConference")
	if newTitle != currentTitle {
		// speaker views are keyed on the default conference title
		if err := uc.RequestSpeakerUpdate(ctx); err != nil {
			slog.WarnContext(ctx, "failed to request speaker update", slog.String("error", err.Error()), slog.String("module", "conference"))
		}
	}
	return nil
}

func (uc *ConferenceUsecase) AddTimeslot(ctx context.Context, conferenceTitle, date, start, end string) (domain.Conference, error) {
	ctx, span := tracer.Start(ctx, "Conference.Usecase.AddTimeslot")
	defer span.End()

	startTime, startErr := parseClock(date, start)
	endTime, endErr := parseClock(date, end)
	switch {
	case startErr != nil:
		return domain.Conference{}, domain.ValidationError{Message: "Start time invalid"}
	case endErr != nil:
		return domain.Conference{}, domain.ValidationError{Message: "End time invalid"}
	case !endTime.After(startTime):
		return domain.Conference{}, domain.ValidationError{Message: "The end time must be after start time"}
	}

	conf, err := uc.gateway.AddTimeslot(ctx, conferenceTitle, date, start, end)
	if err != nil {
		span.RecordError(err)
		return domain.Conference{}, errors.Wrap(err, "ConferenceUsecase.AddTimeslot")
	}
	uc.replace(conf)
	return conf, nil
}

func (uc *ConferenceUsecase) DeleteTimeslot(ctx context.Context, conferenceTitle, date string, slot domain.TimeSlot) error {
	if err := uc.slots.DeleteTimeSlot(ctx, date, conferenceTitle, slot); err != nil {
		return err
	}
	uc.reloadAfterWrite(ctx, "DeleteTimeslot")
	return nil
}

func (uc *ConferenceUsecase) AddRoom(ctx context.Context, conferenceTitle, name string) (domain.Conference, error) {
	ctx, span := tracer.Start(ctx, "Conference.Usecase.AddRoom")
	defer span.End()

	if len(name) < 1 {
		return domain.Conference{}, domain.ValidationError{Message: "You must enter a room name"}
	}

	conf, err := uc.gateway.AddRoom(ctx, conferenceTitle, name)
	if err != nil {
		span.RecordError(err)
		return domain.Conference{}, errors.Wrap(err, "ConferenceUsecase.AddRoom")
	}
	uc.replace(conf)
	return conf, nil
}

func (uc *ConferenceUsecase) DeleteRoom(ctx context.Context, conferenceTitle, room string) error {
	if err := uc.slots.DeleteRoom(ctx, conferenceTitle, room); err != nil {
		return err
	}
	uc.reloadAfterWrite(ctx, "DeleteRoom")
	return nil
}

func (uc *ConferenceUsecase) MoveRoom(ctx context.Context, conferenceTitle, room, direction string) (domain.Conference, error) {
	ctx, span := tracer.Start(ctx, "Conference.Usecase.MoveRoom")
	defer span.End()

	if direction != domain.MoveUp && direction != domain.MoveDown {
		return domain.Conference{}, domain.ValidationError{Message: "Direction must be up or down"}
	}

	conf, err := uc.gateway.MoveRoom(ctx, conferenceTitle, room, direction)
	if err != nil {
		span.RecordError(err)
		return domain.Conference{}, errors.Wrap(err, "ConferenceUsecase.MoveRoom")
	}
	uc.replace(conf)
	return conf, nil
}

func (uc *ConferenceUsecase) ArchiveConference(ctx context.Context, conferenceTitle string, archive bool) error {
	ctx, span := tracer.Start(ctx, "Conference.Usecase.ArchiveConference")
	defer span.End()

	if err := uc.gateway.ArchiveConference(ctx, conferenceTitle, archive); err != nil {
		span.RecordError(err)
		return errors.Wrap(err, "ConferenceUsecase.ArchiveConference")
	}
	uc.reloadAfterWrite(ctx, "ArchiveConference")
	return nil
}

// ConferenceDates lists every day of the conference, both ends included.
func (uc *ConferenceUsecase) ConferenceDates(title string) ([]string, error) {
	conf, err := uc.Conference(title)
	if err != nil {
		return nil, err
	}
	return DateRange(conf.DateRange)
}

// DateRange expands a range into YYYY-MM-DD dates.
func DateRange(r domain.DateRange) ([]string, error) {
	start, err := time.Parse(dateLayout, r.Start)
	if err != nil {
		return nil, errors.Wrap(err, "invalid range start")
	}
	end, err := time.Parse(dateLayout, r.End)
	if err != nil {
		return nil, errors.Wrap(err, "invalid range end")
	}

	dates := make([]string, 0)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d.Format(dateLayout))
	}
	return dates, nil
}

// DaySlots returns the timeslots of one conference day ordered by end time.
func (uc *ConferenceUsecase) DaySlots(title, date string) ([]domain.TimeSlot, error) {
	conf, err := uc.Conference(title)
	if err != nil {
		return nil, err
	}
	day, ok := conf.Day(date)
	if !ok {
		return []domain.TimeSlot{}, nil
	}
	slots := slices.Clone(day.TimeSlots)
	if slots == nil {
		slots = []domain.TimeSlot{}
	}
	slices.SortStableFunc(slots, func(a, b domain.TimeSlot) int {
		ea, errA := time.Parse(timeLayout, a.End)
		eb, errB := time.Parse(timeLayout, b.End)
		if errA != nil || errB != nil {
			return strings.Compare(a.End, b.End)
		}
		return ea.Compare(eb)
	})
	return slots, nil
}

// RequestSpeakerUpdate asks every admin process to reload speakers.
func (uc *ConferenceUsecase) RequestSpeakerUpdate(ctx context.Context) error {
	if err := uc.trigger.PublishSpeakerUpdate(ctx); err != nil {
		return errors.Wrap(err, "ConferenceUsecase.RequestSpeakerUpdate")
	}
	return nil
}

// reloadAfterWrite refreshes after a write the backend already accepted.
// A failure only leaves the local list stale, so it is logged rather than returned.
// The client drops its conference cache on every write, so the cached path still hits the backend.
func (uc *ConferenceUsecase) reloadAfterWrite(ctx context.Context, op string) {
	if err := uc.load(ctx, false); err != nil {
		slog.WarnContext(ctx, "conference list stale after write", slog.String("op", op), slog.String("error", err.Error()), slog.String("module", "conference"))
	}
}

// parseClock accepts exactly HH:MM on date.
func parseClock(date, clock string) (time.Time, error) {
	if len(clock) != len(timeLayout) {
		return time.Time{}, errors.Errorf("invalid time %q", clock)
	}
	return time.Parse(dateTimeLayout, date+" "+clock)
}

func (uc *ConferenceUsecase) replace(conf domain.Conference) {
	if conf.Title == "" {
		return
	}
	uc.mu.Lock()
	defer uc.mu.Unlock()
	for i, c := range uc.conferences {
		if c.Title == conf.Title {
			next := slices.Clone(uc.conferences)
			next[i] = conf
			uc.conferences = next
			return
		}
	}
}
