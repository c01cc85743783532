package rest

import (
	"net/url"

	"github.com/labstack/echo/v4"

	"github.com/totegamma/confadmin/internal/domain"
	"github.com/totegamma/confadmin/internal/present/rest/presenter"
)

type updateConferenceRequest struct {
	Title        string `json:"title"`
	VenueName    string `json:"venueName"`
	VenueAddress string `json:"venueAddress"`
}

type timeslotRequest struct {
	Date  string `json:"date"`
	Start string `json:"start"`
	End   string `json:"end"`
	ID    string `json:"_id,omitempty"`
}

type roomRequest struct {
	Name string `json:"name"`
}

type moveRoomRequest struct {
	Direction string `json:"direction"`
}

type archiveRequest struct {
	Archive bool `json:"archive"`
}

// pathParam returns an unescaped path parameter; titles and room names may contain spaces.
func pathParam(c echo.Context, name string) string {
	raw := c.Param(name)
	v, err := url.PathUnescape(raw)
	if err != nil {
		return raw
	}
	return v
}

func (h *Handler) handleConferences(c echo.Context) error {
	return presenter.OK(c, h.conference.Conferences())
}

func (h *Handler) handleDefaultConference(c echo.Context) error {
	conf, ok := h.conference.DefaultConference()
	if !ok {
		return presenter.NotFound(c, "no default conference")
	}
	return presenter.OK(c, conf)
}

func (h *Handler) handleActiveConference(c echo.Context) error {
	conf, ok := h.conference.ActiveConference()
	if !ok {
		return presenter.NotFound(c, "no active conference")
	}
	return presenter.OK(c, conf)
}

func (h *Handler) handleUpdateConference(c echo.Context) error {
	ctx := c.Request().Context()

	var req updateConferenceRequest
	if err := c.Bind(&req); err != nil {
		return presenter.BadRequest(c, err)
	}

	current := pathParam(c, "title")
	err := h.conference.UpdateConference(ctx, current, req.Title, req.VenueName, req.VenueAddress)
	if err != nil {
		return presenter.Error(c, err)
	}
	conf, err := h.conference.Conference(req.Title)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, conf)
}

func (h *Handler) handleConferenceDates(c echo.Context) error {
	dates, err := h.conference.ConferenceDates(pathParam(c, "title"))
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, dates)
}

func (h *Handler) handleDaySlots(c echo.Context) error {
	slots, err := h.conference.DaySlots(pathParam(c, "title"), c.Param("date"))
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, slots)
}

func (h *Handler) handleAddTimeslot(c echo.Context) error {
	ctx := c.Request().Context()

	var req timeslotRequest
	if err := c.Bind(&req); err != nil {
		return presenter.BadRequest(c, err)
	}

	conf, err := h.conference.AddTimeslot(ctx, pathParam(c, "title"), req.Date, req.Start, req.End)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, conf)
}

func (h *Handler) handleDeleteTimeslot(c echo.Context) error {
	ctx := c.Request().Context()

	var req timeslotRequest
	if err := c.Bind(&req); err != nil {
		return presenter.BadRequest(c, err)
	}

	slot := domain.TimeSlot{ID: req.ID, Start: req.Start, End: req.End}
	if err := h.conference.DeleteTimeslot(ctx, pathParam(c, "title"), req.Date, slot); err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, echo.Map{"status": "ok"})
}

func (h *Handler) handleAddRoom(c echo.Context) error {
	ctx := c.Request().Context()

	var req roomRequest
	if err := c.Bind(&req); err != nil {
		return presenter.BadRequest(c, err)
	}

	conf, err := h.conference.AddRoom(ctx, pathParam(c, "title"), req.Name)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, conf)
}

func (h *Handler) handleDeleteRoom(c echo.Context) error {
	ctx := c.Request().Context()
	if err := h.conference.DeleteRoom(ctx, pathParam(c, "title"), pathParam(c, "room")); err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, echo.Map{"status": "ok"})
}

func (h *Handler) handleMoveRoom(c echo.Context) error {
	ctx := c.Request().Context()

	var req moveRoomRequest
	if err := c.Bind(&req); err != nil {
		return presenter.BadRequest(c, err)
	}

	conf, err := h.conference.MoveRoom(ctx, pathParam(c, "title"), pathParam(c, "room"), req.Direction)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, conf)
}

func (h *Handler) handleArchiveConference(c echo.Context) error {
	ctx := c.Request().Context()

	var req archiveRequest
	if err := c.Bind(&req); err != nil {
		return presenter.BadRequest(c, err)
	}

	if err := h.conference.ArchiveConference(ctx, pathParam(c, "title"), req.Archive); err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, echo.Map{"status": "ok"})
}
