package rest

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/totegamma/confadmin/internal/domain"
	"github.com/totegamma/confadmin/internal/present/rest/presenter"
	"github.com/totegamma/confadmin/internal/utils"
)

func (h *Handler) handleViews(c echo.Context) error {
	return presenter.OK(c, h.speaker.Views())
}

// handleViewCounts reports subset sizes keyed by view name, in pipeline order.
func (h *Handler) handleViewCounts(c echo.Context) error {
	views := h.speaker.Views()
	counts := utils.NewOrderedKVMap(domain.ViewNames, func(name string) int {
		subset, _ := views.Subset(name)
		return len(subset)
	})
	return presenter.OK(c, counts)
}

func (h *Handler) handleView(c echo.Context) error {
	subset, err := h.speaker.View(c.Param("name"))
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, subset)
}

func (h *Handler) handleGetSpeaker(c echo.Context) error {
	speaker, err := h.speaker.GetSpeaker(c.Param("id"))
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, speaker)
}

func (h *Handler) handleFindSpeaker(c echo.Context) error {
	email := c.QueryParam("email")
	if email == "" {
		return presenter.BadRequestMessage(c, "email is required")
	}
	speaker, err := h.speaker.FindSpeakerByEmail(email)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, speaker)
}

func (h *Handler) handleSpeakerSessions(c echo.Context) error {
	speaker, err := h.speaker.GetSpeaker(c.Param("id"))
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, h.speaker.GetSpeakerSessions(speaker.Sessions))
}

func (h *Handler) handleSpeakerList(c echo.Context) error {
	var ids domain.SpeakerIDList
	if err := c.Bind(&ids); err != nil {
		return presenter.BadRequest(c, err)
	}
	return presenter.OK(c, h.speaker.GetSpeakerList(ids))
}

func (h *Handler) handleUpdateSpeaker(c echo.Context) error {
	ctx := c.Request().Context()

	notify := false
	if raw := c.QueryParam("notify"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			return presenter.BadRequestMessage(c, "invalid notify parameter")
		}
		notify = parsed
	}

	var speaker domain.Speaker
	if err := c.Bind(&speaker); err != nil {
		return presenter.BadRequest(c, err)
	}

	updated, err := h.speaker.UpdateSpeaker(ctx, speaker, notify)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, updated)
}

func (h *Handler) handleDeleteSpeaker(c echo.Context) error {
	ctx := c.Request().Context()
	if err := h.speaker.DeleteSpeaker(ctx, c.Param("id")); err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, echo.Map{"status": "ok"})
}

func (h *Handler) handleRequestSpeakerUpdate(c echo.Context) error {
	ctx := c.Request().Context()
	if err := h.conference.RequestSpeakerUpdate(ctx); err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, echo.Map{"status": "ok"})
}

func (h *Handler) handleDropbox(c echo.Context) error {
	ctx := c.Request().Context()
	result, err := h.speaker.SendToDropbox(ctx, c.Param("filename"), c.Param("directory"), c.Param("name"))
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, result)
}
