package rest

import (
	"github.com/labstack/echo/v4"

	"github.com/totegamma/confadmin/internal/present/rest/presenter"
	"github.com/totegamma/confadmin/internal/service"
	"github.com/totegamma/confadmin/internal/usecase"
)

type Handler struct {
	speaker     *usecase.SpeakerUsecase
	session     *usecase.SessionUsecase
	conference  *usecase.ConferenceUsecase
	broadcaster *service.Broadcaster
}

func NewHandler(
	speaker *usecase.SpeakerUsecase,
	session *usecase.SessionUsecase,
	conference *usecase.ConferenceUsecase,
	broadcaster *service.Broadcaster,
) *Handler {
	return &Handler{
		speaker:     speaker,
		session:     session,
		conference:  conference,
		broadcaster: broadcaster,
	}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", h.handleHealth)

	api := e.Group("/api")

	api.GET("/speakers", h.handleFindSpeaker)
	api.GET("/speakers/views", h.handleViews)
	api.GET("/speakers/views/counts", h.handleViewCounts)
	api.GET("/speakers/views/:name", h.handleView)
	api.POST("/speakers/refresh", h.handleRequestSpeakerUpdate)
	api.POST("/speakers/update", h.handleUpdateSpeaker)
	api.POST("/speakers/list", h.handleSpeakerList)
	api.GET("/speakers/:id", h.handleGetSpeaker)
	api.GET("/speakers/:id/sessions", h.handleSpeakerSessions)
	api.POST("/speakers/:id/delete", h.handleDeleteSpeaker)
	api.GET("/dropbox/:filename/:directory/:name", h.handleDropbox)

	api.GET("/conferences", h.handleConferences)
	api.GET("/conferences/default", h.handleDefaultConference)
	api.GET("/conferences/active", h.handleActiveConference)
	api.PUT("/conferences/:title", h.handleUpdateConference)
	api.GET("/conferences/:title/dates", h.handleConferenceDates)
	api.GET("/conferences/:title/days/:date/slots", h.handleDaySlots)
	api.POST("/conferences/:title/timeslots", h.handleAddTimeslot)
	api.DELETE("/conferences/:title/timeslots", h.handleDeleteTimeslot)
	api.POST("/conferences/:title/rooms", h.handleAddRoom)
	api.DELETE("/conferences/:title/rooms/:room", h.handleDeleteRoom)
	api.POST("/conferences/:title/rooms/:room/move", h.handleMoveRoom)
	api.POST("/conferences/:title/archive", h.handleArchiveConference)

	e.GET("/realtime", h.handleRealtime)
}

func (h *Handler) handleHealth(c echo.Context) error {
	views := h.speaker.Views()
	return presenter.OK(c, echo.Map{
		"status":      "ok",
		"generatedAt": views.GeneratedAt,
		"defaultConf": h.conference.DefaultConferenceTitle(),
		"sessions":    len(h.session.Sessions()),
		"subscribers": h.broadcaster.SubscriberCount(),
	})
}
