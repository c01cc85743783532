package presenter

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel/trace"

	"github.com/totegamma/confadmin/internal/domain"
)

type errorResponse struct {
	Error string `json:"error"`
}

// OK wraps a successful response.
func OK(c echo.Context, payload any) error {
	return c.JSON(http.StatusOK, payload)
}

func BadRequest(c echo.Context, err error) error {
	slog.DebugContext(c.Request().Context(), "bad request", slog.String("error", err.Error()), slog.String("module", "rest"))
	return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
}

func BadRequestMessage(c echo.Context, msg string) error {
	slog.DebugContext(c.Request().Context(), "bad request", slog.String("error", msg), slog.String("module", "rest"))
	return c.JSON(http.StatusBadRequest, errorResponse{Error: msg})
}

func NotFound(c echo.Context, msg string) error {
	return c.JSON(http.StatusNotFound, errorResponse{Error: msg})
}

func Conflict(c echo.Context, msg string) error {
	return c.JSON(http.StatusConflict, errorResponse{Error: msg})
}

func InternalError(c echo.Context, err error) error {
	trace.SpanFromContext(c.Request().Context()).RecordError(err)
	slog.ErrorContext(c.Request().Context(), "internal error", slog.String("error", err.Error()), slog.String("module", "rest"))
	return c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
}

// Error picks the response for an error returned by a usecase.
func Error(c echo.Context, err error) error {
	var validation domain.ValidationError
	var notFound domain.NotFoundError
	switch {
	case errors.As(err, &validation):
		return BadRequestMessage(c, validation.Message)
	case errors.As(err, &notFound):
		return NotFound(c, notFound.Error())
	case errors.Is(err, domain.ErrSlotHasSessions):
		return Conflict(c, "This slot has scheduled sessions! Remove them first to delete it.")
	case errors.Is(err, domain.ErrRoomHasSessions):
		return Conflict(c, "This room has scheduled sessions! Remove them first to delete it.")
	default:
		return InternalError(c, err)
	}
}
