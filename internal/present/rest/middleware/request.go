package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

var tracer = otel.Tracer("rest")

const RequestIDHeader = "X-Request-Id"

// RequestContext tags each request with an id, echoes it back and records it on a span.
func RequestContext(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := c.Request()
		ctx, span := tracer.Start(req.Context(), "Rest.Middleware.RequestContext")
		defer span.End()

		id := req.Header.Get(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		c.Response().Header().Set(RequestIDHeader, id)
		span.SetAttributes(
			attribute.String("RequestId", id),
			attribute.String("Route", c.Path()),
		)

		c.SetRequest(req.WithContext(ctx))

		err := next(c)
		if err != nil {
			span.RecordError(err)
		}
		return err
	}
}
