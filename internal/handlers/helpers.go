package handlers

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/rentnest/rentnest/internal/events"
	"github.com/rentnest/rentnest/internal/logging"
	"github.com/rentnest/rentnest/internal/middleware/auth"
)

func identity(c echo.Context) (userID, role string) {
	userID, _ = c.Get(auth.ContextUserID).(string)
	role, _ = c.Get(auth.ContextRole).(string)
	return userID, role
}

// publish fires a domain event with a short deadline; delivery failures
// are logged, never surfaced to the client.
func publish(c echo.Context, p *events.Producer, topic, key string, event map[string]interface{}) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := p.PublishEvent(ctx, topic, key, event); err != nil {
		logging.FromContext(c.Request().Context()).Error("kafka_publish_error", "topic", topic, "error", err)
	}
}
