package handlers

import (
	"context"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/eduforge/lms/internal/mykafka"
)

func paramID(c echo.Context, name string) (uint, error) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

// publish sends a domain event best-effort; the request never fails because
// the broker is down. Producer may be nil (tests, local runs without kafka).
func publish(c echo.Context, p *mykafka.Producer, topic, key string, event map[string]interface{}) {
	if p == nil {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := p.PublishEvent(ctx, topic, key, event); err != nil {
		c.Logger().Errorf("Kafka publish error: %v", err)
	}
}
