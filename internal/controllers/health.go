package controllers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

type HealthController struct {
	environment string
	now         func() time.Time
}

func NewHealthController(environment string) *HealthController {
	return &HealthController{environment: environment, now: time.Now}
}

func (c *HealthController) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"timestamp":   c.now().UTC().Format(time.RFC3339),
		"environment": c.environment,
	})
}
