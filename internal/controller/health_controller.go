package controller

import (
	"time"

	"notes-api/internal/constant"
	"notes-api/internal/dto"

	"github.com/gofiber/fiber/v2"
)

type IHealthController interface {
	RegisterRoutes(r fiber.Router)
	Health(ctx *fiber.Ctx) error
}

type healthController struct {
	now func() time.Time
}

func NewHealthController() IHealthController {
	return &healthController{now: time.Now}
}

func (c *healthController) RegisterRoutes(r fiber.Router) {
	r.Get("/health", c.Health)
}

func (c *healthController) Health(ctx *fiber.Ctx) error {
	return ctx.JSON(dto.HealthResponse{
		Status:    constant.HealthStatusOK,
		Timestamp: c.now().UTC().Format(constant.TimestampLayout),
		Runtime:   constant.RuntimeName,
	})
}
