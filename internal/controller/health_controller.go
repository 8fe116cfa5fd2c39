package controller

import (
	"device-support-be/internal/pkg/serverutils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type IHealthController interface {
	RegisterRoutes(r fiber.Router)
	Check(ctx *fiber.Ctx) error
}

type healthController struct {
	db *gorm.DB
}

func NewHealthController(db *gorm.DB) IHealthController {
	return &healthController{db: db}
}

func (c *healthController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/health/v1")
	h.Get("", c.Check)
}

func (c *healthController) Check(ctx *fiber.Ctx) error {
	status := fiber.Map{"server": "ok", "database": "ok"}

	sqlDB, err := c.db.DB()
	if err != nil {
		status["database"] = "unavailable"
	} else if err := sqlDB.PingContext(ctx.Context()); err != nil {
		status["database"] = "unavailable"
	}

	return ctx.JSON(serverutils.SuccessResponse("Success health check", status))
}
