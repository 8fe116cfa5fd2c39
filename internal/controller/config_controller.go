package controller

import (
	"device-support-be/internal/pkg/serverutils"
	"device-support-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IConfigController interface {
	RegisterRoutes(r fiber.Router)
	ListCategories(ctx *fiber.Ctx) error
	ListPrompts(ctx *fiber.Ctx) error
	Stats(ctx *fiber.Ctx) error
}

type configController struct {
	configService service.IConfigService
}

func NewConfigController(configService service.IConfigService) IConfigController {
	return &configController{
		configService: configService,
	}
}

func (c *configController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/config/v1")
	h.Get("categories", c.ListCategories)
	h.Get("prompts", c.ListPrompts)
	h.Get("stats", c.Stats)
}

func (c *configController) ListCategories(ctx *fiber.Ctx) error {
	res, err := c.configService.ListCategories(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list categories", res))
}

func (c *configController) ListPrompts(ctx *fiber.Ctx) error {
	res, err := c.configService.ListPrompts(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list analysis prompts", res))
}

func (c *configController) Stats(ctx *fiber.Ctx) error {
	res, err := c.configService.Stats(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get stats", res))
}
