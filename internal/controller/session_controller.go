package controller

import (
	"device-support-be/internal/dto"
	"device-support-be/internal/pkg/serverutils"
	"device-support-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ISessionController interface {
	RegisterRoutes(r fiber.Router)
	Show(ctx *fiber.Ctx) error
	Put(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type sessionController struct {
	sessionService service.ISessionService
}

func NewSessionController(sessionService service.ISessionService) ISessionController {
	return &sessionController{
		sessionService: sessionService,
	}
}

func (c *sessionController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/session/v1")
	h.Get(":token", c.Show)
	h.Put(":token", c.Put)
	h.Delete(":token", c.Delete)
}

func (c *sessionController) Show(ctx *fiber.Ctx) error {
	token := ctx.Params("token")

	res, err := c.sessionService.Show(ctx.Context(), token)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show session", res))
}

func (c *sessionController) Put(ctx *fiber.Ctx) error {
	var req dto.PutSessionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.Token = ctx.Params("token")

	err := serverutils.ValidateRequest(req)
	if err != nil {
		return err
	}

	res, err := c.sessionService.Put(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success store session", res))
}

func (c *sessionController) Delete(ctx *fiber.Ctx) error {
	token := ctx.Params("token")

	if err := c.sessionService.Delete(ctx.Context(), token); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete session", nil))
}
