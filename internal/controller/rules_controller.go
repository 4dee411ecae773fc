package controller

import (
	"github.com/gofiber/fiber/v2"

	"licitaciones-ai-be/internal/dto"
	"licitaciones-ai-be/internal/pkg/serverutils"
	"licitaciones-ai-be/internal/service"
)

type IRulesController interface {
	RegisterRoutes(r fiber.Router)
	Show(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
}

type rulesController struct {
	rulesService service.IRulesService
}

func NewRulesController(rulesService service.IRulesService) IRulesController {
	return &rulesController{
		rulesService: rulesService,
	}
}

func (c *rulesController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/rules/v1")
	h.Get("", c.Show)
	h.Put("", c.Update)
}

func (c *rulesController) Show(ctx *fiber.Ctx) error {
	res, err := c.rulesService.Get(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show business rules", res))
}

func (c *rulesController) Update(ctx *fiber.Ctx) error {
	var req dto.UpdateRulesRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.NewBadRequest("invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.rulesService.Update(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update business rules", res))
}
