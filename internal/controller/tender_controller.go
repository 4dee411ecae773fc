package controller

import (
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"licitaciones-ai-be/internal/dto"
	"licitaciones-ai-be/internal/pkg/serverutils"
	"licitaciones-ai-be/internal/service"
)

type ITenderController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	UpdateStatus(ctx *fiber.Ctx) error
	Analyze(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	Discover(ctx *fiber.Ctx) error
	Scan(ctx *fiber.Ctx) error
}

type tenderController struct {
	tenderService    service.ITenderService
	discoveryService service.IDiscoveryService
}

func NewTenderController(
	tenderService service.ITenderService,
	discoveryService service.IDiscoveryService,
) ITenderController {
	return &tenderController{
		tenderService:    tenderService,
		discoveryService: discoveryService,
	}
}

func (c *tenderController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/tender/v1")
	// Fixed paths before the :id wildcard.
	h.Post("discover", c.Discover)
	h.Post("scan", c.Scan)
	h.Get("", c.List)
	h.Post("", c.Create)
	h.Get(":id", c.Show)
	h.Patch(":id/status", c.UpdateStatus)
	h.Post(":id/analyze", c.Analyze)
	h.Delete(":id", c.Delete)
}

func (c *tenderController) List(ctx *fiber.Ctx) error {
	var req dto.ListTendersRequest
	if err := ctx.QueryParser(&req); err != nil {
		return serverutils.NewBadRequest("invalid query parameters")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.tenderService.List(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list tenders", res))
}

func (c *tenderController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateTenderRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.NewBadRequest("invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	summary, err := formFile(ctx, "summary")
	if err != nil {
		return err
	}
	admin, err := formFile(ctx, "admin")
	if err != nil {
		return err
	}
	tech, err := formFile(ctx, "tech")
	if err != nil {
		return err
	}

	res, err := c.tenderService.Create(ctx.Context(), &req, summary, admin, tech)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create tender", res))
}

func (c *tenderController) Show(ctx *fiber.Ctx) error {
	id, err := parseIdParam(ctx)
	if err != nil {
		return err
	}

	res, err := c.tenderService.Show(ctx.Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show tender", res))
}

func (c *tenderController) UpdateStatus(ctx *fiber.Ctx) error {
	id, err := parseIdParam(ctx)
	if err != nil {
		return err
	}

	var req dto.UpdateStatusRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.NewBadRequest("invalid request body")
	}
	req.Id = id

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.tenderService.UpdateStatus(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update tender status", res))
}

func (c *tenderController) Analyze(ctx *fiber.Ctx) error {
	id, err := parseIdParam(ctx)
	if err != nil {
		return err
	}

	res, err := c.tenderService.Analyze(ctx.Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success analyze tender", res))
}

func (c *tenderController) Delete(ctx *fiber.Ctx) error {
	id, err := parseIdParam(ctx)
	if err != nil {
		return err
	}

	if err := c.tenderService.Delete(ctx.Context(), id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete tender", nil))
}

func (c *tenderController) Discover(ctx *fiber.Ctx) error {
	file, err := formFile(ctx, "summary")
	if err != nil {
		return err
	}
	if file == nil {
		return serverutils.NewBadRequest("summary file is required")
	}

	res, err := c.discoveryService.Discover(ctx.Context(), file)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success discover tender documents", res))
}

func (c *tenderController) Scan(ctx *fiber.Ctx) error {
	var req dto.ScanRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.NewBadRequest("invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.discoveryService.Scan(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success scan tender page", res))
}

func parseIdParam(ctx *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return uuid.Nil, serverutils.NewBadRequest("invalid tender id")
	}
	return id, nil
}

// formFile reads one optional multipart file into memory. An absent field is
// not an error.
func formFile(ctx *fiber.Ctx, field string) (*dto.UploadedFile, error) {
	header, err := ctx.FormFile(field)
	if err != nil {
		return nil, nil
	}

	f, err := header.Open()
	if err != nil {
		return nil, serverutils.NewBadRequest("unreadable file in field " + field)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, serverutils.NewBadRequest("unreadable file in field " + field)
	}

	return &dto.UploadedFile{
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}
