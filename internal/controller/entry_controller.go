package controller

import (
	"errors"

	"journal-be/internal/dto"
	"journal-be/internal/pkg/serverutils"
	"journal-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IEntryController interface {
	RegisterRoutes(r fiber.Router, jwtMiddleware fiber.Handler)
	List(ctx *fiber.Ctx) error
	Search(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type entryController struct {
	entryService service.IEntryService
}

func NewEntryController(entryService service.IEntryService) IEntryController {
	return &entryController{
		entryService: entryService,
	}
}

func (c *entryController) RegisterRoutes(r fiber.Router, jwtMiddleware fiber.Handler) {
	h := r.Group("/entry/v1")
	h.Use(jwtMiddleware)
	h.Get("search", c.Search)
	h.Get("", c.List)
	h.Post("", c.Create)
	h.Get(":id", c.Show)
	h.Put(":id", c.Update)
	h.Delete(":id", c.Delete)
}

func currentUserId(ctx *fiber.Ctx) uuid.UUID {
	userIdStr, _ := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)
	return userId
}

func entryError(ctx *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrNotAuthenticated):
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(fiber.StatusUnauthorized, err.Error()))
	case errors.Is(err, service.ErrTitleContentRequired), errors.Is(err, service.ErrNothingToUpdate):
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(fiber.StatusBadRequest, err.Error()))
	case errors.Is(err, service.ErrEntryNotFound):
		return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(fiber.StatusNotFound, err.Error()))
	default:
		return err
	}
}

func (c *entryController) List(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	res, err := c.entryService.List(ctx.Context(), userId)
	if err != nil {
		return entryError(ctx, err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list entries", res))
}

func (c *entryController) Search(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	query := ctx.Query("q")
	tag := ctx.Query("tag")

	res, err := c.entryService.Search(ctx.Context(), userId, query, tag)
	if err != nil {
		return entryError(ctx, err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success search entries", res))
}

func (c *entryController) Show(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	idParam := ctx.Params("id")
	id, err := uuid.Parse(idParam)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(fiber.StatusBadRequest, "Invalid entry id"))
	}

	res, err := c.entryService.Show(ctx.Context(), userId, id)
	if err != nil {
		return entryError(ctx, err)
	}

	// A missing or foreign entry is a successful null payload, so the
	// caller can tell "no such entry" apart from a failed request.
	return ctx.JSON(serverutils.SuccessResponse("Success show entry", res))
}

func (c *entryController) Create(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	var req dto.CreateEntryRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.entryService.Create(ctx.Context(), userId, &req)
	if err != nil {
		return entryError(ctx, err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success create entry", res))
}

func (c *entryController) Update(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	idParam := ctx.Params("id")
	id, err := uuid.Parse(idParam)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(fiber.StatusBadRequest, "Invalid entry id"))
	}

	var req dto.UpdateEntryRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.Id = id

	res, err := c.entryService.Update(ctx.Context(), userId, &req)
	if err != nil {
		return entryError(ctx, err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update entry", res))
}

func (c *entryController) Delete(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	idParam := ctx.Params("id")
	id, err := uuid.Parse(idParam)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(fiber.StatusBadRequest, "Invalid entry id"))
	}

	res, err := c.entryService.Delete(ctx.Context(), userId, id)
	if err != nil {
		return entryError(ctx, err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success delete entry", res))
}
