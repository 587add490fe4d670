package controller

import (
	"errors"

	"journal-be/internal/dto"
	"journal-be/internal/pkg/serverutils"
	"journal-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IUserController interface {
	RegisterRoutes(r fiber.Router, jwtMiddleware fiber.Handler)
	GetProfile(ctx *fiber.Ctx) error
	UpdateProfile(ctx *fiber.Ctx) error
	DeleteAccount(ctx *fiber.Ctx) error
}

type userController struct {
	userService service.IUserService
}

func NewUserController(userService service.IUserService) IUserController {
	return &userController{
		userService: userService,
	}
}

func (c *userController) RegisterRoutes(r fiber.Router, jwtMiddleware fiber.Handler) {
	h := r.Group("/user")
	h.Use(jwtMiddleware)
	h.Get("/profile", c.GetProfile)
	h.Put("/profile", c.UpdateProfile)
	h.Delete("/account", c.DeleteAccount)
}

func userError(ctx *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrNotAuthenticated):
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(fiber.StatusUnauthorized, err.Error()))
	case err.Error() == "user not found":
		return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(fiber.StatusNotFound, err.Error()))
	default:
		return err
	}
}

func (c *userController) GetProfile(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	res, err := c.userService.GetProfile(ctx.Context(), userId)
	if err != nil {
		return userError(ctx, err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get profile", res))
}

func (c *userController) UpdateProfile(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	var req dto.UpdateProfileRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.userService.UpdateProfile(ctx.Context(), userId, &req)
	if err != nil {
		return userError(ctx, err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update profile", res))
}

func (c *userController) DeleteAccount(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	if err := c.userService.DeleteAccount(ctx.Context(), userId); err != nil {
		return userError(ctx, err)
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Account deleted", nil))
}
