package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"dialog-messenger-api/dto/req"
	"dialog-messenger-api/dto/res"
	"dialog-messenger-api/usecase"
)

type UserHandler struct {
	usecase.UserUsecase
	*logrus.Logger
}

func NewUserHandler(userUsecase usecase.UserUsecase, logger *logrus.Logger) *UserHandler {
	return &UserHandler{UserUsecase: userUsecase, Logger: logger}
}

func (handler *UserHandler) Register(c *fiber.Ctx) error {
	payload := new(req.RegisterRequest)
	if err := c.BodyParser(payload); err != nil {
		return err
	}

	tokenResponse, err := handler.UserUsecase.Register(c.Context(), payload)
	if err != nil {
		handler.Logger.WithError(err).Error("failed to register user")
		return writeError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(tokenResponse)
}

func (handler *UserHandler) Login(c *fiber.Ctx) error {
	payload := new(req.LoginRequest)
	if err := c.BodyParser(payload); err != nil {
		return err
	}

	tokenResponse, err := handler.UserUsecase.Login(c.Context(), payload)
	if err != nil {
		handler.Logger.WithError(err).Error("failed to login")
		return writeError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(tokenResponse)
}

// Check returns the authenticated user's own profile.
func (handler *UserHandler) Check(c *fiber.Ctx) error {
	userResponse, err := handler.UserUsecase.GetByID(c.Context(), requesterID(c))
	if err != nil {
		handler.Logger.WithError(err).Error("failed to load current user")
		return writeError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(userResponse)
}

func (handler *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	payload := new(req.EditProfileRequest)
	if err := c.BodyParser(payload); err != nil {
		return err
	}

	userResponse, err := handler.UserUsecase.UpdateProfile(c.Context(), requesterID(c), payload)
	if err != nil {
		handler.Logger.WithError(err).Error("failed to update profile")
		return writeError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(userResponse)
}

func (handler *UserHandler) Search(c *fiber.Ctx) error {
	userResponse, err := handler.UserUsecase.SearchByUserName(c.Context(), c.Query("userName"))
	if err != nil {
		return writeError(c, err)
	}
	if userResponse == nil {
		return c.Status(fiber.StatusOK).JSON(nil)
	}
	return c.Status(fiber.StatusOK).JSON(userResponse)
}

func (handler *UserHandler) GetUsersInfo(c *fiber.Ctx) error {
	payload := new(req.UsersInfoRequest)
	if err := c.BodyParser(payload); err != nil {
		return err
	}

	userResponses, err := handler.UserUsecase.GetUsersInfo(c.Context(), payload.ChatIDs)
	if err != nil {
		return writeError(c, err)
	}
	if userResponses == nil {
		userResponses = []res.UserResponse{}
	}
	return c.Status(fiber.StatusOK).JSON(userResponses)
}
