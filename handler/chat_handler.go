package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"dialog-messenger-api/dto/req"
	"dialog-messenger-api/entity"
	"dialog-messenger-api/usecase"
)

type ChatHandler struct {
	usecase.DialogUsecase
	usecase.MessageUsecase
	usecase.ReactionUsecase
	usecase.BlockUsecase
	*logrus.Logger
	UploadDir string
}

func NewChatHandler(
	dialogUsecase usecase.DialogUsecase,
	messageUsecase usecase.MessageUsecase,
	reactionUsecase usecase.ReactionUsecase,
	blockUsecase usecase.BlockUsecase,
	logger *logrus.Logger,
	uploadDir string,
) *ChatHandler {
	return &ChatHandler{
		DialogUsecase:   dialogUsecase,
		MessageUsecase:  messageUsecase,
		ReactionUsecase: reactionUsecase,
		BlockUsecase:    blockUsecase,
		Logger:          logger,
		UploadDir:       uploadDir,
	}
}

func (handler *ChatHandler) NewChat(c *fiber.Ctx) error {
	payload := new(req.CreateDialogRequest)
	if err := c.BodyParser(payload); err != nil {
		return err
	}

	dialog, err := handler.DialogUsecase.CreateDialog(c.Context(), requesterID(c), payload)
	if err != nil {
		handler.Logger.WithError(err).Error("failed to create chat")
		return writeError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(dialog)
}

func (handler *ChatHandler) DeleteChat(c *fiber.Ctx) error {
	payload := new(req.DeleteDialogRequest)
	if err := c.BodyParser(payload); err != nil {
		return err
	}

	if err := handler.DialogUsecase.DeleteDialog(c.Context(), requesterID(c), payload.ChatID); err != nil {
		handler.Logger.WithError(err).Error("failed to delete chat")
		return writeError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "chat deleted"})
}

func (handler *ChatHandler) GetChats(c *fiber.Ctx) error {
	dialogs, err := handler.DialogUsecase.GetDialogs(c.Context(), requesterID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(dialogs)
}

func (handler *ChatHandler) GetPartnerInfo(c *fiber.Ctx) error {
	partner, err := handler.DialogUsecase.GetPartnerInfo(c.Context(), requesterID(c), c.Query("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(partner)
}

func (handler *ChatHandler) GetMessage(c *fiber.Ctx) error {
	messages, err := handler.MessageUsecase.GetMessages(c.Context(), requesterID(c), c.Query("dialogId"))
	if err != nil {
		return writeError(c, err)
	}
	if messages == nil {
		messages = []entity.Message{}
	}
	return c.Status(fiber.StatusOK).JSON(messages)
}

func (handler *ChatHandler) LastedMessage(c *fiber.Ctx) error {
	payload := new(req.LastedMessageRequest)
	if err := c.BodyParser(payload); err != nil {
		return err
	}

	messages, err := handler.MessageUsecase.GetLatestMessages(c.Context(), requesterID(c), payload.ChatIDs)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(messages)
}

func (handler *ChatHandler) DeleteMessage(c *fiber.Ctx) error {
	payload := new(req.DeleteMessageRequest)
	if err := c.BodyParser(payload); err != nil {
		return err
	}

	if err := handler.MessageUsecase.DeleteMessage(c.Context(), requesterID(c), payload.ID); err != nil {
		handler.Logger.WithError(err).Error("failed to delete message")
		return writeError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"success": true})
}

func (handler *ChatHandler) ReadMessage(c *fiber.Ctx) error {
	payload := new(req.ReadMessageRequest)
	if err := c.BodyParser(payload); err != nil {
		return err
	}

	if err := handler.MessageUsecase.MarkRead(c.Context(), requesterID(c), payload.DialogID, payload.UserID); err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"success": true})
}

func (handler *ChatHandler) GetReaction(c *fiber.Ctx) error {
	reactions, err := handler.ReactionUsecase.GetReactions(c.Context(), requesterID(c), c.Query("dialogId"), c.Query("messageId"))
	if err != nil {
		return writeError(c, err)
	}
	if reactions == nil {
		reactions = []entity.MessageReaction{}
	}
	return c.Status(fiber.StatusOK).JSON(reactions)
}

func (handler *ChatHandler) BlockedChat(c *fiber.Ctx) error {
	payload := new(req.BlockDialogRequest)
	if err := c.BodyParser(payload); err != nil {
		return err
	}

	block, err := handler.BlockUsecase.Block(c.Context(), requesterID(c), payload)
	if err != nil {
		handler.Logger.WithError(err).Error("failed to block chat")
		return writeError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(block)
}

func (handler *ChatHandler) UnBlockChat(c *fiber.Ctx) error {
	payload := new(req.BlockDialogRequest)
	if err := c.BodyParser(payload); err != nil {
		return err
	}

	if err := handler.BlockUsecase.Unblock(c.Context(), requesterID(c), payload); err != nil {
		handler.Logger.WithError(err).Error("failed to unblock chat")
		return writeError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"success": true})
}

func (handler *ChatHandler) CheckBlocked(c *fiber.Ctx) error {
	payload := new(req.BlockDialogRequest)
	if err := c.BodyParser(payload); err != nil {
		return err
	}

	status, err := handler.BlockUsecase.CheckBlocked(c.Context(), requesterID(c), payload)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(status)
}
