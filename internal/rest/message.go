package rest

import (
	"context"
	"net/http"
	"time"

	"aiMarketingMsg/business/message"
	"aiMarketingMsg/domain"
	"aiMarketingMsg/pkg/apperror"
	"aiMarketingMsg/pkg/logger"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type MessageService interface {
	GenerateSegmentMessage(ctx context.Context, req message.GenerateSegmentRequest) (*message.GenerateResult, error)
	GenerateIndividualMessage(ctx context.Context, req message.GenerateIndividualRequest) (*message.GenerateResult, error)
	SaveMessage(ctx context.Context, userID uint, req message.SaveRequest) (*domain.Message, error)
	GetMessage(ctx context.Context, id uint64) (domain.Message, error)
	GetMessages(ctx context.Context, userID uint, msgType domain.MessageType, campaignID uint64, page, size int) (*message.MessageListResult, error)
}

type MessageHandler struct {
	messageService MessageService
	validate       *validator.Validate
	timeout        time.Duration
	genTimeout     time.Duration
}

func NewMessageHandler(messageService MessageService) *MessageHandler {
	return &MessageHandler{
		messageService: messageService,
		validate:       validator.New(),
		timeout:        10 * time.Second,
		// generation waits on the provider round trip
		genTimeout: 60 * time.Second,
	}
}

// GenerateSegmentMessage produces three message variants aimed at the
// customers matching a segment filter. Nothing is persisted until the
// marketer saves a variant.
func (h *MessageHandler) GenerateSegmentMessage(c echo.Context) error {
	var req message.GenerateSegmentRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("invalid request body", err)
		return apperror.Wrap(apperror.CodeValidation, "invalid request body", err)
	}

	if err := h.validate.Struct(&req); err != nil {
		logger.Error("failed to validate segment generation request", err)
		return apperror.Wrap(apperror.CodeValidation, err.Error(), err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.genTimeout)
	defer cancel()

	result, err := h.messageService.GenerateSegmentMessage(ctx, req)
	if err != nil {
		logger.Error("failed to generate segment message", err)
		return err
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(result))
}

// GenerateIndividualMessage produces three message variants aimed at one
// customer.
func (h *MessageHandler) GenerateIndividualMessage(c echo.Context) error {
	var req message.GenerateIndividualRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("invalid request body", err)
		return apperror.Wrap(apperror.CodeValidation, "invalid request body", err)
	}

	if err := h.validate.Struct(&req); err != nil {
		logger.Error("failed to validate individual generation request", err)
		return apperror.Wrap(apperror.CodeValidation, err.Error(), err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.genTimeout)
	defer cancel()

	result, err := h.messageService.GenerateIndividualMessage(ctx, req)
	if err != nil {
		logger.Error("failed to generate individual message", err)
		return err
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(result))
}

// SaveMessage persists the variant the marketer picked from a generated
// group.
func (h *MessageHandler) SaveMessage(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return apperror.New(apperror.CodeUnauthorized, "unauthorized")
	}

	var req message.SaveRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("invalid request body", err)
		return apperror.Wrap(apperror.CodeValidation, "invalid request body", err)
	}

	if err := h.validate.Struct(&req); err != nil {
		logger.Error("failed to validate save message request", err)
		return apperror.Wrap(apperror.CodeValidation, err.Error(), err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	saved, err := h.messageService.SaveMessage(ctx, userID, req)
	if err != nil {
		logger.Error("failed to save message", err)
		return err
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(saved))
}

func (h *MessageHandler) GetMessageByID(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	msg, err := h.messageService.GetMessage(ctx, id)
	if err != nil {
		logger.Error("failed to get message", err)
		return err
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(msg))
}

// GetAllMessages lists the caller's saved messages with optional ?type= and
// ?campaignId= filters, newest first.
func (h *MessageHandler) GetAllMessages(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return apperror.New(apperror.CodeUnauthorized, "unauthorized")
	}

	msgType := domain.MessageType(c.QueryParam("type"))
	if msgType != "" && msgType != domain.MessageSegment && msgType != domain.MessageIndividual {
		return apperror.New(apperror.CodeValidation, "invalid message type").
			WithDetail("type", string(msgType))
	}

	campaignID, err := parseQueryUint(c, "campaignId")
	if err != nil {
		return err
	}

	page := parseQueryInt(c, "page", 1)
	size := parseQueryInt(c, "size", 20)

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	result, err := h.messageService.GetMessages(ctx, userID, msgType, campaignID, page, size)
	if err != nil {
		logger.Error("failed to list messages", err)
		return err
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(result))
}
