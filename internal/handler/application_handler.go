package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/ta-apply-api/internal/dto"
	"github.com/noah-isme/ta-apply-api/internal/middleware"
	"github.com/noah-isme/ta-apply-api/internal/repository"
	"github.com/noah-isme/ta-apply-api/internal/service"
	"github.com/noah-isme/ta-apply-api/internal/utils"
)

// ApplicationHandler manages the student-facing application endpoints.
type ApplicationHandler struct {
	service   service.ApplicationService
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewApplicationHandler builds an application handler instance.
func NewApplicationHandler(service service.ApplicationService, validator *validator.Validate, logger zerolog.Logger) *ApplicationHandler {
	return &ApplicationHandler{
		service:   service,
		validator: validator,
		logger:    logger.With().Str("component", "application_handler").Logger(),
	}
}

// Register attaches the routes to the provided router group.
func (h *ApplicationHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Post("", h.submit)
	router.Post("/:id/withdraw", h.withdraw)
	router.Delete("/:id", h.remove)
}

func (h *ApplicationHandler) list(c *fiber.Ctx) error {
	applications, err := h.service.List(c.UserContext(), middleware.GetSessionID(c))
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "applications retrieved", applications)
}

func (h *ApplicationHandler) submit(c *fiber.Ctx) error {
	var payload dto.SubmitRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := h.validator.Struct(payload); err != nil {
		return h.handleError(c, err)
	}

	decision := service.Decision{Accepted: payload.SaveAsDefault}
	application, err := h.service.SubmitOrUpdate(c.UserContext(), middleware.GetSessionID(c), payload, decision)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "application saved", application)
}

func (h *ApplicationHandler) withdraw(c *fiber.Ctx) error {
	application, err := h.service.Withdraw(c.UserContext(), middleware.GetSessionID(c), c.Params("id"))
	if err != nil {
		if errors.Is(err, service.ErrApplicationNotFound) {
			// Withdrawing an unknown record is a defensive no-op.
			return utils.SendSuccess(c, "no matching application", nil)
		}
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "application withdrawn", application)
}

func (h *ApplicationHandler) remove(c *fiber.Ctx) error {
	if err := h.service.DeleteWithdrawn(c.UserContext(), middleware.GetSessionID(c), c.Params("id")); err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "application deleted", nil)
}

func (h *ApplicationHandler) handleError(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	var rejection service.ValidationError
	switch {
	case errors.As(err, &rejection):
		return utils.SendError(c, fiber.StatusBadRequest, rejection.Reason)
	case errors.As(err, &validationErrors):
		return utils.SendError(c, fiber.StatusBadRequest, validationErrors.Error())
	case errors.Is(err, repository.ErrPostingNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "posting not found")
	case errors.Is(err, service.ErrPostingClosed):
		return utils.SendError(c, fiber.StatusConflict, "posting is closed to new applications")
	case errors.Is(err, service.ErrApplicationNotWithdrawn):
		return utils.SendError(c, fiber.StatusConflict, "only withdrawn applications can be deleted")
	default:
		h.logger.Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
