package handler

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/ta-apply-api/internal/dto"
	"github.com/noah-isme/ta-apply-api/internal/middleware"
	"github.com/noah-isme/ta-apply-api/internal/repository"
	"github.com/noah-isme/ta-apply-api/internal/service"
	"github.com/noah-isme/ta-apply-api/internal/utils"
)

const professorHeader = "X-Professor"

// ReviewHandler manages the professor-facing review endpoints. The acting
// professor is named in the X-Professor header; this is the prototype's role
// switch, not authentication.
type ReviewHandler struct {
	service   service.ReviewService
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewReviewHandler builds a review handler instance.
func NewReviewHandler(service service.ReviewService, validator *validator.Validate, logger zerolog.Logger) *ReviewHandler {
	return &ReviewHandler{
		service:   service,
		validator: validator,
		logger:    logger.With().Str("component", "review_handler").Logger(),
	}
}

// Register attaches the routes to the provided router group.
func (h *ReviewHandler) Register(router fiber.Router) {
	router.Get("/posting", h.selectedPosting)
	router.Put("/posting", h.selectPosting)
	router.Get("/queue", h.queue)
	router.Patch("/applications/:id", h.advanceStatus)
	router.Patch("/postings/:id/closed", h.setClosed)
}

func (h *ReviewHandler) selectedPosting(c *fiber.Ctx) error {
	posting, err := h.service.SelectedPosting(c.UserContext(), middleware.GetSessionID(c))
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "selected posting retrieved", posting)
}

func (h *ReviewHandler) selectPosting(c *fiber.Ctx) error {
	var payload dto.SelectPostingRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := h.validator.Struct(payload); err != nil {
		return h.handleError(c, err)
	}

	posting, err := h.service.SelectPosting(c.UserContext(), middleware.GetSessionID(c), payload.PostingID)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "posting selected", posting)
}

func (h *ReviewHandler) queue(c *fiber.Ctx) error {
	queue, err := h.service.Queue(c.UserContext(), middleware.GetSessionID(c))
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "review queue retrieved", queue)
}

func (h *ReviewHandler) advanceStatus(c *fiber.Ctx) error {
	professor, err := h.professor(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.AdvanceStatusRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := h.validator.Struct(payload); err != nil {
		return h.handleError(c, err)
	}

	application, err := h.service.AdvanceStatus(c.UserContext(), middleware.GetSessionID(c), professor, c.Params("id"), payload.Status)
	if err != nil {
		if errors.Is(err, service.ErrApplicationNotFound) {
			// Advancing an unknown record is a defensive no-op.
			return utils.SendSuccess(c, "no matching application", nil)
		}
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "application status advanced", application)
}

func (h *ReviewHandler) setClosed(c *fiber.Ctx) error {
	professor, err := h.professor(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.SetClosedRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := h.validator.Struct(payload); err != nil {
		return h.handleError(c, err)
	}

	posting, err := h.service.SetPostingClosed(professor, c.Params("id"), *payload.Closed)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "posting availability changed", posting)
}

func (h *ReviewHandler) professor(c *fiber.Ctx) (string, error) {
	professor := strings.TrimSpace(c.Get(professorHeader))
	if professor == "" {
		return "", errors.New("professor identity required")
	}
	return professor, nil
}

func (h *ReviewHandler) handleError(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	switch {
	case errors.As(err, &validationErrors):
		return utils.SendError(c, fiber.StatusBadRequest, validationErrors.Error())
	case errors.Is(err, repository.ErrPostingNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "posting not found")
	case errors.Is(err, service.ErrInvalidDecisionStatus):
		return utils.SendError(c, fiber.StatusBadRequest, "invalid decision status")
	case errors.Is(err, service.ErrNotPostingOwner):
		return utils.SendError(c, fiber.StatusForbidden, "posting belongs to another professor")
	default:
		h.logger.Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
