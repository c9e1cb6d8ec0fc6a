package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/ta-apply-api/internal/repository"
	"github.com/noah-isme/ta-apply-api/internal/service"
	"github.com/noah-isme/ta-apply-api/internal/utils"
)

// PostingHandler serves the read-only posting catalogue.
type PostingHandler struct {
	service service.PostingService
	logger  zerolog.Logger
}

// NewPostingHandler builds a posting handler instance.
func NewPostingHandler(service service.PostingService, logger zerolog.Logger) *PostingHandler {
	return &PostingHandler{
		service: service,
		logger:  logger.With().Str("component", "posting_handler").Logger(),
	}
}

// Register attaches the routes to the provided router group.
func (h *PostingHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Get("/:id", h.get)
}

func (h *PostingHandler) list(c *fiber.Ctx) error {
	return utils.SendSuccess(c, "postings retrieved", h.service.List())
}

func (h *PostingHandler) get(c *fiber.Ctx) error {
	posting, err := h.service.Get(c.Params("id"))
	if err != nil {
		if errors.Is(err, repository.ErrPostingNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "posting not found")
		}
		h.logger.Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}

	return utils.SendSuccess(c, "posting retrieved", posting)
}
