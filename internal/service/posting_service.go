package service

import (
	"github.com/rs/zerolog"

	"github.com/noah-isme/ta-apply-api/internal/dto"
	"github.com/noah-isme/ta-apply-api/internal/repository"
)

// PostingService exposes the read-only posting catalogue.
type PostingService interface {
	List() []dto.PostingResponse
	Get(id string) (dto.PostingResponse, error)
}

type postingService struct {
	postings repository.PostingRepository
	logger   zerolog.Logger
}

// NewPostingService constructs a PostingService instance.
func NewPostingService(postings repository.PostingRepository, logger zerolog.Logger) PostingService {
	return &postingService{
		postings: postings,
		logger:   logger.With().Str("component", "posting_service").Logger(),
	}
}

func (s *postingService) List() []dto.PostingResponse {
	return dto.NewPostingResponseSlice(s.postings.List())
}

func (s *postingService) Get(id string) (dto.PostingResponse, error) {
	posting, err := s.postings.GetByID(id)
	if err != nil {
		return dto.PostingResponse{}, err
	}
	return dto.NewPostingResponse(posting), nil
}
