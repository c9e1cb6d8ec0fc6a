package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/noah-isme/ta-apply-api/internal/dto"
	"github.com/noah-isme/ta-apply-api/internal/models"
	"github.com/noah-isme/ta-apply-api/internal/observability"
	"github.com/noah-isme/ta-apply-api/internal/repository"
)

var (
	// ErrNotPostingOwner indicates the acting professor does not own the
	// posting the application belongs to.
	ErrNotPostingOwner = errors.New("posting belongs to another professor")
	// ErrInvalidDecisionStatus indicates the requested status is not a valid
	// review decision.
	ErrInvalidDecisionStatus = errors.New("invalid decision status")
)

// ReviewService owns the professor side of the workflow: binding the review
// view to a posting, listing its applications, advancing statuses and
// opening or closing the posting. Decisions may jump to any of the four
// review statuses in any order; the workflow is deliberately permissive.
type ReviewService interface {
	SelectPosting(ctx context.Context, sessionID, postingID string) (dto.PostingResponse, error)
	SelectedPosting(ctx context.Context, sessionID string) (dto.PostingResponse, error)
	Queue(ctx context.Context, sessionID string) (dto.ReviewQueueResponse, error)
	AdvanceStatus(ctx context.Context, sessionID, professor, applicationID, status string) (dto.ApplicationResponse, error)
	SetPostingClosed(professor, postingID string, closed bool) (dto.PostingResponse, error)
}

type reviewService struct {
	sessions repository.SessionRepository
	postings repository.PostingRepository
	logger   zerolog.Logger
}

// NewReviewService constructs a ReviewService instance.
func NewReviewService(sessions repository.SessionRepository, postings repository.PostingRepository, logger zerolog.Logger) ReviewService {
	return &reviewService{
		sessions: sessions,
		postings: postings,
		logger:   logger.With().Str("component", "review_service").Logger(),
	}
}

func (s *reviewService) SelectPosting(ctx context.Context, sessionID, postingID string) (dto.PostingResponse, error) {
	posting, err := s.postings.GetByID(postingID)
	if err != nil {
		return dto.PostingResponse{}, err
	}
	if err := s.sessions.SaveSelectedPosting(ctx, sessionID, postingID); err != nil {
		return dto.PostingResponse{}, err
	}
	return dto.NewPostingResponse(posting), nil
}

// SelectedPosting resolves the posting bound to the review view. A missing or
// stale selection falls back to the first seed posting.
func (s *reviewService) SelectedPosting(ctx context.Context, sessionID string) (dto.PostingResponse, error) {
	selected, err := s.sessions.SelectedPosting(ctx, sessionID)
	if err != nil {
		return dto.PostingResponse{}, err
	}
	if selected != "" {
		if posting, err := s.postings.GetByID(selected); err == nil {
			return dto.NewPostingResponse(posting), nil
		}
		s.logger.Warn().Str("posting_id", selected).Msg("stored posting selection no longer exists, falling back")
	}

	all := s.postings.List()
	if len(all) == 0 {
		return dto.PostingResponse{}, repository.ErrPostingNotFound
	}
	return dto.NewPostingResponse(all[0]), nil
}

func (s *reviewService) Queue(ctx context.Context, sessionID string) (dto.ReviewQueueResponse, error) {
	posting, err := s.SelectedPosting(ctx, sessionID)
	if err != nil {
		return dto.ReviewQueueResponse{}, err
	}

	apps, err := s.sessions.Applications(ctx, sessionID)
	if err != nil {
		return dto.ReviewQueueResponse{}, err
	}

	matched := make([]models.Application, 0, len(apps))
	for _, app := range apps {
		if app.PostingID == posting.ID {
			matched = append(matched, app)
		}
	}

	return dto.ReviewQueueResponse{
		PostingID:    posting.ID,
		Applications: dto.NewApplicationResponseSlice(matched),
	}, nil
}

func (s *reviewService) AdvanceStatus(ctx context.Context, sessionID, professor, applicationID, status string) (dto.ApplicationResponse, error) {
	if !models.IsDecisionStatus(status) {
		return dto.ApplicationResponse{}, ErrInvalidDecisionStatus
	}

	apps, err := s.sessions.Applications(ctx, sessionID)
	if err != nil {
		return dto.ApplicationResponse{}, err
	}

	idx := indexByID(apps, applicationID)
	if idx < 0 {
		return dto.ApplicationResponse{}, ErrApplicationNotFound
	}

	posting, err := s.postings.GetByID(apps[idx].PostingID)
	if err != nil {
		return dto.ApplicationResponse{}, err
	}
	if posting.Professor != professor {
		return dto.ApplicationResponse{}, ErrNotPostingOwner
	}

	apps[idx].Status = status
	apps[idx].NextStep = models.NextStepFor(status)
	if err := s.sessions.SaveApplications(ctx, sessionID, apps); err != nil {
		return dto.ApplicationResponse{}, err
	}

	observability.StatusTransitions().WithLabelValues(status).Inc()
	s.logger.Info().Str("application_id", applicationID).Str("status", status).Msg("application status advanced")

	return dto.NewApplicationResponse(apps[idx]), nil
}

func (s *reviewService) SetPostingClosed(professor, postingID string, closed bool) (dto.PostingResponse, error) {
	posting, err := s.postings.GetByID(postingID)
	if err != nil {
		return dto.PostingResponse{}, err
	}
	if posting.Professor != professor {
		return dto.PostingResponse{}, ErrNotPostingOwner
	}

	updated, err := s.postings.SetClosed(postingID, closed)
	if err != nil {
		return dto.PostingResponse{}, err
	}

	s.logger.Info().Str("posting_id", postingID).Bool("closed", closed).Msg("posting availability changed")
	return dto.NewPostingResponse(updated), nil
}
