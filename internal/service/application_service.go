package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/noah-isme/ta-apply-api/internal/dto"
	"github.com/noah-isme/ta-apply-api/internal/models"
	"github.com/noah-isme/ta-apply-api/internal/observability"
	"github.com/noah-isme/ta-apply-api/internal/repository"
)

var (
	// ErrApplicationNotFound indicates the application identifier is unknown
	// to the session. Callers treat it as a defensive no-op, not a failure.
	ErrApplicationNotFound = errors.New("application not found")
	// ErrPostingClosed indicates the posting no longer accepts submissions.
	ErrPostingClosed = errors.New("posting is closed to new applications")
	// ErrApplicationNotWithdrawn indicates a delete was attempted on a record
	// that is not withdrawn. Deleting any other status is a logic fault.
	ErrApplicationNotWithdrawn = errors.New("only withdrawn applications can be deleted")
)

// Decision models the outcome of a synchronous user confirmation, such as
// "save these documents as your defaults?". The prompt itself is a
// presentation concern; only the answer reaches this layer.
type Decision struct {
	Accepted bool
}

// ApplicationService owns the student side of the application lifecycle.
// Every operation loads the session's application list, transforms it as a
// whole and stores it back, so a rejected submission leaves the stored state
// untouched.
type ApplicationService interface {
	List(ctx context.Context, sessionID string) ([]dto.ApplicationResponse, error)
	SubmitOrUpdate(ctx context.Context, sessionID string, payload dto.SubmitRequest, saveDefaults Decision) (dto.ApplicationResponse, error)
	Withdraw(ctx context.Context, sessionID, applicationID string) (dto.ApplicationResponse, error)
	DeleteWithdrawn(ctx context.Context, sessionID, applicationID string) error
}

type applicationService struct {
	sessions  repository.SessionRepository
	postings  repository.PostingRepository
	validator *validator.Validate
	logger    zerolog.Logger
	policy    *bluemonday.Policy
	now       func() time.Time
	newID     func() string
	tracer    trace.Tracer
}

// NewApplicationService constructs an ApplicationService instance.
func NewApplicationService(sessions repository.SessionRepository, postings repository.PostingRepository, validate *validator.Validate, logger zerolog.Logger) ApplicationService {
	return &applicationService{
		sessions:  sessions,
		postings:  postings,
		validator: validate,
		logger:    logger.With().Str("component", "application_service").Logger(),
		policy:    bluemonday.StrictPolicy(),
		now:       time.Now,
		newID:     uuid.NewString,
		tracer:    otel.Tracer("github.com/noah-isme/ta-apply-api/internal/service/application"),
	}
}

func (s *applicationService) List(ctx context.Context, sessionID string) ([]dto.ApplicationResponse, error) {
	apps, err := s.sessions.Applications(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return dto.NewApplicationResponseSlice(apps), nil
}

func (s *applicationService) SubmitOrUpdate(ctx context.Context, sessionID string, payload dto.SubmitRequest, saveDefaults Decision) (dto.ApplicationResponse, error) {
	ctx, span := s.tracer.Start(ctx, "application.submit")
	defer span.End()
	span.SetAttributes(attribute.String("posting.id", payload.PostingID))

	if err := s.validator.Struct(payload); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "payload invalid")
		return dto.ApplicationResponse{}, err
	}

	posting, err := s.postings.GetByID(payload.PostingID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "posting lookup failed")
		return dto.ApplicationResponse{}, err
	}
	if posting.Closed {
		span.SetStatus(codes.Error, "posting closed")
		return dto.ApplicationResponse{}, ErrPostingClosed
	}

	apps, err := s.sessions.Applications(ctx, sessionID)
	if err != nil {
		return dto.ApplicationResponse{}, err
	}

	resume := payload.Resume.Document()
	transcript := payload.Transcript.Document()
	note := strings.TrimSpace(s.policy.Sanitize(payload.Note))

	idx, exists := s.findActive(apps, payload.PostingID)
	span.SetAttributes(attribute.Bool("application.update", exists))

	var committed models.Application
	if exists {
		// Merge over the existing record: identifier, creation timestamp and
		// status stay untouched.
		merged := apps[idx]
		if resume != nil {
			merged.Resume = resume
		}
		if transcript != nil {
			merged.Transcript = transcript
		}
		if note != "" {
			merged.Note = note
		}
		if err := s.rejectInvalid(merged.Resume, merged.Transcript, posting.ResumeRequired, span); err != nil {
			return dto.ApplicationResponse{}, err
		}
		apps[idx] = merged
		committed = merged
	} else {
		if payload.UseDefaults {
			defaults, err := s.sessions.DefaultDocuments(ctx, sessionID)
			if err != nil {
				return dto.ApplicationResponse{}, err
			}
			if resume == nil {
				resume = defaults.Resume
			}
			if transcript == nil {
				transcript = defaults.Transcript
			}
		}
		if err := s.rejectInvalid(resume, transcript, posting.ResumeRequired, span); err != nil {
			return dto.ApplicationResponse{}, err
		}
		created := models.Application{
			ID:          s.newID(),
			PostingID:   posting.ID,
			CourseTitle: posting.Title,
			Status:      models.StatusSubmitted,
			Resume:      resume,
			Transcript:  transcript,
			Note:        note,
			NextStep:    models.NextStepFor(models.StatusSubmitted),
			CreatedAt:   s.now().UTC(),
		}
		// Newest first, matching the persisted ordering.
		apps = append([]models.Application{created}, apps...)
		committed = created
	}

	if err := s.sessions.SaveApplications(ctx, sessionID, apps); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "persistence failed")
		return dto.ApplicationResponse{}, err
	}

	if saveDefaults.Accepted {
		docs := models.DefaultDocuments{Resume: committed.Resume, Transcript: committed.Transcript}
		if err := s.sessions.SaveDefaultDocuments(ctx, sessionID, docs); err != nil {
			s.logger.Warn().Err(err).Msg("failed to save default documents")
		}
	}

	action := "created"
	if exists {
		action = "updated"
	}
	observability.Applications().WithLabelValues(action).Inc()
	s.logger.Info().Str("application_id", committed.ID).Str("posting_id", posting.ID).Str("action", action).Msg("application committed")
	span.SetStatus(codes.Ok, action)

	return dto.NewApplicationResponse(committed), nil
}

func (s *applicationService) Withdraw(ctx context.Context, sessionID, applicationID string) (dto.ApplicationResponse, error) {
	apps, err := s.sessions.Applications(ctx, sessionID)
	if err != nil {
		return dto.ApplicationResponse{}, err
	}

	idx := indexByID(apps, applicationID)
	if idx < 0 {
		return dto.ApplicationResponse{}, ErrApplicationNotFound
	}
	if apps[idx].IsTerminal() {
		// Accepted, rejected and withdrawn records cannot be withdrawn again.
		return dto.NewApplicationResponse(apps[idx]), nil
	}

	apps[idx].Status = models.StatusWithdrawn
	apps[idx].NextStep = models.NextStepFor(models.StatusWithdrawn)
	if err := s.sessions.SaveApplications(ctx, sessionID, apps); err != nil {
		return dto.ApplicationResponse{}, err
	}

	observability.StatusTransitions().WithLabelValues(models.StatusWithdrawn).Inc()
	s.logger.Info().Str("application_id", applicationID).Msg("application withdrawn")

	return dto.NewApplicationResponse(apps[idx]), nil
}

func (s *applicationService) DeleteWithdrawn(ctx context.Context, sessionID, applicationID string) error {
	apps, err := s.sessions.Applications(ctx, sessionID)
	if err != nil {
		return err
	}

	idx := indexByID(apps, applicationID)
	if idx < 0 {
		s.logger.Debug().Str("application_id", applicationID).Msg("delete requested for unknown application")
		return nil
	}
	if apps[idx].Status != models.StatusWithdrawn {
		observability.InvariantViolations().WithLabelValues("delete_non_withdrawn").Inc()
		s.logger.Error().Str("application_id", applicationID).Str("status", apps[idx].Status).Msg("refusing to delete non-withdrawn application")
		return ErrApplicationNotWithdrawn
	}

	apps = append(apps[:idx], apps[idx+1:]...)
	if err := s.sessions.SaveApplications(ctx, sessionID, apps); err != nil {
		return err
	}

	s.logger.Info().Str("application_id", applicationID).Msg("withdrawn application deleted")
	return nil
}

func (s *applicationService) rejectInvalid(resume, transcript *models.Document, resumeRequired bool, span trace.Span) error {
	if err := ValidateSubmission(resume, transcript, resumeRequired); err != nil {
		observability.ValidationRejections().WithLabelValues(err.Error()).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, "validation rejected")
		return err
	}
	return nil
}

// findActive locates the single non-withdrawn application for the posting.
// More than one match means the one-active-per-posting invariant was broken
// by a logic fault; it is reported diagnostically and the first record in
// stored order wins.
func (s *applicationService) findActive(apps []models.Application, postingID string) (int, bool) {
	idx := -1
	count := 0
	for i, app := range apps {
		if app.PostingID == postingID && app.IsActive() {
			if idx < 0 {
				idx = i
			}
			count++
		}
	}
	if count > 1 {
		observability.InvariantViolations().WithLabelValues("duplicate_active").Inc()
		s.logger.Error().Str("posting_id", postingID).Int("count", count).Msg("multiple active applications for one posting")
	}
	return idx, idx >= 0
}

func indexByID(apps []models.Application, applicationID string) int {
	for i, app := range apps {
		if app.ID == applicationID {
			return i
		}
	}
	return -1
}
