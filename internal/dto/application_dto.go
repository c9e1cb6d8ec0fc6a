package dto

import (
	"time"

	"github.com/noah-isme/ta-apply-api/internal/models"
)

// DocumentPayload carries a file reference by name and declared media type.
// File content never crosses this API.
type DocumentPayload struct {
	Name      string `json:"name" validate:"required"`
	MediaType string `json:"media_type" validate:"required"`
}

// SubmitRequest is the body for creating or updating an application. When an
// active application already exists for the posting the supplied fields are
// merged over it; otherwise a new application is created.
type SubmitRequest struct {
	PostingID     string           `json:"posting_id" validate:"required"`
	Resume        *DocumentPayload `json:"resume"`
	Transcript    *DocumentPayload `json:"transcript"`
	Note          string           `json:"note" validate:"omitempty,max=2000"`
	UseDefaults   bool             `json:"use_defaults"`
	SaveAsDefault bool             `json:"save_as_default"`
}

// Document converts the payload into the domain value type.
func (p *DocumentPayload) Document() *models.Document {
	if p == nil {
		return nil
	}
	return &models.Document{Name: p.Name, MediaType: p.MediaType}
}

// DocumentResponse serializes a stored document reference.
type DocumentResponse struct {
	Name      string `json:"name"`
	MediaType string `json:"media_type"`
}

// ApplicationResponse is returned to clients when viewing applications.
type ApplicationResponse struct {
	ID          string            `json:"id"`
	PostingID   string            `json:"posting_id"`
	CourseTitle string            `json:"course_title"`
	Status      string            `json:"status"`
	Resume      *DocumentResponse `json:"resume,omitempty"`
	Transcript  *DocumentResponse `json:"transcript,omitempty"`
	Note        string            `json:"note,omitempty"`
	NextStep    string            `json:"next_step,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
}

// NewApplicationResponse converts an Application model into a DTO.
func NewApplicationResponse(model models.Application) ApplicationResponse {
	response := ApplicationResponse{
		ID:          model.ID,
		PostingID:   model.PostingID,
		CourseTitle: model.CourseTitle,
		Status:      model.Status,
		Note:        model.Note,
		NextStep:    model.NextStep,
		CreatedAt:   model.CreatedAt,
	}
	if model.Resume != nil {
		response.Resume = &DocumentResponse{Name: model.Resume.Name, MediaType: model.Resume.MediaType}
	}
	if model.Transcript != nil {
		response.Transcript = &DocumentResponse{Name: model.Transcript.Name, MediaType: model.Transcript.MediaType}
	}
	return response
}

// NewApplicationResponseSlice converts application models into DTOs.
func NewApplicationResponseSlice(models []models.Application) []ApplicationResponse {
	responses := make([]ApplicationResponse, 0, len(models))
	for _, application := range models {
		responses = append(responses, NewApplicationResponse(application))
	}

	return responses
}
