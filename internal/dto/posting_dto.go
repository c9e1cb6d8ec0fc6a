package dto

import "github.com/noah-isme/ta-apply-api/internal/models"

// TutorialSlotResponse serializes one tutorial block.
type TutorialSlotResponse struct {
	Day   string `json:"day"`
	Start string `json:"start"`
	End   string `json:"end"`
}

// PostingResponse is the public view of a posting.
type PostingResponse struct {
	ID             string                 `json:"id"`
	CourseCode     string                 `json:"course_code"`
	Title          string                 `json:"title"`
	Professor      string                 `json:"professor"`
	PriorGradeHint string                 `json:"prior_grade_hint,omitempty"`
	ClassTime      string                 `json:"class_time"`
	Tutorials      []TutorialSlotResponse `json:"tutorials"`
	ResumeRequired bool                   `json:"resume_required"`
	Closed         bool                   `json:"closed"`
}

// NewPostingResponse converts a Posting model into a DTO.
func NewPostingResponse(model models.Posting) PostingResponse {
	tutorials := make([]TutorialSlotResponse, 0, len(model.Tutorials))
	for _, slot := range model.Tutorials {
		tutorials = append(tutorials, TutorialSlotResponse{Day: slot.Day, Start: slot.Start, End: slot.End})
	}
	return PostingResponse{
		ID:             model.ID,
		CourseCode:     model.CourseCode,
		Title:          model.Title,
		Professor:      model.Professor,
		PriorGradeHint: model.PriorGradeHint,
		ClassTime:      model.ClassTime,
		Tutorials:      tutorials,
		ResumeRequired: model.ResumeRequired,
		Closed:         model.Closed,
	}
}

// NewPostingResponseSlice converts posting models into DTOs.
func NewPostingResponseSlice(models []models.Posting) []PostingResponse {
	responses := make([]PostingResponse, 0, len(models))
	for _, posting := range models {
		responses = append(responses, NewPostingResponse(posting))
	}

	return responses
}
