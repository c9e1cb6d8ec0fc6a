package dto

// AdvanceStatusRequest is the body for a professor's status decision.
type AdvanceStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=reviewed interview accepted rejected"`
}

// SelectPostingRequest binds the professor view to one posting.
type SelectPostingRequest struct {
	PostingID string `json:"posting_id" validate:"required"`
}

// SetClosedRequest opens or closes a posting for new submissions.
type SetClosedRequest struct {
	Closed *bool `json:"closed" validate:"required"`
}

// ReviewQueueResponse lists the applications for the selected posting.
type ReviewQueueResponse struct {
	PostingID    string                `json:"posting_id"`
	Applications []ApplicationResponse `json:"applications"`
}
