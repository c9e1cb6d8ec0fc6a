package models

import "time"

// Application is a student's submission against one posting. It is owned by
// exactly one session; the student edits documents and notes or withdraws,
// the posting's professor advances the status.
type Application struct {
	ID          string    `json:"id"`
	PostingID   string    `json:"posting_id"`
	CourseTitle string    `json:"course_title"`
	Status      string    `json:"status"`
	Resume      *Document `json:"resume,omitempty"`
	Transcript  *Document `json:"transcript,omitempty"`
	Note        string    `json:"note,omitempty"`
	NextStep    string    `json:"next_step,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

const (
	// StatusSubmitted is the initial status of every new application.
	StatusSubmitted = "submitted"
	// StatusReviewed indicates the professor has looked at the application.
	StatusReviewed = "reviewed"
	// StatusInterview indicates the student has been invited to interview.
	StatusInterview = "interview"
	// StatusAccepted is a terminal decision in the student's favour.
	StatusAccepted = "accepted"
	// StatusRejected is a terminal decision against the student.
	StatusRejected = "rejected"
	// StatusWithdrawn is the student-initiated terminal status. Withdrawn
	// records no longer count against the one-active-per-posting rule.
	StatusWithdrawn = "withdrawn"
)

// IsActive reports whether the application still occupies its posting slot.
func (a Application) IsActive() bool {
	return a.Status != StatusWithdrawn
}

// IsTerminal reports whether the student can no longer withdraw the record.
func (a Application) IsTerminal() bool {
	switch a.Status {
	case StatusAccepted, StatusRejected, StatusWithdrawn:
		return true
	default:
		return false
	}
}

var nextStepMessages = map[string]string{
	StatusSubmitted: "Your application has been submitted and is awaiting review.",
	StatusReviewed:  "Your application has been reviewed. Watch for an interview invitation.",
	StatusInterview: "You have been invited to interview. Check your email for scheduling details.",
	StatusAccepted:  "Congratulations! Contact the course professor to arrange onboarding.",
	StatusRejected:  "Your application was not selected this term.",
	StatusWithdrawn: "You withdrew this application. You may submit a new one for this posting at any time.",
}

// NextStepFor returns the default next-step message shown for a status.
func NextStepFor(status string) string {
	return nextStepMessages[status]
}

// IsDecisionStatus reports whether a professor may set the given status
// through review. Withdrawal and the initial submitted status are excluded.
func IsDecisionStatus(status string) bool {
	switch status {
	case StatusReviewed, StatusInterview, StatusAccepted, StatusRejected:
		return true
	default:
		return false
	}
}
