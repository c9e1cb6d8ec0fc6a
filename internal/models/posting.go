package models

// TutorialSlot is one weekly tutorial block offered by a posting.
type TutorialSlot struct {
	Day   string `json:"day"`
	Start string `json:"start"`
	End   string `json:"end"`
}

// Posting is a course's TA position listing. Postings are seed data: they are
// never created or deleted at runtime, only opened and closed by their
// professor.
type Posting struct {
	ID             string         `json:"id"`
	CourseCode     string         `json:"course_code"`
	Title          string         `json:"title"`
	Professor      string         `json:"professor"`
	PriorGradeHint string         `json:"prior_grade_hint,omitempty"`
	ClassTime      string         `json:"class_time"`
	Tutorials      []TutorialSlot `json:"tutorials"`
	ResumeRequired bool           `json:"resume_required"`
	Closed         bool           `json:"closed"`
}
