package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/noah-isme/ta-apply-api/internal/models"
)

// ErrPostingNotFound indicates the posting identifier is unknown.
var ErrPostingNotFound = errors.New("posting not found")

// PostingRepository serves the static posting catalogue. Postings are seed
// data: the only runtime mutation is the professor toggling the closed flag.
type PostingRepository interface {
	List() []models.Posting
	GetByID(id string) (models.Posting, error)
	SetClosed(id string, closed bool) (models.Posting, error)
}

type postingRepository struct {
	mu       sync.RWMutex
	postings []models.Posting
	byID     map[string]int
}

// NewPostingRepository builds the catalogue from the given seed list,
// preserving order.
func NewPostingRepository(seed []models.Posting) PostingRepository {
	byID := make(map[string]int, len(seed))
	postings := make([]models.Posting, len(seed))
	copy(postings, seed)
	for i, posting := range postings {
		byID[posting.ID] = i
	}
	return &postingRepository{postings: postings, byID: byID}
}

func (r *postingRepository) List() []models.Posting {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.Posting, len(r.postings))
	copy(out, r.postings)
	return out
}

func (r *postingRepository) GetByID(id string) (models.Posting, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	idx, ok := r.byID[id]
	if !ok {
		return models.Posting{}, ErrPostingNotFound
	}
	return r.postings[idx], nil
}

func (r *postingRepository) SetClosed(id string, closed bool) (models.Posting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	idx, ok := r.byID[id]
	if !ok {
		return models.Posting{}, ErrPostingNotFound
	}
	r.postings[idx].Closed = closed
	return r.postings[idx], nil
}

// LoadPostings reads the posting seed from a JSON file, falling back to the
// built-in seed when no path is configured.
func LoadPostings(path string) ([]models.Posting, error) {
	if path == "" {
		return SeedPostings(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read posting seed file: %w", err)
	}
	var postings []models.Posting
	if err := json.Unmarshal(data, &postings); err != nil {
		return nil, fmt.Errorf("failed to parse posting seed file: %w", err)
	}
	if len(postings) == 0 {
		return nil, errors.New("posting seed file contains no postings")
	}
	return postings, nil
}

// SeedPostings returns the built-in posting catalogue.
func SeedPostings() []models.Posting {
	return []models.Posting{
		{
			ID:             "pst-csc108-f26",
			CourseCode:     "CSC108",
			Title:          "Introduction to Computer Programming",
			Professor:      "Dr. Elena Vasquez",
			PriorGradeHint: "A- or higher recommended",
			ClassTime:      "Mon/Wed 10:00-11:00",
			Tutorials: []models.TutorialSlot{
				{Day: "Tue", Start: "14:00", End: "15:00"},
				{Day: "Thu", Start: "14:00", End: "15:00"},
			},
			ResumeRequired: true,
		},
		{
			ID:             "pst-csc236-f26",
			CourseCode:     "CSC236",
			Title:          "Introduction to the Theory of Computation",
			Professor:      "Dr. Marcus Okafor",
			PriorGradeHint: "B+ or higher recommended",
			ClassTime:      "Tue/Thu 13:00-14:30",
			Tutorials: []models.TutorialSlot{
				{Day: "Fri", Start: "10:00", End: "11:00"},
			},
			ResumeRequired: true,
		},
		{
			ID:         "pst-csc263-f26",
			CourseCode: "CSC263",
			Title:      "Data Structures and Analysis",
			Professor:  "Dr. Elena Vasquez",
			ClassTime:  "Mon/Wed/Fri 09:00-10:00",
			Tutorials: []models.TutorialSlot{
				{Day: "Wed", Start: "16:00", End: "17:00"},
				{Day: "Fri", Start: "16:00", End: "17:00"},
			},
			ResumeRequired: false,
		},
	}
}
