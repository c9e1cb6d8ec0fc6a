package service

import (
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/noah-isme/ta-apply-api/internal/models"
)

const pdfMediaType = "application/pdf"

// ValidationError marks a document validation failure. The reason is safe to
// surface to the user verbatim.
type ValidationError struct {
	Reason string
}

func (e ValidationError) Error() string {
	return e.Reason
}

var (
	// ErrResumeRequired indicates the posting requires a resume and none was supplied.
	ErrResumeRequired = ValidationError{Reason: "resume required"}
	// ErrResumeNotPDF indicates the supplied resume is not a PDF.
	ErrResumeNotPDF = ValidationError{Reason: "resume must be PDF"}
	// ErrTranscriptNotPDF indicates the supplied transcript is not a PDF.
	ErrTranscriptNotPDF = ValidationError{Reason: "transcript must be PDF"}
)

var pdfType = mimetype.Lookup(pdfMediaType)

// IsAcceptableDocument reports whether the file reference qualifies as an
// acceptable document: present, and either declared as the PDF media type or
// named with a .pdf extension (case-insensitive). Documents carry no content,
// so only the declared name/type pair is inspected.
func IsAcceptableDocument(doc *models.Document) bool {
	if doc == nil {
		return false
	}
	if declared := strings.TrimSpace(doc.MediaType); declared != "" && pdfType.Is(declared) {
		return true
	}
	return strings.HasSuffix(strings.ToLower(strings.TrimSpace(doc.Name)), ".pdf")
}

// ValidateSubmission decides whether a submission payload is acceptable. It
// is pure and must be called before any state mutation; callers surface the
// returned reason and mutate nothing on rejection.
func ValidateSubmission(resume, transcript *models.Document, resumeRequired bool) error {
	if resumeRequired && resume == nil {
		return ErrResumeRequired
	}
	if resume != nil && !IsAcceptableDocument(resume) {
		return ErrResumeNotPDF
	}
	if transcript != nil && !IsAcceptableDocument(transcript) {
		return ErrTranscriptNotPDF
	}
	return nil
}
