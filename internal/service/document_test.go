package service

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/ta-apply-api/internal/models"
)

func TestIsAcceptableDocument(t *testing.T) {
	cases := []struct {
		name string
		doc  *models.Document
		want bool
	}{
		{name: "absent", doc: nil, want: false},
		{name: "pdf media type", doc: &models.Document{Name: "resume", MediaType: "application/pdf"}, want: true},
		{name: "pdf media type with parameters", doc: &models.Document{Name: "resume", MediaType: "application/pdf; charset=binary"}, want: true},
		{name: "pdf extension lowercase", doc: &models.Document{Name: "resume.pdf", MediaType: "application/octet-stream"}, want: true},
		{name: "pdf extension uppercase", doc: &models.Document{Name: "RESUME.PDF", MediaType: ""}, want: true},
		{name: "wrong type and extension", doc: &models.Document{Name: "resume.docx", MediaType: "application/msword"}, want: false},
		{name: "empty document", doc: &models.Document{}, want: false},
		{name: "pdf substring not suffix", doc: &models.Document{Name: "resume.pdf.docx", MediaType: "text/plain"}, want: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, IsAcceptableDocument(tc.doc))
		})
	}
}

func TestValidateSubmission(t *testing.T) {
	pdf := &models.Document{Name: "file.pdf", MediaType: "application/pdf"}
	word := &models.Document{Name: "file.docx", MediaType: "application/msword"}

	cases := []struct {
		name           string
		resume         *models.Document
		transcript     *models.Document
		resumeRequired bool
		wantErr        error
	}{
		{name: "resume required and missing", resumeRequired: true, wantErr: ErrResumeRequired},
		{name: "resume optional and missing", resumeRequired: false, wantErr: nil},
		{name: "valid resume only", resume: pdf, resumeRequired: true, wantErr: nil},
		{name: "non-pdf resume", resume: word, resumeRequired: true, wantErr: ErrResumeNotPDF},
		{name: "non-pdf resume even when optional", resume: word, resumeRequired: false, wantErr: ErrResumeNotPDF},
		{name: "valid resume and transcript", resume: pdf, transcript: pdf, resumeRequired: true, wantErr: nil},
		{name: "non-pdf transcript with valid resume", resume: pdf, transcript: word, resumeRequired: true, wantErr: ErrTranscriptNotPDF},
		{name: "transcript alone valid", transcript: pdf, resumeRequired: false, wantErr: nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateSubmission(tc.resume, tc.transcript, tc.resumeRequired)
			if tc.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestValidationErrorReasonIsUserFacing(t *testing.T) {
	require.Equal(t, "resume required", ErrResumeRequired.Error())
	require.Equal(t, "resume must be PDF", ErrResumeNotPDF.Error())
	require.Equal(t, "transcript must be PDF", ErrTranscriptNotPDF.Error())
}
