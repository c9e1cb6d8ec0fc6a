package handler_test

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/ta-apply-api/internal/dto"
	"github.com/noah-isme/ta-apply-api/internal/handler"
	"github.com/noah-isme/ta-apply-api/internal/service"
)

type mockReviewService struct {
	posting     dto.PostingResponse
	queue       dto.ReviewQueueResponse
	application dto.ApplicationResponse

	advanceErr error
	closedErr  error

	professor string
	appID     string
	status    string
}

func (m *mockReviewService) SelectPosting(_ context.Context, _, _ string) (dto.PostingResponse, error) {
	return m.posting, nil
}

func (m *mockReviewService) SelectedPosting(_ context.Context, _ string) (dto.PostingResponse, error) {
	return m.posting, nil
}

func (m *mockReviewService) Queue(_ context.Context, _ string) (dto.ReviewQueueResponse, error) {
	return m.queue, nil
}

func (m *mockReviewService) AdvanceStatus(_ context.Context, _, professor, applicationID, status string) (dto.ApplicationResponse, error) {
	m.professor = professor
	m.appID = applicationID
	m.status = status
	if m.advanceErr != nil {
		return dto.ApplicationResponse{}, m.advanceErr
	}
	return m.application, nil
}

func (m *mockReviewService) SetPostingClosed(professor, _ string, _ bool) (dto.PostingResponse, error) {
	m.professor = professor
	if m.closedErr != nil {
		return dto.PostingResponse{}, m.closedErr
	}
	return m.posting, nil
}

func newReviewApp(svc service.ReviewService) *fiber.App {
	app := fiber.New()
	validate := validator.New(validator.WithRequiredStructEnabled())
	handler.NewReviewHandler(svc, validate, zerolog.New(io.Discard)).Register(app.Group("/api/v1/review"))
	return app
}

func TestReviewHandler_AdvanceStatus(t *testing.T) {
	svc := &mockReviewService{application: dto.ApplicationResponse{ID: "app-1", Status: "interview"}}
	app := newReviewApp(svc)

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/review/applications/app-1", bytes.NewBufferString(`{"status":"interview"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Professor", "Dr. Elena Vasquez")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var payload struct {
		Success bool                    `json:"success"`
		Data    dto.ApplicationResponse `json:"data"`
	}
	decodeResponse(t, resp, &payload)
	require.True(t, payload.Success)
	require.Equal(t, "interview", payload.Data.Status)
	require.Equal(t, "Dr. Elena Vasquez", svc.professor)
	require.Equal(t, "app-1", svc.appID)
}

func TestReviewHandler_AdvanceStatusRequiresProfessor(t *testing.T) {
	svc := &mockReviewService{}
	app := newReviewApp(svc)

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/review/applications/app-1", bytes.NewBufferString(`{"status":"interview"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var payload struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	decodeResponse(t, resp, &payload)
	require.False(t, payload.Success)
	require.Equal(t, "professor identity required", payload.Message)
}

func TestReviewHandler_AdvanceStatusRejectsBadTarget(t *testing.T) {
	svc := &mockReviewService{}
	app := newReviewApp(svc)

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/review/applications/app-1", bytes.NewBufferString(`{"status":"withdrawn"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Professor", "Dr. Elena Vasquez")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestReviewHandler_AdvanceStatusUnknownIsNoOp(t *testing.T) {
	svc := &mockReviewService{advanceErr: service.ErrApplicationNotFound}
	app := newReviewApp(svc)

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/review/applications/missing", bytes.NewBufferString(`{"status":"reviewed"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Professor", "Dr. Elena Vasquez")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var payload struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	decodeResponse(t, resp, &payload)
	require.True(t, payload.Success)
	require.Equal(t, "no matching application", payload.Message)
}

func TestReviewHandler_AdvanceStatusWrongProfessor(t *testing.T) {
	svc := &mockReviewService{advanceErr: service.ErrNotPostingOwner}
	app := newReviewApp(svc)

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/review/applications/app-1", bytes.NewBufferString(`{"status":"reviewed"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Professor", "Dr. Someone Else")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestReviewHandler_SetClosedRequiresBody(t *testing.T) {
	svc := &mockReviewService{}
	app := newReviewApp(svc)

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/review/postings/pst-1/closed", bytes.NewBufferString(`{}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Professor", "Dr. Elena Vasquez")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestReviewHandler_SetClosed(t *testing.T) {
	svc := &mockReviewService{posting: dto.PostingResponse{ID: "pst-1", Closed: true}}
	app := newReviewApp(svc)

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/review/postings/pst-1/closed", bytes.NewBufferString(`{"closed":true}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Professor", "Dr. Elena Vasquez")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var payload struct {
		Success bool                `json:"success"`
		Data    dto.PostingResponse `json:"data"`
	}
	decodeResponse(t, resp, &payload)
	require.True(t, payload.Success)
	require.True(t, payload.Data.Closed)
}

func TestReviewHandler_SelectedPosting(t *testing.T) {
	svc := &mockReviewService{posting: dto.PostingResponse{ID: "pst-1"}}
	app := newReviewApp(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/review/posting", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var payload struct {
		Success bool                `json:"success"`
		Data    dto.PostingResponse `json:"data"`
	}
	decodeResponse(t, resp, &payload)
	require.Equal(t, "pst-1", payload.Data.ID)
}
