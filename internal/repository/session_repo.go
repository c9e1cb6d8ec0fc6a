package repository

import (
	"context"
	"encoding/json"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/noah-isme/ta-apply-api/internal/models"
)

// Keys under which session state is persisted. The layout mirrors the
// prototype's browser storage: every value is a JSON-encoded document scoped
// to one session.
const (
	keyApplications     = "apps"
	keySelectedPosting  = "profPostingId"
	keyDefaultDocuments = "defaultDocs"
)

// SessionRepository persists per-session state as JSON key/value pairs. A
// missing or corrupt value never surfaces as an error: readers receive the
// documented fallback (empty list, empty string, zero value) instead.
type SessionRepository interface {
	Applications(ctx context.Context, sessionID string) ([]models.Application, error)
	SaveApplications(ctx context.Context, sessionID string, apps []models.Application) error
	SelectedPosting(ctx context.Context, sessionID string) (string, error)
	SaveSelectedPosting(ctx context.Context, sessionID, postingID string) error
	DefaultDocuments(ctx context.Context, sessionID string) (models.DefaultDocuments, error)
	SaveDefaultDocuments(ctx context.Context, sessionID string, docs models.DefaultDocuments) error
}

func decodeApplications(data []byte, logger zerolog.Logger) []models.Application {
	if len(data) == 0 {
		return []models.Application{}
	}
	if !validApplicationsPayload(data) {
		logger.Warn().Str("key", keyApplications).Msg("stored applications failed schema check, falling back to empty list")
		return []models.Application{}
	}
	var apps []models.Application
	if err := json.Unmarshal(data, &apps); err != nil {
		logger.Warn().Err(err).Str("key", keyApplications).Msg("stored applications are not valid JSON, falling back to empty list")
		return []models.Application{}
	}
	return apps
}

func decodeSelectedPosting(data []byte, logger zerolog.Logger) string {
	if len(data) == 0 {
		return ""
	}
	var id string
	if err := json.Unmarshal(data, &id); err != nil {
		logger.Warn().Err(err).Str("key", keySelectedPosting).Msg("stored posting selection is corrupt, falling back to empty")
		return ""
	}
	return strings.TrimSpace(id)
}

func decodeDefaultDocuments(data []byte, logger zerolog.Logger) models.DefaultDocuments {
	if len(data) == 0 {
		return models.DefaultDocuments{}
	}
	var docs models.DefaultDocuments
	if err := json.Unmarshal(data, &docs); err != nil {
		logger.Warn().Err(err).Str("key", keyDefaultDocuments).Msg("stored default documents are corrupt, falling back to empty")
		return models.DefaultDocuments{}
	}
	return docs
}

type memorySessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]map[string][]byte
	logger   zerolog.Logger
}

// NewMemorySessionRepository keeps session state in process memory. It is the
// default backend and matches the prototype's single-session ownership model.
func NewMemorySessionRepository(logger zerolog.Logger) SessionRepository {
	return &memorySessionRepository{
		sessions: map[string]map[string][]byte{},
		logger:   logger.With().Str("component", "memory_session_repo").Logger(),
	}
}

func (r *memorySessionRepository) get(sessionID, key string) []byte {
	r.mu.RLock()
	defer r.mu.RUnlock()
	session, ok := r.sessions[sessionID]
	if !ok {
		return nil
	}
	return session[key]
}

func (r *memorySessionRepository) set(sessionID, key string, value []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	session, ok := r.sessions[sessionID]
	if !ok {
		session = map[string][]byte{}
		r.sessions[sessionID] = session
	}
	session[key] = value
}

func (r *memorySessionRepository) Applications(_ context.Context, sessionID string) ([]models.Application, error) {
	return decodeApplications(r.get(sessionID, keyApplications), r.logger), nil
}

func (r *memorySessionRepository) SaveApplications(_ context.Context, sessionID string, apps []models.Application) error {
	payload, err := json.Marshal(apps)
	if err != nil {
		return err
	}
	r.set(sessionID, keyApplications, payload)
	return nil
}

func (r *memorySessionRepository) SelectedPosting(_ context.Context, sessionID string) (string, error) {
	return decodeSelectedPosting(r.get(sessionID, keySelectedPosting), r.logger), nil
}

func (r *memorySessionRepository) SaveSelectedPosting(_ context.Context, sessionID, postingID string) error {
	payload, err := json.Marshal(postingID)
	if err != nil {
		return err
	}
	r.set(sessionID, keySelectedPosting, payload)
	return nil
}

func (r *memorySessionRepository) DefaultDocuments(_ context.Context, sessionID string) (models.DefaultDocuments, error) {
	return decodeDefaultDocuments(r.get(sessionID, keyDefaultDocuments), r.logger), nil
}

func (r *memorySessionRepository) SaveDefaultDocuments(_ context.Context, sessionID string, docs models.DefaultDocuments) error {
	payload, err := json.Marshal(docs)
	if err != nil {
		return err
	}
	r.set(sessionID, keyDefaultDocuments, payload)
	return nil
}
