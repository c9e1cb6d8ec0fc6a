package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/noah-isme/ta-apply-api/internal/models"
)

type redisSessionRepository struct {
	client *redis.Client
	logger zerolog.Logger
}

// NewRedisSessionRepository persists session state in Redis so it survives
// process restarts. Values never expire; a session's state is small and the
// store is the system of record for that session.
func NewRedisSessionRepository(client *redis.Client, logger zerolog.Logger) SessionRepository {
	return &redisSessionRepository{
		client: client,
		logger: logger.With().Str("component", "redis_session_repo").Logger(),
	}
}

func sessionKey(sessionID, key string) string {
	return fmt.Sprintf("session:%s:%s", sessionID, key)
}

func (r *redisSessionRepository) get(ctx context.Context, sessionID, key string) ([]byte, error) {
	data, err := r.client.Get(ctx, sessionKey(sessionID, key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read session key %s: %w", key, err)
	}
	return data, nil
}

func (r *redisSessionRepository) set(ctx context.Context, sessionID, key string, value []byte) error {
	if err := r.client.Set(ctx, sessionKey(sessionID, key), value, 0).Err(); err != nil {
		return fmt.Errorf("failed to write session key %s: %w", key, err)
	}
	return nil
}

func (r *redisSessionRepository) Applications(ctx context.Context, sessionID string) ([]models.Application, error) {
	data, err := r.get(ctx, sessionID, keyApplications)
	if err != nil {
		return nil, err
	}
	return decodeApplications(data, r.logger), nil
}

func (r *redisSessionRepository) SaveApplications(ctx context.Context, sessionID string, apps []models.Application) error {
	payload, err := json.Marshal(apps)
	if err != nil {
		return err
	}
	return r.set(ctx, sessionID, keyApplications, payload)
}

func (r *redisSessionRepository) SelectedPosting(ctx context.Context, sessionID string) (string, error) {
	data, err := r.get(ctx, sessionID, keySelectedPosting)
	if err != nil {
		return "", err
	}
	return decodeSelectedPosting(data, r.logger), nil
}

func (r *redisSessionRepository) SaveSelectedPosting(ctx context.Context, sessionID, postingID string) error {
	payload, err := json.Marshal(postingID)
	if err != nil {
		return err
	}
	return r.set(ctx, sessionID, keySelectedPosting, payload)
}

func (r *redisSessionRepository) DefaultDocuments(ctx context.Context, sessionID string) (models.DefaultDocuments, error) {
	data, err := r.get(ctx, sessionID, keyDefaultDocuments)
	if err != nil {
		return models.DefaultDocuments{}, err
	}
	return decodeDefaultDocuments(data, r.logger), nil
}

func (r *redisSessionRepository) SaveDefaultDocuments(ctx context.Context, sessionID string, docs models.DefaultDocuments) error {
	payload, err := json.Marshal(docs)
	if err != nil {
		return err
	}
	return r.set(ctx, sessionID, keyDefaultDocuments, payload)
}
