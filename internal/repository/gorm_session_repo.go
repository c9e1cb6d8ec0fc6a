package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/noah-isme/ta-apply-api/internal/models"
)

// SessionRecord is one persisted key/value pair of a session.
type SessionRecord struct {
	SessionID string         `gorm:"primaryKey;size:64"`
	StoreKey  string         `gorm:"primaryKey;size:32"`
	Value     datatypes.JSON `gorm:"not null"`
	UpdatedAt time.Time
}

type gormSessionRepository struct {
	db     *gorm.DB
	logger zerolog.Logger
}

// NewGormSessionRepository persists session state in a relational key/value
// table (sqlite or postgres, selected by configuration).
func NewGormSessionRepository(db *gorm.DB, logger zerolog.Logger) SessionRepository {
	return &gormSessionRepository{
		db:     db,
		logger: logger.With().Str("component", "gorm_session_repo").Logger(),
	}
}

func (r *gormSessionRepository) get(ctx context.Context, sessionID, key string) ([]byte, error) {
	var record SessionRecord
	err := r.db.WithContext(ctx).
		Where("session_id = ? AND store_key = ?", sessionID, key).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return []byte(record.Value), nil
}

func (r *gormSessionRepository) set(ctx context.Context, sessionID, key string, value []byte) error {
	record := SessionRecord{
		SessionID: sessionID,
		StoreKey:  key,
		Value:     datatypes.JSON(value),
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "session_id"}, {Name: "store_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&record).Error
}

func (r *gormSessionRepository) Applications(ctx context.Context, sessionID string) ([]models.Application, error) {
	data, err := r.get(ctx, sessionID, keyApplications)
	if err != nil {
		return nil, err
	}
	return decodeApplications(data, r.logger), nil
}

func (r *gormSessionRepository) SaveApplications(ctx context.Context, sessionID string, apps []models.Application) error {
	payload, err := json.Marshal(apps)
	if err != nil {
		return err
	}
	return r.set(ctx, sessionID, keyApplications, payload)
}

func (r *gormSessionRepository) SelectedPosting(ctx context.Context, sessionID string) (string, error) {
	data, err := r.get(ctx, sessionID, keySelectedPosting)
	if err != nil {
		return "", err
	}
	return decodeSelectedPosting(data, r.logger), nil
}

func (r *gormSessionRepository) SaveSelectedPosting(ctx context.Context, sessionID, postingID string) error {
	payload, err := json.Marshal(postingID)
	if err != nil {
		return err
	}
	return r.set(ctx, sessionID, keySelectedPosting, payload)
}

func (r *gormSessionRepository) DefaultDocuments(ctx context.Context, sessionID string) (models.DefaultDocuments, error) {
	data, err := r.get(ctx, sessionID, keyDefaultDocuments)
	if err != nil {
		return models.DefaultDocuments{}, err
	}
	return decodeDefaultDocuments(data, r.logger), nil
}

func (r *gormSessionRepository) SaveDefaultDocuments(ctx context.Context, sessionID string, docs models.DefaultDocuments) error {
	payload, err := json.Marshal(docs)
	if err != nil {
		return err
	}
	return r.set(ctx, sessionID, keyDefaultDocuments, payload)
}
