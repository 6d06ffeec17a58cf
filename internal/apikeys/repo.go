package apikeys

import (
	"context"

	"github.com/angelmondragon/scancart-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository persists shared API keys.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs an API key repository bound to the provided DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindByKey loads the row matching key.
func (r *Repository) FindByKey(ctx context.Context, key string) (*models.APIKey, error) {
	var row models.APIKey
	err := r.db.WithContext(ctx).
		Where(map[string]any{"apiKey": key}).
		First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// Create inserts a new key.
func (r *Repository) Create(ctx context.Context, key *models.APIKey) error {
	return r.db.WithContext(ctx).Create(key).Error
}
