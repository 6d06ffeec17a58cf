package users

import (
	"context"

	"github.com/angelmondragon/scancart-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository exposes user-related persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a users repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new user and returns the persisted model.
func (r *Repository) Create(ctx context.Context, dto CreateUserDTO) (*models.User, error) {
	user := dto.ToModel()
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// FindByID loads a user by their login id.
func (r *Repository) FindByID(ctx context.Context, userID string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Where(map[string]any{"Userid": userID}).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdatePassword replaces the stored credential, used to upgrade legacy
// plaintext rows to a hash after a successful login.
func (r *Repository) UpdatePassword(ctx context.Context, userID, password string) error {
	return r.db.WithContext(ctx).
		Model(&models.User{}).
		Where(map[string]any{"Userid": userID}).
		UpdateColumn("Password", password).Error
}
