package repositories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"jobboard/internal/models/db_models"
)

type FavoriteRepository interface {
	Add(ctx context.Context, userID, jobID uuid.UUID) error
	Remove(ctx context.Context, userID, jobID uuid.UUID) error
	CountByUser(ctx context.Context, userID uuid.UUID) (int64, error)
}

type favoriteRepository struct {
	db *gorm.DB
}

func NewFavoriteRepository(db *gorm.DB) FavoriteRepository {
	return &favoriteRepository{db: db}
}

// Add is idempotent: a second bookmark of the same job is a no-op.
func (r *favoriteRepository) Add(ctx context.Context, userID, jobID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&db_models.Favorite{UserID: userID, JobID: jobID}).Error
}

func (r *favoriteRepository) Remove(ctx context.Context, userID, jobID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND job_id = ?", userID, jobID).
		Delete(&db_models.Favorite{}).Error
}

func (r *favoriteRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&db_models.Favorite{}).
		Where("user_id = ?", userID).
		Count(&n).Error
	return n, err
}
