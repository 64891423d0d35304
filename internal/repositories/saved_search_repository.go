package repositories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"jobboard/internal/models/db_models"
	"jobboard/pkg/utils"
)

type SavedSearchRepository interface {
	Create(ctx context.Context, search *db_models.SavedSearch) error
	ListByAdmin(ctx context.Context, adminID uuid.UUID) ([]db_models.SavedSearch, error)
	ListActive(ctx context.Context) ([]db_models.SavedSearch, error)
	Delete(ctx context.Context, id, adminID uuid.UUID) error
	MarkRun(ctx context.Context, id uuid.UUID, at int64, inserted int) error
}

type savedSearchRepository struct {
	db *gorm.DB
}

func NewSavedSearchRepository(db *gorm.DB) SavedSearchRepository {
	return &savedSearchRepository{db: db}
}

func (r *savedSearchRepository) Create(ctx context.Context, search *db_models.SavedSearch) error {
	return r.db.WithContext(ctx).Create(search).Error
}

func (r *savedSearchRepository) ListByAdmin(ctx context.Context, adminID uuid.UUID) ([]db_models.SavedSearch, error) {
	var out []db_models.SavedSearch
	err := r.db.WithContext(ctx).
		Where("admin_id = ?", adminID).
		Order("created_at DESC").
		Find(&out).Error
	return out, err
}

func (r *savedSearchRepository) ListActive(ctx context.Context) ([]db_models.SavedSearch, error) {
	var out []db_models.SavedSearch
	err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("created_at ASC").
		Find(&out).Error
	return out, err
}

func (r *savedSearchRepository) Delete(ctx context.Context, id, adminID uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND admin_id = ?", id, adminID).
		Delete(&db_models.SavedSearch{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return utils.ErrSearchNotFound
	}
	return nil
}

func (r *savedSearchRepository) MarkRun(ctx context.Context, id uuid.UUID, at int64, inserted int) error {
	return r.db.WithContext(ctx).
		Model(&db_models.SavedSearch{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"last_run_at":   at,
			"last_inserted": inserted,
		}).Error
}
