package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"jobboard/internal/infra"
	"jobboard/internal/models/db_models"
	"jobboard/pkg/utils"
)

// JobFilter narrows job queries. Text fields are case-insensitive contains
// matches and combine with AND; empty fields are ignored.
type JobFilter struct {
	Title       string
	Description string
	CompanyName string
	Source      db_models.JobSource
	Approved    *bool
}

func (f JobFilter) apply(q *gorm.DB) *gorm.DB {
	if f.Title != "" {
		q = q.Where("LOWER(title) LIKE ?", like(f.Title))
	}
	if f.Description != "" {
		q = q.Where("LOWER(description) LIKE ?", like(f.Description))
	}
	if f.CompanyName != "" {
		q = q.Where("LOWER(company_name) LIKE ?", like(f.CompanyName))
	}
	if f.Source != "" {
		q = q.Where("source = ?", f.Source)
	}
	if f.Approved != nil {
		q = q.Where("approved = ?", *f.Approved)
	}
	return q
}

type JobRepository interface {
	InsertBatch(ctx context.Context, jobs []*db_models.Job) error
	FindByID(ctx context.Context, id uuid.UUID) (*db_models.Job, error)
	Match(ctx context.Context, filter JobFilter) ([]db_models.Job, error)
	Search(ctx context.Context, filter JobFilter, page, pageSize int) ([]db_models.Job, int64, error)
	ListUnfavorited(ctx context.Context, userID uuid.UUID) ([]db_models.Job, error)
	ListFavorited(ctx context.Context, userID uuid.UUID) ([]db_models.Job, error)
	Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error
}

type jobRepository struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) JobRepository {
	return &jobRepository{db: db}
}

// InsertBatch writes every job in one transaction; a failure leaves none.
func (r *jobRepository) InsertBatch(ctx context.Context, jobs []*db_models.Job) error {
	if len(jobs) == 0 {
		return nil
	}

	tx := infra.StartTransaction(r.db.WithContext(ctx))
	if tx.Error != nil {
		return tx.Error
	}

	var err error
	for _, job := range jobs {
		if err = tx.Create(job).Error; err != nil {
			break
		}
	}
	return infra.ReleaseTransaction(tx, err)
}

func (r *jobRepository) FindByID(ctx context.Context, id uuid.UUID) (*db_models.Job, error) {
	var job db_models.Job
	err := r.db.WithContext(ctx).First(&job, "id = ?", id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &job, nil
}

func (r *jobRepository) Match(ctx context.Context, filter JobFilter) ([]db_models.Job, error) {
	var jobs []db_models.Job
	err := filter.apply(r.db.WithContext(ctx).Model(&db_models.Job{})).
		Order("created_at DESC").
		Find(&jobs).Error
	return jobs, err
}

func (r *jobRepository) Search(ctx context.Context, filter JobFilter, page, pageSize int) ([]db_models.Job, int64, error) {
	q := filter.apply(r.db.WithContext(ctx).Model(&db_models.Job{})).Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var jobs []db_models.Job
	err := q.Order("created_at DESC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&jobs).Error
	return jobs, total, err
}

func (r *jobRepository) favoritesOf(ctx context.Context, userID uuid.UUID) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&db_models.Favorite{}).
		Select("job_id").
		Where("user_id = ?", userID)
}

func (r *jobRepository) ListUnfavorited(ctx context.Context, userID uuid.UUID) ([]db_models.Job, error) {
	var jobs []db_models.Job
	err := r.db.WithContext(ctx).
		Where("id NOT IN (?)", r.favoritesOf(ctx, userID)).
		Order("created_at DESC").
		Find(&jobs).Error
	return jobs, err
}

func (r *jobRepository) ListFavorited(ctx context.Context, userID uuid.UUID) ([]db_models.Job, error) {
	var jobs []db_models.Job
	err := r.db.WithContext(ctx).
		Where("id IN (?)", r.favoritesOf(ctx, userID)).
		Order("created_at DESC").
		Find(&jobs).Error
	return jobs, err
}

func (r *jobRepository) Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	res := r.db.WithContext(ctx).
		Model(&db_models.Job{}).
		Where("id = ?", id).
		Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return utils.ErrJobNotFound
	}
	return nil
}
