package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	dbm "jobboard/internal/models/db_models"
)

type AnalysisRepository interface {
	// KPIs / counts
	CountUsers(ctx context.Context) (int64, error)
	CountUsersByStatus(ctx context.Context, status dbm.Entitlement) (int64, error)
	CountNewUsers(ctx context.Context, since time.Time) (int64, error)
	CountJobs(ctx context.Context) (int64, error)
	CountPendingJobs(ctx context.Context) (int64, error)
	CountPosts(ctx context.Context) (int64, error)
	CountPayments(ctx context.Context) (int64, error)
	CountFavorites(ctx context.Context, userID uuid.UUID) (int64, error)

	// Breakdowns
	JobsBySource(ctx context.Context) ([]SourceRow, error)
	TopCompanies(ctx context.Context, limit int) ([]CompanyRow, error)
}

type analysisRepository struct {
	db *gorm.DB
}

func NewAnalysisRepository(db *gorm.DB) AnalysisRepository {
	return &analysisRepository{db: db}
}

// ---------- Row helpers ----------
type SourceRow struct {
	Source string `gorm:"column:source"`
	Count  int64  `gorm:"column:count"`
}

type CompanyRow struct {
	CompanyName string `gorm:"column:company_name"`
	Count       int64  `gorm:"column:count"`
}

func (r *analysisRepository) count(ctx context.Context, model interface{}, where ...interface{}) (int64, error) {
	var n int64
	q := r.db.WithContext(ctx).Model(model)
	if len(where) > 0 {
		q = q.Where(where[0], where[1:]...)
	}
	err := q.Count(&n).Error
	return n, err
}

// ---------- Counts ----------
func (r *analysisRepository) CountUsers(ctx context.Context) (int64, error) {
	return r.count(ctx, &dbm.User{})
}

func (r *analysisRepository) CountUsersByStatus(ctx context.Context, status dbm.Entitlement) (int64, error) {
	return r.count(ctx, &dbm.User{}, "status = ?", status)
}

func (r *analysisRepository) CountNewUsers(ctx context.Context, since time.Time) (int64, error) {
	return r.count(ctx, &dbm.User{}, "created_at >= ?", since.Unix())
}

func (r *analysisRepository) CountJobs(ctx context.Context) (int64, error) {
	return r.count(ctx, &dbm.Job{})
}

func (r *analysisRepository) CountPendingJobs(ctx context.Context) (int64, error) {
	return r.count(ctx, &dbm.Job{}, "approved = ?", false)
}

func (r *analysisRepository) CountPosts(ctx context.Context) (int64, error) {
	return r.count(ctx, &dbm.Post{})
}

func (r *analysisRepository) CountPayments(ctx context.Context) (int64, error) {
	return r.count(ctx, &dbm.Payment{})
}

func (r *analysisRepository) CountFavorites(ctx context.Context, userID uuid.UUID) (int64, error) {
	return r.count(ctx, &dbm.Favorite{}, "user_id = ?", userID)
}

// ---------- Breakdowns ----------
func (r *analysisRepository) JobsBySource(ctx context.Context) ([]SourceRow, error) {
	var rows []SourceRow
	err := r.db.WithContext(ctx).
		Model(&dbm.Job{}).
		Select("source, COUNT(*) AS count").
		Group("source").
		Order("count DESC").
		Find(&rows).Error
	return rows, err
}

func (r *analysisRepository) TopCompanies(ctx context.Context, limit int) ([]CompanyRow, error) {
	var rows []CompanyRow
	err := r.db.WithContext(ctx).
		Model(&dbm.Job{}).
		Select("company_name, COUNT(*) AS count").
		Where("company_name <> ''").
		Group("company_name").
		Order("count DESC, company_name ASC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}
