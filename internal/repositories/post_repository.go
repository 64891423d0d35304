package repositories

import (
	"context"

	"gorm.io/gorm"

	"jobboard/internal/models/db_models"
)

type PostRepository interface {
	Create(ctx context.Context, post *db_models.Post) error
	List(ctx context.Context, page, pageSize int) ([]db_models.Post, int64, error)
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *db_models.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

// List orders by title descending, the order the blog page shows.
func (r *postRepository) List(ctx context.Context, page, pageSize int) ([]db_models.Post, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&db_models.Post{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var posts []db_models.Post
	err := r.db.WithContext(ctx).
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Order("title DESC").
		Find(&posts).Error
	return posts, total, err
}
