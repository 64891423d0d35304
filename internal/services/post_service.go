package services

import (
	"context"

	"github.com/google/uuid"

	"jobboard/internal/models/db_models"
	"jobboard/internal/models/request_models"
	"jobboard/internal/models/response_models"
	"jobboard/internal/repositories"
	"jobboard/pkg/utils"
)

type PostService interface {
	Create(ctx context.Context, adminID uuid.UUID, request request_models.CreatePostRequest) (*db_models.Post, error)
	List(ctx context.Context, page, pageSize int) (*response_models.Page[db_models.Post], error)
}

type postService struct {
	posts repositories.PostRepository
}

func NewPostService(posts repositories.PostRepository) PostService {
	return &postService{posts: posts}
}

func (s *postService) Create(ctx context.Context, adminID uuid.UUID, request request_models.CreatePostRequest) (*db_models.Post, error) {
	post := &db_models.Post{
		Title:        request.Title,
		Content:      request.Content,
		ImageAddress: request.ImageAddress,
		Hyperlink:    request.Hyperlink,
		AdminID:      adminID,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, utils.ErrDatabaseError
	}
	return post, nil
}

func (s *postService) List(ctx context.Context, page, pageSize int) (*response_models.Page[db_models.Post], error) {
	posts, total, err := s.posts.List(ctx, page, pageSize)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	return &response_models.Page[db_models.Post]{
		Items:    posts,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}
