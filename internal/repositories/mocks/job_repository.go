package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"jobboard/internal/models/db_models"
	"jobboard/internal/repositories"
)

type JobRepository struct {
	mock.Mock
}

func jobsOf(args mock.Arguments) []db_models.Job {
	jobs, _ := args.Get(0).([]db_models.Job)
	return jobs
}

func (m *JobRepository) InsertBatch(ctx context.Context, jobs []*db_models.Job) error {
	args := m.Called(ctx, jobs)
	return args.Error(0)
}

func (m *JobRepository) FindByID(ctx context.Context, id uuid.UUID) (*db_models.Job, error) {
	args := m.Called(ctx, id)
	job, _ := args.Get(0).(*db_models.Job)
	return job, args.Error(1)
}

func (m *JobRepository) Match(ctx context.Context, filter repositories.JobFilter) ([]db_models.Job, error) {
	args := m.Called(ctx, filter)
	return jobsOf(args), args.Error(1)
}

func (m *JobRepository) Search(ctx context.Context, filter repositories.JobFilter, page, pageSize int) ([]db_models.Job, int64, error) {
	args := m.Called(ctx, filter, page, pageSize)
	return jobsOf(args), args.Get(1).(int64), args.Error(2)
}

func (m *JobRepository) ListUnfavorited(ctx context.Context, userID uuid.UUID) ([]db_models.Job, error) {
	args := m.Called(ctx, userID)
	return jobsOf(args), args.Error(1)
}

func (m *JobRepository) ListFavorited(ctx context.Context, userID uuid.UUID) ([]db_models.Job, error) {
	args := m.Called(ctx, userID)
	return jobsOf(args), args.Error(1)
}

func (m *JobRepository) Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	args := m.Called(ctx, id, fields)
	return args.Error(0)
}
