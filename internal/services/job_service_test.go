package services_test

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"jobboard/internal/models/db_models"
	"jobboard/internal/models/request_models"
	"jobboard/internal/repositories"
	"jobboard/internal/repositories/mocks"
	"jobboard/internal/services"
	"jobboard/internal/testutil"
	"jobboard/pkg/utils"
)

func TestJobService_SaveMovesJobOffBoard(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	admin := testutil.CreateUser(t, db, "admin", db_models.RoleAdmin)
	user := testutil.CreateUser(t, db, "alice", db_models.RoleUser)
	j1 := testutil.CreateJob(t, db, admin, "one", "Acme")
	testutil.CreateJob(t, db, admin, "two", "Acme")

	svc := services.NewJobService(repositories.NewJobRepository(db), repositories.NewFavoriteRepository(db))

	board, err := svc.Save(ctx, user.ID, j1.ID)
	require.NoError(t, err)
	require.Len(t, board, 1)
	assert.Equal(t, "two", board[0].Title)

	// saving twice is harmless
	_, err = svc.Save(ctx, user.ID, j1.ID)
	require.NoError(t, err)

	saved, err := svc.Saved(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, saved, 1)
	assert.Equal(t, j1.ID, saved[0].ID)

	saved, err = svc.Unsave(ctx, user.ID, j1.ID)
	require.NoError(t, err)
	assert.Empty(t, saved)

	_, err = svc.Save(ctx, user.ID, uuid.New())
	assert.ErrorIs(t, err, utils.ErrJobNotFound)
}

func TestJobService_SearchPassesFields(t *testing.T) {
	jobs := new(mocks.JobRepository)
	svc := services.NewJobService(jobs, nil)
	ctx := context.Background()

	jobs.On("Match", ctx, repositories.JobFilter{Title: "data", CompanyName: "acme"}).
		Return([]db_models.Job{{Title: "Data Analyst"}}, nil).Once()

	out, err := svc.Search(ctx, request_models.JobSearchRequest{Title: "data", CompanyName: "acme"})
	require.NoError(t, err)
	assert.Len(t, out, 1)
	jobs.AssertExpectations(t)
}

func TestJobService_UpdateNeedsFields(t *testing.T) {
	jobs := new(mocks.JobRepository)
	svc := services.NewJobService(jobs, nil)

	_, err := svc.Update(context.Background(), uuid.New(), request_models.UpdateJobRequest{})
	assert.ErrorIs(t, err, utils.ErrNothingToUpdate)
	jobs.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestJobService_UpdateApproves(t *testing.T) {
	jobs := new(mocks.JobRepository)
	svc := services.NewJobService(jobs, nil)
	ctx := context.Background()
	id := uuid.New()
	approved := true

	jobs.On("Update", ctx, id, map[string]interface{}{"approved": true}).Return(nil).Once()
	jobs.On("FindByID", ctx, id).Return(&db_models.Job{Title: "x", Approved: true}, nil).Once()

	job, err := svc.Update(ctx, id, request_models.UpdateJobRequest{Approved: &approved})
	require.NoError(t, err)
	assert.True(t, job.Approved)
	jobs.AssertExpectations(t)
}

func TestJobService_ExportCSV(t *testing.T) {
	jobs := new(mocks.JobRepository)
	svc := services.NewJobService(jobs, nil)
	ctx := context.Background()

	job := db_models.Job{Title: "Analyst, Data", CompanyName: "Acme", Source: db_models.SourceGitHub}
	job.ID = uuid.New()
	jobs.On("Match", ctx, repositories.JobFilter{}).Return([]db_models.Job{job}, nil).Once()

	var buf bytes.Buffer
	require.NoError(t, svc.ExportCSV(ctx, repositories.JobFilter{}, &buf))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "title", rows[0][1])
	assert.Equal(t, "Analyst, Data", rows[1][1])
	assert.Equal(t, "GitHub Jobs", rows[1][6])
	assert.Equal(t, "false", rows[1][7])
}
