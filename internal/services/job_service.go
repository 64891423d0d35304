package services

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"strconv"

	"github.com/google/uuid"

	"jobboard/internal/models/db_models"
	"jobboard/internal/models/request_models"
	"jobboard/internal/models/response_models"
	"jobboard/internal/repositories"
	"jobboard/pkg/logger"
	"jobboard/pkg/utils"
)

type JobServiceInterface interface {
	// user side
	Board(ctx context.Context, userID uuid.UUID) ([]db_models.Job, error)
	Save(ctx context.Context, userID, jobID uuid.UUID) ([]db_models.Job, error)
	Unsave(ctx context.Context, userID, jobID uuid.UUID) ([]db_models.Job, error)
	Saved(ctx context.Context, userID uuid.UUID) ([]db_models.Job, error)
	Search(ctx context.Context, request request_models.JobSearchRequest) ([]db_models.Job, error)

	// admin side
	List(ctx context.Context, filter repositories.JobFilter, page, pageSize int) (*response_models.Page[db_models.Job], error)
	Update(ctx context.Context, jobID uuid.UUID, request request_models.UpdateJobRequest) (*db_models.Job, error)
	ExportCSV(ctx context.Context, filter repositories.JobFilter, w io.Writer) error
}

type jobService struct {
	jobs      repositories.JobRepository
	favorites repositories.FavoriteRepository
}

func NewJobService(jobs repositories.JobRepository, favorites repositories.FavoriteRepository) JobServiceInterface {
	return &jobService{jobs: jobs, favorites: favorites}
}

// Board lists the jobs the user has not bookmarked yet.
func (s *jobService) Board(ctx context.Context, userID uuid.UUID) ([]db_models.Job, error) {
	jobs, err := s.jobs.ListUnfavorited(ctx, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	return jobs, nil
}

func (s *jobService) Save(ctx context.Context, userID, jobID uuid.UUID) ([]db_models.Job, error) {
	job, err := s.jobs.FindByID(ctx, jobID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if job == nil {
		return nil, utils.ErrJobNotFound
	}
	if err := s.favorites.Add(ctx, userID, jobID); err != nil {
		logger.Error().Err(err).Str("job_id", jobID.String()).Msg("save job failed")
		return nil, utils.ErrDatabaseError
	}
	return s.Board(ctx, userID)
}

func (s *jobService) Unsave(ctx context.Context, userID, jobID uuid.UUID) ([]db_models.Job, error) {
	if err := s.favorites.Remove(ctx, userID, jobID); err != nil {
		return nil, utils.ErrDatabaseError
	}
	return s.Saved(ctx, userID)
}

func (s *jobService) Saved(ctx context.Context, userID uuid.UUID) ([]db_models.Job, error) {
	jobs, err := s.jobs.ListFavorited(ctx, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	return jobs, nil
}

// Search ANDs the non-empty fields; an empty request matches every job.
func (s *jobService) Search(ctx context.Context, request request_models.JobSearchRequest) ([]db_models.Job, error) {
	jobs, err := s.jobs.Match(ctx, repositories.JobFilter{
		Title:       request.Title,
		Description: request.Description,
		CompanyName: request.CompanyName,
	})
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	return jobs, nil
}

func (s *jobService) List(ctx context.Context, filter repositories.JobFilter, page, pageSize int) (*response_models.Page[db_models.Job], error) {
	jobs, total, err := s.jobs.Search(ctx, filter, page, pageSize)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	return &response_models.Page[db_models.Job]{
		Items:    jobs,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

func (s *jobService) Update(ctx context.Context, jobID uuid.UUID, request request_models.UpdateJobRequest) (*db_models.Job, error) {
	fields := map[string]interface{}{}
	if request.Title != nil {
		fields["title"] = *request.Title
	}
	if request.Description != nil {
		fields["description"] = *request.Description
	}
	if request.CompanyName != nil {
		fields["company_name"] = *request.CompanyName
	}
	if request.DatePosted != nil {
		fields["date_posted"] = *request.DatePosted
	}
	if request.Link != nil {
		fields["link"] = *request.Link
	}
	if request.Approved != nil {
		fields["approved"] = *request.Approved
	}
	if len(fields) == 0 {
		return nil, utils.ErrNothingToUpdate
	}

	if err := s.jobs.Update(ctx, jobID, fields); err != nil {
		if errors.Is(err, utils.ErrJobNotFound) {
			return nil, err
		}
		return nil, utils.ErrDatabaseError
	}
	return s.jobs.FindByID(ctx, jobID)
}

var exportHeader = []string{"id", "title", "description", "company_name", "date_posted", "link", "source", "approved", "admin_id"}

func (s *jobService) ExportCSV(ctx context.Context, filter repositories.JobFilter, w io.Writer) error {
	jobs, err := s.jobs.Match(ctx, filter)
	if err != nil {
		return utils.ErrDatabaseError
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return err
	}
	for _, j := range jobs {
		if err := cw.Write([]string{
			j.ID.String(),
			j.Title,
			j.Description,
			j.CompanyName,
			j.DatePosted,
			j.Link,
			string(j.Source),
			strconv.FormatBool(j.Approved),
			j.AdminID.String(),
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
