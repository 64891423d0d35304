package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	dbm "jobboard/internal/models/db_models"
	resp "jobboard/internal/models/response_models"
	"jobboard/internal/repositories"
)

const topCompaniesLimit = 10

type AnalysisService interface {
	UserReport(ctx context.Context, userID uuid.UUID) (*resp.AnalysisReport, error)
	AdminDashboard(ctx context.Context) (*resp.AdminDashboard, error)
}

type analysisService struct {
	repo repositories.AnalysisRepository
	now  func() time.Time
}

func NewAnalysisService(repo repositories.AnalysisRepository) AnalysisService {
	return &analysisService{repo: repo, now: time.Now}
}

func toSourceCounts(rows []repositories.SourceRow) []resp.SourceCount {
	out := make([]resp.SourceCount, 0, len(rows))
	for _, r := range rows {
		out = append(out, resp.SourceCount{Source: r.Source, Count: r.Count})
	}
	return out
}

func (s *analysisService) UserReport(ctx context.Context, userID uuid.UUID) (*resp.AnalysisReport, error) {
	totalJobs, err := s.repo.CountJobs(ctx)
	if err != nil {
		return nil, err
	}

	bySource, err := s.repo.JobsBySource(ctx)
	if err != nil {
		return nil, err
	}

	companies, err := s.repo.TopCompanies(ctx, topCompaniesLimit)
	if err != nil {
		return nil, err
	}
	top := make([]resp.CompanyCount, 0, len(companies))
	for _, c := range companies {
		top = append(top, resp.CompanyCount{CompanyName: c.CompanyName, Count: c.Count})
	}

	saved, err := s.repo.CountFavorites(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &resp.AnalysisReport{
		TotalJobs:    totalJobs,
		BySource:     toSourceCounts(bySource),
		TopCompanies: top,
		SavedJobs:    saved,
	}, nil
}

func (s *analysisService) AdminDashboard(ctx context.Context) (*resp.AdminDashboard, error) {
	var (
		k   resp.AdminKPIs
		err error
	)

	if k.TotalUsers, err = s.repo.CountUsers(ctx); err != nil {
		return nil, err
	}
	if k.ExclusiveUsers, err = s.repo.CountUsersByStatus(ctx, dbm.EntitlementExclusive); err != nil {
		return nil, err
	}
	if k.NewUsers7d, err = s.repo.CountNewUsers(ctx, s.now().AddDate(0, 0, -7)); err != nil {
		return nil, err
	}
	if k.TotalJobs, err = s.repo.CountJobs(ctx); err != nil {
		return nil, err
	}
	if k.PendingApproval, err = s.repo.CountPendingJobs(ctx); err != nil {
		return nil, err
	}
	if k.TotalPosts, err = s.repo.CountPosts(ctx); err != nil {
		return nil, err
	}
	if k.TotalPayments, err = s.repo.CountPayments(ctx); err != nil {
		return nil, err
	}

	bySource, err := s.repo.JobsBySource(ctx)
	if err != nil {
		return nil, err
	}

	return &resp.AdminDashboard{KPIs: k, BySource: toSourceCounts(bySource)}, nil
}
