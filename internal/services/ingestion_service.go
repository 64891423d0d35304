package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"jobboard/internal/models/db_models"
	"jobboard/internal/models/response_models"
	"jobboard/internal/repositories"
	"jobboard/internal/sources"
	"jobboard/pkg/logger"
	"jobboard/pkg/utils"
)

type IngestionServiceInterface interface {
	Run(ctx context.Context, source db_models.JobSource, criteria sources.Criteria, adminID uuid.UUID) (*response_models.IngestionResult, error)
	SaveSearch(ctx context.Context, source db_models.JobSource, criteria sources.Criteria, adminID uuid.UUID) (*db_models.SavedSearch, error)
	ListSearches(ctx context.Context, adminID uuid.UUID) ([]db_models.SavedSearch, error)
	DeleteSearch(ctx context.Context, id, adminID uuid.UUID) error
	RunSavedSearches(ctx context.Context) (int, error)
}

type ingestionService struct {
	registry *sources.Registry
	filter   *sources.Filter
	users    repositories.UserRepository
	jobs     repositories.JobRepository
	searches repositories.SavedSearchRepository
	now      func() time.Time
}

func NewIngestionService(
	registry *sources.Registry,
	filter *sources.Filter,
	users repositories.UserRepository,
	jobs repositories.JobRepository,
	searches repositories.SavedSearchRepository,
) IngestionServiceInterface {
	return &ingestionService{
		registry: registry,
		filter:   filter,
		users:    users,
		jobs:     jobs,
		searches: searches,
		now:      time.Now,
	}
}

func (s *ingestionService) requireAdmin(ctx context.Context, adminID uuid.UUID) error {
	user, err := s.users.FindByID(ctx, adminID)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if user == nil || !user.IsAdmin() {
		return utils.ErrNotAdmin
	}
	return nil
}

// Run fetches one page from the source and stores every listing that passes
// the content filter as an unapproved job. A failed fetch is not an error:
// the result carries zero inserts and the reason.
func (s *ingestionService) Run(ctx context.Context, source db_models.JobSource, criteria sources.Criteria, adminID uuid.UUID) (*response_models.IngestionResult, error) {
	if err := s.requireAdmin(ctx, adminID); err != nil {
		return nil, err
	}
	adapter, ok := s.registry.Get(source)
	if !ok {
		return nil, utils.ErrUnknownSource
	}

	rawURL := adapter.BuildQuery(criteria)
	resp := adapter.Fetch(ctx, rawURL)
	listings := adapter.Normalize(resp)
	kept := s.filter.Apply(listings)

	result := &response_models.IngestionResult{
		Source:   string(source),
		URL:      rawURL,
		Fetched:  len(listings),
		Filtered: len(listings) - len(kept),
	}
	if resp.Err != nil {
		result.FetchError = resp.Err.Error()
	}

	batch := make([]*db_models.Job, 0, len(kept))
	for _, l := range kept {
		batch = append(batch, &db_models.Job{
			Title:       l.Title,
			Description: l.Description,
			CompanyName: l.CompanyName,
			DatePosted:  l.DatePosted,
			Link:        l.Link,
			Source:      l.Source,
			Approved:    false,
			AdminID:     adminID,
		})
	}
	if err := s.jobs.InsertBatch(ctx, batch); err != nil {
		logger.Error().Err(err).Str("source", string(source)).Msg("ingestion insert failed")
		return nil, utils.ErrDatabaseError
	}
	result.Inserted = len(batch)

	logger.Info().
		Str("source", result.Source).
		Str("admin_id", adminID.String()).
		Int("fetched", result.Fetched).
		Int("filtered", result.Filtered).
		Int("inserted", result.Inserted).
		Msg("ingestion finished")
	return result, nil
}

func (s *ingestionService) SaveSearch(ctx context.Context, source db_models.JobSource, criteria sources.Criteria, adminID uuid.UUID) (*db_models.SavedSearch, error) {
	if err := s.requireAdmin(ctx, adminID); err != nil {
		return nil, err
	}
	if _, ok := s.registry.Get(source); !ok {
		return nil, utils.ErrUnknownSource
	}

	search := &db_models.SavedSearch{
		AdminID:  adminID,
		Source:   source,
		Keywords: criteria.Keywords,
		Location: criteria.Location,
		FullTime: criteria.FullTime,
		Category: criteria.Category,
		Level:    criteria.Level,
		Page:     criteria.Page,
		Active:   true,
	}
	if err := s.searches.Create(ctx, search); err != nil {
		return nil, utils.ErrDatabaseError
	}
	return search, nil
}

func (s *ingestionService) ListSearches(ctx context.Context, adminID uuid.UUID) ([]db_models.SavedSearch, error) {
	out, err := s.searches.ListByAdmin(ctx, adminID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	return out, nil
}

func (s *ingestionService) DeleteSearch(ctx context.Context, id, adminID uuid.UUID) error {
	return s.searches.Delete(ctx, id, adminID)
}

// RunSavedSearches replays every active saved search as its owner and
// returns the number of jobs inserted. One failing search does not stop the
// rest.
func (s *ingestionService) RunSavedSearches(ctx context.Context) (int, error) {
	active, err := s.searches.ListActive(ctx)
	if err != nil {
		return 0, utils.ErrDatabaseError
	}

	total := 0
	for _, search := range active {
		if ctx.Err() != nil {
			return total, ctx.Err()
		}
		result, err := s.Run(ctx, search.Source, criteriaOf(search), search.AdminID)
		if err != nil {
			logger.Warn().Err(err).Str("search_id", search.ID.String()).Msg("saved search run failed")
			continue
		}
		total += result.Inserted
		if err := s.searches.MarkRun(ctx, search.ID, s.now().Unix(), result.Inserted); err != nil {
			logger.Warn().Err(err).Str("search_id", search.ID.String()).Msg("mark saved search failed")
		}
	}
	return total, nil
}

func criteriaOf(s db_models.SavedSearch) sources.Criteria {
	return sources.Criteria{
		Keywords: s.Keywords,
		Location: s.Location,
		FullTime: s.FullTime,
		Category: s.Category,
		Level:    s.Level,
		Page:     s.Page,
	}
}
