package sources

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"jobboard/internal/models/db_models"
	"jobboard/pkg/logger"
)

// GitHubAdapter reads the positions.json API: a top-level array with flat
// title, description, company, created_at and how_to_apply keys.
type GitHubAdapter struct {
	endpoint string
	fetcher  fetcher
}

func NewGitHubAdapter(endpoint string, client *http.Client) *GitHubAdapter {
	return &GitHubAdapter{endpoint: endpoint, fetcher: newFetcher(client)}
}

func (g *GitHubAdapter) Source() db_models.JobSource {
	return db_models.SourceGitHub
}

func (g *GitHubAdapter) BuildQuery(c Criteria) string {
	return buildURL(g.endpoint,
		[2]string{"description", c.Keywords},
		[2]string{"location", c.Location},
		[2]string{"full_time", strconv.FormatBool(c.FullTime)},
	)
}

func (g *GitHubAdapter) Fetch(ctx context.Context, rawURL string) Response {
	return g.fetcher.get(ctx, g.Source(), rawURL)
}

func (g *GitHubAdapter) Normalize(resp Response) []Listing {
	listings := []Listing{}
	if !resp.OK() {
		return listings
	}

	var rows []map[string]any
	if err := json.Unmarshal(resp.Body, &rows); err != nil {
		logger.Warn().Err(err).Str("source", string(g.Source())).Msg("unexpected payload shape")
		return listings
	}

	for _, row := range rows {
		listings = append(listings, Listing{
			Title:       str(row["title"]),
			Description: str(row["description"]),
			CompanyName: str(row["company"]),
			DatePosted:  str(row["created_at"]),
			Link:        str(row["how_to_apply"]),
			Source:      g.Source(),
		})
	}
	return listings
}
