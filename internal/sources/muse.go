package sources

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"jobboard/internal/models/db_models"
	"jobboard/pkg/logger"
)

// Categories and Levels accepted by the Muse public jobs API.
var (
	MuseCategories = []string{
		"Account Management", "Business & Strategy", "Creative & Design",
		"Customer Service", "Data Science", "Editorial", "Education",
		"Engineering", "Finance", "Fundraising & Development",
		"Healthcare & Medicine", "HR & Recruiting", "Legal",
		"Marketing & PR", "Operations", "Project & Product Management",
		"Retail", "Sales", "Social Media & Community",
	}
	MuseLevels = []string{"Entry level", "Mid level", "Senior level", "Internship", "management"}
)

type museEnvelope struct {
	Results []map[string]any `json:"results"`
}

// MuseAdapter reads the public jobs API. Results sit under "results" and
// company/refs are objects.
type MuseAdapter struct {
	endpoint string
	fetcher  fetcher
}

func NewMuseAdapter(endpoint string, client *http.Client) *MuseAdapter {
	return &MuseAdapter{endpoint: endpoint, fetcher: newFetcher(client)}
}

func (m *MuseAdapter) Source() db_models.JobSource {
	return db_models.SourceMuse
}

func (m *MuseAdapter) BuildQuery(c Criteria) string {
	return buildURL(m.endpoint,
		[2]string{"position_name", c.Keywords},
		[2]string{"category", c.Category},
		[2]string{"page", strconv.Itoa(c.Page)},
		[2]string{"level", c.Level},
	)
}

func (m *MuseAdapter) Fetch(ctx context.Context, rawURL string) Response {
	return m.fetcher.get(ctx, m.Source(), rawURL)
}

func (m *MuseAdapter) Normalize(resp Response) []Listing {
	listings := []Listing{}
	if !resp.OK() {
		return listings
	}

	var env museEnvelope
	if err := json.Unmarshal(resp.Body, &env); err != nil {
		logger.Warn().Err(err).Str("source", string(m.Source())).Msg("unexpected payload shape")
		return listings
	}

	for _, row := range env.Results {
		listings = append(listings, Listing{
			Title:       str(row["name"]),
			Description: str(row["contents"]),
			CompanyName: nested(row["company"], "name"),
			DatePosted:  str(row["publication_date"]),
			Link:        nested(row["refs"], "landing_page"),
			Source:      m.Source(),
		})
	}
	return listings
}
