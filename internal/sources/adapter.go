package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"jobboard/internal/models/db_models"
	"jobboard/pkg/logger"
)

const maxBodyBytes = 10 << 20

// Criteria carries the admin search form. Keywords is the GitHub description
// and the Muse position name; the other fields apply to one source each.
type Criteria struct {
	Keywords string `json:"keywords"`
	Location string `json:"location,omitempty"`
	FullTime bool   `json:"full_time,omitempty"`
	Category string `json:"category,omitempty"`
	Level    string `json:"level,omitempty"`
	Page     int    `json:"page,omitempty"`
}

// Listing is a normalized, unpersisted job record.
type Listing struct {
	Title       string
	Description string
	CompanyName string
	DatePosted  string
	Link        string
	Source      db_models.JobSource
}

// Response is the outcome of one Fetch. A failed call has Err set and no Body.
type Response struct {
	URL        string
	StatusCode int
	Body       []byte
	Err        error
}

func (r Response) OK() bool {
	return r.Err == nil && len(r.Body) > 0
}

type Adapter interface {
	Source() db_models.JobSource
	BuildQuery(c Criteria) string
	Fetch(ctx context.Context, rawURL string) Response
	Normalize(resp Response) []Listing
}

type fetcher struct {
	client *http.Client
}

func newFetcher(client *http.Client) fetcher {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return fetcher{client: client}
}

// get never returns an error to the caller; failures are logged and reported
// through Response.Err.
func (f fetcher) get(ctx context.Context, source db_models.JobSource, rawURL string) Response {
	resp := Response{URL: rawURL}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		resp.Err = fmt.Errorf("build request: %w", err)
		logFetchFailure(source, resp)
		return resp
	}
	req.Header.Set("Accept", "application/json")

	httpResp, err := f.client.Do(req)
	if err != nil {
		resp.Err = fmt.Errorf("http get: %w", err)
		logFetchFailure(source, resp)
		return resp
	}
	defer httpResp.Body.Close()

	resp.StatusCode = httpResp.StatusCode
	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		resp.Err = fmt.Errorf("unexpected status %d", httpResp.StatusCode)
		logFetchFailure(source, resp)
		return resp
	}

	body, err := io.ReadAll(io.LimitReader(httpResp.Body, maxBodyBytes))
	if err != nil {
		resp.Err = fmt.Errorf("read body: %w", err)
		logFetchFailure(source, resp)
		return resp
	}
	if !json.Valid(body) {
		resp.Err = fmt.Errorf("malformed json payload (%d bytes)", len(body))
		logFetchFailure(source, resp)
		return resp
	}

	resp.Body = body
	return resp
}

func logFetchFailure(source db_models.JobSource, resp Response) {
	logger.Warn().
		Str("source", string(source)).
		Str("url", resp.URL).
		Int("status", resp.StatusCode).
		Err(resp.Err).
		Msg("job source request failed, continuing with no results")
}

// buildURL appends params to endpoint in the given order. Values are
// query-escaped, so spaces become '+'.
func buildURL(endpoint string, params ...[2]string) string {
	var b strings.Builder
	b.WriteString(endpoint)
	sep := "?"
	if strings.Contains(endpoint, "?") {
		sep = "&"
		if strings.HasSuffix(endpoint, "?") || strings.HasSuffix(endpoint, "&") {
			sep = ""
		}
	}
	for _, p := range params {
		b.WriteString(sep)
		b.WriteString(url.QueryEscape(p[0]))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p[1]))
		sep = "&"
	}
	return b.String()
}

// str coerces a decoded JSON value to a string. Anything else is empty.
func str(v any) string {
	s, _ := v.(string)
	return s
}

// nested returns obj[key] when v is an object, or v itself when it is a
// scalar.
func nested(v any, key string) string {
	switch t := v.(type) {
	case map[string]any:
		return str(t[key])
	case string:
		return t
	case float64, bool:
		return fmt.Sprint(t)
	}
	return ""
}

// Registry resolves an adapter by source label.
type Registry struct {
	adapters map[db_models.JobSource]Adapter
}

func NewRegistry(adapters ...Adapter) *Registry {
	r := &Registry{adapters: make(map[db_models.JobSource]Adapter, len(adapters))}
	for _, a := range adapters {
		r.adapters[a.Source()] = a
	}
	return r
}

func (r *Registry) Get(source db_models.JobSource) (Adapter, bool) {
	a, ok := r.adapters[source]
	return a, ok
}
