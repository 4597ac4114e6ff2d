// Package ingest implements the dictionary ingestion pipeline: fetch a raw
// nested record for an entity kind, project the relevant field subset,
// inject the owning principal throughout, resolve embedded sub-entities into
// persisted records, and get-or-create the top-level entity.
package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rhymebook/rhymebook-cli/pkg/dictionary"
	rberrors "github.com/rhymebook/rhymebook-cli/pkg/errors"
	"github.com/rhymebook/rhymebook-cli/pkg/logging"
)

// Fetcher retrieves one raw record for an entity kind. The returned value is
// an arbitrarily nested map/slice/scalar structure; no wire schema is
// guaranteed beyond the per-kind allow-listed keys the pipeline reads.
type Fetcher interface {
	Fetch(ctx context.Context, kind dictionary.EntityKind) (map[string]interface{}, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, kind dictionary.EntityKind) (map[string]interface{}, error)

// Fetch implements Fetcher.
func (f FetcherFunc) Fetch(ctx context.Context, kind dictionary.EntityKind) (map[string]interface{}, error) {
	return f(ctx, kind)
}

// HTTPFetcher fetches random records from the remote dictionary source.
// Every failure mode (network error, non-2xx status, malformed body) maps to
// ErrSourceUnavailable; the pipeline treats those as soft conditions.
type HTTPFetcher struct {
	baseURL string
	client  *http.Client
	logger  logging.Logger
}

// NewHTTPFetcher creates a fetcher against the given source base URL, e.g.
// "https://www.therightrhymes.com".
func NewHTTPFetcher(baseURL string, timeout time.Duration, logger logging.Logger) *HTTPFetcher {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTPFetcher{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		logger:  logger.With(logging.F("component", "http_fetcher")),
	}
}

// Fetch implements Fetcher, hitting <base>/data/<kind>s/random.
func (f *HTTPFetcher) Fetch(ctx context.Context, kind dictionary.EntityKind) (map[string]interface{}, error) {
	url := fmt.Sprintf("%s/data/%ss/random", f.baseURL, kind)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: building request for %s: %v", rberrors.ErrSourceUnavailable, url, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", rberrors.ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s returned status %d", rberrors.ErrSourceUnavailable, url, resp.StatusCode)
	}

	var record map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&record); err != nil {
		return nil, fmt.Errorf("%w: malformed body from %s: %v", rberrors.ErrSourceUnavailable, url, err)
	}

	f.logger.Debug("fetched record", logging.F("url", url), logging.F("keys", len(record)))
	return record, nil
}
