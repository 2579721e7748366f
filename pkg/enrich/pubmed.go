package enrich

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/biograph-io/biograph/pkg/bel"
	"github.com/biograph-io/biograph/pkg/httputil"
	"github.com/biograph-io/biograph/pkg/kvcache"
)

// CitationEnricher fills in citation metadata on a graph's edges.
// Implementations may block on external I/O; failures are best-effort and
// swallowed by the caching layer.
type CitationEnricher interface {
	EnrichCitations(ctx context.Context, g *bel.Graph) error
}

// citationType for PubMed references, matched case-insensitively by
// convention but stored canonical.
const citationTypePubMed = "PubMed"

// cacheKeyPrefix namespaces eutils responses in the KV cache.
const cacheKeyPrefix = "pubmed"

// PubMedClient fetches citation summaries from the NCBI eutils esummary
// endpoint, memoizing responses in a KV cache. Summaries change rarely,
// so a generous TTL (days) is appropriate.
type PubMedClient struct {
	httpClient *http.Client
	cache      kvcache.Cache
	ttl        time.Duration
	baseURL    string
	retryDelay time.Duration
}

// NewPubMedClient creates a client over the given cache backend.
// Use kvcache.Null{} to disable response caching.
func NewPubMedClient(cache kvcache.Cache, ttl time.Duration) *PubMedClient {
	return &PubMedClient{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		cache:      cache,
		ttl:        ttl,
		baseURL:    "https://eutils.ncbi.nlm.nih.gov/entrez/eutils/esummary.fcgi",
		retryDelay: 500 * time.Millisecond,
	}
}

// citationSummary is the slice of an esummary result this client uses.
type citationSummary struct {
	Title   string   `json:"title"`
	PubDate string   `json:"pubdate"`
	Authors []string `json:"authors"`
}

// EnrichCitations looks up every distinct PubMed reference in the graph
// and writes title, date, and author list back onto the citing edges.
// The first lookup failure aborts the pass and is returned; edges already
// decorated keep their data.
func (c *PubMedClient) EnrichCitations(ctx context.Context, g *bel.Graph) error {
	summaries := make(map[string]*citationSummary)

	for _, id := range g.EdgeIDs() {
		e, _ := g.Edge(id)
		cit := e.Citation
		if cit == nil || cit.Type != citationTypePubMed || cit.Reference == "" {
			continue
		}
		if cit.Title != "" {
			continue // already enriched
		}

		summary, ok := summaries[cit.Reference]
		if !ok {
			var err error
			summary, err = c.fetch(ctx, cit.Reference)
			if err != nil {
				return fmt.Errorf("pubmed %s: %w", cit.Reference, err)
			}
			summaries[cit.Reference] = summary
		}

		cit.Title = summary.Title
		cit.Date = summary.PubDate
		if len(cit.Authors) == 0 {
			cit.Authors = summary.Authors
		}
		g.SetEdge(e)
	}
	return nil
}

// fetch returns the summary for one PMID, consulting the cache first.
func (c *PubMedClient) fetch(ctx context.Context, pmid string) (*citationSummary, error) {
	key := kvcache.Key(cacheKeyPrefix, pmid)

	if data, ok, err := c.cache.Get(ctx, key); err == nil && ok {
		var s citationSummary
		if json.Unmarshal(data, &s) == nil {
			return &s, nil
		}
		// Corrupt entry: fall through to a fresh fetch.
	}

	s, err := c.fetchRemote(ctx, pmid)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(s); err == nil {
		_ = c.cache.Set(ctx, key, data, c.ttl)
	}
	return s, nil
}

// fetchRemote calls the esummary endpoint, retrying rate limits, 5xx
// responses, and network failures with backoff.
func (c *PubMedClient) fetchRemote(ctx context.Context, pmid string) (*citationSummary, error) {
	url := fmt.Sprintf("%s?db=pubmed&retmode=json&id=%s", c.baseURL, pmid)

	var summary *citationSummary
	err := httputil.Retry(ctx, 3, c.retryDelay, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return err
		}
		resp, err := c.httpClient.Do(req)
		if err != nil {
			return &httputil.RetryableError{Err: err}
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
			return &httputil.RetryableError{Err: fmt.Errorf("esummary returned %s", resp.Status)}
		case resp.StatusCode != http.StatusOK:
			return fmt.Errorf("esummary returned %s", resp.Status)
		}

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return err
		}
		summary, err = parseSummary(body, pmid)
		return err
	})
	if err != nil {
		return nil, err
	}
	return summary, nil
}

// parseSummary extracts one record from an esummary JSON envelope:
// {"result": {"<pmid>": {"title": ..., "pubdate": ..., "authors": [{"name": ...}]}}}
func parseSummary(body []byte, pmid string) (*citationSummary, error) {
	var envelope struct {
		Result map[string]json.RawMessage `json:"result"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, err
	}
	raw, ok := envelope.Result[pmid]
	if !ok {
		return nil, fmt.Errorf("esummary result missing record for %s", pmid)
	}

	var record struct {
		Title   string `json:"title"`
		PubDate string `json:"pubdate"`
		Authors []struct {
			Name string `json:"name"`
		} `json:"authors"`
	}
	if err := json.Unmarshal(raw, &record); err != nil {
		return nil, err
	}

	s := &citationSummary{Title: record.Title, PubDate: record.PubDate}
	for _, a := range record.Authors {
		if a.Name != "" {
			s.Authors = append(s.Authors, a.Name)
		}
	}
	return s, nil
}

// Ensure PubMedClient implements CitationEnricher.
var _ CitationEnricher = (*PubMedClient)(nil)
