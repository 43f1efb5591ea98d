package leads

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cristianoliveira/leadnexus/internal/domain"
	"github.com/cristianoliveira/leadnexus/internal/logging"
	"golang.org/x/sync/errgroup"
)

const (
	searchPath = "/leads/search"
	// backendPageLimit is the largest page the backend serves.
	backendPageLimit = 100
	maxPages         = 1000
	fetchConcurrency = 4
)

// HTTPSource fetches every lead page from the marketplace backend.
type HTTPSource struct {
	BaseURL string
	Token   string
	Client  *http.Client
	// Query is sent with every page request, e.g. job_title or location,
	// so the backend can pre-filter before local filtering runs.
	Query url.Values
}

// NewHTTPSource returns a source for the backend at baseURL.
func NewHTTPSource(baseURL, token string, timeout time.Duration) *HTTPSource {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPSource{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Token:   token,
		Client:  &http.Client{Timeout: timeout},
	}
}

// Describe names the source for messages.
func (s *HTTPSource) Describe() string { return s.BaseURL }

type searchResponse struct {
	Total int               `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
	Data  []json.RawMessage `json:"data"`
	Items []json.RawMessage `json:"items"`
}

// Load requests the first page of /leads/search to learn the total, then
// fetches the remaining pages concurrently. Records keep backend order.
func (s *HTTPSource) Load(ctx context.Context) ([]domain.Record, error) {
	first, total, err := s.fetchPage(ctx, 1)
	if err != nil {
		return nil, err
	}
	logging.Debug("leads page fetched", "page", 1, "count", len(first), "total", total)
	if len(first) == 0 || total <= len(first) {
		return first, nil
	}

	// The backend may serve fewer than the requested limit per page.
	perPage := len(first)
	pageCount := (total + perPage - 1) / perPage
	if pageCount > maxPages {
		return nil, fmt.Errorf("leads: backend reports %d leads in pages of %d, more than %d pages: %w",
			total, perPage, maxPages, ErrBackend)
	}
	batches := make([][]domain.Record, pageCount)
	batches[0] = first

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(fetchConcurrency)
	for page := 2; page <= pageCount; page++ {
		page := page
		g.Go(func() error {
			batch, _, err := s.fetchPage(gctx, page)
			if err != nil {
				return err
			}
			logging.Debug("leads page fetched", "page", page, "count", len(batch))
			batches[page-1] = batch
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	records := make([]domain.Record, 0, total)
	for _, batch := range batches {
		records = append(records, batch...)
	}
	return records, nil
}

func (s *HTTPSource) fetchPage(ctx context.Context, page int) ([]domain.Record, int, error) {
	q := url.Values{}
	for k, v := range s.Query {
		q[k] = append([]string(nil), v...)
	}
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(backendPageLimit))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.BaseURL+searchPath+"?"+q.Encode(), nil)
	if err != nil {
		return nil, 0, fmt.Errorf("leads: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if s.Token != "" {
		req.Header.Set("Authorization", "Bearer "+s.Token)
	}

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("leads: request page %d: %w: %w", page, ErrBackend, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 32<<20))
	if err != nil {
		return nil, 0, fmt.Errorf("leads: read page %d: %w: %w", page, ErrBackend, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, 0, fmt.Errorf("leads: page %d: %w: status %d: %s", page, ErrBackend, resp.StatusCode, backendDetail(body))
	}

	records, total, err := decodeLeads(body)
	if err != nil {
		return nil, 0, fmt.Errorf("leads: decode page %d: %w: %w", page, ErrBackend, err)
	}
	return records, total, nil
}

// backendDetail extracts a FastAPI-style {"detail": "..."} message.
func backendDetail(body []byte) string {
	var payload struct {
		Detail any `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Detail != nil {
		if s, ok := payload.Detail.(string); ok {
			return s
		}
		b, _ := json.Marshal(payload.Detail)
		return string(b)
	}
	text := strings.TrimSpace(string(body))
	if len(text) > 200 {
		text = text[:200]
	}
	return text
}
