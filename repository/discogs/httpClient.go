package discogsrepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/DavidOvMu23/Viniloteca/util/httpx"
)

const (
	defaultBaseURL = "https://api.discogs.com"
	// Discogs requires an identifying User-Agent on every request.
	userAgent = "viniloteca/1.0"
	// Authenticated clients get 60 requests per minute; stay at 1 req/s with
	// a small burst so a batch never trips the server-side limit.
	requestsPerSecond = 1
	burst             = 3

	requestTimeout = 10 * time.Second
)

type httpRepo struct {
	baseURL string
	token   string
	client  *http.Client
	limiter *rate.Limiter
	timeout time.Duration
}

func NewHTTP(token string) Repo {
	return &httpRepo{
		baseURL: defaultBaseURL,
		token:   token,
		client:  httpx.Client(),
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), burst),
		timeout: requestTimeout,
	}
}

// NewHTTPWith builds a client against a specific base URL and HTTP client.
// Tests point this at an httptest server.
func NewHTTPWith(baseURL, token string, client *http.Client, limiter *rate.Limiter, timeout time.Duration) Repo {
	return &httpRepo{
		baseURL: baseURL,
		token:   token,
		client:  client,
		limiter: limiter,
		timeout: timeout,
	}
}

func (r *httpRepo) Search(ctx context.Context, query string, page int) ([]ReleaseSummary, error) {
	q := url.Values{}
	q.Set("q", query)
	q.Set("type", "release")
	if page > 1 {
		q.Set("page", strconv.Itoa(page))
	}
	var out struct {
		Results []ReleaseSummary `json:"results"`
	}
	if err := r.get(ctx, "/database/search", q, &out); err != nil {
		return nil, err
	}
	return out.Results, nil
}

func (r *httpRepo) GetRelease(ctx context.Context, id int64) (*ReleaseDetail, error) {
	if id <= 0 {
		return nil, ErrNotFound
	}
	var out ReleaseDetail
	if err := r.get(ctx, fmt.Sprintf("/releases/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *httpRepo) get(ctx context.Context, path string, query url.Values, out any) error {
	if err := r.limiter.Wait(ctx); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	u := r.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	if r.token != "" {
		req.Header.Set("Authorization", "Discogs token="+r.token)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusTooManyRequests:
		return ErrRateLimited
	default:
		return fmt.Errorf("%w: status %s", ErrUnavailable, resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode response: %v", ErrUnavailable, err)
	}
	return nil
}
