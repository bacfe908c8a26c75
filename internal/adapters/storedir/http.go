package storedir

import (
	"context"
	"delivery-zone-service/internal/domain"
	"delivery-zone-service/internal/platform/obs"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// HTTPStoreDirectory implements ports.StoreDirectory against a remote
// directory exposing GET {baseURL}/api/stores.
//
// Each call is a single request; failures are returned as *domain.FetchError
// and never retried. The client is safe for concurrent use.
type HTTPStoreDirectory struct {
	session *http.Client
	baseURL string
}

type Option func(*HTTPStoreDirectory)

// WithHTTPClient replaces the default client (10s timeout).
func WithHTTPClient(c *http.Client) Option {
	return func(d *HTTPStoreDirectory) { d.session = c }
}

func NewHTTPStoreDirectory(baseURL string, opts ...Option) (*HTTPStoreDirectory, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("store directory base url is empty")
	}

	d := &HTTPStoreDirectory{
		session: &http.Client{Timeout: 10 * time.Second},
		baseURL: baseURL,
	}
	for _, opt := range opts {
		opt(d)
	}

	return d, nil
}

// BaseURL identifies the directory, e.g. for cache keys.
func (d *HTTPStoreDirectory) BaseURL() string { return d.baseURL }

// storeRecord is the wire shape of one store. The id is kept verbatim
// whether the directory sends it as a number or a string.
type storeRecord struct {
	ID        flexibleID `json:"id"`
	Name      string     `json:"name"`
	Address   string     `json:"address"`
	Lat       float64    `json:"lat"`
	Lng       float64    `json:"lng"`
	Direction string     `json:"direction"`
}

type flexibleID string

func (f *flexibleID) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*f = flexibleID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("store id must be a string or number: %w", err)
	}
	*f = flexibleID(n.String())
	return nil
}

// ListStores fetches the full store list.
func (d *HTTPStoreDirectory) ListStores(ctx context.Context) (_ []domain.Store, err error) {
	defer obs.Time(ctx, "storedir.ListStores")(&err)

	endpoint := d.baseURL + "/api/stores"

	req, err := d.newRequest(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &domain.FetchError{URL: endpoint, Err: err}
	}

	resp, err := d.do(req)
	if err != nil {
		var he *httpStatusError
		if errors.As(err, &he) {
			return nil, &domain.FetchError{URL: endpoint, StatusCode: he.Code, Err: err}
		}
		return nil, &domain.FetchError{URL: endpoint, Err: fmt.Errorf("execute request: %w", err)}
	}
	defer resp.Body.Close()

	// Only an explicit 200 carries a store list.
	if resp.StatusCode != http.StatusOK {
		return nil, &domain.FetchError{
			URL:        endpoint,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("unexpected status: %d", resp.StatusCode),
		}
	}

	var records []storeRecord
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, &domain.FetchError{
			URL:        endpoint,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("decode stores response: %w", err),
		}
	}

	stores := make([]domain.Store, 0, len(records))
	for _, r := range records {
		stores = append(stores, domain.Store{
			ID:        string(r.ID),
			Name:      r.Name,
			Address:   r.Address,
			Lat:       r.Lat,
			Lng:       r.Lng,
			Direction: r.Direction,
		})
	}

	return stores, nil
}

type httpStatusError struct {
	Code int
	Body string
}

func (d *HTTPStoreDirectory) newRequest(
	ctx context.Context,
	method string,
	url string,
	body io.Reader,
) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return req, nil
}

func (d *HTTPStoreDirectory) do(req *http.Request) (*http.Response, error) {
	resp, err := d.session.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		// Cap the body kept for the error message.
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		resp.Body.Close()
		return nil, &httpStatusError{
			Code: resp.StatusCode,
			Body: strings.TrimSpace(string(b)),
		}
	}
	return resp, nil
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("Code %d: %s", e.Code, e.Body)
}
