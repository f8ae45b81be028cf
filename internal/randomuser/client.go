// Package randomuser wraps the third-party random user endpoint used to seed
// the directory on first load.
package randomuser

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// DefaultBaseURL is the public endpoint the seed batch is fetched from.
const DefaultBaseURL = "https://randomuser.me/api/"

// Person is one seed entry as consumed from the response.
type Person struct {
	Name struct {
		First string `json:"first"`
		Last  string `json:"last"`
	} `json:"name"`
	Email  string `json:"email"`
	Gender string `json:"gender"`
}

type apiResponse struct {
	Results []Person `json:"results"`
}

// Client fetches random user batches. The request carries a bounded timeout;
// an unbounded remote call would wedge the initial load forever.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient constructs a new client. An empty baseURL selects the public
// endpoint; a zero timeout defaults to ten seconds.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Fetch retrieves a batch of the given size in a single call. There is no
// retry; the caller decides how a failure is surfaced.
func (c *Client) Fetch(ctx context.Context, count int) ([]Person, error) {
	endpoint, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("randomuser: parse url: %w", err)
	}
	query := endpoint.Query()
	query.Set("results", strconv.Itoa(count))
	endpoint.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("randomuser: build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("randomuser: fetch: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("randomuser: fetch returned status %d", resp.StatusCode)
	}

	var payload apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("randomuser: decode response: %w", err)
	}
	return payload.Results, nil
}
