package openlibrary

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
)

// DefaultBaseURL is the public Open Library endpoint.
const DefaultBaseURL = "https://openlibrary.org"

// Doc is one work in a search.json response. Only the fields the
// storefront reads are decoded.
type Doc struct {
	Key                 string   `json:"key"`
	Title               string   `json:"title"`
	AuthorName          []string `json:"author_name"`
	FirstPublishYear    int      `json:"first_publish_year"`
	NumberOfPagesMedian int      `json:"number_of_pages_median"`
	CoverID             int      `json:"cover_i"`
	FirstSentence       []string `json:"first_sentence"`
	ISBN                []string `json:"isbn"`
	RatingsAverage      float64  `json:"ratings_average"`
	RatingsCount        int      `json:"ratings_count"`
}

type searchResponse struct {
	NumFound int   `json:"numFound"`
	Docs     []Doc `json:"docs"`
}

// Config holds Open Library client settings.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client searches the Open Library catalog.
type Client struct {
	baseURL string
	timeout time.Duration
}

// NewClient creates a new Open Library client.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &Client{baseURL: cfg.BaseURL, timeout: cfg.Timeout}
}

// Search runs a title search sorted by rating, limited to English works.
// The request is bounded by the client timeout or the context deadline,
// whichever comes first.
func (c *Client) Search(ctx context.Context, title string, limit int) ([]Doc, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	timeout := c.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if left := time.Until(deadline); left < timeout {
			timeout = left
		}
	}
	if timeout <= 0 {
		return nil, context.DeadlineExceeded
	}

	query := url.Values{}
	query.Set("title", title)
	query.Set("limit", strconv.Itoa(limit))
	query.Set("sort", "rating")
	query.Set("language", "eng")

	agent := fiber.Get(c.baseURL + "/search.json")
	agent.QueryString(query.Encode())
	agent.Timeout(timeout)

	code, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return nil, fmt.Errorf("open library search %q: %w", title, errs[0])
	}
	if code != fiber.StatusOK {
		return nil, fmt.Errorf("open library search %q: unexpected status %d", title, code)
	}

	var resp searchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode open library response: %w", err)
	}
	return resp.Docs, nil
}
