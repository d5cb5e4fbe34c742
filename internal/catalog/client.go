package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"library-browser/internal/browser"
)

var ErrStatus = errors.New("unexpected catalog status")

const searchPath = "/browse_games"

type Options struct {
	BaseURL string
	// Cookie is sent verbatim on every request; the catalog pages sit behind a login.
	Cookie     string
	Timeout    time.Duration
	HTTPClient *http.Client
	// CSRFToken pins the anti-forgery token instead of reading it from
	// the catalog page at TokenPath.
	CSRFToken string
	TokenPath string
	TokenTTL  time.Duration
}

// Client talks to the catalog server's facet and search endpoints.
type Client struct {
	baseURL    string
	cookie     string
	httpClient *http.Client
	tokens     *tokenCache
}

type searchResponse struct {
	Games       []browser.GameSummary `json:"games"`
	Pages       int                   `json:"pages"`
	CurrentPage int                   `json:"current_page"`
	Total       int                   `json:"total"`
}

func New(opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}
	return &Client{
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		cookie:     opts.Cookie,
		httpClient: httpClient,
		tokens:     newTokenCache(opts),
	}
}

func (c *Client) ListFacet(ctx context.Context, kind browser.FacetKind) ([]browser.FacetOption, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("unknown facet %q", kind)
	}
	var entries []browser.FacetOption
	if err := c.getJSON(ctx, kind.Path(), "", &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (c *Client) Search(ctx context.Context, snapshot browser.FilterSnapshot) (browser.ResultPage, error) {
	var resp searchResponse
	if err := c.getJSON(ctx, searchPath, snapshot.Values().Encode(), &resp); err != nil {
		return browser.ResultPage{}, err
	}
	items := resp.Games
	if items == nil {
		items = []browser.GameSummary{}
	}
	return browser.ResultPage{
		Items:       items,
		CurrentPage: resp.CurrentPage,
		TotalPages:  resp.Pages,
		Total:       resp.Total,
	}, nil
}

func (c *Client) getJSON(ctx context.Context, path, rawQuery string, dest any) error {
	resp, err := c.get(ctx, path, rawQuery, "application/json")
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// get issues an authenticated GET and returns the response only for 2xx
// statuses.
func (c *Client) get(ctx context.Context, path, rawQuery, accept string) (*http.Response, error) {
	target := c.baseURL + path
	if rawQuery != "" {
		target += "?" + rawQuery
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("build request %s: %w", path, err)
	}
	req.Header.Set("Accept", accept)
	req.Header.Set("X-Requested-With", "XMLHttpRequest")
	if c.cookie != "" {
		req.Header.Set("Cookie", c.cookie)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
		return nil, fmt.Errorf("get %s: %w: %d", path, ErrStatus, resp.StatusCode)
	}
	return resp, nil
}
