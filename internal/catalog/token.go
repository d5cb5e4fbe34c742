package catalog

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
)

var ErrNoToken = errors.New("catalog page has no csrf token")

const (
	DefaultTokenPath = "/library"
	DefaultTokenTTL  = 30 * time.Minute
)

// tokenCache holds the anti-forgery token the catalog issued for the
// forwarded login cookie. Forms posting back to the catalog must carry it.
type tokenCache struct {
	mu        sync.Mutex
	pinned    string
	path      string
	ttl       time.Duration
	token     string
	fetchedAt time.Time
	now       func() time.Time
}

func newTokenCache(opts Options) *tokenCache {
	path := opts.TokenPath
	if path == "" {
		path = DefaultTokenPath
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	ttl := opts.TokenTTL
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &tokenCache{
		pinned: strings.TrimSpace(opts.CSRFToken),
		path:   path,
		ttl:    ttl,
		now:    time.Now,
	}
}

func (t *tokenCache) cached() (string, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.pinned != "" {
		return t.pinned, true
	}
	if t.token == "" || t.now().Sub(t.fetchedAt) >= t.ttl {
		return "", false
	}
	return t.token, true
}

func (t *tokenCache) store(token string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.token = token
	t.fetchedAt = t.now()
}

// CSRFToken returns the catalog-issued token, reading the catalog page when
// the cached one is missing or expired. Failures yield an empty token.
func (c *Client) CSRFToken() string {
	if token, ok := c.tokens.cached(); ok {
		return token
	}
	token, err := c.RefreshCSRFToken(context.Background())
	if err != nil {
		log.Printf("csrf token fetch failed path=%s error=%v", c.tokens.path, err)
		return ""
	}
	return token
}

// RefreshCSRFToken reads the csrf-token meta of the catalog page.
func (c *Client) RefreshCSRFToken(ctx context.Context) (string, error) {
	if c.tokens.pinned != "" {
		return c.tokens.pinned, nil
	}
	resp, err := c.get(ctx, c.tokens.path, "", "text/html")
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("parse %s: %w", c.tokens.path, err)
	}
	content, _ := doc.Find(`meta[name="csrf-token"]`).First().Attr("content")
	token := strings.TrimSpace(content)
	if token == "" {
		return "", fmt.Errorf("%s: %w", c.tokens.path, ErrNoToken)
	}
	c.tokens.store(token)
	return token, nil
}
