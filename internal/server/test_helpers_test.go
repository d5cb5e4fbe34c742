package server

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"library-browser/internal/browser"
	"library-browser/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var errCatalogDown = errors.New("catalog down")

const stubCatalogToken = "catalog-token-1"

func newTestServer(t *testing.T, handler http.Handler) *httptest.Server {
	t.Helper()
	listener, err := net.Listen("tcp4", "127.0.0.1:0")
	if err != nil {
		t.Skipf("skipping test; listen unavailable: %v", err)
	}
	ts := &httptest.Server{
		Listener: listener,
		Config:   &http.Server{Handler: handler},
	}
	ts.Start()
	return ts
}

// stubCatalog serves fixed facets and pages and records every search.
type stubCatalog struct {
	mu        sync.Mutex
	facets    map[browser.FacetKind][]browser.FacetOption
	facetErrs map[browser.FacetKind]error
	pages     map[int]browser.ResultPage
	searchErr error
	searches  []browser.FilterSnapshot
}

func newStubCatalog() *stubCatalog {
	return &stubCatalog{
		facets: map[browser.FacetKind][]browser.FacetOption{
			browser.FacetGenre: {{Name: "RPG"}, {Name: "Shooter"}},
		},
		facetErrs: make(map[browser.FacetKind]error),
		pages: map[int]browser.ResultPage{
			1: {
				Items: []browser.GameSummary{
					{ID: "g1", Name: "Quest", Genres: []string{"RPG"}, CoverURL: "quest.jpg"},
					{ID: "g2", Name: "Blaster", Genres: []string{"Shooter"}},
				},
				CurrentPage: 1,
				TotalPages:  3,
				Total:       45,
			},
			2: {
				Items:       []browser.GameSummary{{ID: "g3", Name: "Second"}},
				CurrentPage: 2,
				TotalPages:  3,
				Total:       45,
			},
		},
	}
}

func (c *stubCatalog) ListFacet(ctx context.Context, kind browser.FacetKind) ([]browser.FacetOption, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.facetErrs[kind]; err != nil {
		return nil, err
	}
	return c.facets[kind], nil
}

func (c *stubCatalog) Search(ctx context.Context, snapshot browser.FilterSnapshot) (browser.ResultPage, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.searches = append(c.searches, snapshot)
	if c.searchErr != nil {
		return browser.ResultPage{}, c.searchErr
	}
	page, ok := c.pages[snapshot.Page]
	if !ok {
		return browser.ResultPage{Items: []browser.GameSummary{}, CurrentPage: snapshot.Page}, nil
	}
	return page, nil
}

func (c *stubCatalog) CSRFToken() string {
	return stubCatalogToken
}

func (c *stubCatalog) setSearchErr(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.searchErr = err
}

func (c *stubCatalog) lastSearch() (browser.FilterSnapshot, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.searches) == 0 {
		return browser.FilterSnapshot{}, false
	}
	return c.searches[len(c.searches)-1], true
}

func newBrowseServer(t *testing.T, catalog browser.Catalog) *Server {
	t.Helper()
	return New(nil, config.Default(), catalog)
}

func dialLibrary(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + libraryWSPath
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Skipf("skipping test; websocket dial unavailable: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func sendAction(t *testing.T, conn *websocket.Conn, action map[string]any) {
	t.Helper()
	if err := conn.WriteJSON(action); err != nil {
		t.Fatalf("write action: %v", err)
	}
}

// readUntil reads update batches until match accepts one update and returns
// everything read so far.
func readUntil(t *testing.T, conn *websocket.Conn, timeout time.Duration, match func(wsHTMLMessage) bool) []wsHTMLMessage {
	t.Helper()
	deadline := time.Now().Add(timeout)
	seen := make([]wsHTMLMessage, 0, 16)
	for {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			t.Fatalf("timed out waiting for websocket update; seen=%+v", seen)
		}
		_ = conn.SetReadDeadline(time.Now().Add(remaining))
		_, payload, err := conn.ReadMessage()
		if err != nil {
			t.Fatalf("read websocket message: %v; seen=%+v", err, seen)
		}
		var batch []wsHTMLMessage
		if err := json.Unmarshal(payload, &batch); err != nil {
			t.Fatalf("decode websocket message %s: %v", payload, err)
		}
		for _, msg := range batch {
			seen = append(seen, msg)
			if match(msg) {
				return seen
			}
		}
	}
}

func innerContains(target, text string) func(wsHTMLMessage) bool {
	return func(msg wsHTMLMessage) bool {
		return msg.Target == target && msg.Mode == modeInner && strings.Contains(msg.HTML, text)
	}
}

func findMessage(messages []wsHTMLMessage, target, mode string) (wsHTMLMessage, bool) {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Target == target && messages[i].Mode == mode {
			return messages[i], true
		}
	}
	return wsHTMLMessage{}, false
}

// waitForInitialResults drains the start-up updates up to the first results.
func waitForInitialResults(t *testing.T, conn *websocket.Conn) []wsHTMLMessage {
	t.Helper()
	seen := readUntil(t, conn, 5*time.Second, innerContains("#gamesContainer", "card-g1"))
	return append(seen, readUntil(t, conn, 5*time.Second, func(msg wsHTMLMessage) bool {
		return msg.Target == "#nextPage" && msg.Mode == modeAttr
	})...)
}
