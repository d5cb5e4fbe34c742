package server

import (
	"log"
	"net/http"

	"library-browser/internal/browser"
	"library-browser/internal/web"

	"github.com/gin-gonic/gin"
)

const (
	libraryWSPath      = "/ws/library"
	libraryResultsPath = "/library/results"
)

func (s *Server) handleLibrary(c *gin.Context) {
	s.sessions.EnsureSession(c.Writer, c.Request)
	render(c, web.LibraryPage(web.LibraryPageData{
		CSRFToken:  s.csrfToken(),
		Categories: browser.CategoryOptions(),
		Facets:     web.DefaultFacetControls(),
		RatingMax:  s.cfg.RatingMax,
		WSPath:     libraryWSPath,
		ResultsURL: libraryResultsPath,
	}))
}

// handleResults serves one results page as a fragment for clients without
// a websocket.
func (s *Server) handleResults(c *gin.Context) {
	var sel browser.Selections
	if !bindQuery(c, &sel) {
		return
	}
	sessionID := s.sessions.SessionID(c.Request)
	snapshot := browser.BuildSnapshot(sel, parsePage(c), s.queryOptions())
	page, err := s.catalog.Search(c.Request.Context(), snapshot)
	if err != nil {
		log.Printf("results fragment failed session_id=%s page=%d error=%v", sessionID, snapshot.Page, err)
		writeError(c, http.StatusBadGateway, "could not load games")
		return
	}
	filters := snapshot.Selections()
	pagination := browser.InitialPagination().FromResult(page)
	s.recordEvent(sessionID, eventSearchApplied, EventPayload{
		Page:       pagination.CurrentPage,
		TotalPages: pagination.TotalPages,
		Items:      len(page.Items),
		Filters:    &filters,
	})
	render(c, web.ResultsFragment(web.ResultsData{
		Cards:      s.cardRenderer().Render(page.Items),
		Pagination: pagination,
		Selections: filters,
		BasePath:   libraryResultsPath,
	}))
}
