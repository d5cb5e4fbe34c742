package server

import (
	"net/http"

	"library-browser/internal/browser"
	"library-browser/internal/config"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Server struct {
	db       *gorm.DB
	cfg      config.Config
	catalog  browser.Catalog
	tokens   browser.TokenSource
	sessions *sessionStore
	journal  *journal
}

// New builds the server. When the catalog also issues anti-forgery tokens
// (browser.TokenSource), cards and the page carry its token; otherwise the
// token stays empty.
func New(conn *gorm.DB, cfg config.Config, catalog browser.Catalog) *Server {
	registerValidators()
	tokens, _ := catalog.(browser.TokenSource)
	return &Server{
		db:       conn,
		cfg:      cfg,
		catalog:  catalog,
		tokens:   tokens,
		sessions: newSessionStore(conn),
		journal:  newJournal(conn),
	}
}

func (s *Server) Handler() http.Handler {
	r := gin.New()
	r.Use(gin.Recovery())
	r.GET("/", s.handleLibrary)
	r.GET("/library", s.handleLibrary)
	r.GET("/library/results", s.handleResults)
	r.GET("/ws/library", s.handleWebsocket)
	r.Static("/static", "static")
	return r
}

// cardRenderer points card actions at the catalog unless ACTION_BASE_URL
// names another host; this server has no item action routes.
func (s *Server) cardRenderer() browser.CardRenderer {
	actionBase := s.cfg.ActionBaseURL
	if actionBase == "" {
		actionBase = s.cfg.CatalogURL
	}
	return browser.CardRenderer{
		ImageBase:  s.cfg.ImageBasePath,
		ActionBase: actionBase,
		Tokens:     browser.TokenFunc(s.csrfToken),
	}
}

func (s *Server) csrfToken() string {
	if s.tokens == nil {
		return ""
	}
	return s.tokens.CSRFToken()
}

func (s *Server) queryOptions() browser.QueryOptions {
	return browser.QueryOptions{RatingZeroUnset: s.cfg.RatingZeroUnset}
}
