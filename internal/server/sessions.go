package server

import (
	"log"
	"net/http"

	"library-browser/internal/db"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const sessionCookie = "lb_session"

// sessionStore identifies browser sessions by cookie so journal entries of
// one visitor can be grouped. Sessions are recorded in Postgres when a
// database is configured.
type sessionStore struct {
	db *gorm.DB
}

func newSessionStore(conn *gorm.DB) *sessionStore {
	return &sessionStore{db: conn}
}

// EnsureSession returns the visitor's session id, issuing the cookie on the
// first visit.
func (s *sessionStore) EnsureSession(w http.ResponseWriter, r *http.Request) string {
	if id := s.SessionID(r); id != "" {
		return id
	}
	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	if s.db != nil {
		if err := s.db.Create(&db.Session{ID: id}).Error; err != nil {
			log.Printf("session save failed session_id=%s error=%v", id, err)
		}
	}
	return id
}

func (s *sessionStore) SessionID(r *http.Request) string {
	cookie, err := r.Cookie(sessionCookie)
	if err != nil {
		return ""
	}
	return cookie.Value
}
