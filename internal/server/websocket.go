package server

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"sync"

	"library-browser/internal/browser"
	"library-browser/internal/web"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// wsAction is one user interaction sent by the page script.
type wsAction struct {
	Action  string             `json:"action" binding:"required,oneof=submit prev next rating hover menu"`
	Filters browser.Selections `json:"filters"`
	Value   string             `json:"value" binding:"omitempty,numeric,max=8"`
	ID      string             `json:"id" binding:"required_if=Action hover,required_if=Action menu"`
	Entered bool               `json:"entered"`
}

// wsView pushes session updates to one browser tab. Writes are serialized
// because searches finish on their own goroutines.
type wsView struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func newWSView(conn *websocket.Conn) *wsView {
	return &wsView{conn: conn}
}

func (v *wsView) Send(messages ...wsHTMLMessage) {
	data, err := json.Marshal(messages)
	if err != nil {
		return
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	_ = v.conn.WriteMessage(websocket.TextMessage, data)
}

func (v *wsView) SetFacetOptions(kind browser.FacetKind, options []browser.Option) {
	v.Send(htmlMessage("#"+kind.ControlID(), modeInner, renderComponent(web.FacetOptions(options, ""))))
}

func (v *wsView) ShowResults(cards []browser.Card) {
	v.Send(htmlMessage("#gamesContainer", modeInner, renderComponent(web.GamesContainer(cards))))
}

func (v *wsView) SetPageInfo(text string) {
	v.Send(htmlMessage("#currentPageInfo", modeInner, escapeHTML(text)))
}

func (v *wsView) SetNavigation(nav browser.Navigation) {
	v.Send(navigationMessages(nav)...)
}

func (v *wsView) SetVisible(elementID string, visible bool) {
	v.Send(classMessage("#"+elementID, "hidden", !visible))
}

func (v *wsView) Notify(notice browser.Notice) {
	v.Send(htmlMessage("#notice", modeInner, renderComponent(web.Notice(notice))))
}

func (v *wsView) ClearNotice() {
	v.Send(htmlMessage("#notice", modeInner, ""))
}

func (s *Server) handleWebsocket(c *gin.Context) {
	w, r := c.Writer, c.Request
	sessionID := s.sessions.SessionID(r)
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	log.Printf("ws connected session_id=%s remote=%s", sessionID, r.RemoteAddr)
	s.recordEvent(sessionID, eventSessionStarted, EventPayload{Remote: r.RemoteAddr})

	view := newWSView(conn)
	session := browser.NewSession(browser.SessionConfig{
		ID:       sessionID,
		Catalog:  s.catalog,
		View:     view,
		Renderer: s.cardRenderer(),
		Query:    s.queryOptions(),
	})
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		report := session.Start(ctx)
		s.recordStart(session.ID(), report)
	}()
	go s.readWS(ctx, cancel, conn, session, view)
}

func (s *Server) readWS(ctx context.Context, cancel context.CancelFunc, conn *websocket.Conn, session *browser.Session, view *wsView) {
	defer func() {
		cancel()
		_ = conn.Close()
	}()
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			log.Printf("ws disconnected session_id=%s error=%v", session.ID(), err)
			return
		}
		var action wsAction
		if err := json.Unmarshal(data, &action); err != nil {
			view.Notify(browser.Notice{Level: browser.NoticeError, Message: "invalid message"})
			continue
		}
		if err := validateAction(action); err != nil {
			log.Printf("ws action rejected session_id=%s action=%s error=%v", session.ID(), action.Action, err)
			view.Notify(browser.Notice{Level: browser.NoticeError, Message: err.Error()})
			continue
		}
		s.dispatchAction(ctx, session, view, action)
	}
}

func (s *Server) dispatchAction(ctx context.Context, session *browser.Session, view *wsView, action wsAction) {
	switch action.Action {
	case "submit":
		go s.runSearch(session, func() (browser.FetchResult, error) {
			return session.Submit(ctx, action.Filters)
		})
	case "prev":
		go s.runSearch(session, func() (browser.FetchResult, error) {
			return session.Prev(ctx, action.Filters)
		})
	case "next":
		go s.runSearch(session, func() (browser.FetchResult, error) {
			return session.Next(ctx, action.Filters)
		})
	case "rating":
		value := action.Value
		if value == "" {
			value = "0"
		}
		view.Send(htmlMessage("#ratingValue", modeInner, escapeHTML(value)))
	case "hover":
		if err := session.HoverCard(action.ID, action.Entered); err != nil {
			log.Printf("hover ignored session_id=%s card=%s error=%v", session.ID(), action.ID, err)
		}
	case "menu":
		if _, err := session.ToggleMenu(action.ID); err != nil {
			log.Printf("menu ignored session_id=%s card=%s error=%v", session.ID(), action.ID, err)
		}
	}
}

func (s *Server) runSearch(session *browser.Session, search func() (browser.FetchResult, error)) {
	result, err := search()
	if errors.Is(err, browser.ErrNoPage) {
		log.Printf("page change ignored session_id=%s error=%v", session.ID(), err)
		return
	}
	eventType, payload := searchPayload(result, err)
	s.recordEvent(session.ID(), eventType, payload)
}

func (s *Server) recordStart(sessionID string, report browser.StartReport) {
	if report.Err != nil {
		log.Printf("initial load incomplete session_id=%s error=%v", sessionID, report.Err)
	}
	for kind, err := range report.FacetErrors {
		s.recordEvent(sessionID, eventFacetFailed, EventPayload{
			Facet:  string(kind),
			Reason: err.Error(),
		})
	}
	eventType, payload := searchPayload(report.Search, report.SearchErr)
	s.recordEvent(sessionID, eventType, payload)
}
