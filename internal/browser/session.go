package browser

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
)

type SessionConfig struct {
	ID       string
	Catalog  Catalog
	View     View
	Renderer CardRenderer
	Query    QueryOptions
}

// Session is one browsing view. Network calls run outside the lock; every
// state change and view update happens under it, in the order responses are
// applied.
type Session struct {
	id       string
	catalog  Catalog
	view     View
	renderer CardRenderer
	query    QueryOptions

	mu         sync.Mutex
	issued     uint64
	pagination PaginationState
	snapshot   FilterSnapshot
	page       ResultPage
	facets     map[FacetKind][]Option
	cards      map[string]*cardState
}

type cardState struct {
	card           Card
	detailsVisible bool
	menuOpen       bool
}

// FetchResult describes one search attempt. Applied is false when the
// response was discarded because a newer search had been issued meanwhile.
type FetchResult struct {
	Seq      uint64
	Snapshot FilterSnapshot
	Page     ResultPage
	Applied  bool
	Stale    bool
}

// StartReport collects every failure of the initial load. Err is the first
// failure to finish, nil when everything loaded.
type StartReport struct {
	FacetErrors map[FacetKind]error
	Search      FetchResult
	SearchErr   error
	Err         error
}

func NewSession(cfg SessionConfig) *Session {
	facets := make(map[FacetKind][]Option, len(FacetKinds))
	for _, kind := range FacetKinds {
		facets[kind] = DefaultFacetOptions(kind)
	}
	return &Session{
		id:         cfg.ID,
		catalog:    cfg.Catalog,
		view:       cfg.View,
		renderer:   cfg.Renderer,
		query:      cfg.Query,
		pagination: InitialPagination(),
		facets:     facets,
		cards:      make(map[string]*cardState),
	}
}

func (s *Session) ID() string {
	return s.id
}

// Start loads the four facets and the first unfiltered page concurrently.
// The group carries no context, so a failing call never stops the others.
func (s *Session) Start(ctx context.Context) StartReport {
	report := StartReport{FacetErrors: make(map[FacetKind]error)}
	var reportMu sync.Mutex
	var group errgroup.Group
	for _, kind := range FacetKinds {
		kind := kind
		group.Go(func() error {
			err := s.LoadFacet(ctx, kind)
			if err != nil {
				reportMu.Lock()
				report.FacetErrors[kind] = err
				reportMu.Unlock()
			}
			return err
		})
	}
	group.Go(func() error {
		result, err := s.Fetch(ctx, Selections{}, 1)
		reportMu.Lock()
		report.Search = result
		report.SearchErr = err
		reportMu.Unlock()
		return err
	})
	report.Err = group.Wait()
	return report
}

func (s *Session) LoadFacet(ctx context.Context, kind FacetKind) error {
	entries, err := s.catalog.ListFacet(ctx, kind)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		log.Printf("facet load failed session_id=%s facet=%s error=%v", s.id, kind, err)
		s.notify(Notice{
			Level:   NoticeError,
			Message: "Could not load " + facetNoun(kind) + ". The filter shows all values.",
		})
		return fmt.Errorf("load %s: %w", kind, err)
	}
	options := FacetOptions(kind, entries)
	s.facets[kind] = options
	if s.view != nil {
		s.view.SetFacetOptions(kind, options)
	}
	return nil
}

// Submit runs a fresh filtered search from page 1.
func (s *Session) Submit(ctx context.Context, sel Selections) (FetchResult, error) {
	return s.Fetch(ctx, sel, 1)
}

func (s *Session) Prev(ctx context.Context, sel Selections) (FetchResult, error) {
	s.mu.Lock()
	page, err := s.pagination.PrevPage()
	s.mu.Unlock()
	if err != nil {
		return FetchResult{}, err
	}
	return s.Fetch(ctx, sel, page)
}

func (s *Session) Next(ctx context.Context, sel Selections) (FetchResult, error) {
	s.mu.Lock()
	page, err := s.pagination.NextPage()
	s.mu.Unlock()
	if err != nil {
		return FetchResult{}, err
	}
	return s.Fetch(ctx, sel, page)
}

// Fetch searches one page. Only the most recently issued search may change
// the session; older responses are dropped whenever they arrive.
func (s *Session) Fetch(ctx context.Context, sel Selections, page int) (FetchResult, error) {
	snapshot := BuildSnapshot(sel, page, s.query)

	s.mu.Lock()
	s.issued++
	seq := s.issued
	s.mu.Unlock()

	resultPage, err := s.catalog.Search(ctx, snapshot)

	s.mu.Lock()
	defer s.mu.Unlock()
	result := FetchResult{Seq: seq, Snapshot: snapshot}
	if seq != s.issued {
		result.Stale = true
		if err != nil {
			log.Printf("stale search failed session_id=%s seq=%d page=%d error=%v", s.id, seq, snapshot.Page, err)
			return result, fmt.Errorf("search page %d: %w", snapshot.Page, err)
		}
		log.Printf("stale search dropped session_id=%s seq=%d latest=%d", s.id, seq, s.issued)
		return result, nil
	}
	if err != nil {
		log.Printf("search failed session_id=%s seq=%d page=%d error=%v", s.id, seq, snapshot.Page, err)
		s.notify(Notice{
			Level:   NoticeError,
			Message: "Could not load games. Showing the previous results.",
		})
		return result, fmt.Errorf("search page %d: %w", snapshot.Page, err)
	}

	s.pagination = s.pagination.FromResult(resultPage)
	resultPage.CurrentPage = s.pagination.CurrentPage
	resultPage.TotalPages = s.pagination.TotalPages
	s.page = resultPage
	s.snapshot = snapshot

	cards := s.renderer.Render(resultPage.Items)
	s.cards = make(map[string]*cardState, len(cards))
	for _, card := range cards {
		s.cards[card.Game.ID] = &cardState{card: card}
	}
	if s.view != nil {
		s.view.SetPageInfo(s.pagination.Indicator())
		s.view.ShowResults(cards)
		s.view.SetNavigation(s.pagination.Navigation())
		s.view.ClearNotice()
	}
	result.Page = resultPage
	result.Applied = true
	return result, nil
}

// HoverCard shows the card's details region on enter and hides it on leave.
// Other cards are not touched.
func (s *Session) HoverCard(id string, entered bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, ok := s.cards[id]
	if !ok {
		return ErrUnknownCard
	}
	state.detailsVisible = entered
	if s.view != nil {
		s.view.SetVisible(state.card.Handles.DetailsID, entered)
	}
	return nil
}

// ToggleMenu flips the card's action menu and reports whether it is now open.
func (s *Session) ToggleMenu(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, ok := s.cards[id]
	if !ok {
		return false, ErrUnknownCard
	}
	state.menuOpen = !state.menuOpen
	if s.view != nil {
		s.view.SetVisible(state.card.Handles.MenuID, state.menuOpen)
	}
	return state.menuOpen, nil
}

func (s *Session) Pagination() PaginationState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pagination
}

// Results returns the last applied page and the snapshot that produced it.
func (s *Session) Results() (ResultPage, FilterSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.page, s.snapshot
}

func (s *Session) FacetOptions(kind FacetKind) []Option {
	s.mu.Lock()
	defer s.mu.Unlock()
	options := s.facets[kind]
	out := make([]Option, len(options))
	copy(out, options)
	return out
}

func (s *Session) Card(id string) (Card, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, ok := s.cards[id]
	if !ok {
		return Card{}, false
	}
	return state.card, true
}

func (s *Session) notify(notice Notice) {
	if s.view != nil {
		s.view.Notify(notice)
	}
}

func facetNoun(kind FacetKind) string {
	return strings.ToLower(strings.TrimPrefix(kind.AllLabel(), "All "))
}
