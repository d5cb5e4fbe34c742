package browser

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

type fakeCatalog struct {
	mu        sync.Mutex
	facets    map[FacetKind][]FacetOption
	facetErrs map[FacetKind]error
	games     []GameSummary
	searchErr error
	gates     map[int]chan struct{}
	searches  []FilterSnapshot
}

func newFakeCatalog(games int) *fakeCatalog {
	items := make([]GameSummary, 0, games)
	for i := 1; i <= games; i++ {
		items = append(items, GameSummary{
			ID:       fmt.Sprintf("game-%d", i),
			Name:     fmt.Sprintf("Game %d", i),
			CoverURL: "cover.jpg",
		})
	}
	return &fakeCatalog{
		facets: map[FacetKind][]FacetOption{
			FacetGenre:             {{Name: "RPG"}, {Name: "Shooter"}},
			FacetGameMode:          {{Name: "Single player"}},
			FacetPlayerPerspective: {{Name: "First person"}, {Name: "Third person"}, {Name: "Isometric"}},
			FacetTheme:             {{Name: "Fantasy"}},
		},
		facetErrs: make(map[FacetKind]error),
		games:     items,
		gates:     make(map[int]chan struct{}),
	}
}

func (f *fakeCatalog) ListFacet(ctx context.Context, kind FacetKind) ([]FacetOption, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.facetErrs[kind]; err != nil {
		return nil, err
	}
	return f.facets[kind], nil
}

func (f *fakeCatalog) Search(ctx context.Context, snapshot FilterSnapshot) (ResultPage, error) {
	f.mu.Lock()
	f.searches = append(f.searches, snapshot)
	gate := f.gates[snapshot.Page]
	f.mu.Unlock()
	if gate != nil {
		<-gate
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.searchErr != nil {
		return ResultPage{}, f.searchErr
	}
	total := len(f.games)
	pages := (total + snapshot.PerPage - 1) / snapshot.PerPage
	start := (snapshot.Page - 1) * snapshot.PerPage
	end := start + snapshot.PerPage
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}
	items := make([]GameSummary, end-start)
	copy(items, f.games[start:end])
	return ResultPage{Items: items, CurrentPage: snapshot.Page, TotalPages: pages, Total: total}, nil
}

func (f *fakeCatalog) block(page int) chan struct{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	gate := make(chan struct{})
	f.gates[page] = gate
	return gate
}

func (f *fakeCatalog) setSearchErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.searchErr = err
}

func (f *fakeCatalog) searchCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.searches)
}

func (f *fakeCatalog) lastSearch() FilterSnapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.searches[len(f.searches)-1]
}

var errBackend = errors.New("backend unavailable")

type recordingView struct {
	mu       sync.Mutex
	facets   map[FacetKind][]Option
	cards    []Card
	renders  int
	pageInfo string
	nav      Navigation
	visible  map[string]bool
	notices  []Notice
	cleared  int
}

func newRecordingView() *recordingView {
	return &recordingView{
		facets:  make(map[FacetKind][]Option),
		visible: make(map[string]bool),
	}
}

func (v *recordingView) SetFacetOptions(kind FacetKind, options []Option) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.facets[kind] = options
}

func (v *recordingView) ShowResults(cards []Card) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.cards = cards
	v.renders++
}

func (v *recordingView) SetPageInfo(text string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.pageInfo = text
}

func (v *recordingView) SetNavigation(nav Navigation) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.nav = nav
}

func (v *recordingView) SetVisible(elementID string, visible bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.visible[elementID] = visible
}

func (v *recordingView) Notify(notice Notice) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.notices = append(v.notices, notice)
}

func (v *recordingView) ClearNotice() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.cleared++
}

func newTestSession(catalog Catalog, view View) *Session {
	return NewSession(SessionConfig{
		ID:       "test",
		Catalog:  catalog,
		View:     view,
		Renderer: CardRenderer{Tokens: TokenFunc(func() string { return "token-1" })},
	})
}
