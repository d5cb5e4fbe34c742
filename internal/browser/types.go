package browser

import "context"

type GameSummary struct {
	ID          string   `json:"uuid"`
	Name        string   `json:"name"`
	Size        string   `json:"size"`
	Genres      []string `json:"genres"`
	CoverURL    string   `json:"cover_url"`
	ExternalURL string   `json:"url"`
	Summary     string   `json:"summary"`
}

type ResultPage struct {
	Items       []GameSummary
	CurrentPage int
	TotalPages  int
	Total       int
}

type FacetOption struct {
	Name string `json:"name"`
}

// Catalog is the remote side of the browser: facet enumerations and the
// paginated search.
type Catalog interface {
	ListFacet(ctx context.Context, kind FacetKind) ([]FacetOption, error)
	Search(ctx context.Context, snapshot FilterSnapshot) (ResultPage, error)
}

const (
	NoticeError = "error"
	NoticeInfo  = "info"
)

type Notice struct {
	Level   string
	Message string
}

// View receives every visible change the session makes. Calls are
// serialized by the session.
type View interface {
	SetFacetOptions(kind FacetKind, options []Option)
	ShowResults(cards []Card)
	SetPageInfo(text string)
	SetNavigation(nav Navigation)
	SetVisible(elementID string, visible bool)
	Notify(notice Notice)
	ClearNotice()
}
