package web

import "library-browser/internal/browser"

type FacetControl struct {
	Kind    browser.FacetKind
	Options []browser.Option
}

type LibraryPageData struct {
	CSRFToken  string
	Categories []browser.Option
	Facets     []FacetControl
	RatingMax  int
	Rating     string
	WSPath     string
	ResultsURL string
}

// ResultsData backs the fragment served when the websocket is unavailable.
type ResultsData struct {
	Cards      []browser.Card
	Pagination browser.PaginationState
	Selections browser.Selections
	BasePath   string
}

func DefaultFacetControls() []FacetControl {
	controls := make([]FacetControl, 0, len(browser.FacetKinds))
	for _, kind := range browser.FacetKinds {
		controls = append(controls, FacetControl{Kind: kind, Options: browser.DefaultFacetOptions(kind)})
	}
	return controls
}
