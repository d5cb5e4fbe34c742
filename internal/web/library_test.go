package web

import (
	"net/url"
	"strings"
	"testing"

	"library-browser/internal/browser"
)

func TestLibraryPageShell(t *testing.T) {
	doc := renderDoc(t, LibraryPage(LibraryPageData{
		CSRFToken:  "tok-1",
		Categories: browser.CategoryOptions(),
		Facets:     DefaultFacetControls(),
		RatingMax:  100,
		WSPath:     "/ws/library",
		ResultsURL: "/library/results",
	}))

	if token, _ := doc.Find(`meta[name="csrf-token"]`).Attr("content"); token != "tok-1" {
		t.Fatalf("unexpected csrf meta %q", token)
	}
	for _, kind := range browser.FacetKinds {
		options := doc.Find("#" + kind.ControlID() + " option")
		if options.Length() != 1 {
			t.Fatalf("facet %s: expected only the sentinel, got %d", kind, options.Length())
		}
		if value, _ := options.First().Attr("value"); value != "" || options.First().Text() != kind.AllLabel() {
			t.Fatalf("facet %s: unexpected sentinel", kind)
		}
		if name, _ := doc.Find("#" + kind.ControlID()).Attr("name"); name != kind.ParamName() {
			t.Fatalf("facet %s: unexpected name %q", kind, name)
		}
	}
	if max, _ := doc.Find("#ratingSlider").Attr("max"); max != "100" {
		t.Fatalf("unexpected slider max %q", max)
	}
	if !doc.Find("#prevPageItem").HasClass("disabled") || !doc.Find("#nextPageItem").HasClass("disabled") {
		t.Fatalf("expected both pager items disabled before the first page")
	}
	if doc.Find("#gamesContainer").Length() != 1 || doc.Find("#notice").Length() != 1 {
		t.Fatalf("expected results container and notice area")
	}
}

func TestFacetOptionsSelected(t *testing.T) {
	options := browser.FacetOptions(browser.FacetGenre, []browser.FacetOption{{Name: "RPG"}, {Name: "Shooter"}})
	doc := renderDoc(t, FacetOptions(options, "Shooter"))
	if got := doc.Find("option").Length(); got != 3 {
		t.Fatalf("expected 3 options, got %d", got)
	}
	if got := doc.Find("option[selected]").Text(); got != "Shooter" {
		t.Fatalf("expected Shooter selected, got %q", got)
	}
}

func TestResultsFragmentPager(t *testing.T) {
	data := ResultsData{
		Cards:      browser.CardRenderer{}.Render([]browser.GameSummary{{ID: "g1", Name: "One"}}),
		Pagination: browser.PaginationState{CurrentPage: 2, TotalPages: 3},
		Selections: browser.Selections{Genre: "RPG & Co"},
		BasePath:   "/library/results",
	}
	doc := renderDoc(t, ResultsFragment(data))
	if got := doc.Find("#currentPageInfo").Text(); got != "2/3" {
		t.Fatalf("expected 2/3, got %q", got)
	}
	href, _ := doc.Find("#nextPage").Attr("href")
	parsed, err := url.Parse(href)
	if err != nil {
		t.Fatalf("parse href: %v", err)
	}
	if parsed.Path != "/library/results" || parsed.Query().Get("page") != "3" || parsed.Query().Get("genre") != "RPG & Co" {
		t.Fatalf("unexpected next href %q", href)
	}
	if doc.Find("#prevPageItem").HasClass("disabled") || doc.Find("#nextPageItem").HasClass("disabled") {
		t.Fatalf("expected both pager items enabled on a middle page")
	}
}

func TestNoticeRendering(t *testing.T) {
	doc := renderDoc(t, Notice(browser.Notice{Level: browser.NoticeError, Message: "Could not load games."}))
	notice := doc.Find(".notice")
	if !notice.HasClass("notice-error") || !strings.Contains(notice.Text(), "Could not load games.") {
		t.Fatalf("unexpected notice markup")
	}
	empty := renderDoc(t, Notice(browser.Notice{}))
	if empty.Find(".notice").Length() != 0 {
		t.Fatalf("expected empty notice to render nothing")
	}
}
