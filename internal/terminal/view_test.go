package terminal

import (
	"bytes"
	"strings"
	"testing"

	"library-browser/internal/browser"

	"github.com/fatih/color"
)

func init() {
	color.NoColor = true
}

func TestViewPrintsResultsTable(t *testing.T) {
	var out, errOut bytes.Buffer
	view := NewView(&out, &errOut)
	view.ShowMenus = true

	cards := browser.CardRenderer{ActionBase: "https://library.example"}.Render([]browser.GameSummary{
		{ID: "g1", Name: "Quest", Size: "1.2 GB", Genres: []string{"RPG", "Adventure"}},
		{ID: "g2", Name: "Blaster"},
	})
	view.SetPageInfo("1/3")
	view.ShowResults(cards)
	view.SetNavigation(browser.Navigation{NextEnabled: true})

	text := out.String()
	for _, want := range []string{"Page 1/3", "Quest", "RPG, Adventure", "No Genres", "https://library.example/game_details/g1", "(prev) [next]", "Refresh Images", "POST https://library.example/refresh_game_images/g1"} {
		if !strings.Contains(text, want) {
			t.Fatalf("expected %q in output:\n%s", want, text)
		}
	}
	if view.PageInfo() != "1/3" || view.Navigation().PrevEnabled {
		t.Fatalf("unexpected recorded state")
	}
}

func TestViewEmptyResults(t *testing.T) {
	var out bytes.Buffer
	view := NewView(&out, &out)
	view.ShowResults(nil)
	if !strings.Contains(out.String(), "No games found.") {
		t.Fatalf("expected placeholder, got %q", out.String())
	}
}

func TestViewNoticesAndVisibility(t *testing.T) {
	var out, errOut bytes.Buffer
	view := NewView(&out, &errOut)

	view.Notify(browser.Notice{Level: browser.NoticeError, Message: "Could not load games."})
	if !strings.Contains(errOut.String(), "Could not load games.") || out.Len() != 0 {
		t.Fatalf("expected notice on the error stream only")
	}
	view.ClearNotice()
	if view.Notice().Message != "" {
		t.Fatalf("expected notice cleared")
	}

	view.SetVisible("details-g1", true)
	if !view.Visible("details-g1") || view.Visible("details-g2") {
		t.Fatalf("unexpected visibility state")
	}
}

func TestViewFacetsOptional(t *testing.T) {
	var out bytes.Buffer
	view := NewView(&out, &out)
	options := browser.FacetOptions(browser.FacetGenre, []browser.FacetOption{{Name: "RPG"}})
	view.SetFacetOptions(browser.FacetGenre, options)
	if out.Len() != 0 {
		t.Fatalf("expected facets hidden by default")
	}
	view.ShowFacets = true
	view.SetFacetOptions(browser.FacetGenre, options)
	if got := out.String(); !strings.Contains(got, "Genres: RPG") {
		t.Fatalf("unexpected facet line %q", got)
	}
}
