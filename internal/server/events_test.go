package server

import (
	"testing"

	"library-browser/internal/browser"
)

func TestSearchPayload(t *testing.T) {
	snapshot := browser.BuildSnapshot(browser.Selections{Genre: "RPG"}, 2, browser.QueryOptions{})

	eventType, payload := searchPayload(browser.FetchResult{
		Seq:      3,
		Snapshot: snapshot,
		Page:     browser.ResultPage{Items: make([]browser.GameSummary, 4), CurrentPage: 2, TotalPages: 5},
		Applied:  true,
	}, nil)
	if eventType != eventSearchApplied || payload.Items != 4 || payload.TotalPages != 5 || payload.Filters.Genre != "RPG" {
		t.Fatalf("unexpected applied payload %s %+v", eventType, payload)
	}

	eventType, _ = searchPayload(browser.FetchResult{Seq: 1, Snapshot: snapshot, Stale: true}, nil)
	if eventType != eventSearchStale {
		t.Fatalf("expected stale event, got %s", eventType)
	}

	eventType, payload = searchPayload(browser.FetchResult{Seq: 4, Snapshot: snapshot}, errCatalogDown)
	if eventType != eventSearchFailed || payload.Reason != errCatalogDown.Error() || payload.Page != 2 {
		t.Fatalf("unexpected failure payload %s %+v", eventType, payload)
	}
}

func TestJournalWithoutDatabase(t *testing.T) {
	if err := newJournal(nil).Record("s1", eventSessionStarted, EventPayload{}); err != nil {
		t.Fatalf("expected no-op journal, got %v", err)
	}
}
