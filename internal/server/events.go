package server

import "library-browser/internal/browser"

type EventPayload struct {
	Facet      string              `json:"facet,omitempty"`
	Seq        uint64              `json:"seq,omitempty"`
	Page       int                 `json:"page,omitempty"`
	TotalPages int                 `json:"total_pages,omitempty"`
	Items      int                 `json:"items,omitempty"`
	Filters    *browser.Selections `json:"filters,omitempty"`
	Reason     string              `json:"reason,omitempty"`
	Remote     string              `json:"remote,omitempty"`
}

const (
	eventSessionStarted = "session_started"
	eventFacetFailed    = "facet_failed"
	eventSearchApplied  = "search_applied"
	eventSearchStale    = "search_stale"
	eventSearchFailed   = "search_failed"
)

func searchPayload(result browser.FetchResult, err error) (string, EventPayload) {
	filters := result.Snapshot.Selections()
	payload := EventPayload{
		Seq:     result.Seq,
		Page:    result.Snapshot.Page,
		Filters: &filters,
	}
	switch {
	case err != nil:
		payload.Reason = err.Error()
		return eventSearchFailed, payload
	case result.Stale:
		return eventSearchStale, payload
	default:
		payload.Page = result.Page.CurrentPage
		payload.TotalPages = result.Page.TotalPages
		payload.Items = len(result.Page.Items)
		return eventSearchApplied, payload
	}
}
