package browser

import (
	"net/url"
	"strconv"
	"strings"
)

const PerPage = 20

// Selections is the raw state of the six filter inputs as read from the UI.
type Selections struct {
	Category          string `json:"category" form:"category" binding:"omitempty,filter"`
	Genre             string `json:"genre" form:"genre" binding:"omitempty,filter"`
	GameMode          string `json:"gameMode" form:"gameMode" binding:"omitempty,filter"`
	PlayerPerspective string `json:"playerPerspective" form:"playerPerspective" binding:"omitempty,filter"`
	Theme             string `json:"theme" form:"theme" binding:"omitempty,filter"`
	Rating            string `json:"rating" form:"rating" binding:"omitempty,filter"`
}

type QueryOptions struct {
	// RatingZeroUnset treats a slider value of "0" as "no rating constraint".
	RatingZeroUnset bool
}

// FilterSnapshot is passed by value and never modified after BuildSnapshot.
type FilterSnapshot struct {
	Page              int
	PerPage           int
	Category          string
	Genre             string
	GameMode          string
	PlayerPerspective string
	Theme             string
	Rating            string
}

func BuildSnapshot(sel Selections, page int, opts QueryOptions) FilterSnapshot {
	if page <= 0 {
		page = 1
	}
	rating := strings.TrimSpace(sel.Rating)
	if opts.RatingZeroUnset && isZeroRating(rating) {
		rating = ""
	}
	return FilterSnapshot{
		Page:              page,
		PerPage:           PerPage,
		Category:          sel.Category,
		Genre:             sel.Genre,
		GameMode:          sel.GameMode,
		PlayerPerspective: sel.PlayerPerspective,
		Theme:             sel.Theme,
		Rating:            rating,
	}
}

// Values encodes the snapshot as search query parameters. Every filter key is
// always present; an empty value means "all".
func (s FilterSnapshot) Values() url.Values {
	values := url.Values{}
	values.Set("page", strconv.Itoa(s.Page))
	values.Set("per_page", strconv.Itoa(s.PerPage))
	values.Set("category", s.Category)
	values.Set("genre", s.Genre)
	values.Set("gameMode", s.GameMode)
	values.Set("playerPerspective", s.PlayerPerspective)
	values.Set("theme", s.Theme)
	values.Set("rating", s.Rating)
	return values
}

// Selections returns the filter part of the snapshot.
func (s FilterSnapshot) Selections() Selections {
	return Selections{
		Category:          s.Category,
		Genre:             s.Genre,
		GameMode:          s.GameMode,
		PlayerPerspective: s.PlayerPerspective,
		Theme:             s.Theme,
		Rating:            s.Rating,
	}
}

func isZeroRating(raw string) bool {
	if raw == "" {
		return false
	}
	value, err := strconv.ParseFloat(raw, 64)
	return err == nil && value == 0
}
