package browser

import (
	"errors"
	"strconv"
)

var ErrNoPage = errors.New("no page in that direction")

type PaginationState struct {
	CurrentPage int
	TotalPages  int
}

type Navigation struct {
	PrevEnabled bool
	NextEnabled bool
}

func InitialPagination() PaginationState {
	return PaginationState{CurrentPage: 1, TotalPages: 0}
}

// FromResult applies a response's pagination fields, keeping
// 1 <= current and current <= total whenever total > 0.
func (p PaginationState) FromResult(page ResultPage) PaginationState {
	current := page.CurrentPage
	total := page.TotalPages
	if total < 0 {
		total = 0
	}
	if current < 1 {
		current = 1
	}
	if total > 0 && current > total {
		current = total
	}
	return PaginationState{CurrentPage: current, TotalPages: total}
}

// Navigation disables both directions while there are no result pages,
// whatever current page the catalog echoed back.
func (p PaginationState) Navigation() Navigation {
	if p.TotalPages <= 0 {
		return Navigation{}
	}
	return Navigation{
		PrevEnabled: p.CurrentPage > 1,
		NextEnabled: p.CurrentPage < p.TotalPages,
	}
}

func (p PaginationState) Indicator() string {
	return strconv.Itoa(p.CurrentPage) + "/" + strconv.Itoa(p.TotalPages)
}

func (p PaginationState) PrevPage() (int, error) {
	if !p.Navigation().PrevEnabled {
		return 0, ErrNoPage
	}
	return p.CurrentPage - 1, nil
}

func (p PaginationState) NextPage() (int, error) {
	if !p.Navigation().NextEnabled {
		return 0, ErrNoPage
	}
	return p.CurrentPage + 1, nil
}
