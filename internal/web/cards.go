package web

import (
	"context"
	"io"
	"strings"

	"library-browser/internal/browser"

	"github.com/a-h/templ"
)

// GamesContainer renders the whole result set; the caller replaces the
// container's content with it.
func GamesContainer(cards []browser.Card) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		writeGames(&b, cards)
		_, err := io.WriteString(w, b.String())
		return err
	})
}

func GameCard(card browser.Card) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		writeCard(&b, card)
		_, err := io.WriteString(w, b.String())
		return err
	})
}

func writeGames(b *strings.Builder, cards []browser.Card) {
	if len(cards) == 0 {
		b.WriteString(`<p class="no-results">No games found.</p>`)
		return
	}
	for _, card := range cards {
		writeCard(b, card)
	}
}

func writeCard(b *strings.Builder, card browser.Card) {
	game := card.Game
	h := card.Handles
	b.WriteString(`<div class="game-card" id="` + esc(h.CardID) + `" data-game-id="` + esc(game.ID) +
		`" data-name="` + esc(game.Name) + `" data-size="` + esc(game.Size) + `" data-genres="` + esc(card.GenresLabel) + `">`)
	b.WriteString(`<button type="button" id="` + esc(h.MenuButtonID) + `" class="button-glass-hamburger" aria-controls="` +
		esc(h.MenuID) + `" aria-label="Actions for ` + esc(game.Name) + `"><i class="fas fa-bars"></i></button>`)
	writeMenu(b, card)
	b.WriteString(`<a href="` + esc(string(templ.URL(card.DetailsHref))) + `">`)
	b.WriteString(`<img src="` + esc(string(templ.URL(card.CoverSrc))) + `" alt="` + esc(game.Name) + `" class="game-cover"/>`)
	b.WriteString(`</a>`)
	b.WriteString(`<div id="` + esc(h.DetailsID) + `" class="popup-game-details hidden">`)
	b.WriteString(`<h3>` + esc(game.Name) + `</h3>`)
	if game.Size != "" {
		b.WriteString(`<p class="game-size">` + esc(game.Size) + `</p>`)
	}
	b.WriteString(`<p class="game-genres">` + esc(card.GenresLabel) + `</p>`)
	if game.Summary != "" {
		b.WriteString(`<p class="game-summary">` + esc(game.Summary) + `</p>`)
	}
	b.WriteString(`</div></div>`)
}

func writeMenu(b *strings.Builder, card browser.Card) {
	b.WriteString(`<div id="` + esc(card.Handles.MenuID) + `" class="popup-menu hidden">`)
	for _, action := range card.Menu {
		switch action.Kind {
		case browser.MenuForm:
			b.WriteString(`<form action="` + esc(string(templ.URL(action.Href))) + `" method="` + esc(action.Method) + `" class="menu-item">`)
			if action.Method == "post" {
				b.WriteString(`<input type="hidden" name="csrf_token" value="` + esc(action.CSRFToken) + `"/>`)
			}
			b.WriteString(`<button type="submit" class="menu-button">` + esc(action.Label) + `</button></form>`)
		case browser.MenuRemove:
			b.WriteString(`<div class="menu-item"><button type="button" class="menu-button delete-game" data-game-uuid="` +
				esc(action.GameID) + `">` + esc(action.Label) + `</button></div>`)
		case browser.MenuLink:
			target := ""
			if action.NewWindow {
				target = ` target="_blank" rel="noopener noreferrer"`
			}
			b.WriteString(`<div class="menu-item"><a href="` + esc(string(templ.URL(action.Href))) + `"` + target +
				` class="menu-button">` + esc(action.Label) + `</a></div>`)
		}
	}
	b.WriteString(`</div>`)
}

func esc(value string) string {
	return templ.EscapeString(value)
}
