package browser

import (
	"encoding/hex"
	"errors"
	"net/url"
	"strings"
)

const (
	DefaultImageBase = "/static/images/"
	defaultCoverFile = "default_cover.jpg"
	noGenresLabel    = "No Genres"
)

var ErrUnknownCard = errors.New("card not rendered")

const (
	MenuForm   = "form"
	MenuRemove = "remove"
	MenuLink   = "link"
)

// TokenSource is the page-wide anti-forgery token holder. It is read once per
// render.
type TokenSource interface {
	CSRFToken() string
}

type TokenFunc func() string

func (f TokenFunc) CSRFToken() string {
	if f == nil {
		return ""
	}
	return f()
}

type CardHandles struct {
	CardID       string
	MenuID       string
	MenuButtonID string
	DetailsID    string
}

type MenuAction struct {
	Kind      string
	Label     string
	Method    string
	Href      string
	CSRFToken string
	GameID    string
	NewWindow bool
}

type Card struct {
	Game        GameSummary
	CoverSrc    string
	GenresLabel string
	DetailsHref string
	Handles     CardHandles
	Menu        []MenuAction
}

type CardRenderer struct {
	ImageBase  string
	ActionBase string
	Tokens     TokenSource
}

func (r CardRenderer) Render(items []GameSummary) []Card {
	token := ""
	if r.Tokens != nil {
		token = r.Tokens.CSRFToken()
	}
	cards := make([]Card, 0, len(items))
	for _, item := range items {
		cards = append(cards, r.card(item, token))
	}
	return cards
}

func (r CardRenderer) card(game GameSummary, token string) Card {
	genres := noGenresLabel
	if len(game.Genres) > 0 {
		genres = strings.Join(game.Genres, ", ")
	}
	return Card{
		Game:        game,
		CoverSrc:    ResolveCover(r.imageBase(), game.CoverURL),
		GenresLabel: genres,
		DetailsHref: r.actionURL("/game_details/", game.ID),
		Handles:     HandlesFor(game.ID),
		Menu: []MenuAction{
			{Kind: MenuForm, Label: "Download", Method: "get", Href: r.actionURL("/download_game/", game.ID)},
			{Kind: MenuForm, Label: "Edit Details", Method: "get", Href: r.actionURL("/game_edit/", game.ID)},
			{Kind: MenuForm, Label: "Edit Images", Method: "get", Href: r.actionURL("/edit_game_images/", game.ID)},
			{Kind: MenuForm, Label: "Refresh Images", Method: "post", Href: r.actionURL("/refresh_game_images/", game.ID), CSRFToken: token},
			{Kind: MenuRemove, Label: "Remove Game", GameID: game.ID},
			{Kind: MenuLink, Label: "Open IGDB Page", Href: game.ExternalURL, NewWindow: true},
		},
	}
}

func (r CardRenderer) imageBase() string {
	if r.ImageBase == "" {
		return DefaultImageBase
	}
	return r.ImageBase
}

func (r CardRenderer) actionURL(prefix, id string) string {
	return strings.TrimRight(r.ActionBase, "/") + prefix + url.PathEscape(id)
}

// ResolveCover keeps absolute network locations and resolves everything else
// against base.
func ResolveCover(base, cover string) string {
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	cover = strings.TrimSpace(cover)
	if cover == "" {
		cover = defaultCoverFile
	}
	if isNetworkLocation(cover) {
		return cover
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return base + strings.TrimLeft(cover, "/")
	}
	ref, err := url.Parse(cover)
	if err != nil {
		return base + strings.TrimLeft(cover, "/")
	}
	return baseURL.ResolveReference(ref).String()
}

func isNetworkLocation(raw string) bool {
	lower := strings.ToLower(raw)
	return strings.HasPrefix(lower, "http://") ||
		strings.HasPrefix(lower, "https://") ||
		strings.HasPrefix(lower, "//")
}

func HandlesFor(id string) CardHandles {
	key := handleKey(id)
	return CardHandles{
		CardID:       "card-" + key,
		MenuID:       "popupMenu-" + key,
		MenuButtonID: "menuButton-" + key,
		DetailsID:    "details-" + key,
	}
}

// handleKey is injective: plain keys never start with 'x', encoded keys always do.
func handleKey(id string) string {
	if id != "" && id[0] != 'x' && isPlainKey(id) {
		return id
	}
	return "x" + hex.EncodeToString([]byte(id))
}

func isPlainKey(id string) bool {
	for i := 0; i < len(id); i++ {
		c := id[i]
		switch {
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
		case c == '-' || c == '_':
		default:
			return false
		}
	}
	return true
}
