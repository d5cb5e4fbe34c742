package main

import (
	"context"
	"errors"
	"log"
	"os"
	"time"

	"library-browser/internal/browser"
	"library-browser/internal/catalog"
	"library-browser/internal/config"
	"library-browser/internal/terminal"

	"github.com/fatih/color"
	"gopkg.in/alecthomas/kingpin.v2"
)

var (
	app = kingpin.New("browse", "Browse the game library catalog from a terminal")

	browseArgs = struct {
		catalogURL  *string
		cookie      *string
		timeout     *time.Duration
		category    *string
		genre       *string
		gameMode    *string
		perspective *string
		theme       *string
		rating      *string
		pages       *int
		facets      *bool
		menus       *bool
		noColor     *bool
	}{
		app.Flag("catalog-url", "Base address of the catalog server").Envar("CATALOG_URL").String(),
		app.Flag("cookie", "Cookie header sent to the catalog").Envar("CATALOG_COOKIE").String(),
		app.Flag("timeout", "Per-request timeout (0 waits forever)").Default("0s").Duration(),
		app.Flag("category", "Category filter").String(),
		app.Flag("genre", "Genre filter").String(),
		app.Flag("game-mode", "Game mode filter").String(),
		app.Flag("perspective", "Player perspective filter").String(),
		app.Flag("theme", "Theme filter").String(),
		app.Flag("rating", "Minimum rating").String(),
		app.Flag("pages", "How many pages to walk").Short('n').Default("1").Int(),
		app.Flag("facets", "Print the facet values").Bool(),
		app.Flag("menus", "Print the card action menus").Bool(),
		app.Flag("no-color", "Disable colored output").Bool(),
	}
)

func main() {
	app.HelpFlag.Short('h')
	kingpin.MustParse(app.Parse(os.Args[1:]))

	if err := config.LoadDotEnv(".env"); err != nil {
		log.Printf("failed to load .env: %v", err)
	}
	cfg := config.Load()
	if *browseArgs.noColor {
		color.NoColor = true
	}
	baseURL := *browseArgs.catalogURL
	if baseURL == "" {
		baseURL = cfg.CatalogURL
	}
	cookie := *browseArgs.cookie
	if cookie == "" {
		cookie = cfg.CatalogCookie
	}

	view := terminal.NewView(os.Stdout, os.Stderr)
	view.ShowFacets = *browseArgs.facets
	view.ShowMenus = *browseArgs.menus

	client := catalog.New(catalog.Options{
		BaseURL:   baseURL,
		Cookie:    cookie,
		Timeout:   *browseArgs.timeout,
		CSRFToken: cfg.CatalogCSRFToken,
		TokenPath: cfg.CatalogTokenPath,
	})
	actionBase := cfg.ActionBaseURL
	if actionBase == "" {
		actionBase = baseURL
	}
	session := browser.NewSession(browser.SessionConfig{
		ID:      "terminal",
		Catalog: client,
		View:    view,
		Renderer: browser.CardRenderer{
			ImageBase:  cfg.ImageBasePath,
			ActionBase: actionBase,
			Tokens:     client,
		},
		Query: browser.QueryOptions{RatingZeroUnset: cfg.RatingZeroUnset},
	})

	ctx := context.Background()
	if *browseArgs.facets {
		for _, kind := range browser.FacetKinds {
			_ = session.LoadFacet(ctx, kind)
		}
	}
	sel := browser.Selections{
		Category:          *browseArgs.category,
		Genre:             *browseArgs.genre,
		GameMode:          *browseArgs.gameMode,
		PlayerPerspective: *browseArgs.perspective,
		Theme:             *browseArgs.theme,
		Rating:            *browseArgs.rating,
	}
	if _, err := session.Submit(ctx, sel); err != nil {
		log.Fatalf("browse failed: %v", err)
	}
	for i := 1; i < *browseArgs.pages; i++ {
		if _, err := session.Next(ctx, sel); err != nil {
			if errors.Is(err, browser.ErrNoPage) {
				return
			}
			log.Fatalf("browse failed: %v", err)
		}
	}
}
