package web

import (
	"context"
	"io"
	"strconv"
	"strings"

	"library-browser/internal/browser"

	"github.com/a-h/templ"
)

// FacetOptions renders the <option> list of one select control.
func FacetOptions(options []browser.Option, selected string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		writeOptions(&b, options, selected)
		_, err := io.WriteString(w, b.String())
		return err
	})
}

func Notice(notice browser.Notice) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if notice.Message == "" {
			return nil
		}
		level := notice.Level
		if level == "" {
			level = browser.NoticeInfo
		}
		_, err := io.WriteString(w, `<div class="notice notice-`+esc(level)+`" role="alert">`+esc(notice.Message)+`</div>`)
		return err
	})
}

// ResultsFragment is the server-rendered results block: cards, page
// indicator and plain links for the adjacent pages.
func ResultsFragment(data ResultsData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(`<div id="gamesContainer" class="games-container">`)
		writeGames(&b, data.Cards)
		b.WriteString(`</div>`)
		writePager(&b, data)
		_, err := io.WriteString(w, b.String())
		return err
	})
}

func writePager(b *strings.Builder, data ResultsData) {
	nav := data.Pagination.Navigation()
	b.WriteString(`<nav class="pagination-nav"><ul class="pagination">`)
	b.WriteString(`<li id="prevPageItem" class="page-item` + disabledClass(!nav.PrevEnabled) + `">`)
	if nav.PrevEnabled {
		b.WriteString(`<a id="prevPage" class="page-link" href="` + esc(pageURL(data.BasePath, data.Selections, data.Pagination.CurrentPage-1)) + `">Previous</a>`)
	} else {
		b.WriteString(`<a id="prevPage" class="page-link" href="#" aria-disabled="true">Previous</a>`)
	}
	b.WriteString(`</li>`)
	b.WriteString(`<li class="page-item"><span id="currentPageInfo" class="page-info">` + esc(data.Pagination.Indicator()) + `</span></li>`)
	b.WriteString(`<li id="nextPageItem" class="page-item` + disabledClass(!nav.NextEnabled) + `">`)
	if nav.NextEnabled {
		b.WriteString(`<a id="nextPage" class="page-link" href="` + esc(pageURL(data.BasePath, data.Selections, data.Pagination.CurrentPage+1)) + `">Next</a>`)
	} else {
		b.WriteString(`<a id="nextPage" class="page-link" href="#" aria-disabled="true">Next</a>`)
	}
	b.WriteString(`</li></ul></nav>`)
}

func disabledClass(disabled bool) string {
	if disabled {
		return " disabled"
	}
	return ""
}

func writeOptions(b *strings.Builder, options []browser.Option, selected string) {
	for _, option := range options {
		attr := ""
		if option.Value == selected {
			attr = ` selected`
		}
		b.WriteString(`<option value="` + esc(option.Value) + `"` + attr + `>` + esc(option.Label) + `</option>`)
	}
}

func writeSelect(b *strings.Builder, id, name, label string, options []browser.Option) {
	b.WriteString(`<label class="filter-field" for="` + esc(id) + `"><span>` + esc(label) + `</span>`)
	b.WriteString(`<select id="` + esc(id) + `" name="` + esc(name) + `">`)
	writeOptions(b, options, "")
	b.WriteString(`</select></label>`)
}

// LibraryPage is the browser shell. Results, facets and pager state arrive
// over the websocket after it loads.
func LibraryPage(data LibraryPageData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(`<!doctype html>
<html lang="en">
  <head>
    <meta charset="utf-8"/>
    <meta name="viewport" content="width=device-width, initial-scale=1"/>
    <meta name="csrf-token" content="` + esc(data.CSRFToken) + `"/>
    <title>Library</title>
    <link rel="stylesheet" href="` + esc(assetPath("/static/styles.css")) + `"/>
  </head>
  <body>
    <main class="shell library">
      <form id="filterForm" class="filter-form" method="get" action="` + esc(data.ResultsURL) + `">
`)
		writeSelect(&b, "categorySelect", "category", "Category", data.Categories)
		for _, facet := range data.Facets {
			writeSelect(&b, facet.Kind.ControlID(), facet.Kind.ParamName(), strings.TrimPrefix(facet.Kind.AllLabel(), "All "), facet.Options)
		}
		rating := data.Rating
		if rating == "" {
			rating = "0"
		}
		b.WriteString(`<label class="filter-field" for="ratingSlider"><span>Minimum rating: <span id="ratingValue">` + esc(rating) + `</span></span>`)
		b.WriteString(`<input type="range" id="ratingSlider" name="rating" min="0" max="` + itoa(data.RatingMax) + `" value="` + esc(rating) + `"/></label>`)
		b.WriteString(`<button type="submit" class="primary">Filter</button>
      </form>
      <div id="notice" class="notice-area" aria-live="polite"></div>
      <section id="results">
`)
		writeGamesShell(&b)
		b.WriteString(`
      </section>
    </main>
    <script>
`)
		b.WriteString(libraryScript(data.WSPath, data.ResultsURL))
		b.WriteString(`
    </script>
  </body>
</html>
`)
		_, err := io.WriteString(w, b.String())
		return err
	})
}

func writeGamesShell(b *strings.Builder) {
	b.WriteString(`<div id="gamesContainer" class="games-container"></div>`)
	writePager(b, ResultsData{Pagination: browser.InitialPagination()})
}

func libraryScript(wsPath, resultsURL string) string {
	return `      (function () {
        const wsPath = ` + strconv.Quote(wsPath) + `;
        const resultsURL = ` + strconv.Quote(resultsURL) + `;
        const form = document.getElementById("filterForm");
        const slider = document.getElementById("ratingSlider");
        const results = document.getElementById("results");
        let socket = null;

        function readFilters() {
          const data = new FormData(form);
          const filters = {};
          for (const [key, value] of data.entries()) {
            filters[key] = String(value);
          }
          return filters;
        }

        function send(message) {
          if (socket && socket.readyState === WebSocket.OPEN) {
            socket.send(JSON.stringify(message));
            return true;
          }
          return false;
        }

        function apply(messages) {
          (Array.isArray(messages) ? messages : [messages]).forEach(function (msg) {
            if (!msg || msg.type !== "html") {
              return;
            }
            const el = document.querySelector(msg.target);
            if (!el) {
              return;
            }
            if (msg.mode === "inner") {
              el.innerHTML = msg.html || "";
            } else if (msg.mode === "class") {
              el.classList.toggle(msg.name, !!msg.enabled);
            } else if (msg.mode === "attr") {
              if (msg.enabled) {
                el.setAttribute(msg.name, msg.value || "");
              } else {
                el.removeAttribute(msg.name);
              }
            }
          });
        }

        async function loadFragment(url) {
          const res = await fetch(url);
          if (!res.ok) {
            document.getElementById("notice").innerHTML = "<div class=\"notice notice-error\" role=\"alert\">Could not load games.</div>";
            return;
          }
          results.innerHTML = await res.text();
        }

        function connect() {
          const scheme = location.protocol === "https:" ? "wss://" : "ws://";
          socket = new WebSocket(scheme + location.host + wsPath);
          socket.addEventListener("message", function (event) {
            apply(JSON.parse(event.data));
          });
          socket.addEventListener("close", function () {
            socket = null;
          });
        }

        form.addEventListener("submit", function (event) {
          event.preventDefault();
          if (!send({ action: "submit", filters: readFilters() })) {
            const params = new URLSearchParams(readFilters());
            params.set("page", "1");
            loadFragment(resultsURL + "?" + params.toString());
          }
        });

        slider.addEventListener("input", function () {
          if (!send({ action: "rating", value: slider.value })) {
            document.getElementById("ratingValue").textContent = slider.value;
          }
        });

        results.addEventListener("click", function (event) {
          const pager = event.target.closest("#prevPage, #nextPage");
          if (pager) {
            event.preventDefault();
            if (pager.closest(".disabled")) {
              return;
            }
            if (!send({ action: pager.id === "prevPage" ? "prev" : "next", filters: readFilters() })) {
              const href = pager.getAttribute("href");
              if (href && href !== "#") {
                loadFragment(href);
              }
            }
            return;
          }
          const menuButton = event.target.closest(".button-glass-hamburger");
          if (menuButton) {
            send({ action: "menu", id: menuButton.closest(".game-card").dataset.gameId });
            return;
          }
          const remove = event.target.closest(".delete-game");
          if (remove) {
            document.dispatchEvent(new CustomEvent("library:delete-game", { detail: { uuid: remove.dataset.gameUuid } }));
          }
        });

        function hover(event, entered) {
          const card = event.target.closest(".game-card");
          if (!card || (event.relatedTarget && card.contains(event.relatedTarget))) {
            return;
          }
          send({ action: "hover", id: card.dataset.gameId, entered: entered });
        }
        results.addEventListener("mouseover", function (event) { hover(event, true); });
        results.addEventListener("mouseout", function (event) { hover(event, false); });

        connect();
      })();`
}
