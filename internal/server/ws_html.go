package server

import (
	"bytes"
	"context"
	"html"

	"library-browser/internal/browser"

	"github.com/a-h/templ"
)

const (
	modeInner = "inner"
	modeClass = "class"
	modeAttr  = "attr"
)

// wsHTMLMessage is one DOM update applied by the page script.
type wsHTMLMessage struct {
	Type    string `json:"type"`
	Target  string `json:"target"`
	Mode    string `json:"mode"`
	Name    string `json:"name,omitempty"`
	Enabled bool   `json:"enabled,omitempty"`
	Value   string `json:"value,omitempty"`
	HTML    string `json:"html,omitempty"`
}

func htmlMessage(target, mode, markup string) wsHTMLMessage {
	return wsHTMLMessage{
		Type:   "html",
		Target: target,
		Mode:   mode,
		HTML:   markup,
	}
}

func classMessage(target, class string, enabled bool) wsHTMLMessage {
	return wsHTMLMessage{
		Type:    "html",
		Target:  target,
		Mode:    modeClass,
		Name:    class,
		Enabled: enabled,
	}
}

func attrMessage(target, name, value string, enabled bool) wsHTMLMessage {
	return wsHTMLMessage{
		Type:    "html",
		Target:  target,
		Mode:    modeAttr,
		Name:    name,
		Value:   value,
		Enabled: enabled,
	}
}

func navigationMessages(nav browser.Navigation) []wsHTMLMessage {
	return []wsHTMLMessage{
		classMessage("#prevPageItem", "disabled", !nav.PrevEnabled),
		attrMessage("#prevPage", "aria-disabled", "true", !nav.PrevEnabled),
		classMessage("#nextPageItem", "disabled", !nav.NextEnabled),
		attrMessage("#nextPage", "aria-disabled", "true", !nav.NextEnabled),
	}
}

func renderComponent(component templ.Component) string {
	var buf bytes.Buffer
	if err := component.Render(context.Background(), &buf); err != nil {
		return ""
	}
	return buf.String()
}

func escapeHTML(value string) string {
	return html.EscapeString(value)
}
