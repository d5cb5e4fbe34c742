// Package terminal renders a browsing session as text tables.
package terminal

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"library-browser/internal/browser"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
)

// View implements browser.View on a terminal. Results are printed as a
// table each time a page is applied.
type View struct {
	out io.Writer
	err io.Writer

	ShowFacets bool
	ShowMenus  bool

	mu      sync.Mutex
	page    string
	nav     browser.Navigation
	cards   []browser.Card
	visible map[string]bool
	notice  browser.Notice
}

var (
	errorText = color.New(color.FgRed, color.Bold).SprintFunc()
	infoText  = color.New(color.FgYellow).SprintFunc()
	facetText = color.New(color.FgCyan).SprintFunc()
	pageText  = color.New(color.Bold).SprintFunc()
	faintText = color.New(color.Faint).SprintFunc()
)

func NewView(out, errOut io.Writer) *View {
	return &View{
		out:     out,
		err:     errOut,
		visible: make(map[string]bool),
	}
}

func (v *View) SetFacetOptions(kind browser.FacetKind, options []browser.Option) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.ShowFacets {
		return
	}
	labels := make([]string, 0, len(options))
	for _, option := range options {
		if option.Value == "" {
			continue
		}
		labels = append(labels, option.Label)
	}
	fmt.Fprintf(v.out, "%s %s\n", facetText(strings.TrimPrefix(kind.AllLabel(), "All ")+":"), strings.Join(labels, ", "))
}

func (v *View) ShowResults(cards []browser.Card) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.cards = cards
	v.visible = make(map[string]bool)
	if len(cards) == 0 {
		fmt.Fprintln(v.out, faintText("No games found."))
		return
	}
	table := tablewriter.NewWriter(v.out)
	table.SetHeader([]string{"Name", "Size", "Genres", "Cover", "Details"})
	table.SetAutoWrapText(false)
	for _, card := range cards {
		table.Append([]string{card.Game.Name, card.Game.Size, card.GenresLabel, card.CoverSrc, card.DetailsHref})
	}
	table.Render()
	if v.ShowMenus {
		for _, card := range cards {
			v.writeMenu(card)
		}
	}
}

func (v *View) writeMenu(card browser.Card) {
	fmt.Fprintf(v.out, "%s\n", pageText(card.Game.Name))
	for _, action := range card.Menu {
		target := action.Href
		if action.Kind == browser.MenuRemove {
			target = "uuid " + action.GameID
		}
		fmt.Fprintf(v.out, "  %-16s %s %s\n", action.Label, strings.ToUpper(action.Method), target)
	}
}

func (v *View) SetPageInfo(text string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.page = text
	fmt.Fprintf(v.out, "%s %s\n", pageText("Page"), text)
}

func (v *View) SetNavigation(nav browser.Navigation) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.nav = nav
	fmt.Fprintf(v.out, "%s %s\n", navLabel("prev", nav.PrevEnabled), navLabel("next", nav.NextEnabled))
}

func navLabel(label string, enabled bool) string {
	if enabled {
		return "[" + label + "]"
	}
	return faintText("(" + label + ")")
}

func (v *View) SetVisible(elementID string, visible bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.visible[elementID] = visible
}

func (v *View) Notify(notice browser.Notice) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.notice = notice
	if notice.Level == browser.NoticeError {
		fmt.Fprintln(v.err, errorText(notice.Message))
		return
	}
	fmt.Fprintln(v.err, infoText(notice.Message))
}

func (v *View) ClearNotice() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.notice = browser.Notice{}
}

func (v *View) PageInfo() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.page
}

func (v *View) Navigation() browser.Navigation {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.nav
}

func (v *View) Visible(elementID string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.visible[elementID]
}

func (v *View) Notice() browser.Notice {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.notice
}
