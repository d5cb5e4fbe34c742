package browser

type FacetKind string

const (
	FacetGenre             FacetKind = "genre"
	FacetGameMode          FacetKind = "game_mode"
	FacetPlayerPerspective FacetKind = "player_perspective"
	FacetTheme             FacetKind = "theme"
)

// FacetKinds lists the facets in the order the filter form shows them.
var FacetKinds = []FacetKind{FacetGenre, FacetGameMode, FacetPlayerPerspective, FacetTheme}

type Option struct {
	Value string
	Label string
}

func (k FacetKind) Path() string {
	switch k {
	case FacetGenre:
		return "/api/genres"
	case FacetGameMode:
		return "/api/game_modes"
	case FacetPlayerPerspective:
		return "/api/player_perspectives"
	case FacetTheme:
		return "/api/themes"
	}
	return ""
}

func (k FacetKind) AllLabel() string {
	switch k {
	case FacetGenre:
		return "All Genres"
	case FacetGameMode:
		return "All Game Modes"
	case FacetPlayerPerspective:
		return "All Perspectives"
	case FacetTheme:
		return "All Themes"
	}
	return "All"
}

// ControlID is the id of the select element bound to the facet.
func (k FacetKind) ControlID() string {
	switch k {
	case FacetGenre:
		return "genreSelect"
	case FacetGameMode:
		return "gameModeSelect"
	case FacetPlayerPerspective:
		return "playerPerspectiveSelect"
	case FacetTheme:
		return "themeSelect"
	}
	return ""
}

func (k FacetKind) Valid() bool {
	return k.Path() != ""
}

// DefaultFacetOptions is the state of a facet control before (or after a
// failed) load: only the "All" sentinel.
func DefaultFacetOptions(kind FacetKind) []Option {
	return []Option{{Value: "", Label: kind.AllLabel()}}
}

// FacetOptions puts the sentinel first and keeps the server order for the rest.
func FacetOptions(kind FacetKind, entries []FacetOption) []Option {
	options := make([]Option, 0, len(entries)+1)
	options = append(options, DefaultFacetOptions(kind)...)
	for _, entry := range entries {
		options = append(options, Option{Value: entry.Name, Label: entry.Name})
	}
	return options
}

// Categories are fixed by the catalog schema, so they are not fetched.
var categoryNames = []string{
	"Main Game",
	"DLC Addon",
	"Expansion",
	"Bundle",
	"Standalone Expansion",
	"Mod",
	"Episode",
	"Season",
	"Remake",
	"Remaster",
	"Expanded Game",
	"Port",
}

func CategoryOptions() []Option {
	options := make([]Option, 0, len(categoryNames)+1)
	options = append(options, Option{Value: "", Label: "All Categories"})
	for _, name := range categoryNames {
		options = append(options, Option{Value: name, Label: name})
	}
	return options
}

// ParamName is the query and form field name of the facet.
func (k FacetKind) ParamName() string {
	switch k {
	case FacetGenre:
		return "genre"
	case FacetGameMode:
		return "gameMode"
	case FacetPlayerPerspective:
		return "playerPerspective"
	case FacetTheme:
		return "theme"
	}
	return ""
}
