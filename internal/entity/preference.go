package entity

const (
	ThemeKey       = "ttt_theme"
	BoardColorKey  = "ttt_board_color"
	MarkerColorKey = "ttt_marker_color"

	ThemeDark  = "dark"
	ThemeLight = "light"

	DefaultTheme = ThemeDark
	DefaultColor = "blue"
)

// PreferenceKeys lists every persisted setting.
var PreferenceKeys = []string{ThemeKey, BoardColorKey, MarkerColorKey}

// Color holds the two visual values derived from a palette name.
type Color struct {
	Name   string `json:"name"`
	Tint   string `json:"tint"`
	Marker string `json:"marker"`
}

// Palette is the fixed rainbow offered for the board and the markers, in display order.
var Palette = []Color{
	{Name: "red", Tint: "rgba(239, 68, 68, 0.55)", Marker: "#ef4444"},
	{Name: "orange", Tint: "rgba(249, 115, 22, 0.55)", Marker: "#f97316"},
	{Name: "yellow", Tint: "rgba(234, 179, 8, 0.55)", Marker: "#eab308"},
	{Name: "green", Tint: "rgba(34, 197, 94, 0.55)", Marker: "#22c55e"},
	{Name: "blue", Tint: "rgba(59, 130, 246, 0.55)", Marker: "#3b82f6"},
	{Name: "indigo", Tint: "rgba(99, 102, 241, 0.55)", Marker: "#6366f1"},
	{Name: "violet", Tint: "rgba(168, 85, 247, 0.55)", Marker: "#a855f7"},
}

// LookupColor - returns the palette entry for name, or blue when name is not in the palette.
func LookupColor(name string) Color {
	var fallback Color

	for _, color := range Palette {
		if color.Name == name {
			return color
		}

		if color.Name == DefaultColor {
			fallback = color
		}
	}

	return fallback
}

// DefaultFor - returns the value used when key has never been saved.
func DefaultFor(key string) (string, bool) {
	switch key {
	case ThemeKey:
		return DefaultTheme, true
	case BoardColorKey, MarkerColorKey:
		return DefaultColor, true
	default:
		return "", false
	}
}

// Appearance is the applied visual state of one session.
type Appearance struct {
	Theme         string `json:"theme"`
	ToggleLabel   string `json:"toggle_label"`
	TogglePressed bool   `json:"toggle_pressed"`
	Board         Color  `json:"board"`
	Marker        Color  `json:"marker"`
}

func NewAppearance() *Appearance {
	appearance := &Appearance{}
	appearance.ApplyTheme(DefaultTheme)
	appearance.ApplyBoardColor(DefaultColor)
	appearance.ApplyMarkerColor(DefaultColor)

	return appearance
}

// ApplyTheme - anything other than "light" is treated as dark.
// The toggle advertises the opposite mode.
func (that *Appearance) ApplyTheme(theme string) {
	if theme == ThemeLight {
		that.Theme = ThemeLight
		that.ToggleLabel = "Dark mode"
		that.TogglePressed = true
		return
	}

	that.Theme = ThemeDark
	that.ToggleLabel = "Light mode"
	that.TogglePressed = false
}

func (that *Appearance) ApplyBoardColor(name string) {
	that.Board = LookupColor(name)
}

func (that *Appearance) ApplyMarkerColor(name string) {
	that.Marker = LookupColor(name)
}

// Apply - routes value to the setter for key. It reports false for unknown keys.
func (that *Appearance) Apply(key, value string) bool {
	switch key {
	case ThemeKey:
		that.ApplyTheme(value)
	case BoardColorKey:
		that.ApplyBoardColor(value)
	case MarkerColorKey:
		that.ApplyMarkerColor(value)
	default:
		return false
	}

	return true
}

// OppositeTheme - returns the theme the toggle switches to.
func (that *Appearance) OppositeTheme() string {
	if that.Theme == ThemeLight {
		return ThemeDark
	}
	return ThemeLight
}
