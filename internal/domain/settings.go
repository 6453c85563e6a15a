package domain

// Settings is the page-level configuration surface.
//
// Every field is optional and independently defaulted at render time.
// Settings are immutable for a content snapshot: a reload builds a
// fresh value, readers never see a partially applied one.
type Settings struct {
	// Title is the document title. Empty = application name.
	Title string `yaml:"title,omitempty" json:"title,omitempty"`

	// Base is the base href for all relative links.
	Base string `yaml:"base,omitempty" json:"base,omitempty"`

	// Favicon overrides the default favicon URL.
	Favicon string `yaml:"favicon,omitempty" json:"favicon,omitempty"`

	// Background is an image URL applied to the page shell.
	Background string `yaml:"background,omitempty" json:"background,omitempty"`

	// BackgroundOpacity dims the background image, 0..1. Zero value
	// means "unset" and renders fully opaque.
	BackgroundOpacity float64 `yaml:"backgroundOpacity,omitempty" json:"backgroundOpacity,omitempty"`

	// Theme pins the theme ("dark" or "light"). Empty = user-toggleable.
	Theme string `yaml:"theme,omitempty" json:"theme,omitempty"`

	// Color pins the accent palette (ex: "slate"). Empty = user-toggleable.
	Color string `yaml:"color,omitempty" json:"color,omitempty"`

	// Language selects the interface language (ex: "en", "de-DE").
	Language string `yaml:"language,omitempty" json:"language,omitempty"`

	// Layout maps a group name to its layout override.
	Layout map[string]GroupLayout `yaml:"layout,omitempty" json:"layout,omitempty"`
}

// GroupLayout is a per-group layout override sourced from settings.
type GroupLayout struct {
	Style   string `yaml:"style,omitempty" json:"style,omitempty"`     // "row" | "column"
	Columns int    `yaml:"columns,omitempty" json:"columns,omitempty"` // columns when Style == "row"
}

// DefaultTheme is applied when neither settings nor the user pin one.
const DefaultTheme = "dark"

// DefaultColor is applied when neither settings nor the user pin one.
const DefaultColor = "slate"

// EffectiveTheme returns the theme to render with.
func (s Settings) EffectiveTheme() string {
	if s.Theme != "" {
		return s.Theme
	}
	return DefaultTheme
}

// EffectiveColor returns the accent palette to render with.
func (s Settings) EffectiveColor() string {
	if s.Color != "" {
		return s.Color
	}
	return DefaultColor
}

// EffectiveLanguage returns the interface language, defaulting to English.
func (s Settings) EffectiveLanguage() string {
	if s.Language != "" {
		return s.Language
	}
	return "en"
}

// LayoutFor returns the layout override for a group, if any.
func (s Settings) LayoutFor(group string) (GroupLayout, bool) {
	l, ok := s.Layout[group]
	return l, ok
}
