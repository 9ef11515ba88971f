package ui

import (
	"image/color"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// DefaultPaletteName is used for unknown theme names
const DefaultPaletteName = "green"

// Palette is the color set of one overlay theme
type Palette struct {
	Name            string
	Background      color.Color
	TextPrimary     color.Color
	TextSecondary   color.Color
	Accent          color.Color // stretch
	AccentSecondary color.Color // exercise
}

// Palettes maps theme names from settings to colors
var Palettes = map[string]Palette{
	"green":  newPalette("Fresh Green", "#047857", "#ffffff", "#a7f3d0", "#fde047", "#fbbf24"),
	"blue":   newPalette("Ocean Blue", "#1e40af", "#ffffff", "#bfdbfe", "#fde047", "#f472b6"),
	"purple": newPalette("Royal Purple", "#6b21a8", "#ffffff", "#e9d5ff", "#fde047", "#86efac"),
	"dark":   newPalette("Dark Mode", "#111827", "#f9fafb", "#d1d5db", "#34d399", "#fbbf24"),
	"sunset": newPalette("Sunset Orange", "#dc2626", "#ffffff", "#fecaca", "#fde047", "#a3e635"),
	"pink":   newPalette("Energy Pink", "#be185d", "#ffffff", "#fce7f3", "#fde047", "#67e8f9"),
	"teal":   newPalette("Calm Teal", "#0f766e", "#ffffff", "#99f6e4", "#fde047", "#fbbf24"),
	"indigo": newPalette("Deep Indigo", "#4338ca", "#ffffff", "#c7d2fe", "#fde047", "#f9a8d4"),
}

func newPalette(name, bg, primary, secondary, accent, accent2 string) Palette {
	return Palette{
		Name:            name,
		Background:      parseHexColor(bg),
		TextPrimary:     parseHexColor(primary),
		TextSecondary:   parseHexColor(secondary),
		Accent:          parseHexColor(accent),
		AccentSecondary: parseHexColor(accent2),
	}
}

// PaletteFor returns the palette for a theme name, falling back to green
func PaletteFor(name string) Palette {
	if p, ok := Palettes[name]; ok {
		return p
	}
	return Palettes[DefaultPaletteName]
}

// parseHexColor parses "#rrggbb". Malformed input yields opaque black.
func parseHexColor(s string) color.Color {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return color.Black
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.Black
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}
}

// CompactTheme is a compact theme tinted with an overlay palette
type CompactTheme struct {
	palette Palette
}

// NewCompactTheme creates a compact theme for the named palette
func NewCompactTheme(paletteName string) fyne.Theme {
	return &CompactTheme{palette: PaletteFor(paletteName)}
}

// Color returns theme colors
func (t *CompactTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNameSuccess:
		return color.RGBA{R: 46, G: 160, B: 67, A: 255} // Green for completed breaks
	case theme.ColorNameError:
		return color.RGBA{R: 183, G: 28, B: 28, A: 255} // Red for errors
	case theme.ColorNameWarning:
		return t.palette.AccentSecondary // Exercise accent
	case theme.ColorNamePrimary:
		return t.palette.Background // Overlay background as the primary tint
	case theme.ColorNameBackground:
		if variant == theme.VariantDark {
			return color.RGBA{R: 18, G: 18, B: 18, A: 255} // Dark gray
		}
		return color.RGBA{R: 250, G: 250, B: 250, A: 255} // Light gray
	case theme.ColorNameForeground:
		if variant == theme.VariantDark {
			return color.RGBA{R: 255, G: 255, B: 255, A: 255} // White text
		}
		return color.RGBA{R: 33, G: 33, B: 33, A: 255} // Dark text
	}

	// Use default colors for everything else
	return theme.DefaultTheme().Color(name, variant)
}

// Font returns theme fonts
func (t *CompactTheme) Font(style fyne.TextStyle) fyne.Resource {
	// Use default theme fonts
	return theme.DefaultTheme().Font(style)
}

// Icon returns theme icons
func (t *CompactTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	// Use default theme icons
	return theme.DefaultTheme().Icon(name)
}

// Size returns theme sizes with compact adjustments
func (t *CompactTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNamePadding:
		return 3 // Reduced from default 4
	case theme.SizeNameInnerPadding:
		return 6 // Reduced from default 8
	case theme.SizeNameLineSpacing:
		return 2 // Reduced from default 4
	case theme.SizeNameText:
		return 13 // Reduced from default 14
	case theme.SizeNameHeadingText:
		return 16 // Reduced from default 18
	case theme.SizeNameSubHeadingText:
		return 13 // Reduced from default 16
	case theme.SizeNameCaptionText:
		return 10 // Reduced from default 11
	case theme.SizeNameInputRadius:
		return 3 // Reduced from default 5
	}

	// Use default theme for everything else
	return theme.DefaultTheme().Size(name)
}
