// Package ui renders timelines and result lines for the terminal. Styles
// come from the user's color scheme, expressed as chalk-pipe descriptor
// strings ("dim.green.italic", "bgYellow.black", "#cccccc") parsed into
// lipgloss styles.
package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ANSI palette positions for the chalk color names.
var colorNames = map[string]string{
	"black":   "0",
	"red":     "1",
	"green":   "2",
	"yellow":  "3",
	"blue":    "4",
	"magenta": "5",
	"cyan":    "6",
	"white":   "7",
	"gray":    "8",
	"grey":    "8",
	"redbright":     "9",
	"greenbright":   "10",
	"yellowbright":  "11",
	"bluebright":    "12",
	"magentabright": "13",
	"cyanbright":    "14",
	"whitebright":   "15",
	// CSS keywords chalk-pipe resolves that have no ANSI slot.
	"orange": "#FFA500",
	"pink":   "#FFC0CB",
	"purple": "#800080",
}

// ParseStyle turns a chalk-pipe descriptor into a lipgloss style. Tokens
// are dot-separated; "bg"-prefixed tokens set the background, modifier
// tokens set attributes, everything else is tried as a color. Unknown
// tokens are ignored, matching chalk-pipe's tolerance.
func ParseStyle(descriptor string) lipgloss.Style {
	style := lipgloss.NewStyle()
	for _, token := range strings.Split(descriptor, ".") {
		switch token {
		case "":
			continue
		case "bold":
			style = style.Bold(true)
		case "dim", "faint":
			style = style.Faint(true)
		case "italic":
			style = style.Italic(true)
		case "underline":
			style = style.Underline(true)
		case "inverse":
			style = style.Reverse(true)
		case "strikethrough":
			style = style.Strikethrough(true)
		default:
			if after, ok := strings.CutPrefix(token, "bg"); ok && after != "" {
				if c, ok := lookupColor(after); ok {
					style = style.Background(c)
				}
				continue
			}
			if c, ok := lookupColor(token); ok {
				style = style.Foreground(c)
			}
		}
	}
	return style
}

func lookupColor(token string) (lipgloss.Color, bool) {
	if strings.HasPrefix(token, "#") {
		return lipgloss.Color(token), true
	}
	if v, ok := colorNames[strings.ToLower(token)]; ok {
		return lipgloss.Color(v), true
	}
	return "", false
}

// Palette resolves semantic roles to ready styles. With NoColor set every
// Render call returns its input unchanged.
type Palette struct {
	noColor bool
	scheme  map[string]string
	cache   map[string]lipgloss.Style
}

// NewPalette builds a palette from a role → descriptor scheme.
func NewPalette(scheme map[string]string, noColor bool) *Palette {
	return &Palette{
		noColor: noColor,
		scheme:  scheme,
		cache:   make(map[string]lipgloss.Style),
	}
}

// Render styles text with the descriptor registered for role.
func (p *Palette) Render(role, text string) string {
	return p.render(p.scheme[role], text)
}

// RenderHighlight styles text with role's descriptor combined with the
// highlight role, the way chalk-pipe chains "style.highlight".
func (p *Palette) RenderHighlight(role, text string) string {
	return p.render(p.scheme[role]+"."+p.scheme["highlight"], text)
}

func (p *Palette) render(descriptor, text string) string {
	if p.noColor || descriptor == "" {
		return text
	}
	style, ok := p.cache[descriptor]
	if !ok {
		style = ParseStyle(descriptor)
		p.cache[descriptor] = style
	}
	return style.Render(text)
}
