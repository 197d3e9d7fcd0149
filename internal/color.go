package internal

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

var (
	ColorReset    = ansi.Style{}.Reset().String()
	FallbackColor = ansi.Style{}.ForegroundColor(ansi.Magenta).String()
)

var namedColors = map[string]ansi.BasicColor{
	"black":   ansi.Black,
	"red":     ansi.Red,
	"green":   ansi.Green,
	"yellow":  ansi.Yellow,
	"blue":    ansi.Blue,
	"magenta": ansi.Magenta,
	"cyan":    ansi.Cyan,
	"white":   ansi.White,
}

// bright on a hex color has no bright table to switch to and renders bold.
var modifiers = map[string]func(ansi.Style) ansi.Style{
	"bold":      ansi.Style.Bold,
	"dim":       ansi.Style.Faint,
	"italic":    ansi.Style.Italic,
	"underline": ansi.Style.Underline,
	"bright":    ansi.Style.Bold,
}

const brightOffset = ansi.BrightBlack - ansi.Black

// ResolveColor turns a color spec of the form [modifier_]base into an SGR
// escape sequence. base is a named color or #rrggbb. Anything it does not
// understand resolves to magenta.
func ResolveColor(spec string) string {
	parts := strings.Split(spec, "_")

	var modifier, base string
	switch len(parts) {
	case 1:
		base = parts[0]
	case 2:
		modifier, base = parts[0], parts[1]
		if _, ok := modifiers[modifier]; !ok {
			return FallbackColor
		}
	default:
		return FallbackColor
	}

	style := ansi.Style{}

	if strings.HasPrefix(base, "#") {
		rgb, ok := parseHex(base)
		if !ok {
			return FallbackColor
		}
		if modifier != "" {
			style = modifiers[modifier](style)
		}
		return style.ForegroundColor(rgb).String()
	}

	c, ok := namedColors[base]
	if !ok {
		return FallbackColor
	}
	switch modifier {
	case "":
	case "bright":
		c += brightOffset
	default:
		style = modifiers[modifier](style)
	}
	return style.ForegroundColor(c).String()
}

func parseHex(s string) (ansi.RGBColor, bool) {
	if len(s) != 7 || s[0] != '#' {
		return ansi.RGBColor{}, false
	}
	var rgb [3]uint8
	for i := range rgb {
		v, err := strconv.ParseUint(s[1+2*i:3+2*i], 16, 8)
		if err != nil {
			return ansi.RGBColor{}, false
		}
		rgb[i] = uint8(v)
	}
	return ansi.RGBColor{R: rgb[0], G: rgb[1], B: rgb[2]}, true
}
