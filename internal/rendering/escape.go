package rendering

import (
	"fmt"
	"html/template"
	"regexp"
	"strings"
)

// FallbackColor replaces colors that are not plain hex values.
const FallbackColor = "#7cb342"

var hexColor = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)

// SafeColor returns color when it is a hex color and FallbackColor otherwise.
func SafeColor(color string) string {
	color = strings.TrimSpace(color)
	if hexColor.MatchString(color) {
		return color
	}
	return FallbackColor
}

// barStyle builds the inline style of a timeline shape. Inputs are numbers
// and a color that went through SafeColor, so the result is trusted CSS.
func barStyle(left, width float64, color string) template.CSS {
	return template.CSS(fmt.Sprintf("left: %.4f%%; width: %.4f%%; border-color: %s", left, width, SafeColor(color)))
}

// accentStyle is the inline style of a project or goal accent.
func accentStyle(color string) template.CSS {
	return template.CSS("--accent: " + SafeColor(color))
}
