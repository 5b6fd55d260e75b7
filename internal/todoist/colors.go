package todoist

// defaultHex is used when a color name is empty or unknown.
const defaultHex = "#3b82f6"

// defaultColors maps the remote API's named colors to hex codes.
var defaultColors = map[string]string{
	"berry_red":   "#b8256f",
	"red":         "#db4035",
	"orange":      "#ff9933",
	"yellow":      "#fad000",
	"olive_green": "#afb83b",
	"lime_green":  "#7ecc49",
	"green":       "#299438",
	"mint_green":  "#6accbc",
	"teal":        "#158FAD",
	"sky_blue":    "#14aaf5",
	"light_blue":  "#96c3eb",
	"blue":        "#4073ff",
	"grape":       "#884dff",
	"violet":      "#af38eb",
	"lavender":    "#eb96eb",
	"magenta":     "#e05194",
	"salmon":      "#ff8d85",
	"charcoal":    "#808080",
	"grey":        "#b8b8b8",
	"taupe":       "#ccac93",
}

// Palette resolves remote color names to hex codes, with a local override
// table taking precedence over the stock mapping.
type Palette struct {
	overrides map[string]string
}

// NewPalette creates a palette with the given overrides. A nil map means no
// overrides.
func NewPalette(overrides map[string]string) *Palette {
	return &Palette{overrides: overrides}
}

// Hex returns the hex code for a color name.
func (p *Palette) Hex(name string) string {
	if name == "" {
		return defaultHex
	}
	if p.overrides != nil {
		if hex, ok := p.overrides[name]; ok {
			return hex
		}
	}
	if hex, ok := defaultColors[name]; ok {
		return hex
	}
	return defaultHex
}
