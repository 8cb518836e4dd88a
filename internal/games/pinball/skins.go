package pinball

import "github.com/vovakirdan/pinball-madness/internal/core"

// Skin is a ball appearance. Unlock is the number of achievements needed.
type Skin struct {
	ID     string
	Name   string
	Glyph  rune
	Color  core.Color
	Unlock int
}

// Skins lists every ball skin in unlock order.
var Skins = []Skin{
	{ID: "classic", Name: "Classic", Glyph: '●', Color: core.ColorBrightWhite},
	{ID: "nuclear", Name: "Nuclear", Glyph: '●', Color: core.ColorBrightGreen},
	{ID: "shark", Name: "Shark", Glyph: '▲', Color: core.ColorBrightCyan, Unlock: 3},
	{ID: "special", Name: "Special", Glyph: '★', Color: core.ColorBrightMagenta, Unlock: 5},
}

// SkinByID returns the skin with the given ID, falling back to classic.
func SkinByID(id string) Skin {
	for _, s := range Skins {
		if s.ID == id {
			return s
		}
	}
	return Skins[0]
}
