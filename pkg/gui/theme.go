package gui

import (
	"fmt"
	"image/color"

	"github.com/gdamore/tcell/v2"
	"github.com/qnkhuat/gestris/pkg/mino"
)

// RGB is a 24-bit color usable both on the terminal and in images.
type RGB struct {
	R, G, B uint8
}

func (c RGB) Color() tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

func (c RGB) RGBA() color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
}

func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Theme is used for dynamically coloring the UI. Blocks[0] is the empty cell.
type Theme struct {
	Name        string
	Title       map[string]string
	Blocks      [mino.PaletteSize]RGB
	Text        RGB
	Background  RGB
	Gray        RGB
	Button      RGB
	ButtonHover RGB
}

func (t Theme) Block(b mino.Block) RGB {
	if !b.Valid() {
		return t.Gray
	}
	return t.Blocks[b]
}

// Style returns the style of a board cell.
func (t Theme) Style(b mino.Block) tcell.Style {
	return tcell.StyleDefault.Background(t.Block(b).Color()).Foreground(t.Gray.Color())
}

func (t Theme) TextStyle() tcell.Style {
	return tcell.StyleDefault.Background(t.Background.Color()).Foreground(t.Text.Color())
}

var ThemeLight = Theme{
	Name:  "light",
	Title: map[string]string{"ru": "Светлая", "en": "Light"},
	Blocks: [mino.PaletteSize]RGB{
		{255, 255, 255},
		{120, 37, 179},
		{100, 179, 179},
		{80, 34, 22},
		{80, 134, 22},
		{180, 34, 22},
		{180, 34, 122},
	},
	Text:        RGB{0, 0, 0},
	Background:  RGB{255, 255, 255},
	Gray:        RGB{128, 128, 128},
	Button:      RGB{100, 100, 100},
	ButtonHover: RGB{150, 150, 150},
}

var ThemeDark = Theme{
	Name:  "dark",
	Title: map[string]string{"ru": "Тёмная", "en": "Dark"},
	Blocks: [mino.PaletteSize]RGB{
		{50, 50, 50},
		{200, 50, 200},
		{50, 200, 200},
		{150, 100, 50},
		{50, 200, 50},
		{200, 50, 50},
		{200, 50, 150},
	},
	Text:        RGB{255, 255, 255},
	Background:  RGB{0, 0, 0},
	Gray:        RGB{80, 80, 80},
	Button:      RGB{50, 50, 50},
	ButtonHover: RGB{100, 100, 100},
}

// ThemeByName falls back to the light theme for unknown names.
func ThemeByName(name string) Theme {
	if name == ThemeDark.Name {
		return ThemeDark
	}
	return ThemeLight
}
