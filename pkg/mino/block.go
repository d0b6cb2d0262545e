package mino

// Block is a palette index stored in a board cell. BlockNone is an empty cell.
type Block int

const BlockNone Block = 0

// PaletteSize is the number of palette entries, including the empty color.
const PaletteSize = 7

func (b Block) Valid() bool {
	return b >= BlockNone && b < PaletteSize
}

// Solid reports whether b is a color a piece can carry.
func (b Block) Solid() bool {
	return b > BlockNone && b < PaletteSize
}

func (b Block) String() string {
	return string(b.Rune())
}

func (b Block) Rune() rune {
	switch {
	case b == BlockNone:
		return ' '
	case b.Solid():
		return '█'
	default:
		return '?'
	}
}
