package markov

import (
	"errors"
	"fmt"
	"image/color"
)

// Symbol is the value held by a single grid cell.
type Symbol uint8

// The zero value, Black, fills freshly allocated grids.
const (
	Black Symbol = iota
	White
	Red
	Green
	Blue
	Emerald

	symbolCount
)

// WildcardRune marks a pattern cell that matches, and leaves, anything.
const WildcardRune = '*'

// ErrUnknownSymbol is returned for characters outside the pattern alphabet.
var ErrUnknownSymbol = errors.New("unrecognized symbol")

var symbolRunes = [symbolCount]rune{'B', 'W', 'R', 'G', 'U', 'E'}

var symbolNames = [symbolCount]string{"black", "white", "red", "green", "blue", "emerald"}

// Palette holds the display color of every symbol, indexed by Symbol.Index.
var Palette = []color.RGBA{
	{R: 0x00, G: 0x00, B: 0x00, A: 0xff},
	{R: 0xff, G: 0xf1, B: 0xe8, A: 0xff},
	{R: 0xff, G: 0x00, B: 0x4d, A: 0xff},
	{R: 0x00, G: 0xe4, B: 0x36, A: 0xff},
	{R: 0x29, G: 0xad, B: 0xff, A: 0xff},
	{R: 0x00, G: 0x87, B: 0x51, A: 0xff},
}

// Symbols lists every symbol in index order.
func Symbols() []Symbol {
	out := make([]Symbol, symbolCount)
	for i := range out {
		out[i] = Symbol(i)
	}
	return out
}

// Index returns the stable palette index of s.
func (s Symbol) Index() uint8 { return uint8(s) }

// Valid reports whether s is one of the six defined symbols.
func (s Symbol) Valid() bool { return s < symbolCount }

// Rune returns the pattern literal character for s.
func (s Symbol) Rune() rune {
	if !s.Valid() {
		return '?'
	}
	return symbolRunes[s]
}

func (s Symbol) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Symbol(%d)", uint8(s))
	}
	return symbolNames[s]
}

// SymbolFromRune maps a pattern literal character to its symbol.
func SymbolFromRune(r rune) (Symbol, error) {
	for i, c := range symbolRunes {
		if c == r {
			return Symbol(i), nil
		}
	}
	return 0, fmt.Errorf("%w %q", ErrUnknownSymbol, r)
}
