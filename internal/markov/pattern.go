package markov

import (
	"errors"
	"fmt"
	"strings"

	"github.com/marceline-cramer/crabby-markov/internal/core"
)

// RowSeparator splits the rows of a multi-row pattern literal, as in "BU/UB".
const RowSeparator = "/"

var (
	// ErrEmptyPattern is returned for a literal without cells.
	ErrEmptyPattern = errors.New("empty pattern")
	// ErrRaggedPattern is returned when pattern rows differ in length.
	ErrRaggedPattern = errors.New("pattern rows differ in length")
	// ErrShapeMismatch is returned for rules whose find and replace patterns
	// have different dimensions.
	ErrShapeMismatch = errors.New("find and replace patterns differ in shape")
)

// Cell is a pattern cell. A cell that is not Valid is a wildcard.
type Cell struct {
	Symbol Symbol
	Valid  bool
}

// Wildcard matches any symbol and leaves cells untouched when applied.
var Wildcard = Cell{}

// Exactly returns a cell that matches and writes s.
func Exactly(s Symbol) Cell { return Cell{Symbol: s, Valid: true} }

// Rune returns the literal character for c.
func (c Cell) Rune() rune {
	if !c.Valid {
		return WildcardRune
	}
	return c.Symbol.Rune()
}

// Pattern is a rectangular template of optional symbols.
type Pattern = core.Grid[Cell]

// PatternError locates a malformed character in a pattern literal.
type PatternError struct {
	Literal string
	Row     int
	Col     int
	Err     error
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("pattern %q row %d col %d: %v", e.Literal, e.Row, e.Col, e.Err)
}

func (e *PatternError) Unwrap() error { return e.Err }

// ParsePattern parses a pattern literal. Rows are separated by "/"; every
// character is a symbol letter (B W R G U E) or '*' for a wildcard.
func ParsePattern(literal string) (*Pattern, error) {
	if literal == "" {
		return nil, fmt.Errorf("pattern %q: %w", literal, ErrEmptyPattern)
	}
	rows := strings.Split(literal, RowSeparator)
	width := len([]rune(rows[0]))
	if width == 0 {
		return nil, fmt.Errorf("pattern %q: %w", literal, ErrEmptyPattern)
	}
	cells := make([]Cell, 0, width*len(rows))
	for y, row := range rows {
		runes := []rune(row)
		if len(runes) != width {
			return nil, fmt.Errorf("pattern %q: %w", literal, ErrRaggedPattern)
		}
		for x, r := range runes {
			if r == WildcardRune {
				cells = append(cells, Wildcard)
				continue
			}
			sym, err := SymbolFromRune(r)
			if err != nil {
				return nil, &PatternError{Literal: literal, Row: y, Col: x, Err: err}
			}
			cells = append(cells, Exactly(sym))
		}
	}
	return core.FromCells(width, len(rows), cells)
}

// MustPattern is like ParsePattern but panics on malformed literals. It is
// meant for patterns written directly in Go source.
func MustPattern(literal string) *Pattern {
	p, err := ParsePattern(literal)
	if err != nil {
		panic(err)
	}
	return p
}

// FormatPattern renders p back into its literal form.
func FormatPattern(p *Pattern) string {
	var b strings.Builder
	for y := 0; y < p.H; y++ {
		if y > 0 {
			b.WriteString(RowSeparator)
		}
		for x := 0; x < p.W; x++ {
			b.WriteRune(p.At(core.Point{X: x, Y: y}).Rune())
		}
	}
	return b.String()
}

// Rule rewrites every occurrence of Find into Replace. Both patterns always
// share the same dimensions.
type Rule struct {
	Find    *Pattern
	Replace *Pattern
}

// RuleOf builds a rule from two patterns of equal shape.
func RuleOf(find, replace *Pattern) (Rule, error) {
	if find == nil || replace == nil {
		return Rule{}, fmt.Errorf("rule: %w", ErrEmptyPattern)
	}
	if find.W != replace.W || find.H != replace.H {
		return Rule{}, fmt.Errorf("rule %dx%d -> %dx%d: %w", find.W, find.H, replace.W, replace.H, ErrShapeMismatch)
	}
	return Rule{Find: find, Replace: replace}, nil
}

// NewRule parses a find and a replace literal into a rule.
func NewRule(find, replace string) (Rule, error) {
	f, err := ParsePattern(find)
	if err != nil {
		return Rule{}, err
	}
	r, err := ParsePattern(replace)
	if err != nil {
		return Rule{}, err
	}
	rule, err := RuleOf(f, r)
	if err != nil {
		return Rule{}, fmt.Errorf("%s -> %s: %w", find, replace, err)
	}
	return rule, nil
}

// MustRule is like NewRule but panics on error.
func MustRule(find, replace string) Rule {
	rule, err := NewRule(find, replace)
	if err != nil {
		panic(err)
	}
	return rule
}

// RotateCW turns both patterns of the rule a quarter clockwise, keeping each
// find cell paired with its replace cell.
func (r Rule) RotateCW() Rule {
	return Rule{Find: r.Find.RotateCW(), Replace: r.Replace.RotateCW()}
}

// Rotations returns the rule followed by its 90°, 180° and 270° turns. Each
// returned rule owns independent pattern storage.
func (r Rule) Rotations() []Rule {
	id := Rule{Find: r.Find.Clone(), Replace: r.Replace.Clone()}
	cw := id.RotateCW()
	turn := cw.RotateCW()
	ccw := turn.RotateCW()
	return []Rule{id, cw, turn, ccw}
}

// Symmetric concatenates the rotations of every rule, in order.
func Symmetric(rules ...Rule) []Rule {
	out := make([]Rule, 0, 4*len(rules))
	for _, r := range rules {
		out = append(out, r.Rotations()...)
	}
	return out
}

func (r Rule) String() string {
	return FormatPattern(r.Find) + " -> " + FormatPattern(r.Replace)
}
