package astisession

import "github.com/pkg/errors"

// ResultRows is the number of result rows a search exposes
const ResultRows = 8

// Fraction is a position expressed as fractions of the window size
type Fraction struct {
	X float64 `toml:"x"`
	Y float64 `toml:"y"`
}

// At returns the screen coordinate of the fraction within b
func (f Fraction) At(b Bounds) Point {
	return Point{
		X: b.Left + int(float64(b.Width)*f.X),
		Y: b.Top + int(float64(b.Height)*f.Y),
	}
}

// Layout holds the heuristic positions of the media player UI.
// Values match a normal or maximized desktop player window.
type Layout struct {
	FirstRow  Fraction   `toml:"first_row"`
	Like      []Fraction `toml:"like"`
	MinRowGap int        `toml:"min_row_gap"`
	RowGap    float64    `toml:"row_gap"`
	Rows      int        `toml:"rows"`
	Shuffle   Fraction   `toml:"shuffle"`
	TopPlay   Fraction   `toml:"top_play"`
}

// DefaultLayout returns the default layout
func DefaultLayout() Layout {
	return Layout{
		FirstRow: Fraction{X: 0.47, Y: 0.22},
		Like: []Fraction{
			{X: 0.35, Y: 0.86},
			{X: 0.75, Y: 0.20},
			{X: 0.88, Y: 0.14},
		},
		MinRowGap: 40,
		RowGap:    0.06,
		Rows:      ResultRows,
		Shuffle:   Fraction{X: 0.10, Y: 0.90},
		TopPlay:   Fraction{X: 0.60, Y: 0.18},
	}
}

// Validate checks the layout can be used by a session
func (l Layout) Validate() error {
	if l.Rows != ResultRows {
		return errors.Errorf("astisession: layout has %d rows, expected %d", l.Rows, ResultRows)
	}
	if l.MinRowGap < 0 || l.RowGap < 0 {
		return errors.Errorf("astisession: layout row gaps must be positive")
	}
	return nil
}

func (l Layout) rowGap(b Bounds) int {
	g := int(float64(b.Height) * l.RowGap)
	if g < l.MinRowGap {
		return l.MinRowGap
	}
	return g
}

// ShuffleAt returns the shuffle button position
func (l Layout) ShuffleAt(b Bounds) Point {
	return l.Shuffle.At(b)
}

// LikeAt returns the like button candidate positions, in click order
func (l Layout) LikeAt(b Bounds) (ps []Point) {
	for _, f := range l.Like {
		ps = append(ps, f.At(b))
	}
	return
}
