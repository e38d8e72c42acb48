// Package astisession tracks the media player search results across utterances.
//
// Positions are derived from the player window bounds and fixed fractions. Nothing is
// read back from the screen: a click reported as successful only means the mouse
// adapter did not fail.
package astisession

import (
	"github.com/asticode/go-astitools/ptr"
	"github.com/pkg/errors"
)

// Errors
var (
	ErrNoSearch   = errors.New("session: no prior search")
	ErrOutOfRange = errors.New("session: result index out of range")
)

// PlayMode describes how a play target must be triggered
type PlayMode int

// Play modes
const (
	// ClickConfirm clicks the target then sends a confirmation key
	ClickConfirm PlayMode = iota
	// ClickOnly clicks the target
	ClickOnly
)

func (m PlayMode) String() string {
	switch m {
	case ClickConfirm:
		return "click+confirm"
	case ClickOnly:
		return "click-only"
	}
	return "unknown"
}

// Point is a screen coordinate
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Bounds are window bounds
type Bounds struct {
	Height int `json:"height"`
	Left   int `json:"left"`
	Top    int `json:"top"`
	Width  int `json:"width"`
}

// Mouser represents an object capable of clicking at a screen coordinate
type Mouser interface {
	ClickAt(x, y int) error
}

// Session is the search session. It is not safe for concurrent use.
type Session struct {
	bounds    Bounds
	l         Layout
	positions []Point
	selected  *int
	topPlay   *Point
}

// New creates a new session
func New(l Layout) (s *Session, err error) {
	if err = l.Validate(); err != nil {
		err = errors.Wrap(err, "astisession: validating layout failed")
		return
	}
	s = &Session{l: l}
	return
}

// MustNew creates a new session and panics if the layout is invalid
func MustNew(l Layout) *Session {
	s, err := New(l)
	if err != nil {
		panic(err)
	}
	return s
}

// Layout returns the layout
func (s *Session) Layout() Layout { return s.l }

// Bounds returns the last window bounds snapshot
func (s *Session) Bounds() Bounds { return s.bounds }

// SetBounds records a fresh window bounds snapshot
func (s *Session) SetBounds(b Bounds) { s.bounds = b }

// Positions returns a copy of the result positions
func (s *Session) Positions() []Point {
	return append([]Point(nil), s.positions...)
}

// Selected returns the selected index, if any
func (s *Session) Selected() (n int, ok bool) {
	if s.selected == nil {
		return
	}
	return *s.selected, true
}

// TopPlay returns the top result play position, if any
func (s *Session) TopPlay() (p Point, ok bool) {
	if s.topPlay == nil {
		return
	}
	return *s.topPlay, true
}

// BeginSearch computes the result positions for a new search and clears the selection
func (s *Session) BeginSearch(b Bounds) {
	// Update bounds
	s.bounds = b

	// Top play
	p := s.l.TopPlay.At(b)
	s.topPlay = &p

	// Rows
	start := s.l.FirstRow.At(b)
	gap := s.l.rowGap(b)
	s.positions = make([]Point, 0, s.l.Rows)
	for i := 0; i < s.l.Rows; i++ {
		s.positions = append(s.positions, Point{X: start.X, Y: start.Y + i*gap})
	}

	// Reset selection
	s.selected = nil
}

// Row returns the coordinate of the nth row (1-based)
func (s *Session) Row(n int) (p Point, err error) {
	// No search
	if len(s.positions) == 0 {
		err = ErrNoSearch
		return
	}

	// Out of range
	if n < 1 || n > len(s.positions) {
		err = errors.Wrapf(ErrOutOfRange, "session: %d not in [1, %d]", n, len(s.positions))
		return
	}
	p = s.positions[n-1]
	return
}

// Select clicks the nth row (1-based) and records it as the selection.
// The selection is left untouched when the index is invalid or the click fails.
func (s *Session) Select(n int, m Mouser) (err error) {
	// Get row
	var p Point
	if p, err = s.Row(n); err != nil {
		return
	}

	// Click
	if err = m.ClickAt(p.X, p.Y); err != nil {
		err = errors.Wrapf(err, "session: clicking row %d at %dx%d failed", n, p.X, p.Y)
		return
	}

	// Update selection
	s.selected = astiptr.Int(n)
	return
}

// ResolvePlayTarget returns what the play action must click.
// An explicit selection beats the top result.
func (s *Session) ResolvePlayTarget() (p Point, m PlayMode, err error) {
	// Selection
	if s.selected != nil {
		n := *s.selected
		if n >= 1 && n <= len(s.positions) {
			return s.positions[n-1], ClickConfirm, nil
		}

		// Stale selection
		s.selected = nil
	}

	// Top play
	if s.topPlay != nil {
		return *s.topPlay, ClickOnly, nil
	}
	err = ErrNoSearch
	return
}

// State is a snapshot of the session
type State struct {
	Bounds    Bounds  `json:"bounds"`
	Positions []Point `json:"positions,omitempty"`
	Selected  *int    `json:"selected,omitempty"`
	TopPlay   *Point  `json:"top_play,omitempty"`
}

// State returns a snapshot of the session
func (s *Session) State() (st State) {
	st = State{
		Bounds:    s.bounds,
		Positions: s.Positions(),
	}
	if s.selected != nil {
		st.Selected = astiptr.Int(*s.selected)
	}
	if s.topPlay != nil {
		p := *s.topPlay
		st.TopPlay = &p
	}
	return
}
