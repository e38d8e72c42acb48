package astirobotgo

import (
	"github.com/go-vgo/robotgo"
	"github.com/pkg/errors"
)

// Mouser represents an object capable of interacting with a mouse
type Mouser struct{}

// NewMouser creates a new mouser
func NewMouser() *Mouser {
	return &Mouser{}
}

// ClickLeft clicks the left button of the mouse
func (m *Mouser) ClickLeft(double bool) error {
	robotgo.Click("left", double)
	return nil
}

// Move moves the mouse smoothly
func (m *Mouser) Move(x, y int) error {
	if !robotgo.MoveSmooth(x, y) {
		return errors.Errorf("astirobotgo: moving mouse to %dx%d failed", x, y)
	}
	return nil
}
