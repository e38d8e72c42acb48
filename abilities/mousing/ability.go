package astimousing

import (
	"time"

	"github.com/asticode/go-astilog"
	"github.com/pkg/errors"
)

// Ability represents an object capable of clicking at screen coordinates
type Ability struct {
	ms Mouser
	o  Options
}

// Options represents ability options
type Options struct {
	ClickDelay time.Duration `toml:"click_delay"`
}

// NewAbility creates a new ability
func NewAbility(ms Mouser, o Options) *Ability {
	return &Ability{
		ms: ms,
		o:  o,
	}
}

// ClickAt moves the mouse to a coordinate and clicks its left button
func (a *Ability) ClickAt(x, y int) (err error) {
	// Move
	astilog.Debugf("astimousing: moving mouse to %dx%d", x, y)
	if err = a.ms.Move(x, y); err != nil {
		err = errors.Wrapf(err, "astimousing: moving mouse to %dx%d failed", x, y)
		return
	}

	// Wait
	if a.o.ClickDelay > 0 {
		time.Sleep(a.o.ClickDelay)
	}

	// Click
	astilog.Debug("astimousing: clicking left mouse button")
	if err = a.ms.ClickLeft(false); err != nil {
		err = errors.Wrap(err, "astimousing: clicking left mouse button failed")
		return
	}
	return
}
