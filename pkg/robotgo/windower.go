package astirobotgo

import (
	"github.com/asticode/go-astilog"
	"github.com/go-vgo/robotgo"
	"github.com/pkg/errors"
)

// Windower represents an object capable of locating application windows
type Windower struct{}

// NewWindower creates a new windower
func NewWindower() *Windower {
	return &Windower{}
}

// pid returns the pid of the first process matching name
func (w *Windower) pid(name string) (pid int, err error) {
	// Find ids
	var ids []int
	if ids, err = robotgo.FindIds(name); err != nil {
		err = errors.Wrapf(err, "astirobotgo: finding ids of %s failed", name)
		return
	}

	// No process
	if len(ids) == 0 {
		err = errors.Errorf("astirobotgo: no process matching %s", name)
		return
	}
	pid = ids[0]
	return
}

// Bounds returns the bounds of the first window whose process matches name
func (w *Windower) Bounds(name string) (left, top, width, height int, err error) {
	// Get pid
	var pid int
	if pid, err = w.pid(name); err != nil {
		err = errors.Wrap(err, "astirobotgo: getting pid failed")
		return
	}

	// Get bounds
	left, top, width, height = robotgo.GetBounds(pid)
	astilog.Debugf("astirobotgo: window of %s (pid %d) is %dx%d at %dx%d", name, pid, width, height, left, top)
	if width <= 0 || height <= 0 {
		err = errors.Errorf("astirobotgo: window of %s has no size", name)
		return
	}
	return
}

// Activate brings the first window whose process matches name to the front
func (w *Windower) Activate(name string) (err error) {
	// Get pid
	var pid int
	if pid, err = w.pid(name); err != nil {
		err = errors.Wrap(err, "astirobotgo: getting pid failed")
		return
	}

	// Activate
	if err = robotgo.ActivePid(pid); err != nil {
		err = errors.Wrapf(err, "astirobotgo: activating pid %d failed", pid)
		return
	}
	return
}

// ScreenSize returns the main screen size
func (w *Windower) ScreenSize() (width, height int) {
	return robotgo.GetScreenSize()
}
