package astirobotgo

import (
	"time"

	"github.com/asticode/go-astilog"
	"github.com/go-vgo/robotgo"
	"github.com/pkg/errors"
)

// Keyboarder represents an object capable of interacting with a keyboard
type Keyboarder struct {
	o KeyboarderOptions
}

// KeyboarderOptions represents keyboarder options
type KeyboarderOptions struct {
	TypeDelay time.Duration `toml:"type_delay"`
}

// NewKeyboarder creates a new keyboarder
func NewKeyboarder(o KeyboarderOptions) *Keyboarder {
	return &Keyboarder{o: o}
}

// Press presses keys simultaneously. The first key is tapped, the others are modifiers.
func (k *Keyboarder) Press(keys ...string) (err error) {
	// No keys
	if len(keys) == 0 {
		return
	}

	// Modifiers
	var ms []interface{}
	for _, m := range keys[1:] {
		ms = append(ms, m)
	}

	// Tap
	astilog.Debugf("astirobotgo: tapping %s with modifiers %v", keys[0], ms)
	if err = robotgo.KeyTap(keys[0], ms...); err != nil {
		err = errors.Wrapf(err, "astirobotgo: tapping %s failed", keys[0])
		return
	}
	return
}

// Type types a string with a delay between each character
func (k *Keyboarder) Type(s string) error {
	for _, r := range s {
		robotgo.TypeStr(string(r))
		if k.o.TypeDelay > 0 {
			time.Sleep(k.o.TypeDelay)
		}
	}
	return nil
}
