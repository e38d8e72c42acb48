package astikeyboarding

import (
	"strings"
	"time"

	"github.com/asticode/go-astilog"
	"github.com/pkg/errors"
)

// Ability represents an object capable of turning intents into key presses
type Ability struct {
	k Keyboarder
	o Options
}

// Options represents ability options
type Options struct {
	RepeatDelay time.Duration `toml:"repeat_delay"`
}

// NewAbility creates a new ability
func NewAbility(k Keyboarder, o Options) *Ability {
	return &Ability{
		k: k,
		o: o,
	}
}

// press presses a key n times
func (a *Ability) press(key string, n int) (err error) {
	// At least once
	if n < 1 {
		n = 1
	}

	// Loop
	astilog.Debugf("astikeyboarding: pressing %s %d time(s)", key, n)
	for idx := 0; idx < n; idx++ {
		// Wait
		if idx > 0 && a.o.RepeatDelay > 0 {
			time.Sleep(a.o.RepeatDelay)
		}

		// Press
		if err = a.k.Press(key); err != nil {
			err = errors.Wrapf(err, "astikeyboarding: pressing %s failed", key)
			return
		}
	}
	return
}

// Confirm presses the confirmation key
func (a *Ability) Confirm() error { return a.press(KeyEnter, 1) }

// Mute toggles mute
func (a *Ability) Mute() error { return a.press(KeyMute, 1) }

// Next skips to the next track
func (a *Ability) Next() error { return a.press(KeyNext, 1) }

// PlayPause toggles play/pause
func (a *Ability) PlayPause() error { return a.press(KeyPlayPause, 1) }

// Previous goes to the previous track
func (a *Ability) Previous() error { return a.press(KeyPrevious, 1) }

// VolumeDown presses the volume down key n times
func (a *Ability) VolumeDown(n int) error { return a.press(KeyVolumeDown, n) }

// VolumeUp presses the volume up key n times
func (a *Ability) VolumeUp(n int) error { return a.press(KeyVolumeUp, n) }

// Hotkey presses a combination such as "ctrl+l"
func (a *Ability) Hotkey(combo string) (err error) {
	// Split
	var keys []string
	for _, k := range strings.Split(combo, hotkeySeparator) {
		if k = strings.TrimSpace(strings.ToLower(k)); k != "" {
			keys = append(keys, k)
		}
	}
	if len(keys) == 0 {
		err = errors.Errorf("astikeyboarding: invalid hotkey %q", combo)
		return
	}

	// The key comes first, modifiers after
	args := append([]string{keys[len(keys)-1]}, keys[:len(keys)-1]...)

	// Press
	astilog.Debugf("astikeyboarding: pressing hotkey %s", combo)
	if err = a.k.Press(args...); err != nil {
		err = errors.Wrapf(err, "astikeyboarding: pressing hotkey %s failed", combo)
		return
	}
	return
}

// Type types a string
func (a *Ability) Type(s string) (err error) {
	astilog.Debugf("astikeyboarding: typing %s", s)
	if err = a.k.Type(s); err != nil {
		err = errors.Wrapf(err, "astikeyboarding: typing %s failed", s)
		return
	}
	return
}
