// Package astispeak says words through the platform speech synthesis.
package astispeak

import (
	"github.com/asticode/go-astilog"
	"github.com/go-ole/go-ole"
	"github.com/pkg/errors"
)

// Speaker represents an object capable of saying words to an audio output
type Speaker struct {
	o Options

	// Windows
	sapiUnknown *ole.IUnknown
	sapiVoice   *ole.IDispatch
}

// Options represents speaker options
type Options struct {
	BinaryPath string `toml:"binary_path"`
	Mute       bool   `toml:"mute"`
	Rate       int    `toml:"rate"`
	Voice      string `toml:"voice"`
}

// Rate is expressed in words per minute
const defaultRate = 170

// DefaultOptions returns the default options
func DefaultOptions() Options {
	return Options{Rate: defaultRate}
}

// New creates a new speaker
func New(o Options) *Speaker {
	return &Speaker{o: o}
}

// Say says words
func (s *Speaker) Say(i string) (err error) {
	// Nothing to say
	if i == "" || s.o.Mute {
		return
	}

	// Say
	astilog.Debugf("astispeak: saying \"%s\"", i)
	if err = s.say(i); err != nil {
		err = errors.Wrapf(err, "astispeak: saying \"%s\" failed", i)
		return
	}
	return
}

// sapiRate maps a words per minute rate to the [-10, 10] SAPI scale where the default rate is 0
func sapiRate(wpm int) int {
	r := (wpm - defaultRate) / 10
	if r < -10 {
		return -10
	} else if r > 10 {
		return 10
	}
	return r
}
