// Package astihearing turns microphone samples into recognized utterances.
package astihearing

import (
	"context"
	"strings"
	"time"

	"github.com/asticode/go-astilog"
	"github.com/asticode/go-astitools/pcm"
	"github.com/pkg/errors"
)

const emptyReadDelay = 10 * time.Millisecond

// Errors
var (
	ErrUnrecognized = errors.New("astihearing: speech was not recognized")
)

// SampleReader represents a sample reader
type SampleReader interface {
	ReadSamples() ([]int, error)
}

// Starter represents an object capable of starting and stopping itself
type Starter interface {
	Start() error
	Stop() error
}

// SpeechParser represents an object capable of parsing speech samples into text
type SpeechParser interface {
	Parse(samples []int, bitDepth, numChannels, sampleRate int) (string, error)
}

// Options represents listener options
type Options struct {
	CalibrateDuration    time.Duration `toml:"calibrate_duration"`
	MaxSilenceAudioLevel float64       `toml:"max_silence_audio_level"`
	PhraseTimeLimit      time.Duration `toml:"phrase_time_limit"`
	SamplesDirectoryPath string        `toml:"samples_directory_path"`
	SilenceMinDuration   time.Duration `toml:"silence_min_duration"`
	Timeout              time.Duration `toml:"timeout"`
}

// DefaultOptions returns the default options
func DefaultOptions() Options {
	return Options{
		CalibrateDuration:  700 * time.Millisecond,
		PhraseTimeLimit:    6 * time.Second,
		SilenceMinDuration: 800 * time.Millisecond,
		Timeout:            6 * time.Second,
	}
}

// Listener represents an object capable of listening to one utterance at a time
type Listener struct {
	bitDepth             int
	maxSilenceAudioLevel float64
	numChannels          int
	now                  func() time.Time
	o                    Options
	p                    SpeechParser
	r                    SampleReader
	sampleRate           int
	sleep                func(d time.Duration)
}

// NewListener creates a new listener
func NewListener(r SampleReader, p SpeechParser, bitDepth, numChannels, sampleRate int, o Options) *Listener {
	return &Listener{
		bitDepth:             bitDepth,
		maxSilenceAudioLevel: o.MaxSilenceAudioLevel,
		numChannels:          numChannels,
		now:                  time.Now,
		o:                    o,
		p:                    p,
		r:                    r,
		sampleRate:           sampleRate,
		sleep:                time.Sleep,
	}
}

// Start starts the reader
func (l *Listener) Start() (err error) {
	if v, ok := l.r.(Starter); ok {
		astilog.Debug("astihearing: starting reader")
		if err = v.Start(); err != nil {
			err = errors.Wrap(err, "astihearing: starting reader failed")
			return
		}
	}
	return
}

// Close implements the io.Closer interface
func (l *Listener) Close() (err error) {
	if v, ok := l.r.(Starter); ok {
		astilog.Debug("astihearing: stopping reader")
		if err = v.Stop(); err != nil {
			err = errors.Wrap(err, "astihearing: stopping reader failed")
			return
		}
	}
	return
}

// MaxSilenceAudioLevel returns the audio level under which samples are considered silent
func (l *Listener) MaxSilenceAudioLevel() float64 {
	return l.maxSilenceAudioLevel
}

// duration returns the duration of n interleaved samples
func (l *Listener) duration(n int) time.Duration {
	return time.Duration(float64(n) / float64(l.numChannels*l.sampleRate) * float64(time.Second))
}

// Listen blocks until an utterance has been captured and parsed.
// It returns an empty text when no speech started before the timeout and ErrUnrecognized
// when speech was captured but couldn't be parsed into text.
func (l *Listener) Listen(ctx context.Context) (text string, err error) {
	// Capture
	var ss []int
	if ss, err = l.capture(ctx); err != nil {
		err = errors.Wrap(err, "astihearing: capturing speech failed")
		return
	}

	// No speech
	if len(ss) == 0 {
		return
	}

	// Store samples
	if l.o.SamplesDirectoryPath != "" {
		if err := l.store(ss); err != nil {
			astilog.Error(errors.Wrap(err, "astihearing: storing samples failed"))
		}
	}

	// Parse
	if text, err = l.p.Parse(ss, l.bitDepth, l.numChannels, l.sampleRate); err != nil {
		err = errors.Wrap(err, "astihearing: parsing speech failed")
		return
	}

	// Nothing recognized
	if text = strings.ToLower(strings.TrimSpace(text)); text == "" {
		err = ErrUnrecognized
		return
	}
	astilog.Infof("astihearing: heard %q", text)
	return
}

// capture waits for speech and returns its samples once enough silence follows it.
// Reads returning no samples count as silence lasting the time they took.
func (l *Listener) capture(ctx context.Context) (speech []int, err error) {
	var silence, waited time.Duration
	last := l.now()
	for {
		// Check context
		if err = ctx.Err(); err != nil {
			err = errors.Wrap(err, "astihearing: context error")
			return
		}

		// Read samples
		var ss []int
		if ss, err = l.r.ReadSamples(); err != nil {
			err = errors.Wrap(err, "astihearing: reading samples failed")
			return
		}

		// Compute duration and audio level
		n := l.now()
		d, silent := l.duration(len(ss)), true
		if len(ss) == 0 {
			d = n.Sub(last)
			l.sleep(emptyReadDelay)
		} else {
			silent = astipcm.AudioLevel(ss) <= l.maxSilenceAudioLevel
		}
		last = n

		// Speech has not started yet
		if len(speech) == 0 && silent {
			if waited += d; l.o.Timeout > 0 && waited >= l.o.Timeout {
				astilog.Debug("astihearing: no speech before timeout")
				return
			}
			continue
		}

		// Append samples
		speech = append(speech, ss...)

		// Update silence
		if silent {
			silence += d
		} else {
			silence = 0
		}

		// Speech is over
		if silence >= l.o.SilenceMinDuration || (l.o.PhraseTimeLimit > 0 && l.duration(len(speech)) >= l.o.PhraseTimeLimit) {
			return
		}
	}
}
