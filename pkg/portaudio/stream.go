package astiportaudio

import (
	"github.com/asticode/go-astilog"
	"github.com/gordonklaus/portaudio"
	"github.com/pkg/errors"
)

// Stream represents a portaudio input stream
type Stream struct {
	b []int32
	o StreamOptions
	s *portaudio.Stream
}

// StreamOptions represents stream options
type StreamOptions struct {
	BitDepth         int `toml:"bit_depth"`
	BufferLength     int `toml:"buffer_length"`
	NumInputChannels int `toml:"num_input_channels"`
	SampleRate       int `toml:"sample_rate"`
}

// DefaultStreamOptions returns mono 16kHz options
func DefaultStreamOptions() StreamOptions {
	return StreamOptions{
		BitDepth:         32,
		BufferLength:     1600,
		NumInputChannels: 1,
		SampleRate:       16000,
	}
}

// NewDefaultStream opens a stream on the default input device
func (p *PortAudio) NewDefaultStream(o StreamOptions) (s *Stream, err error) {
	// Create stream
	s = &Stream{
		b: make([]int32, o.BufferLength*o.NumInputChannels),
		o: o,
	}

	// Open default stream
	astilog.Debugf("astiportaudio: opening default stream %p", s)
	if s.s, err = portaudio.OpenDefaultStream(s.o.NumInputChannels, 0, float64(s.o.SampleRate), len(s.b), s.b); err != nil {
		err = errors.Wrapf(err, "astiportaudio: opening default stream %p failed", s)
		return
	}
	return
}

// NumChannels returns the number of input channels
func (s *Stream) NumChannels() int { return s.o.NumInputChannels }

// BitDepth returns the bit depth
func (s *Stream) BitDepth() int { return s.o.BitDepth }

// SampleRate returns the sample rate
func (s *Stream) SampleRate() int { return s.o.SampleRate }

// Close implements the io.Closer interface
func (s *Stream) Close() (err error) {
	astilog.Debugf("astiportaudio: closing stream %p", s)
	if err = s.s.Close(); err != nil {
		err = errors.Wrapf(err, "astiportaudio: closing stream %p failed", s)
		return
	}
	return
}

// Start starts the stream
func (s *Stream) Start() (err error) {
	astilog.Debugf("astiportaudio: starting stream %p", s)
	if err = s.s.Start(); err != nil {
		err = errors.Wrapf(err, "astiportaudio: starting stream %p failed", s)
		return
	}
	return
}

// Stop stops the stream
func (s *Stream) Stop() (err error) {
	astilog.Debugf("astiportaudio: stopping stream %p", s)
	if err = s.s.Stop(); err != nil {
		err = errors.Wrapf(err, "astiportaudio: stopping stream %p failed", s)
		return
	}
	return
}

// ReadSamples implements the astihearing.SampleReader interface
func (s *Stream) ReadSamples() (rs []int, err error) {
	// Read
	if err = s.s.Read(); err != nil {
		// Samples read while nobody was listening have been dropped
		if err != portaudio.InputOverflowed {
			err = errors.Wrapf(err, "astiportaudio: reading from stream %p failed", s)
			return
		}
		astilog.Debugf("astiportaudio: stream %p input overflowed", s)
		err = nil
	}

	// Convert buffer
	rs = make([]int, len(s.b))
	for idx, v := range s.b {
		rs[idx] = int(v)
	}
	return
}
