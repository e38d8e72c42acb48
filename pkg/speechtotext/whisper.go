package astispeechtotext

import (
	"io"
	"math"
	"runtime"
	"strings"

	"github.com/asticode/go-astilog"
	"github.com/ggerganov/whisper.cpp/bindings/go/pkg/whisper"
	"github.com/pkg/errors"
)

// Whisper constants
const (
	whisperBitDepth   = 16
	whisperSampleRate = 16000
)

// Whisper represents a whisper.cpp parser
type Whisper struct {
	m whisper.Model
	o WhisperOptions
}

// WhisperOptions represents whisper.cpp options
type WhisperOptions struct {
	Language  string `toml:"language"`
	ModelPath string `toml:"model_path"`
	Threads   int    `toml:"threads"`
}

// NewWhisper creates a new whisper.cpp parser
func NewWhisper(o WhisperOptions) (w *Whisper, err error) {
	// Create whisper
	w = &Whisper{o: o}

	// Load model
	astilog.Debugf("astispeechtotext: loading whisper model %s", o.ModelPath)
	if w.m, err = whisper.New(o.ModelPath); err != nil {
		err = errors.Wrapf(err, "astispeechtotext: loading whisper model %s failed", o.ModelPath)
		return
	}
	return
}

// Close implements the io.Closer interface
func (w *Whisper) Close() error {
	if w.m != nil {
		astilog.Debug("astispeechtotext: closing whisper model")
		if err := w.m.Close(); err != nil {
			astilog.Error(errors.Wrap(err, "astispeechtotext: closing whisper model failed"))
		}
	}
	return nil
}

// Parse implements the astihearing.SpeechParser interface
func (w *Whisper) Parse(samples []int, bitDepth, numChannels, sampleRate int) (t string, err error) {
	// Convert to mono 16kHz float32 in [-1, 1]
	var pcm []float32
	if err = convert(samples, bitDepth, numChannels, sampleRate, whisperBitDepth, whisperSampleRate, func(s int) {
		pcm = append(pcm, float32(s)/math.MaxInt16)
	}); err != nil {
		err = errors.Wrap(err, "astispeechtotext: converting samples failed")
		return
	}

	// No samples
	if len(pcm) == 0 {
		return
	}

	// Create context
	var c whisper.Context
	if c, err = w.m.NewContext(); err != nil {
		err = errors.Wrap(err, "astispeechtotext: creating whisper context failed")
		return
	}

	// Configure context
	l := w.o.Language
	if l == "" {
		l = "en"
	}
	if err = c.SetLanguage(l); err != nil {
		err = errors.Wrapf(err, "astispeechtotext: setting language %s failed", l)
		return
	}
	th := w.o.Threads
	if th <= 0 {
		th = runtime.NumCPU()
	}
	c.SetThreads(uint(th))

	// Process
	if err = c.Process(pcm, nil, nil); err != nil {
		err = errors.Wrap(err, "astispeechtotext: processing samples failed")
		return
	}

	// Loop through segments
	var ts []string
	for {
		s, errSegment := c.NextSegment()
		if errSegment == io.EOF {
			break
		} else if errSegment != nil {
			err = errors.Wrap(errSegment, "astispeechtotext: getting next segment failed")
			return
		}
		ts = append(ts, strings.TrimSpace(s.Text))
	}
	t = strings.TrimSpace(strings.Join(ts, " "))
	return
}
