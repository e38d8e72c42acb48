// Package astispeechtotext parses speech samples into text with DeepSpeech or whisper.cpp.
package astispeechtotext

import (
	"io"

	"github.com/asticode/go-astitools/pcm"
	"github.com/pkg/errors"
)

// Engines
const (
	EngineDeepSpeech = "deepspeech"
	EngineWhisper    = "whisper"
)

// Parser represents an object capable of parsing speech samples into text
type Parser interface {
	io.Closer
	Parse(samples []int, bitDepth, numChannels, sampleRate int) (string, error)
}

// Options represents speech to text options
type Options struct {
	DeepSpeech DeepSpeechOptions `toml:"deepspeech"`
	Engine     string            `toml:"engine"`
	Whisper    WhisperOptions    `toml:"whisper"`
}

// New creates the parser of the configured engine
func New(o Options) (p Parser, err error) {
	switch o.Engine {
	case EngineDeepSpeech, "":
		if p, err = NewDeepSpeech(o.DeepSpeech); err != nil {
			err = errors.Wrap(err, "astispeechtotext: creating deepspeech failed")
			return
		}
	case EngineWhisper:
		if p, err = NewWhisper(o.Whisper); err != nil {
			err = errors.Wrap(err, "astispeechtotext: creating whisper failed")
			return
		}
	default:
		err = errors.Errorf("astispeechtotext: unknown engine %s", o.Engine)
	}
	return
}

// convert keeps the first channel of the samples, resamples it and converts its bit depth
func convert(samples []int, bitDepth, numChannels, sampleRate, dstBitDepth, dstSampleRate int, fn func(s int)) (err error) {
	// Create sample rate converter
	src := astipcm.NewSampleRateConverter(sampleRate, dstSampleRate, 1, func(s int) (err error) {
		// Convert bit depth
		if s, err = astipcm.ConvertBitDepth(s, bitDepth, dstBitDepth); err != nil {
			err = errors.Wrap(err, "astispeechtotext: converting bit depth failed")
			return
		}

		// Callback
		fn(s)
		return
	})

	// Create channels converter
	cc := astipcm.NewChannelsConverter(numChannels, 1, src.Add)

	// Loop through samples
	for _, s := range samples {
		if err = cc.Add(s); err != nil {
			err = errors.Wrap(err, "astispeechtotext: adding sample to converters failed")
			return
		}
	}
	return
}
