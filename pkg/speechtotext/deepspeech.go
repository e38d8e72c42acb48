package astispeechtotext

import (
	"os"
	"strings"

	"github.com/asticode/go-astideepspeech"
	"github.com/asticode/go-astilog"
	"github.com/pkg/errors"
)

// Deepspeech constants
const (
	deepSpeechBitDepth   = 16
	deepSpeechSampleRate = 16000
)

// DeepSpeech represents a DeepSpeech parser
type DeepSpeech struct {
	m *astideepspeech.Model
	o DeepSpeechOptions
}

// DeepSpeechOptions represents DeepSpeech options
type DeepSpeechOptions struct {
	BeamWidth            int     `toml:"beam_width"`
	LMPath               string  `toml:"lm_path"`
	LMWeight             float64 `toml:"lm_weight"`
	ModelPath            string  `toml:"model_path"`
	TriePath             string  `toml:"trie_path"`
	ValidWordCountWeight float64 `toml:"valid_word_count_weight"`
}

// NewDeepSpeech creates a new DeepSpeech parser
func NewDeepSpeech(o DeepSpeechOptions) (d *DeepSpeech, err error) {
	// Check model path
	if _, err = os.Stat(o.ModelPath); err != nil {
		err = errors.Wrapf(err, "astispeechtotext: stating deepspeech model %s failed", o.ModelPath)
		return
	}

	// Create model
	astilog.Debugf("astispeechtotext: loading deepspeech model %s", o.ModelPath)
	d = &DeepSpeech{
		m: astideepspeech.New(o.ModelPath, o.BeamWidth),
		o: o,
	}

	// Enable LM
	if o.LMPath != "" {
		d.m.EnableDecoderWithLM(o.LMPath, o.TriePath, o.LMWeight, o.ValidWordCountWeight)
	}
	return
}

// Close implements the io.Closer interface
func (d *DeepSpeech) Close() (err error) {
	astilog.Debug("astispeechtotext: closing deepspeech model")
	if err = d.m.Close(); err != nil {
		err = errors.Wrap(err, "astispeechtotext: closing deepspeech model failed")
		return
	}
	return
}

// Parse implements the astihearing.SpeechParser interface
func (d *DeepSpeech) Parse(samples []int, bitDepth, numChannels, sampleRate int) (t string, err error) {
	// Convert
	var ss []int16
	if err = convert(samples, bitDepth, numChannels, sampleRate, deepSpeechBitDepth, deepSpeechSampleRate, func(s int) {
		ss = append(ss, int16(s))
	}); err != nil {
		err = errors.Wrap(err, "astispeechtotext: converting samples failed")
		return
	}

	// Parse
	t = strings.TrimSpace(d.m.SpeechToText(ss, uint(len(ss))))
	return
}
