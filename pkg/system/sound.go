package astisystem

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/asticode/go-astilog"
	"github.com/faiface/beep"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"
	"github.com/pkg/errors"
)

// PlaySound plays a wav or mp3 file and blocks until it is done or the context is cancelled.
// A missing file is not an error.
func (s *System) PlaySound(ctx context.Context, path string) (err error) {
	// File doesn't exist
	if path == "" || !fileExists(path) {
		astilog.Debugf("astisystem: sound %s doesn't exist, skipping", path)
		return
	}

	// Open file
	var f *os.File
	if f, err = os.Open(path); err != nil {
		err = errors.Wrapf(err, "astisystem: opening %s failed", path)
		return
	}

	// Decode
	var st beep.StreamSeekCloser
	var fm beep.Format
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3":
		st, fm, err = mp3.Decode(f)
	default:
		st, fm, err = wav.Decode(f)
	}
	if err != nil {
		f.Close()
		err = errors.Wrapf(err, "astisystem: decoding %s failed", path)
		return
	}
	defer st.Close()

	// Init speaker
	if err = speaker.Init(fm.SampleRate, fm.SampleRate.N(time.Second/10)); err != nil {
		err = errors.Wrap(err, "astisystem: initializing speaker failed")
		return
	}

	// Play
	astilog.Debugf("astisystem: playing %s", path)
	done := make(chan struct{})
	speaker.Play(beep.Seq(st, beep.Callback(func() {
		close(done)
	})))

	// Wait
	select {
	case <-done:
	case <-ctx.Done():
		speaker.Clear()
	}
	return
}
