package astihearing

import (
	"os"
	"path/filepath"

	"github.com/asticode/go-astilog"
	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/pkg/errors"
)

// Audio formats
const audioFormatPCM = 1

// store writes samples to samples_directory_path/<date>/<time>.wav
func (l *Listener) store(ss []int) (err error) {
	// Create directory
	n := l.now()
	dir := filepath.Join(l.o.SamplesDirectoryPath, n.Format("2006-01-02"))
	if err = os.MkdirAll(dir, 0755); err != nil {
		err = errors.Wrapf(err, "astihearing: mkdirall %s failed", dir)
		return
	}

	// Create file
	p := filepath.Join(dir, n.Format("15-04-05.000")+".wav")
	var f *os.File
	if f, err = os.Create(p); err != nil {
		err = errors.Wrapf(err, "astihearing: creating %s failed", p)
		return
	}
	defer f.Close()

	// Create encoder
	e := wav.NewEncoder(f, l.sampleRate, l.bitDepth, l.numChannels, audioFormatPCM)

	// Write
	astilog.Debugf("astihearing: storing %d samples to %s", len(ss), p)
	if err = e.Write(&audio.IntBuffer{
		Data: ss,
		Format: &audio.Format{
			NumChannels: l.numChannels,
			SampleRate:  l.sampleRate,
		},
		SourceBitDepth: l.bitDepth,
	}); err != nil {
		err = errors.Wrap(err, "astihearing: writing wav samples failed")
		return
	}

	// Close encoder
	if err = e.Close(); err != nil {
		err = errors.Wrap(err, "astihearing: closing wav encoder failed")
		return
	}
	return
}
