package astiportaudio

import (
	"fmt"

	"github.com/asticode/go-astilog"
	"github.com/gordonklaus/portaudio"
	"github.com/pkg/errors"
)

// PortAudio represents a portaudio wrapper
type PortAudio struct{}

// New creates a new portaudio wrapper
func New() *PortAudio {
	return &PortAudio{}
}

// Initialize initializes portaudio
func (p *PortAudio) Initialize() (err error) {
	astilog.Debug("astiportaudio: initializing portaudio")
	if err = portaudio.Initialize(); err != nil {
		err = errors.Wrap(err, "astiportaudio: initializing portaudio failed")
		return
	}
	return
}

// Close implements the io.Closer interface
func (p *PortAudio) Close() (err error) {
	astilog.Debug("astiportaudio: terminating portaudio")
	if err = portaudio.Terminate(); err != nil {
		err = errors.Wrap(err, "astiportaudio: terminating portaudio failed")
		return
	}
	return
}

// Info returns a human readable description of the host apis and their devices
func (p *PortAudio) Info() (s string) {
	// Get host APIs
	as, err := portaudio.HostApis()
	if err != nil {
		return "getting portaudio host apis failed"
	}

	// Loop through APIs
	s = "\n+ Portaudio\n"
	for idxAPI, a := range as {
		s += fmt.Sprintf("|\n+--+ Host API #%d: %s - %s\n", idxAPI, a.Name, a.Type)
		if a.DefaultInputDevice != nil {
			s += fmt.Sprintf("|  |\n|  +--+ Default input device: %s\n", a.DefaultInputDevice.Name)
		}
		if len(a.Devices) > 0 {
			s += "|  |\n|  +--+ Devices:\n"
			for idxDevice, d := range a.Devices {
				s += fmt.Sprintf("|     |\n|     +--+ Device #%d: %s (sample rate: %.0fHz - max input channels: %v)\n", idxDevice, d.Name, d.DefaultSampleRate, d.MaxInputChannels)
			}
		}
	}
	return
}
