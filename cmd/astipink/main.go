package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/asticode/go-astilog"
	"github.com/asticode/go-astipink"
	"github.com/asticode/go-astipink/abilities/hearing"
	"github.com/asticode/go-astipink/abilities/keyboarding"
	"github.com/asticode/go-astipink/abilities/mousing"
	"github.com/asticode/go-astipink/control"
	"github.com/asticode/go-astipink/interpreter"
	"github.com/asticode/go-astipink/pkg/portaudio"
	"github.com/asticode/go-astipink/pkg/robotgo"
	"github.com/asticode/go-astipink/pkg/speak"
	"github.com/asticode/go-astipink/pkg/speechtotext"
	"github.com/asticode/go-astipink/pkg/system"
	"github.com/asticode/go-astipink/session"
	"github.com/asticode/go-astitools/config"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

// Listeners
const (
	listenerHTTP       = "http"
	listenerMicrophone = "microphone"
)

// Flags
var (
	ctx, cancel = context.WithCancel(context.Background())
	addr        = flag.String("a", "", "the control server listen address")
	config      = flag.String("c", "", "the config path")
	listener    = flag.String("l", "", "the listener: microphone or http")
	userName    = flag.String("u", "", "the user name")
	wakeWord    = flag.String("w", "", "the wake word")
)

func main() {
	// Load .env
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		astilog.Error(errors.Wrap(err, "main: loading .env failed"))
	}

	// Parse flags
	flag.Parse()
	astilog.FlagInit()

	// Create configuration
	c := newConfiguration()

	// Handle signals
	handleSignals()

	// Create system
	sys := astisystem.New(c.System)

	// Create abilities
	k := astikeyboarding.NewAbility(astirobotgo.NewKeyboarder(c.Robotgo), c.Keyboarding)
	m := astimousing.NewAbility(astirobotgo.NewMouser(), c.Mousing)

	// Create session
	se, err := astisession.New(c.Layout)
	if err != nil {
		astilog.Fatal(errors.Wrap(err, "main: creating session failed"))
	}

	// Create interpreter
	i := astiinterpreter.New(c.Interpreter, se, k, m, astirobotgo.NewWindower(), sys)

	// Create speaker
	s := astispeak.New(c.Speak)
	if err := s.Init(); err != nil {
		astilog.Fatal(errors.Wrap(err, "main: initializing speaker failed"))
	}
	defer s.Close()
	var sp astipink.Speaker = s

	// Create control server
	var srv *asticontrol.Server
	var ss []astipink.StateSetter
	if c.ServeControl || c.Listener == listenerHTTP {
		srv = asticontrol.New(c.Control)
		defer srv.Close()
		sp = asticontrol.NewSpeaker(s, srv)
		ss = append(ss, srv)
		go func() {
			if err := srv.Serve(ctx); err != nil {
				astilog.Error(errors.Wrap(err, "main: serving control failed"))
				cancel()
			}
		}()
	}

	// Create listener
	var l astipink.Listener
	switch c.Listener {
	case listenerHTTP:
		l = srv
	case listenerMicrophone, "":
		// Create microphone listener
		ml, closeListener, err := newMicrophoneListener(c)
		if err != nil {
			astilog.Fatal(errors.Wrap(err, "main: creating microphone listener failed"))
		}
		defer closeListener()

		// Calibrate
		cl, err := ml.Calibrate(ctx)
		if err != nil {
			astilog.Fatal(errors.Wrap(err, "main: calibrating failed"))
		}
		astilog.Infof("main: max silence audio level is %.2f", ml.MaxSilenceAudioLevel())
		if srv != nil {
			srv.SetCalibration(cl)
		}
		l = ml
	default:
		astilog.Fatalf("main: unknown listener %s", c.Listener)
	}

	// Run assistant
	astilog.Infof("main: say the wake word \"%s\" before your command", c.Interpreter.WakeWord)
	if err := astipink.New(c.Pink, i, l, sp, sys, ss...).Run(ctx); err != nil {
		astilog.Fatal(errors.Wrap(err, "main: running assistant failed"))
	}
}

// newMicrophoneListener creates a listener reading from the default input device
func newMicrophoneListener(c *Configuration) (l *astihearing.Listener, closeFunc func(), err error) {
	// Initialize portaudio
	pa := astiportaudio.New()
	if err = pa.Initialize(); err != nil {
		err = errors.Wrap(err, "main: initializing portaudio failed")
		return
	}

	// Create stream
	var st *astiportaudio.Stream
	if st, err = pa.NewDefaultStream(c.Stream); err != nil {
		pa.Close()
		err = errors.Wrap(err, "main: creating default stream failed")
		return
	}

	// Create speech parser
	var p astispeechtotext.Parser
	if p, err = astispeechtotext.New(c.SpeechToText); err != nil {
		st.Close()
		pa.Close()
		err = errors.Wrap(err, "main: creating speech parser failed")
		return
	}

	// Create listener
	l = astihearing.NewListener(st, p, st.BitDepth(), st.NumChannels(), st.SampleRate(), c.Hearing)
	if err = l.Start(); err != nil {
		p.Close()
		st.Close()
		pa.Close()
		err = errors.Wrap(err, "main: starting listener failed")
		return
	}

	// Close
	closeFunc = func() {
		if err := l.Close(); err != nil {
			astilog.Error(errors.Wrap(err, "main: closing listener failed"))
		}
		if err := p.Close(); err != nil {
			astilog.Error(errors.Wrap(err, "main: closing speech parser failed"))
		}
		if err := st.Close(); err != nil {
			astilog.Error(errors.Wrap(err, "main: closing stream failed"))
		}
		if err := pa.Close(); err != nil {
			astilog.Error(errors.Wrap(err, "main: closing portaudio failed"))
		}
	}
	return
}

// Configuration represents a configuration
type Configuration struct {
	Control      asticontrol.Options           `toml:"control"`
	Hearing      astihearing.Options           `toml:"hearing"`
	Interpreter  astiinterpreter.Options       `toml:"interpreter"`
	Keyboarding  astikeyboarding.Options       `toml:"keyboarding"`
	Layout       astisession.Layout            `toml:"layout"`
	Listener     string                        `toml:"listener"`
	Mousing      astimousing.Options           `toml:"mousing"`
	Pink         astipink.Options              `toml:"pink"`
	Robotgo      astirobotgo.KeyboarderOptions `toml:"robotgo"`
	ServeControl bool                          `toml:"serve_control"`
	Speak        astispeak.Options             `toml:"speak"`
	SpeechToText astispeechtotext.Options      `toml:"speech_to_text"`
	Stream       astiportaudio.StreamOptions   `toml:"stream"`
	System       astisystem.Options            `toml:"system"`
}

// newConfiguration creates a new configuration
func newConfiguration() *Configuration {
	// Global config
	gc := &Configuration{
		Control:     asticontrol.DefaultOptions(),
		Hearing:     astihearing.DefaultOptions(),
		Interpreter: astiinterpreter.DefaultOptions(),
		Keyboarding: astikeyboarding.Options{RepeatDelay: 60 * time.Millisecond},
		Layout:      astisession.DefaultLayout(),
		Listener:    listenerMicrophone,
		Mousing:     astimousing.Options{ClickDelay: 100 * time.Millisecond},
		Pink:        astipink.DefaultOptions(),
		Robotgo:     astirobotgo.KeyboarderOptions{TypeDelay: 50 * time.Millisecond},
		Speak:       astispeak.DefaultOptions(),
		SpeechToText: astispeechtotext.Options{
			Engine: astispeechtotext.EngineDeepSpeech,
		},
		Stream: astiportaudio.DefaultStreamOptions(),
		System: astisystem.DefaultOptions(),
	}

	// Flag config
	fc := &Configuration{
		Control:     asticontrol.Options{Addr: *addr},
		Interpreter: astiinterpreter.Options{WakeWord: *wakeWord},
		Listener:    *listener,
		Pink:        astipink.Options{UserName: *userName},
	}

	// Config path
	p := *config
	if p == "" {
		p = os.Getenv("ASTIPINK_CONFIG")
	}

	// Build configuration
	c, err := asticonfig.New(gc, p, fc)
	if err != nil {
		astilog.Fatal(errors.Wrap(err, "main: building configuration failed"))
	}
	return c.(*Configuration)
}

func handleSignals() {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGQUIT, syscall.SIGTERM)
	go func() {
		for s := range ch {
			astilog.Debugf("main: received signal %s", s)
			cancel()
		}
	}()
}
