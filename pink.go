// Package astipink runs the assistant loop: listen, interpret, act and speak.
package astipink

import (
	"context"
	"fmt"
	"time"

	"github.com/asticode/go-astilog"
	"github.com/asticode/go-astipink/abilities/hearing"
	"github.com/asticode/go-astipink/session"
	"github.com/pkg/errors"
)

// Listener represents an object capable of listening to the next utterance.
// An empty text means nothing was heard.
type Listener interface {
	Listen(ctx context.Context) (string, error)
}

// Speaker represents an object capable of saying words
type Speaker interface {
	Say(i string) error
}

// Interpreter represents an object capable of acting on utterances
type Interpreter interface {
	BatteryReport() string
	Interpret(text string) string
	Session() *astisession.Session
}

// System represents the system capabilities needed at boot
type System interface {
	Now() time.Time
	PlaySound(ctx context.Context, path string) error
}

// StateSetter represents an object that keeps the latest session snapshot
type StateSetter interface {
	SetState(st astisession.State)
}

// Options represents assistant options
type Options struct {
	BootSoundPath string        `toml:"boot_sound_path"`
	IdleDelay     time.Duration `toml:"idle_delay"`
	TurnDelay     time.Duration `toml:"turn_delay"`
	UserName      string        `toml:"user_name"`
}

// DefaultOptions returns the default options
func DefaultOptions() Options {
	return Options{
		IdleDelay: 400 * time.Millisecond,
		TurnDelay: 200 * time.Millisecond,
		UserName:  "sir",
	}
}

// Assistant is the assistant
type Assistant struct {
	i   Interpreter
	l   Listener
	o   Options
	s   Speaker
	ss  []StateSetter
	sys System
}

// New creates a new assistant
func New(o Options, i Interpreter, l Listener, s Speaker, sys System, ss ...StateSetter) *Assistant {
	return &Assistant{
		i:   i,
		l:   l,
		o:   o,
		s:   s,
		ss:  ss,
		sys: sys,
	}
}

// Run boots the assistant and loops on utterances until the context is done
func (a *Assistant) Run(ctx context.Context) (err error) {
	// Boot
	a.boot(ctx)

	// Loop
	astilog.Info("astipink: listening")
	for {
		// Context is done
		if ctx.Err() != nil {
			return
		}

		// Turn
		if ok := a.turn(ctx); !ok {
			a.sleep(ctx, a.o.IdleDelay)
			continue
		}
		a.sleep(ctx, a.o.TurnDelay)
	}
}

// boot plays the boot sound, greets the user and reports the battery
func (a *Assistant) boot(ctx context.Context) {
	// Play boot sound
	if a.o.BootSoundPath != "" {
		if err := a.sys.PlaySound(ctx, a.o.BootSoundPath); err != nil {
			astilog.Error(errors.Wrapf(err, "astipink: playing boot sound %s failed", a.o.BootSoundPath))
		}
	}

	// Greet
	a.say(Greeting(a.sys.Now(), a.o.UserName))

	// Report battery
	a.say(a.i.BatteryReport())
}

// turn handles one utterance and returns whether something was heard
func (a *Assistant) turn(ctx context.Context) bool {
	// Listen
	text, err := a.l.Listen(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return false
		} else if errors.Cause(err) == astihearing.ErrUnrecognized {
			astilog.Debug("astipink: speech was not recognized")
		} else {
			astilog.Error(errors.Wrap(err, "astipink: listening failed"))
		}
		return false
	}

	// Nothing heard
	if text == "" {
		return false
	}
	astilog.Infof("astipink: heard \"%s\"", text)

	// Interpret
	if r := a.i.Interpret(text); r != "" {
		a.say(r)
	}

	// Update state
	st := a.i.Session().State()
	for _, s := range a.ss {
		s.SetState(st)
	}
	return true
}

// say logs and says a line
func (a *Assistant) say(i string) {
	astilog.Infof("pink: %s", i)
	if err := a.s.Say(i); err != nil {
		astilog.Error(errors.Wrap(err, "astipink: saying failed"))
	}
}

// sleep pauses unless the context is done
func (a *Assistant) sleep(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}

// Greeting returns the boot greeting
func Greeting(now time.Time, userName string) string {
	return fmt.Sprintf("All systems operational. Good %s, %s.", TimeOfDay(now), userName)
}

// TimeOfDay returns morning, afternoon or evening
func TimeOfDay(t time.Time) string {
	switch h := t.Hour(); {
	case h < 12:
		return "morning"
	case h < 18:
		return "afternoon"
	default:
		return "evening"
	}
}
