package astipink

import (
	"context"
	"testing"
	"time"

	"github.com/asticode/go-astipink/abilities/hearing"
	"github.com/asticode/go-astipink/session"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

type listenResult struct {
	err  error
	text string
}

type mockedListener struct {
	cancel  context.CancelFunc
	results []listenResult
}

func (l *mockedListener) Listen(ctx context.Context) (string, error) {
	if len(l.results) == 0 {
		l.cancel()
		return "", nil
	}
	r := l.results[0]
	l.results = l.results[1:]
	return r.text, r.err
}

type mockedSpeaker struct {
	said []string
}

func (s *mockedSpeaker) Say(i string) error {
	s.said = append(s.said, i)
	return errors.New("no audio output")
}

type mockedInterpreter struct {
	heard []string
	s     *astisession.Session
}

func (i *mockedInterpreter) BatteryReport() string { return "Battery is at 80 percent." }

func (i *mockedInterpreter) Interpret(text string) string {
	i.heard = append(i.heard, text)
	switch text {
	case "pink search faded on spotify":
		i.s.BeginSearch(astisession.Bounds{Width: 1000, Height: 1000})
		return "Searching Spotify for faded."
	case "pink next":
		return "Skipped to next track."
	}
	return ""
}

func (i *mockedInterpreter) Session() *astisession.Session { return i.s }

type mockedSystem struct {
	now    time.Time
	played []string
}

func (s *mockedSystem) Now() time.Time { return s.now }

func (s *mockedSystem) PlaySound(ctx context.Context, path string) error {
	s.played = append(s.played, path)
	return nil
}

type mockedStateSetter struct {
	states []astisession.State
}

func (s *mockedStateSetter) SetState(st astisession.State) { s.states = append(s.states, st) }

func TestRun(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	l := &mockedListener{
		cancel: cancel,
		results: []listenResult{
			{text: ""},
			{err: errors.Wrap(astihearing.ErrUnrecognized, "test")},
			{err: errors.New("device unplugged")},
			{text: "hello there"},
			{text: "pink search faded on spotify"},
			{text: "pink next"},
		},
	}
	sp := &mockedSpeaker{}
	i := &mockedInterpreter{s: astisession.MustNew(astisession.DefaultLayout())}
	sys := &mockedSystem{now: time.Date(2024, 1, 1, 15, 0, 0, 0, time.UTC)}
	ss := &mockedStateSetter{}
	a := New(Options{BootSoundPath: "boot.mp3", UserName: "boss"}, i, l, sp, sys, ss)
	assert.NoError(t, a.Run(ctx))
	assert.Equal(t, []string{"boot.mp3"}, sys.played)
	assert.Equal(t, []string{
		"All systems operational. Good afternoon, boss.",
		"Battery is at 80 percent.",
		"Searching Spotify for faded.",
		"Skipped to next track.",
	}, sp.said)
	assert.Equal(t, []string{"hello there", "pink search faded on spotify", "pink next"}, i.heard)
	assert.Len(t, ss.states, 3)
	assert.Empty(t, ss.states[0].Positions)
	assert.Len(t, ss.states[2].Positions, 8)
}

func TestRunWithoutBootSound(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sys := &mockedSystem{now: time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)}
	sp := &mockedSpeaker{}
	a := New(DefaultOptions(), &mockedInterpreter{s: astisession.MustNew(astisession.DefaultLayout())}, &mockedListener{cancel: cancel}, sp, sys)
	assert.NoError(t, a.Run(ctx))
	assert.Empty(t, sys.played)
	assert.Equal(t, "All systems operational. Good morning, sir.", sp.said[0])
}

func TestTimeOfDay(t *testing.T) {
	for h, e := range map[int]string{0: "morning", 11: "morning", 12: "afternoon", 17: "afternoon", 18: "evening", 23: "evening"} {
		assert.Equal(t, e, TimeOfDay(time.Date(2024, 1, 1, h, 30, 0, 0, time.UTC)))
	}
}
