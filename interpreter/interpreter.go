// Package astiinterpreter turns recognized utterances into desktop actions.
//
// Utterances are classified by an ordered list of rules: the first rule whose predicate
// matches handles the utterance. The order is a priority contract, e.g. "spotify volume up"
// must reach the player volume rule and never the generic volume rule.
//
// Coordinate based automation is best-effort: a successful reply only means the
// automation calls did not fail, nothing checks what actually happened on screen.
package astiinterpreter

import (
	"regexp"
	"strings"
	"time"

	"github.com/asticode/go-astilog"
	"github.com/asticode/go-astipink/pkg/system"
	"github.com/asticode/go-astipink/session"
)

// Keyboarder represents an object capable of turning intents into key presses
type Keyboarder interface {
	Confirm() error
	Hotkey(combo string) error
	Mute() error
	Next() error
	PlayPause() error
	Previous() error
	Type(s string) error
	VolumeDown(n int) error
	VolumeUp(n int) error
}

// Windower represents an object capable of locating application windows
type Windower interface {
	Activate(name string) error
	Bounds(name string) (left, top, width, height int, err error)
	ScreenSize() (width, height int)
}

// System represents the operating system features the interpreter drives
type System interface {
	Battery() (astisystem.Battery, error)
	Brightness() (int, error)
	CloseApp(executable string) error
	Now() time.Time
	OpenApp(executable string) error
	OpenSettings(page string) error
	OpenURL(url string) error
	SetBrightness(v int) error
	Shutdown() error
}

// Interpreter represents an object capable of interpreting utterances.
// It is not safe for concurrent use.
type Interpreter struct {
	k     Keyboarder
	m     astisession.Mouser
	o     Options
	rules []rule
	s     *astisession.Session
	sleep func(d time.Duration)
	sys   System
	w     Windower

	regexpVideoSitePlay   *regexp.Regexp
	regexpVideoSiteSearch *regexp.Regexp
}

// New creates a new interpreter
func New(o Options, s *astisession.Session, k Keyboarder, m astisession.Mouser, w Windower, sys System) (i *Interpreter) {
	// Normalize options
	o.WakeWord = strings.ToLower(strings.TrimSpace(o.WakeWord))
	o.Player.Name = strings.ToLower(o.Player.Name)
	o.VideoSite.Name = strings.ToLower(o.VideoSite.Name)

	// Create interpreter
	i = &Interpreter{
		k:     k,
		m:     m,
		o:     o,
		s:     s,
		sleep: time.Sleep,
		sys:   sys,
		w:     w,
	}

	// Compile regexps
	site := regexp.QuoteMeta(o.VideoSite.Name)
	i.regexpVideoSitePlay = regexp.MustCompile(`play\s+(.+?)\s+(?:on\s+)?` + site + `\b`)
	i.regexpVideoSiteSearch = regexp.MustCompile(`search\s+(.+?)\s+(?:on\s+)?` + site + `\b`)

	// Build rules
	i.rules = i.buildRules()
	return
}

// Session returns the search session
func (i *Interpreter) Session() *astisession.Session {
	return i.s
}

// Strip lowercases an utterance and strips every occurrence of the wake word.
// ok is false when the utterance doesn't contain the wake word.
func (i *Interpreter) Strip(text string) (c string, ok bool) {
	c = strings.ToLower(strings.TrimSpace(text))
	if c == "" || i.o.WakeWord == "" || !strings.Contains(c, i.o.WakeWord) {
		return "", false
	}
	return strings.TrimSpace(strings.Replace(c, i.o.WakeWord, "", -1)), true
}

// RuleNames returns the rule names in evaluation order
func (i *Interpreter) RuleNames() (ns []string) {
	for _, r := range i.rules {
		ns = append(ns, r.name)
	}
	return
}

// match returns the first rule matching a stripped utterance
func (i *Interpreter) match(c string) rule {
	for _, r := range i.rules {
		if r.match(c) {
			return r
		}
	}
	return i.rules[len(i.rules)-1]
}

// Classify returns the name of the rule that would handle an utterance, without executing it.
// An empty name means the utterance would be ignored.
func (i *Interpreter) Classify(text string) string {
	c, ok := i.Strip(text)
	if !ok {
		return ""
	}
	return i.match(c).name
}

// Interpret executes the action matching an utterance and returns the reply to speak.
// An utterance without the wake word is ignored and yields an empty reply.
func (i *Interpreter) Interpret(text string) (reply string) {
	// Strip
	c, ok := i.Strip(text)
	if !ok {
		astilog.Debugf("astiinterpreter: no wake word in %q, ignoring", text)
		return
	}

	// Match
	r := i.match(c)
	astilog.Debugf("astiinterpreter: %q matched rule %s", c, r.name)

	// Handle
	return r.handle(c)
}

// wait pauses between automation steps
func (i *Interpreter) wait(d time.Duration) {
	if d > 0 {
		i.sleep(d)
	}
}

// executable returns the executable of an app name
func (i *Interpreter) executable(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if e, ok := i.o.Apps[name]; ok {
		return e
	}
	return name
}

// windowBounds returns fresh player window bounds, falling back to the full screen
func (i *Interpreter) windowBounds() (b astisession.Bounds) {
	// Get bounds
	l, t, w, h, err := i.w.Bounds(i.o.Player.Window)
	if err != nil {
		astilog.Debugf("astiinterpreter: getting %s window bounds failed, falling back to full screen: %s", i.o.Player.Window, err)
		w, h = i.w.ScreenSize()
		l, t = 0, 0
	}
	b = astisession.Bounds{Height: h, Left: l, Top: t, Width: w}

	// Record snapshot
	i.s.SetBounds(b)
	return
}

// containsAny checks whether c contains any of the words
func containsAny(c string, ws ...string) bool {
	for _, w := range ws {
		if strings.Contains(c, w) {
			return true
		}
	}
	return false
}

// after returns what follows the last occurrence of sep, or c itself if sep is absent
func after(c, sep string) string {
	if idx := strings.LastIndex(c, sep); idx >= 0 {
		return c[idx+len(sep):]
	}
	return c
}
