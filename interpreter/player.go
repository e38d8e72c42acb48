package astiinterpreter

import (
	"fmt"
	"strings"

	"github.com/asticode/go-astilog"
	"github.com/asticode/go-astipink/pkg/numwords"
	"github.com/asticode/go-astipink/session"
	"github.com/pkg/errors"
)

const playerVolumeDefaultSteps = 3

func (i *Interpreter) handlePlayerSearch(c string) string {
	// Extract query
	q := strings.TrimSpace(strings.Replace(after(c, "search"), i.o.Player.Name, "", -1))
	if q == "" {
		return fmt.Sprintf("Please tell me what to search for in %s.", i.playerTitle())
	}

	// Search
	if err := i.searchPlayer(q); err != nil {
		astilog.Error(errors.Wrapf(err, "astiinterpreter: searching %s in player failed", q))
		return fmt.Sprintf("Couldn't perform %s search.", i.playerTitle())
	}
	return fmt.Sprintf("Search done. Say '%[1]s select number N' to move to result N, '%[1]s play N' to play N, or '%[1]s play' to play the top result.", i.o.WakeWord)
}

// searchPlayer opens the player, submits a search and records the new result positions
func (i *Interpreter) searchPlayer(q string) (err error) {
	// Open player
	if err = i.sys.OpenApp(i.executable(i.o.Player.Name)); err != nil {
		err = errors.Wrap(err, "astiinterpreter: opening player failed")
		return
	}
	i.wait(i.o.Delays.AppLaunch)
	i.wait(i.o.Delays.PlayerLaunch)

	// Focus search box
	if err = i.k.Hotkey(i.o.Player.SearchHotkey); err != nil {
		err = errors.Wrap(err, "astiinterpreter: focusing search box failed")
		return
	}
	i.wait(i.o.Delays.SearchFocus)

	// Type query
	if err = i.k.Type(q); err != nil {
		err = errors.Wrap(err, "astiinterpreter: typing query failed")
		return
	}

	// Submit
	if err = i.k.Confirm(); err != nil {
		err = errors.Wrap(err, "astiinterpreter: submitting query failed")
		return
	}
	i.wait(i.o.Delays.SearchLoad)

	// Begin search
	b := i.windowBounds()
	i.s.BeginSearch(b)
	astilog.Debugf("astiinterpreter: stored %d result positions for window %+v", len(i.s.Positions()), b)
	return
}

func (i *Interpreter) handlePlayerSelect(c string) string {
	// Get number
	n, ok := selectNumber(c)
	if !ok || n == 0 {
		return "Please say a valid number after select."
	}

	// Select
	if err := i.s.Select(n, i.m); err != nil {
		astilog.Error(errors.Wrapf(err, "astiinterpreter: selecting result %d failed", n))
		return "Couldn't select that result."
	}
	return fmt.Sprintf("Selected result %d.", n)
}

func (i *Interpreter) handlePlayerPlay(c string) string {
	// Play N
	if n, ok := playNumber(c); ok {
		if err := i.playNth(n); err != nil {
			astilog.Error(errors.Wrapf(err, "astiinterpreter: playing result %d failed", n))
			return fmt.Sprintf("Couldn't play result %d.", n)
		}
		return fmt.Sprintf("Playing result %d.", n)
	}

	// Play selection or top result
	if err := i.play(); err != nil {
		astilog.Error(errors.Wrap(err, "astiinterpreter: playing failed"))
		return fmt.Sprintf("Couldn't play the song. Try '%s search %s <song>' first.", i.o.WakeWord, i.o.Player.Name)
	}
	return "Playing result."
}

// playNth selects the nth result then confirms it
func (i *Interpreter) playNth(n int) (err error) {
	// Select
	if err = i.s.Select(n, i.m); err != nil {
		err = errors.Wrap(err, "astiinterpreter: selecting failed")
		return
	}
	i.wait(i.o.Delays.Confirm)

	// Confirm
	if err = i.k.Confirm(); err != nil {
		err = errors.Wrap(err, "astiinterpreter: confirming failed")
		return
	}
	return
}

// play plays the selected result, or the top result when nothing is selected
func (i *Interpreter) play() (err error) {
	// Resolve target
	var p astisession.Point
	var m astisession.PlayMode
	if p, m, err = i.s.ResolvePlayTarget(); err != nil {
		err = errors.Wrap(err, "astiinterpreter: resolving play target failed")
		return
	}

	// Activate player window
	if errActivate := i.w.Activate(i.o.Player.Window); errActivate != nil {
		astilog.Debugf("astiinterpreter: activating %s window failed: %s", i.o.Player.Window, errActivate)
	} else {
		i.wait(i.o.Delays.Activate)
	}

	// Click
	astilog.Debugf("astiinterpreter: playing %+v with mode %s", p, m)
	if err = i.m.ClickAt(p.X, p.Y); err != nil {
		err = errors.Wrapf(err, "astiinterpreter: clicking %dx%d failed", p.X, p.Y)
		return
	}

	// Confirm
	if m == astisession.ClickConfirm {
		i.wait(i.o.Delays.Confirm)
		if err = i.k.Confirm(); err != nil {
			err = errors.Wrap(err, "astiinterpreter: confirming failed")
			return
		}
	}
	return
}

func (i *Interpreter) handlePlayerTransport(c string) string {
	switch {
	case containsAny(c, keywordsPlayPause...):
		if err := i.k.PlayPause(); err != nil {
			astilog.Error(errors.Wrap(err, "astiinterpreter: toggling play/pause failed"))
			return "Couldn't toggle play/pause."
		}
		return "Toggled play/pause."
	case strings.Contains(c, "next"):
		if err := i.k.Next(); err != nil {
			astilog.Error(errors.Wrap(err, "astiinterpreter: skipping to next track failed"))
			return "Couldn't skip to next track."
		}
		return "Skipped to next track."
	default:
		if err := i.k.Previous(); err != nil {
			astilog.Error(errors.Wrap(err, "astiinterpreter: going to previous track failed"))
			return "Couldn't go to previous track."
		}
		return "Went to previous track."
	}
}

// playerVolumeSteps returns half the embedded number, or the default step count
func playerVolumeSteps(c string) int {
	n, ok := astinumwords.ExtractBoundedPercentage(c)
	if !ok || n == 0 {
		return playerVolumeDefaultSteps
	}
	if n/2 < 1 {
		return 1
	}
	return n / 2
}

func (i *Interpreter) handlePlayerVolume(c string) string {
	switch {
	case containsAny(c, keywordsPlayerUp...):
		if err := i.k.VolumeUp(playerVolumeSteps(c)); err != nil {
			astilog.Error(errors.Wrap(err, "astiinterpreter: increasing player volume failed"))
			return fmt.Sprintf("Couldn't change %s volume.", i.playerTitle())
		}
		return fmt.Sprintf("Increased %s volume.", i.playerTitle())
	case containsAny(c, keywordsPlayerDown...):
		if err := i.k.VolumeDown(playerVolumeSteps(c)); err != nil {
			astilog.Error(errors.Wrap(err, "astiinterpreter: decreasing player volume failed"))
			return fmt.Sprintf("Couldn't change %s volume.", i.playerTitle())
		}
		return fmt.Sprintf("Decreased %s volume.", i.playerTitle())
	default:
		if err := i.k.Mute(); err != nil {
			astilog.Error(errors.Wrap(err, "astiinterpreter: toggling mute failed"))
			return "Couldn't toggle mute."
		}
		return "Toggled mute."
	}
}

func (i *Interpreter) handlePlayerShuffle(string) string {
	p := i.s.Layout().ShuffleAt(i.windowBounds())
	if err := i.m.ClickAt(p.X, p.Y); err != nil {
		astilog.Error(errors.Wrap(err, "astiinterpreter: clicking shuffle failed"))
		return "Couldn't toggle shuffle."
	}
	return "Toggled shuffle."
}

func (i *Interpreter) handlePlayerLike(string) string {
	for _, p := range i.s.Layout().LikeAt(i.windowBounds()) {
		if err := i.m.ClickAt(p.X, p.Y); err != nil {
			astilog.Error(errors.Wrap(err, "astiinterpreter: clicking like failed"))
			return "Couldn't like the track."
		}
		i.wait(i.o.Delays.LikeClick)
	}
	return "Toggled like on current track."
}

// playerTitle returns the player name as spoken
func (i *Interpreter) playerTitle() string {
	if i.o.Player.Window != "" {
		return i.o.Player.Window
	}
	return i.o.Player.Name
}
