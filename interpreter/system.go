package astiinterpreter

import (
	"fmt"
	"math"
	"strings"

	"github.com/asticode/go-astilog"
	"github.com/asticode/go-astipink/pkg/numwords"
	"github.com/asticode/go-astipink/pkg/system"
	"github.com/pkg/errors"
)

// Brightness and volume defaults
const (
	brightnessStep        = 20
	volumeAssumedCurrent  = 50
	volumeDefaultAmount   = 10
	volumePercentPerPress = 2
)

func (i *Interpreter) handleWebSearch(c string) string {
	// Extract query
	m := i.regexpVideoSitePlay.FindStringSubmatch(c)
	if m == nil {
		m = i.regexpVideoSiteSearch.FindStringSubmatch(c)
	}
	q := strings.TrimSpace(m[1])

	// Open url
	u := i.o.VideoSite.SearchURL + strings.Replace(q, " ", "+", -1)
	if err := i.sys.OpenURL(u); err != nil {
		astilog.Error(errors.Wrap(err, "astiinterpreter: opening video site search failed"))
		return fmt.Sprintf("Couldn't search %s for %s.", i.o.VideoSite.Title, q)
	}
	return fmt.Sprintf("Searching %s for %s", i.o.VideoSite.Title, q)
}

func (i *Interpreter) handleWebOpen(string) string {
	if err := i.sys.OpenURL(i.o.VideoSite.HomeURL); err != nil {
		astilog.Error(errors.Wrap(err, "astiinterpreter: opening video site failed"))
		return fmt.Sprintf("Couldn't open %s.", i.o.VideoSite.Title)
	}
	return "Opening " + i.o.VideoSite.Title
}

// BatteryReport returns the spoken battery status
func (i *Interpreter) BatteryReport() string {
	// Get battery
	b, err := i.sys.Battery()
	if err != nil {
		if errors.Cause(err) == astisystem.ErrNoBattery {
			return "Battery information not available."
		}
		astilog.Error(errors.Wrap(err, "astiinterpreter: getting battery failed"))
		return "Unable to read battery status."
	}

	// Build report
	state := "plugged in"
	if !b.Plugged {
		state = "not plugged in"
	}
	var note string
	if b.Percent < 20 && !b.Plugged {
		note = " You should plug in the charger immediately."
	}
	return fmt.Sprintf("Battery is at %d%% and %s.%s", b.Percent, state, note)
}

func (i *Interpreter) handleTime(string) string {
	return "The time is " + i.sys.Now().Format("03:04 PM")
}

func (i *Interpreter) handleBrightness(c string) string {
	// Absolute
	if strings.Contains(c, " to ") {
		n, ok := astinumwords.ExtractBoundedPercentage(after(c, " to "))
		if !ok {
			n, ok = astinumwords.ExtractBoundedPercentage(c)
		}
		if !ok {
			return "Couldn't parse target brightness amount."
		}
		return i.setBrightness(n)
	}

	// Relative
	if strings.Contains(c, " by ") {
		n, ok := astinumwords.ExtractBoundedPercentage(after(c, " by "))
		if !ok {
			n, ok = astinumwords.ExtractBoundedPercentage(c)
		}
		if !ok {
			n = brightnessStep
		}
		if containsAny(c, keywordsUp...) {
			return i.shiftBrightness(n)
		}
		return i.shiftBrightness(-n)
	}

	// Keywords
	if containsAny(c, keywordsUp...) {
		return i.shiftBrightness(brightnessStep)
	}
	if containsAny(c, keywordsDown...) {
		return i.shiftBrightness(-brightnessStep)
	}

	// Bare number
	if n, ok := astinumwords.ExtractBoundedPercentage(c); ok {
		return i.setBrightness(n)
	}
	return "I couldn't determine how much to change the brightness by."
}

func (i *Interpreter) shiftBrightness(delta int) string {
	// Get current brightness
	v, err := i.sys.Brightness()
	if err != nil {
		astilog.Error(errors.Wrap(err, "astiinterpreter: getting brightness failed"))
		return "Couldn't read current brightness."
	}

	// Clamp
	v += delta
	if v > 100 {
		v = 100
	} else if v < 0 {
		v = 0
	}
	return i.setBrightness(v)
}

func (i *Interpreter) setBrightness(v int) string {
	if err := i.sys.SetBrightness(v); err != nil {
		astilog.Error(errors.Wrap(err, "astiinterpreter: setting brightness failed"))
		return "Couldn't set brightness."
	}
	return fmt.Sprintf("Brightness set to %d%%.", v)
}

// volumePresses converts a percentage into volume key presses
func volumePresses(v int) int {
	p := int(math.RoundToEven(math.Abs(float64(v)) / volumePercentPerPress))
	if p < 1 {
		p = 1
	}
	return p
}

func (i *Interpreter) handleVolume(c string) string {
	// Absolute, from an assumed baseline since the current volume can't be read
	if strings.Contains(c, " to ") {
		n, ok := astinumwords.ExtractBoundedPercentage(after(c, " to "))
		if !ok {
			n = volumeDefaultAmount
		}
		var err error
		if delta := n - volumeAssumedCurrent; delta > 0 {
			err = i.k.VolumeUp(volumePresses(delta))
		} else if delta < 0 {
			err = i.k.VolumeDown(volumePresses(delta))
		}
		if err != nil {
			astilog.Error(errors.Wrap(err, "astiinterpreter: setting volume failed"))
			return "Couldn't adjust volume."
		}
		return fmt.Sprintf("Attempted to set volume to %d%% (approximation).", n)
	}

	// Amount
	var n int
	var ok bool
	if strings.Contains(c, " by ") {
		n, ok = astinumwords.ExtractBoundedPercentage(after(c, " by "))
	} else {
		n, ok = astinumwords.ExtractBoundedPercentage(c)
	}
	if !ok {
		n = volumeDefaultAmount
	}

	// Direction
	var err error
	var reply string
	switch {
	case containsAny(c, keywordsVolumeUp...):
		err = i.k.VolumeUp(volumePresses(n))
		reply = fmt.Sprintf("Increased volume by ~%d%%.", n)
	case containsAny(c, keywordsVolumeDown...):
		err = i.k.VolumeDown(volumePresses(n))
		reply = fmt.Sprintf("Decreased volume by ~%d%%.", n)
	case strings.Contains(c, "mute"):
		err = i.k.Mute()
		reply = "Toggled mute."
	default:
		err = i.k.VolumeUp(volumePresses(n))
		reply = fmt.Sprintf("Adjusted volume by ~%d%%.", n)
	}
	if err != nil {
		astilog.Error(errors.Wrap(err, "astiinterpreter: adjusting volume failed"))
		return "Couldn't adjust volume."
	}
	return reply
}

func (i *Interpreter) handleSettings(c string) string {
	// Get page
	var page string
	for _, p := range astisystem.SettingsPages {
		if strings.Contains(c, p) {
			page = p
			break
		}
	}

	// Open
	if err := i.sys.OpenSettings(page); err != nil {
		astilog.Error(errors.Wrap(err, "astiinterpreter: opening settings failed"))
		return "Couldn't open settings."
	}
	if page == "" {
		return "Opened system settings."
	}
	return fmt.Sprintf("Opened %s settings.", page)
}

func (i *Interpreter) handleAppsOpen(c string) string {
	name := strings.TrimSpace(strings.TrimPrefix(c, "open"))
	if err := i.sys.OpenApp(i.executable(name)); err != nil {
		astilog.Error(errors.Wrapf(err, "astiinterpreter: opening %s failed", name))
		return fmt.Sprintf("Couldn't open %s.", name)
	}
	i.wait(i.o.Delays.AppLaunch)
	return fmt.Sprintf("Opened %s.", name)
}

func (i *Interpreter) handleAppsClose(c string) string {
	name := strings.TrimSpace(strings.TrimPrefix(c, "close"))
	if err := i.sys.CloseApp(i.executable(name)); err != nil {
		astilog.Error(errors.Wrapf(err, "astiinterpreter: closing %s failed", name))
		return fmt.Sprintf("Couldn't close %s.", name)
	}
	return fmt.Sprintf("Closed %s.", name)
}

func (i *Interpreter) handleShutdown(string) string {
	if err := i.sys.Shutdown(); err != nil {
		astilog.Error(errors.Wrap(err, "astiinterpreter: shutting down failed"))
		return "Couldn't shut down."
	}
	return "Shutting down. Goodbye."
}
