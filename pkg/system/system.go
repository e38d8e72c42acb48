// Package astisystem wraps the operating system features the assistant can drive.
package astisystem

import (
	"os"
	"strings"
	"time"

	"github.com/asticode/go-astilog"
	"github.com/distatus/battery"
	"github.com/pkg/browser"
	"github.com/pkg/errors"
	"github.com/shirou/gopsutil/v3/process"
)

// Errors
var (
	ErrNoBattery = errors.New("astisystem: no battery")
)

// Settings pages
const (
	SettingsPageBattery   = "battery"
	SettingsPageBluetooth = "bluetooth"
	SettingsPageDisplay   = "display"
	SettingsPageSound     = "sound"
	SettingsPageWifi      = "wifi"
)

// SettingsPages are the settings pages that can be opened directly, in detection order
var SettingsPages = []string{
	SettingsPageWifi,
	SettingsPageBluetooth,
	SettingsPageDisplay,
	SettingsPageSound,
	SettingsPageBattery,
}

// Battery represents a battery status
type Battery struct {
	Percent int  `json:"percent"`
	Plugged bool `json:"plugged"`
}

// Options represents system options
type Options struct {
	BrightnessBinaryPath string        `toml:"brightness_binary_path"`
	SettingsBinaryPath   string        `toml:"settings_binary_path"`
	ShutdownDelay        time.Duration `toml:"shutdown_delay"`
}

// DefaultOptions returns the default options
func DefaultOptions() Options {
	return Options{ShutdownDelay: 5 * time.Second}
}

// System represents the operating system
type System struct {
	now func() time.Time
	o   Options
}

// New creates a new system
func New(o Options) *System {
	return &System{
		now: time.Now,
		o:   o,
	}
}

// Now returns the current local time
func (s *System) Now() time.Time {
	return s.now()
}

// Battery returns the status of the first readable battery
func (s *System) Battery() (b Battery, err error) {
	// Get batteries
	var bs []*battery.Battery
	bs, err = battery.GetAll()

	// Loop through batteries
	for _, v := range bs {
		if v == nil || v.Full <= 0 {
			continue
		}
		b = Battery{
			Percent: int(v.Current / v.Full * 100),
			Plugged: v.State.Raw != battery.Discharging,
		}
		if b.Percent > 100 {
			b.Percent = 100
		}
		return b, nil
	}

	// No battery
	if err != nil {
		err = errors.Wrap(err, "astisystem: getting batteries failed")
		return
	}
	err = ErrNoBattery
	return
}

// OpenURL opens a url in the default browser
func (s *System) OpenURL(url string) (err error) {
	astilog.Debugf("astisystem: opening url %s", url)
	if err = browser.OpenURL(url); err != nil {
		err = errors.Wrapf(err, "astisystem: opening url %s failed", url)
		return
	}
	return
}

// OpenApp launches an executable without waiting for it
func (s *System) OpenApp(executable string) (err error) {
	astilog.Debugf("astisystem: opening app %s", executable)
	if err = openApp(executable); err != nil {
		err = errors.Wrapf(err, "astisystem: opening app %s failed", executable)
		return
	}
	return
}

// CloseApp kills every process whose name matches the executable
func (s *System) CloseApp(executable string) (err error) {
	// List processes
	var ps []*process.Process
	if ps, err = process.Processes(); err != nil {
		err = errors.Wrap(err, "astisystem: listing processes failed")
		return
	}

	// Loop through processes
	var killed int
	for _, p := range ps {
		// Get name
		n, errName := p.Name()
		if errName != nil || !matchesExecutable(n, executable) {
			continue
		}

		// Kill
		astilog.Debugf("astisystem: killing process %s (pid %d)", n, p.Pid)
		if errKill := p.Kill(); errKill != nil {
			astilog.Error(errors.Wrapf(errKill, "astisystem: killing process %d failed", p.Pid))
			continue
		}
		killed++
	}

	// Nothing was killed
	if killed == 0 {
		err = errors.Errorf("astisystem: no process matching %s", executable)
		return
	}
	return
}

// matchesExecutable checks whether a process name matches an executable, with or without extension
func matchesExecutable(name, executable string) bool {
	name, executable = strings.ToLower(name), strings.ToLower(executable)
	return name == executable || strings.TrimSuffix(name, ".exe") == strings.TrimSuffix(executable, ".exe")
}

// OpenSettings opens a settings page. An unknown page opens the settings home.
func (s *System) OpenSettings(page string) (err error) {
	astilog.Debugf("astisystem: opening settings page %s", page)
	if err = s.openSettings(page); err != nil {
		err = errors.Wrapf(err, "astisystem: opening settings page %s failed", page)
		return
	}
	return
}

// Shutdown requests a delayed shutdown of the machine
func (s *System) Shutdown() (err error) {
	astilog.Infof("astisystem: requesting shutdown in %s", s.o.ShutdownDelay)
	if err = shutdown(s.o.ShutdownDelay); err != nil {
		err = errors.Wrap(err, "astisystem: requesting shutdown failed")
		return
	}
	return
}

// Brightness returns the current brightness percentage
func (s *System) Brightness() (v int, err error) {
	if v, err = s.brightness(); err != nil {
		err = errors.Wrap(err, "astisystem: getting brightness failed")
		return
	}
	return
}

// SetBrightness sets the brightness percentage
func (s *System) SetBrightness(v int) (err error) {
	astilog.Debugf("astisystem: setting brightness to %d%%", v)
	if err = s.setBrightness(v); err != nil {
		err = errors.Wrapf(err, "astisystem: setting brightness to %d failed", v)
		return
	}
	return
}

// fileExists checks whether a file exists
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
