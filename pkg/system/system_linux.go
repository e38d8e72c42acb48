package astisystem

import (
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/asticode/go-astilog"
	"github.com/pkg/errors"
)

var linuxSettingsPanels = map[string]string{
	SettingsPageBattery:   "power",
	SettingsPageBluetooth: "bluetooth",
	SettingsPageDisplay:   "display",
	SettingsPageSound:     "sound",
	SettingsPageWifi:      "wifi",
}

func openApp(executable string) error {
	return start(exec.Command(executable))
}

func (s *System) openSettings(page string) error {
	// Binary path
	name := "gnome-control-center"
	if s.o.SettingsBinaryPath != "" {
		name = s.o.SettingsBinaryPath
	}

	// Panel
	var args []string
	if p, ok := linuxSettingsPanels[page]; ok {
		args = append(args, p)
	}
	return start(exec.Command(name, args...))
}

func shutdown(delay time.Duration) error {
	return start(exec.Command("sh", "-c", fmt.Sprintf("sleep %d && shutdown -h now", int(delay.Seconds()))))
}

func (s *System) brightnessBinaryPath() string {
	if s.o.BrightnessBinaryPath != "" {
		return s.o.BrightnessBinaryPath
	}
	return "brightnessctl"
}

func (s *System) brightness() (v int, err error) {
	// Exec
	cmd := exec.Command(s.brightnessBinaryPath(), "-m")
	astilog.Debugf("astisystem: executing %s", strings.Join(cmd.Args, " "))
	var b []byte
	if b, err = cmd.Output(); err != nil {
		err = errors.Wrapf(err, "astisystem: running %s failed", strings.Join(cmd.Args, " "))
		return
	}

	// Parse
	if v, err = parseBrightnessctl(string(b)); err != nil {
		err = errors.Wrap(err, "astisystem: parsing brightnessctl output failed")
		return
	}
	return
}

// parseBrightnessctl parses machine readable output such as "intel_backlight,backlight,1200,60%,2000"
func parseBrightnessctl(o string) (v int, err error) {
	// Split
	line := strings.TrimSpace(strings.SplitN(o, "\n", 2)[0])
	fs := strings.Split(line, ",")
	if len(fs) < 4 {
		err = errors.Errorf("astisystem: invalid brightnessctl output %q", line)
		return
	}

	// Parse percentage
	if v, err = strconv.Atoi(strings.TrimSuffix(fs[3], "%")); err != nil {
		err = errors.Wrapf(err, "astisystem: atoi of %s failed", fs[3])
		return
	}
	return
}

func (s *System) setBrightness(v int) (err error) {
	cmd := exec.Command(s.brightnessBinaryPath(), "set", strconv.Itoa(v)+"%")
	astilog.Debugf("astisystem: executing %s", strings.Join(cmd.Args, " "))
	var b []byte
	if b, err = cmd.CombinedOutput(); err != nil {
		err = errors.Wrapf(err, "astisystem: running %s failed with combined output %s", strings.Join(cmd.Args, " "), b)
		return
	}
	return
}

func start(cmd *exec.Cmd) (err error) {
	astilog.Debugf("astisystem: starting %s", strings.Join(cmd.Args, " "))
	if err = cmd.Start(); err != nil {
		err = errors.Wrapf(err, "astisystem: starting %s failed", strings.Join(cmd.Args, " "))
		return
	}
	go cmd.Wait()
	return
}
