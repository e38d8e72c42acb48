package astisystem

import (
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/asticode/go-astilog"
	"github.com/pkg/errors"
)

var darwinSettingsPanes = map[string]string{
	SettingsPageBattery:   "com.apple.preference.battery",
	SettingsPageBluetooth: "com.apple.preferences.Bluetooth",
	SettingsPageDisplay:   "com.apple.preference.displays",
	SettingsPageSound:     "com.apple.preference.sound",
	SettingsPageWifi:      "com.apple.preference.network",
}

var errBrightnessUnsupported = errors.New("astisystem: brightness is not supported on darwin")

func openApp(executable string) error {
	return start(exec.Command("open", "-a", executable))
}

func (s *System) openSettings(page string) error {
	// Binary path
	name := "open"
	if s.o.SettingsBinaryPath != "" {
		name = s.o.SettingsBinaryPath
	}

	// Pane
	u := "x-apple.systempreferences:"
	if p, ok := darwinSettingsPanes[page]; ok {
		u += p
	}
	return start(exec.Command(name, u))
}

func shutdown(delay time.Duration) error {
	return start(exec.Command("sh", "-c", fmt.Sprintf(`sleep %d && osascript -e 'tell app "System Events" to shut down'`, int(delay.Seconds()))))
}

func (s *System) brightness() (int, error) {
	return 0, errBrightnessUnsupported
}

func (s *System) setBrightness(v int) error {
	return errBrightnessUnsupported
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
