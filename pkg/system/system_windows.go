package astisystem

import (
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/asticode/go-astilog"
	"github.com/go-ole/go-ole"
	"github.com/go-ole/go-ole/oleutil"
	"github.com/pkg/errors"
)

var windowsSettingsURIs = map[string]string{
	SettingsPageBattery:   "ms-settings:batterysaver",
	SettingsPageBluetooth: "ms-settings:bluetooth",
	SettingsPageDisplay:   "ms-settings:display",
	SettingsPageSound:     "ms-settings:sound",
	SettingsPageWifi:      "ms-settings:network-wifi",
}

func openApp(executable string) error {
	return run(exec.Command("cmd", "/c", "start", "", executable))
}

func (s *System) openSettings(page string) error {
	u, ok := windowsSettingsURIs[page]
	if !ok {
		u = "ms-settings:"
	}
	return run(exec.Command("cmd", "/c", "start", "", u))
}

func shutdown(delay time.Duration) error {
	return run(exec.Command("shutdown", "/s", "/t", strconv.Itoa(int(delay.Seconds()))))
}

func run(cmd *exec.Cmd) (err error) {
	astilog.Debugf("astisystem: executing %s", strings.Join(cmd.Args, " "))
	var b []byte
	if b, err = cmd.CombinedOutput(); err != nil {
		err = errors.Wrapf(err, "astisystem: running %s failed with combined output %s", strings.Join(cmd.Args, " "), b)
		return
	}
	return
}

// wmiQuery runs a query against the root\wmi namespace and calls fn with the first item
func wmiQuery(query string, fn func(item *ole.IDispatch) error) (err error) {
	// Initialize ole
	if err = ole.CoInitialize(0); err != nil {
		err = errors.Wrap(err, "astisystem: initializing ole failed")
		return
	}
	defer ole.CoUninitialize()

	// Create locator
	var u *ole.IUnknown
	if u, err = oleutil.CreateObject("WbemScripting.SWbemLocator"); err != nil {
		err = errors.Wrap(err, "astisystem: creating WbemScripting.SWbemLocator ole object failed")
		return
	}
	defer u.Release()

	// Get IDispatch
	var l *ole.IDispatch
	if l, err = u.QueryInterface(ole.IID_IDispatch); err != nil {
		err = errors.Wrap(err, "astisystem: getting ole IDispatch failed")
		return
	}
	defer l.Release()

	// Connect
	var v *ole.VARIANT
	if v, err = oleutil.CallMethod(l, "ConnectServer", nil, `root\wmi`); err != nil {
		err = errors.Wrap(err, "astisystem: connecting to root\\wmi failed")
		return
	}
	sv := v.ToIDispatch()
	defer sv.Release()

	// Query
	if v, err = oleutil.CallMethod(sv, "ExecQuery", query); err != nil {
		err = errors.Wrapf(err, "astisystem: executing %s failed", query)
		return
	}
	rs := v.ToIDispatch()
	defer rs.Release()

	// Count
	if v, err = oleutil.GetProperty(rs, "Count"); err != nil {
		err = errors.Wrap(err, "astisystem: getting count failed")
		return
	}
	if v.Val == 0 {
		err = errors.Errorf("astisystem: %s returned no item", query)
		return
	}

	// Get first item
	if v, err = oleutil.CallMethod(rs, "ItemIndex", 0); err != nil {
		err = errors.Wrap(err, "astisystem: getting item 0 failed")
		return
	}
	i := v.ToIDispatch()
	defer i.Release()
	return fn(i)
}

func (s *System) brightness() (v int, err error) {
	err = wmiQuery("SELECT CurrentBrightness FROM WmiMonitorBrightness", func(i *ole.IDispatch) (err error) {
		var p *ole.VARIANT
		if p, err = oleutil.GetProperty(i, "CurrentBrightness"); err != nil {
			err = errors.Wrap(err, "astisystem: getting CurrentBrightness failed")
			return
		}
		v = int(p.Val)
		return
	})
	return
}

func (s *System) setBrightness(v int) error {
	return wmiQuery("SELECT * FROM WmiMonitorBrightnessMethods", func(i *ole.IDispatch) (err error) {
		var r *ole.VARIANT
		if r, err = oleutil.CallMethod(i, "WmiSetBrightness", 1, v); err != nil {
			err = errors.Wrap(err, "astisystem: calling WmiSetBrightness failed")
			return
		}
		r.Clear()
		return
	})
}
