package astispeak

import (
	"github.com/asticode/go-astilog"
	"github.com/go-ole/go-ole"
	"github.com/go-ole/go-ole/oleutil"
	"github.com/pkg/errors"
)

// Init creates the SAPI voice and applies the configured rate and voice
func (s *Speaker) Init() (err error) {
	// Initialize ole
	if err = ole.CoInitialize(0); err != nil {
		err = errors.Wrap(err, "astispeak: initializing ole failed")
		return
	}

	// Create voice
	astilog.Debug("astispeak: creating SAPI voice")
	if s.sapiUnknown, err = oleutil.CreateObject("SAPI.SpVoice"); err != nil {
		err = errors.Wrap(err, "astispeak: creating SAPI voice failed")
		return
	}
	if s.sapiVoice, err = s.sapiUnknown.QueryInterface(ole.IID_IDispatch); err != nil {
		err = errors.Wrap(err, "astispeak: querying SAPI voice dispatch failed")
		return
	}

	// Rate
	if s.o.Rate > 0 {
		r := sapiRate(s.o.Rate)
		astilog.Debugf("astispeak: setting SAPI rate to %d", r)
		if err = sapiCall(oleutil.PutProperty(s.sapiVoice, "Rate", r)); err != nil {
			err = errors.Wrapf(err, "astispeak: setting SAPI rate to %d failed", r)
			return
		}
	}

	// Voice
	if s.o.Voice != "" {
		if err = s.selectVoice(s.o.Voice); err != nil {
			err = errors.Wrapf(err, "astispeak: selecting voice %s failed", s.o.Voice)
			return
		}
	}
	return
}

// selectVoice uses the first installed voice token whose name matches
func (s *Speaker) selectVoice(name string) (err error) {
	// Get tokens
	var v *ole.VARIANT
	if v, err = oleutil.CallMethod(s.sapiVoice, "GetVoices", "Name="+name); err != nil {
		err = errors.Wrap(err, "astispeak: getting voices failed")
		return
	}
	defer v.Clear()
	tokens := v.ToIDispatch()

	// Count tokens
	var c *ole.VARIANT
	if c, err = oleutil.GetProperty(tokens, "Count"); err != nil {
		err = errors.Wrap(err, "astispeak: counting voices failed")
		return
	}
	defer c.Clear()
	if c.Val == 0 {
		err = errors.Errorf("astispeak: no voice named %s", name)
		return
	}

	// Get first token
	var t *ole.VARIANT
	if t, err = oleutil.CallMethod(tokens, "Item", 0); err != nil {
		err = errors.Wrap(err, "astispeak: getting first voice failed")
		return
	}
	defer t.Clear()

	// Set voice
	astilog.Debugf("astispeak: using voice %s", name)
	if err = sapiCall(oleutil.PutPropertyRef(s.sapiVoice, "Voice", t.ToIDispatch())); err != nil {
		err = errors.Wrap(err, "astispeak: setting voice failed")
		return
	}
	return
}

// Close implements the io.Closer interface
func (s *Speaker) Close() (err error) {
	if s.sapiVoice != nil {
		s.sapiVoice.Release()
	}
	if s.sapiUnknown != nil {
		s.sapiUnknown.Release()
	}
	ole.CoUninitialize()
	return
}

func (s *Speaker) say(i string) (err error) {
	// Init has not been executed
	if s.sapiVoice == nil {
		err = errors.New("astispeak: Init must be called before Say")
		return
	}

	// Speak
	if err = sapiCall(oleutil.CallMethod(s.sapiVoice, "Speak", i)); err != nil {
		err = errors.Wrap(err, "astispeak: calling Speak failed")
		return
	}
	return
}

// sapiCall clears the variant returned by a successful ole call
func sapiCall(v *ole.VARIANT, err error) error {
	if err != nil {
		return err
	}
	if err = v.Clear(); err != nil {
		return errors.Wrap(err, "astispeak: clearing variant failed")
	}
	return nil
}
