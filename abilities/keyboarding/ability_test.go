package astikeyboarding

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

type mockedKeyboarder struct {
	err     error
	presses [][]string
	typed   []string
}

func (k *mockedKeyboarder) Press(keys ...string) error {
	if k.err != nil {
		return k.err
	}
	k.presses = append(k.presses, keys)
	return nil
}

func (k *mockedKeyboarder) Type(s string) error {
	k.typed = append(k.typed, s)
	return nil
}

func TestAbility(t *testing.T) {
	k := &mockedKeyboarder{}
	a := NewAbility(k, Options{})
	assert.NoError(t, a.PlayPause())
	assert.NoError(t, a.VolumeUp(3))
	assert.NoError(t, a.VolumeDown(0))
	assert.NoError(t, a.Hotkey("Ctrl+L"))
	assert.NoError(t, a.Type("faded"))
	assert.Equal(t, [][]string{
		{KeyPlayPause},
		{KeyVolumeUp},
		{KeyVolumeUp},
		{KeyVolumeUp},
		{KeyVolumeDown},
		{"l", "ctrl"},
	}, k.presses)
	assert.Equal(t, []string{"faded"}, k.typed)
	assert.Error(t, a.Hotkey(" + "))

	// Failure stops the presses
	k.err = errors.New("boom")
	assert.Error(t, a.Next())
}
