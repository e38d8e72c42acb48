package astikeyboarding

// Key names
const (
	KeyEnter        = "enter"
	KeyMute         = "audio_mute"
	KeyNext         = "audio_next"
	KeyPlayPause    = "audio_play"
	KeyPrevious     = "audio_prev"
	KeyVolumeDown   = "audio_vol_down"
	KeyVolumeUp     = "audio_vol_up"
	hotkeySeparator = "+"
)

// Keyboarder represents an object capable of interacting with a keyboard
type Keyboarder interface {
	Press(keys ...string) error
	Type(s string) error
}
