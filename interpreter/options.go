package astiinterpreter

import "time"

// Options represents interpreter options
type Options struct {
	Apps      map[string]string `toml:"apps"`
	Delays    Delays            `toml:"delays"`
	Player    PlayerOptions     `toml:"player"`
	VideoSite VideoSiteOptions  `toml:"video_site"`
	WakeWord  string            `toml:"wake_word"`
}

// Delays represents the pauses inserted between automation steps
type Delays struct {
	Activate     time.Duration `toml:"activate"`
	AppLaunch    time.Duration `toml:"app_launch"`
	Confirm      time.Duration `toml:"confirm"`
	LikeClick    time.Duration `toml:"like_click"`
	PlayerLaunch time.Duration `toml:"player_launch"`
	SearchFocus  time.Duration `toml:"search_focus"`
	SearchLoad   time.Duration `toml:"search_load"`
}

// PlayerOptions represents the desktop media player options
type PlayerOptions struct {
	// Name is the keyword identifying the player in utterances and the apps mapping
	Name         string `toml:"name"`
	SearchHotkey string `toml:"search_hotkey"`
	// Window is the process name used to locate the player window
	Window string `toml:"window"`
}

// VideoSiteOptions represents the video site options
type VideoSiteOptions struct {
	HomeURL   string `toml:"home_url"`
	Name      string `toml:"name"`
	SearchURL string `toml:"search_url"`
	Title     string `toml:"title"`
}

// DefaultOptions returns the default options
func DefaultOptions() Options {
	return Options{
		Apps: map[string]string{
			"chrome":   "chrome.exe",
			"cmd":      "cmd.exe",
			"edge":     "msedge.exe",
			"notepad":  "notepad.exe",
			"spotify":  "spotify.exe",
			"vscode":   "code.exe",
			"whatsapp": "whatsapp.exe",
		},
		Delays: Delays{
			Activate:     350 * time.Millisecond,
			AppLaunch:    1500 * time.Millisecond,
			Confirm:      150 * time.Millisecond,
			LikeClick:    120 * time.Millisecond,
			PlayerLaunch: 2500 * time.Millisecond,
			SearchFocus:  200 * time.Millisecond,
			SearchLoad:   2500 * time.Millisecond,
		},
		Player: PlayerOptions{
			Name:         "spotify",
			SearchHotkey: "ctrl+l",
			Window:       "Spotify",
		},
		VideoSite: VideoSiteOptions{
			HomeURL:   "https://www.youtube.com",
			Name:      "youtube",
			SearchURL: "https://www.youtube.com/results?search_query=",
			Title:     "YouTube",
		},
		WakeWord: "pink",
	}
}
