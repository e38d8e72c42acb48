package astiinterpreter

import (
	"math"
	"regexp"
	"strings"

	"github.com/asticode/go-astipink/pkg/numwords"
)

// Rule names
const (
	RuleAppsClose        = "apps.close"
	RuleAppsOpen         = "apps.open"
	RuleFallback         = "fallback"
	RulePlayerLike       = "player.like"
	RulePlayerPlay       = "player.play"
	RulePlayerSearch     = "player.search"
	RulePlayerSelect     = "player.select"
	RulePlayerShuffle    = "player.shuffle"
	RulePlayerTransport  = "player.transport"
	RulePlayerVolume     = "player.volume"
	RuleSystemBattery    = "system.battery"
	RuleSystemBrightness = "system.brightness"
	RuleSystemSettings   = "system.settings"
	RuleSystemShutdown   = "system.shutdown"
	RuleSystemTime       = "system.time"
	RuleSystemVolume     = "system.volume"
	RuleWebOpen          = "web.open"
	RuleWebSearch        = "web.search"
)

// Keywords
var (
	keywordsBrightness      = []string{"brightness", "display", "bright"}
	keywordsDown            = []string{"decrease", "down", "lower", "dim"}
	keywordsPlayerDown      = []string{"down", "lower", "decrease", "quieter"}
	keywordsPlayerUp        = []string{"up", "louder", "increase"}
	keywordsPlayerVolume    = []string{"volume", "louder", "quieter", "mute", "up", "down"}
	keywordsPlayPause       = []string{"hold", "stop", "resume", "playpause", "play/pause"}
	keywordsPrevious        = []string{"previous", "back"}
	keywordsUp              = []string{"increase", "up", "raise", "brighten"}
	keywordsVolume          = []string{"volume", "louder", "quieter", "mute"}
	keywordsVolumeDown      = []string{"decrease", "down", "lower", "quieter"}
	keywordsVolumeUp        = []string{"increase", "up", "louder", "raise"}
	keywordsLike            = []string{"like", "save", "heart"}
	keywordsShutdown        = []string{"shutdown", "sleep"}
	keywordsTransport       = append(append(append([]string{}, keywordsPlayPause...), "next"), keywordsPrevious...)
	keywordsPlayerDirection = append(append(append([]string{}, keywordsPlayerUp...), keywordsPlayerDown...), "mute")
)

// Regexps
var (
	regexpDigit      = regexp.MustCompile(`\d`)
	regexpPlay       = regexp.MustCompile(`\bplay\b`)
	regexpPlayDigits = regexp.MustCompile(`play\s+(\d+)`)
	regexpPlayWord   = regexp.MustCompile(`play\s+([a-z]+)`)
)

type rule struct {
	handle func(c string) string
	match  func(c string) bool
	name   string
}

// buildRules returns the rules in evaluation order. First match wins.
func (i *Interpreter) buildRules() []rule {
	p := i.o.Player.Name
	return []rule{
		{
			name: RuleWebSearch,
			match: func(c string) bool {
				return i.regexpVideoSitePlay.MatchString(c) || i.regexpVideoSiteSearch.MatchString(c)
			},
			handle: i.handleWebSearch,
		},
		{
			name: RuleWebOpen,
			match: func(c string) bool {
				return strings.Contains(c, "open "+i.o.VideoSite.Name) || c == i.o.VideoSite.Name
			},
			handle: i.handleWebOpen,
		},
		{
			name:   RuleSystemBattery,
			match:  func(c string) bool { return containsAny(c, "battery", "charge") },
			handle: func(string) string { return i.BatteryReport() },
		},
		{
			name:   RuleSystemTime,
			match:  func(c string) bool { return strings.Contains(c, "time") },
			handle: i.handleTime,
		},
		{
			name:   RuleSystemBrightness,
			match:  func(c string) bool { return containsAny(c, keywordsBrightness...) },
			handle: i.handleBrightness,
		},
		{
			name:   RuleSystemVolume,
			match:  func(c string) bool { return containsAny(c, keywordsVolume...) && !strings.Contains(c, p) },
			handle: i.handleVolume,
		},
		{
			name:   RuleSystemSettings,
			match:  func(c string) bool { return strings.Contains(c, "settings") },
			handle: i.handleSettings,
		},
		{
			name:   RulePlayerSearch,
			match:  func(c string) bool { return strings.Contains(c, "search") && strings.Contains(c, p) },
			handle: i.handlePlayerSearch,
		},
		{
			name:   RulePlayerSelect,
			match:  func(c string) bool { return strings.Contains(c, "select") && hasSelectNumber(c) },
			handle: i.handlePlayerSelect,
		},
		{
			name:   RulePlayerPlay,
			match:  regexpPlay.MatchString,
			handle: i.handlePlayerPlay,
		},
		{
			name:   RulePlayerTransport,
			match:  func(c string) bool { return containsAny(c, keywordsTransport...) },
			handle: i.handlePlayerTransport,
		},
		{
			name: RulePlayerVolume,
			match: func(c string) bool {
				return strings.Contains(c, p) && containsAny(c, keywordsPlayerVolume...) && containsAny(c, keywordsPlayerDirection...)
			},
			handle: i.handlePlayerVolume,
		},
		{
			name:   RulePlayerShuffle,
			match:  func(c string) bool { return strings.Contains(c, "shuffle") },
			handle: i.handlePlayerShuffle,
		},
		{
			name:   RulePlayerLike,
			match:  func(c string) bool { return containsAny(c, keywordsLike...) },
			handle: i.handlePlayerLike,
		},
		{
			name:   RuleAppsOpen,
			match:  func(c string) bool { return strings.HasPrefix(c, "open ") },
			handle: i.handleAppsOpen,
		},
		{
			name:   RuleAppsClose,
			match:  func(c string) bool { return strings.HasPrefix(c, "close ") },
			handle: i.handleAppsClose,
		},
		{
			name:   RuleSystemShutdown,
			match:  func(c string) bool { return containsAny(c, keywordsShutdown...) },
			handle: i.handleShutdown,
		},
		{
			name:   RuleFallback,
			match:  func(string) bool { return true },
			handle: func(string) string { return "I didn't understand that command." },
		},
	}
}

// hasSelectNumber checks whether a select utterance carries a digit or a number word
func hasSelectNumber(c string) bool {
	if regexpDigit.MatchString(c) {
		return true
	}
	_, ok := astinumwords.ExtractBoundedPercentage(after(c, "select"))
	return ok
}

// selectNumber resolves the index of a select utterance
func selectNumber(c string) (n int, ok bool) {
	if n, ok = astinumwords.ExtractInt(c); ok {
		return
	}
	return astinumwords.ExtractBoundedPercentage(after(c, "select"))
}

// playNumber resolves the index of a "play N" utterance. Digits too large for an int resolve to an
// index no layout holds.
func playNumber(c string) (n int, ok bool) {
	// Digits
	if m := regexpPlayDigits.FindStringSubmatch(c); len(m) > 1 {
		if n, ok = astinumwords.ExtractInt(m[1]); !ok {
			n = math.MaxInt32
		}
		return n, true
	}

	// Number words
	if m := regexpPlayWord.FindStringSubmatch(c); len(m) > 1 && astinumwords.IsWord(m[1]) {
		return astinumwords.ExtractBoundedPercentage(after(c, "play"))
	}
	return
}
