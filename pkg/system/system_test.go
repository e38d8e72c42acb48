package astisystem

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMatchesExecutable(t *testing.T) {
	assert.True(t, matchesExecutable("Spotify.exe", "spotify.exe"))
	assert.True(t, matchesExecutable("spotify", "spotify.exe"))
	assert.True(t, matchesExecutable("code", "code"))
	assert.False(t, matchesExecutable("notepad.exe", "code.exe"))
}

func TestNow(t *testing.T) {
	s := New(Options{})
	n := time.Date(2020, 1, 2, 15, 4, 5, 0, time.Local)
	s.now = func() time.Time { return n }
	assert.Equal(t, n, s.Now())
}

func TestPlaySoundMissingFile(t *testing.T) {
	s := New(Options{})
	assert.NoError(t, s.PlaySound(context.Background(), ""))
	assert.NoError(t, s.PlaySound(context.Background(), "/this/file/does/not/exist.wav"))
}
