package astihearing

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockedReader struct {
	chunks  [][]int
	started bool
	stopped bool
}

func (r *mockedReader) ReadSamples() (ss []int, err error) {
	if len(r.chunks) == 0 {
		err = errors.New("no more samples")
		return
	}
	ss = r.chunks[0]
	r.chunks = r.chunks[1:]
	return
}

func (r *mockedReader) Start() error {
	r.started = true
	return nil
}

func (r *mockedReader) Stop() error {
	r.stopped = true
	return nil
}

type mockedParser struct {
	samples []int
	text    string
}

func (p *mockedParser) Parse(samples []int, bitDepth, numChannels, sampleRate int) (string, error) {
	p.samples = samples
	return p.text, nil
}

const testSampleRate = 10

func chunk(v int) []int {
	return []int{v, -v, v, -v, v}
}

func newTestListener(chunks [][]int, text string) (*Listener, *mockedReader, *mockedParser) {
	r := &mockedReader{chunks: chunks}
	p := &mockedParser{text: text}
	return NewListener(r, p, 16, 1, testSampleRate, Options{
		CalibrateDuration:  time.Second,
		PhraseTimeLimit:    5 * time.Second,
		SilenceMinDuration: time.Second,
		Timeout:            2 * time.Second,
	}), r, p
}

func TestListen(t *testing.T) {
	l, r, p := newTestListener([][]int{chunk(0), chunk(1000), chunk(1000), chunk(0), chunk(0), chunk(1000)}, " Pink Play ")
	require.NoError(t, l.Start())
	assert.True(t, r.started)
	text, err := l.Listen(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "pink play", text)
	assert.Len(t, p.samples, 20)
	assert.Len(t, r.chunks, 1)
	require.NoError(t, l.Close())
	assert.True(t, r.stopped)
}

func TestListenTimeout(t *testing.T) {
	l, r, p := newTestListener([][]int{chunk(0), chunk(0), chunk(0), chunk(0), chunk(1000)}, "pink")
	text, err := l.Listen(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "", text)
	assert.Nil(t, p.samples)
	assert.Len(t, r.chunks, 1)
}

func TestListenEmptyReads(t *testing.T) {
	// Timeout is reached while the reader returns nothing
	var cs [][]int
	for idx := 0; idx < 10; idx++ {
		cs = append(cs, []int{})
	}
	l, r, p := newTestListener(cs, "pink")
	var slept int
	l.sleep = func(time.Duration) { slept++ }
	n := time.Date(2020, 1, 2, 15, 4, 5, 0, time.UTC)
	l.now = func() time.Time {
		n = n.Add(500 * time.Millisecond)
		return n
	}
	text, err := l.Listen(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "", text)
	assert.Nil(t, p.samples)
	assert.Len(t, r.chunks, 6)
	assert.Equal(t, 4, slept)

	// Empty reads end the speech
	l, _, p = newTestListener([][]int{chunk(1000), {}, {}, {}, chunk(1000)}, "pink")
	l.sleep = func(time.Duration) {}
	l.now = func() time.Time {
		n = n.Add(500 * time.Millisecond)
		return n
	}
	_, err = l.Listen(context.Background())
	require.NoError(t, err)
	assert.Len(t, p.samples, 5)
}

func TestListenPhraseTimeLimit(t *testing.T) {
	var cs [][]int
	for idx := 0; idx < 12; idx++ {
		cs = append(cs, chunk(1000))
	}
	l, r, p := newTestListener(cs, "pink next")
	_, err := l.Listen(context.Background())
	require.NoError(t, err)
	assert.Len(t, p.samples, 50)
	assert.Len(t, r.chunks, 2)
}

func TestListenUnrecognized(t *testing.T) {
	l, _, _ := newTestListener([][]int{chunk(1000), chunk(0), chunk(0)}, "  ")
	_, err := l.Listen(context.Background())
	assert.Equal(t, ErrUnrecognized, err)
}

func TestListenErrors(t *testing.T) {
	// Reader error
	l, _, _ := newTestListener(nil, "pink")
	_, err := l.Listen(context.Background())
	assert.Error(t, err)

	// Context
	l, _, _ = newTestListener([][]int{chunk(1000)}, "pink")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = l.Listen(ctx)
	assert.Error(t, err)
}

func TestListenStore(t *testing.T) {
	dir, err := os.MkdirTemp("", "astihearing")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	l, _, _ := newTestListener([][]int{chunk(1000), chunk(0), chunk(0)}, "pink")
	l.o.SamplesDirectoryPath = dir
	l.now = func() time.Time { return time.Date(2020, 1, 2, 15, 4, 5, 0, time.UTC) }
	_, err = l.Listen(context.Background())
	require.NoError(t, err)
	fi, err := os.Stat(filepath.Join(dir, "2020-01-02", "15-04-05.000.wav"))
	require.NoError(t, err)
	assert.True(t, fi.Size() > 44)
}

func TestCalibrate(t *testing.T) {
	l, r, _ := newTestListener([][]int{chunk(10), chunk(1000), chunk(0)}, "")
	c, err := l.Calibrate(context.Background())
	require.NoError(t, err)
	assert.Len(t, r.chunks, 1)
	assert.True(t, c.MaxAudioLevel > 0)
	assert.InDelta(t, 0.3*c.MaxAudioLevel, c.SuggestedMaxSilenceAudioLevel, 1e-9)
	assert.Equal(t, c.SuggestedMaxSilenceAudioLevel, l.MaxSilenceAudioLevel())
	assert.Equal(t, c.SuggestedMaxSilenceAudioLevel, c.MaxSilenceAudioLevel)
	assert.Len(t, c.Chart.Data.Datasets, 2)
	assert.Len(t, c.Chart.Data.Datasets[0].Data, 10)

	// Configured level wins
	l, _, _ = newTestListener([][]int{chunk(1000), chunk(1000)}, "")
	l.o.MaxSilenceAudioLevel = 5
	l.maxSilenceAudioLevel = 5
	c, err = l.Calibrate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, float64(5), c.MaxSilenceAudioLevel)

	// Empty reads count toward the duration
	l, r, _ = newTestListener([][]int{{}, {}, {}, chunk(1000)}, "")
	l.sleep = func(time.Duration) {}
	n := time.Date(2020, 1, 2, 15, 4, 5, 0, time.UTC)
	l.now = func() time.Time {
		n = n.Add(500 * time.Millisecond)
		return n
	}
	c, err = l.Calibrate(context.Background())
	require.NoError(t, err)
	assert.Len(t, r.chunks, 2)
	assert.Equal(t, float64(0), c.MaxAudioLevel)
}
