package astispeechtotext

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	_, err := New(Options{Engine: "unknown"})
	assert.Error(t, err)

	_, err = New(Options{DeepSpeech: DeepSpeechOptions{ModelPath: "/this/model/does/not/exist.pbmm"}})
	assert.Error(t, err)
}

func TestNewDeepSpeechWithoutModel(t *testing.T) {
	d, err := NewDeepSpeech(DeepSpeechOptions{ModelPath: "/this/model/does/not/exist.pbmm"})
	assert.Error(t, err)
	assert.Nil(t, d)

	_, err = NewDeepSpeech(DeepSpeechOptions{})
	assert.Error(t, err)
}

func TestConvert(t *testing.T) {
	// Channels
	var ss []int
	fn := func(s int) { ss = append(ss, s) }
	err := convert([]int{1, -1, 2, -2, 3, -3}, 16, 2, 16000, 16, 16000, fn)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, ss)

	// Bit depth
	ss = []int{}
	err = convert([]int{256, -512}, 16, 1, 16000, 8, 16000, fn)
	require.NoError(t, err)
	assert.Equal(t, []int{1, -2}, ss)
}
