package astisystem

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestParseBrightnessctl(t *testing.T) {
	v, err := parseBrightnessctl("intel_backlight,backlight,1200,60%,2000\n")
	assert.NoError(t, err)
	assert.Equal(t, 60, v)
	_, err = parseBrightnessctl("")
	assert.EqualError(t, err, `astisystem: invalid brightnessctl output ""`)
	_, ok := err.(interface{ StackTrace() errors.StackTrace })
	assert.True(t, ok)
	_, err = parseBrightnessctl("a,b,c,d%,e")
	assert.Error(t, err)
}
