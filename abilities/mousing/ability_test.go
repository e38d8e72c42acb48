package astimousing

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

type mockedMouser struct {
	clicks  int
	errMove error
	moves   [][2]int
}

func (m *mockedMouser) ClickLeft(double bool) error {
	m.clicks++
	return nil
}

func (m *mockedMouser) Move(x, y int) error {
	if m.errMove != nil {
		return m.errMove
	}
	m.moves = append(m.moves, [2]int{x, y})
	return nil
}

func TestClickAt(t *testing.T) {
	m := &mockedMouser{}
	a := NewAbility(m, Options{})
	assert.NoError(t, a.ClickAt(10, 20))
	assert.Equal(t, [][2]int{{10, 20}}, m.moves)
	assert.Equal(t, 1, m.clicks)

	// Move failure prevents the click
	m.errMove = errors.New("boom")
	assert.Error(t, a.ClickAt(1, 2))
	assert.Equal(t, 1, m.clicks)
}
