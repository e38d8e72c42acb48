package astispeak

import (
	"os/exec"
	"strconv"
	"strings"

	"github.com/asticode/go-astilog"
	"github.com/pkg/errors"
)

// Init initializes the speaker
func (s *Speaker) Init() error { return nil }

// Close implements the io.Closer interface
func (s *Speaker) Close() error { return nil }

func (s *Speaker) say(i string) (err error) {
	// Init args
	var args []string
	if s.o.Voice != "" {
		args = append(args, "-v", s.o.Voice)
	}
	if s.o.Rate > 0 {
		args = append(args, "-s", strconv.Itoa(s.o.Rate))
	}
	args = append(args, i)

	// Binary path
	name := "espeak"
	if s.o.BinaryPath != "" {
		name = s.o.BinaryPath
	}

	// Exec
	cmd := exec.Command(name, args...)
	astilog.Debugf("astispeak: executing %s", strings.Join(cmd.Args, " "))
	var b []byte
	if b, err = cmd.CombinedOutput(); err != nil {
		err = errors.Wrapf(err, "astispeak: running %s failed with combined output %s", strings.Join(cmd.Args, " "), b)
		return
	}
	return
}
