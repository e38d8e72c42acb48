package asticontrol

import (
	"context"
	"time"
)

// Listen returns the next queued utterance.
// It returns an empty text when nothing was queued before the timeout or when the context is done.
func (s *Server) Listen(ctx context.Context) (text string, err error) {
	// Create timer
	t := time.NewTimer(s.o.Timeout)
	defer t.Stop()

	// Wait
	select {
	case text = <-s.q:
	case <-t.C:
	case <-ctx.Done():
	}
	return
}
