package asticontrol

import "github.com/asticode/go-astilog"

// Sayer represents an object capable of saying words
type Sayer interface {
	Say(i string) error
}

// Speaker broadcasts every reply to the websocket clients before saying it
type Speaker struct {
	s   Sayer
	srv *Server
}

// NewSpeaker creates a new speaker
func NewSpeaker(s Sayer, srv *Server) *Speaker {
	return &Speaker{
		s:   s,
		srv: srv,
	}
}

// Say implements the Sayer interface
func (s *Speaker) Say(i string) error {
	astilog.Debugf("asticontrol: broadcasting reply \"%s\"", i)
	s.srv.broadcast(websocketEventNameReply, i)
	return s.s.Say(i)
}
