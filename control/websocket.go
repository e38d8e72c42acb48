package asticontrol

import (
	"encoding/json"

	"github.com/asticode/go-astilog"
	"github.com/asticode/go-astiws"
	"github.com/pkg/errors"
)

// adaptWebsocketClient registers a new reply feed client
func (s *Server) adaptWebsocketClient(c *astiws.Client) error {
	// Register client
	s.ws.AutoRegisterClient(c)

	// Handle disconnect
	c.AddListener(astiws.EventNameDisconnect, s.handleWebsocketDisconnected)
	return nil
}

// handleWebsocketDisconnected handles the disconnected websocket event
func (s *Server) handleWebsocketDisconnected(c *astiws.Client, eventName string, payload json.RawMessage) error {
	s.ws.UnregisterClient(c)
	return nil
}

// broadcast writes an event to every connected client
func (s *Server) broadcast(name string, payload interface{}) {
	s.ws.Loop(func(k interface{}, c *astiws.Client) {
		if err := c.Write(name, payload); err != nil {
			astilog.Error(errors.Wrapf(err, "asticontrol: writing %s event to ws client %p failed", name, c))
		}
	})
}
