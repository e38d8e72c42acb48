package asticontrol

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/asticode/go-astilog"
	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
)

// Websocket events
const (
	websocketEventNameReply = "reply"
)

// APIError represents an API error.
type APIError struct {
	Message string `json:"message"`
}

// APIUtterance represents an utterance sent to the assistant
type APIUtterance struct {
	Text string `json:"text"`
}

// APIWriteError writes an API error
func APIWriteError(rw http.ResponseWriter, code int, err error) {
	rw.WriteHeader(code)
	astilog.Error(err)
	if err := json.NewEncoder(rw).Encode(APIError{Message: err.Error()}); err != nil {
		astilog.Error(errors.Wrap(err, "asticontrol: json encoding failed"))
	}
}

// APIWrite writes API data
func APIWrite(rw http.ResponseWriter, data interface{}) {
	if err := json.NewEncoder(rw).Encode(data); err != nil {
		APIWriteError(rw, http.StatusInternalServerError, errors.Wrap(err, "asticontrol: json encoding failed"))
		return
	}
}

// handleAPIOKGET returns the ok status.
func (s *Server) handleAPIOKGET(rw http.ResponseWriter, r *http.Request, p httprouter.Params) {
	rw.WriteHeader(http.StatusNoContent)
}

// handleAPISessionGET returns the last search session snapshot.
func (s *Server) handleAPISessionGET(rw http.ResponseWriter, r *http.Request, p httprouter.Params) {
	s.m.Lock()
	st := s.state
	s.m.Unlock()
	APIWrite(rw, st)
}

// handleAPICalibrationGET returns the last calibration results.
func (s *Server) handleAPICalibrationGET(rw http.ResponseWriter, r *http.Request, p httprouter.Params) {
	// Get calibration
	s.m.Lock()
	c := s.calibration
	s.m.Unlock()

	// No calibration
	if c == nil {
		APIWriteError(rw, http.StatusNotFound, errors.New("asticontrol: no calibration available"))
		return
	}
	APIWrite(rw, c)
}

// handleAPIUtterancesPOST queues an utterance for the assistant.
func (s *Server) handleAPIUtterancesPOST(rw http.ResponseWriter, r *http.Request, p httprouter.Params) {
	// Decode body
	var u APIUtterance
	if err := json.NewDecoder(r.Body).Decode(&u); err != nil {
		APIWriteError(rw, http.StatusBadRequest, errors.Wrap(err, "asticontrol: json decoding body failed"))
		return
	}

	// Normalize
	t := strings.ToLower(strings.TrimSpace(u.Text))
	if t == "" {
		APIWriteError(rw, http.StatusBadRequest, errors.New("asticontrol: text is empty"))
		return
	}

	// Queue
	select {
	case s.q <- t:
		astilog.Debugf("asticontrol: queued utterance \"%s\"", t)
		rw.WriteHeader(http.StatusAccepted)
	default:
		APIWriteError(rw, http.StatusServiceUnavailable, errors.New("asticontrol: utterance queue is full"))
	}
}

// handleWebsocketGET handles the websockets.
func (s *Server) handleWebsocketGET(rw http.ResponseWriter, r *http.Request, p httprouter.Params) {
	if err := s.ws.ServeHTTP(rw, r, s.adaptWebsocketClient); err != nil {
		if v, ok := errors.Cause(err).(*websocket.CloseError); !ok || (v.Code != websocket.CloseNoStatusReceived && v.Code != websocket.CloseNormalClosure) {
			astilog.Error(errors.Wrapf(err, "asticontrol: handling websocket on %s failed", s.o.Addr))
		}
		return
	}
}
