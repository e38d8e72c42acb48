// Package asticontrol exposes the assistant through an HTTP API and a websocket reply feed.
//
// The server never interprets anything itself: utterances posted to the API are queued and
// consumed by the assistant loop through Listen.
package asticontrol

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/asticode/go-astilog"
	"github.com/asticode/go-astipink/abilities/hearing"
	"github.com/asticode/go-astipink/session"
	"github.com/asticode/go-astitools/http"
	"github.com/asticode/go-astiws"
	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
)

// Server patterns
const (
	serverPatternAPI = "/api"
)

// Options represents server options
type Options struct {
	Addr           string        `toml:"addr"`
	MaxMessageSize int           `toml:"max_message_size"`
	Password       string        `toml:"password"`
	QueueSize      int           `toml:"queue_size"`
	Timeout        time.Duration `toml:"timeout"`
	Username       string        `toml:"username"`
}

// DefaultOptions returns the default options
func DefaultOptions() Options {
	return Options{
		Addr:           "127.0.0.1:4000",
		MaxMessageSize: 4096,
		QueueSize:      10,
		Timeout:        5 * time.Second,
	}
}

// Server is the control server
type Server struct {
	calibration *astihearing.Calibration
	h           http.Handler
	m           *sync.Mutex // Locks calibration and state
	o           Options
	q           chan string
	s           *http.Server
	state       astisession.State
	ws          *astiws.Manager
}

// New creates a new server
func New(o Options) (s *Server) {
	// Create server
	if o.QueueSize <= 0 {
		o.QueueSize = DefaultOptions().QueueSize
	}
	s = &Server{
		m:  &sync.Mutex{},
		o:  o,
		q:  make(chan string, o.QueueSize),
		ws: astiws.NewManager(astiws.ManagerConfiguration{MaxMessageSize: o.MaxMessageSize}),
	}

	// Init router
	var r = httprouter.New()

	// Websockets
	r.GET("/websocket", s.handleWebsocketGET)

	// API
	r.GET(serverPatternAPI+"/calibration", s.handleAPICalibrationGET)
	r.GET(serverPatternAPI+"/ok", s.handleAPIOKGET)
	r.GET(serverPatternAPI+"/session", s.handleAPISessionGET)
	r.POST(serverPatternAPI+"/utterances", s.handleAPIUtterancesPOST)

	// Chain middlewares
	var h = astihttp.ChainMiddlewares(r, astihttp.MiddlewareBasicAuth(o.Username, o.Password))
	h = astihttp.ChainMiddlewaresWithPrefix(h, []string{serverPatternAPI + "/"}, astihttp.MiddlewareContentType("application/json"))

	// Set handler
	s.h = h
	s.s = &http.Server{Addr: o.Addr, Handler: h}
	return
}

// Handler returns the server handler
func (s *Server) Handler() http.Handler {
	return s.h
}

// Serve serves until the context is cancelled
func (s *Server) Serve(ctx context.Context) (err error) {
	// Shut down when the context is done
	go func() {
		<-ctx.Done()
		if err := s.s.Shutdown(context.Background()); err != nil {
			astilog.Error(errors.Wrap(err, "asticontrol: shutting down server failed"))
		}
	}()

	// Serve
	astilog.Infof("asticontrol: serving on %s", s.s.Addr)
	if err = s.s.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		err = errors.Wrapf(err, "asticontrol: serving on %s failed", s.s.Addr)
		return
	}
	return nil
}

// Close implements the io.Closer interface
func (s *Server) Close() (err error) {
	astilog.Debug("asticontrol: closing ws")
	if err = s.ws.Close(); err != nil {
		err = errors.Wrap(err, "asticontrol: closing ws failed")
		return
	}
	return
}

// Clients returns the number of connected websocket clients
func (s *Server) Clients() int {
	return s.ws.CountClients()
}

// SetCalibration stores the last calibration results
func (s *Server) SetCalibration(c astihearing.Calibration) {
	s.m.Lock()
	defer s.m.Unlock()
	s.calibration = &c
}

// SetState stores a snapshot of the search session
func (s *Server) SetState(st astisession.State) {
	s.m.Lock()
	defer s.m.Unlock()
	s.state = st
}
