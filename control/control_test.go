package asticontrol

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/asticode/go-astipink/abilities/hearing"
	"github.com/asticode/go-astipink/session"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockedSayer struct {
	said []string
}

func (s *mockedSayer) Say(i string) error {
	s.said = append(s.said, i)
	return nil
}

func newTestServer(o Options) (*Server, *httptest.Server) {
	o.Password = "password"
	o.Username = "username"
	if o.Timeout == 0 {
		o.Timeout = 10 * time.Millisecond
	}
	s := New(o)
	return s, httptest.NewServer(s.Handler())
}

func do(t *testing.T, ts *httptest.Server, method, path, body string) *http.Response {
	req, err := http.NewRequest(method, ts.URL+path, strings.NewReader(body))
	require.NoError(t, err)
	req.SetBasicAuth("username", "password")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func TestAuth(t *testing.T) {
	_, ts := newTestServer(Options{})
	defer ts.Close()
	resp, err := http.Get(ts.URL + "/api/ok")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp = do(t, ts, http.MethodGet, "/api/ok", "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestUtterances(t *testing.T) {
	s, ts := newTestServer(Options{QueueSize: 1})
	defer ts.Close()

	// Nothing queued
	text, err := s.Listen(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "", text)

	// Invalid
	resp := do(t, ts, http.MethodPost, "/api/utterances", "{")
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp = do(t, ts, http.MethodPost, "/api/utterances", `{"text":"  "}`)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Queued
	resp = do(t, ts, http.MethodPost, "/api/utterances", `{"text":" Pink Next "}`)
	resp.Body.Close()
	assert.Equal(t, http.StatusAccepted, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	// Full
	resp = do(t, ts, http.MethodPost, "/api/utterances", `{"text":"pink next"}`)
	resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	// Listen
	text, err = s.Listen(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "pink next", text)

	// Cancelled context
	s.o.Timeout = time.Hour
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	text, err = s.Listen(ctx)
	require.NoError(t, err)
	assert.Equal(t, "", text)
}

func TestSession(t *testing.T) {
	s, ts := newTestServer(Options{})
	defer ts.Close()
	ss := astisession.MustNew(astisession.DefaultLayout())
	ss.BeginSearch(astisession.Bounds{Width: 1000, Height: 1000})
	s.SetState(ss.State())
	resp := do(t, ts, http.MethodGet, "/api/session", "")
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var st astisession.State
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&st))
	assert.Len(t, st.Positions, 8)
	assert.Nil(t, st.Selected)
	require.NotNil(t, st.TopPlay)
	assert.Equal(t, astisession.Point{X: 600, Y: 180}, *st.TopPlay)
}

func TestCalibration(t *testing.T) {
	s, ts := newTestServer(Options{})
	defer ts.Close()
	resp := do(t, ts, http.MethodGet, "/api/calibration", "")
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	s.SetCalibration(astihearing.Calibration{MaxAudioLevel: 10, SuggestedMaxSilenceAudioLevel: 3})
	resp = do(t, ts, http.MethodGet, "/api/calibration", "")
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var c astihearing.Calibration
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&c))
	assert.Equal(t, 10.0, c.MaxAudioLevel)
	assert.Equal(t, 3.0, c.SuggestedMaxSilenceAudioLevel)
}

func TestSpeaker(t *testing.T) {
	s, ts := newTestServer(Options{})
	defer ts.Close()
	defer s.Close()

	// Connect
	h := http.Header{}
	req, _ := http.NewRequest(http.MethodGet, ts.URL, nil)
	req.SetBasicAuth("username", "password")
	h.Set("Authorization", req.Header.Get("Authorization"))
	c, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http")+"/websocket", h)
	require.NoError(t, err)
	defer c.Close()
	require.Eventually(t, func() bool { return s.Clients() == 1 }, time.Second, 5*time.Millisecond)

	// Say
	m := &mockedSayer{}
	sp := NewSpeaker(m, s)
	require.NoError(t, sp.Say("Skipped to next track."))
	assert.Equal(t, []string{"Skipped to next track."}, m.said)

	// Read
	require.NoError(t, c.SetReadDeadline(time.Now().Add(time.Second)))
	_, b, err := c.ReadMessage()
	require.NoError(t, err)
	assert.Contains(t, string(b), `"reply"`)
	assert.Contains(t, string(b), "Skipped to next track.")
}
