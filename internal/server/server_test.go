package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubInterpreter struct {
	reply string
	err   error
	name  string
}

func (s *stubInterpreter) Interpret(_ context.Context, userText, userName string) (string, error) {
	s.name = userName
	return s.reply, s.err
}

func newTestServer(t *testing.T, interp Interpreter) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(New(Config{Debug: false}, interp, nil).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func postChat(t *testing.T, srv *httptest.Server, body string) (*http.Response, map[string]string) {
	t.Helper()
	resp, err := http.Post(srv.URL+"/chat", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	var decoded map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp, decoded
}

func TestChatPlainReply(t *testing.T) {
	interp := &stubInterpreter{reply: "Hi Ada, how can I help?"}
	srv := newTestServer(t, interp)

	resp, body := postChat(t, srv, `{"message":"hello","name":"Ada"}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Hi Ada, how can I help?", body["reply"])
	assert.Equal(t, "text", body["kind"])
	assert.Equal(t, "Ada", interp.name, "display name forwarded to the interpreter")
}

func TestChatStructuredReplyTagged(t *testing.T) {
	interp := &stubInterpreter{reply: `{"command":"webSearch","args":{"query":"go"}}`}
	srv := newTestServer(t, interp)

	resp, body := postChat(t, srv, `{"message":"search go"}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, interp.reply, body["reply"], "structured reply passes through as a string")
	assert.Equal(t, "command", body["kind"])
}

func TestChatRejectsEmptyMessage(t *testing.T) {
	srv := newTestServer(t, &stubInterpreter{})

	resp, body := postChat(t, srv, `{"message":"   "}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.NotEmpty(t, body["error"])

	resp, body = postChat(t, srv, `not json`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.NotEmpty(t, body["error"])
}

func TestChatModelFailureReturns500(t *testing.T) {
	srv := newTestServer(t, &stubInterpreter{err: errors.New("quota exceeded")})

	resp, body := postChat(t, srv, `{"message":"hello"}`)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "Something went wrong with the AI model.", body["error"])
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t, &stubInterpreter{})

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestMetricsExposeOutcomes(t *testing.T) {
	srv := newTestServer(t, &stubInterpreter{reply: "hi"})
	postChat(t, srv, `{"message":"hello"}`)

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	text := string(raw)
	assert.Contains(t, text, `sentry_interpretations_total{kind="text"} 1`)
	assert.Contains(t, text, `sentry_http_requests_total`)
}

func TestChatWebSocketRoundTrip(t *testing.T) {
	srv := newTestServer(t, &stubInterpreter{reply: "Hello there."})

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/chat/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.WriteJSON(map[string]string{"message": "hi", "name": "Ada"}))

	var reply map[string]string
	require.NoError(t, conn.ReadJSON(&reply))
	assert.Equal(t, "Hello there.", reply["reply"])
	assert.Equal(t, "text", reply["kind"])

	// An empty message over the socket answers with an error document,
	// not a closed connection.
	require.NoError(t, conn.WriteJSON(map[string]string{"message": ""}))
	require.NoError(t, conn.ReadJSON(&reply))
	assert.NotEmpty(t, reply["error"])
}
