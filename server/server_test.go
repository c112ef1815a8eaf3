package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voyagent/voyagent/components"
	"github.com/voyagent/voyagent/schema"
)

// echoDelegate replies with a canned transform of the user message.
type echoDelegate struct {
	calls int
	fail  bool
}

func (d *echoDelegate) Run(ctx context.Context, input *schema.Input, output *schema.Output, apiResp *components.ApiResponse) error {
	d.calls++
	if d.fail {
		return errors.New("model unreachable")
	}
	output.ChatMessage = "echo: " + input.ChatMessage
	output.SuggestedQuestions = []string{"Anything else?"}
	if apiResp != nil {
		apiResp.Usage = &components.ApiUsage{InputTokens: 3, OutputTokens: 4}
	}
	return nil
}

func newTestServer(delegate Delegate) (*Server, *httptest.Server) {
	store := NewStore(func() Delegate { return delegate })
	srv := New(store)
	return srv, httptest.NewServer(srv.Handler())
}

func postChat(t *testing.T, url, sessionID, message string) (*http.Response, chatResponse) {
	t.Helper()
	body := fmt.Sprintf(`{"session_id":%q,"message":%q}`, sessionID, message)
	res, err := http.Post(url+"/api/chat", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer res.Body.Close()
	var parsed chatResponse
	require.NoError(t, json.NewDecoder(res.Body).Decode(&parsed))
	return res, parsed
}

func TestChat(t *testing.T) {
	delegate := new(echoDelegate)
	srv, ts := newTestServer(delegate)
	defer ts.Close()

	res, reply := postChat(t, ts.URL, "", "hello")
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.NotEmpty(t, reply.SessionID)
	assert.Equal(t, "echo: hello", reply.Reply)
	assert.Equal(t, []string{"Anything else?"}, reply.SuggestedQuestions)
	require.NotNil(t, reply.Usage)
	assert.Equal(t, 3, reply.Usage.InputTokens)
	assert.Equal(t, 1, delegate.calls)
	assert.EqualValues(t, 1, srv.Requests())
}

func TestChatKeepsSession(t *testing.T) {
	srv, ts := newTestServer(new(echoDelegate))
	defer ts.Close()

	_, first := postChat(t, ts.URL, "", "hello")
	_, second := postChat(t, ts.URL, first.SessionID, "again")
	assert.Equal(t, first.SessionID, second.SessionID)
	assert.EqualValues(t, 1, srv.store.Created())
}

func TestChatInvalidRequests(t *testing.T) {
	_, ts := newTestServer(new(echoDelegate))
	defer ts.Close()

	res, err := http.Post(ts.URL+"/api/chat", "application/json", strings.NewReader("{not json"))
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	res, reply := postChat(t, ts.URL, "", "")
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Empty(t, reply.Reply)

	res, err = http.Get(ts.URL + "/api/chat")
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, res.StatusCode)
}

func TestChatDelegateFailure(t *testing.T) {
	delegate := &echoDelegate{fail: true}
	_, ts := newTestServer(delegate)
	defer ts.Close()

	res, err := http.Post(ts.URL+"/api/chat", "application/json", strings.NewReader(`{"message":"hello"}`))
	require.NoError(t, err)
	defer res.Body.Close()
	assert.Equal(t, http.StatusBadGateway, res.StatusCode)
	var parsed errorResponse
	require.NoError(t, json.NewDecoder(res.Body).Decode(&parsed))
	assert.NotContains(t, parsed.Error, "model unreachable")
}

func TestHistoryTurnOrder(t *testing.T) {
	_, ts := newTestServer(new(echoDelegate))
	defer ts.Close()

	_, first := postChat(t, ts.URL, "", "where to?")
	postChat(t, ts.URL, first.SessionID, "somewhere warm")

	res, err := http.Get(ts.URL + "/api/history?session_id=" + first.SessionID)
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)
	var history historyResponse
	require.NoError(t, json.NewDecoder(res.Body).Decode(&history))
	require.Len(t, history.Turns, 4)
	roles := make([]string, 0, 4)
	texts := make([]string, 0, 4)
	for _, turn := range history.Turns {
		roles = append(roles, turn.Role)
		texts = append(texts, turn.Text)
	}
	assert.Equal(t, []string{components.UserRole, components.AssistantRole, components.UserRole, components.AssistantRole}, roles)
	assert.Equal(t, []string{"where to?", "echo: where to?", "somewhere warm", "echo: somewhere warm"}, texts)
}

func TestHistoryFailedTurnKeepsUserMessage(t *testing.T) {
	delegate := new(echoDelegate)
	_, ts := newTestServer(delegate)
	defer ts.Close()

	_, first := postChat(t, ts.URL, "", "hello")
	delegate.fail = true
	postChat(t, ts.URL, first.SessionID, "broken turn")

	res, err := http.Get(ts.URL + "/api/history?session_id=" + first.SessionID)
	require.NoError(t, err)
	defer res.Body.Close()
	var history historyResponse
	require.NoError(t, json.NewDecoder(res.Body).Decode(&history))
	require.Len(t, history.Turns, 3)
	assert.Equal(t, "broken turn", history.Turns[2].Text)
	assert.Equal(t, components.UserRole, history.Turns[2].Role)
}

func TestHistoryInvalidRequests(t *testing.T) {
	_, ts := newTestServer(new(echoDelegate))
	defer ts.Close()

	res, err := http.Get(ts.URL + "/api/history")
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	res, err = http.Get(ts.URL + "/api/history?session_id=unknown")
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestIndexPage(t *testing.T) {
	_, ts := newTestServer(new(echoDelegate))
	defer ts.Close()

	res, err := http.Get(ts.URL + "/")
	require.NoError(t, err)
	defer res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, res.Header.Get("Content-Type"), "text/html")

	res, err = http.Get(ts.URL + "/nope")
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}
