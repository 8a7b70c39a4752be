package lichess

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedRequest struct {
	method      string
	path        string
	auth        string
	contentType string
	body        string
}

func recordingServer(t *testing.T, status int, response string) (*httptest.Server, *recordedRequest) {
	t.Helper()

	rec := &recordedRequest{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		rec.method = r.Method
		rec.path = r.URL.Path
		rec.auth = r.Header.Get("Authorization")
		rec.contentType = r.Header.Get("Content-Type")
		rec.body = string(body)

		w.WriteHeader(status)
		fmt.Fprint(w, response)
	}))
	t.Cleanup(srv.Close)
	return srv, rec
}

func TestRequestsCarryBearerToken(t *testing.T) {
	srv, rec := recordingServer(t, http.StatusOK, `{"id":"bot1","username":"Bot1","title":"BOT"}`)
	client := NewClientWithHost("sekrit", srv.URL)

	account, err := client.GetAccount()
	require.NoError(t, err)

	assert.Equal(t, http.MethodGet, rec.method)
	assert.Equal(t, "/api/account", rec.path)
	assert.Equal(t, "Bearer sekrit", rec.auth)
	assert.Equal(t, "bot1", account.ID)
	assert.True(t, account.IsBot())
}

func TestPostsAreFormEncoded(t *testing.T) {
	srv, rec := recordingServer(t, http.StatusOK, `{"ok":true}`)
	client := NewClientWithHost("sekrit", srv.URL)

	require.NoError(t, client.AcceptChallenge("ch123"))

	assert.Equal(t, http.MethodPost, rec.method)
	assert.Equal(t, "/api/challenge/ch123/accept", rec.path)
	assert.Equal(t, "application/x-www-form-urlencoded", rec.contentType)
}

func TestDeclineChallengePath(t *testing.T) {
	srv, rec := recordingServer(t, http.StatusOK, `{"ok":true}`)
	client := NewClientWithHost("sekrit", srv.URL)

	require.NoError(t, client.DeclineChallenge("ch123"))
	assert.Equal(t, "/api/challenge/ch123/decline", rec.path)
}

func TestPostMovePathEncodesMove(t *testing.T) {
	srv, rec := recordingServer(t, http.StatusOK, `{"ok":true}`)
	client := NewClientWithHost("sekrit", srv.URL)

	require.NoError(t, client.PostMove("g1", "e7e8q"))

	assert.Equal(t, http.MethodPost, rec.method)
	assert.Equal(t, "/api/bot/game/g1/move/e7e8q", rec.path)
}

func TestAPIErrorCarriesRemotePayload(t *testing.T) {
	srv, _ := recordingServer(t, http.StatusBadRequest, `{"error":"This game cannot be joined"}`)
	client := NewClientWithHost("sekrit", srv.URL)

	err := client.AcceptChallenge("ch123")
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "This game cannot be joined", apiErr.Message)
}

func TestAPIErrorWithoutPayloadFallsBackToStatusText(t *testing.T) {
	srv, _ := recordingServer(t, http.StatusInternalServerError, "")
	client := NewClientWithHost("sekrit", srv.URL)

	err := client.PostMove("g1", "e2e4")

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.Equal(t, "Internal Server Error", apiErr.Message)
}

func TestGetGameDecodesPlayers(t *testing.T) {
	srv, rec := recordingServer(t, http.StatusOK,
		`{"id":"g1","status":"started","players":{"white":{"user":{"id":"bot1","name":"Bot1"},"rating":1500},"black":{"user":{"id":"alice","name":"Alice"},"rating":1800}}}`)
	client := NewClientWithHost("sekrit", srv.URL)

	info, err := client.GetGame("g1")
	require.NoError(t, err)

	assert.Equal(t, "/api/game/g1", rec.path)
	assert.Equal(t, "bot1", info.Players.White.User.ID)
	assert.Equal(t, "alice", info.Players.Black.User.ID)
	assert.Equal(t, 1800, info.Players.Black.Rating)
}
