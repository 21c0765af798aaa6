package response

import (
	"encoding/json/v2"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/cinematicapp/cinematic-server/internal/errors"
	"github.com/cinematicapp/cinematic-server/internal/store"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func decodeEnvelope(t *testing.T, body []byte) Envelope {
	t.Helper()
	var env Envelope
	require.NoError(t, json.Unmarshal(body, &env))
	return env
}

func TestSuccess(t *testing.T) {
	w := httptest.NewRecorder()
	Success(w, map[string]string{"id": "abc"}, testLogger())

	assert.Equal(t, 200, w.Code)
	assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))

	env := decodeEnvelope(t, w.Body.Bytes())
	assert.Equal(t, Version, env.V)
	assert.True(t, env.Success)
	assert.NotNil(t, env.Data)
	assert.Empty(t, env.Error)
}

func TestError(t *testing.T) {
	w := httptest.NewRecorder()
	Error(w, 400, "bad input", testLogger())

	assert.Equal(t, 400, w.Code)

	env := decodeEnvelope(t, w.Body.Bytes())
	assert.False(t, env.Success)
	assert.Equal(t, "bad input", env.Error)
	assert.Nil(t, env.Data)
}

func TestNoContent(t *testing.T) {
	w := httptest.NewRecorder()
	NoContent(w)

	assert.Equal(t, 204, w.Code)
	assert.Empty(t, w.Body.Bytes())
}

func TestTooManyRequests(t *testing.T) {
	w := httptest.NewRecorder()
	TooManyRequests(w, "slow down", testLogger())

	assert.Equal(t, 429, w.Code)
	env := decodeEnvelope(t, w.Body.Bytes())
	assert.Equal(t, "slow down", env.Error)
}

func TestHandleError_DomainError(t *testing.T) {
	w := httptest.NewRecorder()
	HandleError(w, domainerrors.NotAuthenticated("no active session"), testLogger())

	assert.Equal(t, 401, w.Code)
	env := decodeEnvelope(t, w.Body.Bytes())
	assert.Equal(t, "no active session", env.Error)
}

func TestHandleError_StoreError(t *testing.T) {
	w := httptest.NewRecorder()
	HandleError(w, store.ErrNotFound, testLogger())

	assert.Equal(t, 404, w.Code)
	env := decodeEnvelope(t, w.Body.Bytes())
	assert.False(t, env.Success)
}

func TestHandleError_UnknownError(t *testing.T) {
	w := httptest.NewRecorder()
	HandleError(w, assert.AnError, testLogger())

	assert.Equal(t, 500, w.Code)
}
