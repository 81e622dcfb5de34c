package httputil

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "shoplist/pkg/domain-errors"
)

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) map[string]json.RawMessage {
	t.Helper()
	var body map[string]json.RawMessage
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	return body
}

func TestWriteError(t *testing.T) {
	t.Run("internal error hides its message", func(t *testing.T) {
		w := httptest.NewRecorder()
		WriteError(w, errors.New("pq: connection refused"), nil)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		body := decodeEnvelope(t, w)
		var entries []ErrorEntry
		require.NoError(t, json.Unmarshal(body["errorMap"], &entries))
		require.Len(t, entries, 1)
		assert.Equal(t, "internalError", entries[0].Code)
		assert.NotContains(t, entries[0].Message, "pq")
		assert.JSONEq(t, "null", string(body["data"]))
	})

	t.Run("coded error carries status, message and details", func(t *testing.T) {
		w := httptest.NewRecorder()
		err := dErrors.New(dErrors.CodeInsufficientListRole, "caller role is insufficient").
			WithDetails(map[string]string{"role": "member"})
		WriteError(w, err, map[string]string{"listId": "x"})

		assert.Equal(t, http.StatusForbidden, w.Code)
		body := decodeEnvelope(t, w)
		assert.JSONEq(t, `[{"code":"insufficientListRole","message":"caller role is insufficient","details":{"role":"member"}}]`, string(body["errorMap"]))
		assert.JSONEq(t, `{"listId":"x"}`, string(body["dtoIn"]))
	})
}

func TestWriteJSON(t *testing.T) {
	w := httptest.NewRecorder()
	WriteJSON(w, http.StatusCreated, map[string]bool{"ok": true}, nil)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	body := decodeEnvelope(t, w)
	assert.JSONEq(t, `[]`, string(body["errorMap"]))
	assert.JSONEq(t, `{"ok":true}`, string(body["data"]))
}

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}

	t.Run("empty body yields zero value", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", nil)
		got, err := DecodeJSON[payload](r)
		require.NoError(t, err)
		assert.Empty(t, got.Name)
	})

	t.Run("unknown fields are ignored", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Groceries","color":"red"}`))
		got, err := DecodeJSON[payload](r)
		require.NoError(t, err)
		assert.Equal(t, "Groceries", got.Name)
	})

	t.Run("malformed body is a validation failure", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":`))
		_, err := DecodeJSON[payload](r)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	})
}
