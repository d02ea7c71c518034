package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) APIResponse {
	t.Helper()
	var resp APIResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func TestWriteResponseSuccess(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteResponse(rec, http.StatusOK, map[string]string{"name": "prover-node-a1"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	resp := decode(t, rec)
	assert.Equal(t, "success", resp.Status)
	assert.Empty(t, resp.Message)
	assert.NotNil(t, resp.Data)
}

func TestWriteResponseError(t *testing.T) {
	tests := []struct {
		name    string
		payload interface{}
		want    string
	}{
		{"error value", errors.New("node id must not be empty"), "node id must not be empty"},
		{"plain string", "no such node", "no such node"},
		{"other", 42, "42"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			WriteResponse(rec, http.StatusBadRequest, tt.payload)

			resp := decode(t, rec)
			assert.Equal(t, "error", resp.Status)
			assert.Equal(t, tt.want, resp.Message)
			assert.Nil(t, resp.Data)
		})
	}
}
