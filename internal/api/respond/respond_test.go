package respond

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/arise/internal/apperr"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{&apperr.NotFoundError{Kind: "user", ID: "x"}, http.StatusNotFound},
		{fmt.Errorf("wrapped: %w", &apperr.NotFoundError{Kind: "quest", ID: "q"}), http.StatusNotFound},
		{&apperr.ValidationError{Field: "content", Reason: "short"}, http.StatusBadRequest},
		{&apperr.UpstreamUnavailableError{Service: "transcription"}, http.StatusServiceUnavailable},
		{&apperr.InvariantViolationError{Detail: "bad"}, http.StatusInternalServerError},
		{errors.New("disk full"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StatusFor(tt.err), "%v", tt.err)
	}
}

func TestWriteErr_HidesInternalDetail(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteErr(rr, zerolog.Nop(), errors.New("sql: connection refused"))

	require.Equal(t, http.StatusInternalServerError, rr.Code)
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "internal error", body.Message)
	assert.Equal(t, 500, body.Code)
}

func TestWriteErr_ClientError(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteErr(rr, zerolog.Nop(), &apperr.ValidationError{Field: "content", Reason: "must be at least 10 characters"})

	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "Bad Request", body.Error)
	assert.Contains(t, body.Message, "content")
}
