//go:build unit || e2e

package httptest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// errorEnvelope mirrors httperr.Response as it crosses the wire.
type errorEnvelope struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
	Detail struct {
		Conflito []struct {
			ID     string `json:"id"`
			Titulo string `json:"titulo"`
		} `json:"conflito"`
	} `json:"detail"`
}

func AssertSuccessResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, targetStruct any) {
	t.Helper()

	if !assert.Equal(t, expectedStatus, w.Code,
		fmt.Sprintf("Expected status %d, got %d. Response: %s", expectedStatus, w.Code, w.Body.String())) {
		return
	}

	if expectedStatus >= 200 && expectedStatus < 300 && targetStruct != nil {
		err := json.Unmarshal(w.Body.Bytes(), targetStruct)
		assert.NoError(t, err, fmt.Sprintf("Failed to decode response JSON: %s", w.Body.String()))
	}
}

func AssertErrorResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, expectedErrorMsg string) {
	t.Helper()

	assert.Equal(t, expectedStatus, w.Code,
		fmt.Sprintf("Expected status %d, got %d", expectedStatus, w.Code))

	envelope := decodeErrorEnvelope(t, w)
	if expectedErrorMsg != "" {
		assert.Contains(t, envelope.Error.Message, expectedErrorMsg,
			"Response error message doesn't contain expected text")
	}
}

// AssertConflictResponse checks a 409 booking collision and returns the
// titles of the blocking reservations from the conflito detail.
func AssertConflictResponse(t *testing.T, w *httptest.ResponseRecorder) []string {
	t.Helper()

	require.Equal(t, http.StatusConflict, w.Code,
		fmt.Sprintf("Expected status 409, got %d. Response: %s", w.Code, w.Body.String()))

	envelope := decodeErrorEnvelope(t, w)
	require.NotEmpty(t, envelope.Detail.Conflito,
		"409 response is missing the conflito detail")

	titles := make([]string, len(envelope.Detail.Conflito))
	for i, c := range envelope.Detail.Conflito {
		titles[i] = c.Titulo
	}
	return titles
}

func decodeErrorEnvelope(t *testing.T, w *httptest.ResponseRecorder) errorEnvelope {
	t.Helper()

	var envelope errorEnvelope
	err := json.Unmarshal(w.Body.Bytes(), &envelope)
	assert.NoError(t, err, fmt.Sprintf("Failed to decode error response JSON: %s", w.Body.String()))
	return envelope
}
