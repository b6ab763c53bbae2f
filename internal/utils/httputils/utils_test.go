package httputils

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shivanshkc/pinterestauth/internal/utils/errutils"
)

func TestWrite(t *testing.T) {
	w := httptest.NewRecorder()
	Write(w, http.StatusCreated, map[string]string{"X-Mock": "value"}, map[string]string{"key": "value"})

	require.Equal(t, http.StatusCreated, w.Code)
	require.Equal(t, "value", w.Header().Get("X-Mock"))
	require.Equal(t, "application/json", w.Header().Get("Content-Type"))
	require.JSONEq(t, `{"key":"value"}`, w.Body.String())
}

func TestWrite_NilBody(t *testing.T) {
	w := httptest.NewRecorder()
	Write(w, http.StatusFound, map[string]string{"Location": "https://example.com"}, nil)

	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "https://example.com", w.Header().Get("Location"))
	require.Empty(t, w.Body.String())
}

func TestWriteErr(t *testing.T) {
	for _, tc := range []struct {
		name           string
		err            error
		expectedStatus int
		expectedCode   string
	}{
		{
			name:           "HTTP error",
			err:            errutils.BadRequest().WithReasonStr("mock reason"),
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "BAD_REQUEST",
		},
		{
			name:           "Unknown error",
			err:            errors.New("secret internal details"),
			expectedStatus: http.StatusInternalServerError,
			expectedCode:   "INTERNAL_SERVER_ERROR",
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			WriteErr(w, tc.err)

			require.Equal(t, tc.expectedStatus, w.Code)

			var body errutils.HTTPError
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			require.Equal(t, tc.expectedCode, body.Code)
			require.NotContains(t, w.Body.String(), "secret")
		})
	}
}

func TestIs2xx(t *testing.T) {
	require.True(t, Is2xx(http.StatusOK))
	require.True(t, Is2xx(http.StatusNoContent))
	require.False(t, Is2xx(http.StatusFound))
	require.False(t, Is2xx(http.StatusBadRequest))
}
