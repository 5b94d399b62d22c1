package callback

import (
	"context"
	"io"
	"log"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startListener(t *testing.T) *Listener {
	t.Helper()
	l, err := Listen("127.0.0.1:0", log.New(io.Discard, "", 0))
	require.NoError(t, err)
	t.Cleanup(func() { _ = l.Close() })
	return l
}

func TestListener_DeliversCodeAndState(t *testing.T) {
	l := startListener(t)
	require.True(t, strings.HasPrefix(l.RedirectURI(), "http://127.0.0.1:"))
	require.True(t, strings.HasSuffix(l.RedirectURI(), Path))

	resp, err := http.Get(l.RedirectURI() + "?code=abc&state=xyz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	res, err := l.Wait(ctx)
	require.NoError(t, err)
	assert.Equal(t, Result{Code: "abc", State: "xyz"}, res)
}

func TestListener_Errors(t *testing.T) {
	testCases := []struct {
		name           string
		query          string
		expectedStatus int
		expectedErr    string
	}{
		{
			name:           "provider denied access",
			query:          "?error=access_denied&error_description=user+cancelled",
			expectedStatus: http.StatusBadRequest,
			expectedErr:    "authorization denied: access_denied: user cancelled",
		},
		{
			name:           "missing state is rejected and keeps waiting",
			query:          "?code=abc",
			expectedStatus: http.StatusBadRequest,
			expectedErr:    context.DeadlineExceeded.Error(),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			l := startListener(t)

			resp, err := http.Get(l.RedirectURI() + tc.query)
			require.NoError(t, err)
			resp.Body.Close()
			assert.Equal(t, tc.expectedStatus, resp.StatusCode)

			ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
			defer cancel()
			_, err = l.Wait(ctx)
			require.Error(t, err)
			assert.Equal(t, tc.expectedErr, err.Error())
		})
	}
}

func TestListener_UnknownRoute(t *testing.T) {
	l := startListener(t)
	base := strings.TrimSuffix(l.RedirectURI(), Path)

	resp, err := http.Get(base + "/other")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
