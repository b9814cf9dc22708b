package api_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/moderation/internal/api"
	"github.com/udisondev/moderation/internal/config"
	"github.com/udisondev/moderation/internal/testutil"
)

func TestServer_ServeAndShutdown(t *testing.T) {
	ts := newTestServer(t)
	ln, addr := testutil.ListenTCP(t)

	srv := api.NewServer(ts.handler, config.DefaultServer().HTTP, slog.New(slog.DiscardHandler))

	ctx, cancel := context.WithCancel(t.Context())
	done := make(chan error, 1)
	go func() {
		done <- srv.Serve(ctx, ln)
	}()
	require.NoError(t, testutil.WaitForTCPReady(addr, 5*time.Second))

	resp, err := http.Get("http://" + addr + "/api/v1/health")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"ok"}`, string(body))

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
