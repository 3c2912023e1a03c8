package serve

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vitalvas/relay/dispatch"
)

func TestNewServer(t *testing.T) {
	t.Run("rejects invalid config", func(t *testing.T) {
		_, err := NewServer(Config{}, http.NotFoundHandler())
		assert.ErrorIs(t, err, ErrNoAddr)
	})

	t.Run("accepts defaults", func(t *testing.T) {
		srv, err := NewServer(DefaultConfig(), http.NotFoundHandler())
		require.NoError(t, err)
		assert.Nil(t, srv.Addr())
	})
}

func TestServerServe(t *testing.T) {
	app := dispatch.NewApp()
	app.UseAt("/ping", func(w http.ResponseWriter, _ *http.Request, _ dispatch.NextFunc) {
		fmt.Fprint(w, "pong")
	})

	cfg := DefaultConfig()
	cfg.Addr = "127.0.0.1:0"
	cfg.MaxConnections = 4

	srv, err := NewServer(cfg, app)
	require.NoError(t, err)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	// Wait for the listener to bind.
	var addr string
	require.Eventually(t, func() bool {
		if a := srv.Addr(); a != nil {
			addr = a.String()
			return true
		}
		return false
	}, time.Second, 5*time.Millisecond)

	resp, err := http.Get("http://" + addr + "/ping")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "pong", string(body))

	resp2, err := http.Get("http://" + addr + "/missing")
	require.NoError(t, err)
	resp2.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp2.StatusCode)

	require.NoError(t, srv.Shutdown(context.Background()))

	select {
	case err := <-errCh:
		assert.ErrorIs(t, err, http.ErrServerClosed)
	case <-time.After(time.Second):
		t.Fatal("server did not stop after shutdown")
	}
}
