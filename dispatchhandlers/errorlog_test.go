package dispatchhandlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vitalvas/relay/dispatch"
)

func TestErrorLog(t *testing.T) {
	t.Run("records and re-signals the error", func(t *testing.T) {
		app := dispatch.NewApp()
		app.Use(func(_ http.ResponseWriter, _ *http.Request, next dispatch.NextFunc) {
			next(errors.New("kaput"))
		})

		var logged error
		app.UseError(ErrorLog(ErrorLogConfig{
			LogFunc: func(_ *http.Request, err error) {
				logged = err
			},
		}))

		var consumed error
		app.UseError(func(err error, w http.ResponseWriter, _ *http.Request, _ dispatch.NextFunc) {
			consumed = err
			w.WriteHeader(http.StatusBadGateway)
		})

		w := httptest.NewRecorder()
		app.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		require.Error(t, logged)
		assert.Equal(t, "kaput", logged.Error())
		assert.Equal(t, logged, consumed)
		assert.Equal(t, http.StatusBadGateway, w.Code)
	})

	t.Run("nil LogFunc only re-signals", func(t *testing.T) {
		app := dispatch.NewApp()
		app.Use(func(_ http.ResponseWriter, _ *http.Request, next dispatch.NextFunc) {
			next(errors.New("kaput"))
		})
		app.UseError(ErrorLog(ErrorLogConfig{}))

		w := httptest.NewRecorder()
		app.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})

	t.Run("not invoked during normal flow", func(t *testing.T) {
		app := dispatch.NewApp()

		var called bool
		app.UseError(ErrorLog(ErrorLogConfig{
			LogFunc: func(_ *http.Request, _ error) {
				called = true
			},
		}))
		app.Use(func(w http.ResponseWriter, _ *http.Request, _ dispatch.NextFunc) {
			w.WriteHeader(http.StatusOK)
		})

		w := httptest.NewRecorder()
		app.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.False(t, called)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}
