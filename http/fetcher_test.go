package http_test

import (
	"context"
	"fmt"
	nethttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/lmertens/annuaire"
	annuairehttp "github.com/lmertens/annuaire/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("returns body for 200", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
			assert.Contains(t, r.Header.Get("User-Agent"), "annuaire")
			fmt.Fprint(w, "<html><body>ok</body></html>")
		}))
		t.Cleanup(srv.Close)

		f := annuairehttp.NewFetcher()
		t.Cleanup(func() { f.Close() })

		html, err := f.Fetch(context.Background(), srv.URL)
		require.NoError(t, err)
		assert.Contains(t, html, "ok")
	})

	t.Run("non-200 status is an error", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
			w.WriteHeader(nethttp.StatusNotFound)
		}))
		t.Cleanup(srv.Close)

		f := annuairehttp.NewFetcher()
		_, err := f.Fetch(context.Background(), srv.URL)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "HTTP 404")
	})

	t.Run("429 maps to ERATELIMIT", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
			w.WriteHeader(nethttp.StatusTooManyRequests)
		}))
		t.Cleanup(srv.Close)

		f := annuairehttp.NewFetcher()
		_, err := f.Fetch(context.Background(), srv.URL)
		require.Error(t, err)
		assert.Equal(t, annuaire.ERATELIMIT, annuaire.ErrorCode(err))
	})

	t.Run("context cancellation aborts the request", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
			time.Sleep(time.Second)
		}))
		t.Cleanup(srv.Close)

		f := annuairehttp.NewFetcher()
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()

		_, err := f.Fetch(ctx, srv.URL)
		require.Error(t, err)
	})

	t.Run("close is a no-op", func(t *testing.T) {
		t.Parallel()

		f := annuairehttp.NewFetcher(annuairehttp.WithTimeout(time.Second))
		assert.NoError(t, f.Close())
	})
}
