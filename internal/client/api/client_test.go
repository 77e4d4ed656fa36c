package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/signage/internal/common"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL, 5*time.Second)
}

func jsonHandler(t *testing.T, status int, body any) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		require.NoError(t, json.NewEncoder(w).Encode(body))
	})
}

func TestHasPassword(t *testing.T) {
	var gotAction string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/auth", r.URL.Path)

		var payload map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		gotAction, _ = payload["action"].(string)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"hasPassword":true}`))
	}))

	has, err := c.HasPassword(context.Background())
	require.NoError(t, err)
	assert.True(t, has)
	assert.Equal(t, "check", gotAction)
}

func TestSetupPassword(t *testing.T) {
	t.Run("success returns token", func(t *testing.T) {
		c := newTestClient(t, jsonHandler(t, http.StatusOK, map[string]any{
			"success": true, "authenticated": true, "token": "tok-1",
		}))

		token, err := c.SetupPassword(context.Background(), "secret")
		require.NoError(t, err)
		assert.Equal(t, "tok-1", token)
	})

	t.Run("weak password maps to sentinel", func(t *testing.T) {
		c := newTestClient(t, jsonHandler(t, http.StatusBadRequest, map[string]any{
			"error": "Password must be at least 4 characters", "code": "weak_password",
		}))

		_, err := c.SetupPassword(context.Background(), "abc")
		assert.ErrorIs(t, err, common.ErrWeakPassword)
	})
}

func TestLogin(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		c := newTestClient(t, jsonHandler(t, http.StatusOK, map[string]any{
			"success": true, "authenticated": true, "token": "tok-2",
		}))

		token, err := c.Login(context.Background(), "secret")
		require.NoError(t, err)
		assert.Equal(t, "tok-2", token)
	})

	t.Run("wrong password", func(t *testing.T) {
		c := newTestClient(t, jsonHandler(t, http.StatusUnauthorized, map[string]any{
			"error": "Invalid password", "code": "unauthorized",
		}))

		_, err := c.Login(context.Background(), "nope")
		assert.ErrorIs(t, err, common.ErrUnauthorized)
	})

	t.Run("server unreachable", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		srv.Close()
		c := New(srv.URL, time.Second)

		_, err := c.Login(context.Background(), "secret")
		assert.ErrorIs(t, err, common.ErrStoreUnavailable)
	})
}

func TestRotate_SendsBearerToken(t *testing.T) {
	var gotAuth string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"authenticated":true,"token":"tok-3"}`))
	}))

	require.NoError(t, c.Rotate(context.Background(), "tok-old", "old", "new"))
	assert.Equal(t, "Bearer tok-old", gotAuth)
}

func TestUpload(t *testing.T) {
	t.Run("sends multipart form with declared type", func(t *testing.T) {
		c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))

			require.NoError(t, r.ParseMultipartForm(10<<20))
			assert.Equal(t, "4", r.FormValue("screenId"))

			file, header, err := r.FormFile("file")
			require.NoError(t, err)
			defer file.Close()
			assert.Equal(t, "menu.png", header.Filename)
			assert.Equal(t, "image/png", header.Header.Get("Content-Type"))

			data, err := io.ReadAll(file)
			require.NoError(t, err)
			assert.Equal(t, []byte("fake-png"), data)

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"success":true,"url":"https://store.example/screen-4-menu.png","filename":"screen-4-menu.png"}`))
		}))

		url, err := c.Upload(context.Background(), "tok", "4", "menu.png", "image/png", []byte("fake-png"))
		require.NoError(t, err)
		assert.Equal(t, "https://store.example/screen-4-menu.png", url)
	})

	t.Run("rejection maps to sentinel", func(t *testing.T) {
		c := newTestClient(t, jsonHandler(t, http.StatusBadRequest, map[string]any{
			"error": "File must be an image", "code": "invalid_type",
		}))

		_, err := c.Upload(context.Background(), "tok", "4", "menu.txt", "text/plain", []byte("x"))
		assert.ErrorIs(t, err, common.ErrInvalidType)
	})

	t.Run("missing session", func(t *testing.T) {
		c := newTestClient(t, jsonHandler(t, http.StatusUnauthorized, map[string]any{
			"error": "Unauthorized", "code": "unauthorized",
		}))

		_, err := c.Upload(context.Background(), "", "4", "menu.png", "image/png", []byte("x"))
		assert.ErrorIs(t, err, common.ErrUnauthorized)
	})
}

func TestScreens(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/screens", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("count"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":"1","name":"Screen 1","bgColor":"from-orange-600 to-red-700","isActive":true},{"id":"2","name":"Screen 2","bgColor":"from-green-600 to-blue-700","isActive":true}]`))
	}))

	screens, err := c.Screens(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, screens, 2)
	assert.Equal(t, "Screen 1", screens[0].Name)
	assert.True(t, screens[1].Active)
}

func TestResolveMenu(t *testing.T) {
	t.Run("existing asset", func(t *testing.T) {
		c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, "7", r.URL.Query().Get("screenId"))
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"url":"https://store.example/screen-7-menu.jpg","exists":true}`))
		}))

		url, err := c.ResolveMenu(context.Background(), "7")
		require.NoError(t, err)
		assert.Equal(t, "https://store.example/screen-7-menu.jpg", url)
	})

	t.Run("no asset yet", func(t *testing.T) {
		c := newTestClient(t, jsonHandler(t, http.StatusOK, map[string]any{
			"url": nil, "exists": false,
		}))

		_, err := c.ResolveMenu(context.Background(), "7")
		assert.ErrorIs(t, err, common.ErrNotFound)
	})

	t.Run("store outage", func(t *testing.T) {
		c := newTestClient(t, jsonHandler(t, http.StatusServiceUnavailable, map[string]any{
			"error": "store unavailable", "code": "store_unavailable",
		}))

		_, err := c.ResolveMenu(context.Background(), "7")
		assert.ErrorIs(t, err, common.ErrStoreUnavailable)
	})
}
