package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/signage/internal/server/assets"
)

func TestUpload_RequiresSession(t *testing.T) {
	ts := newTestServer(t, newMemStore())

	body, contentType := multipartUpload(t, "3", "menu.png", "image/png", []byte("png"))
	resp, parsed := doUpload(t, ts, "", body, contentType)

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "unauthorized", parsed["code"])
}

func TestUpload_HappyPath(t *testing.T) {
	store := newMemStore()
	ts := newTestServer(t, store)
	token := setupSession(t, ts, "hunter42")

	body, contentType := multipartUpload(t, "3", "dinner.png", "image/png", []byte("png-bytes"))
	resp, parsed := doUpload(t, ts, token, body, contentType)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, parsed["success"])
	assert.Equal(t, "ref://screen-3-menu.png", parsed["url"])
	assert.Equal(t, "screen-3-menu.png", parsed["filename"])
	assert.Contains(t, store.objects, "screen-3-menu.png")
}

func TestUpload_ValidationErrors(t *testing.T) {
	tests := []struct {
		name     string
		screenID string
		filename string
		mimeType string
		data     []byte
		wantCode string
	}{
		{
			name:     "missing file",
			screenID: "3",
			wantCode: "no_file",
		},
		{
			name:     "missing screen id",
			filename: "menu.png",
			mimeType: "image/png",
			data:     []byte("png"),
			wantCode: "no_screen_id",
		},
		{
			name:     "non-image type",
			screenID: "3",
			filename: "menu.pdf",
			mimeType: "application/pdf",
			data:     []byte("%PDF-"),
			wantCode: "invalid_type",
		},
		{
			name:     "too large",
			screenID: "3",
			filename: "menu.jpg",
			mimeType: "image/jpeg",
			data:     bytes.Repeat([]byte("j"), assets.MaxAssetSize+1),
			wantCode: "too_large",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			store := newMemStore()
			ts := newTestServer(t, store)
			token := setupSession(t, ts, "hunter42")
			markers := len(store.objects)

			body, contentType := multipartUpload(t, tc.screenID, tc.filename, tc.mimeType, tc.data)
			resp, parsed := doUpload(t, ts, token, body, contentType)

			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.Equal(t, tc.wantCode, parsed["code"])
			assert.Len(t, store.objects, markers, "store must stay untouched")
		})
	}
}

// A body beyond the request cap must be rejected as too large while it is
// being read, without the store ever seeing it. The cap sits above the asset
// limit, so this path only triggers for grossly oversized bodies.
func TestUpload_OversizedBodyCutOff(t *testing.T) {
	store := newMemStore()
	ts := newTestServer(t, store)
	token := setupSession(t, ts, "hunter42")
	markers := len(store.objects)

	data := bytes.Repeat([]byte("j"), assets.MaxAssetSize+2*1024*1024)
	body, contentType := multipartUpload(t, "3", "menu.jpg", "image/jpeg", data)
	resp, parsed := doUpload(t, ts, token, body, contentType)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "too_large", parsed["code"])
	assert.Len(t, store.objects, markers, "store must stay untouched")
}

func TestUpload_StoreUnavailable(t *testing.T) {
	store := newMemStore()
	ts := newTestServer(t, store)
	token := setupSession(t, ts, "hunter42")

	store.unavailable = true
	body, contentType := multipartUpload(t, "3", "menu.png", "image/png", []byte("png"))
	resp, parsed := doUpload(t, ts, token, body, contentType)

	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, "store_unavailable", parsed["code"])
}

func TestResolve(t *testing.T) {
	store := newMemStore()
	ts := newTestServer(t, store)
	token := setupSession(t, ts, "hunter42")

	t.Run("empty state", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/api/upload?screenId=3")
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var parsed resolveResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&parsed))
		assert.False(t, parsed.Exists)
		assert.Nil(t, parsed.URL)
	})

	t.Run("after upload", func(t *testing.T) {
		body, contentType := multipartUpload(t, "3", "menu.png", "image/png", []byte("png"))
		uploadResp, _ := doUpload(t, ts, token, body, contentType)
		require.Equal(t, http.StatusOK, uploadResp.StatusCode)

		resp, err := http.Get(ts.URL + "/api/upload?screenId=3")
		require.NoError(t, err)
		defer resp.Body.Close()

		var parsed resolveResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&parsed))
		assert.True(t, parsed.Exists)
		require.NotNil(t, parsed.URL)
		assert.Equal(t, "ref://screen-3-menu.png", *parsed.URL)
	})

	t.Run("missing screen id", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/api/upload")
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestScreens(t *testing.T) {
	ts := newTestServer(t, newMemStore())

	resp, err := http.Get(ts.URL + "/api/screens?count=10")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var parsed []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&parsed))
	require.Len(t, parsed, 10)
	assert.Equal(t, "Screen 1", parsed[0]["name"])
	assert.Equal(t, "Screen 10", parsed[9]["name"])
}
