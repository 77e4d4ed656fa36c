package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/signage/internal/common"
	"github.com/dmitrijs2005/signage/internal/logging"
	"github.com/dmitrijs2005/signage/internal/server/assets"
	"github.com/dmitrijs2005/signage/internal/server/config"
	"github.com/dmitrijs2005/signage/internal/server/credentials"
)

type memStore struct {
	mu          sync.Mutex
	objects     map[string][]byte
	unavailable bool
}

func newMemStore() *memStore {
	return &memStore{objects: make(map[string][]byte)}
}

func (m *memStore) Put(ctx context.Context, key, contentType string, body []byte) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.unavailable {
		return "", common.ErrStoreUnavailable
	}
	m.objects[key] = append([]byte(nil), body...)
	return m.Ref(key), nil
}

func (m *memStore) Head(ctx context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.unavailable {
		return false, common.ErrStoreUnavailable
	}
	_, ok := m.objects[key]
	return ok, nil
}

func (m *memStore) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.unavailable {
		return common.ErrStoreUnavailable
	}
	delete(m.objects, key)
	return nil
}

func (m *memStore) List(ctx context.Context, prefix string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.unavailable {
		return nil, common.ErrStoreUnavailable
	}
	var keys []string
	for k := range m.objects {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	return keys, nil
}

func (m *memStore) Ref(key string) string { return "ref://" + key }

func newTestServer(t *testing.T, store *memStore, mutate ...func(*config.Config)) *httptest.Server {
	t.Helper()

	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.StoreTimeout = time.Second
	for _, fn := range mutate {
		fn(cfg)
	}

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	cs := credentials.NewService(store, cfg, logger)
	as := assets.NewService(store, cfg, logger)

	ts := httptest.NewServer(NewServer(cfg, logger, cs, as).Handler())
	t.Cleanup(ts.Close)
	return ts
}

func postAuth(t *testing.T, ts *httptest.Server, body string) (*http.Response, map[string]any) {
	t.Helper()
	resp, err := http.Post(ts.URL+"/api/auth", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	var parsed map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&parsed))
	return resp, parsed
}

// setupSession establishes a credential and returns a usable session token.
func setupSession(t *testing.T, ts *httptest.Server, password string) string {
	t.Helper()
	resp, body := postAuth(t, ts, fmt.Sprintf(`{"action":"setup","newPassword":%q}`, password))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return token
}

// multipartUpload builds a multipart request body with a file part (declared
// MIME type and filename) and a screenId field.
func multipartUpload(t *testing.T, screenID, filename, mimeType string, data []byte) (io.Reader, string) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	if filename != "" {
		h := textproto.MIMEHeader{}
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, filename))
		h.Set("Content-Type", mimeType)
		part, err := mw.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
	}

	if screenID != "" {
		require.NoError(t, mw.WriteField("screenId", screenID))
	}

	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func doUpload(t *testing.T, ts *httptest.Server, token string, body io.Reader, contentType string) (*http.Response, map[string]any) {
	t.Helper()

	req, err := http.NewRequest(http.MethodPost, ts.URL+"/api/upload", body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", contentType)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	var parsed map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&parsed))
	return resp, parsed
}
