// Package api is the HTTP client for the signage server surface. It maps
// transport-level failures back onto the shared error taxonomy so callers
// can branch with errors.Is.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/signage/internal/common"
)

type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

type authPayload struct {
	Action      string `json:"action"`
	Password    string `json:"password,omitempty"`
	NewPassword string `json:"newPassword,omitempty"`
}

type authResult struct {
	Success       bool   `json:"success"`
	Authenticated bool   `json:"authenticated"`
	Token         string `json:"token"`
	HasPassword   bool   `json:"hasPassword"`
	Error         string `json:"error"`
	Code          string `json:"code"`
}

// errFromCode maps a wire error code back onto a sentinel.
func errFromCode(code, message string, status int) error {
	switch code {
	case "no_file":
		return common.ErrNoFile
	case "no_screen_id":
		return common.ErrNoScreenID
	case "invalid_type":
		return common.ErrInvalidType
	case "too_large":
		return common.ErrTooLarge
	case "weak_password":
		return common.ErrWeakPassword
	case "store_unavailable":
		return common.ErrStoreUnavailable
	case "unauthorized", "invalid_password":
		return common.ErrUnauthorized
	}
	if status == http.StatusUnauthorized {
		return common.ErrUnauthorized
	}
	return fmt.Errorf("server error (%d): %s", status, message)
}

func (c *Client) postAuth(ctx context.Context, token string, payload authPayload) (*authResult, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/auth", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("auth request: %w: %w", common.ErrStoreUnavailable, err)
	}
	defer resp.Body.Close()

	var result authResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decoding auth response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, errFromCode(result.Code, result.Error, resp.StatusCode)
	}

	return &result, nil
}

// HasPassword reports whether the server knows of a configured credential.
func (c *Client) HasPassword(ctx context.Context) (bool, error) {
	result, err := c.postAuth(ctx, "", authPayload{Action: "check"})
	if err != nil {
		return false, err
	}
	return result.HasPassword, nil
}

// SetupPassword establishes the admin credential and returns a session token.
func (c *Client) SetupPassword(ctx context.Context, newPassword string) (string, error) {
	result, err := c.postAuth(ctx, "", authPayload{Action: "setup", NewPassword: newPassword})
	if err != nil {
		return "", err
	}
	return result.Token, nil
}

// Login verifies the password and returns a session token. A wrong password
// (or a password that was never set — the wire does not distinguish them)
// surfaces as common.ErrUnauthorized.
func (c *Client) Login(ctx context.Context, password string) (string, error) {
	result, err := c.postAuth(ctx, "", authPayload{Action: "login", Password: password})
	if err != nil {
		return "", err
	}
	if !result.Authenticated {
		return "", common.ErrUnauthorized
	}
	return result.Token, nil
}

// Rotate replaces the admin credential.
func (c *Client) Rotate(ctx context.Context, token, oldPassword, newPassword string) error {
	_, err := c.postAuth(ctx, token, authPayload{Action: "rotate", Password: oldPassword, NewPassword: newPassword})
	return err
}

type uploadResult struct {
	Success  bool   `json:"success"`
	URL      string `json:"url"`
	Filename string `json:"filename"`
	Error    string `json:"error"`
	Code     string `json:"code"`
}

// Upload sends a menu image for a screen and returns its content reference.
func (c *Client) Upload(ctx context.Context, token, screenID, filename, mimeType string, data []byte) (string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	h := textproto.MIMEHeader{}
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, filename))
	h.Set("Content-Type", mimeType)
	part, err := mw.CreatePart(h)
	if err != nil {
		return "", err
	}
	if _, err := part.Write(data); err != nil {
		return "", err
	}
	if err := mw.WriteField("screenId", screenID); err != nil {
		return "", err
	}
	if err := mw.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/upload", &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload request: %w: %w", common.ErrStoreUnavailable, err)
	}
	defer resp.Body.Close()

	var result uploadResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decoding upload response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", errFromCode(result.Code, result.Error, resp.StatusCode)
	}

	return result.URL, nil
}

// ScreenInfo mirrors the server's screen roster entries.
type ScreenInfo struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	BgColor string `json:"bgColor"`
	Active  bool   `json:"isActive"`
}

// Screens fetches the roster of the first count screens.
func (c *Client) Screens(ctx context.Context, count int) ([]ScreenInfo, error) {
	u := fmt.Sprintf("%s/api/screens?count=%d", c.baseURL, count)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("screens request: %w: %w", common.ErrStoreUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("server error (%d)", resp.StatusCode)
	}

	var result []ScreenInfo
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decoding screens response: %w", err)
	}

	return result, nil
}

type resolveResult struct {
	URL    *string `json:"url"`
	Exists bool    `json:"exists"`
	Error  string  `json:"error"`
	Code   string  `json:"code"`
}

// ResolveMenu looks up the authoritative asset reference for a screen.
// It returns common.ErrNotFound when nothing has been uploaded yet and
// common.ErrStoreUnavailable when the server (or its store) cannot answer.
func (c *Client) ResolveMenu(ctx context.Context, screenID string) (string, error) {
	u := c.baseURL + "/api/upload?screenId=" + url.QueryEscape(screenID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("resolve request: %w: %w", common.ErrStoreUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading resolve response: %w", err)
	}

	var result resolveResult
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("decoding resolve response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", errFromCode(result.Code, result.Error, resp.StatusCode)
	}

	if !result.Exists || result.URL == nil {
		return "", common.ErrNotFound
	}

	return *result.URL, nil
}
