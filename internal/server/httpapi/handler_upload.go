package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/signage/internal/common"
	"github.com/dmitrijs2005/signage/internal/server/assets"
	"github.com/dmitrijs2005/signage/internal/server/screens"
)

func decodeJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

type uploadResponse struct {
	Success  bool   `json:"success"`
	URL      string `json:"url"`
	Filename string `json:"filename"`
}

type resolveResponse struct {
	URL    *string `json:"url"`
	Exists bool    `json:"exists"`
}

// handleUpload is the upload transport: multipart {file, screenId}. The
// service re-validates everything, but the file/screenId presence checks are
// boundary concerns resolved here.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	// hard cap on the whole request body (asset limit plus multipart
	// framing) so an oversized upload is cut off mid-read instead of
	// being buffered; the exact per-asset limit stays with the service
	r.Body = http.MaxBytesReader(w, r.Body, assets.MaxAssetSize+1024*1024)

	if err := r.ParseMultipartForm(assets.MaxAssetSize); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, common.ErrTooLarge)
			return
		}
		writeError(w, common.ErrNoFile)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, common.ErrNoFile)
		return
	}
	defer file.Close()

	screenID := r.FormValue("screenId")
	if screenID == "" {
		writeError(w, common.ErrNoScreenID)
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		s.log(r.Context()).Error(r.Context(), "reading upload failed", "screen_id", screenID, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "Upload failed", Code: "internal"})
		return
	}

	asset, err := s.assets.Upload(r.Context(), screenID, data, header.Header.Get("Content-Type"), header.Filename)
	if err != nil {
		if !common.IsValidation(err) {
			s.log(r.Context()).Error(r.Context(), "upload failed", "screen_id", screenID, "error", err)
		}
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, uploadResponse{
		Success:  true,
		URL:      asset.ContentRef,
		Filename: fmt.Sprintf("screen-%s-menu.%s", asset.ScreenID, asset.Extension),
	})
}

// handleResolve looks up the authoritative asset reference for a screen.
// "Nothing uploaded yet" is a valid empty state, not an error.
func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	screenID := r.URL.Query().Get("screenId")
	if screenID == "" {
		writeError(w, common.ErrNoScreenID)
		return
	}

	ref, err := s.assets.Resolve(r.Context(), screenID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			writeJSON(w, http.StatusOK, resolveResponse{URL: nil, Exists: false})
			return
		}
		s.log(r.Context()).Error(r.Context(), "resolve failed", "screen_id", screenID, "error", err)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resolveResponse{URL: &ref, Exists: true})
}

func (s *Server) handleScreens(w http.ResponseWriter, r *http.Request) {
	count := 8
	if v := r.URL.Query().Get("count"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 100 {
			writeJSON(w, http.StatusBadRequest, errorBody{Error: "Invalid count", Code: "bad_request"})
			return
		}
		count = n
	}

	writeJSON(w, http.StatusOK, screens.List(count))
}
