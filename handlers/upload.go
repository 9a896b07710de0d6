// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/danielhkuo/claim-poster/middleware"
	"github.com/danielhkuo/claim-poster/workflow"
)

// maxUploadBytes caps the in-memory portion of a multipart upload.
const maxUploadBytes = 10 << 20

type UploadHandler struct {
	wf *workflow.Controller
}

func NewUploadHandler(wf *workflow.Controller) *UploadHandler {
	return &UploadHandler{wf: wf}
}

// Upload handles POST /upload
//
// The page posts a plain multipart form and gets redirected back; clients
// sending Accept: application/json get the upload result as JSON instead.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	wantsJSON := strings.Contains(r.Header.Get("Accept"), "application/json")

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		if wantsJSON {
			middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid multipart form")
			return
		}
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	var filename string
	var data []byte
	if file, header, err := r.FormFile("file"); err == nil {
		defer file.Close()
		filename = header.Filename
		data, err = io.ReadAll(file)
		if err != nil {
			slog.Error("failed to read upload", "file", filename, "error", err)
			data = nil
		}
	}

	// An absent or empty file falls through to the workflow, which records
	// the user-facing "select a file" notice.
	result, err := h.wf.UploadImage(r.Context(), filename, data)

	if wantsJSON {
		switch {
		case err == nil:
			middleware.JSONResponse(w, http.StatusOK, result)
		case errors.Is(err, workflow.ErrNoFile):
			middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, workflow.ErrNotLoggedIn):
			middleware.ErrorResponse(w, http.StatusUnauthorized, err.Error())
		case errors.Is(err, workflow.ErrSignerUnavailable):
			middleware.ErrorResponse(w, http.StatusServiceUnavailable, err.Error())
		default:
			middleware.ErrorResponse(w, http.StatusBadGateway, err.Error())
		}
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
