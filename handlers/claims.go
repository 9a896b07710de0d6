// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/danielhkuo/claim-poster/middleware"
	"github.com/danielhkuo/claim-poster/workflow"
)

type ClaimHandler struct {
	wf *workflow.Controller
}

func NewClaimHandler(wf *workflow.Controller) *ClaimHandler {
	return &ClaimHandler{wf: wf}
}

// Refresh handles POST /claims/refresh
func (h *ClaimHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	if err := h.wf.FetchClaims(r.Context()); err != nil {
		slog.Error("claim refresh failed", "error", err)
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Toggle handles POST /claims/:id/toggle
func (h *ClaimHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	index, err := claimIndex(r.PathValue("id"))
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "invalid claim id")
		return
	}

	if err := h.wf.ToggleCompose(index); err != nil {
		slog.Error("compose toggle failed", "index", index, "error", err)
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Submit handles POST /claims/:id/post
func (h *ClaimHandler) Submit(w http.ResponseWriter, r *http.Request) {
	index, err := claimIndex(r.PathValue("id"))
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "invalid claim id")
		return
	}

	title := r.FormValue("title")
	body := r.FormValue("body")

	if err := h.wf.SubmitPost(r.Context(), index, title, body); err != nil {
		slog.Error("post submission failed", "index", index, "error", err)
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// claimIndex parses the page-local claim id ("claim-0") back to its index.
func claimIndex(raw string) (int, error) {
	return strconv.Atoi(strings.TrimPrefix(raw, "claim-"))
}
