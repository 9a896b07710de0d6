// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/claim-poster/workflow"
)

type AuthHandler struct {
	wf *workflow.Controller
}

func NewAuthHandler(wf *workflow.Controller) *AuthHandler {
	return &AuthHandler{wf: wf}
}

// Login handles POST /login
//
// Failures surface as notices on the redirected page, not as HTTP errors:
// the workflow records the reason before returning.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	username := r.FormValue("username")

	if err := h.wf.Login(r.Context(), username); err != nil {
		slog.Error("login attempt failed", "username", username, "error", err)
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Logout handles POST /logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.wf.Logout()
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
