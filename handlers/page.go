// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/claim-poster/render"
	"github.com/danielhkuo/claim-poster/workflow"
)

type PageHandler struct {
	wf       *workflow.Controller
	renderer *render.Renderer
}

func NewPageHandler(wf *workflow.Controller, renderer *render.Renderer) *PageHandler {
	return &PageHandler{wf: wf, renderer: renderer}
}

// Home handles GET /
func (h *PageHandler) Home(w http.ResponseWriter, r *http.Request) {
	view := BuildPageView(h.wf.Snapshot())

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.renderer.Render(w, view); err != nil {
		slog.Error("failed to render page", "error", err)
	}
}

// BuildPageView maps a workflow snapshot to the page model. Taking the
// snapshot drains pending notices, so each notice renders exactly once.
func BuildPageView(snap workflow.Snapshot) render.PageView {
	view := render.PageView{
		LoggedIn: snap.Username != "",
		Username: snap.Username,
		Fetched:  snap.Fetched,
	}

	for _, notice := range snap.Notices {
		view.Notices = append(view.Notices, render.Notice{Message: notice.Message, Level: notice.Level})
	}

	composing := snap.State == workflow.ClaimComposing || snap.State == workflow.Submitting
	for _, entry := range snap.Claims {
		view.Claims = append(view.Claims, render.NewClaimView(entry.Claim, entry.Index, composing, snap.Draft))
	}
	return view
}
