// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/claim-poster/handlers"
	"github.com/danielhkuo/claim-poster/middleware"
	"github.com/danielhkuo/claim-poster/render"
	"github.com/danielhkuo/claim-poster/workflow"
)

func NewRouter(wf *workflow.Controller, renderer *render.Renderer) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	pageHandler := handlers.NewPageHandler(wf, renderer)
	authHandler := handlers.NewAuthHandler(wf)
	claimHandler := handlers.NewClaimHandler(wf)
	uploadHandler := handlers.NewUploadHandler(wf)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Session
	mux.HandleFunc("POST /login", middleware.WithLogging(authHandler.Login))
	mux.HandleFunc("POST /logout", middleware.WithLogging(authHandler.Logout))

	// Claim operations
	mux.HandleFunc("POST /claims/refresh", middleware.WithLogging(claimHandler.Refresh))
	mux.HandleFunc("POST /claims/{id}/toggle", middleware.WithLogging(claimHandler.Toggle))
	mux.HandleFunc("POST /claims/{id}/post", middleware.WithLogging(claimHandler.Submit))

	// Image upload
	mux.HandleFunc("POST /upload", middleware.WithLogging(uploadHandler.Upload))

	// The page
	mux.HandleFunc("GET /{$}", middleware.WithLogging(pageHandler.Home))

	return mux
}
