// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the claim poster.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(wf, renderer)

# Endpoints

Health:

	GET /health

The page:

	GET /

Session:

	POST /login  - Sign the login proof and exchange it for a token
	POST /logout - Clear the session

Claim operations:

	POST /claims/refresh     - Refetch the claim
	POST /claims/{id}/toggle - Switch between claim view and compose form
	POST /claims/{id}/post   - Broadcast the post

Image upload:

	POST /upload - Sign and upload an image

# Handler Initialization

The router creates handler instances with dependency injection:

	pageHandler := handlers.NewPageHandler(wf, renderer)
	authHandler := handlers.NewAuthHandler(wf)
	claimHandler := handlers.NewClaimHandler(wf)
	uploadHandler := handlers.NewUploadHandler(wf)

All handlers receive the workflow controller; the page handler also gets the
renderer.
*/
package router
