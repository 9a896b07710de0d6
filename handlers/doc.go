// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains the HTTP request handlers for the claim poster.

# Handler Types

Each handler is a struct holding its workflow dependency:

  - PageHandler: Renders the single application page
  - AuthHandler: Login and logout
  - ClaimHandler: Claim refresh, compose toggle, post submission
  - UploadHandler: Signed image uploads

Handlers are created via constructor functions that accept the workflow
controller:

	authHandler := handlers.NewAuthHandler(wf)

# Request Flow

Every mutating route drives a workflow transition and redirects back to the
page (Post/Redirect/Get). Failures are not HTTP errors: the workflow records
a notice and the redirected page shows it.

	GET  /                        → Home
	POST /login                   → Login
	POST /logout                  → Logout
	POST /claims/refresh          → Refresh
	POST /claims/{id}/toggle      → Toggle
	POST /claims/{id}/post        → Submit
	POST /upload                  → Upload

# Uploads

The page posts uploads as a plain multipart form and gets redirected back.
Clients that set Accept: application/json instead receive the hosted URL and
markdown snippet as JSON, with precondition failures mapped to 4xx/5xx.
*/
package handlers
