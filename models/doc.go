// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines domain and wire types shared across the service.

# Domain Types

  - Claim: reward record from the claims API (invoice, business, amounts,
    guides breakdown, optional onborder)
  - Session: persisted login state (token, token type)
  - PostDraft: user-entered compose form content

# Wire Types

Types matching the external APIs:

  - LoginRequest / LoginResponse: POST /login exchange
  - ClaimResponse: GET /claims/v2 envelope
  - UploadResponse: image host result
  - UploadResult: upload result returned to the compose page
  - ErrorResponse: error, message

# Constants

Posting roles passed to the keychain bridge:

	RoleSign      = "Posting"
	RoleBroadcast = "posting"
*/
package models
