// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the claim poster server.

Claim Poster is a small web app for claiming Distriator purchase rewards on
Hive: log in with a Keychain-signed challenge, review the pending claim, and
publish the review post with the required beneficiary settings.

# Starting the Server

	go run main.go

Or with flags:

	go run main.go -p 8080 -signer http://localhost:4199

# Configuration

All settings have defaults except the signer bridge:

  - PORT (-p): Server port (default: 8080)
  - DISTRIATOR_API (-api): Claims API base URL
  - IMAGE_HOST (-images): Image host base URL
  - SIGNER_BRIDGE_URL (-signer): Keychain signer bridge URL (optional)
  - SESSION_DB (-db): SQLite session database path
  - HTTP_TIMEOUT (-timeout): Outbound HTTP timeout

Without a signer bridge the app still serves pages, but login, posting, and
uploads report the bridge as missing.

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (page, auth, claims, upload)
  - router: Route definitions using Go 1.22+ routing
  - middleware: Logging, JSON helpers
  - workflow: The login/claim/publish state machine
  - composer: Deterministic post and broadcast operation construction
  - distriator: Claims API and image host client
  - signer: External signing capability (Keychain bridge)
  - session: Persisted session slot
  - render: HTML page rendering
  - models: Shared types
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
