// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package distriator is the HTTP client for the claims API and the image host.

# Operations

  - Login: POST /login with {challenge, username, pubkey, proof}
  - FetchClaim: GET /claims/v2 (bearer-authenticated when a session exists)
  - UploadImage: POST {imageHost}/{account}/{signature} multipart upload

All calls are one-shot with no retry or backoff. Non-success responses are
surfaced to the caller with the server's own message text, never swallowed.

# Authentication

The client pulls the current session from a TokenSource (the session store)
on every authenticated request. Without a session the Authorization header
is omitted and the server is responsible for rejecting the call.
*/
package distriator
