// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package render builds view models from claims and renders the page.

# View Models

  - PageView: login state, username, claims, transient notices
  - ClaimView: one claim in either its read-only card or its compose form,
    switched by the Composing flag (exactly one is visible at a time)
  - GuideRow / OnborderView: reward breakdown tables

NewClaimView is a pure mapping from a claim record; currency fields arrive
already formatted and pass through unchanged.

# Rendering

Renderer holds the parsed html/template page and writes it with Render.
*/
package render
