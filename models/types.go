// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

// Posting roles expected by the keychain bridge. The login/post flows use the
// capitalized form for buffer signing and the lowercase form for broadcast,
// matching what the Hive Keychain API accepts.
const (
	RoleSign      = "Posting"
	RoleBroadcast = "posting"
)

// Session is the persisted login state. An empty Token means logged out.
type Session struct {
	Token     string
	TokenType string
}

// LoggedIn reports whether the session holds a token.
func (s Session) LoggedIn() bool {
	return s.Token != ""
}

// Guide is one guide entry in a claim's reward breakdown.
type Guide struct {
	Name          string `json:"name"`
	Percent       string `json:"percent"`
	GuidesPercent string `json:"guidesPercent"`
	Value         string `json:"value"`
}

// Onborder is the optional onboarding account credited in a claim.
type Onborder struct {
	Name    string `json:"name"`
	Percent string `json:"percent"`
	Value   string `json:"value"`
}

// Claim is a reward record returned by the claims API. It is read-only:
// nothing in this service mutates a claim after fetching it.
type Claim struct {
	Invoice           string    `json:"invoice"`
	Amount            string    `json:"amount"`
	Business          string    `json:"business"`
	Country           string    `json:"country"`
	Timestamp         int64     `json:"timestamp"`
	PaymentMethod     string    `json:"paymentMethod"`
	ClaimValue        string    `json:"claimValue"`
	Percentage        string    `json:"percentage"`
	TransactionAmount string    `json:"transactionAmount"`
	Memo              string    `json:"memo,omitempty"`
	Guides            []Guide   `json:"guides,omitempty"`
	Onborder          *Onborder `json:"onborder,omitempty"`
}

// PostDraft holds user-entered compose form content. Drafts are discarded on
// submit or navigation; they are never persisted.
type PostDraft struct {
	Title string
	Body  string
}

// LoginRequest is the JSON body for POST /login on the claims API.
// Challenge carries the signature and Proof the signed timestamp string.
type LoginRequest struct {
	Challenge string `json:"challenge"`
	Username  string `json:"username"`
	Pubkey    string `json:"pubkey"`
	Proof     string `json:"proof"`
}

// LoginResponse is the claims API login result. On failure Token is empty
// and Message carries the server-provided reason.
type LoginResponse struct {
	Token   string `json:"token"`
	Type    string `json:"type,omitempty"`
	Message string `json:"message,omitempty"`
}

// ClaimResponse wraps the claims API fetch result. Claim is nil when the
// account has nothing to claim.
type ClaimResponse struct {
	Claim *Claim `json:"claim"`
}

// UploadResponse is the image host's upload result.
type UploadResponse struct {
	URL string `json:"url"`
}

// UploadResult is returned to the compose page after an image upload, with a
// ready-to-insert markdown snippet.
type UploadResult struct {
	URL      string `json:"url"`
	Markdown string `json:"markdown"`
}

// ErrorResponse is the standard JSON error envelope.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
