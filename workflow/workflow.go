// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package workflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/danielhkuo/claim-poster/composer"
	"github.com/danielhkuo/claim-poster/distriator"
	"github.com/danielhkuo/claim-poster/models"
	"github.com/danielhkuo/claim-poster/session"
	"github.com/danielhkuo/claim-poster/signer"
)

var (
	ErrMissingUsername   = errors.New("username required")
	ErrSignerUnavailable = errors.New("signer capability not detected")
	ErrNotLoggedIn       = errors.New("not logged in")
	ErrNoClaim           = errors.New("no claim data available")
	ErrNoFile            = errors.New("no file selected")
	ErrBusy              = errors.New("operation already in progress")
)

// State is the workflow position. Transitions are driven exclusively by
// Controller methods.
type State int

const (
	LoggedOut State = iota
	Authenticating
	LoggedInNoClaim
	ClaimViewing
	ClaimComposing
	Submitting
)

func (s State) String() string {
	switch s {
	case LoggedOut:
		return "logged_out"
	case Authenticating:
		return "authenticating"
	case LoggedInNoClaim:
		return "logged_in_no_claim"
	case ClaimViewing:
		return "claim_viewing"
	case ClaimComposing:
		return "claim_composing"
	case Submitting:
		return "submitting"
	default:
		return "unknown"
	}
}

// Notice is a transient user-facing message, drained on the next render.
type Notice struct {
	Message string
	Level   string
}

// ClaimEntry is a claim with its page-local index. The claims API yields at
// most one claim per account, so the list holds zero or one entry; the index
// keeps the claim's identity stable across renders.
type ClaimEntry struct {
	Index int
	Claim models.Claim
}

// Snapshot is the controller state handed to the rendering layer. Notices
// are drained when a snapshot is taken.
type Snapshot struct {
	State    State
	Username string
	Fetched  bool
	Claims   []ClaimEntry
	Draft    models.PostDraft
	Notices  []Notice
}

// Controller owns all mutable workflow state. Every mutation funnels
// through its transition methods; components read state only via Snapshot.
type Controller struct {
	store *session.Store
	sig   signer.Signer
	api   *distriator.Client
	now   func() time.Time

	mu       sync.Mutex
	state    State
	username string
	claims   []ClaimEntry
	draft    models.PostDraft
	fetched  bool
	busy     bool
	epoch    uint64
	notices  []Notice
}

// New creates a controller in the logged-out state. sig may be nil when no
// signing capability is configured; every operation that needs it then
// fails with a user-visible precondition message.
func New(store *session.Store, sig signer.Signer, api *distriator.Client) *Controller {
	return &Controller{
		store: store,
		sig:   sig,
		api:   api,
		now:   time.Now,
		state: LoggedOut,
	}
}

// Restore recovers a persisted session on startup. A token that fails to
// decode is treated as an invalid session: the slot is cleared and the
// workflow stays logged out.
func (c *Controller) Restore(ctx context.Context) {
	sess, err := c.store.Get()
	if err != nil {
		slog.Error("failed to read persisted session", "error", err)
		return
	}
	if !sess.LoggedIn() {
		return
	}

	username, err := session.Username(sess.Token)
	if err != nil {
		slog.Error("persisted session token is invalid", "error", err)
		if clearErr := c.store.Clear(); clearErr != nil {
			slog.Error("failed to clear invalid session", "error", clearErr)
		}
		c.mu.Lock()
		c.state = LoggedOut
		c.mu.Unlock()
		return
	}

	c.mu.Lock()
	c.username = username
	c.state = LoggedInNoClaim
	c.mu.Unlock()
	slog.Info("session restored", "username", username)

	if err := c.FetchClaims(ctx); err != nil {
		slog.Error("claim fetch after restore failed", "error", err)
	}
}

// Login signs the current timestamp with the external capability, exchanges
// it for an API token, persists the session, and fetches the claim. Any
// failure returns the workflow to the logged-out state with the reason
// surfaced; no session is persisted on a failed login.
func (c *Controller) Login(ctx context.Context, username string) error {
	username = strings.TrimSpace(username)

	c.mu.Lock()
	if username == "" {
		c.pushNotice("Please enter your Hive username.", "danger")
		c.mu.Unlock()
		return ErrMissingUsername
	}
	if c.sig == nil {
		c.pushNotice("Hive Keychain bridge not detected!", "danger")
		c.mu.Unlock()
		return ErrSignerUnavailable
	}
	if c.busy {
		c.pushNotice("Login already in progress.", "danger")
		c.mu.Unlock()
		return ErrBusy
	}
	c.busy = true
	c.state = Authenticating
	c.mu.Unlock()

	// The proof is the ISO-8601 millisecond UTC timestamp; its signature
	// becomes the login challenge.
	proof := c.now().UTC().Format("2006-01-02T15:04:05.000Z")

	signed, err := c.sig.SignBuffer(ctx, username, proof, models.RoleSign)
	if err != nil {
		c.loginFailed(fmt.Sprintf("Failed to sign posting: %s", err))
		return err
	}
	if signed.PublicKey == "" {
		c.loginFailed("Could not retrieve public key from Keychain response.")
		return errors.New("no public key in signer response")
	}

	login, err := c.api.Login(ctx, username, proof, signed.Signature, signed.PublicKey)
	if err != nil {
		c.loginFailed(fmt.Sprintf("API response: %s", err))
		return err
	}

	if err := c.store.Set(login.Token, login.Type); err != nil {
		c.loginFailed(fmt.Sprintf("Failed to save session: %s", err))
		return err
	}

	c.mu.Lock()
	c.username = username
	c.state = LoggedInNoClaim
	c.busy = false
	c.pushNotice("Login successful! Token and type saved.", "success")
	c.mu.Unlock()
	slog.Info("login succeeded", "username", username)

	if err := c.FetchClaims(ctx); err != nil {
		slog.Error("claim fetch after login failed", "error", err)
	}
	return nil
}

func (c *Controller) loginFailed(reason string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.busy = false
	c.state = LoggedOut
	c.pushNotice(reason, "danger")
	slog.Error("login failed", "reason", reason)
}

// FetchClaims refreshes the in-memory claim from the API. Overlapping
// fetches are permitted: the last completed fetch wins and is the one
// rendered. A fetch completing after logout is discarded.
func (c *Controller) FetchClaims(ctx context.Context) error {
	c.mu.Lock()
	epoch := c.epoch
	c.mu.Unlock()

	claim, err := c.api.FetchClaim(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if epoch != c.epoch {
		// Logged out while the fetch was in flight.
		return nil
	}

	c.fetched = true
	if err != nil {
		c.claims = nil
		if c.state != LoggedOut {
			c.state = LoggedInNoClaim
		}
		c.pushNotice(fmt.Sprintf("Failed to fetch claims: %s", err), "danger")
		return err
	}

	if claim == nil {
		c.claims = nil
		c.state = LoggedInNoClaim
		return nil
	}

	c.claims = []ClaimEntry{{Index: 0, Claim: *claim}}
	c.draft = models.PostDraft{}
	c.state = ClaimViewing
	slog.Info("claim fetched", "invoice", claim.Invoice, "business", claim.Business)
	return nil
}

// ToggleCompose switches a claim between its read-only view and the compose
// form. The draft survives leaving and re-entering the form within one
// claim instance.
func (c *Controller) ToggleCompose(index int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.findClaim(index); !ok {
		c.pushNotice("No claim data available. Please refresh the page.", "danger")
		return ErrNoClaim
	}

	switch c.state {
	case ClaimViewing:
		c.state = ClaimComposing
	case ClaimComposing:
		c.state = ClaimViewing
	default:
		return fmt.Errorf("cannot toggle compose view in state %s", c.state)
	}
	return nil
}

// SubmitPost builds the post operations and hands them to the broadcast
// boundary. On failure the workflow returns to composing with the draft
// unchanged; on success the claim list is refetched, resetting the
// workflow.
func (c *Controller) SubmitPost(ctx context.Context, index int, title, body string) error {
	c.mu.Lock()
	if c.username == "" {
		c.pushNotice("Please login first.", "danger")
		c.mu.Unlock()
		return ErrNotLoggedIn
	}
	entry, ok := c.findClaim(index)
	if !ok {
		c.pushNotice("No claim data available. Please refresh the page.", "danger")
		c.mu.Unlock()
		return ErrNoClaim
	}
	if c.sig == nil {
		c.pushNotice("Hive Keychain bridge not detected!", "danger")
		c.mu.Unlock()
		return ErrSignerUnavailable
	}
	if c.busy {
		c.pushNotice("A submission is already in progress.", "danger")
		c.mu.Unlock()
		return ErrBusy
	}

	draft := models.PostDraft{Title: title, Body: body}
	c.draft = draft
	username := c.username
	epoch := c.epoch

	ops, err := composer.BuildPost(draft, entry.Claim, username)
	if err != nil {
		c.state = ClaimComposing
		c.pushNotice(fmt.Sprintf("Failed to create post: %s", err), "danger")
		c.mu.Unlock()
		return err
	}

	c.busy = true
	c.state = Submitting
	c.mu.Unlock()

	_, err = c.sig.Broadcast(ctx, username, ops, models.RoleBroadcast)

	c.mu.Lock()
	c.busy = false
	if epoch != c.epoch {
		c.mu.Unlock()
		return nil
	}
	if err != nil {
		c.state = ClaimComposing
		c.pushNotice(fmt.Sprintf("Failed to create post: %s", err), "danger")
		c.mu.Unlock()
		slog.Error("broadcast failed", "error", err)
		return err
	}
	c.draft = models.PostDraft{}
	c.state = LoggedInNoClaim
	c.pushNotice("Post created successfully!", "success")
	c.mu.Unlock()
	slog.Info("post broadcast", "username", username, "invoice", entry.Claim.Invoice)

	if err := c.FetchClaims(ctx); err != nil {
		slog.Error("claim refetch after post failed", "error", err)
	}
	return nil
}

// UploadImage signs the framed image bytes and uploads them to the image
// host. Returns the hosted URL with the markdown snippet to insert into the
// editor.
func (c *Controller) UploadImage(ctx context.Context, filename string, data []byte) (models.UploadResult, error) {
	c.mu.Lock()
	if len(data) == 0 {
		c.pushNotice("Please select a file to upload.", "danger")
		c.mu.Unlock()
		return models.UploadResult{}, ErrNoFile
	}
	if c.username == "" {
		c.pushNotice("Please login first.", "danger")
		c.mu.Unlock()
		return models.UploadResult{}, ErrNotLoggedIn
	}
	if c.sig == nil {
		c.pushNotice("Hive Keychain bridge not detected!", "danger")
		c.mu.Unlock()
		return models.UploadResult{}, ErrSignerUnavailable
	}
	username := c.username
	c.mu.Unlock()

	message, err := signer.ImageMessage(data)
	if err != nil {
		c.noticeNow(fmt.Sprintf("Error preparing image: %s", err), "danger")
		return models.UploadResult{}, err
	}

	signed, err := c.sig.SignBuffer(ctx, strings.ToLower(username), message, models.RoleSign)
	if err != nil {
		c.noticeNow(fmt.Sprintf("Failed to sign image: %s", err), "danger")
		return models.UploadResult{}, err
	}

	url, err := c.api.UploadImage(ctx, username, signed.Signature, filename, data)
	if err != nil {
		c.noticeNow(fmt.Sprintf("Image upload failed: %s", err), "danger")
		return models.UploadResult{}, err
	}

	c.noticeNow("Image uploaded successfully!", "success")
	slog.Info("image uploaded", "username", username, "file", filename)
	return models.UploadResult{
		URL:      url,
		Markdown: fmt.Sprintf("![%s](%s)", filename, url),
	}, nil
}

// Logout clears the persisted session and all in-memory claim data from any
// state. In-flight fetches and submissions from before the logout are
// discarded when they complete.
func (c *Controller) Logout() {
	if err := c.store.Clear(); err != nil {
		slog.Error("failed to clear session", "error", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.epoch++
	c.username = ""
	c.claims = nil
	c.draft = models.PostDraft{}
	c.fetched = false
	c.busy = false
	c.state = LoggedOut
	c.pushNotice("You have been logged out.", "info")
	slog.Info("logged out")
}

// Snapshot returns the current state for rendering and drains pending
// notices.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap := Snapshot{
		State:    c.state,
		Username: c.username,
		Fetched:  c.fetched,
		Claims:   append([]ClaimEntry(nil), c.claims...),
		Draft:    c.draft,
		Notices:  c.notices,
	}
	c.notices = nil
	return snap
}

// State returns the current workflow state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Controller) findClaim(index int) (ClaimEntry, bool) {
	for _, entry := range c.claims {
		if entry.Index == index {
			return entry, true
		}
	}
	return ClaimEntry{}, false
}

// pushNotice appends a notice; callers hold the lock.
func (c *Controller) pushNotice(message, level string) {
	c.notices = append(c.notices, Notice{Message: message, Level: level})
}

func (c *Controller) noticeNow(message, level string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pushNotice(message, level)
}
