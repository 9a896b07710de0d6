// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package distriator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/danielhkuo/claim-poster/models"
)

// TokenSource yields the current session so requests can attach a bearer
// token. Requests made without a session omit the Authorization header; the
// server rejects unauthenticated claim fetches.
type TokenSource interface {
	Get() (models.Session, error)
}

// Client issues one-shot requests to the claims API and the image host.
// There is no retry or backoff: every network or non-success response is
// returned to the caller with the raw error text.
type Client struct {
	base      string
	imageHost string
	http      *http.Client
	tokens    TokenSource
}

// New creates a client. base is the claims API root, imageHost the image
// hosting service root.
func New(base, imageHost string, timeout time.Duration, tokens TokenSource) *Client {
	return &Client{
		base:      strings.TrimRight(base, "/"),
		imageHost: strings.TrimRight(imageHost, "/"),
		http:      &http.Client{Timeout: timeout},
		tokens:    tokens,
	}
}

// Login exchanges a signed timestamp for an API token. proof is the ISO-8601
// millisecond UTC timestamp string and signature its signature; the API's
// challenge field carries the signature and its proof field the timestamp.
func (c *Client) Login(ctx context.Context, username, proof, signature, pubkey string) (models.LoginResponse, error) {
	body, err := json.Marshal(models.LoginRequest{
		Challenge: signature,
		Username:  username,
		Pubkey:    pubkey,
		Proof:     proof,
	})
	if err != nil {
		return models.LoginResponse{}, fmt.Errorf("failed to encode login request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/login", bytes.NewReader(body))
	if err != nil {
		return models.LoginResponse{}, fmt.Errorf("failed to build login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return models.LoginResponse{}, fmt.Errorf("API call failed: %w", err)
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return models.LoginResponse{}, fmt.Errorf("failed to read login response: %w", err)
	}

	var decoded models.LoginResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return models.LoginResponse{}, fmt.Errorf("invalid login response: %s", strings.TrimSpace(string(raw)))
	}
	if decoded.Token == "" {
		// Surface the server's own reason, or the raw body when it gave none.
		if decoded.Message != "" {
			return models.LoginResponse{}, errors.New(decoded.Message)
		}
		return models.LoginResponse{}, errors.New(strings.TrimSpace(string(raw)))
	}
	return decoded, nil
}

// FetchClaim returns the account's pending claim, or nil when there is none.
func (c *Client) FetchClaim(ctx context.Context) (*models.Claim, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+"/claims/v2", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build claim request: %w", err)
	}
	c.authorize(req)

	res, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch claims: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		raw, _ := io.ReadAll(res.Body)
		return nil, fmt.Errorf("failed to fetch claims: server returned %d: %s", res.StatusCode, strings.TrimSpace(string(raw)))
	}

	var decoded models.ClaimResponse
	if err := json.NewDecoder(res.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("invalid claims response: %w", err)
	}
	return decoded.Claim, nil
}

// UploadImage posts the image bytes as a multipart file to the image host,
// addressed by lowercased account and the image signature. Returns the
// hosted URL.
func (c *Client) UploadImage(ctx context.Context, account, signature, filename string, data []byte) (string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("failed to build upload body: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return "", fmt.Errorf("failed to build upload body: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to build upload body: %w", err)
	}

	url := fmt.Sprintf("%s/%s/%s", c.imageHost, strings.ToLower(account), signature)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &body)
	if err != nil {
		return "", fmt.Errorf("failed to build upload request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	res, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("image upload failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf("server returned %d: %s", res.StatusCode, http.StatusText(res.StatusCode))
	}

	var decoded models.UploadResponse
	if err := json.NewDecoder(res.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("invalid upload response: %w", err)
	}
	if decoded.URL == "" {
		return "", errors.New("no URL in response")
	}
	return decoded.URL, nil
}

// authorize attaches the bearer token when a session exists. Store errors
// are treated as no session: the request proceeds unauthenticated and the
// server rejects it with its own message.
func (c *Client) authorize(req *http.Request) {
	if c.tokens == nil {
		return
	}
	sess, err := c.tokens.Get()
	if err != nil || !sess.LoggedIn() {
		return
	}
	req.Header.Set("Authorization", "Bearer "+sess.Token)
}
