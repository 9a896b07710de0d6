// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package signer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Bridge talks to a local keychain agent over HTTP. The agent exposes the
// same request/response contract as the Hive Keychain extension:
// POST /sign-buffer and POST /broadcast, each answering
// {success, result|message, publicKey?}.
type Bridge struct {
	baseURL string
	client  *http.Client
}

// NewBridge creates a bridge against the agent at baseURL.
func NewBridge(baseURL string, timeout time.Duration) *Bridge {
	return &Bridge{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

type signRequest struct {
	Account string `json:"account"`
	Message string `json:"message"`
	Role    string `json:"role"`
}

type broadcastRequest struct {
	Account    string `json:"account"`
	Operations any    `json:"operations"`
	Role       string `json:"role"`
}

// bridgeResponse mirrors the keychain callback payload. Some agent versions
// nest the public key under data.
type bridgeResponse struct {
	Success   bool   `json:"success"`
	Result    string `json:"result,omitempty"`
	Message   string `json:"message,omitempty"`
	PublicKey string `json:"publicKey,omitempty"`
	Data      *struct {
		PublicKey string `json:"publicKey"`
	} `json:"data,omitempty"`
}

// SignBuffer asks the agent to sign message with the account's key for the
// given role.
func (b *Bridge) SignBuffer(ctx context.Context, account, message, role string) (SignResult, error) {
	resp, err := b.post(ctx, "/sign-buffer", signRequest{Account: account, Message: message, Role: role})
	if err != nil {
		return SignResult{}, err
	}
	if !resp.Success {
		return SignResult{}, errors.New(failureReason(resp))
	}
	result := SignResult{Signature: resp.Result, PublicKey: resp.PublicKey}
	if result.PublicKey == "" && resp.Data != nil {
		result.PublicKey = resp.Data.PublicKey
	}
	return result, nil
}

// Broadcast asks the agent to sign and broadcast the operations.
func (b *Bridge) Broadcast(ctx context.Context, account string, operations any, role string) (BroadcastResult, error) {
	resp, err := b.post(ctx, "/broadcast", broadcastRequest{Account: account, Operations: operations, Role: role})
	if err != nil {
		return BroadcastResult{}, err
	}
	if !resp.Success {
		return BroadcastResult{}, errors.New(failureReason(resp))
	}
	return BroadcastResult{ID: resp.Result}, nil
}

func (b *Bridge) post(ctx context.Context, path string, body any) (bridgeResponse, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return bridgeResponse{}, fmt.Errorf("failed to encode signer request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return bridgeResponse{}, fmt.Errorf("failed to build signer request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := b.client.Do(req)
	if err != nil {
		// Transport failure means the capability is absent or down.
		return bridgeResponse{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer res.Body.Close()

	var decoded bridgeResponse
	if err := json.NewDecoder(res.Body).Decode(&decoded); err != nil {
		return bridgeResponse{}, fmt.Errorf("invalid signer response: %w", err)
	}
	return decoded, nil
}

func failureReason(resp bridgeResponse) string {
	if resp.Message != "" {
		return resp.Message
	}
	return "Unknown error"
}
