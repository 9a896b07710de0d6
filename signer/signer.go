// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package signer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrUnavailable means the signing capability could not be reached.
	// Its absence is a precondition failure reported to the user, never
	// retried.
	ErrUnavailable = errors.New("signer capability not available")
)

// SignResult is the outcome of a buffer-signing request. PublicKey may be
// empty depending on the capability's response shape.
type SignResult struct {
	Signature string
	PublicKey string
}

// BroadcastResult is the outcome of a broadcast request.
type BroadcastResult struct {
	ID string
}

// Signer is the external signing capability. It holds the private keys and
// performs all cryptography; this service only marshals requests to it and
// unmarshals its responses. Failures carry the capability's human-readable
// reason verbatim.
type Signer interface {
	SignBuffer(ctx context.Context, account, message, role string) (SignResult, error)
	Broadcast(ctx context.Context, account string, operations any, role string) (BroadcastResult, error)
}

const imageChallenge = "ImageSigningChallenge"

// bufferDescriptor is the byte-array wrapper the capability expects for
// binary payloads, equivalent to a serialized Node Buffer.
type bufferDescriptor struct {
	Type string `json:"type"`
	Data []int  `json:"data"`
}

// ImageMessage frames raw image bytes for signing: the challenge string
// concatenated with the image bytes, wrapped in a byte-array descriptor.
// The payload is deliberately not pre-hashed; the capability processes the
// raw bytes as directed.
func ImageMessage(image []byte) (string, error) {
	data := make([]int, 0, len(imageChallenge)+len(image))
	for _, b := range []byte(imageChallenge) {
		data = append(data, int(b))
	}
	for _, b := range image {
		data = append(data, int(b))
	}
	raw, err := json.Marshal(bufferDescriptor{Type: "Buffer", Data: data})
	if err != nil {
		return "", fmt.Errorf("failed to frame image message: %w", err)
	}
	return string(raw), nil
}
