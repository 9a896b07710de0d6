// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package signer adapts the external signing capability.

# Signer Interface

Signer is the boundary to the agent that holds private key material:

	SignBuffer(ctx, account, message, role) (SignResult, error)
	Broadcast(ctx, account, operations, role) (BroadcastResult, error)

No cryptography happens on this side of the boundary. Failure reasons from
the capability are surfaced verbatim; transport failures map to
ErrUnavailable.

# Bridge

Bridge implements Signer against a local keychain agent speaking the Hive
Keychain request/response contract over HTTP.

# Image Framing

ImageMessage builds the exact payload the image host expects to be signed:
the "ImageSigningChallenge" string concatenated with the raw image bytes,
wrapped in a {"type":"Buffer","data":[...]} descriptor. No pre-hashing.
*/
package signer
