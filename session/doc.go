// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package session persists the single login session slot.

# Store

Store wraps a sqlite handle and exposes the three slot operations:

	store := session.NewStore(db)
	store.Set(token, tokenType)
	sess, err := store.Get() // absent session => zero value, nil error
	store.Clear()

CreateSchema initializes the one-row table and is safe to call repeatedly.

# Username Decoding

Username decodes the username claim out of a login token for display. The
token is verified by the remote API; locally it is parsed without signature
verification. A token that fails to parse is an invalid session: callers
clear the slot and fall back to the logged-out state.
*/
package session
