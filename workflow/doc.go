// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package workflow coordinates the login, claim, and publish flow.

# States

	LoggedOut -> Authenticating -> LoggedInNoClaim -> ClaimViewing <-> ClaimComposing -> Submitting

Submitting loops back to LoggedInNoClaim via a claim refetch; LoggedOut is
reachable from every state through logout or invalid-session detection.

# Ownership

Controller owns all mutable workflow state (session identity, in-memory
claim, draft). Mutation happens only inside its transition methods; readers
take a Snapshot, which also drains pending user notices.

# Concurrency

Transitions serialize on the controller mutex, released around external
calls. Login and submit carry an in-flight guard: a second attempt while one
is pending is rejected with a visible message. Claim fetches may overlap;
the last completed fetch wins. Logout bumps an epoch counter so results of
calls started before the logout are discarded when they land.
*/
package workflow
