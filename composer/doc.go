// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package composer builds the publishable post from a claim and a draft.

# Construction

BuildPost is a pure function: identical (draft, claim, username) inputs
yield byte-identical operations, which downstream signature verification
depends on. It produces two operations:

  - comment: a root-level comment under the fixed parent community, with the
    promotional template appended to the user's body and the post metadata
    serialized into json_metadata
  - comment_options: payout ceiling, 100% liquid HBD split, and the fixed
    60% beneficiary allocation

# Derived Values

  - Slug: lower-cased business name with whitespace runs hyphenated
  - Permlink: <slug>-<invoice>, lower-cased
  - FormatCurrency: pass-through for formatted strings, three fixed decimals
    with en-US grouping for raw numerics
*/
package composer
