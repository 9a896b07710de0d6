// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

A .env file in the working directory is loaded before flags are read.

# Config Fields

  - Port: Server listen port (default: 8080)
  - APIBase: Claims API base URL (default: https://beta-api.distriator.com)
  - ImageHost: Image host base URL (default: https://images.hive.blog)
  - SignerBridgeURL: Keychain signer bridge URL (optional)
  - SessionDBPath: SQLite session database path (default: claim-poster.db)
  - HTTPTimeout: Outbound HTTP timeout (default: 30s)

# CLI Flags

	-p        Server port
	-api      Claims API base URL
	-images   Image host base URL
	-signer   Signer bridge URL
	-db       Session database path
	-timeout  Outbound HTTP timeout

# Environment Variables

Flags fall back to environment variables:

	PORT              → -p
	DISTRIATOR_API    → -api
	IMAGE_HOST        → -images
	SIGNER_BRIDGE_URL → -signer
	SESSION_DB        → -db
	HTTP_TIMEOUT      → -timeout

CLI flags take precedence over environment variables.

# Signer Bridge

SignerBridgeURL has no default and no validation: the app runs without a
bridge, and operations that need a signature tell the user the bridge is
missing. This mirrors how a missing browser extension behaves.
*/
package cliparse
