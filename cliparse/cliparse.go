package cliparse

import (
	"errors"
	"flag"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port            int
	APIBase         string
	ImageHost       string
	SignerBridgeURL string
	SessionDBPath   string
	HTTPTimeout     time.Duration
}

// ParseFlags validates flags and sets defaults. A .env file in the working
// directory is loaded first; its absence is not an error.
func ParseFlags(args []string) (Config, error) {
	_ = godotenv.Load()

	var cfg Config

	fs := flag.NewFlagSet("claim-poster", flag.ContinueOnError)

	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.APIBase, "api", "", "Claims API base URL")
	fs.StringVar(&cfg.ImageHost, "images", "", "Image host base URL")
	fs.StringVar(&cfg.SignerBridgeURL, "signer", "", "Keychain signer bridge URL (optional)")
	fs.StringVar(&cfg.SessionDBPath, "db", "", "Session database path")
	fs.DurationVar(&cfg.HTTPTimeout, "timeout", 0, "Outbound HTTP timeout")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 8080 // default
		}
	}

	if cfg.APIBase == "" {
		cfg.APIBase = os.Getenv("DISTRIATOR_API")
	}
	if cfg.APIBase == "" {
		cfg.APIBase = "https://beta-api.distriator.com"
	}

	if cfg.ImageHost == "" {
		cfg.ImageHost = os.Getenv("IMAGE_HOST")
	}
	if cfg.ImageHost == "" {
		cfg.ImageHost = "https://images.hive.blog"
	}

	// The bridge is optional. Without one the app still serves pages; any
	// operation needing a signature reports the bridge as missing.
	if cfg.SignerBridgeURL == "" {
		cfg.SignerBridgeURL = os.Getenv("SIGNER_BRIDGE_URL")
	}

	if cfg.SessionDBPath == "" {
		cfg.SessionDBPath = os.Getenv("SESSION_DB")
	}
	if cfg.SessionDBPath == "" {
		cfg.SessionDBPath = "claim-poster.db"
	}

	if cfg.HTTPTimeout == 0 {
		if timeoutStr := os.Getenv("HTTP_TIMEOUT"); timeoutStr != "" {
			timeout, err := time.ParseDuration(timeoutStr)
			if err != nil {
				return Config{}, errors.New("invalid HTTP_TIMEOUT env variable")
			}
			cfg.HTTPTimeout = timeout
		} else {
			cfg.HTTPTimeout = 30 * time.Second
		}
	}

	return cfg, nil
}
