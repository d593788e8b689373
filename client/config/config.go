package config

import (
	"fmt"
	"time"

	sdklog "github.com/settlemint/asset-tokenization-kit-sub020/pkg/log"
)

// Config holds all configuration for the platform client.
type Config struct {
	// Platform connection
	GatewayEndpoint string // transaction gateway base URL
	IndexerEndpoint string // subgraph/indexer GraphQL URL
	AuthEndpoint    string // authorization (challenge) service URL

	// Access
	AccessToken string // platform API token sent with every request
	ActingUser  string // user identity operations are authorized as

	// Timeouts
	RequestTimeout time.Duration // per-HTTP-call timeout

	// Track controls operation confirmation behaviour.
	Track TrackConfig

	// Logger is optional; when set, SDK operations emit diagnostics.
	Logger sdklog.Logger
}

// TrackConfig configures how the SDK waits for mining and indexing.
type TrackConfig struct {
	// PollInterval controls how frequently the gateway and indexer are
	// queried while waiting.
	PollInterval time.Duration
	// MiningTimeout bounds the wait for a submitted transaction to reach a
	// terminal mining status.
	MiningTimeout time.Duration
	// IndexingTimeout bounds the wait for the indexer to reflect a mined
	// change. Expiry is a soft failure: the on-ledger effect stands.
	IndexingTimeout time.Duration
	// PollMaxRetries limits poll attempts per stage (0 => unlimited until
	// the stage deadline).
	PollMaxRetries int
	// PollBackoffMultiplier > 1 enables exponential growth for poll intervals.
	PollBackoffMultiplier float64
	// PollBackoffMaxInterval caps the exponential backoff delay (0 => unlimited).
	PollBackoffMaxInterval time.Duration
	// PollBackoffJitter randomizes delays (0..1) to avoid synced retries.
	PollBackoffJitter float64
}

// Validate checks if the configuration is valid and populates defaults.
func (c *Config) Validate() error {
	if c.GatewayEndpoint == "" {
		return fmt.Errorf("gateway_endpoint is required")
	}
	if c.IndexerEndpoint == "" {
		return fmt.Errorf("indexer_endpoint is required")
	}
	if c.AuthEndpoint == "" {
		return fmt.Errorf("auth_endpoint is required")
	}
	if c.ActingUser == "" {
		return fmt.Errorf("acting_user is required")
	}

	// Set defaults
	if c.RequestTimeout == 0 {
		c.RequestTimeout = 10 * time.Second
	}
	ApplyTrackDefaults(&c.Track)

	return nil
}

// Default returns a configuration with sensible defaults for local development.
func Default() Config {
	return Config{
		GatewayEndpoint: "http://localhost:7700",
		IndexerEndpoint: "http://localhost:8000/subgraphs/name/asset-tokenization",
		AuthEndpoint:    "http://localhost:7700/auth",
		RequestTimeout:  10 * time.Second,
		Track:           DefaultTrackConfig(),
	}
}

// DefaultTrackConfig returns recommended defaults for tracking behaviour.
func DefaultTrackConfig() TrackConfig {
	return TrackConfig{
		PollInterval:           500 * time.Millisecond,
		MiningTimeout:          30 * time.Second,
		IndexingTimeout:        30 * time.Second,
		PollMaxRetries:         0,
		PollBackoffMultiplier:  1,
		PollBackoffMaxInterval: 0,
		PollBackoffJitter:      0,
	}
}

// ApplyTrackDefaults normalizes zero or negative values using defaults.
func ApplyTrackDefaults(cfg *TrackConfig) {
	if cfg == nil {
		return
	}
	def := DefaultTrackConfig()

	if cfg.PollInterval <= 0 {
		cfg.PollInterval = def.PollInterval
	}
	if cfg.MiningTimeout <= 0 {
		cfg.MiningTimeout = def.MiningTimeout
	}
	if cfg.IndexingTimeout <= 0 {
		cfg.IndexingTimeout = def.IndexingTimeout
	}
	if cfg.PollBackoffMultiplier <= 0 {
		cfg.PollBackoffMultiplier = def.PollBackoffMultiplier
	}
	if cfg.PollMaxRetries < 0 {
		cfg.PollMaxRetries = 0
	}
	if cfg.PollBackoffJitter < 0 {
		cfg.PollBackoffJitter = 0
	}
	if cfg.PollBackoffJitter > 1 {
		cfg.PollBackoffJitter = 1
	}
}
