package client

import (
	"time"

	sdklog "github.com/settlemint/asset-tokenization-kit-sub020/pkg/log"
)

// Option is a function that modifies Config
type Option func(*Config)

// WithGatewayEndpoint sets the transaction gateway base URL
func WithGatewayEndpoint(endpoint string) Option {
	return func(c *Config) {
		c.GatewayEndpoint = endpoint
	}
}

// WithIndexerEndpoint sets the subgraph indexer URL
func WithIndexerEndpoint(endpoint string) Option {
	return func(c *Config) {
		c.IndexerEndpoint = endpoint
	}
}

// WithAuthEndpoint sets the authorization service URL
func WithAuthEndpoint(endpoint string) Option {
	return func(c *Config) {
		c.AuthEndpoint = endpoint
	}
}

// WithAccessToken sets the platform API token
func WithAccessToken(token string) Option {
	return func(c *Config) {
		c.AccessToken = token
	}
}

// WithActingUser sets the user identity operations are authorized as
func WithActingUser(user string) Option {
	return func(c *Config) {
		c.ActingUser = user
	}
}

// WithRequestTimeout sets the per-HTTP-call timeout
func WithRequestTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		c.RequestTimeout = timeout
	}
}

// WithTrackConfig sets the tracking behaviour wholesale
func WithTrackConfig(track TrackConfig) Option {
	return func(c *Config) {
		c.Track = track
	}
}

// WithPollInterval sets how frequently mining and indexing are polled
func WithPollInterval(interval time.Duration) Option {
	return func(c *Config) {
		c.Track.PollInterval = interval
	}
}

// WithMiningTimeout bounds the wait for a terminal mining status
func WithMiningTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		c.Track.MiningTimeout = timeout
	}
}

// WithIndexingTimeout bounds the wait for indexer visibility
func WithIndexingTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		c.Track.IndexingTimeout = timeout
	}
}

// WithLogger sets the diagnostics logger
func WithLogger(logger sdklog.Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}
