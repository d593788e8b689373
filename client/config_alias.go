package client

import clientconfig "github.com/settlemint/asset-tokenization-kit-sub020/client/config"

// Config re-exports the config.Config type for backwards compatibility.
type Config = clientconfig.Config

// TrackConfig re-exports the tracking config type for backwards compatibility.
type TrackConfig = clientconfig.TrackConfig

// DefaultConfig mirrors config.Default.
func DefaultConfig() Config {
	return clientconfig.Default()
}

// DefaultTrackConfig mirrors config.DefaultTrackConfig.
func DefaultTrackConfig() TrackConfig {
	return clientconfig.DefaultTrackConfig()
}

// ApplyTrackDefaults mirrors config.ApplyTrackDefaults.
func ApplyTrackDefaults(cfg *TrackConfig) {
	clientconfig.ApplyTrackDefaults(cfg)
}
