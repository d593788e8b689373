package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestApplyTrackDefaultsNormalizesValues(t *testing.T) {
	cfg := TrackConfig{
		PollInterval:      -1,
		PollMaxRetries:    -5,
		PollBackoffJitter: 2,
	}
	ApplyTrackDefaults(&cfg)

	require.Equal(t, 500*time.Millisecond, cfg.PollInterval)
	require.Equal(t, 30*time.Second, cfg.MiningTimeout)
	require.Equal(t, 30*time.Second, cfg.IndexingTimeout)
	require.Equal(t, 0, cfg.PollMaxRetries)
	require.Equal(t, float64(1), cfg.PollBackoffJitter)

	// nil is tolerated
	ApplyTrackDefaults(nil)
}

func TestValidateRequiresEndpointsAndActor(t *testing.T) {
	cfg := Default()
	cfg.ActingUser = "user-1"
	require.NoError(t, cfg.Validate())

	missing := cfg
	missing.GatewayEndpoint = ""
	require.ErrorContains(t, missing.Validate(), "gateway_endpoint")

	missing = cfg
	missing.AuthEndpoint = ""
	require.ErrorContains(t, missing.Validate(), "auth_endpoint")
}

func TestValidateKeepsExplicitTimeouts(t *testing.T) {
	cfg := Default()
	cfg.ActingUser = "user-1"
	cfg.RequestTimeout = 3 * time.Second
	cfg.Track.MiningTimeout = 2 * time.Minute

	require.NoError(t, cfg.Validate())
	require.Equal(t, 3*time.Second, cfg.RequestTimeout)
	require.Equal(t, 2*time.Minute, cfg.Track.MiningTimeout)
}
