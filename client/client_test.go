package client

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	return Config{
		GatewayEndpoint: "http://gateway.local",
		IndexerEndpoint: "http://indexer.local/subgraph",
		AuthEndpoint:    "http://auth.local",
		ActingUser:      "user-1",
	}
}

func TestNewBuildsAllModules(t *testing.T) {
	c, err := New(validConfig())
	require.NoError(t, err)
	require.NotNil(t, c.Gateway)
	require.NotNil(t, c.Indexer)
	require.NotNil(t, c.Authn)
	require.NotNil(t, c.Tracker)
	require.Equal(t, "user-1", c.ActingUser())
}

func TestNewRejectsIncompleteConfig(t *testing.T) {
	cfg := validConfig()
	cfg.IndexerEndpoint = ""
	_, err := New(cfg)
	require.ErrorContains(t, err, "indexer_endpoint")

	cfg = validConfig()
	cfg.ActingUser = ""
	_, err = New(cfg)
	require.ErrorContains(t, err, "acting_user")
}

func TestOptionsOverrideConfig(t *testing.T) {
	c, err := New(validConfig(),
		WithActingUser("user-2"),
		WithPollInterval(250*time.Millisecond),
		WithMiningTimeout(2*time.Minute),
	)
	require.NoError(t, err)
	require.Equal(t, "user-2", c.ActingUser())
	require.Equal(t, 250*time.Millisecond, c.Config().Track.PollInterval)
	require.Equal(t, 2*time.Minute, c.Config().Track.MiningTimeout)
}

func TestConfigDefaultsApplied(t *testing.T) {
	c, err := New(validConfig())
	require.NoError(t, err)

	cfg := c.Config()
	require.Equal(t, 10*time.Second, cfg.RequestTimeout)
	require.Equal(t, 500*time.Millisecond, cfg.Track.PollInterval)
	require.Equal(t, 30*time.Second, cfg.Track.MiningTimeout)
	require.Equal(t, 30*time.Second, cfg.Track.IndexingTimeout)
}

func TestFactoryStampsPerActorClients(t *testing.T) {
	base := validConfig()
	base.ActingUser = ""
	f, err := NewFactory(base, WithAccessToken("token"))
	require.NoError(t, err)

	alice, err := f.WithActor("alice")
	require.NoError(t, err)
	require.Equal(t, "alice", alice.ActingUser())

	bob, err := f.WithActor("bob", WithRequestTimeout(3*time.Second))
	require.NoError(t, err)
	require.Equal(t, "bob", bob.ActingUser())
	require.Equal(t, 3*time.Second, bob.Config().RequestTimeout)
	// the sibling client keeps the defaults
	require.Equal(t, 10*time.Second, alice.Config().RequestTimeout)

	_, err = f.WithActor("")
	require.Error(t, err)
}
