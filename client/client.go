package client

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/settlemint/asset-tokenization-kit-sub020/authn"
	"github.com/settlemint/asset-tokenization-kit-sub020/gateway"
	"github.com/settlemint/asset-tokenization-kit-sub020/indexer"
	"github.com/settlemint/asset-tokenization-kit-sub020/messages"
	sdklog "github.com/settlemint/asset-tokenization-kit-sub020/pkg/log"
	"github.com/settlemint/asset-tokenization-kit-sub020/tracker"
)

// Client provides unified access to the tokenization platform
type Client struct {
	// High-level modules
	Gateway *gateway.Client
	Indexer *indexer.Client
	Authn   *authn.Client
	Tracker *tracker.Tracker

	// Configuration
	config *Config
	logger sdklog.Logger
}

// New creates a new unified platform client
func New(cfg Config, opts ...Option) (*Client, error) {
	// Apply options
	for _, opt := range opts {
		opt(&cfg)
	}

	// Validate config
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	gatewayClient, err := gateway.New(gateway.Config{
		Endpoint:    cfg.GatewayEndpoint,
		AccessToken: cfg.AccessToken,
		Timeout:     cfg.RequestTimeout,
	}, cfg.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize gateway client: %w", err)
	}

	indexerClient, err := indexer.New(indexer.Config{
		Endpoint:    cfg.IndexerEndpoint,
		AccessToken: cfg.AccessToken,
		Timeout:     cfg.RequestTimeout,
	}, cfg.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize indexer client: %w", err)
	}

	authnClient, err := authn.New(authn.Config{
		Endpoint:    cfg.AuthEndpoint,
		AccessToken: cfg.AccessToken,
		Timeout:     cfg.RequestTimeout,
	}, cfg.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize auth client: %w", err)
	}

	trackerClient, err := tracker.New(gatewayClient, authnClient, cfg.Track,
		tracker.WithCatalog(messages.Default()),
		tracker.WithLogger(cfg.Logger),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize tracker: %w", err)
	}

	return &Client{
		Gateway: gatewayClient,
		Indexer: indexerClient,
		Authn:   authnClient,
		Tracker: trackerClient,
		config:  &cfg,
		logger:  cfg.Logger,
	}, nil
}

// NewWithZap creates a client whose diagnostics go to the provided zap logger.
func NewWithZap(cfg Config, logger *zap.Logger, opts ...Option) (*Client, error) {
	opts = append([]Option{WithLogger(sdklog.NewZapLogger(logger))}, opts...)
	return New(cfg, opts...)
}

// ActingUser returns the user identity this client authorizes operations as.
func (c *Client) ActingUser() string {
	return c.config.ActingUser
}

// Config returns the client configuration
func (c *Client) Config() Config {
	return *c.config
}
