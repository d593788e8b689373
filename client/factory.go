package client

import (
	"fmt"
)

// Factory keeps a base configuration so callers can easily create per-actor
// clients without re-specifying shared settings.
type Factory struct {
	baseCfg Config
	opts    []Option
}

// NewFactory captures the shared configuration. The base config may omit
// ActingUser; it is supplied when creating actor-specific clients.
func NewFactory(cfg Config, opts ...Option) (*Factory, error) {
	if cfg.GatewayEndpoint == "" {
		return nil, fmt.Errorf("gateway endpoint is required")
	}
	return &Factory{
		baseCfg: cfg,
		opts:    append([]Option{}, opts...),
	}, nil
}

// WithActor returns a Client bound to the provided user identity. Extra
// options override/extend the factory defaults for this instance.
func (f *Factory) WithActor(user string, extraOpts ...Option) (*Client, error) {
	if user == "" {
		return nil, fmt.Errorf("acting user is required")
	}

	cfg := f.baseCfg
	cfg.ActingUser = user

	opts := append([]Option{}, f.opts...)
	opts = append(opts, extraOpts...)

	return New(cfg, opts...)
}
