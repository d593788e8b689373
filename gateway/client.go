package gateway

import (
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	sdklog "github.com/settlemint/asset-tokenization-kit-sub020/pkg/log"
)

// Config for the transaction gateway client
type Config struct {
	Endpoint    string
	AccessToken string
	Timeout     time.Duration
}

// Validate checks the configuration and populates defaults.
func (c *Config) Validate() error {
	if c.Endpoint == "" {
		return fmt.Errorf("gateway endpoint is required")
	}
	if c.Timeout == 0 {
		c.Timeout = 10 * time.Second
	}
	return nil
}

// Client talks to the platform's transaction gateway. Safe for concurrent
// use by multiple in-flight operations.
type Client struct {
	http   *resty.Client
	logger sdklog.Logger
}

// New creates a new gateway client
func New(cfg Config, logger sdklog.Logger) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid gateway config: %w", err)
	}

	http := resty.New().
		SetBaseURL(cfg.Endpoint).
		SetTimeout(cfg.Timeout).
		SetHeader("Content-Type", "application/json")
	if cfg.AccessToken != "" {
		http.SetAuthToken(cfg.AccessToken)
	}

	return &Client{http: http, logger: logger}, nil
}

func (c *Client) logf(format string, v ...interface{}) {
	sdklog.Infof(c.logger, format, v...)
}
