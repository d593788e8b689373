package indexer

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	waittx "github.com/settlemint/asset-tokenization-kit-sub020/internal/wait-tx"
	sdklog "github.com/settlemint/asset-tokenization-kit-sub020/pkg/log"
)

// Config for the indexer client
type Config struct {
	Endpoint    string
	AccessToken string
	Timeout     time.Duration
}

// Validate checks the configuration and populates defaults.
func (c *Config) Validate() error {
	if c.Endpoint == "" {
		return fmt.Errorf("indexer endpoint is required")
	}
	if c.Timeout == 0 {
		c.Timeout = 10 * time.Second
	}
	return nil
}

// Client queries the subgraph indexer over GraphQL. Safe for concurrent use.
type Client struct {
	http   *resty.Client
	logger sdklog.Logger
}

// New creates a new indexer client
func New(cfg Config, logger sdklog.Logger) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid indexer config: %w", err)
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

type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type graphqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// Query executes a GraphQL document and unmarshals the data envelope into
// out. GraphQL-level errors are returned as a single error.
func (c *Client) Query(ctx context.Context, query string, variables map[string]any, out any) error {
	var body graphqlResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(graphqlRequest{Query: query, Variables: variables}).
		SetResult(&body).
		Post("")
	if err != nil {
		return fmt.Errorf("indexer query: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("indexer query failed: %s", resp.Status())
	}
	if len(body.Errors) > 0 {
		return fmt.Errorf("indexer query error: %s", body.Errors[0].Message)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body.Data, out); err != nil {
		return fmt.Errorf("decode indexer response: %w", err)
	}
	return nil
}

// EntityProbe builds a wait-tx probe: it runs the query each poll cycle and
// applies predicate to the decoded data envelope. Query failures are
// transient; the poller keeps going until its deadline.
func (c *Client) EntityProbe(query string, variables map[string]any, predicate func(data json.RawMessage) bool) waittx.Probe {
	return func(ctx context.Context) (bool, error) {
		var raw json.RawMessage
		if err := c.Query(ctx, query, variables, &raw); err != nil {
			return false, err
		}
		return predicate(raw), nil
	}
}

func (c *Client) logf(format string, v ...interface{}) {
	sdklog.Infof(c.logger, format, v...)
}
