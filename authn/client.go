package authn

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	sdklog "github.com/settlemint/asset-tokenization-kit-sub020/pkg/log"
	"github.com/settlemint/asset-tokenization-kit-sub020/types"
)

// Config for the authorization service client
type Config struct {
	Endpoint    string
	AccessToken string
	Timeout     time.Duration
}

// Validate checks the configuration and populates defaults.
func (c *Config) Validate() error {
	if c.Endpoint == "" {
		return fmt.Errorf("auth endpoint is required")
	}
	if c.Timeout == 0 {
		c.Timeout = 10 * time.Second
	}
	return nil
}

// Client issues authorization challenges via the platform auth service.
type Client struct {
	http   *resty.Client
	logger sdklog.Logger
}

// New creates a new authorization service client
func New(cfg Config, logger sdklog.Logger) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid auth config: %w", err)
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

type challengeRequest struct {
	UserID string `json:"userId"`
	Action string `json:"action"`
}

type challengeResponse struct {
	ChallengeID string `json:"challengeId"`
	Proof       string `json:"proof"`
}

type challengeError struct {
	ErrorCode string `json:"errorCode"`
	Message   string `json:"message"`
}

// ObtainChallenge requests a single-use proof bound to the user and action.
// The action descriptor is display-only; policy lives server-side.
func (c *Client) ObtainChallenge(ctx context.Context, user, actionDescriptor string) (types.AuthorizationChallenge, error) {
	if user == "" {
		return types.AuthorizationChallenge{}, fmt.Errorf("%w: user is required", types.ErrInvalidRequest)
	}

	var ok challengeResponse
	var fail challengeError
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(challengeRequest{UserID: user, Action: actionDescriptor}).
		SetResult(&ok).
		SetError(&fail).
		Post("/challenges")
	if err != nil {
		return types.AuthorizationChallenge{}, &types.TransportError{Err: err}
	}

	if resp.IsError() {
		return types.AuthorizationChallenge{}, &types.AuthError{
			Reason:  classifyAuthCode(fail.ErrorCode),
			Message: fail.Message,
		}
	}

	if ok.Proof == "" {
		return types.AuthorizationChallenge{}, &types.AuthError{Reason: types.AuthNoFactor, Message: "auth service returned no proof"}
	}

	sdklog.Infof(c.logger, "authn: challenge %s issued for %s", ok.ChallengeID, user)
	return types.AuthorizationChallenge{ChallengeID: ok.ChallengeID, Proof: ok.Proof}, nil
}

func classifyAuthCode(code string) types.AuthReason {
	switch code {
	case "WRONG_SECRET", "INVALID_PIN", "INVALID_OTP":
		return types.AuthWrongSecret
	case "FACTOR_EXPIRED", "CHALLENGE_EXPIRED":
		return types.AuthFactorExpired
	case "FACTOR_LOCKED", "TOO_MANY_ATTEMPTS":
		return types.AuthFactorLocked
	default:
		return types.AuthNoFactor
	}
}
