package gateway

import (
	"context"
	"fmt"

	"github.com/settlemint/asset-tokenization-kit-sub020/types"
)

type submitRequest struct {
	OperationID string         `json:"operationId"`
	Kind        string         `json:"kind"`
	Target      string         `json:"target"`
	Payload     map[string]any `json:"payload,omitempty"`
	UserID      string         `json:"userId"`
	ChallengeID string         `json:"challengeId"`
	Proof       string         `json:"proof"`
}

type submitResponse struct {
	TransactionID string `json:"transactionId"`
}

type gatewayError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// SubmitOperation performs the gateway's single state-changing call. The
// challenge proof is consumed whether or not the gateway accepts; on
// rejection the caller must re-authorize before trying again.
//
// A 4xx response maps to RejectionError (terminal, no transaction exists); a
// failure to reach the gateway maps to TransportError (safe to retry the
// whole run). No retry happens here.
func (c *Client) SubmitOperation(ctx context.Context, req types.OperationRequest, challenge types.AuthorizationChallenge) (types.TransactionHandle, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}
	if challenge.Proof == "" {
		return "", fmt.Errorf("%w: challenge proof is required", types.ErrInvalidRequest)
	}

	body := submitRequest{
		OperationID: req.ID,
		Kind:        req.Kind.String(),
		Target:      req.Target,
		Payload:     req.Payload,
		UserID:      req.ActingUser,
		ChallengeID: challenge.ChallengeID,
		Proof:       challenge.Proof,
	}

	var ok submitResponse
	var fail gatewayError
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&ok).
		SetError(&fail).
		Post("/operations")
	if err != nil {
		return "", &types.TransportError{Err: err}
	}

	if resp.IsError() {
		code := fail.Code
		if code == "" {
			code = resp.Status()
		}
		return "", &types.RejectionError{Code: code, Message: fail.Message}
	}

	if ok.TransactionID == "" {
		return "", &types.TransportError{Err: fmt.Errorf("empty transaction id in gateway response")}
	}

	c.logf("gateway: %s on %s accepted (tx=%s)", req.Kind, req.Target, ok.TransactionID)
	return types.TransactionHandle(ok.TransactionID), nil
}
