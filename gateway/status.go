package gateway

import (
	"context"
	"fmt"

	"github.com/settlemint/asset-tokenization-kit-sub020/types"
)

type statusResponse struct {
	Status       string `json:"status"`
	BlockRef     string `json:"blockRef,omitempty"`
	RevertReason string `json:"revertReason,omitempty"`
}

// TransactionStatus reports the mining status of a previously accepted
// submission. Unknown gateway states are reported as pending so the poller
// keeps waiting rather than misclassifying.
func (c *Client) TransactionStatus(ctx context.Context, handle types.TransactionHandle) (types.TxStatus, error) {
	if handle == "" {
		return types.TxStatus{}, fmt.Errorf("%w: transaction handle is required", types.ErrInvalidRequest)
	}

	var body statusResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&body).
		Get("/transactions/" + string(handle))
	if err != nil {
		return types.TxStatus{}, &types.TransportError{Err: err}
	}
	if resp.IsError() {
		return types.TxStatus{}, fmt.Errorf("transaction status query failed: %s", resp.Status())
	}

	status := types.TxStatus{BlockRef: body.BlockRef, RevertReason: body.RevertReason}
	switch body.Status {
	case "mined":
		status.State = types.TxMined
	case "reverted":
		status.State = types.TxReverted
	case "dropped":
		status.State = types.TxDropped
	default:
		status.State = types.TxPending
	}
	return status, nil
}
