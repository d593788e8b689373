package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/settlemint/asset-tokenization-kit-sub020/types"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := New(Config{Endpoint: srv.URL, AccessToken: "token"}, nil)
	require.NoError(t, err)
	return c
}

func mintRequest() types.OperationRequest {
	return types.NewOperationRequest(types.KindMint, "0xToken", "user-1", map[string]any{"amount": "100"})
}

func TestSubmitOperationReturnsHandle(t *testing.T) {
	var got submitRequest
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/operations", r.URL.Path)
		require.Equal(t, "Bearer token", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"transactionId": "0xdeadbeef"})
	}))

	handle, err := c.SubmitOperation(context.Background(), mintRequest(), types.AuthorizationChallenge{ChallengeID: "ch-1", Proof: "123456"})
	require.NoError(t, err)
	require.Equal(t, types.TransactionHandle("0xdeadbeef"), handle)
	require.Equal(t, "mint", got.Kind)
	require.Equal(t, "ch-1", got.ChallengeID)
	require.Equal(t, "123456", got.Proof)
}

func TestSubmitOperationMapsRejection(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		_ = json.NewEncoder(w).Encode(map[string]string{"code": "PERMISSION_DENIED", "message": "missing SUPPLY_MANAGEMENT role"})
	}))

	_, err := c.SubmitOperation(context.Background(), mintRequest(), types.AuthorizationChallenge{ChallengeID: "ch-1", Proof: "123456"})
	var rej *types.RejectionError
	require.ErrorAs(t, err, &rej)
	require.Equal(t, "PERMISSION_DENIED", rej.Code)
	require.Equal(t, "missing SUPPLY_MANAGEMENT role", rej.Message)
}

func TestSubmitOperationMapsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close() // connection refused from here on

	c, err := New(Config{Endpoint: srv.URL}, nil)
	require.NoError(t, err)

	_, err = c.SubmitOperation(context.Background(), mintRequest(), types.AuthorizationChallenge{ChallengeID: "ch-1", Proof: "123456"})
	var transport *types.TransportError
	require.ErrorAs(t, err, &transport)
}

func TestSubmitOperationRequiresProof(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("gateway must not be called without a proof")
	}))

	_, err := c.SubmitOperation(context.Background(), mintRequest(), types.AuthorizationChallenge{})
	require.True(t, errors.Is(err, types.ErrInvalidRequest))
}

func TestTransactionStatusMapping(t *testing.T) {
	cases := []struct {
		body string
		want types.TxStatus
	}{
		{`{"status":"pending"}`, types.TxStatus{State: types.TxPending}},
		{`{"status":"mined","blockRef":"0x10"}`, types.TxStatus{State: types.TxMined, BlockRef: "0x10"}},
		{`{"status":"reverted","blockRef":"0x11","revertReason":"InsufficientBalance"}`, types.TxStatus{State: types.TxReverted, BlockRef: "0x11", RevertReason: "InsufficientBalance"}},
		{`{"status":"dropped"}`, types.TxStatus{State: types.TxDropped}},
		{`{"status":"speculative"}`, types.TxStatus{State: types.TxPending}},
	}

	for _, tc := range cases {
		body := tc.body
		c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/transactions/0xabc", r.URL.Path)
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(body))
		}))

		status, err := c.TransactionStatus(context.Background(), "0xabc")
		require.NoError(t, err)
		require.Equal(t, tc.want, status)
	}
}
