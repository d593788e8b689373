package authn

import (
	"context"

	"github.com/settlemint/asset-tokenization-kit-sub020/types"
)

// Provider obtains a single-use authorization challenge for one pending
// operation. Implementations must not retry internally: a failed issuance is
// surfaced to the caller, who re-authorizes explicitly.
type Provider interface {
	ObtainChallenge(ctx context.Context, user, actionDescriptor string) (types.AuthorizationChallenge, error)
}
