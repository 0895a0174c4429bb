// Package ports declares the bridge core's external collaborator interfaces (spec.md §4.9-4.11):
// the rate-limit port, the mint/denom port, and the post-arrival universal-swap hook. All three
// are out of scope to implement (spec.md §1 Non-goals) -- the core only depends on these shapes,
// never on a concrete backing implementation.
package ports

import (
	"context"

	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// RateLimiter tracks per-(channel, denom) flow windows and enforces a quota (spec.md §4.9). The
// core calls Send on outbound operation enqueue with the un-truncated outbound amount, and Recv
// on inbound commit with the post-conversion amount. Either call may fail the enclosing
// transaction if the configured quota would be exceeded.
type RateLimiter interface {
	SendPacket(ctx context.Context, channel, denom string, amount sdkmath.Int) error
	RecvPacket(ctx context.Context, channel, denom string, amount sdkmath.Int) error
}

// Minter is the host chain's native token-minting facility (spec.md §4.10): create a
// denomination, mint, and burn. The core is always both the caller and the denom's admin.
type Minter interface {
	CreateDenom(ctx context.Context, subdenom string, metadata *DenomMetadata) (denom string, err error)
	MintTokens(ctx context.Context, denom string, amount sdkmath.Int, to sdk.AccAddress) error
	BurnTokens(ctx context.Context, denom string, amount sdkmath.Int, from sdk.AccAddress) error
}

// DenomMetadata is optional descriptive metadata attached to a newly created denom.
type DenomMetadata struct {
	Name        string
	Symbol      string
	Description string
	Decimals    uint32
}

// SwapHook is the optional post-arrival "universal swap" entrypoint (spec.md §4.11): a single
// RPC taking one coin, invoked as a child call of the inbound-transfer commit. The core does not
// retry a failed call and does not move funds itself: it reports the failure together with the
// recovery record (transfer.RecoveryRecord), and the caller transfers ReturnAmount back to
// RecoveryAddress.
type SwapHook interface {
	UniversalSwap(ctx context.Context, recipient sdk.AccAddress, coin sdk.Coin, memo string) error
}

// RecoveryRecord describes the compensating transfer owed when a SwapHook call fails
// (spec.md §4.11, §5). The core itself reports that transfer with transfer.RecoveryRecord, which
// has the same fields, and does not persist either record.
type RecoveryRecord struct {
	RecoveryAddress sdk.AccAddress
	ReturnAmount    sdk.Coin
}
