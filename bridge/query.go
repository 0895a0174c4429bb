package bridge

import (
	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/CoreumFoundation/xrplbridge-core/types"
)

// defaultPageLimit and maxPageLimit bound every paginated query, per spec.md §6 "bounded limit,
// default/max 250".
const (
	defaultPageLimit = 250
	maxPageLimit     = 250
)

func boundLimit(limit int) int {
	if limit <= 0 {
		return defaultPageLimit
	}
	if limit > maxPageLimit {
		return maxPageLimit
	}
	return limit
}

// BridgeState returns the bridge's current lifecycle state.
func (c *Core) BridgeState() types.BridgeState {
	return c.Config.BridgeState
}

// AvailableTickets returns the tickets currently held by the pool, in FIFO consumption order.
func (c *Core) AvailableTickets() []uint32 {
	return c.Tickets.Available()
}

// FeesCollected returns relayer's current claimable fee balances.
func (c *Core) FeesCollected(relayer sdk.AccAddress) sdk.Coins {
	return c.Fees.Claimable(relayer)
}

// XRPLToken looks up a single registered XRPL token by its issuer/currency key.
func (c *Core) XRPLToken(issuer, currency string) (types.XRPLToken, bool) {
	return c.XRPLTokens.Get(issuer, currency)
}

// HostToken looks up a single registered Host token by its denom.
func (c *Core) HostToken(denom string) (types.HostToken, bool) {
	return c.HostTokens.Get(denom)
}

// XRPLTokensPage lists registered XRPL tokens, paginated by issuer/currency key.
func (c *Core) XRPLTokensPage(startAfter *string, limit int) ([]types.XRPLToken, *string) {
	return c.XRPLTokens.Page(startAfter, boundLimit(limit))
}

// HostTokensPage lists registered Host tokens, paginated by denom.
func (c *Core) HostTokensPage(startAfter *string, limit int) ([]types.HostToken, *string) {
	return c.HostTokens.Page(startAfter, boundLimit(limit))
}

// PendingOperation looks up a single pending operation by its ticket/account-sequence key.
func (c *Core) PendingOperation(id uint32) (types.Operation, bool) {
	return c.Operations.Get(id)
}

// PendingOperationsPage lists pending operations, paginated by ID.
func (c *Core) PendingOperationsPage(startAfter *uint32, limit int) ([]types.Operation, *uint32) {
	return c.Operations.Page(startAfter, boundLimit(limit))
}

// PendingRefunds lists every refund owed to owner.
func (c *Core) PendingRefunds(owner sdk.AccAddress) []types.PendingRefund {
	return c.Refunds.ForOwner(owner)
}

// TransactionEvidence returns the in-flight attestation set for hash, if any relayer has
// attested to it but quorum hasn't yet been reached.
func (c *Core) TransactionEvidence(hash string) (types.TransactionEvidence, bool) {
	return c.Evidence.Evidence(hash)
}

// TransactionEvidencesPage lists in-flight attestation sets, paginated by hash.
func (c *Core) TransactionEvidencesPage(startAfter *string, limit int) ([]types.TransactionEvidence, *string) {
	return c.Evidence.PageEvidences(startAfter, boundLimit(limit))
}

// ProcessedTx reports whether txHash has already been committed under any evidence kind.
func (c *Core) ProcessedTx(txHash string) bool {
	return c.Evidence.HasProcessed(txHash)
}

// ProcessedTxsPage lists committed XRPL transaction hashes, paginated.
func (c *Core) ProcessedTxsPage(startAfter *string, limit int) ([]string, *string) {
	return c.Evidence.PageProcessedTxs(startAfter, boundLimit(limit))
}

// ProhibitedXRPLAddresses returns the current prohibited-recipient set, unordered.
func (c *Core) ProhibitedXRPLAddresses() map[string]struct{} {
	return c.Prohibited.Map()
}

// EscrowFor returns the current Host-originated escrow bookkeeping for hostDenom (spec.md §4.9
// token-supply invariant).
func (c *Core) EscrowFor(hostDenom string) sdkmath.Int {
	return c.Balances.Escrow(hostDenom)
}

// MirroredSupplyFor returns the current mirrored-supply bookkeeping for hostDenom (spec.md §4.9
// token-supply invariant), the XRPL-originated counterpart to EscrowFor.
func (c *Core) MirroredSupplyFor(hostDenom string) sdkmath.Int {
	return c.Balances.MirroredSupply(hostDenom)
}
