package transfer

import (
	"fmt"

	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/CoreumFoundation/xrplbridge-core/store"
	"github.com/CoreumFoundation/xrplbridge-core/types"
)

// RefundStore is the keyed store of refunds owed to senders of rejected outbound transfers.
type RefundStore struct {
	byID *store.Map[string, types.PendingRefund]
}

// NewRefundStore returns an empty RefundStore.
func NewRefundStore() *RefundStore {
	return &RefundStore{byID: store.NewMap[string, types.PendingRefund]()}
}

// ForOwner lists refunds owed to owner, in insertion order.
func (s *RefundStore) ForOwner(owner sdk.AccAddress) []types.PendingRefund {
	var out []types.PendingRefund
	for _, id := range s.byID.Keys() {
		r, _ := s.byID.Get(id)
		if r.Owner.Equals(owner) {
			out = append(out, r)
		}
	}
	return out
}

// Claim removes and returns the refund owed to owner under id, failing with
// ErrPendingRefundNotFound if it doesn't exist or belongs to someone else.
func (s *RefundStore) Claim(owner sdk.AccAddress, id string) (types.PendingRefund, error) {
	r, ok := s.byID.Get(id)
	if !ok || !r.Owner.Equals(owner) {
		return types.PendingRefund{}, errors.WithStack(types.ErrPendingRefundNotFound)
	}
	s.byID.Delete(id)
	return r, nil
}

// OutboundOutcome is the effect of a committed XRPLTransactionResult evidence for a pending
// HostToXRPLTransfer operation (spec.md §4.4, §4.6 Refund).
type OutboundOutcome struct {
	// Burn is set on Accepted for a Host-originated escrow transfer; EscrowOnly tokens are not
	// physically burned on Host (their supply lives on XRPL), this just clears the escrow entry.
	EscrowRelease *EscrowRelease
	// Refund is set on Rejected: the net amount (after fees/truncation) owed back to the sender.
	Refund *types.PendingRefund
	// ReturnTicket is set when the operation must give its ticket back to the pool (Invalid).
	ReturnTicket bool
}

// CompleteOutbound applies the outcome of a committed XRPLTransactionResult evidence to a
// pending HostToXRPLTransfer operation, per spec.md §4.4: Accepted burns escrow (host-originated)
// or confirms the mint/burn cycle for XRPL-originated tokens; Rejected credits a PendingRefund
// for the sender's net amount; Invalid treats the operation as never having happened and returns
// its ticket. Truncated sub-precision units are never refunded -- they were already folded into
// the fee contribution at enqueue time.
func CompleteOutbound(
	refunds *RefundStore,
	balances *Balances,
	isHostOriginated bool,
	result types.TransactionResult,
	op types.OperationTypeHostToXRPLTransfer,
	hostDenom string,
	netAmount sdkmath.Int,
) OutboundOutcome {
	switch result {
	case types.TransactionResultAccepted:
		if isHostOriginated {
			balances.debitEscrow(hostDenom, op.Amount)
			return OutboundOutcome{EscrowRelease: &EscrowRelease{Denom: hostDenom, Amount: op.Amount, To: op.Sender}}
		}
		return OutboundOutcome{}
	case types.TransactionResultRejected:
		refund := types.PendingRefund{
			ID:         uuid.NewString(),
			Owner:      op.Sender,
			XRPLTxHash: "",
			Coin:       sdk.NewCoin(hostDenom, netAmount),
		}
		refunds.byID.Set(refund.ID, refund)
		if isHostOriginated {
			balances.debitEscrow(hostDenom, op.Amount)
		}
		return OutboundOutcome{Refund: &refund}
	case types.TransactionResultInvalid:
		if isHostOriginated {
			balances.debitEscrow(hostDenom, op.Amount)
		}
		return OutboundOutcome{ReturnTicket: true}
	default:
		panic(fmt.Sprintf("unhandled transaction result %q", result))
	}
}
