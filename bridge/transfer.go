package bridge

import (
	"context"

	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/pkg/errors"

	"github.com/CoreumFoundation/xrplbridge-core/transfer"
	"github.com/CoreumFoundation/xrplbridge-core/types"
	"github.com/CoreumFoundation/xrplbridge-core/xrpl"
)

// SendToXRPLResult is the enqueued operation plus the prepared transfer bookkeeping, per spec.md
// §4.6 Outbound step 9 and §6's SendToXRPL row.
type SendToXRPLResult struct {
	Operation types.Operation
	Outbound  transfer.OutboundResult
}

// SendToXRPL validates and queues an outbound Host→XRPL transfer: it resolves the token, applies
// the numeric kernel in the Host→XRPL order for its origin, burns the sender's Host-originated
// mirror token (XRPL-originated token path) or escrows it (Host-originated token path), collects
// the bridging fee, reports the gross flow to the rate limiter, and consumes a ticket to enqueue
// the HostToXRPLTransfer operation.
func (c *Core) SendToXRPL(
	ctx context.Context,
	sender sdk.AccAddress,
	coin sdk.Coin,
	recipient string,
	deliverAmount *sdkmath.Int,
) (SendToXRPLResult, error) {
	if err := c.requireActive(); err != nil {
		return SendToXRPLResult{}, err
	}
	if err := xrpl.ValidateAddress(recipient); err != nil {
		return SendToXRPLResult{}, err
	}

	result, err := transfer.Outbound(c.XRPLTokens, c.HostTokens, c.Balances, c.Prohibited.Map(), transfer.OutboundRequest{
		Sender:        sender,
		Coin:          coin,
		Recipient:     recipient,
		DeliverAmount: deliverAmount,
	})
	if err != nil {
		return SendToXRPLResult{}, err
	}

	isHostOriginated := result.EscrowCredit.IsPositive()
	if !isHostOriginated && c.Minter != nil {
		if err := c.Minter.BurnTokens(ctx, coin.Denom, coin.Amount, sender); err != nil {
			return SendToXRPLResult{}, errors.Wrap(err, "burn outbound amount")
		}
	}

	op, err := c.enqueueTicketOperation(types.OperationType{HostToXRPLTransfer: &types.OperationTypeHostToXRPLTransfer{
		Issuer:          result.Issuer,
		Currency:        result.Currency,
		Amount:          coin.Amount,
		MaxAmount:       result.MaxAmount,
		Sender:          sender,
		Recipient:       recipient,
		FeeContribution: result.FeeContribution,
	}})
	if err != nil {
		return SendToXRPLResult{}, err
	}

	if result.FeeContribution.IsPositive() {
		c.Fees.Collect(result.HostDenom, result.FeeContribution, c.relayerHostAddresses())
	}
	if c.RateLimiter != nil {
		if err := c.RateLimiter.SendPacket(ctx, "", result.HostDenom, result.RateLimitAmount); err != nil {
			return SendToXRPLResult{}, errors.Wrap(err, "rate limit")
		}
	}
	c.maybeAutoReplenishTickets()

	return SendToXRPLResult{Operation: op, Outbound: result}, nil
}

// ClaimRefund pays out a pending refund owed to caller, per spec.md §4.6 Refund / §6's
// ClaimRefund row ("any" caller, bridge Active, owns the claim). The caller must already have
// received the coin via the chain module's bank keeper; Core only retires the bookkeeping record.
func (c *Core) ClaimRefund(caller sdk.AccAddress, id string) (types.PendingRefund, error) {
	if err := c.requireActive(); err != nil {
		return types.PendingRefund{}, err
	}
	return c.Refunds.Claim(caller, id)
}

// ClaimRelayerFees pays out part or all of caller's claimable relayer fees, per spec.md §4.8 /
// §6's ClaimRelayerFees row ("any" caller, bridge Active, has claimable). Fails all-or-nothing if
// any requested coin exceeds what is currently claimable.
func (c *Core) ClaimRelayerFees(caller sdk.AccAddress, coins sdk.Coins) error {
	if err := c.requireActive(); err != nil {
		return err
	}
	return c.Fees.Claim(caller, coins)
}
