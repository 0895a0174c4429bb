package transfer

import (
	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/pkg/errors"

	"github.com/CoreumFoundation/xrplbridge-core/numeric"
	"github.com/CoreumFoundation/xrplbridge-core/registry"
	"github.com/CoreumFoundation/xrplbridge-core/types"
	"github.com/CoreumFoundation/xrplbridge-core/xrpl"
)

// OutboundRequest is a "send to XRPL" request (spec.md §4.6 Outbound).
type OutboundRequest struct {
	Sender        sdk.AccAddress
	Coin          sdk.Coin
	Recipient     string
	DeliverAmount *sdkmath.Int
}

// OutboundResult is the enqueued operation's payload: the amounts to encode on the XRPL side,
// and the bookkeeping the caller must apply (fee collection, ticket consumption, operation
// enqueue). A Host-originated transfer's escrow credit is already applied to balances by
// Outbound itself.
type OutboundResult struct {
	Issuer          string
	Currency        string
	HostDenom       string
	AmountToSend    sdkmath.Int
	MaxAmount       *sdkmath.Int
	FeeContribution sdkmath.Int
	EscrowCredit    sdkmath.Int
	// RateLimitAmount is the original's `increase_limit_amount`: the gross transferred funds
	// truncated at sending precision in the token's native decimals, before bridging fees are
	// deducted -- distinct from AmountToSend, which is net-of-fee (contract.rs:1197-1199).
	RateLimitAmount sdkmath.Int
}

// Outbound validates and prepares a SendToXRPL request, applying the numeric kernel in the
// Host→XRPL order for the resolved token's origin. It does not mutate ticket pool, operation
// queue or fee ledger state directly; the caller uses the returned OutboundResult to do so
// alongside enqueuing the HostToXRPLTransfer operation (this keeps the ticket-conservation and
// operation-versioning invariants owned by a single call site in package bridge).
func Outbound(
	xrplTokens *registry.XRPLTokenStore,
	hostTokens *registry.HostTokenStore,
	balances *Balances,
	prohibited map[string]struct{},
	req OutboundRequest,
) (OutboundResult, error) {
	if _, isProhibited := prohibited[req.Recipient]; isProhibited {
		return OutboundResult{}, errors.WithStack(types.ErrProhibitedAddress)
	}
	if !req.Coin.Amount.IsPositive() {
		return OutboundResult{}, errors.WithStack(types.ErrAmountSentIsZeroAfterTruncation)
	}

	xrplToken, isXRPLOriginated := xrplTokens.GetByHostDenom(req.Coin.Denom)
	if isXRPLOriginated {
		return outboundXRPLOriginated(xrplToken, req)
	}

	hostToken, ok := hostTokens.Get(req.Coin.Denom)
	if !ok {
		return OutboundResult{}, errors.WithStack(types.ErrTokenNotRegistered)
	}
	if hostToken.State != types.TokenStateEnabled {
		return OutboundResult{}, errors.WithStack(types.ErrTokenNotEnabled)
	}
	if req.DeliverAmount != nil {
		return OutboundResult{}, errors.WithStack(types.ErrDeliverAmountIsProhibited)
	}

	newEscrow := balances.Escrow(hostToken.HostDenom).Add(req.Coin.Amount)
	if newEscrow.GT(hostToken.MaxHoldingAmount) {
		return OutboundResult{}, errors.WithStack(types.ErrMaximumBridgedAmountReached)
	}

	rateLimitAmount, _, err := numeric.TruncateAmount(hostToken.SendingPrecision, hostToken.Decimals, req.Coin.Amount)
	if err != nil {
		return OutboundResult{}, err
	}
	amountToSend, remainder, err := numeric.TruncateAndConvert(
		hostToken.SendingPrecision, hostToken.Decimals, xrpl.IssuedTokenDecimals, req.Coin.Amount, hostToken.BridgingFee,
	)
	if err != nil {
		return OutboundResult{}, err
	}
	if err := numeric.ValidateXRPLAmount(amountToSend); err != nil {
		return OutboundResult{}, err
	}

	balances.creditEscrow(hostToken.HostDenom, req.Coin.Amount)

	return OutboundResult{
		Issuer:          xrpl.XRPIssuer(),
		Currency:        hostToken.XRPLCurrency,
		HostDenom:       hostToken.HostDenom,
		AmountToSend:    amountToSend,
		FeeContribution: hostToken.BridgingFee.Add(remainder),
		EscrowCredit:    req.Coin.Amount,
		RateLimitAmount: rateLimitAmount,
	}, nil
}

func outboundXRPLOriginated(token types.XRPLToken, req OutboundRequest) (OutboundResult, error) {
	if token.State != types.TokenStateEnabled {
		return OutboundResult{}, errors.WithStack(types.ErrTokenNotEnabled)
	}

	decimals := uint32(xrpl.IssuedTokenDecimals)
	isXRP := xrpl.IsXRP(token.Issuer, token.Currency)
	if isXRP {
		decimals = xrpl.XRPDecimals
	}
	if isXRP && req.DeliverAmount != nil {
		return OutboundResult{}, errors.WithStack(types.ErrDeliverAmountIsProhibited)
	}

	rateLimitAmount, _, err := numeric.TruncateAmount(token.SendingPrecision, decimals, req.Coin.Amount)
	if err != nil {
		return OutboundResult{}, err
	}
	afterFee, err := numeric.AfterBridgingFee(req.Coin.Amount, token.BridgingFee)
	if err != nil {
		return OutboundResult{}, err
	}
	maxAmount, remainder, err := numeric.TruncateAmount(token.SendingPrecision, decimals, afterFee)
	if err != nil {
		return OutboundResult{}, err
	}
	if err := numeric.ValidateXRPLAmount(maxAmount); err != nil {
		return OutboundResult{}, err
	}

	amountToSend := maxAmount
	var maxAmountPtr *sdkmath.Int
	if req.DeliverAmount != nil {
		if req.DeliverAmount.GT(afterFee) {
			return OutboundResult{}, errors.WithStack(types.ErrInvalidDeliverAmount)
		}
		deliverTruncated, _, err := numeric.TruncateAmount(token.SendingPrecision, decimals, *req.DeliverAmount)
		if err != nil {
			return OutboundResult{}, err
		}
		if err := numeric.ValidateXRPLAmount(deliverTruncated); err != nil {
			return OutboundResult{}, err
		}
		amountToSend = deliverTruncated
		maxAmountPtr = &maxAmount
	}

	return OutboundResult{
		Issuer:          token.Issuer,
		Currency:        token.Currency,
		HostDenom:       token.HostDenom,
		AmountToSend:    amountToSend,
		MaxAmount:       maxAmountPtr,
		FeeContribution: token.BridgingFee.Add(remainder),
		RateLimitAmount: rateLimitAmount,
	}, nil
}
