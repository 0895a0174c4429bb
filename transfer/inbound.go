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

// MintInstruction asks the Host mint/denom port to create amount of denom for the bridge to
// deliver, per spec.md §4.10.
type MintInstruction struct {
	Denom  string
	Amount sdkmath.Int
	To     sdk.AccAddress
}

// EscrowRelease asks the caller to transfer amount of denom out of the bridge's own escrow
// account to the recipient.
type EscrowRelease struct {
	Denom  string
	Amount sdkmath.Int
	To     sdk.AccAddress
}

// SwapHookCall is the best-effort post-arrival hook invocation spec.md §4.11 describes, together
// with the compensating-transfer record the caller must honor if the call fails.
type SwapHookCall struct {
	Recipient sdk.AccAddress
	Coin      sdk.Coin
	Memo      string
	Recovery  RecoveryRecord
}

// RecoveryRecord is the state the caller persists before invoking the swap hook so a failed call
// can be unwound with a plain transfer instead of a retry (spec.md §4.11).
type RecoveryRecord struct {
	RecoveryAddress sdk.AccAddress
	ReturnAmount    sdk.Coin
}

// RateLimitReport describes an inbound or outbound flow the caller should forward to the
// rate-limit port, if one is configured.
type RateLimitReport struct {
	Denom  string
	Amount sdkmath.Int
	Inbound bool
}

// InboundResult is everything a committed XRPLToHostTransfer evidence produces: exactly one of
// Mint/EscrowRelease is set, depending on whether the token is XRPL- or Host-originated.
type InboundResult struct {
	HostDenom       string
	AmountReleased  sdkmath.Int
	FeeContribution sdkmath.Int
	Mint            *MintInstruction
	FeeMint         *MintInstruction
	EscrowRelease   *EscrowRelease
	SwapHook        *SwapHookCall
	RateLimit       *RateLimitReport
}

// Inbound applies a committed XRPLToHostTransferEvidence: classifies the token, applies the
// numeric kernel in the XRPL→Host order for its origin, checks capacity, and returns the mint
// or escrow-release instruction the caller must execute, per spec.md §4.6. swapHookConfigured
// mirrors the original's `config.osor_entry_point.is_some()`: a memo only triggers the universal
// swap path (and redirects the release destination to the bridge itself) when a hook is actually
// wired (contract.rs:771-794,880-905).
func Inbound(
	xrplTokens *registry.XRPLTokenStore,
	hostTokens *registry.HostTokenStore,
	balances *Balances,
	bridgeXRPLAddress string,
	bridgeHostAddress sdk.AccAddress,
	swapHookConfigured bool,
	ev types.XRPLToHostTransferEvidence,
) (InboundResult, error) {
	isReturning := ev.Issuer == bridgeXRPLAddress

	if isReturning {
		return inboundHostOriginated(hostTokens, balances, bridgeHostAddress, swapHookConfigured, ev)
	}
	return inboundXRPLOriginated(xrplTokens, balances, bridgeHostAddress, swapHookConfigured, ev)
}

func inboundXRPLOriginated(
	xrplTokens *registry.XRPLTokenStore,
	balances *Balances,
	bridgeHostAddress sdk.AccAddress,
	swapHookConfigured bool,
	ev types.XRPLToHostTransferEvidence,
) (InboundResult, error) {
	token, ok := xrplTokens.Get(ev.Issuer, ev.Currency)
	if !ok {
		return InboundResult{}, errors.WithStack(types.ErrTokenNotRegistered)
	}
	if token.State != types.TokenStateEnabled {
		return InboundResult{}, errors.WithStack(types.ErrTokenNotEnabled)
	}

	decimals := uint32(xrpl.IssuedTokenDecimals)
	if xrpl.IsXRP(ev.Issuer, ev.Currency) {
		decimals = xrpl.XRPDecimals
	}

	rateLimitAmount, _, err := numeric.TruncateAmount(token.SendingPrecision, decimals, ev.Amount)
	if err != nil {
		return InboundResult{}, err
	}
	afterFee, err := numeric.AfterBridgingFee(ev.Amount, token.BridgingFee)
	if err != nil {
		return InboundResult{}, err
	}
	truncated, remainder, err := numeric.TruncateAmount(token.SendingPrecision, decimals, afterFee)
	if err != nil {
		return InboundResult{}, err
	}

	newSupply := balances.MirroredSupply(token.HostDenom).Add(truncated)
	if newSupply.GT(token.MaxHoldingAmount) {
		return InboundResult{}, errors.WithStack(types.ErrMaximumBridgedAmountReached)
	}
	balances.creditMirroredSupply(token.HostDenom, truncated)
	if token.BridgingFee.IsPositive() {
		balances.creditMirroredSupply(token.HostDenom, token.BridgingFee)
	}

	releaseTo := releaseDestination(ev.Memo, ev.Recipient, bridgeHostAddress, swapHookConfigured)
	result := InboundResult{
		HostDenom:       token.HostDenom,
		AmountReleased:  truncated,
		FeeContribution: token.BridgingFee.Add(remainder),
		Mint:            &MintInstruction{Denom: token.HostDenom, Amount: truncated, To: releaseTo},
	}
	if token.BridgingFee.IsPositive() {
		result.FeeMint = &MintInstruction{Denom: token.HostDenom, Amount: token.BridgingFee, To: bridgeHostAddress}
	}
	attachMemoAndRateLimit(&result, ev.Memo, ev.Recipient, swapHookConfigured, rateLimitAmount)
	return result, nil
}

func inboundHostOriginated(
	hostTokens *registry.HostTokenStore,
	balances *Balances,
	bridgeHostAddress sdk.AccAddress,
	swapHookConfigured bool,
	ev types.XRPLToHostTransferEvidence,
) (InboundResult, error) {
	token, ok := hostTokens.GetByXRPLCurrency(ev.Currency)
	if !ok {
		return InboundResult{}, errors.WithStack(types.ErrTokenNotRegistered)
	}
	if token.State != types.TokenStateEnabled {
		return InboundResult{}, errors.WithStack(types.ErrTokenNotEnabled)
	}

	rateLimitAmount := numeric.ConvertDecimals(xrpl.IssuedTokenDecimals, token.Decimals, ev.Amount)
	truncated, remainder, err := numeric.ConvertAndTruncate(
		token.SendingPrecision, xrpl.IssuedTokenDecimals, token.Decimals, ev.Amount, token.BridgingFee,
	)
	if err != nil {
		return InboundResult{}, err
	}

	balances.debitEscrow(token.HostDenom, truncated)

	releaseTo := releaseDestination(ev.Memo, ev.Recipient, bridgeHostAddress, swapHookConfigured)
	result := InboundResult{
		HostDenom:       token.HostDenom,
		AmountReleased:  truncated,
		FeeContribution: token.BridgingFee.Add(remainder),
		EscrowRelease:   &EscrowRelease{Denom: token.HostDenom, Amount: truncated, To: releaseTo},
	}
	attachMemoAndRateLimit(&result, ev.Memo, ev.Recipient, swapHookConfigured, rateLimitAmount)
	return result, nil
}

// releaseDestination is the original's `is_universal_swap` choice of mint-to-address
// (contract.rs:779-785): the bridge itself when a memo will actually trigger the swap hook, the
// recipient otherwise.
func releaseDestination(
	memo string,
	recipient, bridgeHostAddress sdk.AccAddress,
	swapHookConfigured bool,
) sdk.AccAddress {
	if memo != "" && swapHookConfigured {
		return bridgeHostAddress
	}
	return recipient
}

func attachMemoAndRateLimit(
	result *InboundResult,
	memo string,
	recipient sdk.AccAddress,
	swapHookConfigured bool,
	rateLimitAmount sdkmath.Int,
) {
	result.RateLimit = &RateLimitReport{Denom: result.HostDenom, Amount: rateLimitAmount, Inbound: true}
	if memo == "" || !swapHookConfigured {
		return
	}
	result.SwapHook = &SwapHookCall{
		Recipient: recipient,
		Coin:      sdk.NewCoin(result.HostDenom, result.AmountReleased),
		Memo:      memo,
		Recovery: RecoveryRecord{
			RecoveryAddress: recipient,
			ReturnAmount:    sdk.NewCoin(result.HostDenom, result.AmountReleased),
		},
	}
}
