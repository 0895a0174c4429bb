package bridge

import (
	"context"

	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/pkg/errors"

	"github.com/CoreumFoundation/xrplbridge-core/ports"
	"github.com/CoreumFoundation/xrplbridge-core/registry"
	"github.com/CoreumFoundation/xrplbridge-core/types"
)

// RegisterXRPLTokenRequest is RegisterXRPLToken's input (spec.md §4.2).
type RegisterXRPLTokenRequest struct {
	Issuer           string
	Currency         string
	SendingPrecision int32
	MaxHoldingAmount sdkmath.Int
	BridgingFee      sdkmath.Int
	NowUnixNano      int64
}

// RegisterXRPLToken registers a new XRPL-originated token in Processing state, creates its Host
// denom via the mint/denom port, and enqueues the TrustSet operation that must be Accepted before
// the token becomes Enabled (spec.md §4.2 "Registration of XRPL token").
func (c *Core) RegisterXRPLToken(
	ctx context.Context,
	caller sdk.AccAddress,
	req RegisterXRPLTokenRequest,
) (types.XRPLToken, error) {
	if err := c.requireOwner(caller); err != nil {
		return types.XRPLToken{}, err
	}
	if err := c.requireActive(); err != nil {
		return types.XRPLToken{}, err
	}

	token, err := registry.Register(
		c.XRPLTokens, req.Issuer, req.Currency, req.SendingPrecision, req.MaxHoldingAmount, req.BridgingFee, req.NowUnixNano,
	)
	if err != nil {
		return types.XRPLToken{}, err
	}

	if c.Minter != nil {
		if _, err := c.Minter.CreateDenom(ctx, token.HostDenom, &ports.DenomMetadata{
			Name:     token.HostDenom,
			Symbol:   token.Currency,
			Decimals: uint32(xrplDecimalsFor(token)),
		}); err != nil {
			return types.XRPLToken{}, errors.Wrap(err, "create denom")
		}
	}

	if _, err := c.enqueueTicketOperation(types.OperationType{TrustSet: &types.OperationTypeTrustSet{
		Issuer:   token.Issuer,
		Currency: token.Currency,
		Limit:    c.Config.TrustSetLimitAmount,
	}}); err != nil {
		return types.XRPLToken{}, err
	}
	return token, nil
}

func xrplDecimalsFor(types.XRPLToken) int32 {
	return 15
}

// RegisterHostTokenRequest is RegisterHostToken's input (spec.md §4.2).
type RegisterHostTokenRequest struct {
	Denom            string
	Decimals         uint32
	SendingPrecision int32
	MaxHoldingAmount sdkmath.Int
	BridgingFee      sdkmath.Int
	NowUnixNano      int64
}

// RegisterHostToken registers a new Host-originated token, deriving its XRPL currency
// deterministically; no XRPL trust-set is needed since the bridge is the issuer on XRPL, so the
// token starts Enabled (spec.md §4.2 "Registration of Host token").
func (c *Core) RegisterHostToken(caller sdk.AccAddress, req RegisterHostTokenRequest) (types.HostToken, error) {
	if err := c.requireOwner(caller); err != nil {
		return types.HostToken{}, err
	}
	if err := c.requireActive(); err != nil {
		return types.HostToken{}, err
	}
	return registry.RegisterHostToken(
		c.HostTokens, req.Denom, req.Decimals, req.SendingPrecision, req.MaxHoldingAmount, req.BridgingFee, req.NowUnixNano,
	)
}

// UpdateXRPLToken applies an owner-requested state/limit change to a registered XRPL token
// (spec.md §4.2 "Update operations").
func (c *Core) UpdateXRPLToken(
	caller sdk.AccAddress,
	issuer, currency string,
	targetState *types.TokenState,
	maxHoldingAmount *sdkmath.Int,
) (types.XRPLToken, error) {
	if err := c.requireOwner(caller); err != nil {
		return types.XRPLToken{}, err
	}
	if err := c.requireActive(); err != nil {
		return types.XRPLToken{}, err
	}
	token, ok := c.XRPLTokens.Get(issuer, currency)
	if !ok {
		return types.XRPLToken{}, errors.WithStack(types.ErrTokenNotRegistered)
	}
	if targetState != nil {
		if err := registry.UpdateTargetState(token.State, *targetState); err != nil {
			return types.XRPLToken{}, err
		}
		token.State = *targetState
	}
	if maxHoldingAmount != nil {
		if err := registry.UpdateMaxHoldingAmount(*maxHoldingAmount, c.Balances.MirroredSupply(token.HostDenom)); err != nil {
			return types.XRPLToken{}, err
		}
		token.MaxHoldingAmount = *maxHoldingAmount
	}
	c.XRPLTokens.Set(token)
	return token, nil
}

// UpdateHostToken applies an owner-requested state/limit change to a registered Host token
// (spec.md §4.2 "Update operations").
func (c *Core) UpdateHostToken(
	caller sdk.AccAddress,
	denom string,
	targetState *types.TokenState,
	maxHoldingAmount *sdkmath.Int,
) (types.HostToken, error) {
	if err := c.requireOwner(caller); err != nil {
		return types.HostToken{}, err
	}
	if err := c.requireActive(); err != nil {
		return types.HostToken{}, err
	}
	token, ok := c.HostTokens.Get(denom)
	if !ok {
		return types.HostToken{}, errors.WithStack(types.ErrTokenNotRegistered)
	}
	if targetState != nil {
		if err := registry.UpdateTargetState(token.State, *targetState); err != nil {
			return types.HostToken{}, err
		}
		token.State = *targetState
	}
	if maxHoldingAmount != nil {
		if err := registry.UpdateMaxHoldingAmount(*maxHoldingAmount, c.Balances.Escrow(token.HostDenom)); err != nil {
			return types.HostToken{}, err
		}
		token.MaxHoldingAmount = *maxHoldingAmount
	}
	c.HostTokens.Set(token)
	return token, nil
}

// RecoverXRPLTokenRegistration re-enqueues the TrustSet operation for an XRPL token stuck
// Inactive, per spec.md §6's RecoverTickets/RecoverXRPLTokenRegistration row.
func (c *Core) RecoverXRPLTokenRegistration(caller sdk.AccAddress, issuer, currency string) (types.Operation, error) {
	if err := c.requireOwner(caller); err != nil {
		return types.Operation{}, err
	}
	token, ok := c.XRPLTokens.Get(issuer, currency)
	if !ok {
		return types.Operation{}, errors.WithStack(types.ErrTokenNotRegistered)
	}
	if token.State != types.TokenStateInactive {
		return types.Operation{}, errors.WithStack(types.ErrXRPLTokenNotInactive)
	}
	op, err := c.enqueueTicketOperation(types.OperationType{TrustSet: &types.OperationTypeTrustSet{
		Issuer:   token.Issuer,
		Currency: token.Currency,
		Limit:    c.Config.TrustSetLimitAmount,
	}})
	if err != nil {
		return types.Operation{}, err
	}
	token.State = types.TokenStateProcessing
	c.XRPLTokens.Set(token)
	return op, nil
}
