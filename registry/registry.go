// Package registry implements the bridge's token registry (spec.md §4.2): the keyed stores of
// XRPL-originated and Host-originated bridgeable tokens, their lifecycle states and limits.
package registry

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	sdkmath "cosmossdk.io/math"
	"github.com/pkg/errors"

	"github.com/CoreumFoundation/xrplbridge-core/numeric"
	"github.com/CoreumFoundation/xrplbridge-core/store"
	"github.com/CoreumFoundation/xrplbridge-core/types"
	"github.com/CoreumFoundation/xrplbridge-core/xrpl"
)

// XRPLTokenStore is the keyed store of tokens whose issuance lives on XRPL.
type XRPLTokenStore struct {
	byKey       *store.Map[string, types.XRPLToken]
	byHostDenom *store.Index[string, string]
}

// NewXRPLTokenStore returns an empty XRPLTokenStore.
func NewXRPLTokenStore() *XRPLTokenStore {
	return &XRPLTokenStore{
		byKey:       store.NewMap[string, types.XRPLToken](),
		byHostDenom: store.NewIndex[string, string](),
	}
}

// Get returns the token registered under (issuer, currency).
func (s *XRPLTokenStore) Get(issuer, currency string) (types.XRPLToken, bool) {
	return s.byKey.Get(types.XRPLTokenKey(issuer, currency))
}

// GetByHostDenom resolves an XRPL token via its secondary Host-denom index.
func (s *XRPLTokenStore) GetByHostDenom(hostDenom string) (types.XRPLToken, bool) {
	key, ok := s.byHostDenom.Lookup(hostDenom)
	if !ok {
		return types.XRPLToken{}, false
	}
	return s.byKey.Get(key)
}

// Set persists token, overwriting any existing record under its key, and refreshes its
// secondary Host-denom index entry.
func (s *XRPLTokenStore) Set(token types.XRPLToken) {
	s.byKey.Set(token.Key(), token)
	s.byHostDenom.Set(token.HostDenom, token.Key())
}

// Page lists registered XRPL tokens in key order.
func (s *XRPLTokenStore) Page(startAfter *string, limit int) ([]types.XRPLToken, *string) {
	return s.byKey.Page(startAfter, limit, func(a, b string) bool { return a < b })
}

// Register validates and persists a new XRPL token in Processing state, deriving its Host denom
// deterministically from (issuer, currency, nowUnixNano). Returns ErrTokenAlreadyRegistered if
// the (issuer, currency) key is already taken.
func Register(
	s *XRPLTokenStore,
	issuer, currency string,
	sendingPrecision int32,
	maxHoldingAmount sdkmath.Int,
	bridgingFee sdkmath.Int,
	nowUnixNano int64,
) (types.XRPLToken, error) {
	if _, ok := s.Get(issuer, currency); ok {
		return types.XRPLToken{}, errors.WithStack(types.ErrTokenAlreadyRegistered)
	}
	if err := numeric.ValidateXRPLCurrency(currency); err != nil {
		return types.XRPLToken{}, err
	}
	// sending precision for an XRPL-originated token is bound against the XRPL-wide 15 decimals.
	if err := numeric.ValidateSendingPrecision(sendingPrecision, xrpl.IssuedTokenDecimals); err != nil {
		return types.XRPLToken{}, err
	}

	token := types.XRPLToken{
		Issuer:           issuer,
		Currency:         currency,
		HostDenom:        deriveXRPLOriginatedHostDenom(issuer, currency, nowUnixNano),
		SendingPrecision: sendingPrecision,
		MaxHoldingAmount: maxHoldingAmount,
		State:            types.TokenStateProcessing,
		BridgingFee:      bridgingFee,
	}
	s.Set(token)
	return token, nil
}

// deriveXRPLOriginatedHostDenom builds the "xrpl<10-hex>" Host denom spec.md §4.2 prescribes,
// hashing (issuer, currency, registration time) to make the suffix unpredictable and collision
// resistant without needing a counter.
func deriveXRPLOriginatedHostDenom(issuer, currency string, nowUnixNano int64) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s|%s|%d", issuer, currency, nowUnixNano)))
	return "xrpl" + hex.EncodeToString(sum[:])[:10]
}

// HostTokenStore is the keyed store of tokens native to Host, bridged to XRPL as currencies
// issued by the bridge's own XRPL account.
type HostTokenStore struct {
	byDenom       *store.Map[string, types.HostToken]
	byXRPLCurrency *store.Index[string, string]
}

// NewHostTokenStore returns an empty HostTokenStore.
func NewHostTokenStore() *HostTokenStore {
	return &HostTokenStore{
		byDenom:        store.NewMap[string, types.HostToken](),
		byXRPLCurrency: store.NewIndex[string, string](),
	}
}

// Get returns the token registered under denom.
func (s *HostTokenStore) Get(denom string) (types.HostToken, bool) {
	return s.byDenom.Get(denom)
}

// GetByXRPLCurrency resolves a Host token via its secondary XRPL-currency index.
func (s *HostTokenStore) GetByXRPLCurrency(xrplCurrency string) (types.HostToken, bool) {
	denom, ok := s.byXRPLCurrency.Lookup(xrplCurrency)
	if !ok {
		return types.HostToken{}, false
	}
	return s.Get(denom)
}

// Set persists token and refreshes its secondary index entry.
func (s *HostTokenStore) Set(token types.HostToken) {
	s.byDenom.Set(token.HostDenom, token)
	s.byXRPLCurrency.Set(token.XRPLCurrency, token.HostDenom)
}

// Page lists registered Host tokens in denom order.
func (s *HostTokenStore) Page(startAfter *string, limit int) ([]types.HostToken, *string) {
	return s.byDenom.Page(startAfter, limit, func(a, b string) bool { return a < b })
}

// RegisterHostToken validates and persists a new Host token, deriving its XRPL currency
// deterministically from (denom, decimals, registration time). Returns ErrTokenAlreadyRegistered
// if denom is already registered, ErrRegistrationFailure if the secondary XRPL-currency index
// already holds the derived currency, or ErrInvalidDenom / ErrInvalidDecimals /
// ErrInvalidSendingPrecision on validation failure.
func RegisterHostToken(
	s *HostTokenStore,
	denom string,
	decimals uint32,
	sendingPrecision int32,
	maxHoldingAmount sdkmath.Int,
	bridgingFee sdkmath.Int,
	nowUnixNano int64,
) (types.HostToken, error) {
	if _, ok := s.Get(denom); ok {
		return types.HostToken{}, errors.WithStack(types.ErrTokenAlreadyRegistered)
	}
	if err := numeric.ValidateHostDenom(denom); err != nil {
		return types.HostToken{}, err
	}
	if err := numeric.ValidateHostDecimals(decimals); err != nil {
		return types.HostToken{}, err
	}
	if err := numeric.ValidateSendingPrecision(sendingPrecision, decimals); err != nil {
		return types.HostToken{}, err
	}

	xrplCurrency := deriveHostOriginatedXRPLCurrency(denom, decimals, nowUnixNano)
	if _, collides := s.GetByXRPLCurrency(xrplCurrency); collides {
		return types.HostToken{}, errors.WithStack(types.ErrRegistrationFailure)
	}

	token := types.HostToken{
		HostDenom:        denom,
		Decimals:         decimals,
		XRPLCurrency:     xrplCurrency,
		SendingPrecision: sendingPrecision,
		MaxHoldingAmount: maxHoldingAmount,
		State:            types.TokenStateEnabled,
		BridgingFee:      bridgingFee,
	}
	s.Set(token)
	return token, nil
}

// deriveHostOriginatedXRPLCurrency builds the 40-hex XRPL currency spec.md §3 prescribes:
// a deterministic hash of "cosmos"+denom+decimals+registration time, uppercased to satisfy
// XRPL's 40-hex currency grammar.
func deriveHostOriginatedXRPLCurrency(denom string, decimals uint32, nowUnixNano int64) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("cosmos%s|%d|%d", denom, decimals, nowUnixNano)))
	return fmt.Sprintf("%X", sum[:20])
}

// UpdateTargetState validates a requested Enabled<->Disabled transition; Processing and
// Inactive are system-controlled and may never be a target.
func UpdateTargetState(current, target types.TokenState) error {
	if target != types.TokenStateEnabled && target != types.TokenStateDisabled {
		return errors.WithStack(types.ErrInvalidTargetTokenState)
	}
	if current != types.TokenStateEnabled && current != types.TokenStateDisabled {
		return errors.WithStack(types.ErrTokenStateIsImmutable)
	}
	return nil
}

// UpdateMaxHoldingAmount validates a max-holding-amount change against the token's current
// mirrored supply or escrow balance: it may only move at or above that floor.
func UpdateMaxHoldingAmount(newMax, currentOutstanding sdkmath.Int) error {
	if newMax.LT(currentOutstanding) {
		return errors.WithStack(types.ErrInvalidTargetMaxHoldingAmount)
	}
	return nil
}
