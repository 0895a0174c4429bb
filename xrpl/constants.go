// Package xrpl holds the small set of XRPL-protocol constants and encodings the bridge core
// needs to reason about XRPL-side amounts, currencies and addresses, without reaching into
// anything that signs or submits real XRPL transactions (that remains the relayers' job,
// per spec.md's Non-goals).
package xrpl

import (
	rippledata "github.com/rubblelabs/ripple/data"
)

const (
	// IssuedTokenDecimals is the implicit decimal count XRPL uses for all issued (non-XRP)
	// currencies once bridged, regardless of the issuing token's own display precision.
	IssuedTokenDecimals = 15
	// XRPDecimals is XRP's own decimal count (1 XRP = 1e6 drops).
	XRPDecimals = 6
	// MaxTicketsToAllocate is the largest ticket batch a single AllocateTickets operation may
	// request; XRPL itself refuses to hold more tickets than this for one account.
	MaxTicketsToAllocate = uint32(250)
	// MaxRelayerSigners is the largest SignerList XRPL's multisig account model supports; a
	// RotateKeys operation's new relayer set can never exceed it.
	MaxRelayerSigners = uint32(32)
)

// TokenIssuer and TokenCurrency are the pseudo-issuer/currency pair that identifies native XRP
// in the token registry, mirroring how a zero-valued rippledata.Account/Currency encode XRP.
var (
	TokenIssuer   = rippledata.Account{}
	TokenCurrency = rippledata.Currency{}
)

// XRPIssuer is the canonical string form of the XRP pseudo-issuer address.
func XRPIssuer() string {
	return TokenIssuer.String()
}

// XRPCurrency is the canonical string form of the XRP pseudo-currency.
func XRPCurrency() string {
	return ConvertCurrencyToString(TokenCurrency)
}

// IsXRP reports whether the given (issuer, currency) pair denotes native XRP.
func IsXRP(issuer, currency string) bool {
	return issuer == XRPIssuer() && currency == XRPCurrency()
}

// Well-known XRPL "black-hole" addresses bootstrapped into the prohibited-recipient set at
// InstantiateBridge (spec.md §6 "Initial prohibited set"), carried from the original contract's
// INITIAL_PROHIBITED_XRPL_ADDRESSES.
const (
	// AccountZero is the XRP Ledger's base58 encoding of the value 0; rippled uses it as the
	// issuer for XRP in peer-to-peer communication.
	AccountZero = "rrrrrrrrrrrrrrrrrrrrrhoLvTp"
	// AccountOne is the XRP Ledger's base58 encoding of the value 1; RippleState entries use it
	// as a placeholder issuer for a trust line balance.
	AccountOne = "rrrrrrrrrrrrrrrrrrrrBZbvji"
	// GenesisAccount holds all XRP when rippled starts a new genesis ledger from scratch,
	// derived from the hard-coded seed "masterpassphrase".
	GenesisAccount = "rHb9CJAWyB4rj91VRWn96DkukG4bwdtyTh"
	// NameReservationBlackHole is the address Ripple once asked users to send XRP to in order
	// to reserve Ripple Names.
	NameReservationBlackHole = "rrrrrrrrrrrrrrrrrNAMEtxvNvQ"
	// NaNAddress is the address older ripple-lib versions generated when base58-encoding NaN.
	NaNAddress = "rrrrrrrrrrrrrrrrrrrn5RM1rHd"
)

// InitialProhibitedAddresses returns the five bootstrap black-hole addresses, in order.
func InitialProhibitedAddresses() []string {
	return []string{AccountZero, AccountOne, GenesisAccount, NameReservationBlackHole, NaNAddress}
}
