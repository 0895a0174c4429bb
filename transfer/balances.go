package transfer

import (
	sdkmath "cosmossdk.io/math"
)

// Balances tracks the two per-denom totals the transfer pipeline's capacity checks and escrow
// conservation invariant (spec.md §8, invariant 3/4) depend on: the outstanding mirrored supply
// of each XRPL-originated token minted on Host, and the escrowed balance of each Host-originated
// token held by the bridge while mirrored on XRPL.
type Balances struct {
	mirroredSupply map[string]sdkmath.Int
	escrow         map[string]sdkmath.Int
}

// NewBalances returns an empty Balances.
func NewBalances() *Balances {
	return &Balances{
		mirroredSupply: make(map[string]sdkmath.Int),
		escrow:         make(map[string]sdkmath.Int),
	}
}

// MirroredSupply returns the total amount of hostDenom currently minted to mirror an
// XRPL-originated token.
func (b *Balances) MirroredSupply(hostDenom string) sdkmath.Int {
	return get(b.mirroredSupply, hostDenom)
}

// Escrow returns the amount of hostDenom currently held in escrow for a Host-originated token.
func (b *Balances) Escrow(hostDenom string) sdkmath.Int {
	return get(b.escrow, hostDenom)
}

func get(m map[string]sdkmath.Int, key string) sdkmath.Int {
	if v, ok := m[key]; ok {
		return v
	}
	return sdkmath.ZeroInt()
}

func (b *Balances) creditMirroredSupply(hostDenom string, amount sdkmath.Int) {
	b.mirroredSupply[hostDenom] = get(b.mirroredSupply, hostDenom).Add(amount)
}

func (b *Balances) debitMirroredSupply(hostDenom string, amount sdkmath.Int) {
	b.mirroredSupply[hostDenom] = get(b.mirroredSupply, hostDenom).Sub(amount)
}

func (b *Balances) creditEscrow(hostDenom string, amount sdkmath.Int) {
	b.escrow[hostDenom] = get(b.escrow, hostDenom).Add(amount)
}

func (b *Balances) debitEscrow(hostDenom string, amount sdkmath.Int) {
	b.escrow[hostDenom] = get(b.escrow, hostDenom).Sub(amount)
}
