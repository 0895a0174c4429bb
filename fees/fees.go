// Package fees implements the bridge's fee ledger (spec.md §4.8): per-relayer claimable
// balances built by splitting each committed bridging fee evenly across the current relayer
// set, with integer remainders carried over to the next split for that denom.
package fees

import (
	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/pkg/errors"

	"github.com/CoreumFoundation/xrplbridge-core/types"
)

// Ledger holds every relayer's claimable balances and the per-denom carry-over remainder pool.
type Ledger struct {
	claimable map[string]map[string]sdkmath.Int
	carryOver map[string]sdkmath.Int
}

// NewLedger returns an empty Ledger.
func NewLedger() *Ledger {
	return &Ledger{
		claimable: make(map[string]map[string]sdkmath.Int),
		carryOver: make(map[string]sdkmath.Int),
	}
}

// Collect splits fee (plus any carried-over remainder for denom) evenly across relayers,
// crediting each relayer's claimable balance with the floor division result and carrying the
// new remainder forward. A nil or zero fee is a no-op.
func (l *Ledger) Collect(denom string, fee sdkmath.Int, relayers []sdk.AccAddress) {
	if fee.IsNil() || !fee.IsPositive() || len(relayers) == 0 {
		return
	}

	total := fee.Add(l.carryOverOf(denom))
	n := sdkmath.NewInt(int64(len(relayers)))
	perRelayer := total.Quo(n)
	remainder := total.Sub(perRelayer.Mul(n))
	l.carryOver[denom] = remainder

	if perRelayer.IsZero() {
		return
	}
	for _, relayer := range relayers {
		l.credit(relayer, denom, perRelayer)
	}
}

func (l *Ledger) carryOverOf(denom string) sdkmath.Int {
	if v, ok := l.carryOver[denom]; ok {
		return v
	}
	return sdkmath.ZeroInt()
}

func (l *Ledger) credit(relayer sdk.AccAddress, denom string, amount sdkmath.Int) {
	key := relayer.String()
	balances, ok := l.claimable[key]
	if !ok {
		balances = make(map[string]sdkmath.Int)
		l.claimable[key] = balances
	}
	current, ok := balances[denom]
	if !ok {
		current = sdkmath.ZeroInt()
	}
	balances[denom] = current.Add(amount)
}

// Claimable returns relayer's current claimable balances as coins, sorted by denom.
func (l *Ledger) Claimable(relayer sdk.AccAddress) sdk.Coins {
	balances, ok := l.claimable[relayer.String()]
	if !ok {
		return nil
	}
	coins := make(sdk.Coins, 0, len(balances))
	for denom, amount := range balances {
		if amount.IsPositive() {
			coins = append(coins, sdk.NewCoin(denom, amount))
		}
	}
	return coins.Sort()
}

// Claim debits relayer's claimable balance by coins, failing with ErrNotEnoughFeesToClaim if
// any requested coin exceeds what is currently claimable. The debit is all-or-nothing: no
// balance changes if any coin in the request fails the check.
func (l *Ledger) Claim(relayer sdk.AccAddress, coins sdk.Coins) error {
	key := relayer.String()
	balances, ok := l.claimable[key]
	if !ok {
		return errors.WithStack(types.ErrNotEnoughFeesToClaim)
	}
	for _, coin := range coins {
		current, ok := balances[coin.Denom]
		if !ok || current.LT(coin.Amount) {
			return errors.WithStack(types.ErrNotEnoughFeesToClaim)
		}
	}
	for _, coin := range coins {
		balances[coin.Denom] = balances[coin.Denom].Sub(coin.Amount)
	}
	return nil
}
