// Package numeric implements the bridge's numeric kernel (spec.md §4.1): sending-precision
// truncation, decimal conversion between XRPL and Host scales, bridging-fee subtraction, and
// the validation rules for XRPL amounts, XRPL currencies and Host denoms. Every rule here is
// pure and side-effect free; the transfer pipeline composes these in the direction-specific
// order spec.md prescribes.
package numeric

import (
	"math/big"
	"regexp"
	"strings"

	sdkmath "cosmossdk.io/math"
	"github.com/pkg/errors"

	"github.com/CoreumFoundation/xrplbridge-core/types"
)

// Sending-precision bounds, common to both XRPL- and Host-originated tokens.
const (
	MinSendingPrecision = -15
	MaxSendingPrecision = 15
)

// MaxHostDecimals is the largest decimals value a registered Host token may declare.
const MaxHostDecimals = 100

// xrplMaxSignificantDigits is the largest number of significant digits (after trimming
// trailing zeroes) a valid XRPL amount may have.
const xrplMaxSignificantDigits = 16

// TruncateAmount truncates amount to the coarsest unit sendingPrecision allows for a token
// with decimals decimal places, returning the truncated amount and the discarded remainder.
// E = decimals - sendingPrecision; the amount is floored to a multiple of 10^|E|. Fails with
// ErrAmountSentIsZeroAfterTruncation if the result is zero.
func TruncateAmount(sendingPrecision int32, decimals uint32, amount sdkmath.Int) (sdkmath.Int, sdkmath.Int, error) {
	exponent := int64(decimals) - int64(sendingPrecision)

	divisor := pow10(absInt64(exponent))
	truncatedUnits := amount.Quo(divisor)
	if truncatedUnits.IsZero() {
		return sdkmath.Int{}, sdkmath.Int{}, errors.WithStack(types.ErrAmountSentIsZeroAfterTruncation)
	}

	truncatedAmount := truncatedUnits.Mul(divisor)
	remainder := amount.Sub(truncatedAmount)
	return truncatedAmount, remainder, nil
}

// ConvertDecimals rescales amount from fromDecimals to toDecimals, multiplying or dividing by
// the appropriate power of ten. Used to move amounts between the XRPL-wide 15-decimal scale and
// a Host token's own registered decimals.
func ConvertDecimals(fromDecimals, toDecimals uint32, amount sdkmath.Int) sdkmath.Int {
	switch {
	case fromDecimals < toDecimals:
		return amount.Mul(pow10(uint64(toDecimals - fromDecimals)))
	case fromDecimals > toDecimals:
		return amount.Quo(pow10(uint64(fromDecimals - toDecimals)))
	default:
		return amount
	}
}

// AfterBridgingFee subtracts the flat bridgingFee from amount, failing with
// ErrCannotCoverBridgingFees if amount does not cover it.
func AfterBridgingFee(amount, bridgingFee sdkmath.Int) (sdkmath.Int, error) {
	if amount.LT(bridgingFee) {
		return sdkmath.Int{}, errors.WithStack(types.ErrCannotCoverBridgingFees)
	}
	return amount.Sub(bridgingFee), nil
}

// ConvertAndTruncate converts amount from fromDecimals to toDecimals, subtracts bridgingFee,
// and truncates to sendingPrecision at toDecimals. This is the XRPL→Host order for a
// Host-originated token (spec.md §4.1): convert first, so the remainder ends up expressed in
// Host decimals.
func ConvertAndTruncate(
	sendingPrecision int32,
	fromDecimals, toDecimals uint32,
	amount, bridgingFee sdkmath.Int,
) (sdkmath.Int, sdkmath.Int, error) {
	converted := ConvertDecimals(fromDecimals, toDecimals, amount)
	afterFee, err := AfterBridgingFee(converted, bridgingFee)
	if err != nil {
		return sdkmath.Int{}, sdkmath.Int{}, err
	}
	return TruncateAmount(sendingPrecision, toDecimals, afterFee)
}

// TruncateAndConvert subtracts bridgingFee, truncates to sendingPrecision at fromDecimals, and
// then converts to toDecimals. This is the Host→XRPL order for a Host-originated token
// (spec.md §4.1): XRPL amounts can't represent every value XRPL-scale conversion would produce,
// so fees and truncation happen before the scale change.
func TruncateAndConvert(
	sendingPrecision int32,
	fromDecimals, toDecimals uint32,
	amount, bridgingFee sdkmath.Int,
) (sdkmath.Int, sdkmath.Int, error) {
	afterFee, err := AfterBridgingFee(amount, bridgingFee)
	if err != nil {
		return sdkmath.Int{}, sdkmath.Int{}, err
	}
	truncated, remainder, err := TruncateAmount(sendingPrecision, fromDecimals, afterFee)
	if err != nil {
		return sdkmath.Int{}, sdkmath.Int{}, err
	}
	return ConvertDecimals(fromDecimals, toDecimals, truncated), remainder, nil
}

// ValidateSendingPrecision checks that precision sits within the global [-15,15] band and does
// not exceed the token's own decimals, matching the original contract's two-step check (the
// [-15,15] band is enforced even for a token whose decimals would otherwise allow more).
func ValidateSendingPrecision(precision int32, decimals uint32) error {
	if precision < MinSendingPrecision || precision > MaxSendingPrecision {
		return errors.WithStack(types.ErrInvalidSendingPrecision)
	}
	if precision > int32(decimals) {
		return errors.WithStack(types.ErrInvalidSendingPrecision)
	}
	return nil
}

// ValidateXRPLAmount checks that amount, once its decimal string has trailing zeroes trimmed,
// has at most 16 significant digits -- the limit XRPL's own amount encoding imposes.
func ValidateXRPLAmount(amount sdkmath.Int) error {
	trimmed := strings.TrimRight(amount.String(), "0")
	if len(trimmed) > xrplMaxSignificantDigits {
		return errors.WithStack(types.ErrInvalidXRPLAmount)
	}
	return nil
}

var threeCharCurrencyRe = regexp.MustCompile(`^[A-Za-z0-9?!@#$%^&*<>(){}\[\]|]{3}$`)

// ValidateXRPLCurrency checks currency is either a 3-character code drawn from XRPL's allowed
// alphabet (and not the literal "XRP"), or a 40-character uppercase hex string that does not
// start with "00" (the reserved standard-currency prefix).
func ValidateXRPLCurrency(currency string) error {
	switch len(currency) {
	case 3:
		if currency == "XRP" || !threeCharCurrencyRe.MatchString(currency) {
			return errors.WithStack(types.ErrInvalidXRPLCurrency)
		}
		return nil
	case 40:
		if strings.HasPrefix(currency, "00") {
			return errors.WithStack(types.ErrInvalidXRPLCurrency)
		}
		for _, r := range currency {
			isHexDigit := (r >= '0' && r <= '9') || (r >= 'A' && r <= 'F')
			if !isHexDigit {
				return errors.WithStack(types.ErrInvalidXRPLCurrency)
			}
		}
		return nil
	default:
		return errors.WithStack(types.ErrInvalidXRPLCurrency)
	}
}

// ValidateHostDenom checks denom against the Cosmos SDK's own denom grammar:
// ^[a-zA-Z][a-zA-Z0-9/:._-]{2,127}$, i.e. length in [3,128], first char alphabetic, remaining
// chars alphanumeric or one of /:._-.
func ValidateHostDenom(denom string) error {
	if len(denom) < 3 || len(denom) > 128 {
		return errors.WithStack(types.ErrInvalidDenom)
	}
	first := rune(denom[0])
	if !isASCIIAlpha(first) {
		return errors.WithStack(types.ErrInvalidDenom)
	}
	for _, r := range denom[1:] {
		if isASCIIAlphaNumeric(r) {
			continue
		}
		switch r {
		case '/', ':', '.', '_', '-':
			continue
		default:
			return errors.WithStack(types.ErrInvalidDenom)
		}
	}
	return nil
}

// ValidateHostDecimals checks decimals sits within the allowed [0,100] range.
func ValidateHostDecimals(decimals uint32) error {
	if decimals > MaxHostDecimals {
		return errors.WithStack(types.ErrInvalidDecimals)
	}
	return nil
}

func isASCIIAlpha(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isASCIIAlphaNumeric(r rune) bool {
	return isASCIIAlpha(r) || (r >= '0' && r <= '9')
}

func absInt64(v int64) uint64 {
	if v < 0 {
		return uint64(-v)
	}
	return uint64(v)
}

func pow10(exp uint64) sdkmath.Int {
	return sdkmath.NewIntFromBigInt(big.NewInt(0).Exp(big.NewInt(10), big.NewInt(0).SetUint64(exp), nil))
}
