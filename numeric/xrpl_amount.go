package numeric

import (
	"fmt"
	"math/big"

	sdkmath "cosmossdk.io/math"
	"github.com/pkg/errors"
	rippledata "github.com/rubblelabs/ripple/data"

	"github.com/CoreumFoundation/xrplbridge-core/xrpl"
)

// xrplAmountPrec is the precision used when formatting a float as an XRPL amount string; it
// lines up with the min/max sending precision the bridge allows.
const xrplAmountPrec = 16

// XRPLToSDKInt converts an XRPL wire amount to the sdkmath.Int form the bridge state works in:
// drops for native XRP, otherwise the value scaled to the XRPL-wide 15-decimal representation.
func XRPLToSDKInt(xrplAmount rippledata.Amount) (sdkmath.Int, error) {
	if xrplAmount.Value == nil {
		return sdkmath.ZeroInt(), nil
	}
	ratAmount := xrplAmount.Value.Rat()
	if xrplAmount.IsNative() {
		return sdkmath.NewIntFromBigInt(ratAmount.Num()), nil
	}
	return xrplIssuedAmountToSDKInt(xrplAmount, xrpl.IssuedTokenDecimals)
}

// SDKIntToXRPLAmount converts an XRPL-originated token's bridge-internal amount back to an XRPL
// wire amount for the given issuer/currency, formatting native XRP without a currency/issuer.
func SDKIntToXRPLAmount(amount sdkmath.Int, issuerString, currencyString string) (rippledata.Amount, error) {
	if xrpl.IsXRP(issuerString, currencyString) {
		amountString := big.NewFloat(0).SetInt(amount.BigInt()).Text('g', xrplAmountPrec)
		xrplValue, err := rippledata.NewValue(amountString, true)
		if err != nil {
			return rippledata.Amount{}, errors.Wrapf(err, "failed to build XRP value from %q", amountString)
		}
		return rippledata.Amount{Value: xrplValue}, nil
	}

	return sdkIntToXRPLIssuedAmount(amount, xrpl.IssuedTokenDecimals, issuerString, currencyString)
}

func xrplIssuedAmountToSDKInt(xrplAmount rippledata.Amount, decimals uint32) (sdkmath.Int, error) {
	ratAmount := xrplAmount.Value.Rat()
	tenPowerDec := big.NewInt(0).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)
	bigIntAmount := big.NewInt(0).Quo(big.NewInt(0).Mul(tenPowerDec, ratAmount.Num()), ratAmount.Denom())
	if bigIntAmount.BitLen() > sdkmath.MaxBitLen {
		return sdkmath.Int{}, errors.New("amount out of bounds converting XRPL value to sdkmath.Int")
	}
	return sdkmath.NewIntFromBigInt(bigIntAmount), nil
}

func sdkIntToXRPLIssuedAmount(
	amount sdkmath.Int,
	decimals uint32,
	issuerString, currencyString string,
) (rippledata.Amount, error) {
	tenPowerDec := big.NewInt(0).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)
	floatAmount := big.NewFloat(0).SetRat(big.NewRat(0, 1).SetFrac(amount.BigInt(), tenPowerDec))
	amountString := fmt.Sprintf(
		"%s/%s/%s",
		floatAmount.Text('g', xrplAmountPrec),
		currencyString,
		issuerString,
	)
	xrplValue, err := rippledata.NewValue(amountString, false)
	if err != nil {
		return rippledata.Amount{}, errors.Wrapf(err, "failed to build ripple.Value from %q", amountString)
	}
	currency, err := rippledata.NewCurrency(currencyString)
	if err != nil {
		return rippledata.Amount{}, errors.Wrapf(err, "failed to parse currency %q", currencyString)
	}
	issuer, err := rippledata.NewAccountFromAddress(issuerString)
	if err != nil {
		return rippledata.Amount{}, errors.Wrapf(err, "failed to parse issuer %q", issuerString)
	}

	return rippledata.Amount{
		Value:    xrplValue,
		Currency: currency,
		Issuer:   *issuer,
	}, nil
}
