package numeric_test

import (
	"fmt"
	"math/big"
	"testing"

	sdkmath "cosmossdk.io/math"
	rippledata "github.com/rubblelabs/ripple/data"
	"github.com/stretchr/testify/require"

	"github.com/CoreumFoundation/xrplbridge-core/numeric"
	"github.com/CoreumFoundation/xrplbridge-core/xrpl"
)

const (
	fooIssuer                       = "rPT1Sjq2YGrBMTttX4GZHjKu9dyfzbpAYe"
	fooCurrency                     = "FOO"
	maxXRPLAllowedSignificantDigits = uint64(9_999_999_999_999_999)
)

func TestXRPLToSDKInt(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		xrplAmount rippledata.Amount
		want       sdkmath.Int
		wantErr    bool
	}{
		{
			name:       "one_XRP",
			xrplAmount: amountStringToXRPLAmount(t, "1.0XRP"),
			want:       sdkmath.NewIntFromUint64(1_000_000),
		},
		{
			name:       "one_with_decimals_XRP",
			xrplAmount: amountStringToXRPLAmount(t, "1.0001XRP"),
			want:       sdkmath.NewIntFromUint64(1000100),
		},
		{
			name:       "min_decimals_XRP",
			xrplAmount: amountStringToXRPLAmount(t, "999.000001XRP"),
			want:       sdkmath.NewIntFromUint64(999000001),
		},
		{
			name:       "high_value_XRP",
			xrplAmount: amountStringToXRPLAmount(t, "1000000000000.000001XRP"),
			want:       sdkmath.NewIntFromUint64(1000000000000000001),
		},
		{
			name:       "one_issued_token",
			xrplAmount: amountStringToXRPLAmount(t, fmt.Sprintf("1.0/%s/%s", fooCurrency, fooIssuer)),
			want:       stringToSDKInt(t, "1000000000000000"),
		},
		{
			name:       "min_decimals_issued_token",
			xrplAmount: amountStringToXRPLAmount(t, fmt.Sprintf("0.000000000000001/%s/%s", fooCurrency, fooIssuer)),
			want:       sdkmath.NewIntFromUint64(1),
		},
		{
			name:       "high_value_issued_token",
			xrplAmount: amountStringToXRPLAmount(t, fmt.Sprintf("34e22/%s/%s", fooCurrency, fooIssuer)),
			want:       stringToSDKInt(t, "340000000000000000000000000000000000000"),
		},
		{
			name:       "out_of_sdkmath_bounds",
			xrplAmount: amountStringToXRPLAmount(t, fmt.Sprintf("1e80/%s/%s", fooCurrency, fooIssuer)),
			wantErr:    true,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := numeric.XRPLToSDKInt(tt.xrplAmount)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want.String(), got.String())
		})
	}
}

func TestSDKIntToXRPLAmount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		amount   sdkmath.Int
		issuer   string
		currency string
		want     rippledata.Amount
	}{
		{
			name:     "one_XRP",
			amount:   sdkmath.NewIntFromUint64(1_000_000),
			issuer:   xrpl.XRPIssuer(),
			currency: xrpl.XRPCurrency(),
			want:     amountStringToXRPLAmount(t, "1.0XRP"),
		},
		{
			name:     "one_with_decimals_XRP",
			amount:   sdkmath.NewIntFromUint64(1000101),
			issuer:   xrpl.XRPIssuer(),
			currency: xrpl.XRPCurrency(),
			want:     amountStringToXRPLAmount(t, "1.000101XRP"),
		},
		{
			name:     "one_issued_token",
			amount:   sdkmath.NewIntFromUint64(1000000000000000),
			issuer:   fooIssuer,
			currency: fooCurrency,
			want:     amountStringToXRPLAmount(t, fmt.Sprintf("1.0/%s/%s", fooCurrency, fooIssuer)),
		},
		{
			name:     "min_decimals_issued_token",
			amount:   sdkmath.NewIntFromUint64(1),
			issuer:   fooIssuer,
			currency: fooCurrency,
			want:     amountStringToXRPLAmount(t, fmt.Sprintf("0.000000000000001/%s/%s", fooCurrency, fooIssuer)),
		},
		{
			name:     "high_value_issued_token",
			amount:   stringToSDKInt(t, "100000000000000000000000000000000000"),
			issuer:   fooIssuer,
			currency: fooCurrency,
			want:     amountStringToXRPLAmount(t, fmt.Sprintf("1e20/%s/%s", fooCurrency, fooIssuer)),
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := numeric.SDKIntToXRPLAmount(tt.amount, tt.issuer, tt.currency)
			require.NoError(t, err)
			require.Equal(t, tt.want.String(), got.String())
		})
	}
}

func FuzzAmountConversionSDKIntToXRPLAndBack(f *testing.F) {
	f.Add(uint64(1000000000000000001), int8(3))
	f.Fuzz(func(t *testing.T, number uint64, power int8) {
		significantPart := number % (maxXRPLAllowedSignificantDigits + 1)
		randomPowerExponent := big.NewInt(int64(power % 23))
		randomPower := sdkmath.NewIntFromBigInt(big.NewInt(0).Exp(big.NewInt(10), randomPowerExponent, nil))
		initial := sdkmath.NewIntFromUint64(significantPart).Mul(randomPower)

		xrplAmount, err := numeric.SDKIntToXRPLAmount(initial, fooIssuer, "AAA")
		require.NoError(t, err)
		got, err := numeric.XRPLToSDKInt(xrplAmount)
		require.NoError(t, err)

		require.EqualValues(t, initial.String(), got.String())
	})
}

func amountStringToXRPLAmount(t *testing.T, amountString string) rippledata.Amount {
	t.Helper()

	amount, err := rippledata.NewAmount(amountString)
	require.NoError(t, err)

	return *amount
}

func stringToSDKInt(t *testing.T, stringValue string) sdkmath.Int {
	intValue, ok := sdkmath.NewIntFromString(stringValue)
	require.True(t, ok)
	return intValue
}
