package fees_test

import (
	"testing"

	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	"github.com/CoreumFoundation/xrplbridge-core/fees"
	"github.com/CoreumFoundation/xrplbridge-core/types"
)

func TestLedger_Collect_S1FeeMath(t *testing.T) {
	t.Parallel()

	l := fees.NewLedger()
	relayers := []sdk.AccAddress{types.GenAccount(), types.GenAccount(), types.GenAccount()}

	l.Collect("ucore", sdkmath.NewInt(50_000), relayers)

	for _, r := range relayers {
		claimable := l.Claimable(r)
		require.Len(t, claimable, 1)
		require.Equal(t, "16666", claimable[0].Amount.String())
	}
}

func TestLedger_Collect_CarriesOverRemainder(t *testing.T) {
	t.Parallel()

	l := fees.NewLedger()
	relayers := []sdk.AccAddress{types.GenAccount(), types.GenAccount(), types.GenAccount()}

	l.Collect("ucore", sdkmath.NewInt(10), relayers) // 10/3 = 3 each, remainder 1
	l.Collect("ucore", sdkmath.NewInt(10), relayers) // (10+1)/3 = 3 each, remainder 2

	for _, r := range relayers {
		claimable := l.Claimable(r)
		require.Equal(t, "6", claimable[0].Amount.String())
	}
}

func TestLedger_Claim(t *testing.T) {
	t.Parallel()

	l := fees.NewLedger()
	relayer := types.GenAccount()
	l.Collect("ucore", sdkmath.NewInt(300), []sdk.AccAddress{relayer})

	err := l.Claim(relayer, sdk.NewCoins(sdk.NewCoin("ucore", sdkmath.NewInt(100))))
	require.NoError(t, err)
	require.Equal(t, "200", l.Claimable(relayer)[0].Amount.String())

	err = l.Claim(relayer, sdk.NewCoins(sdk.NewCoin("ucore", sdkmath.NewInt(1_000))))
	require.ErrorIs(t, err, types.ErrNotEnoughFeesToClaim)

	err = l.Claim(types.GenAccount(), sdk.NewCoins(sdk.NewCoin("ucore", sdkmath.NewInt(1))))
	require.ErrorIs(t, err, types.ErrNotEnoughFeesToClaim)
}

func TestLedger_RelayerRetiredBalanceStaysClaimable(t *testing.T) {
	t.Parallel()

	l := fees.NewLedger()
	retired := types.GenAccount()
	l.Collect("ucore", sdkmath.NewInt(90), []sdk.AccAddress{retired})

	require.Equal(t, "90", l.Claimable(retired)[0].Amount.String())
	require.NoError(t, l.Claim(retired, sdk.NewCoins(sdk.NewCoin("ucore", sdkmath.NewInt(90)))))
}
