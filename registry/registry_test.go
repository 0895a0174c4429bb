package registry_test

import (
	"testing"

	sdkmath "cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/CoreumFoundation/xrplbridge-core/registry"
	"github.com/CoreumFoundation/xrplbridge-core/types"
)

func TestXRPLTokenStore_Register(t *testing.T) {
	t.Parallel()

	s := registry.NewXRPLTokenStore()
	token, err := registry.Register(s, "rIssuer", "FOO", 6, sdkmath.NewInt(1_000_000), sdkmath.ZeroInt(), 1)
	require.NoError(t, err)
	require.Equal(t, types.TokenStateProcessing, token.State)
	require.Contains(t, token.HostDenom, "xrpl")
	require.Len(t, token.HostDenom, 14)

	got, ok := s.Get("rIssuer", "FOO")
	require.True(t, ok)
	require.Equal(t, token, got)

	_, err = registry.Register(s, "rIssuer", "FOO", 6, sdkmath.NewInt(1_000_000), sdkmath.ZeroInt(), 2)
	require.ErrorIs(t, err, types.ErrTokenAlreadyRegistered)
}

func TestXRPLTokenStore_Register_InvalidCurrency(t *testing.T) {
	t.Parallel()

	s := registry.NewXRPLTokenStore()
	_, err := registry.Register(s, "rIssuer", "XRP", 6, sdkmath.NewInt(1_000_000), sdkmath.ZeroInt(), 1)
	require.ErrorIs(t, err, types.ErrInvalidXRPLCurrency)
}

func TestHostTokenStore_Register(t *testing.T) {
	t.Parallel()

	s := registry.NewHostTokenStore()
	token, err := registry.RegisterHostToken(s, "ucore", 6, 6, sdkmath.NewInt(1_000_000), sdkmath.ZeroInt(), 1)
	require.NoError(t, err)
	require.Equal(t, types.TokenStateEnabled, token.State)
	require.Len(t, token.XRPLCurrency, 40)

	got, ok := s.GetByXRPLCurrency(token.XRPLCurrency)
	require.True(t, ok)
	require.Equal(t, token, got)

	_, err = registry.RegisterHostToken(s, "ucore", 6, 6, sdkmath.NewInt(1_000_000), sdkmath.ZeroInt(), 2)
	require.ErrorIs(t, err, types.ErrTokenAlreadyRegistered)
}

func TestHostTokenStore_Register_InvalidSendingPrecision(t *testing.T) {
	t.Parallel()

	s := registry.NewHostTokenStore()
	_, err := registry.RegisterHostToken(s, "ucore", 6, 7, sdkmath.NewInt(1_000_000), sdkmath.ZeroInt(), 1)
	require.ErrorIs(t, err, types.ErrInvalidSendingPrecision)
}

func TestUpdateTargetState(t *testing.T) {
	t.Parallel()

	require.NoError(t, registry.UpdateTargetState(types.TokenStateEnabled, types.TokenStateDisabled))
	require.ErrorIs(
		t,
		registry.UpdateTargetState(types.TokenStateEnabled, types.TokenStateProcessing),
		types.ErrInvalidTargetTokenState,
	)
	require.ErrorIs(
		t,
		registry.UpdateTargetState(types.TokenStateProcessing, types.TokenStateEnabled),
		types.ErrTokenStateIsImmutable,
	)
}

func TestUpdateMaxHoldingAmount(t *testing.T) {
	t.Parallel()

	require.NoError(t, registry.UpdateMaxHoldingAmount(sdkmath.NewInt(100), sdkmath.NewInt(50)))
	require.ErrorIs(
		t,
		registry.UpdateMaxHoldingAmount(sdkmath.NewInt(40), sdkmath.NewInt(50)),
		types.ErrInvalidTargetMaxHoldingAmount,
	)
}
