package transfer_test

import (
	"testing"

	sdkmath "cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/CoreumFoundation/xrplbridge-core/registry"
	"github.com/CoreumFoundation/xrplbridge-core/transfer"
	"github.com/CoreumFoundation/xrplbridge-core/types"
	"github.com/CoreumFoundation/xrplbridge-core/xrpl"
)

func TestInbound_XRPLOriginated_MintsNetAmountAndFee(t *testing.T) {
	t.Parallel()

	xrplTokens := registry.NewXRPLTokenStore()
	token, err := registry.Register(xrplTokens, "rIssuer", "FOO", 2, sdkmath.NewInt(1_000_000_000_000_000), sdkmath.NewInt(1_000_000_000_000), 1)
	require.NoError(t, err)
	token.State = types.TokenStateEnabled
	xrplTokens.Set(token)

	balances := transfer.NewBalances()
	bridgeHost := types.GenAccount()
	recipient := types.GenAccount()

	res, err := transfer.Inbound(xrplTokens, registry.NewHostTokenStore(), balances, "rBridgeXRPL", bridgeHost, false, types.XRPLToHostTransferEvidence{
		TxHash:    "hash1",
		Issuer:    "rIssuer",
		Currency:  "FOO",
		Amount:    sdkmath.NewInt(1_000_000_000_000_000), // 1.0 at 15 decimals
		Recipient: recipient,
	})
	require.NoError(t, err)
	require.NotNil(t, res.Mint)
	require.Equal(t, recipient, res.Mint.To)
	require.NotNil(t, res.FeeMint)
	require.Equal(t, bridgeHost, res.FeeMint.To)
	require.Equal(t, token.BridgingFee, res.FeeMint.Amount)
	require.Equal(t, res.AmountReleased.Add(token.BridgingFee), balances.MirroredSupply(token.HostDenom))
}

func TestInbound_XRPLOriginated_UnregisteredToken(t *testing.T) {
	t.Parallel()

	_, err := transfer.Inbound(
		registry.NewXRPLTokenStore(), registry.NewHostTokenStore(), transfer.NewBalances(),
		"rBridgeXRPL", types.GenAccount(), false,
		types.XRPLToHostTransferEvidence{Issuer: "rOther", Currency: "FOO", Amount: sdkmath.NewInt(1), Recipient: types.GenAccount()},
	)
	require.ErrorIs(t, err, types.ErrTokenNotRegistered)
}

func TestInbound_HostOriginated_ReleasesFromEscrow(t *testing.T) {
	t.Parallel()

	hostTokens := registry.NewHostTokenStore()
	token, err := registry.RegisterHostToken(hostTokens, "ucore", 6, 6, sdkmath.NewInt(1_000_000_000), sdkmath.NewInt(100), 1)
	require.NoError(t, err)

	balances := transfer.NewBalances()
	recipient := types.GenAccount()
	// Seed escrow as if an earlier outbound transfer had put funds there.
	seedEscrow(t, balances, hostTokens, token.HostDenom, sdkmath.NewInt(1_000_000))
	res, err := transfer.Inbound(
		registry.NewXRPLTokenStore(), hostTokens, balances,
		xrpl.XRPIssuer(), types.GenAccount(), false,
		types.XRPLToHostTransferEvidence{
			Issuer:    xrpl.XRPIssuer(),
			Currency:  token.XRPLCurrency,
			Amount:    sdkmath.NewInt(1_000_000_000_000_000), // 1.0 at 15 decimals
			Recipient: recipient,
		},
	)
	require.NoError(t, err)
	require.NotNil(t, res.EscrowRelease)
	require.Equal(t, recipient, res.EscrowRelease.To)
	require.Nil(t, res.Mint)
	require.Nil(t, res.FeeMint)
}

func TestInbound_MemoWithoutHookConfigured_ReleasesDirectlyToRecipient(t *testing.T) {
	t.Parallel()

	xrplTokens := registry.NewXRPLTokenStore()
	token, err := registry.Register(xrplTokens, "rIssuer", "FOO", 2, sdkmath.NewInt(1_000_000_000_000_000), sdkmath.ZeroInt(), 1)
	require.NoError(t, err)
	token.State = types.TokenStateEnabled
	xrplTokens.Set(token)

	recipient := types.GenAccount()
	res, err := transfer.Inbound(xrplTokens, registry.NewHostTokenStore(), transfer.NewBalances(), "rBridgeXRPL", types.GenAccount(), false, types.XRPLToHostTransferEvidence{
		Issuer: "rIssuer", Currency: "FOO", Amount: sdkmath.NewInt(1_000_000_000_000_000), Recipient: recipient, Memo: "swap:pool1",
	})
	require.NoError(t, err)
	require.Nil(t, res.SwapHook)
	require.NotNil(t, res.Mint)
	require.Equal(t, recipient, res.Mint.To)
	require.NotNil(t, res.RateLimit)
	require.True(t, res.RateLimit.Inbound)
}

func TestInbound_MemoWithHookConfigured_MintsToBridgeAndAttachesSwapHook(t *testing.T) {
	t.Parallel()

	xrplTokens := registry.NewXRPLTokenStore()
	token, err := registry.Register(xrplTokens, "rIssuer", "FOO", 2, sdkmath.NewInt(1_000_000_000_000_000), sdkmath.ZeroInt(), 1)
	require.NoError(t, err)
	token.State = types.TokenStateEnabled
	xrplTokens.Set(token)

	bridgeHost := types.GenAccount()
	recipient := types.GenAccount()
	res, err := transfer.Inbound(xrplTokens, registry.NewHostTokenStore(), transfer.NewBalances(), "rBridgeXRPL", bridgeHost, true, types.XRPLToHostTransferEvidence{
		Issuer: "rIssuer", Currency: "FOO", Amount: sdkmath.NewInt(1_000_000_000_000_000), Recipient: recipient, Memo: "swap:pool1",
	})
	require.NoError(t, err)
	require.NotNil(t, res.Mint)
	require.Equal(t, bridgeHost, res.Mint.To, "mint destination must be the bridge when the swap hook will fire")
	require.NotNil(t, res.SwapHook)
	require.Equal(t, "swap:pool1", res.SwapHook.Memo)
	require.Equal(t, recipient, res.SwapHook.Recipient)
	require.Equal(t, recipient, res.SwapHook.Recovery.RecoveryAddress)
	require.NotNil(t, res.RateLimit)
	require.True(t, res.RateLimit.Inbound)
}
