package bridge_test

import (
	"context"
	"testing"

	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	"github.com/CoreumFoundation/xrplbridge-core/bridge"
	"github.com/CoreumFoundation/xrplbridge-core/types"
)

func TestSendToXRPL_ReportsTruncatedPreFeeAmountToRateLimiter(t *testing.T) {
	t.Parallel()

	f := newFixture(t, false)
	_, err := f.Core.RegisterHostToken(f.Owner, bridge.RegisterHostTokenRequest{
		Denom:            "ucore",
		Decimals:         6,
		SendingPrecision: 5,
		MaxHoldingAmount: sdkmath.NewInt(1_000_000_000_000),
		BridgingFee:      sdkmath.ZeroInt(),
		NowUnixNano:      1,
	})
	require.NoError(t, err)
	f.seedTickets(t, 5)

	sender := types.GenAccount()
	_, err = f.Core.SendToXRPL(
		context.Background(), sender, sdk.NewCoin("ucore", sdkmath.NewInt(1_000_001)), otherXRPLAddress, nil,
	)
	require.NoError(t, err)

	require.Len(t, f.RateLimiter.sent, 1)
	require.Equal(t, sdkmath.NewInt(1_000_000), f.RateLimiter.sent[0],
		"rate limit must see the truncated pre-fee amount, not the raw coin amount")
}

func TestSendToXRPL_RejectedRefundsAmountMinusAlreadyDistributedFee(t *testing.T) {
	t.Parallel()

	f := newFixture(t, false)
	_, err := f.Core.RegisterHostToken(f.Owner, bridge.RegisterHostTokenRequest{
		Denom:            "ucore",
		Decimals:         6,
		SendingPrecision: 5,
		MaxHoldingAmount: sdkmath.NewInt(1_000_000_000_000),
		BridgingFee:      sdkmath.ZeroInt(),
		NowUnixNano:      1,
	})
	require.NoError(t, err)
	f.seedTickets(t, 5)

	sender := types.GenAccount()
	sendRes, err := f.Core.SendToXRPL(
		context.Background(), sender, sdk.NewCoin("ucore", sdkmath.NewInt(1_000_001)), otherXRPLAddress, nil,
	)
	require.NoError(t, err)
	require.Equal(t, sdkmath.NewInt(1), sendRes.Outbound.FeeContribution,
		"the truncation remainder, not the token's flat bridging fee, is what goes to relayers here")

	out := attestTransactionResult(t, f, types.XRPLTransactionResultEvidence{
		TxHash:            "outbound-rejected",
		TicketSequence:    sendRes.Operation.TicketSequence,
		TransactionResult: types.TransactionResultRejected,
	})
	require.True(t, out.Committed)
	require.NotNil(t, out.Outbound.Refund)
	require.Equal(t, sdkmath.NewInt(1_000_000), out.Outbound.Refund.Coin.Amount,
		"refund must exclude the 1 unit already paid out to relayers as fee, or the sender is overpaid")

	refunds := f.Core.PendingRefunds(sender)
	require.Len(t, refunds, 1)
	require.Equal(t, sdkmath.NewInt(1_000_000), refunds[0].Coin.Amount)
}

func TestSendToXRPL_AcceptedReleasesEscrowToSender(t *testing.T) {
	t.Parallel()

	f := newFixture(t, false)
	_, err := f.Core.RegisterHostToken(f.Owner, bridge.RegisterHostTokenRequest{
		Denom:            "ucore",
		Decimals:         6,
		SendingPrecision: 6,
		MaxHoldingAmount: sdkmath.NewInt(1_000_000_000_000),
		BridgingFee:      sdkmath.ZeroInt(),
		NowUnixNano:      1,
	})
	require.NoError(t, err)
	f.seedTickets(t, 5)

	sender := types.GenAccount()
	sendRes, err := f.Core.SendToXRPL(
		context.Background(), sender, sdk.NewCoin("ucore", sdkmath.NewInt(1_000_000)), otherXRPLAddress, nil,
	)
	require.NoError(t, err)
	require.Equal(t, sdkmath.NewInt(1_000_000), f.Core.EscrowFor("ucore"))

	out := attestTransactionResult(t, f, types.XRPLTransactionResultEvidence{
		TxHash:            "outbound-accepted",
		TicketSequence:    sendRes.Operation.TicketSequence,
		TransactionResult: types.TransactionResultAccepted,
	})
	require.True(t, out.Committed)
	require.NotNil(t, out.Outbound.EscrowRelease)
	require.Nil(t, out.Outbound.Refund)
}
