package evidence_test

import (
	"testing"

	sdkmath "cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/CoreumFoundation/xrplbridge-core/evidence"
	"github.com/CoreumFoundation/xrplbridge-core/types"
)

func TestEngine_Attest_CommitsAtThreshold(t *testing.T) {
	t.Parallel()

	e := evidence.NewEngine()
	relayerA := types.GenAccount()
	relayerB := types.GenAccount()
	relayerC := types.GenAccount()

	committed, attesters, err := e.Attest("hash1", "tx1", relayerA, 3)
	require.NoError(t, err)
	require.False(t, committed)
	require.Nil(t, attesters)

	committed, _, err = e.Attest("hash1", "tx1", relayerB, 3)
	require.NoError(t, err)
	require.False(t, committed)

	committed, attesters, err = e.Attest("hash1", "tx1", relayerC, 3)
	require.NoError(t, err)
	require.True(t, committed)
	require.Len(t, attesters, 3)

	require.True(t, e.HasProcessed("tx1"))
	_, ok := e.Evidence("hash1")
	require.False(t, ok)
}

func TestEngine_Attest_DuplicateRelayerFails(t *testing.T) {
	t.Parallel()

	e := evidence.NewEngine()
	relayer := types.GenAccount()

	_, _, err := e.Attest("hash1", "", relayer, 2)
	require.NoError(t, err)
	_, _, err = e.Attest("hash1", "", relayer, 2)
	require.ErrorIs(t, err, types.ErrEvidenceAlreadyProvided)
}

func TestEngine_Attest_ReplayProtection(t *testing.T) {
	t.Parallel()

	e := evidence.NewEngine()
	relayerA := types.GenAccount()
	relayerB := types.GenAccount()
	relayerC := types.GenAccount()

	_, _, err := e.Attest("hash1", "tx1", relayerA, 2)
	require.NoError(t, err)
	committed, _, err := e.Attest("hash1", "tx1", relayerB, 2)
	require.NoError(t, err)
	require.True(t, committed)

	_, _, err = e.Attest("hash2", "tx1", relayerC, 2)
	require.ErrorIs(t, err, types.ErrOperationAlreadyExecuted)
}

func TestValidateXRPLToHostTransferEvidence(t *testing.T) {
	t.Parallel()

	bridge := types.GenAccount()
	recipient := types.GenAccount()

	valid := types.XRPLToHostTransferEvidence{
		TxHash: "tx1", Issuer: "rIssuer", Currency: "FOO", Amount: sdkmath.NewInt(100), Recipient: recipient,
	}
	require.NoError(t, evidence.ValidateXRPLToHostTransferEvidence(valid, bridge))

	zero := valid
	zero.Amount = sdkmath.ZeroInt()
	require.ErrorIs(t, evidence.ValidateXRPLToHostTransferEvidence(zero, bridge), types.ErrInvalidEvidence)

	toBridge := valid
	toBridge.Recipient = bridge
	require.ErrorIs(t, evidence.ValidateXRPLToHostTransferEvidence(toBridge, bridge), types.ErrInvalidEvidence)
}

func TestValidateXRPLTransactionResultEvidence(t *testing.T) {
	t.Parallel()

	ticket := uint32(5)
	account := uint32(7)

	require.NoError(t, evidence.ValidateXRPLTransactionResultEvidence(types.XRPLTransactionResultEvidence{
		TicketSequence: &ticket, TransactionResult: types.TransactionResultAccepted,
	}))
	require.ErrorIs(t, evidence.ValidateXRPLTransactionResultEvidence(types.XRPLTransactionResultEvidence{
		TicketSequence: &ticket, AccountSequence: &account, TransactionResult: types.TransactionResultAccepted,
	}), types.ErrInvalidTransactionResultEvidence)
	require.ErrorIs(t, evidence.ValidateXRPLTransactionResultEvidence(types.XRPLTransactionResultEvidence{
		TransactionResult: types.TransactionResultAccepted,
	}), types.ErrInvalidTransactionResultEvidence)
}

func TestHashesAreDeterministicAndDistinct(t *testing.T) {
	t.Parallel()

	recipient := types.GenAccount()
	e1 := types.XRPLToHostTransferEvidence{
		TxHash: "tx1", Issuer: "rIssuer", Currency: "FOO", Amount: sdkmath.NewInt(100), Recipient: recipient,
	}
	e2 := e1
	e2.Amount = sdkmath.NewInt(200)

	require.Equal(t, evidence.HashXRPLToHostTransferEvidence(e1), evidence.HashXRPLToHostTransferEvidence(e1))
	require.NotEqual(t, evidence.HashXRPLToHostTransferEvidence(e1), evidence.HashXRPLToHostTransferEvidence(e2))
}
