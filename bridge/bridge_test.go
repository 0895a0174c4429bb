package bridge_test

import (
	"context"
	"testing"

	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	"github.com/CoreumFoundation/xrplbridge-core/bridge"
	"github.com/CoreumFoundation/xrplbridge-core/ports"
	"github.com/CoreumFoundation/xrplbridge-core/types"
)

// testBridgeXRPLAddress is a well-formed XRPL classic address (the well-known genesis account,
// xrpl.GenesisAccount) used as the fixture bridge's own XRPL door address.
const testBridgeXRPLAddress = "rHb9CJAWyB4rj91VRWn96DkukG4bwdtyTh"

// otherXRPLAddress is a second well-formed XRPL address, used wherever a test needs a recipient
// or issuer distinct from the bridge's own.
const otherXRPLAddress = "rnZfuixFVhyAXWZDnYsCGEg2zGtpg4ZjKn"

type mintCall struct {
	Denom  string
	Amount sdkmath.Int
	To     sdk.AccAddress
}

type burnCall struct {
	Denom  string
	Amount sdkmath.Int
	From   sdk.AccAddress
}

// fakeMinter is an in-memory ports.Minter recording every call, standing in for the host
// chain's token factory (spec.md §4.10).
type fakeMinter struct {
	minted []mintCall
	burned []burnCall
}

func (m *fakeMinter) CreateDenom(context.Context, string, *ports.DenomMetadata) (string, error) {
	return "", nil
}

func (m *fakeMinter) MintTokens(_ context.Context, denom string, amount sdkmath.Int, to sdk.AccAddress) error {
	m.minted = append(m.minted, mintCall{Denom: denom, Amount: amount, To: to})
	return nil
}

func (m *fakeMinter) BurnTokens(_ context.Context, denom string, amount sdkmath.Int, from sdk.AccAddress) error {
	m.burned = append(m.burned, burnCall{Denom: denom, Amount: amount, From: from})
	return nil
}

// fakeRateLimiter records every flow reported to it, standing in for the rate-limit middleware
// (spec.md §4.9).
type fakeRateLimiter struct {
	sent     []sdkmath.Int
	received []sdkmath.Int
}

func (r *fakeRateLimiter) SendPacket(_ context.Context, _, _ string, amount sdkmath.Int) error {
	r.sent = append(r.sent, amount)
	return nil
}

func (r *fakeRateLimiter) RecvPacket(_ context.Context, _, _ string, amount sdkmath.Int) error {
	r.received = append(r.received, amount)
	return nil
}

type swapCall struct {
	Recipient sdk.AccAddress
	Coin      sdk.Coin
	Memo      string
}

// fakeSwapHook is a configurable ports.SwapHook: setting err makes every subsequent call fail,
// standing in for a misbehaving downstream swap entry point.
type fakeSwapHook struct {
	calls []swapCall
	err   error
}

func (h *fakeSwapHook) UniversalSwap(_ context.Context, recipient sdk.AccAddress, coin sdk.Coin, memo string) error {
	h.calls = append(h.calls, swapCall{Recipient: recipient, Coin: coin, Memo: memo})
	return h.err
}

func newRelayer() types.Relayer {
	host := types.GenAccount()
	return types.Relayer{HostAddress: host, XRPLAddress: "r" + host.String(), XRPLPubKey: "p" + host.String()}
}

// fixture bundles an instantiated Core with its fakes and the accounts used to build it.
type fixture struct {
	Core       *bridge.Core
	Owner      sdk.AccAddress
	BridgeHost sdk.AccAddress
	Relayers   []types.Relayer
	Threshold  uint32

	Minter      *fakeMinter
	RateLimiter *fakeRateLimiter
	SwapHook    *fakeSwapHook
}

// newFixture instantiates a fresh bridge with 3 relayers (threshold 2) and fake ports wired in.
// withSwapHook controls whether a SwapHook port is configured at all, mirroring the original's
// `config.osor_entry_point.is_some()` distinction.
func newFixture(t *testing.T, withSwapHook bool) *fixture {
	t.Helper()

	owner := types.GenAccount()
	bridgeHost := types.GenAccount()
	relayers := []types.Relayer{newRelayer(), newRelayer(), newRelayer()}
	minter := &fakeMinter{}
	rateLimiter := &fakeRateLimiter{}

	var hook ports.SwapHook
	var fake *fakeSwapHook
	if withSwapHook {
		fake = &fakeSwapHook{}
		hook = fake
	}

	c, err := bridge.InstantiateBridge(bridge.InstantiateBridgeRequest{
		Owner:                       owner,
		Relayers:                    relayers,
		EvidenceThreshold:           2,
		UsedTicketSequenceThreshold: 2,
		TrustSetLimitAmount:         sdkmath.NewInt(1_000_000_000_000_000),
		BridgeXRPLAddress:           testBridgeXRPLAddress,
		BridgeHostAddress:           bridgeHost,
		Minter:                      minter,
		RateLimiter:                 rateLimiter,
		SwapHook:                    hook,
	})
	require.NoError(t, err)

	return &fixture{
		Core:        c,
		Owner:       owner,
		BridgeHost:  bridgeHost,
		Relayers:    relayers,
		Threshold:   2,
		Minter:      minter,
		RateLimiter: rateLimiter,
		SwapHook:    fake,
	}
}

// attestTransactionResult has f's first Threshold relayers attest to ev in turn, returning the
// result of the final (quorum-committing) call.
func attestTransactionResult(
	t *testing.T, f *fixture, ev types.XRPLTransactionResultEvidence,
) bridge.SaveXRPLTransactionResultEvidenceResult {
	t.Helper()
	var out bridge.SaveXRPLTransactionResultEvidenceResult
	for i := uint32(0); i < f.Threshold; i++ {
		res, err := f.Core.SaveXRPLTransactionResultEvidence(context.Background(), f.Relayers[i].HostAddress, ev)
		require.NoError(t, err)
		out = res
	}
	return out
}

// seedTickets drives RecoverTickets through to a committed Accepted allocation -- the only path
// by which tickets enter the pool (spec.md §4.3) -- and returns the tickets granted.
func (f *fixture) seedTickets(t *testing.T, n uint32) []uint32 {
	t.Helper()

	op, err := f.Core.RecoverTickets(f.Owner, &n)
	require.NoError(t, err)

	granted := make([]uint32, n)
	for i := range granted {
		granted[i] = uint32(100 + i)
	}

	attestTransactionResult(t, f, types.XRPLTransactionResultEvidence{
		TxHash:            "seed-tickets",
		AccountSequence:   op.AccountSequence,
		TransactionResult: types.TransactionResultAccepted,
		OperationResult:   &types.TicketsAllocationResult{Tickets: granted},
	})
	return granted
}

// registerAndEnableXRPLToken registers an XRPL-originated token and commits its TrustSet
// operation as Accepted, leaving it Enabled and ready to bridge inbound transfers.
func (f *fixture) registerAndEnableXRPLToken(t *testing.T, req bridge.RegisterXRPLTokenRequest) types.XRPLToken {
	t.Helper()

	if len(f.Core.AvailableTickets()) == 0 {
		f.seedTickets(t, 5)
	}

	token, err := f.Core.RegisterXRPLToken(context.Background(), f.Owner, req)
	require.NoError(t, err)

	var trustSetOp types.Operation
	found := false
	pending, _ := f.Core.PendingOperationsPage(nil, 1000)
	for _, op := range pending {
		if op.OperationType.TrustSet != nil && op.OperationType.TrustSet.Issuer == req.Issuer &&
			op.OperationType.TrustSet.Currency == req.Currency {
			trustSetOp = op
			found = true
			break
		}
	}
	require.True(t, found, "expected a pending TrustSet operation for the newly registered token")

	attestTransactionResult(t, f, types.XRPLTransactionResultEvidence{
		TxHash:            "trust-set-" + req.Issuer + req.Currency,
		TicketSequence:    trustSetOp.TicketSequence,
		TransactionResult: types.TransactionResultAccepted,
	})

	token, ok := f.Core.XRPLToken(req.Issuer, req.Currency)
	require.True(t, ok)
	require.Equal(t, types.TokenStateEnabled, token.State)
	return token
}
