package bridge

import (
	"context"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/pkg/errors"

	"github.com/CoreumFoundation/xrplbridge-core/control"
	"github.com/CoreumFoundation/xrplbridge-core/evidence"
	"github.com/CoreumFoundation/xrplbridge-core/logger"
	"github.com/CoreumFoundation/xrplbridge-core/transfer"
	"github.com/CoreumFoundation/xrplbridge-core/types"
)

// SaveXRPLToHostTransferEvidenceResult reports whether relayer's attestation reached quorum this
// call and, if so, the transfer effects already applied plus anything the caller still owes: a
// swap-hook forwarding call that failed leaves its compensating transfer in Recovery for the
// wrapping chain module to issue (spec.md §4.11 -- Core has no bank keeper of its own).
type SaveXRPLToHostTransferEvidenceResult struct {
	Committed      bool
	Inbound        transfer.InboundResult
	SwapHookFailed bool
	Recovery       transfer.RecoveryRecord
}

// SaveXRPLToHostTransferEvidence records relayer's attestation that funds arrived on XRPL destined
// for Host (spec.md §4.5, §4.6). Once the configured quorum is reached the transfer commits: the
// token is classified, the numeric kernel applied in the XRPL→Host order, capacity checked, and
// Balances/Minter/fees.Ledger/RateLimiter updated; a configured SwapHook is invoked best-effort for
// memo-bearing transfers.
func (c *Core) SaveXRPLToHostTransferEvidence(
	ctx context.Context,
	caller sdk.AccAddress,
	ev types.XRPLToHostTransferEvidence,
) (SaveXRPLToHostTransferEvidenceResult, error) {
	if err := c.requireActive(); err != nil {
		return SaveXRPLToHostTransferEvidenceResult{}, err
	}
	relayer, err := c.requireRelayer(caller)
	if err != nil {
		return SaveXRPLToHostTransferEvidenceResult{}, err
	}
	if err := evidence.ValidateXRPLToHostTransferEvidence(ev, c.Config.BridgeHostAddress); err != nil {
		return SaveXRPLToHostTransferEvidenceResult{}, err
	}

	hash := evidence.HashXRPLToHostTransferEvidence(ev)
	committed, _, err := c.Evidence.Attest(hash, ev.TxHash, relayer.HostAddress, c.Config.EvidenceThreshold)
	if err != nil {
		return SaveXRPLToHostTransferEvidenceResult{}, err
	}
	if !committed {
		return SaveXRPLToHostTransferEvidenceResult{}, nil
	}

	result, err := transfer.Inbound(
		c.XRPLTokens, c.HostTokens, c.Balances,
		c.Config.BridgeXRPLAddress, c.Config.BridgeHostAddress, c.SwapHook != nil,
		ev,
	)
	if err != nil {
		return SaveXRPLToHostTransferEvidenceResult{}, err
	}

	if result.Mint != nil && c.Minter != nil {
		if err := c.Minter.MintTokens(ctx, result.Mint.Denom, result.Mint.Amount, result.Mint.To); err != nil {
			return SaveXRPLToHostTransferEvidenceResult{}, errors.Wrap(err, "mint inbound amount")
		}
	}
	if result.FeeMint != nil && c.Minter != nil {
		if err := c.Minter.MintTokens(ctx, result.FeeMint.Denom, result.FeeMint.Amount, result.FeeMint.To); err != nil {
			return SaveXRPLToHostTransferEvidenceResult{}, errors.Wrap(err, "mint bridging fee")
		}
	}
	if result.FeeContribution.IsPositive() {
		c.Fees.Collect(result.HostDenom, result.FeeContribution, c.relayerHostAddresses())
	}
	if result.RateLimit != nil && c.RateLimiter != nil {
		if err := c.RateLimiter.RecvPacket(ctx, "", result.HostDenom, result.RateLimit.Amount); err != nil {
			return SaveXRPLToHostTransferEvidenceResult{}, errors.Wrap(err, "rate limit")
		}
	}

	out := SaveXRPLToHostTransferEvidenceResult{Committed: true, Inbound: result}
	if result.SwapHook != nil && c.SwapHook != nil {
		hook := result.SwapHook
		if err := c.SwapHook.UniversalSwap(ctx, hook.Recipient, hook.Coin, hook.Memo); err != nil {
			c.log.Warn(ctx, "swap hook failed, compensating transfer owed", logger.Error(err))
			out.SwapHookFailed = true
			out.Recovery = hook.Recovery
		}
	}
	return out, nil
}

// SaveXRPLTransactionResultEvidenceResult reports whether the evidence reached quorum and, when it
// did, the downstream effects of whichever pending operation it resolved.
type SaveXRPLTransactionResultEvidenceResult struct {
	Committed            bool
	ManualRecoveryNeeded bool
	Outbound             transfer.OutboundOutcome
}

// SaveXRPLTransactionResultEvidence records relayer's attestation about the outcome of a queued
// XRPL operation (spec.md §4.5). Once quorum is reached, the pending operation named by the
// evidence's sequence number is resolved according to its kind: AllocateTickets replenishes the
// ticket pool, TrustSet flips the token's lifecycle state, HostToXRPLTransfer releases escrow or
// opens a refund, and RotateKeys swaps in the new relayer set. The resolved operation is always
// removed from the queue; an Invalid ticket-holding operation returns its ticket.
func (c *Core) SaveXRPLTransactionResultEvidence(
	ctx context.Context,
	caller sdk.AccAddress,
	ev types.XRPLTransactionResultEvidence,
) (SaveXRPLTransactionResultEvidenceResult, error) {
	relayer, err := c.requireRelayer(caller)
	if err != nil {
		return SaveXRPLTransactionResultEvidenceResult{}, err
	}
	if err := evidence.ValidateXRPLTransactionResultEvidence(ev); err != nil {
		return SaveXRPLTransactionResultEvidenceResult{}, err
	}
	op, ok := c.Operations.Get(ev.OperationID())
	if !ok {
		return SaveXRPLTransactionResultEvidenceResult{}, errors.WithStack(types.ErrPendingOperationNotFound)
	}

	hash := evidence.HashXRPLTransactionResultEvidence(ev)
	committed, _, err := c.Evidence.Attest(hash, ev.TxHash, relayer.HostAddress, c.Config.EvidenceThreshold)
	if err != nil {
		return SaveXRPLTransactionResultEvidenceResult{}, err
	}
	if !committed {
		return SaveXRPLTransactionResultEvidenceResult{}, nil
	}

	out := c.resolveOperation(op, ev.TransactionResult, ev.OperationResult)
	return out, nil
}

// resolveOperation applies result to op, the shared dispatch both a committed
// SaveXRPLTransactionResultEvidence and an owner's CancelPendingOperation (which synthesizes
// Invalid, per spec.md §4.7) drive. op is always removed from the queue; an Invalid
// ticket-holding operation returns its ticket, while Accepted and Rejected ones have used it.
func (c *Core) resolveOperation(
	op types.Operation,
	result types.TransactionResult,
	operationResult *types.TicketsAllocationResult,
) SaveXRPLTransactionResultEvidenceResult {
	out := SaveXRPLTransactionResultEvidenceResult{Committed: true}

	switch {
	case op.OperationType.AllocateTickets != nil:
		var allocated []uint32
		if operationResult != nil {
			allocated = operationResult.Tickets
		}
		out.ManualRecoveryNeeded = c.Tickets.CommitAllocation(result, allocated)
		c.Operations.Remove(op.ID())

	case op.OperationType.TrustSet != nil:
		c.Operations.Remove(op.ID())
		trustSet := *op.OperationType.TrustSet
		if token, ok := c.XRPLTokens.Get(trustSet.Issuer, trustSet.Currency); ok {
			if result == types.TransactionResultAccepted {
				token.State = types.TokenStateEnabled
			} else {
				token.State = types.TokenStateInactive
			}
			c.XRPLTokens.Set(token)
		}
		if result == types.TransactionResultInvalid && op.TicketSequence != nil {
			c.Tickets.Return(*op.TicketSequence)
		}

	case op.OperationType.HostToXRPLTransfer != nil:
		transferOp := *op.OperationType.HostToXRPLTransfer
		hostToken, isHostOriginated := c.HostTokens.GetByXRPLCurrency(transferOp.Currency)
		hostDenom := hostToken.HostDenom
		if !isHostOriginated {
			if xrplToken, ok := c.XRPLTokens.Get(transferOp.Issuer, transferOp.Currency); ok {
				hostDenom = xrplToken.HostDenom
			}
		}
		netAmount := transferOp.Amount.Sub(transferOp.FeeContribution)
		out.Outbound = transfer.CompleteOutbound(
			c.Refunds, c.Balances, isHostOriginated, result, transferOp, hostDenom, netAmount,
		)
		c.Operations.Remove(op.ID())
		if out.Outbound.ReturnTicket && op.TicketSequence != nil {
			c.Tickets.Return(*op.TicketSequence)
		}

	case op.OperationType.RotateKeys != nil:
		rotate := *op.OperationType.RotateKeys
		c.Operations.Remove(op.ID())
		c.Tickets.CommitRotateKeys()
		if result == types.TransactionResultAccepted {
			control.CommitRotateKeys(&c.Config, rotate.NewRelayers, rotate.NewThreshold)
		}
		if result == types.TransactionResultInvalid && op.TicketSequence != nil {
			c.Tickets.Return(*op.TicketSequence)
		}
	}

	if result != types.TransactionResultInvalid {
		c.maybeAutoReplenishTickets()
	}
	return out
}
