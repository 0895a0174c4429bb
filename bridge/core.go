// Package bridge wires the numeric kernel, token registry, ticket pool, operation queue,
// evidence engine, fee ledger and transfer pipeline into the single stateful orchestrator the
// spec's §6 Operations/Query surface describes. Core owns every piece of process-wide state;
// every exported method is one atomic, all-or-nothing transaction (spec.md §5, §7): on error the
// receiver is left byte-for-byte as it was before the call.
package bridge

import (
	"context"

	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/pkg/errors"

	"github.com/CoreumFoundation/xrplbridge-core/control"
	"github.com/CoreumFoundation/xrplbridge-core/evidence"
	"github.com/CoreumFoundation/xrplbridge-core/fees"
	"github.com/CoreumFoundation/xrplbridge-core/logger"
	"github.com/CoreumFoundation/xrplbridge-core/operations"
	"github.com/CoreumFoundation/xrplbridge-core/ports"
	"github.com/CoreumFoundation/xrplbridge-core/registry"
	"github.com/CoreumFoundation/xrplbridge-core/tickets"
	"github.com/CoreumFoundation/xrplbridge-core/transfer"
	"github.com/CoreumFoundation/xrplbridge-core/types"
	"github.com/CoreumFoundation/xrplbridge-core/xrpl"
)

// Core is the bridge's complete in-process state plus the external ports it may be wired to.
// It is not safe for concurrent use: spec.md §5 models the core as a single-threaded
// deterministic state machine, with ordering imposed by the host chain's block production, not
// by internal locking.
type Core struct {
	Config types.Config

	XRPLTokens *registry.XRPLTokenStore
	HostTokens *registry.HostTokenStore
	Tickets    *tickets.Pool
	Operations *operations.Queue
	Evidence   *evidence.Engine
	Fees       *fees.Ledger
	Balances   *transfer.Balances
	Refunds    *transfer.RefundStore
	Prohibited *control.ProhibitedSet

	Minter      ports.Minter
	RateLimiter ports.RateLimiter
	SwapHook    ports.SwapHook

	log logger.Logger
}

// InstantiateBridgeRequest is InstantiateBridge's input, mirroring spec.md §6's precondition
// list.
type InstantiateBridgeRequest struct {
	Owner                       sdk.AccAddress
	Relayers                    []types.Relayer
	EvidenceThreshold           uint32
	UsedTicketSequenceThreshold uint32
	TrustSetLimitAmount         sdkmath.Int
	BridgeXRPLAddress           string
	BridgeHostAddress           sdk.AccAddress
	Minter                      ports.Minter
	RateLimiter                 ports.RateLimiter
	SwapHook                    ports.SwapHook
	Log                         logger.Logger
}

// InstantiateBridge bootstraps a brand-new Core: validates the relayer set, the used-ticket
// threshold, the bridge's own XRPL address, and the trust-set limit; persists Config; registers
// native XRP as an always-Enabled XRPLToken; and seeds the prohibited-address set, per spec.md
// §6's InstantiateBridge row and §6 "Initial prohibited set".
func InstantiateBridge(req InstantiateBridgeRequest) (*Core, error) {
	if err := control.ValidateRelayerSet(req.Relayers, req.EvidenceThreshold); err != nil {
		return nil, err
	}
	if err := control.ValidateUsedTicketSequenceThreshold(req.UsedTicketSequenceThreshold); err != nil {
		return nil, err
	}
	if err := xrpl.ValidateAddress(req.BridgeXRPLAddress); err != nil {
		return nil, err
	}
	if req.BridgeHostAddress == nil || req.BridgeHostAddress.Empty() {
		return nil, errors.WithStack(types.ErrInvalidConfig)
	}
	if err := numericValidateTrustSetLimit(req.TrustSetLimitAmount); err != nil {
		return nil, err
	}

	log := req.Log
	if log == nil {
		log = logger.NewNoopLogger()
	}

	c := &Core{
		Config: types.Config{
			Owner:                       req.Owner,
			Relayers:                    req.Relayers,
			EvidenceThreshold:           req.EvidenceThreshold,
			UsedTicketSequenceThreshold: req.UsedTicketSequenceThreshold,
			TrustSetLimitAmount:         req.TrustSetLimitAmount,
			BridgeXRPLAddress:           req.BridgeXRPLAddress,
			BridgeHostAddress:           req.BridgeHostAddress,
			BridgeState:                 types.BridgeStateActive,
			XRPLBaseFee:                 10,
		},
		XRPLTokens: registry.NewXRPLTokenStore(),
		HostTokens: registry.NewHostTokenStore(),
		Tickets:    tickets.NewPool(),
		Operations: operations.NewQueue(),
		Evidence:   evidence.NewEngine(),
		Fees:       fees.NewLedger(),
		Balances:   transfer.NewBalances(),
		Refunds:    transfer.NewRefundStore(),
		Prohibited: control.NewProhibitedSet(req.BridgeXRPLAddress),

		Minter:      req.Minter,
		RateLimiter: req.RateLimiter,
		SwapHook:    req.SwapHook,
		log:         log,
	}

	c.XRPLTokens.Set(types.XRPLToken{
		Issuer:           xrpl.XRPIssuer(),
		Currency:         xrpl.XRPCurrency(),
		HostDenom:        "uxrp",
		SendingPrecision: 6,
		MaxHoldingAmount: types.MaxAmount,
		State:            types.TokenStateEnabled,
		BridgingFee:      sdkmath.ZeroInt(),
	})

	c.log.Info(context.Background(), "bridge instantiated", logger.StringFiled("bridge_xrpl_address", req.BridgeXRPLAddress))
	return c, nil
}

func numericValidateTrustSetLimit(limit sdkmath.Int) error {
	if limit.IsNil() || !limit.IsPositive() {
		return errors.WithStack(types.ErrInvalidConfig)
	}
	return nil
}

// requireActive fails with ErrBridgeHalted unless the bridge is currently Active.
func (c *Core) requireActive() error {
	if c.Config.BridgeState != types.BridgeStateActive {
		return errors.WithStack(types.ErrBridgeHalted)
	}
	return nil
}

// requireOwner fails with ErrUnauthorized unless caller is the configured owner.
func (c *Core) requireOwner(caller sdk.AccAddress) error {
	if !caller.Equals(c.Config.Owner) {
		return errors.WithStack(types.ErrUnauthorized)
	}
	return nil
}

// requireRelayer fails with ErrUnauthorized unless caller is a current relayer, returning the
// matched Relayer record.
func (c *Core) requireRelayer(caller sdk.AccAddress) (types.Relayer, error) {
	r, ok := c.Config.RelayerByHostAddress(caller)
	if !ok {
		return types.Relayer{}, errors.WithStack(types.ErrUnauthorized)
	}
	return r, nil
}

// relayerHostAddresses returns the current relayer set's Host addresses, the shape fees.Ledger
// splits across.
func (c *Core) relayerHostAddresses() []sdk.AccAddress {
	out := make([]sdk.AccAddress, len(c.Config.Relayers))
	for i, r := range c.Config.Relayers {
		out[i] = r.HostAddress
	}
	return out
}

// enqueueTicketOperation consumes a ticket and enqueues op with that ticket sequence, failing
// (and leaving the pool untouched) if none is available.
func (c *Core) enqueueTicketOperation(opType types.OperationType) (types.Operation, error) {
	ticket, ok := c.Tickets.Consume()
	if !ok {
		return types.Operation{}, errors.WithStack(types.ErrInvalidTicketSequenceToAllocate)
	}
	op := types.Operation{
		TicketSequence: &ticket,
		OperationType:  opType,
		XRPLBaseFee:    c.Config.XRPLBaseFee,
	}
	operations.Enqueue(c.Operations, op)
	return op, nil
}

// maybeAutoReplenishTickets enqueues a follow-up AllocateTickets operation when the pool's usage
// has crossed the configured threshold, per spec.md §4.3. Account-sequence based, like every
// AllocateTickets operation.
func (c *Core) maybeAutoReplenishTickets() {
	needed, n := c.Tickets.NeedsAutoReplenish(c.Config.UsedTicketSequenceThreshold)
	if !needed {
		return
	}
	if err := c.Tickets.RequestAllocation(n, c.Config.UsedTicketSequenceThreshold); err != nil {
		c.log.Warn(context.Background(), "auto-replenish could not be requested", logger.Error(err))
		return
	}
	seq := c.nextAccountSequence()
	operations.Enqueue(c.Operations, types.Operation{
		AccountSequence: &seq,
		OperationType:   types.OperationType{AllocateTickets: &types.OperationTypeAllocateTickets{Number: n}},
		XRPLBaseFee:     c.Config.XRPLBaseFee,
	})
}

// nextAccountSequence derives the next free account-sequence key for an AllocateTickets
// operation: one past the highest account-sequence operation currently pending, or 1 if none.
func (c *Core) nextAccountSequence() uint32 {
	var max uint32
	for _, op := range c.Operations.All() {
		if op.AccountSequence != nil && *op.AccountSequence > max {
			max = *op.AccountSequence
		}
	}
	return max + 1
}
