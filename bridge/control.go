package bridge

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/pkg/errors"

	"github.com/CoreumFoundation/xrplbridge-core/control"
	"github.com/CoreumFoundation/xrplbridge-core/operations"
	"github.com/CoreumFoundation/xrplbridge-core/types"
)

// HaltBridge transitions the bridge to Halted. Spec.md §4.7/§6: the owner or any current relayer
// may call this while Active.
func (c *Core) HaltBridge(caller sdk.AccAddress) error {
	if err := control.AuthorizeHalt(c.Config, c.Config.Owner, caller); err != nil {
		return err
	}
	if err := c.requireActive(); err != nil {
		return err
	}
	control.Halt(&c.Config)
	return nil
}

// ResumeBridge transitions the bridge back to Active. Owner-only, refused while a key rotation
// is pending (spec.md §4.7/§6).
func (c *Core) ResumeBridge(caller sdk.AccAddress) error {
	if err := c.requireOwner(caller); err != nil {
		return err
	}
	return control.Resume(&c.Config, c.Tickets.PendingRotateKeys())
}

// RotateKeysRequest is RotateKeys's input.
type RotateKeysRequest struct {
	NewRelayers  []types.Relayer
	NewThreshold uint32
}

// RotateKeys validates and begins a relayer-set rotation: the bridge is auto-halted and a ticket
// is consumed to enqueue the RotateKeys operation, per spec.md §4.7/§6 "no rotation pending".
func (c *Core) RotateKeys(caller sdk.AccAddress, req RotateKeysRequest) (types.Operation, error) {
	if err := c.requireOwner(caller); err != nil {
		return types.Operation{}, err
	}
	if err := control.BeginRotateKeys(&c.Config, c.Tickets.PendingRotateKeys(), req.NewRelayers, req.NewThreshold); err != nil {
		return types.Operation{}, err
	}
	if err := c.Tickets.BeginRotateKeys(); err != nil {
		return types.Operation{}, err
	}
	return c.enqueueTicketOperation(types.OperationType{RotateKeys: &types.OperationTypeRotateKeys{
		NewRelayers:  req.NewRelayers,
		NewThreshold: req.NewThreshold,
	}})
}

// UpdateProhibitedXRPLAddresses replaces the prohibited-recipient set. Owner-only; the bridge's
// own XRPL address is always re-added (spec.md §4.7).
func (c *Core) UpdateProhibitedXRPLAddresses(caller sdk.AccAddress, addrs []string) error {
	if err := c.requireOwner(caller); err != nil {
		return err
	}
	c.Prohibited.Replace(addrs, c.Config.BridgeXRPLAddress)
	return nil
}

// UpdateXRPLBaseFee updates the XRPL base fee and re-versions every pending operation, emptying
// their signatures so relayers must re-sign at the new fee (spec.md §4.4 invariant 8, §4.7).
func (c *Core) UpdateXRPLBaseFee(caller sdk.AccAddress, newBaseFee uint32) error {
	if err := c.requireOwner(caller); err != nil {
		return err
	}
	c.Config.XRPLBaseFee = newBaseFee
	operations.BumpBaseFee(c.Operations, newBaseFee)
	return nil
}

// UpdateUsedTicketSequenceThreshold updates the threshold that triggers ticket
// auto-replenishment. Owner-only, bounded by spec.md §4.3/§6's 2..=250 range.
func (c *Core) UpdateUsedTicketSequenceThreshold(caller sdk.AccAddress, threshold uint32) error {
	if err := c.requireOwner(caller); err != nil {
		return err
	}
	if err := control.ValidateUsedTicketSequenceThreshold(threshold); err != nil {
		return err
	}
	c.Config.UsedTicketSequenceThreshold = threshold
	return nil
}

// CancelPendingOperation lets the owner synthesize an Invalid outcome for a pending operation
// without waiting for XRPL evidence, per spec.md §4.7/§6 "the only cancellation"; the core has no
// timers of its own. Dispatch mirrors SaveXRPLTransactionResultEvidence's Invalid branch exactly.
func (c *Core) CancelPendingOperation(caller sdk.AccAddress, id uint32) (SaveXRPLTransactionResultEvidenceResult, error) {
	if err := c.requireOwner(caller); err != nil {
		return SaveXRPLTransactionResultEvidenceResult{}, err
	}
	op, ok := c.Operations.Get(id)
	if !ok {
		return SaveXRPLTransactionResultEvidenceResult{}, errors.WithStack(types.ErrPendingOperationNotFound)
	}
	return c.resolveOperation(op, types.TransactionResultInvalid, nil), nil
}

// SaveSignature appends relayer's signature over a pending operation at version, per spec.md
// §4.4/§6 "operation exists, version matches".
func (c *Core) SaveSignature(caller sdk.AccAddress, id, version uint32, signature string) error {
	relayer, err := c.requireRelayer(caller)
	if err != nil {
		return err
	}
	return operations.SaveSignature(c.Operations, id, version, relayer.HostAddress, signature)
}

// RecoverTickets lets the owner re-request a ticket allocation after the pool was left empty by
// a non-Accepted AllocateTickets outcome (spec.md §4.3 "manual recovery"). numberOfTickets
// defaults to the pool's current used count -- the SUPPLEMENTED-FEATURES default, matching what
// the auto-replenish path itself would have requested.
func (c *Core) RecoverTickets(caller sdk.AccAddress, numberOfTickets *uint32) (types.Operation, error) {
	if err := c.requireOwner(caller); err != nil {
		return types.Operation{}, err
	}
	n := c.Tickets.Used()
	if numberOfTickets != nil {
		n = *numberOfTickets
	}
	if err := c.Tickets.RequestAllocation(n, c.Config.UsedTicketSequenceThreshold); err != nil {
		return types.Operation{}, err
	}
	seq := c.nextAccountSequence()
	op := types.Operation{
		AccountSequence: &seq,
		OperationType:   types.OperationType{AllocateTickets: &types.OperationTypeAllocateTickets{Number: n}},
		XRPLBaseFee:     c.Config.XRPLBaseFee,
	}
	operations.Enqueue(c.Operations, op)
	return op, nil
}
