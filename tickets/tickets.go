// Package tickets implements the bridge's XRPL ticket pool (spec.md §4.3): a FIFO reserve of
// ticket numbers consumed by ticket-holding operations and replenished by committed
// AllocateTickets evidence, either owner-triggered or auto-triggered by usage crossing a
// threshold.
package tickets

import (
	"github.com/pkg/errors"

	"github.com/CoreumFoundation/xrplbridge-core/types"
	"github.com/CoreumFoundation/xrplbridge-core/xrpl"
)

// Pool is the bridge's single XRPL ticket reserve.
type Pool struct {
	available           []uint32
	used                uint32
	pendingTicketUpdate bool
	pendingRotateKeys   bool
}

// NewPool returns an empty Pool.
func NewPool() *Pool {
	return &Pool{}
}

// Available returns the tickets currently held, in FIFO consumption order.
func (p *Pool) Available() []uint32 {
	out := make([]uint32, len(p.available))
	copy(out, p.available)
	return out
}

// Len returns the number of tickets currently available.
func (p *Pool) Len() int {
	return len(p.available)
}

// Used returns the count of tickets consumed since the last successful replenishment.
func (p *Pool) Used() uint32 {
	return p.used
}

// PendingTicketUpdate reports whether an AllocateTickets operation is in flight.
func (p *Pool) PendingTicketUpdate() bool {
	return p.pendingTicketUpdate
}

// PendingRotateKeys reports whether a RotateKeys operation is in flight.
func (p *Pool) PendingRotateKeys() bool {
	return p.pendingRotateKeys
}

// Consume pops the oldest available ticket, incrementing the used counter. Callers enqueueing
// any ticket-holding operation must call this exactly once per operation.
func (p *Pool) Consume() (uint32, bool) {
	if len(p.available) == 0 {
		return 0, false
	}
	ticket := p.available[0]
	p.available = p.available[1:]
	p.used++
	return ticket, true
}

// Return pushes ticket back into the reserve. Callers handling an Invalid outcome for a
// ticket-holding operation must call this exactly once per operation.
func (p *Pool) Return(ticket uint32) {
	p.available = append(p.available, ticket)
}

// RequestAllocation validates and records a request for n fresh tickets, marking the pool as
// having a pending ticket update. n must exceed usedTicketSequenceThreshold (so a single
// allocation can't itself exhaust the pool mid-flight) and be within
// xrpl.MaxTicketsToAllocate. Fails with ErrPendingTicketUpdate if a request is already in
// flight.
func (p *Pool) RequestAllocation(n, usedTicketSequenceThreshold uint32) error {
	if p.pendingTicketUpdate {
		return errors.WithStack(types.ErrPendingTicketUpdate)
	}
	if n <= usedTicketSequenceThreshold || n > xrpl.MaxTicketsToAllocate {
		return errors.WithStack(types.ErrInvalidTicketSequenceToAllocate)
	}
	p.pendingTicketUpdate = true
	return nil
}

// CommitAllocation applies the outcome of a committed AllocateTickets evidence. Accepted adds
// the allocated tickets and resets the used counter; Rejected and Invalid both clear the
// pending flag without adding tickets. It reports manualRecoveryNeeded when the pool is left
// empty after a non-Accepted outcome -- the pathological case spec.md §4.3 calls out, where the
// usage-threshold auto-replenishment has nothing to trigger on and an owner-initiated
// RecoverTickets is the only way forward.
func (p *Pool) CommitAllocation(result types.TransactionResult, allocated []uint32) (manualRecoveryNeeded bool) {
	p.pendingTicketUpdate = false
	if result == types.TransactionResultAccepted {
		p.available = append(p.available, allocated...)
		p.used = 0
		return false
	}
	return len(p.available) == 0
}

// NeedsAutoReplenish reports whether committing a non-Invalid operation should auto-enqueue a
// follow-up AllocateTickets request, and the n it should request (the current used count),
// per spec.md §4.3's usage-threshold trigger.
func (p *Pool) NeedsAutoReplenish(usedTicketSequenceThreshold uint32) (needed bool, n uint32) {
	if p.pendingTicketUpdate {
		return false, 0
	}
	if p.used <= usedTicketSequenceThreshold {
		return false, 0
	}
	return true, p.used
}

// BeginRotateKeys marks a RotateKeys operation as in flight. Fails with ErrRotateKeysOngoing if
// one is already pending.
func (p *Pool) BeginRotateKeys() error {
	if p.pendingRotateKeys {
		return errors.WithStack(types.ErrRotateKeysOngoing)
	}
	p.pendingRotateKeys = true
	return nil
}

// CommitRotateKeys clears the pending-rotation flag once the RotateKeys evidence (of any
// result) has been committed.
func (p *Pool) CommitRotateKeys() {
	p.pendingRotateKeys = false
}
