// Package operations implements the bridge's pending-operation queue (spec.md §4.4): operations
// awaiting XRPL execution, keyed by their ticket or account sequence, versioned so a base-fee
// change invalidates stale signatures, with per-relayer signature aggregation.
package operations

import (
	"github.com/pkg/errors"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/CoreumFoundation/xrplbridge-core/types"
)

// minSignatureLength and maxSignatureLength bound a hex-encoded XRPL transaction signature blob;
// XRPL signatures are DER-encoded ECDSA or 64-byte Ed25519, so a plausible hex signature never
// falls outside this band.
const (
	minSignatureLength = 2
	maxSignatureLength = 256
)

// Queue is the bridge's pending-operation queue.
type Queue struct {
	byID map[uint32]types.Operation
	order []uint32
}

// NewQueue returns an empty Queue.
func NewQueue() *Queue {
	return &Queue{byID: make(map[uint32]types.Operation)}
}

// Enqueue adds op, keyed by its own ID (ticket sequence or account sequence). Operations are
// always enqueued at version 1 with no signatures.
func Enqueue(q *Queue, op types.Operation) {
	op.Version = 1
	op.Signatures = nil
	id := op.ID()
	if _, exists := q.byID[id]; !exists {
		q.order = append(q.order, id)
	}
	q.byID[id] = op
}

// Get returns the pending operation keyed by id.
func (q *Queue) Get(id uint32) (types.Operation, bool) {
	op, ok := q.byID[id]
	return op, ok
}

// Len returns the number of pending operations.
func (q *Queue) Len() int {
	return len(q.order)
}

// All returns every pending operation, in no particular order.
func (q *Queue) All() []types.Operation {
	out := make([]types.Operation, 0, len(q.order))
	for _, id := range q.order {
		out = append(out, q.byID[id])
	}
	return out
}

// Remove deletes the operation keyed by id, e.g. on completion.
func (q *Queue) Remove(id uint32) {
	if _, ok := q.byID[id]; !ok {
		return
	}
	delete(q.byID, id)
	for i, k := range q.order {
		if k == id {
			q.order = append(q.order[:i], q.order[i+1:]...)
			break
		}
	}
}

// Page lists pending operations in ascending ID order.
func (q *Queue) Page(startAfter *uint32, limit int) ([]types.Operation, *uint32) {
	ids := make([]uint32, len(q.order))
	copy(ids, q.order)
	sortUint32s(ids)

	start := 0
	if startAfter != nil {
		for i, id := range ids {
			if id > *startAfter {
				start = i
				break
			}
			if id == *startAfter {
				start = i + 1
			}
		}
	}

	var out []types.Operation
	var last *uint32
	for i := start; i < len(ids) && len(out) < limit; i++ {
		out = append(out, q.byID[ids[i]])
		id := ids[i]
		last = &id
	}
	return out, last
}

func sortUint32s(ids []uint32) {
	for i := 1; i < len(ids); i++ {
		for j := i; j > 0 && ids[j-1] > ids[j]; j-- {
			ids[j-1], ids[j] = ids[j], ids[j-1]
		}
	}
}

// SaveSignature appends relayer's signature over operation id at version, enforcing that the
// operation exists, the version matches the operation's current version, the signature is a
// plausible length, and the relayer has not already signed this version.
func SaveSignature(q *Queue, id, version uint32, relayer sdk.AccAddress, signature string) error {
	op, ok := q.Get(id)
	if !ok {
		return errors.WithStack(types.ErrPendingOperationNotFound)
	}
	if op.Version != version {
		return errors.WithStack(types.ErrOperationVersionMismatch)
	}
	if len(signature) < minSignatureLength || len(signature) > maxSignatureLength {
		return errors.WithStack(types.ErrInvalidSignatureLength)
	}
	for _, s := range op.Signatures {
		if s.Relayer.Equals(relayer) {
			return errors.WithStack(types.ErrSignatureAlreadyProvided)
		}
	}
	op.Signatures = append(op.Signatures, types.Signature{Relayer: relayer, Signature: signature})
	q.byID[id] = op
	return nil
}

// BumpBaseFee re-versions every pending operation to the new XRPL base fee: version increments
// and the signature set is emptied, forcing relayers to re-sign at the new fee (spec.md §4.4,
// invariant 8).
func BumpBaseFee(q *Queue, newBaseFee uint32) {
	for id, op := range q.byID {
		op.Version++
		op.Signatures = nil
		op.XRPLBaseFee = newBaseFee
		q.byID[id] = op
	}
}
