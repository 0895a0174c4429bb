// Package evidence implements the bridge's evidence/quorum engine (spec.md §4.5): idempotent
// per-relayer attestation over a canonical evidence hash, committing once a configured threshold
// of distinct relayers has attested, with replay protection over XRPL transaction hashes.
package evidence

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/pkg/errors"

	"github.com/CoreumFoundation/xrplbridge-core/store"
	"github.com/CoreumFoundation/xrplbridge-core/types"
)

// Engine tracks in-flight attestation sets and committed transaction hashes.
type Engine struct {
	attestations *store.Map[string, []sdk.AccAddress]
	processedTxs *store.Map[string, struct{}]
}

// NewEngine returns an empty Engine.
func NewEngine() *Engine {
	return &Engine{
		attestations: store.NewMap[string, []sdk.AccAddress](),
		processedTxs: store.NewMap[string, struct{}](),
	}
}

// HasProcessed reports whether txHash has already been committed under any evidence kind.
func (e *Engine) HasProcessed(txHash string) bool {
	return e.processedTxs.Has(txHash)
}

// Evidence returns the in-flight attestation set for hash, if any.
func (e *Engine) Evidence(hash string) (types.TransactionEvidence, bool) {
	attesters, ok := e.attestations.Get(hash)
	if !ok {
		return types.TransactionEvidence{}, false
	}
	return types.TransactionEvidence{Hash: hash, RelayerAddresses: attesters}, true
}

// PageEvidences lists in-flight attestation sets in hash order.
func (e *Engine) PageEvidences(startAfter *string, limit int) ([]types.TransactionEvidence, *string) {
	keys := e.attestations.Keys()
	sort.Strings(keys)

	var out []types.TransactionEvidence
	var last *string
	for _, k := range keys {
		if startAfter != nil && k <= *startAfter {
			continue
		}
		if len(out) == limit {
			break
		}
		attesters, _ := e.attestations.Get(k)
		out = append(out, types.TransactionEvidence{Hash: k, RelayerAddresses: attesters})
		key := k
		last = &key
	}
	return out, last
}

// PageProcessedTxs lists committed transaction hashes in order.
func (e *Engine) PageProcessedTxs(startAfter *string, limit int) ([]string, *string) {
	return e.processedTxs.Page(startAfter, limit, func(a, b string) bool { return a < b })
}

// Attest records relayer's attestation of hash. If txHash is non-empty and already processed,
// it fails with ErrOperationAlreadyExecuted (replay protection). A relayer attesting twice to
// the same hash fails with ErrEvidenceAlreadyProvided. Once the attestation set reaches
// threshold distinct relayers, the evidence commits: the attestation set is cleared, txHash (if
// given) is recorded as processed, and committed=true is returned together with the final
// attester list.
func (e *Engine) Attest(
	hash string,
	txHash string,
	relayer sdk.AccAddress,
	threshold uint32,
) (committed bool, attesters []sdk.AccAddress, err error) {
	if txHash != "" && e.HasProcessed(txHash) {
		return false, nil, errors.WithStack(types.ErrOperationAlreadyExecuted)
	}

	current, _ := e.attestations.Get(hash)
	for _, a := range current {
		if a.Equals(relayer) {
			return false, nil, errors.WithStack(types.ErrEvidenceAlreadyProvided)
		}
	}
	current = append(current, relayer)

	if uint32(len(current)) < threshold {
		e.attestations.Set(hash, current)
		return false, nil, nil
	}

	e.attestations.Delete(hash)
	if txHash != "" {
		e.processedTxs.Set(txHash, struct{}{})
	}
	return true, current, nil
}

// HashXRPLToHostTransferEvidence builds the canonical idempotency hash for an inbound transfer
// evidence. The encoding need not be reversible; it only needs to be a stable, injective
// function of the evidence's fields.
func HashXRPLToHostTransferEvidence(e types.XRPLToHostTransferEvidence) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf(
		"xrpl-to-host|%s|%s|%s|%s|%s|%s",
		e.TxHash, e.Issuer, e.Currency, e.Amount.String(), e.Recipient.String(), e.Memo,
	)))
	return hex.EncodeToString(sum[:])
}

// ValidateXRPLToHostTransferEvidence checks the evidence is well-formed: non-zero amount and
// a recipient distinct from the bridge's own Host account (the bridge must never credit
// itself).
func ValidateXRPLToHostTransferEvidence(e types.XRPLToHostTransferEvidence, bridgeHostAddress sdk.AccAddress) error {
	if e.Amount.IsNil() || !e.Amount.IsPositive() {
		return errors.WithStack(types.ErrInvalidEvidence)
	}
	if bridgeHostAddress != nil && e.Recipient.Equals(bridgeHostAddress) {
		return errors.WithStack(types.ErrInvalidEvidence)
	}
	return nil
}

// HashXRPLTransactionResultEvidence builds the canonical idempotency hash for a transaction
// result evidence.
func HashXRPLTransactionResultEvidence(e types.XRPLTransactionResultEvidence) string {
	var ticketsPart string
	if e.OperationResult != nil {
		tickets := append([]uint32(nil), e.OperationResult.Tickets...)
		sort.Slice(tickets, func(i, j int) bool { return tickets[i] < tickets[j] })
		ticketsPart = fmt.Sprint(tickets)
	}
	sequencePart := func(seq *uint32) string {
		if seq == nil {
			return "-"
		}
		return fmt.Sprint(*seq)
	}
	sum := sha256.Sum256([]byte(fmt.Sprintf(
		"xrpl-tx-result|%s|%s|%s|%s|%s",
		e.TxHash, sequencePart(e.AccountSequence), sequencePart(e.TicketSequence), e.TransactionResult, ticketsPart,
	)))
	return hex.EncodeToString(sum[:])
}

// ValidateXRPLTransactionResultEvidence checks exactly one of AccountSequence/TicketSequence is
// set, as spec.md §4.5 requires.
func ValidateXRPLTransactionResultEvidence(e types.XRPLTransactionResultEvidence) error {
	hasAccount := e.AccountSequence != nil
	hasTicket := e.TicketSequence != nil
	if hasAccount == hasTicket {
		return errors.WithStack(types.ErrInvalidTransactionResultEvidence)
	}
	return nil
}
