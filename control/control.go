// Package control implements the bridge's control plane (spec.md §4.7): halt/resume, key
// rotation, the owner-only configuration knobs (prohibited addresses, XRPL base fee, used-ticket
// threshold) and the cancel-pending-operation escape hatch.
package control

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/pkg/errors"

	"github.com/CoreumFoundation/xrplbridge-core/types"
	"github.com/CoreumFoundation/xrplbridge-core/xrpl"
)

// ProhibitedSet is the keyed set of XRPL addresses SendToXRPL refuses to pay out to.
type ProhibitedSet struct {
	addrs map[string]struct{}
}

// NewProhibitedSet bootstraps the set from xrpl.InitialProhibitedAddresses plus
// bridgeXRPLAddress, per spec.md §6 "Initial prohibited set".
func NewProhibitedSet(bridgeXRPLAddress string) *ProhibitedSet {
	s := &ProhibitedSet{addrs: make(map[string]struct{})}
	for _, a := range xrpl.InitialProhibitedAddresses() {
		s.addrs[a] = struct{}{}
	}
	s.addrs[bridgeXRPLAddress] = struct{}{}
	return s
}

// Contains reports whether addr is prohibited.
func (s *ProhibitedSet) Contains(addr string) bool {
	_, ok := s.addrs[addr]
	return ok
}

// Map exposes the set for the transfer package's recipient check, which only needs membership.
func (s *ProhibitedSet) Map() map[string]struct{} {
	return s.addrs
}

// Replace swaps the set's contents for newAddrs, always re-adding bridgeXRPLAddress, per
// spec.md §4.7 "the current XRPL bridge address is always re-added".
func (s *ProhibitedSet) Replace(newAddrs []string, bridgeXRPLAddress string) {
	addrs := make(map[string]struct{}, len(newAddrs)+1)
	for _, a := range newAddrs {
		addrs[a] = struct{}{}
	}
	addrs[bridgeXRPLAddress] = struct{}{}
	s.addrs = addrs
}

// AuthorizeHalt checks that caller is the owner or a current relayer, per spec.md §4.7 "anyone
// in the current relayer set or the owner may halt".
func AuthorizeHalt(cfg types.Config, owner, caller sdk.AccAddress) error {
	if caller.Equals(owner) || cfg.IsRelayer(caller) {
		return nil
	}
	return errors.WithStack(types.ErrUnauthorized)
}

// Halt transitions cfg to Halted. The caller must already be authorized via AuthorizeHalt.
func Halt(cfg *types.Config) {
	cfg.BridgeState = types.BridgeStateHalted
}

// Resume transitions cfg back to Active. Only the owner may call this (enforced by the caller),
// and it is refused while a key rotation is pending.
func Resume(cfg *types.Config, pendingRotateKeys bool) error {
	if pendingRotateKeys {
		return errors.WithStack(types.ErrRotateKeysOngoing)
	}
	cfg.BridgeState = types.BridgeStateActive
	return nil
}

// ValidateRelayerSet checks spec.md §4.7's rotate-keys validation: no duplicate Host addresses,
// no duplicate XRPL address/pubkey, and threshold <= |set|, bounded by XRPL's own signer-list
// size limit.
func ValidateRelayerSet(relayers []types.Relayer, threshold uint32) error {
	if len(relayers) == 0 || uint32(len(relayers)) > xrpl.MaxRelayerSigners {
		return errors.WithStack(types.ErrInvalidRelayerSet)
	}
	if threshold == 0 || threshold > uint32(len(relayers)) {
		return errors.WithStack(types.ErrInvalidRelayerSet)
	}

	seenHost := make(map[string]struct{}, len(relayers))
	seenXRPLAddr := make(map[string]struct{}, len(relayers))
	seenXRPLPubKey := make(map[string]struct{}, len(relayers))
	for _, r := range relayers {
		hostKey := r.HostAddress.String()
		if _, dup := seenHost[hostKey]; dup {
			return errors.WithStack(types.ErrInvalidRelayerSet)
		}
		seenHost[hostKey] = struct{}{}

		if _, dup := seenXRPLAddr[r.XRPLAddress]; dup {
			return errors.WithStack(types.ErrInvalidRelayerSet)
		}
		seenXRPLAddr[r.XRPLAddress] = struct{}{}

		if _, dup := seenXRPLPubKey[r.XRPLPubKey]; dup {
			return errors.WithStack(types.ErrInvalidRelayerSet)
		}
		seenXRPLPubKey[r.XRPLPubKey] = struct{}{}
	}
	return nil
}

// BeginRotateKeys validates the requested relayer set/threshold and reports that the bridge must
// be halted to proceed, per spec.md §4.7 "forbidden concurrently with another rotation; auto-halts
// the bridge". The caller still owns ticket consumption and operation enqueue.
func BeginRotateKeys(cfg *types.Config, pendingRotateKeys bool, newRelayers []types.Relayer, newThreshold uint32) error {
	if pendingRotateKeys {
		return errors.WithStack(types.ErrRotateKeysOngoing)
	}
	if err := ValidateRelayerSet(newRelayers, newThreshold); err != nil {
		return err
	}
	cfg.BridgeState = types.BridgeStateHalted
	return nil
}

// CommitRotateKeys applies a committed Accepted RotateKeys operation: swaps the relayer set and
// threshold. The bridge stays halted (spec.md §4.7: "bridge stays halted" even after a successful
// rotation; only an explicit ResumeBridge reactivates it).
func CommitRotateKeys(cfg *types.Config, newRelayers []types.Relayer, newThreshold uint32) {
	cfg.Relayers = newRelayers
	cfg.EvidenceThreshold = newThreshold
}

// ValidateUsedTicketSequenceThreshold bounds the threshold to XRPL's own ticket-batch ceiling,
// per spec.md §4.3/§6 "2 <= used_ticket_threshold <= 250".
func ValidateUsedTicketSequenceThreshold(threshold uint32) error {
	if threshold < 2 || threshold > xrpl.MaxTicketsToAllocate {
		return errors.WithStack(types.ErrInvalidTicketSequenceToAllocate)
	}
	return nil
}
