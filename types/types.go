// Package types holds the data model shared across the bridge core: the value types that
// flow between the registry, ticket pool, operation queue, evidence engine, transfer pipeline
// and control plane. The shapes mirror the wire types the teacher's coreum.ContractClient
// decodes off the CosmWasm contract (coreum/contract.go) -- here they are the actual state,
// not a client-side transport mirror of someone else's state.
package types

import (
	"math/big"

	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// MaxAmount is the largest amount the bridge ever reasons about: (2^128)-1, since every
// quantity the bridge moves is treated as a 128-bit unsigned integer (spec.md §6).
var MaxAmount = sdkmath.NewIntFromBigInt(big.NewInt(0).Exp(big.NewInt(2), big.NewInt(128), nil)).SubRaw(1)

// TokenState is the lifecycle state of a registered token.
type TokenState string

// TokenState values.
const (
	TokenStateProcessing TokenState = "processing"
	TokenStateEnabled    TokenState = "enabled"
	TokenStateDisabled   TokenState = "disabled"
	TokenStateInactive   TokenState = "inactive"
)

// BridgeState is the operating state of the bridge.
type BridgeState string

// BridgeState values.
const (
	BridgeStateActive BridgeState = "active"
	BridgeStateHalted BridgeState = "halted"
)

// TransactionResult is the outcome a relayer attests an XRPL transaction reached.
type TransactionResult string

// TransactionResult values.
const (
	TransactionResultAccepted TransactionResult = "accepted"
	TransactionResultRejected TransactionResult = "rejected"
	TransactionResultInvalid  TransactionResult = "invalid"
)

// Relayer identifies one member of the off-chain relayer quorum.
type Relayer struct {
	HostAddress sdk.AccAddress
	XRPLAddress string
	XRPLPubKey  string
}

// XRPLToken is a token whose issuance lives on XRPL and is mirrored on Host by minting a
// synthetic denom. Key: Issuer|Currency.
type XRPLToken struct {
	Issuer           string
	Currency         string
	HostDenom        string
	SendingPrecision int32
	MaxHoldingAmount  sdkmath.Int
	State             TokenState
	BridgingFee       sdkmath.Int
}

// Key returns the XRPLToken's registry key.
func (t XRPLToken) Key() string {
	return XRPLTokenKey(t.Issuer, t.Currency)
}

// XRPLTokenKey builds the registry key for an (issuer, currency) pair.
func XRPLTokenKey(issuer, currency string) string {
	return issuer + "|" + currency
}

// HostToken is a token native to Host, bridged to XRPL as an issued currency of the bridge's
// own XRPL address. Primary key: HostDenom. Secondary index: XRPLCurrency.
type HostToken struct {
	HostDenom        string
	Decimals         uint32
	XRPLCurrency     string
	SendingPrecision int32
	MaxHoldingAmount sdkmath.Int
	State            TokenState
	BridgingFee      sdkmath.Int
}

// OperationTypeAllocateTickets requests a batch of fresh XRPL tickets.
type OperationTypeAllocateTickets struct {
	Number uint32
}

// OperationTypeTrustSet requests that the bridge's XRPL account trust an issued currency.
type OperationTypeTrustSet struct {
	Issuer   string
	Currency string
	Limit    sdkmath.Int
}

// OperationTypeHostToXRPLTransfer requests an outbound payment on XRPL.
type OperationTypeHostToXRPLTransfer struct {
	Issuer    string
	Currency  string
	Amount    sdkmath.Int
	MaxAmount *sdkmath.Int
	Sender    sdk.AccAddress
	Recipient string
	// FeeContribution is the portion of Amount already credited to the relayer fee pool at
	// enqueue time (spec.md §4.6 Outbound step 8); a Rejected outcome must refund Amount minus
	// this, since the fee portion is never returned to the escrow it came from.
	FeeContribution sdkmath.Int
}

// OperationTypeRotateKeys requests a multisig key-set rotation on XRPL.
type OperationTypeRotateKeys struct {
	NewRelayers   []Relayer
	NewThreshold  uint32
}

// OperationType is the sum type of the four operations the bridge can queue for XRPL
// execution. Exactly one field is non-nil.
type OperationType struct {
	AllocateTickets      *OperationTypeAllocateTickets
	TrustSet             *OperationTypeTrustSet
	HostToXRPLTransfer   *OperationTypeHostToXRPLTransfer
	RotateKeys           *OperationTypeRotateKeys
}

// Signature is one relayer's signature over an operation at a specific version.
type Signature struct {
	Relayer   sdk.AccAddress
	Signature string
}

// Operation is a pending XRPL transaction the bridge needs the relayer quorum to execute
// and report back on. Exactly one of TicketSequence/AccountSequence is set.
type Operation struct {
	Version         uint32
	TicketSequence  *uint32
	AccountSequence *uint32
	Signatures      []Signature
	OperationType   OperationType
	XRPLBaseFee     uint32
}

// ID returns the operation's XRPL sequencing key: its ticket if it has one, else its
// account sequence.
func (o Operation) ID() uint32 {
	if o.TicketSequence != nil {
		return *o.TicketSequence
	}
	if o.AccountSequence != nil {
		return *o.AccountSequence
	}
	return 0
}

// PendingRefund is owed to Owner until claimed.
type PendingRefund struct {
	ID         string
	Owner      sdk.AccAddress
	XRPLTxHash string
	Coin       sdk.Coin
}

// TransactionEvidence reports which relayers have attested to a given evidence hash so far.
type TransactionEvidence struct {
	Hash             string
	RelayerAddresses []sdk.AccAddress
}

// XRPLToHostTransferEvidence is a relayer's attestation that funds arrived on XRPL destined
// for Host.
type XRPLToHostTransferEvidence struct {
	TxHash    string
	Issuer    string
	Currency  string
	Amount    sdkmath.Int
	Recipient sdk.AccAddress
	Memo      string
}

// TicketsAllocationResult carries the tickets XRPL granted, present only when the evidence
// closes an AllocateTickets operation with an Accepted result.
type TicketsAllocationResult struct {
	Tickets []uint32
}

// XRPLTransactionResultEvidence is a relayer's attestation about the outcome of a queued
// XRPL operation. Exactly one of AccountSequence/TicketSequence is set.
type XRPLTransactionResultEvidence struct {
	TxHash            string
	AccountSequence   *uint32
	TicketSequence    *uint32
	TransactionResult TransactionResult
	OperationResult   *TicketsAllocationResult
}

// OperationID returns the sequencing key the evidence refers to.
func (e XRPLTransactionResultEvidence) OperationID() uint32 {
	if e.AccountSequence != nil {
		return *e.AccountSequence
	}
	if e.TicketSequence != nil {
		return *e.TicketSequence
	}
	return 0
}

// Config is the bridge's mutable process-wide configuration record.
type Config struct {
	Owner                       sdk.AccAddress
	Relayers                    []Relayer
	EvidenceThreshold           uint32
	UsedTicketSequenceThreshold uint32
	TrustSetLimitAmount         sdkmath.Int
	BridgeXRPLAddress           string
	BridgeHostAddress           sdk.AccAddress
	BridgeState                 BridgeState
	XRPLBaseFee                 uint32
}

// RelayerByHostAddress finds a relayer by its Host address.
func (c Config) RelayerByHostAddress(addr sdk.AccAddress) (Relayer, bool) {
	for _, r := range c.Relayers {
		if r.HostAddress.Equals(addr) {
			return r, true
		}
	}
	return Relayer{}, false
}

// IsRelayer reports whether addr belongs to the current relayer set.
func (c Config) IsRelayer(addr sdk.AccAddress) bool {
	_, ok := c.RelayerByHostAddress(addr)
	return ok
}
