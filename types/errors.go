package types

import (
	sdkerrors "cosmossdk.io/errors"
)

// codespace is the registered error codespace for the bridge core, following the same
// registered-error idiom the teacher's dependency stack uses for Cosmos/CosmWasm modules.
const codespace = "xrplbridge"

// Sentinel errors returned by the bridge core. Every public operation in package bridge
// returns one of these (optionally wrapped with github.com/pkg/errors for call-site context).
var (
	ErrUnauthorized                    = sdkerrors.Register(codespace, 1, "unauthorized")
	ErrBridgeHalted                    = sdkerrors.Register(codespace, 2, "bridge is halted")
	ErrRotateKeysOngoing               = sdkerrors.Register(codespace, 3, "key rotation is ongoing")
	ErrInvalidXRPLAddress              = sdkerrors.Register(codespace, 4, "invalid XRPL address")
	ErrInvalidXRPLCurrency             = sdkerrors.Register(codespace, 5, "invalid XRPL currency")
	ErrInvalidXRPLAmount               = sdkerrors.Register(codespace, 6, "invalid XRPL amount")
	ErrInvalidDenom                    = sdkerrors.Register(codespace, 7, "invalid denom")
	ErrInvalidDecimals                 = sdkerrors.Register(codespace, 8, "invalid decimals")
	ErrInvalidSendingPrecision         = sdkerrors.Register(codespace, 9, "invalid sending precision")
	ErrInvalidTicketSequenceToAllocate = sdkerrors.Register(codespace, 10, "invalid ticket sequence to allocate")
	ErrPendingTicketUpdate             = sdkerrors.Register(codespace, 11, "ticket update is pending")
	ErrStillHaveAvailableTickets       = sdkerrors.Register(codespace, 12, "tickets are still available")
	ErrTokenAlreadyRegistered          = sdkerrors.Register(codespace, 13, "token already registered")
	ErrTokenNotRegistered              = sdkerrors.Register(codespace, 14, "token not registered")
	ErrTokenNotEnabled                 = sdkerrors.Register(codespace, 15, "token not enabled")
	ErrTokenStateIsImmutable           = sdkerrors.Register(codespace, 16, "token state is immutable")
	ErrInvalidTargetTokenState         = sdkerrors.Register(codespace, 17, "invalid target token state")
	ErrInvalidTargetMaxHoldingAmount   = sdkerrors.Register(codespace, 18, "invalid target max holding amount")
	ErrXRPLTokenNotInactive            = sdkerrors.Register(codespace, 19, "XRPL token is not inactive")
	ErrRegistrationFailure             = sdkerrors.Register(codespace, 20, "registration failure")
	ErrMaximumBridgedAmountReached     = sdkerrors.Register(codespace, 21, "maximum bridged amount reached")
	ErrAmountSentIsZeroAfterTruncation = sdkerrors.Register(codespace, 22, "amount sent is zero after truncation")
	ErrCannotCoverBridgingFees         = sdkerrors.Register(codespace, 23, "amount cannot cover bridging fees")
	ErrInvalidDeliverAmount            = sdkerrors.Register(codespace, 24, "invalid deliver amount")
	ErrDeliverAmountIsProhibited       = sdkerrors.Register(codespace, 25, "deliver amount is prohibited")
	ErrProhibitedAddress               = sdkerrors.Register(codespace, 26, "prohibited address")
	ErrPendingOperationNotFound        = sdkerrors.Register(codespace, 27, "pending operation not found")
	ErrOperationVersionMismatch        = sdkerrors.Register(codespace, 28, "operation version mismatch")
	ErrSignatureAlreadyProvided        = sdkerrors.Register(codespace, 29, "signature already provided")
	ErrInvalidSignatureLength          = sdkerrors.Register(codespace, 30, "invalid signature length")
	ErrOperationAlreadyExecuted        = sdkerrors.Register(codespace, 31, "operation already executed")
	ErrInvalidTransactionResultEvidence = sdkerrors.Register(
		codespace, 32, "invalid transaction result evidence",
	)
	ErrPendingRefundNotFound = sdkerrors.Register(codespace, 33, "pending refund not found")
	ErrNotEnoughFeesToClaim  = sdkerrors.Register(codespace, 34, "not enough fees to claim")
	ErrInvalidRelayerSet     = sdkerrors.Register(codespace, 35, "invalid relayer set")
	ErrInvalidConfig         = sdkerrors.Register(codespace, 36, "invalid bridge configuration")
	ErrEvidenceAlreadyProvided = sdkerrors.Register(codespace, 37, "evidence already provided by this relayer")
	ErrInvalidEvidence         = sdkerrors.Register(codespace, 38, "invalid evidence")
)
