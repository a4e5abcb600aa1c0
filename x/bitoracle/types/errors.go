package types

import (
	errorsmod "cosmossdk.io/errors"
)

// errors
var (
	ErrUnauthorized           = errorsmod.Register(ModuleName, 2, "the operation is allowed only from the oracle authority")
	ErrAlreadyJoined          = errorsmod.Register(ModuleName, 3, "node has already joined")
	ErrInsufficientCollateral = errorsmod.Register(ModuleName, 4, "posted collateral does not match the required collateral")
	ErrNodeNotJoined          = errorsmod.Register(ModuleName, 5, "node is not an active member of the oracle")
	ErrInvalidPhase           = errorsmod.Register(ModuleName, 6, "invalid phase for this operation")
	ErrDuplicateCommitment    = errorsmod.Register(ModuleName, 7, "node has already committed for this request")
	ErrNoCommitment           = errorsmod.Register(ModuleName, 8, "node has no commitment for this request")
	ErrCommitmentMismatch     = errorsmod.Register(ModuleName, 9, "vote and nonce do not match the commitment")
	ErrAlreadyRevealed        = errorsmod.Register(ModuleName, 10, "node has already revealed")
	ErrRevealPhaseClosed      = errorsmod.Register(ModuleName, 11, "reveal phase is closed")
	ErrRevealPhaseStillOpen   = errorsmod.Register(ModuleName, 12, "reveal phase is not closed yet")
	ErrSelfSlash              = errorsmod.Register(ModuleName, 13, "a node cannot slash itself")
	ErrRequestInProgress      = errorsmod.Register(ModuleName, 14, "a request is already in progress")
	ErrOracleNotFound         = errorsmod.Register(ModuleName, 15, "oracle not found")
	ErrMaxNodesReached        = errorsmod.Register(ModuleName, 16, "maximum number of nodes reached")
	ErrInvalidNonce           = errorsmod.Register(ModuleName, 17, "invalid nonce")
	ErrInvalidCommitment      = errorsmod.Register(ModuleName, 18, "invalid commitment digest")
	ErrInvalidDuration        = errorsmod.Register(ModuleName, 19, "invalid reveal duration")
	ErrInvalidCollateral      = errorsmod.Register(ModuleName, 20, "invalid collateral")
	ErrInvalidTieBreak        = errorsmod.Register(ModuleName, 21, "invalid tie-break policy")
)
