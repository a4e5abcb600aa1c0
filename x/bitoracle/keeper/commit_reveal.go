package keeper

import (
	"bytes"

	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/GPTx-global/bitoracle/x/bitoracle/types"
)

// Commit stores a node's digest for the current request. It returns true when
// this commit completed the round and the oracle entered the reveal phase.
func (k Keeper) Commit(ctx sdk.Context, oracleId uint64, addr sdk.AccAddress, digest []byte) (bool, error) {
	oracle, err := k.mustGetOracle(ctx, oracleId)
	if err != nil {
		return false, err
	}

	node, err := k.getActiveNode(ctx, oracleId, addr)
	if err != nil {
		return false, err
	}
	if phase := oracle.EffectivePhase(ctx.BlockTime().Unix()); phase != types.PhaseCommit {
		return false, errorsmod.Wrapf(types.ErrInvalidPhase, "commit requires commit phase, oracle is in %s", phase)
	}
	if node.HasLiveCommitment(oracle.RequestId) {
		return false, errorsmod.Wrapf(types.ErrDuplicateCommitment, "node %s, request %d", node.Owner, oracle.RequestId)
	}
	if err := types.ValidateDigest(digest); err != nil {
		return false, err
	}

	node.Commitment = bytes.Clone(digest)
	node.CommitRequestId = oracle.RequestId
	node.Revealed = false
	node.RevealedVote = false
	node.RevealedNonce = nil
	k.SetNode(ctx, node)

	oracle.ActiveCommitCount++
	started := k.beginRevealIfComplete(ctx, &oracle)
	k.SetOracle(ctx, oracle)

	k.Logger(ctx).Debug("commitment stored", "oracle_id", oracleId, "request_id", oracle.RequestId, "node", node.Owner,
		"commits", oracle.ActiveCommitCount, "active_nodes", oracle.ActiveNodeCount)
	return started, nil
}

// Reveal opens a node's commitment for the current request. The deadline is
// checked before the phase so that late reveals are always rejected as
// closed, whether or not the round ever reached the reveal phase.
func (k Keeper) Reveal(ctx sdk.Context, oracleId uint64, addr sdk.AccAddress, vote bool, nonce []byte) error {
	oracle, err := k.mustGetOracle(ctx, oracleId)
	if err != nil {
		return err
	}

	now := ctx.BlockTime().Unix()
	if now > oracle.RevealDeadline {
		return errorsmod.Wrapf(types.ErrRevealPhaseClosed, "deadline %d, now %d", oracle.RevealDeadline, now)
	}
	if oracle.Phase != types.PhaseReveal {
		return errorsmod.Wrapf(types.ErrInvalidPhase, "reveal requires reveal phase, oracle is in %s", oracle.Phase)
	}

	node, err := k.getActiveNode(ctx, oracleId, addr)
	if err != nil {
		return err
	}
	if !node.HasLiveCommitment(oracle.RequestId) {
		return errorsmod.Wrapf(types.ErrNoCommitment, "node %s, request %d", node.Owner, oracle.RequestId)
	}
	if node.HasRevealed(oracle.RequestId) {
		return errorsmod.Wrapf(types.ErrAlreadyRevealed, "node %s, request %d", node.Owner, oracle.RequestId)
	}
	if !types.VerifyCommitment(node.Commitment, vote, nonce) {
		return errorsmod.Wrapf(types.ErrCommitmentMismatch, "node %s, request %d", node.Owner, oracle.RequestId)
	}

	node.Revealed = true
	node.RevealedVote = vote
	node.RevealedNonce = bytes.Clone(nonce)
	k.SetNode(ctx, node)

	k.Logger(ctx).Debug("vote revealed", "oracle_id", oracleId, "request_id", oracle.RequestId, "node", node.Owner, "vote", vote)
	return nil
}
