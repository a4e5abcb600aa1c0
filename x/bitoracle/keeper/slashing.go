package keeper

import (
	"strconv"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/GPTx-global/bitoracle/x/bitoracle/types"
)

// SlashColluding punishes a node whose vote and nonce were disclosed before
// the reveal. Any active node holding the secret may submit it and receives
// the colluding node's whole stake.
func (k Keeper) SlashColluding(ctx sdk.Context, oracleId uint64, slasher, colluding sdk.AccAddress, vote bool, nonce []byte) error {
	oracle, err := k.mustGetOracle(ctx, oracleId)
	if err != nil {
		return err
	}

	slasherNode, err := k.getActiveNode(ctx, oracleId, slasher)
	if err != nil {
		return err
	}
	target, err := k.getActiveNode(ctx, oracleId, colluding)
	if err != nil {
		return err
	}
	if slasherNode.Owner == target.Owner {
		return errorsmod.Wrapf(types.ErrSelfSlash, "node %s", target.Owner)
	}
	if !target.HasLiveCommitment(oracle.RequestId) {
		return errorsmod.Wrapf(types.ErrNoCommitment, "node %s, request %d", target.Owner, oracle.RequestId)
	}
	if target.HasRevealed(oracle.RequestId) {
		return errorsmod.Wrapf(types.ErrAlreadyRevealed, "node %s, request %d", target.Owner, oracle.RequestId)
	}
	if !types.VerifyCommitment(target.Commitment, vote, nonce) {
		return errorsmod.Wrapf(types.ErrCommitmentMismatch, "node %s, request %d", target.Owner, oracle.RequestId)
	}

	forfeited := sdk.NewCoin(oracle.RequiredCollateral.Denom, target.Stake)
	if forfeited.IsPositive() {
		if err := k.bankKeeper.SendCoins(ctx, oracle.Escrow(), slasher, sdk.NewCoins(forfeited)); err != nil {
			return err
		}
	}

	target.Slashed = true
	target.Stake = math.ZeroInt()
	k.SetNode(ctx, target)

	oracle.ActiveNodeCount--
	if oracle.ActiveCommitCount > 0 {
		oracle.ActiveCommitCount--
	}
	k.beginRevealIfComplete(ctx, &oracle)
	k.SetOracle(ctx, oracle)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeNodeSlashed,
			sdk.NewAttribute(types.AttributeKeyOracleId, strconv.FormatUint(oracleId, 10)),
			sdk.NewAttribute(types.AttributeKeyRequestId, strconv.FormatUint(oracle.RequestId, 10)),
			sdk.NewAttribute(types.AttributeKeyNode, target.Owner),
			sdk.NewAttribute(types.AttributeKeySlasher, slasherNode.Owner),
			sdk.NewAttribute(types.AttributeKeyAmount, forfeited.String()),
			sdk.NewAttribute(types.AttributeKeyActiveNodeCount, strconv.FormatUint(oracle.ActiveNodeCount, 10)),
		),
	)

	k.Logger(ctx).Info("colluding node slashed", "oracle_id", oracleId, "request_id", oracle.RequestId,
		"node", target.Owner, "slasher", slasherNode.Owner, "amount", forfeited.String())
	return nil
}
