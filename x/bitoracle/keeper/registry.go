package keeper

import (
	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/GPTx-global/bitoracle/x/bitoracle/types"
)

// JoinNetwork registers node on an oracle and moves its collateral into the
// oracle escrow. Membership is irreversible.
func (k Keeper) JoinNetwork(ctx sdk.Context, oracleId uint64, node sdk.AccAddress, collateral sdk.Coin) error {
	oracle, err := k.mustGetOracle(ctx, oracleId)
	if err != nil {
		return err
	}

	if existing, found := k.GetNode(ctx, oracleId, node); found && existing.Joined {
		return errorsmod.Wrapf(types.ErrAlreadyJoined, "node: %s", node)
	}
	if oracle.MaxNodes != 0 && oracle.TotalNodes >= oracle.MaxNodes {
		return errorsmod.Wrapf(types.ErrMaxNodesReached, "max nodes: %d", oracle.MaxNodes)
	}
	if !sameCoin(collateral, oracle.RequiredCollateral) {
		return errorsmod.Wrapf(types.ErrInsufficientCollateral, "expected: %s, got: %s", oracle.RequiredCollateral, collateral)
	}

	if err := k.bankKeeper.SendCoins(ctx, node, oracle.Escrow(), sdk.NewCoins(collateral)); err != nil {
		return err
	}

	k.SetNode(ctx, types.Node{
		OracleId: oracleId,
		Owner:    node.String(),
		Joined:   true,
		Stake:    collateral.Amount,
	})
	oracle.ActiveNodeCount++
	oracle.TotalNodes++
	k.SetOracle(ctx, oracle)

	k.Logger(ctx).Info("node joined", "oracle_id", oracleId, "node", node.String(), "active_nodes", oracle.ActiveNodeCount)
	return nil
}

// IsActive reports whether node has joined oracleId and was never slashed.
func (k Keeper) IsActive(ctx sdk.Context, oracleId uint64, node sdk.AccAddress) bool {
	n, found := k.GetNode(ctx, oracleId, node)
	return found && n.IsActive()
}

// getActiveNode loads a node and fails with ErrNodeNotJoined unless it is active.
func (k Keeper) getActiveNode(ctx sdk.Context, oracleId uint64, addr sdk.AccAddress) (types.Node, error) {
	node, found := k.GetNode(ctx, oracleId, addr)
	if !found || !node.IsActive() {
		return types.Node{}, errorsmod.Wrapf(types.ErrNodeNotJoined, "node: %s", addr)
	}
	return node, nil
}

func sameCoin(a, b sdk.Coin) bool {
	return a.Denom == b.Denom && !a.Amount.IsNil() && !b.Amount.IsNil() && a.Amount.Equal(b.Amount)
}
