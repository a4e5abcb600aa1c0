package keeper

import (
	"strconv"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/GPTx-global/bitoracle/x/bitoracle/types"
)

// Resolve settles the current request over nodeList, or over every
// registered node when nodeList is empty. Minority voters forfeit their stake
// to the majority; nodes that never revealed are left untouched.
//
// All transfers run in a cached context and are committed together.
func (k Keeper) Resolve(ctx sdk.Context, oracleId uint64, caller sdk.AccAddress, nodeList []sdk.AccAddress) (types.Resolution, error) {
	oracle, err := k.mustGetOracle(ctx, oracleId)
	if err != nil {
		return types.Resolution{}, err
	}

	if oracle.Authority != caller.String() {
		return types.Resolution{}, errorsmod.Wrapf(types.ErrUnauthorized, "expected: %s, got: %s", oracle.Authority, caller)
	}
	now := ctx.BlockTime().Unix()
	if now <= oracle.RevealDeadline {
		return types.Resolution{}, errorsmod.Wrapf(types.ErrRevealPhaseStillOpen, "deadline %d, now %d", oracle.RevealDeadline, now)
	}
	if phase := oracle.EffectivePhase(now); phase != types.PhaseReveal {
		return types.Resolution{}, errorsmod.Wrapf(types.ErrInvalidPhase, "resolve requires reveal phase, oracle is in %s", phase)
	}

	nodes, err := k.settlementSet(ctx, oracleId, nodeList)
	if err != nil {
		return types.Resolution{}, err
	}

	var trueVoters, falseVoters []types.Node
	for _, node := range nodes {
		if !node.IsActive() || !node.HasRevealed(oracle.RequestId) {
			continue
		}
		if node.RevealedVote {
			trueVoters = append(trueVoters, node)
		} else {
			falseVoters = append(falseVoters, node)
		}
	}

	countTrue, countFalse := uint64(len(trueVoters)), uint64(len(falseVoters))
	bit := oracle.TieBreak.Decide(countTrue, countFalse)
	majority, minority := trueVoters, falseVoters
	if !bit {
		majority, minority = falseVoters, trueVoters
	}

	res := types.Resolution{
		OracleId:      oracleId,
		RequestId:     oracle.RequestId,
		ResolutionBit: bit,
		CountTrue:     countTrue,
		CountFalse:    countFalse,
		Forfeited:     math.ZeroInt(),
		RewardPerNode: math.ZeroInt(),
		Remainder:     math.ZeroInt(),
		Winners:       []string{},
		Losers:        []string{},
	}

	cacheCtx, writeCache := ctx.CacheContext()
	if len(majority) > 0 {
		for _, node := range minority {
			res.Forfeited = res.Forfeited.Add(node.Stake)
			res.Losers = append(res.Losers, node.Owner)

			node.Slashed = true
			node.Stake = math.ZeroInt()
			k.SetNode(cacheCtx, node)

			oracle.ActiveNodeCount--
			if oracle.ActiveCommitCount > 0 {
				oracle.ActiveCommitCount--
			}
		}

		winners := math.NewIntFromUint64(uint64(len(majority)))
		res.RewardPerNode = res.Forfeited.Quo(winners)
		res.Remainder = res.Forfeited.Mod(winners)

		for _, node := range majority {
			res.Winners = append(res.Winners, node.Owner)
			if !res.RewardPerNode.IsPositive() {
				continue
			}
			reward := sdk.NewCoins(sdk.NewCoin(oracle.RequiredCollateral.Denom, res.RewardPerNode))
			if err := k.bankKeeper.SendCoins(cacheCtx, oracle.Escrow(), node.OwnerAddress(), reward); err != nil {
				return types.Resolution{}, err
			}
		}
		oracle.Residual = oracle.Residual.Add(res.Remainder)
	}

	oracle.IsResolved = true
	oracle.ResolutionBit = bit
	oracle.Phase = types.PhaseResolved
	k.SetOracle(cacheCtx, oracle)
	writeCache()

	k.emitResolution(ctx, oracle, res)
	k.Logger(ctx).Info("request resolved", "oracle_id", oracleId, "request_id", oracle.RequestId,
		"resolution_bit", bit, "count_true", countTrue, "count_false", countFalse,
		"forfeited", res.Forfeited.String(), "residual", oracle.Residual.String())
	return res, nil
}

// settlementSet loads the nodes a resolution covers. Listed addresses must be
// registered on the oracle; duplicates are collapsed in first-seen order.
func (k Keeper) settlementSet(ctx sdk.Context, oracleId uint64, nodeList []sdk.AccAddress) ([]types.Node, error) {
	if len(nodeList) == 0 {
		return k.GetNodes(ctx, oracleId), nil
	}

	seen := make(map[string]bool, len(nodeList))
	nodes := make([]types.Node, 0, len(nodeList))
	for _, addr := range nodeList {
		node, found := k.GetNode(ctx, oracleId, addr)
		if !found || !node.Joined {
			return nil, errorsmod.Wrapf(types.ErrNodeNotJoined, "node: %s", addr)
		}
		if seen[node.Owner] {
			continue
		}
		seen[node.Owner] = true
		nodes = append(nodes, node)
	}
	return nodes, nil
}

func (k Keeper) emitResolution(ctx sdk.Context, oracle types.Oracle, res types.Resolution) {
	oracleId := strconv.FormatUint(oracle.Id, 10)
	requestId := strconv.FormatUint(oracle.RequestId, 10)

	events := sdk.Events{
		sdk.NewEvent(
			types.EventTypeResolve,
			sdk.NewAttribute(types.AttributeKeyOracleId, oracleId),
			sdk.NewAttribute(types.AttributeKeyRequestId, requestId),
			sdk.NewAttribute(types.AttributeKeyResolutionBit, strconv.FormatBool(res.ResolutionBit)),
			sdk.NewAttribute(types.AttributeKeyCountTrue, strconv.FormatUint(res.CountTrue, 10)),
			sdk.NewAttribute(types.AttributeKeyCountFalse, strconv.FormatUint(res.CountFalse, 10)),
			sdk.NewAttribute(types.AttributeKeyForfeited, res.Forfeited.String()),
			sdk.NewAttribute(types.AttributeKeyResidual, oracle.Residual.String()),
			sdk.NewAttribute(types.AttributeKeyActiveNodeCount, strconv.FormatUint(oracle.ActiveNodeCount, 10)),
		),
	}
	if res.RewardPerNode.IsPositive() {
		amount := sdk.NewCoin(oracle.RequiredCollateral.Denom, res.RewardPerNode).String()
		for _, winner := range res.Winners {
			events = append(events, sdk.NewEvent(
				types.EventTypePayout,
				sdk.NewAttribute(types.AttributeKeyOracleId, oracleId),
				sdk.NewAttribute(types.AttributeKeyRequestId, requestId),
				sdk.NewAttribute(types.AttributeKeyNode, winner),
				sdk.NewAttribute(types.AttributeKeyAmount, amount),
			))
		}
	}
	ctx.EventManager().EmitEvents(events)
}
