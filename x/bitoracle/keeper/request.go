package keeper

import (
	"math"
	"strconv"

	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/GPTx-global/bitoracle/x/bitoracle/types"
)

// CreateOracle deploys a new idle oracle and returns its id.
func (k Keeper) CreateOracle(ctx sdk.Context, authority sdk.AccAddress, collateral sdk.Coin, maxNodes uint64, tieBreak types.TieBreakPolicy) (uint64, error) {
	if err := types.ValidateCollateral(collateral); err != nil {
		return 0, err
	}
	if err := tieBreak.Validate(); err != nil {
		return 0, err
	}

	id := k.GetNextOracleId(ctx)
	oracle := types.NewOracle(id, authority.String(), collateral, maxNodes, tieBreak)
	k.SetOracle(ctx, oracle)
	k.SetNextOracleId(ctx, id+1)

	k.Logger(ctx).Info("oracle created", "oracle_id", id, "authority", oracle.Authority, "collateral", collateral.String())
	return id, nil
}

// StartRequest opens a new commit round. Only the oracle authority may call
// it, and only once the previous round is resolved.
func (k Keeper) StartRequest(ctx sdk.Context, oracleId uint64, caller sdk.AccAddress, revealDuration int64) (types.Oracle, error) {
	oracle, err := k.mustGetOracle(ctx, oracleId)
	if err != nil {
		return types.Oracle{}, err
	}

	if oracle.Authority != caller.String() {
		return types.Oracle{}, errorsmod.Wrapf(types.ErrUnauthorized, "expected: %s, got: %s", oracle.Authority, caller)
	}
	if oracle.Phase != types.PhaseIdle && oracle.Phase != types.PhaseResolved {
		return types.Oracle{}, errorsmod.Wrapf(types.ErrRequestInProgress, "request %d is in %s phase", oracle.RequestId, oracle.Phase)
	}
	if revealDuration <= 0 {
		return types.Oracle{}, errorsmod.Wrapf(types.ErrInvalidDuration, "reveal duration must be positive, got %d", revealDuration)
	}
	now := ctx.BlockTime().Unix()
	if revealDuration > math.MaxInt64-now {
		return types.Oracle{}, errorsmod.Wrapf(types.ErrInvalidDuration, "reveal duration %d overflows block time %d", revealDuration, now)
	}

	oracle.RequestId++
	oracle.ActiveCommitCount = 0
	oracle.RevealDeadline = now + revealDuration
	oracle.Phase = types.PhaseCommit
	oracle.IsResolved = false
	oracle.ResolutionBit = false
	k.SetOracle(ctx, oracle)

	k.Logger(ctx).Info("request started", "oracle_id", oracleId, "request_id", oracle.RequestId, "reveal_deadline", oracle.RevealDeadline)
	return oracle, nil
}

// beginRevealIfComplete moves a commit round to Reveal once every active node
// has committed. It reports whether the transition happened; the caller
// persists the oracle.
func (k Keeper) beginRevealIfComplete(ctx sdk.Context, oracle *types.Oracle) bool {
	if oracle.Phase != types.PhaseCommit || !oracle.AllCommitted() {
		return false
	}

	oracle.Phase = types.PhaseReveal
	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypePhaseReveal,
			sdk.NewAttribute(types.AttributeKeyOracleId, strconv.FormatUint(oracle.Id, 10)),
			sdk.NewAttribute(types.AttributeKeyRequestId, strconv.FormatUint(oracle.RequestId, 10)),
		),
	)
	k.Logger(ctx).Info("all active nodes committed, reveal phase started", "oracle_id", oracle.Id, "request_id", oracle.RequestId)
	return true
}
