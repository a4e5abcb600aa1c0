package keeper

import (
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/GPTx-global/bitoracle/x/bitoracle/types"
)

// RegisterInvariants registers the bitoracle module invariants
func RegisterInvariants(ir sdk.InvariantRegistry, k Keeper) {
	ir.RegisterRoute(types.ModuleName, "escrow-conservation", EscrowConservationInvariant(k))
	ir.RegisterRoute(types.ModuleName, "active-count", ActiveCountInvariant(k))
}

// AllInvariants runs all invariants of the bitoracle module.
func AllInvariants(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		res, stop := EscrowConservationInvariant(k)(ctx)
		if stop {
			return res, stop
		}
		return ActiveCountInvariant(k)(ctx)
	}
}

// EscrowConservationInvariant checks that every escrow holds exactly the
// stakes of its active nodes plus the retained residual.
func EscrowConservationInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		var (
			msg    string
			broken int
		)

		for _, oracle := range k.GetOracles(ctx) {
			expected := oracle.Residual
			k.IterateNodes(ctx, oracle.Id, func(node types.Node) bool {
				if node.IsActive() {
					expected = expected.Add(node.Stake)
				}
				return false
			})

			balance := k.EscrowBalance(ctx, oracle)
			if !balance.Amount.Equal(expected) {
				broken++
				msg += fmt.Sprintf("\toracle %d escrow %s, expected %s%s\n", oracle.Id, balance, expected, oracle.RequiredCollateral.Denom)
			}
		}

		return sdk.FormatInvariant(types.ModuleName, "escrow-conservation",
			fmt.Sprintf("%d oracle escrows do not match their stakes\n%s", broken, msg)), broken != 0
	}
}

// ActiveCountInvariant checks the active node and commit counters and that
// every active node carries exactly the required collateral.
func ActiveCountInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		var (
			msg    string
			broken int
		)

		for _, oracle := range k.GetOracles(ctx) {
			var active, joined uint64
			stakes := math.ZeroInt()
			k.IterateNodes(ctx, oracle.Id, func(node types.Node) bool {
				if node.Joined {
					joined++
				}
				if node.IsActive() {
					active++
					stakes = stakes.Add(node.Stake)
				}
				return false
			})

			required := oracle.RequiredCollateral.Amount.Mul(math.NewIntFromUint64(active))
			switch {
			case active != oracle.ActiveNodeCount:
				broken++
				msg += fmt.Sprintf("\toracle %d counts %d active nodes, found %d\n", oracle.Id, oracle.ActiveNodeCount, active)
			case joined != oracle.TotalNodes:
				broken++
				msg += fmt.Sprintf("\toracle %d counts %d joined nodes, found %d\n", oracle.Id, oracle.TotalNodes, joined)
			case !stakes.Equal(required):
				broken++
				msg += fmt.Sprintf("\toracle %d active stakes %s, expected %s\n", oracle.Id, stakes, required)
			case oracle.ActiveCommitCount > oracle.ActiveNodeCount:
				broken++
				msg += fmt.Sprintf("\toracle %d commit count %d exceeds active nodes %d\n", oracle.Id, oracle.ActiveCommitCount, oracle.ActiveNodeCount)
			}
		}

		return sdk.FormatInvariant(types.ModuleName, "active-count",
			fmt.Sprintf("%d oracles have inconsistent active counts\n%s", broken, msg)), broken != 0
	}
}
