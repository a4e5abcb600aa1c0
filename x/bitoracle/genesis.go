package bitoracle

import (
	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/GPTx-global/bitoracle/x/bitoracle/keeper"
	"github.com/GPTx-global/bitoracle/x/bitoracle/types"
)

// InitGenesis new bitoracle genesis
func InitGenesis(ctx sdk.Context, k keeper.Keeper, data types.GenesisState) {
	if err := data.Validate(); err != nil {
		panic(errorsmod.Wrapf(err, "error validating %s genesis", types.ModuleName))
	}

	k.SetNextOracleId(ctx, data.NextOracleId)
	for _, oracle := range data.Oracles {
		k.SetOracle(ctx, oracle)
	}
	for _, node := range data.Nodes {
		k.SetNode(ctx, node)
	}

	k.Logger(ctx).Info("genesis loaded", "oracles", len(data.Oracles), "nodes", len(data.Nodes))
}

// ExportGenesis returns a GenesisState for a given context and keeper.
func ExportGenesis(ctx sdk.Context, k keeper.Keeper) types.GenesisState {
	return types.NewGenesisState(
		k.GetNextOracleId(ctx),
		k.GetOracles(ctx),
		k.GetAllNodes(ctx),
	)
}
