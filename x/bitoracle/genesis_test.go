package bitoracle

import (
	"testing"
	"time"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"
	"github.com/tendermint/tendermint/libs/log"
	tmproto "github.com/tendermint/tendermint/proto/tendermint/types"

	"github.com/GPTx-global/bitoracle/oracle/chainstate"
	"github.com/GPTx-global/bitoracle/x/bitoracle/keeper"
	"github.com/GPTx-global/bitoracle/x/bitoracle/types"
)

var (
	authority = sdk.AccAddress([]byte("authority___________"))
	alice     = sdk.AccAddress([]byte("alice_______________"))
	bob       = sdk.AccAddress([]byte("bob_________________"))
)

func stake(amount int64) sdk.Coin {
	return sdk.NewCoin("stake", math.NewInt(amount))
}

func setupTest(t *testing.T) (sdk.Context, *keeper.Keeper, *chainstate.State) {
	state, err := chainstate.New(types.StoreKey)
	require.NoError(t, err)

	k := keeper.NewKeeper(types.ModuleCdc, state.Key(types.StoreKey), state.BankKeeper)

	header := tmproto.Header{Time: time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)}
	ctx := state.NewContext(header, log.NewNopLogger())
	for _, addr := range []sdk.AccAddress{alice, bob} {
		require.NoError(t, state.Fund(ctx, addr, sdk.NewCoins(stake(1000))))
	}
	return ctx, k, state
}

func validGenesis() types.GenesisState {
	oracle := types.NewOracle(1, authority.String(), stake(100), 0, types.TieBreakFalse)
	oracle.ActiveNodeCount = 2
	oracle.TotalNodes = 2
	return types.NewGenesisState(2, []types.Oracle{oracle}, []types.Node{
		{OracleId: 1, Owner: alice.String(), Joined: true, Stake: math.NewInt(100)},
		{OracleId: 1, Owner: bob.String(), Joined: true, Stake: math.NewInt(100)},
	})
}

func TestInitGenesis(t *testing.T) {
	tests := []struct {
		name     string
		genesis  func() types.GenesisState
		expPanic bool
	}{
		{
			name:    "1. default genesis state",
			genesis: func() types.GenesisState { return *types.DefaultGenesisState() },
		},
		{
			name:    "2. oracle with nodes",
			genesis: validGenesis,
		},
		{
			name: "3. active count mismatch",
			genesis: func() types.GenesisState {
				gs := validGenesis()
				gs.Oracles[0].ActiveNodeCount = 1
				return gs
			},
			expPanic: true,
		},
		{
			name: "4. oracle id not below next id",
			genesis: func() types.GenesisState {
				gs := validGenesis()
				gs.NextOracleId = 1
				return gs
			},
			expPanic: true,
		},
		{
			name: "5. node of unknown oracle",
			genesis: func() types.GenesisState {
				gs := validGenesis()
				gs.Nodes[0].OracleId = 7
				return gs
			},
			expPanic: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, k, _ := setupTest(t)
			gs := tt.genesis()
			if tt.expPanic {
				require.Panics(t, func() { InitGenesis(ctx, *k, gs) })
				return
			}
			require.NotPanics(t, func() { InitGenesis(ctx, *k, gs) })
			require.Equal(t, gs.NextOracleId, k.GetNextOracleId(ctx))
			require.Len(t, k.GetOracles(ctx), len(gs.Oracles))
			require.Len(t, k.GetAllNodes(ctx), len(gs.Nodes))
		})
	}
}

func TestExportGenesis(t *testing.T) {
	ctx, k, _ := setupTest(t)

	id, err := k.CreateOracle(ctx, authority, stake(100), 5, types.TieBreakTrue)
	require.NoError(t, err)
	require.NoError(t, k.JoinNetwork(ctx, id, alice, stake(100)))
	require.NoError(t, k.JoinNetwork(ctx, id, bob, stake(100)))
	_, err = k.StartRequest(ctx, id, authority, 30)
	require.NoError(t, err)
	_, err = k.Commit(ctx, id, alice, types.MustCalculateHash(true, make([]byte, types.NonceLength)))
	require.NoError(t, err)

	exported := ExportGenesis(ctx, *k)
	require.NoError(t, exported.Validate())
	require.Equal(t, uint64(2), exported.NextOracleId)
	require.Len(t, exported.Oracles, 1)
	require.Len(t, exported.Nodes, 2)

	// round trip into a fresh store
	fresh, k2, _ := setupTest(t)
	InitGenesis(fresh, *k2, exported)
	again := ExportGenesis(fresh, *k2)
	require.Equal(t,
		types.ModuleCdc.MustMarshalJSON(exported),
		types.ModuleCdc.MustMarshalJSON(again),
	)
}
