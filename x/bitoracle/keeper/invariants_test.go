package keeper

import (
	"testing"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	"github.com/GPTx-global/bitoracle/x/bitoracle/types"
)

type mockInvariantRegistry struct {
	routes []string
}

func (r *mockInvariantRegistry) RegisterRoute(moduleName, route string, _ sdk.Invariant) {
	r.routes = append(r.routes, moduleName+"/"+route)
}

func TestRegisterInvariants(t *testing.T) {
	k, _, _ := setupKeeper(t)
	ir := &mockInvariantRegistry{}
	RegisterInvariants(ir, *k)
	require.Equal(t, []string{"bitoracle/escrow-conservation", "bitoracle/active-count"}, ir.routes)
}

func TestEscrowConservationInvariantBroken(t *testing.T) {
	k, bank, ctx := setupKeeper(t)
	id := setupOracle(t, k, ctx, types.TieBreakFalse, alice, bob)

	_, broken := EscrowConservationInvariant(*k)(ctx)
	require.False(t, broken)

	// coins sent straight to the escrow are not backed by any stake
	require.NoError(t, bank.SendCoins(ctx, carol, types.EscrowAddress(id), sdk.NewCoins(collateral(1))))
	msg, broken := EscrowConservationInvariant(*k)(ctx)
	require.True(t, broken)
	require.Contains(t, msg, "oracle 1")
}

func TestActiveCountInvariantBroken(t *testing.T) {
	k, _, ctx := setupKeeper(t)
	id := setupOracle(t, k, ctx, types.TieBreakFalse, alice, bob)

	oracle := mustOracle(t, k, ctx, id)
	oracle.ActiveNodeCount = 3
	k.SetOracle(ctx, oracle)
	_, broken := ActiveCountInvariant(*k)(ctx)
	require.True(t, broken)

	oracle.ActiveNodeCount = 2
	k.SetOracle(ctx, oracle)
	node := mustNode(t, k, ctx, id, alice)
	node.Stake = math.NewInt(50)
	k.SetNode(ctx, node)
	_, broken = ActiveCountInvariant(*k)(ctx)
	require.True(t, broken)

	node.Stake = math.NewInt(100)
	k.SetNode(ctx, node)
	oracle.TotalNodes = 1
	k.SetOracle(ctx, oracle)
	msg, broken := ActiveCountInvariant(*k)(ctx)
	require.True(t, broken)
	require.Contains(t, msg, "joined nodes")
}
