package keeper

import (
	"testing"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	"github.com/stretchr/testify/require"

	"github.com/GPTx-global/bitoracle/x/bitoracle/types"
)

// A node joins with exactly the required collateral and cannot
// join twice.
func TestJoinNetworkMovesCollateralToEscrow(t *testing.T) {
	k, bank, ctx := setupKeeper(t)
	id := setupOracle(t, k, ctx, types.TieBreakFalse)
	escrow := types.EscrowAddress(id)

	require.NoError(t, k.JoinNetwork(ctx, id, alice, collateral(100)))

	require.Equal(t, math.NewInt(100), balance(bank, ctx, escrow))
	require.Equal(t, math.NewInt(900), balance(bank, ctx, alice))

	node := mustNode(t, k, ctx, id, alice)
	require.True(t, node.Joined)
	require.False(t, node.Slashed)
	require.Equal(t, math.NewInt(100), node.Stake)
	require.Equal(t, uint64(1), mustOracle(t, k, ctx, id).ActiveNodeCount)

	err := k.JoinNetwork(ctx, id, alice, collateral(100))
	require.ErrorIs(t, err, types.ErrAlreadyJoined)
	require.Equal(t, math.NewInt(100), balance(bank, ctx, escrow))
	requireInvariants(t, k, ctx)
}

func TestJoinNetworkErrors(t *testing.T) {
	tests := []struct {
		name       string
		oracleId   uint64
		collateral sdk.Coin
		maxNodes   uint64
		wantErr    error
	}{
		{"unknown oracle", 99, collateral(100), 0, types.ErrOracleNotFound},
		{"too little", 1, collateral(99), 0, types.ErrInsufficientCollateral},
		{"too much", 1, collateral(101), 0, types.ErrInsufficientCollateral},
		{"wrong denom", 1, sdk.NewCoin("other", math.NewInt(100)), 0, types.ErrInsufficientCollateral},
		{"cap reached", 1, collateral(100), 1, types.ErrMaxNodesReached},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k, bank, ctx := setupKeeper(t)
			id, err := k.CreateOracle(ctx, authority, collateral(100), tt.maxNodes, types.TieBreakFalse)
			require.NoError(t, err)
			if tt.maxNodes > 0 {
				require.NoError(t, k.JoinNetwork(ctx, id, bob, collateral(100)))
			}

			err = k.JoinNetwork(ctx, tt.oracleId, alice, tt.collateral)
			require.ErrorIs(t, err, tt.wantErr)
			require.Equal(t, math.NewInt(1000), balance(bank, ctx, alice))
			require.False(t, k.IsActive(ctx, id, alice))
		})
	}
}

func TestJoinNetworkInsufficientFunds(t *testing.T) {
	k, bank, ctx := setupKeeper(t)
	id, err := k.CreateOracle(ctx, authority, collateral(5000), 0, types.TieBreakFalse)
	require.NoError(t, err)

	err = k.JoinNetwork(ctx, id, alice, collateral(5000))
	require.ErrorIs(t, err, sdkerrors.ErrInsufficientFunds)
	require.False(t, k.IsActive(ctx, id, alice))
	require.Equal(t, uint64(0), mustOracle(t, k, ctx, id).ActiveNodeCount)
	require.Equal(t, math.NewInt(1000), balance(bank, ctx, alice))
}

func TestSlashedNodeCannotRejoin(t *testing.T) {
	k, _, ctx := setupKeeper(t)
	id := setupOracle(t, k, ctx, types.TieBreakFalse, alice, bob, carol)

	_, err := k.StartRequest(ctx, id, authority, revealDuration)
	require.NoError(t, err)
	commitVote(t, k, ctx, id, alice, true, nonceOf(1))
	require.NoError(t, k.SlashColluding(ctx, id, bob, alice, true, nonceOf(1)))

	err = k.JoinNetwork(ctx, id, alice, collateral(100))
	require.ErrorIs(t, err, types.ErrAlreadyJoined)
}

func TestSlashDoesNotFreeNodeSlot(t *testing.T) {
	k, _, ctx := setupKeeper(t)
	id, err := k.CreateOracle(ctx, authority, collateral(100), 2, types.TieBreakFalse)
	require.NoError(t, err)
	require.NoError(t, k.JoinNetwork(ctx, id, alice, collateral(100)))
	require.NoError(t, k.JoinNetwork(ctx, id, bob, collateral(100)))

	_, err = k.StartRequest(ctx, id, authority, revealDuration)
	require.NoError(t, err)
	commitVote(t, k, ctx, id, alice, true, nonceOf(1))
	require.NoError(t, k.SlashColluding(ctx, id, bob, alice, true, nonceOf(1)))

	oracle := mustOracle(t, k, ctx, id)
	require.Equal(t, uint64(1), oracle.ActiveNodeCount)
	require.Equal(t, uint64(2), oracle.TotalNodes)

	err = k.JoinNetwork(ctx, id, carol, collateral(100))
	require.ErrorIs(t, err, types.ErrMaxNodesReached)
	require.False(t, k.IsActive(ctx, id, carol))
	requireInvariants(t, k, ctx)
}

func TestJoinDuringCommitRaisesThreshold(t *testing.T) {
	k, _, ctx := setupKeeper(t)
	id := setupOracle(t, k, ctx, types.TieBreakFalse, alice, bob)

	_, err := k.StartRequest(ctx, id, authority, revealDuration)
	require.NoError(t, err)
	require.False(t, commitVote(t, k, ctx, id, alice, true, nonceOf(1)))

	require.NoError(t, k.JoinNetwork(ctx, id, carol, collateral(100)))
	require.False(t, commitVote(t, k, ctx, id, bob, true, nonceOf(2)))
	require.Equal(t, types.PhaseCommit, mustOracle(t, k, ctx, id).Phase)

	require.True(t, commitVote(t, k, ctx, id, carol, false, nonceOf(3)))
	require.Equal(t, types.PhaseReveal, mustOracle(t, k, ctx, id).Phase)
}
