package keeper

import (
	"bytes"
	"testing"
	"time"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	bankkeeper "github.com/cosmos/cosmos-sdk/x/bank/keeper"
	"github.com/stretchr/testify/require"
	"github.com/tendermint/tendermint/libs/log"
	tmproto "github.com/tendermint/tendermint/proto/tendermint/types"

	"github.com/GPTx-global/bitoracle/oracle/chainstate"
	"github.com/GPTx-global/bitoracle/x/bitoracle/types"
)

const (
	testDenom      = "stake"
	revealDuration = int64(60)
)

var (
	genesisTime = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

	authority = testAddr("authority")
	alice     = testAddr("alice")
	bob       = testAddr("bob")
	carol     = testAddr("carol")
	dave      = testAddr("dave")
	outsider  = testAddr("outsider")
)

func testAddr(name string) sdk.AccAddress {
	bz := make([]byte, 20)
	copy(bz, name)
	return sdk.AccAddress(bz)
}

func collateral(amount int64) sdk.Coin {
	return sdk.NewCoin(testDenom, math.NewInt(amount))
}

func nonceOf(b byte) []byte {
	return bytes.Repeat([]byte{b}, types.NonceLength)
}

// setupKeeper creates a new Keeper instance on top of the sdk bank and a
// context for testing. The returned context starts with an empty event
// manager.
func setupKeeper(t *testing.T) (*Keeper, bankkeeper.BaseKeeper, sdk.Context) {
	state, err := chainstate.New(types.StoreKey)
	require.NoError(t, err)

	ctx := state.NewContext(tmproto.Header{Time: genesisTime}, log.NewNopLogger())
	keeper := NewKeeper(types.ModuleCdc, state.Key(types.StoreKey), state.BankKeeper)

	for _, addr := range []sdk.AccAddress{alice, bob, carol, dave, outsider} {
		require.NoError(t, state.Fund(ctx, addr, sdk.NewCoins(collateral(1000))))
	}

	return keeper, state.BankKeeper, ctx.WithEventManager(sdk.NewEventManager())
}

// setupOracle creates an oracle requiring 100stake and lets nodes join it.
func setupOracle(t *testing.T, k *Keeper, ctx sdk.Context, tieBreak types.TieBreakPolicy, nodes ...sdk.AccAddress) uint64 {
	id, err := k.CreateOracle(ctx, authority, collateral(100), 0, tieBreak)
	require.NoError(t, err)
	for _, node := range nodes {
		require.NoError(t, k.JoinNetwork(ctx, id, node, collateral(100)))
	}
	return id
}

func advance(ctx sdk.Context, seconds int64) sdk.Context {
	return ctx.WithBlockTime(ctx.BlockTime().Add(time.Duration(seconds) * time.Second))
}

func commitVote(t *testing.T, k *Keeper, ctx sdk.Context, id uint64, node sdk.AccAddress, vote bool, nonce []byte) bool {
	started, err := k.Commit(ctx, id, node, types.MustCalculateHash(vote, nonce))
	require.NoError(t, err)
	return started
}

func mustOracle(t *testing.T, k *Keeper, ctx sdk.Context, id uint64) types.Oracle {
	oracle, found := k.GetOracle(ctx, id)
	require.True(t, found)
	return oracle
}

func mustNode(t *testing.T, k *Keeper, ctx sdk.Context, id uint64, addr sdk.AccAddress) types.Node {
	node, found := k.GetNode(ctx, id, addr)
	require.True(t, found)
	return node
}

func balance(bank types.BankKeeper, ctx sdk.Context, addr sdk.AccAddress) math.Int {
	return bank.GetBalance(ctx, addr, testDenom).Amount
}

func requireInvariants(t *testing.T, k *Keeper, ctx sdk.Context) {
	t.Helper()
	msg, broken := AllInvariants(*k)(ctx)
	require.False(t, broken, msg)
	if bank, ok := k.bankKeeper.(bankkeeper.Keeper); ok {
		msg, broken = bankkeeper.AllInvariants(bank)(ctx)
		require.False(t, broken, msg)
	}
}
