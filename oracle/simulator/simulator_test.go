package simulator

import (
	stdmath "math"
	"testing"
	"time"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"
	tmlog "github.com/tendermint/tendermint/libs/log"
	"github.com/tidwall/gjson"

	"github.com/GPTx-global/bitoracle/oracle/config"
	"github.com/GPTx-global/bitoracle/x/bitoracle/types"
)

func newSimulator(t *testing.T, cfg config.ConfigData) *Simulator {
	s, err := New(cfg, tmlog.NewNopLogger())
	require.NoError(t, err)
	require.NoError(t, s.Start())
	return s
}

func TestDefaultScenario(t *testing.T) {
	s := newSimulator(t, config.DefaultConfig())

	reports, err := s.Run()
	require.NoError(t, err)
	require.Len(t, reports, 1)

	r := reports[0]
	require.NoError(t, r.Err())
	require.Empty(t, r.Failures)
	require.Equal(t, []string{"erin"}, r.Slashed)

	res := r.Resolution
	require.True(t, res.ResolutionBit)
	require.Equal(t, uint64(3), res.CountTrue)
	require.Equal(t, uint64(1), res.CountFalse)
	require.Equal(t, math.NewInt(100), res.Forfeited)
	require.Equal(t, math.NewInt(33), res.RewardPerNode)
	require.Equal(t, math.NewInt(1), res.Remainder)

	// alice also collected erin's stake
	require.Equal(t, math.NewInt(1033), r.Balances["alice"].Amount)
	require.Equal(t, math.NewInt(933), r.Balances["bob"].Amount)
	require.Equal(t, math.NewInt(900), r.Balances["dave"].Amount)
	require.Equal(t, math.NewInt(900), r.Balances["erin"].Amount)
	require.Equal(t, math.NewInt(301), r.Escrow.Amount)
}

func TestRepeatedRounds(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Oracle.Rounds = 3
	s := newSimulator(t, cfg)

	reports, err := s.Run()
	require.NoError(t, err)
	require.Len(t, reports, 3)

	// erin and dave are gone after the first round; the rest agree
	for _, r := range reports[1:] {
		require.NoError(t, r.Err())
		require.True(t, r.Resolution.ResolutionBit)
		require.Equal(t, uint64(3), r.Resolution.CountTrue)
		require.True(t, r.Resolution.Forfeited.IsZero())
		require.NotEmpty(t, r.Failures)
	}

	oracle, found := s.Chain().Keeper.GetOracle(s.Chain().Context(), s.OracleId())
	require.True(t, found)
	require.Equal(t, uint64(3), oracle.RequestId)
	require.Equal(t, uint64(3), oracle.ActiveNodeCount)
	require.Equal(t, types.PhaseResolved, oracle.Phase)
}

func TestTieScenario(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Oracle.TieBreak = types.TieBreakTrue.String()
	cfg.Nodes = []config.NodeConfig{
		{Name: "a", Balance: "500stake", Vote: true, Commit: true, Reveal: true},
		{Name: "b", Balance: "500stake", Vote: false, Commit: true, Reveal: true},
	}
	s := newSimulator(t, cfg)

	r, err := s.RunRound(1)
	require.NoError(t, err)
	require.True(t, r.Resolution.ResolutionBit)
	require.Equal(t, math.NewInt(500), r.Balances["a"].Amount)
	require.Equal(t, math.NewInt(400), r.Balances["b"].Amount)
}

func TestChainClock(t *testing.T) {
	chain, err := NewChain("test-1", GenesisTime, tmlog.NewNopLogger())
	require.NoError(t, err)

	require.Equal(t, GenesisTime, chain.Now())
	chain.Advance(90 * time.Second)
	require.Equal(t, GenesisTime.Add(90*time.Second), chain.Now())
	require.Equal(t, GenesisTime.Add(90*time.Second).Unix(), chain.Context().BlockTime().Unix())
}

func TestChainDeliverRejectsInvalidMsg(t *testing.T) {
	chain, err := NewChain("test-1", GenesisTime, tmlog.NewNopLogger())
	require.NoError(t, err)

	_, err = chain.Deliver(types.NewMsgStartRequest(1, AddressFor("authority"), 0))
	require.ErrorIs(t, err, types.ErrInvalidDuration)

	_, err = chain.Deliver(types.NewMsgStartRequest(1, AddressFor("authority"), 60))
	require.ErrorIs(t, err, types.ErrOracleNotFound)
}

func TestChainRejectsOverflowingRevealWindow(t *testing.T) {
	chain, err := NewChain("test-1", GenesisTime, tmlog.NewNopLogger())
	require.NoError(t, err)
	authority := AddressFor("authority")

	_, err = chain.Deliver(types.NewMsgCreateOracle(authority, sdk.NewInt64Coin("stake", 100), 0, types.TieBreakFalse))
	require.NoError(t, err)

	_, err = chain.Deliver(types.NewMsgStartRequest(1, authority, stdmath.MaxInt64))
	require.ErrorIs(t, err, types.ErrInvalidDuration)

	// no round was opened, so there is nothing to resolve
	_, err = chain.Deliver(types.NewMsgResolve(1, authority, nil))
	require.ErrorIs(t, err, types.ErrInvalidPhase)
}

func TestChainInvariants(t *testing.T) {
	chain, err := NewChain("test-1", GenesisTime, tmlog.NewNopLogger())
	require.NoError(t, err)

	routes := make([]string, 0, len(chain.invariants))
	for _, inv := range chain.invariants {
		routes = append(routes, inv.route)
	}
	require.Equal(t, []string{
		"bitoracle/escrow-conservation",
		"bitoracle/active-count",
		"bank/nonnegative-outstanding",
		"bank/total-supply",
	}, routes)

	require.NoError(t, chain.Fund(AddressFor("alice"), sdk.NewCoins(sdk.NewInt64Coin("stake", 10))))
	msg, broken := chain.AssertInvariants()
	require.False(t, broken, msg)
	require.Equal(t, int64(10), chain.Bank.GetBalance(chain.Context(), AddressFor("alice"), "stake").Amount.Int64())

	// the default genesis starts with no oracle
	require.Equal(t, uint64(1), chain.Keeper.GetNextOracleId(chain.Context()))
}

func TestChainQuery(t *testing.T) {
	s := newSimulator(t, config.DefaultConfig())

	bz, err := s.Chain().Query(nil, "oracle", "1")
	require.NoError(t, err)

	var out types.QueryOracleResponse
	require.NoError(t, types.ModuleCdc.UnmarshalJSON(bz, &out))
	require.Equal(t, uint64(5), out.Oracle.ActiveNodeCount)
	require.Equal(t, "idle", gjson.GetBytes(bz, "effective_phase").String())
	require.Equal(t, "500stake", gjson.GetBytes(bz, "escrow").String())
	require.Equal(t, uint64(5), gjson.GetBytes(bz, "oracle.active_node_count").Uint())
}

func TestAddressForIsDeterministic(t *testing.T) {
	require.Equal(t, AddressFor("alice"), AddressFor("alice"))
	require.NotEqual(t, AddressFor("alice"), AddressFor("bob"))
}
