package simulator

import (
	"fmt"
	"time"

	sdk "github.com/cosmos/cosmos-sdk/types"
	bankkeeper "github.com/cosmos/cosmos-sdk/x/bank/keeper"
	abci "github.com/tendermint/tendermint/abci/types"
	tmlog "github.com/tendermint/tendermint/libs/log"
	tmproto "github.com/tendermint/tendermint/proto/tendermint/types"

	"github.com/GPTx-global/bitoracle/oracle/chainstate"
	"github.com/GPTx-global/bitoracle/x/bitoracle"
	"github.com/GPTx-global/bitoracle/x/bitoracle/keeper"
	"github.com/GPTx-global/bitoracle/x/bitoracle/types"
)

// GenesisTime is the block time of the first simulated block.
var GenesisTime = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

// invariant is one registered route of the chain's invariant registry.
type invariant struct {
	route string
	check sdk.Invariant
}

type invariantRegistry []invariant

func (r *invariantRegistry) RegisterRoute(moduleName, route string, invar sdk.Invariant) {
	*r = append(*r, invariant{route: moduleName + "/" + route, check: invar})
}

// Chain is a single-process state machine hosting the bitoracle module on
// top of the sdk bank. Messages are delivered one at a time.
type Chain struct {
	state      *chainstate.State
	header     tmproto.Header
	logger     tmlog.Logger
	router     sdk.Route
	querier    sdk.Querier
	invariants invariantRegistry

	Keeper keeper.Keeper
	Bank   bankkeeper.BaseKeeper
}

// NewChain mounts the module stores on an in-memory database and loads the
// default bitoracle genesis.
func NewChain(chainID string, genesisTime time.Time, logger tmlog.Logger) (*Chain, error) {
	state, err := chainstate.New(types.StoreKey)
	if err != nil {
		return nil, err
	}

	k := keeper.NewKeeper(types.ModuleCdc, state.Key(types.StoreKey), state.BankKeeper)
	am := bitoracle.NewAppModule(*k)

	c := &Chain{
		state:   state,
		header:  tmproto.Header{ChainID: chainID, Height: 1, Time: genesisTime},
		logger:  logger,
		router:  am.Route(),
		querier: am.LegacyQuerierHandler(types.ModuleCdc),
		Keeper:  *k,
		Bank:    state.BankKeeper,
	}
	am.RegisterInvariants(&c.invariants)
	bankkeeper.RegisterInvariants(&c.invariants, state.BankKeeper)

	ctx := c.Context()
	genesis := am.DefaultGenesis(state.Codec)
	if err := am.ValidateGenesis(state.Codec, nil, genesis); err != nil {
		return nil, fmt.Errorf("invalid %s genesis: %w", am.Name(), err)
	}
	am.InitGenesis(ctx, state.Codec, genesis)

	return c, nil
}

// Context returns a context over the latest committed state.
func (c *Chain) Context() sdk.Context {
	return c.state.NewContext(c.header, c.logger)
}

// Now is the current block time.
func (c *Chain) Now() time.Time {
	return c.header.Time
}

// Advance commits the current block and moves the clock forward by d.
func (c *Chain) Advance(d time.Duration) {
	c.state.MultiStore().Commit()
	c.header.Height++
	c.header.Time = c.header.Time.Add(d)
}

// Fund credits genesis coins to addr.
func (c *Chain) Fund(addr sdk.AccAddress, amt sdk.Coins) error {
	return c.state.Fund(c.Context(), addr, amt)
}

// Deliver runs msg the way a transaction would: stateless validation first,
// then the module route on a cached branch that is written back only on
// success.
func (c *Chain) Deliver(msg sdk.Msg) (*sdk.Result, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}

	ctx, write := c.Context().CacheContext()
	res, err := c.router.Handler()(ctx, msg)
	if err != nil {
		return nil, err
	}
	write()
	return res, nil
}

// Query calls the module querier with a custom route such as oracle/1.
func (c *Chain) Query(data []byte, path ...string) ([]byte, error) {
	return c.querier(c.Context(), path, abci.RequestQuery{Data: data})
}

// AssertInvariants runs every registered invariant and returns the message
// of the first broken one.
func (c *Chain) AssertInvariants() (string, bool) {
	ctx := c.Context()
	for _, inv := range c.invariants {
		if msg, broken := inv.check(ctx); broken {
			return msg, true
		}
	}
	return "", false
}
