// Package chainstate mounts the params, auth and bank modules of the
// cosmos-sdk on an in-memory multistore, next to any extra module stores the
// caller asks for.
package chainstate

import (
	"fmt"

	"github.com/cosmos/cosmos-sdk/codec"
	codectypes "github.com/cosmos/cosmos-sdk/codec/types"
	"github.com/cosmos/cosmos-sdk/std"
	"github.com/cosmos/cosmos-sdk/store"
	storetypes "github.com/cosmos/cosmos-sdk/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	authkeeper "github.com/cosmos/cosmos-sdk/x/auth/keeper"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"
	bankkeeper "github.com/cosmos/cosmos-sdk/x/bank/keeper"
	banktypes "github.com/cosmos/cosmos-sdk/x/bank/types"
	paramskeeper "github.com/cosmos/cosmos-sdk/x/params/keeper"
	paramstypes "github.com/cosmos/cosmos-sdk/x/params/types"
	"github.com/tendermint/tendermint/libs/log"
	tmproto "github.com/tendermint/tendermint/proto/tendermint/types"
	tmdb "github.com/tendermint/tm-db"
)

// FaucetName is the module account that mints genesis balances.
const FaucetName = "faucet"

// module account permissions
var maccPerms = map[string][]string{
	FaucetName: {authtypes.Minter},
}

// State is a committed multistore with the bank stack wired on top of it.
type State struct {
	ms   storetypes.CommitMultiStore
	keys map[string]*storetypes.KVStoreKey

	Codec         codec.Codec
	Amino         *codec.LegacyAmino
	AccountKeeper authkeeper.AccountKeeper
	BankKeeper    bankkeeper.BaseKeeper
}

// New mounts the bank stack plus one KVStore per name in storeKeys and
// writes the default auth and bank params.
func New(storeKeys ...string) (*State, error) {
	registry := codectypes.NewInterfaceRegistry()
	std.RegisterInterfaces(registry)
	authtypes.RegisterInterfaces(registry)
	banktypes.RegisterInterfaces(registry)
	cdc := codec.NewProtoCodec(registry)
	amino := codec.NewLegacyAmino()

	names := append([]string{paramstypes.StoreKey, authtypes.StoreKey, banktypes.StoreKey}, storeKeys...)
	keys := sdk.NewKVStoreKeys(names...)
	tkeys := sdk.NewTransientStoreKeys(paramstypes.TStoreKey)

	db := tmdb.NewMemDB()
	ms := store.NewCommitMultiStore(db)
	for _, key := range keys {
		ms.MountStoreWithDB(key, storetypes.StoreTypeIAVL, db)
	}
	for _, key := range tkeys {
		ms.MountStoreWithDB(key, storetypes.StoreTypeTransient, db)
	}
	if err := ms.LoadLatestVersion(); err != nil {
		return nil, fmt.Errorf("failed to load stores: %w", err)
	}

	paramsKeeper := paramskeeper.NewKeeper(cdc, amino, keys[paramstypes.StoreKey], tkeys[paramstypes.TStoreKey])
	accountKeeper := authkeeper.NewAccountKeeper(
		cdc, keys[authtypes.StoreKey], paramsKeeper.Subspace(authtypes.ModuleName),
		authtypes.ProtoBaseAccount, maccPerms, sdk.GetConfig().GetBech32AccountAddrPrefix(),
	)
	bankKeeper := bankkeeper.NewBaseKeeper(
		cdc, keys[banktypes.StoreKey], accountKeeper, paramsKeeper.Subspace(banktypes.ModuleName), nil,
	)

	s := &State{
		ms:            ms,
		keys:          keys,
		Codec:         cdc,
		Amino:         amino,
		AccountKeeper: accountKeeper,
		BankKeeper:    bankKeeper,
	}

	ctx := s.NewContext(tmproto.Header{}, log.NewNopLogger())
	accountKeeper.SetParams(ctx, authtypes.DefaultParams())
	bankKeeper.SetParams(ctx, banktypes.DefaultParams())
	return s, nil
}

// Key returns the KVStore key mounted under name, nil if there is none.
func (s *State) Key(name string) *storetypes.KVStoreKey {
	return s.keys[name]
}

// MultiStore exposes the root store for commits.
func (s *State) MultiStore() storetypes.CommitMultiStore {
	return s.ms
}

// NewContext returns a context writing straight into the root store.
func (s *State) NewContext(header tmproto.Header, logger log.Logger) sdk.Context {
	return sdk.NewContext(s.ms, header, false, logger)
}

// Fund mints amt through the faucet module account and sends it to addr.
func (s *State) Fund(ctx sdk.Context, addr sdk.AccAddress, amt sdk.Coins) error {
	if err := s.BankKeeper.MintCoins(ctx, FaucetName, amt); err != nil {
		return err
	}
	return s.BankKeeper.SendCoinsFromModuleToAccount(ctx, FaucetName, addr, amt)
}
