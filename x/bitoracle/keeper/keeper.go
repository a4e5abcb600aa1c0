package keeper

import (
	"encoding/binary"
	"fmt"

	errorsmod "cosmossdk.io/errors"
	"github.com/cosmos/cosmos-sdk/codec"
	"github.com/cosmos/cosmos-sdk/store/prefix"
	storetypes "github.com/cosmos/cosmos-sdk/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/tendermint/tendermint/libs/log"

	"github.com/GPTx-global/bitoracle/x/bitoracle/types"
)

// Keeper of the bitoracle store
type Keeper struct {
	cdc      *codec.LegacyAmino
	storeKey storetypes.StoreKey

	// moves collateral between nodes and oracle escrows
	bankKeeper types.BankKeeper
}

func NewKeeper(
	cdc *codec.LegacyAmino,
	storeKey storetypes.StoreKey,
	bankKeeper types.BankKeeper,
) *Keeper {
	return &Keeper{
		cdc:        cdc,
		storeKey:   storeKey,
		bankKeeper: bankKeeper,
	}
}

// Logger returns a module-specific logger.
func (k Keeper) Logger(ctx sdk.Context) log.Logger {
	return ctx.Logger().With("module", fmt.Sprintf("x/%s", types.ModuleName))
}

// GetNextOracleId returns the id the next created oracle will receive.
func (k Keeper) GetNextOracleId(ctx sdk.Context) uint64 {
	store := ctx.KVStore(k.storeKey)
	bz := store.Get(types.KeyNextOracleId)
	if len(bz) == 0 {
		return 1
	}
	return binary.BigEndian.Uint64(bz)
}

func (k Keeper) SetNextOracleId(ctx sdk.Context, id uint64) {
	store := ctx.KVStore(k.storeKey)
	store.Set(types.KeyNextOracleId, types.IDToBytes(id))
}

func (k Keeper) SetOracle(ctx sdk.Context, oracle types.Oracle) {
	store := ctx.KVStore(k.storeKey)
	bz := k.cdc.MustMarshalJSON(&oracle)
	store.Set(types.GetOracleKey(oracle.Id), bz)
}

func (k Keeper) GetOracle(ctx sdk.Context, id uint64) (types.Oracle, bool) {
	store := ctx.KVStore(k.storeKey)
	bz := store.Get(types.GetOracleKey(id))
	if len(bz) == 0 {
		return types.Oracle{}, false
	}

	var oracle types.Oracle
	k.cdc.MustUnmarshalJSON(bz, &oracle)
	return oracle, true
}

func (k Keeper) mustGetOracle(ctx sdk.Context, id uint64) (types.Oracle, error) {
	oracle, found := k.GetOracle(ctx, id)
	if !found {
		return types.Oracle{}, errorsmod.Wrapf(types.ErrOracleNotFound, "oracle_id: %d", id)
	}
	return oracle, nil
}

// GetOracles returns every oracle ordered by id.
func (k Keeper) GetOracles(ctx sdk.Context) []types.Oracle {
	store := prefix.NewStore(ctx.KVStore(k.storeKey), types.KeyOracle)
	iterator := store.Iterator(nil, nil)
	defer iterator.Close()

	oracles := []types.Oracle{}
	for ; iterator.Valid(); iterator.Next() {
		var oracle types.Oracle
		k.cdc.MustUnmarshalJSON(iterator.Value(), &oracle)
		oracles = append(oracles, oracle)
	}
	return oracles
}

func (k Keeper) SetNode(ctx sdk.Context, node types.Node) {
	store := ctx.KVStore(k.storeKey)
	bz := k.cdc.MustMarshalJSON(&node)
	store.Set(types.GetNodeKey(node.OracleId, node.OwnerAddress()), bz)
}

func (k Keeper) GetNode(ctx sdk.Context, oracleId uint64, owner sdk.AccAddress) (types.Node, bool) {
	store := ctx.KVStore(k.storeKey)
	bz := store.Get(types.GetNodeKey(oracleId, owner))
	if len(bz) == 0 {
		return types.Node{}, false
	}

	var node types.Node
	k.cdc.MustUnmarshalJSON(bz, &node)
	return node, true
}

// IterateNodes calls cb for every node of an oracle until cb returns true.
func (k Keeper) IterateNodes(ctx sdk.Context, oracleId uint64, cb func(node types.Node) (stop bool)) {
	store := prefix.NewStore(ctx.KVStore(k.storeKey), types.GetNodesPrefix(oracleId))
	iterator := store.Iterator(nil, nil)
	defer iterator.Close()

	for ; iterator.Valid(); iterator.Next() {
		var node types.Node
		k.cdc.MustUnmarshalJSON(iterator.Value(), &node)
		if cb(node) {
			return
		}
	}
}

// GetNodes returns every node registered on an oracle.
func (k Keeper) GetNodes(ctx sdk.Context, oracleId uint64) []types.Node {
	nodes := []types.Node{}
	k.IterateNodes(ctx, oracleId, func(node types.Node) bool {
		nodes = append(nodes, node)
		return false
	})
	return nodes
}

// GetAllNodes returns the nodes of every oracle.
func (k Keeper) GetAllNodes(ctx sdk.Context) []types.Node {
	store := prefix.NewStore(ctx.KVStore(k.storeKey), types.KeyNode)
	iterator := store.Iterator(nil, nil)
	defer iterator.Close()

	nodes := []types.Node{}
	for ; iterator.Valid(); iterator.Next() {
		var node types.Node
		k.cdc.MustUnmarshalJSON(iterator.Value(), &node)
		nodes = append(nodes, node)
	}
	return nodes
}

// EscrowBalance returns the collateral currently held for an oracle.
func (k Keeper) EscrowBalance(ctx sdk.Context, oracle types.Oracle) sdk.Coin {
	return k.bankKeeper.GetBalance(ctx, oracle.Escrow(), oracle.RequiredCollateral.Denom)
}
