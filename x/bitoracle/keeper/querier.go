package keeper

import (
	"strconv"

	errorsmod "cosmossdk.io/errors"
	"github.com/cosmos/cosmos-sdk/codec"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	abci "github.com/tendermint/tendermint/abci/types"

	"github.com/GPTx-global/bitoracle/x/bitoracle/types"
)

// NewQuerier returns the legacy querier of the bitoracle module.
//
//	oracle/{id}
//	oracles
//	node/{id}/{address}
//	nodes/{id}
//	calculate-hash (params in request data)
func NewQuerier(k Keeper, legacyQuerierCdc *codec.LegacyAmino) sdk.Querier {
	return func(ctx sdk.Context, path []string, req abci.RequestQuery) ([]byte, error) {
		if len(path) == 0 {
			return nil, errorsmod.Wrap(sdkerrors.ErrUnknownRequest, "empty query path")
		}

		switch path[0] {
		case types.QueryOracle:
			return queryOracle(ctx, path[1:], k, legacyQuerierCdc)
		case types.QueryOracles:
			return codec.MarshalJSONIndent(legacyQuerierCdc, k.GetOracles(ctx))
		case types.QueryNode:
			return queryNode(ctx, path[1:], k, legacyQuerierCdc)
		case types.QueryNodes:
			return queryNodes(ctx, path[1:], k, legacyQuerierCdc)
		case types.QueryCalculateHash:
			return queryCalculateHash(req, legacyQuerierCdc)
		default:
			return nil, errorsmod.Wrapf(sdkerrors.ErrUnknownRequest, "unknown %s query endpoint: %s", types.ModuleName, path[0])
		}
	}
}

func parseOracleId(path []string) (uint64, error) {
	if len(path) == 0 {
		return 0, errorsmod.Wrap(sdkerrors.ErrInvalidRequest, "missing oracle id")
	}
	id, err := strconv.ParseUint(path[0], 10, 64)
	if err != nil {
		return 0, errorsmod.Wrapf(sdkerrors.ErrInvalidRequest, "invalid oracle id %q", path[0])
	}
	return id, nil
}

func queryOracle(ctx sdk.Context, path []string, k Keeper, cdc *codec.LegacyAmino) ([]byte, error) {
	id, err := parseOracleId(path)
	if err != nil {
		return nil, err
	}
	oracle, err := k.mustGetOracle(ctx, id)
	if err != nil {
		return nil, err
	}

	return codec.MarshalJSONIndent(cdc, types.QueryOracleResponse{
		Oracle:         oracle,
		EffectivePhase: oracle.EffectivePhase(ctx.BlockTime().Unix()).String(),
		Escrow:         k.EscrowBalance(ctx, oracle).String(),
	})
}

func queryNode(ctx sdk.Context, path []string, k Keeper, cdc *codec.LegacyAmino) ([]byte, error) {
	id, err := parseOracleId(path)
	if err != nil {
		return nil, err
	}
	if len(path) < 2 {
		return nil, errorsmod.Wrap(sdkerrors.ErrInvalidRequest, "missing node address")
	}
	addr, err := sdk.AccAddressFromBech32(path[1])
	if err != nil {
		return nil, errorsmod.Wrapf(sdkerrors.ErrInvalidAddress, "invalid node address (%s)", err)
	}

	node, found := k.GetNode(ctx, id, addr)
	if !found {
		return nil, errorsmod.Wrapf(types.ErrNodeNotJoined, "node: %s", addr)
	}
	return codec.MarshalJSONIndent(cdc, node)
}

func queryNodes(ctx sdk.Context, path []string, k Keeper, cdc *codec.LegacyAmino) ([]byte, error) {
	id, err := parseOracleId(path)
	if err != nil {
		return nil, err
	}
	if _, err := k.mustGetOracle(ctx, id); err != nil {
		return nil, err
	}
	return codec.MarshalJSONIndent(cdc, k.GetNodes(ctx, id))
}

func queryCalculateHash(req abci.RequestQuery, cdc *codec.LegacyAmino) ([]byte, error) {
	var params types.QueryCalculateHashParams
	if err := cdc.UnmarshalJSON(req.Data, &params); err != nil {
		return nil, errorsmod.Wrap(sdkerrors.ErrJSONUnmarshal, err.Error())
	}

	digest, err := types.CalculateHash(params.Vote, params.Nonce)
	if err != nil {
		return nil, err
	}
	return codec.MarshalJSONIndent(cdc, types.QueryCalculateHashResponse{Commitment: digest})
}
