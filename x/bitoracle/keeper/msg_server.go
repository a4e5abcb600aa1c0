package keeper

import (
	"context"
	"encoding/hex"
	"strconv"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/GPTx-global/bitoracle/x/bitoracle/types"
)

type msgServer struct {
	Keeper
}

// NewMsgServerImpl returns an implementation of the bitoracle MsgServer
// interface for the provided Keeper.
func NewMsgServerImpl(keeper Keeper) types.MsgServer {
	return &msgServer{Keeper: keeper}
}

var _ types.MsgServer = msgServer{}

// CreateOracle implements types.MsgServer.
func (k msgServer) CreateOracle(goCtx context.Context, msg *types.MsgCreateOracle) (*types.MsgCreateOracleResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)

	authority, err := sdk.AccAddressFromBech32(msg.Authority)
	if err != nil {
		return nil, err
	}

	id, err := k.Keeper.CreateOracle(ctx, authority, msg.RequiredCollateral, msg.MaxNodes, msg.TieBreak)
	if err != nil {
		return nil, err
	}

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeCreateOracle,
			sdk.NewAttribute(types.AttributeKeyOracleId, strconv.FormatUint(id, 10)),
			sdk.NewAttribute(types.AttributeKeyAuthority, msg.Authority),
			sdk.NewAttribute(types.AttributeKeyCollateral, msg.RequiredCollateral.String()),
			sdk.NewAttribute(types.AttributeKeyMaxNodes, strconv.FormatUint(msg.MaxNodes, 10)),
			sdk.NewAttribute(types.AttributeKeyTieBreak, msg.TieBreak.String()),
			sdk.NewAttribute(types.AttributeKeyEscrow, types.EscrowAddress(id).String()),
		),
	)

	return &types.MsgCreateOracleResponse{OracleId: id}, nil
}

// JoinNetwork implements types.MsgServer.
func (k msgServer) JoinNetwork(goCtx context.Context, msg *types.MsgJoinNetwork) (*types.MsgJoinNetworkResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)

	node, err := sdk.AccAddressFromBech32(msg.Node)
	if err != nil {
		return nil, err
	}

	if err := k.Keeper.JoinNetwork(ctx, msg.OracleId, node, msg.Collateral); err != nil {
		return nil, err
	}

	oracle, _ := k.GetOracle(ctx, msg.OracleId)
	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeJoinNetwork,
			sdk.NewAttribute(types.AttributeKeyOracleId, strconv.FormatUint(msg.OracleId, 10)),
			sdk.NewAttribute(types.AttributeKeyNode, msg.Node),
			sdk.NewAttribute(types.AttributeKeyCollateral, msg.Collateral.String()),
			sdk.NewAttribute(types.AttributeKeyActiveNodeCount, strconv.FormatUint(oracle.ActiveNodeCount, 10)),
		),
	)

	return &types.MsgJoinNetworkResponse{}, nil
}

// StartRequest implements types.MsgServer.
func (k msgServer) StartRequest(goCtx context.Context, msg *types.MsgStartRequest) (*types.MsgStartRequestResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)

	authority, err := sdk.AccAddressFromBech32(msg.Authority)
	if err != nil {
		return nil, err
	}

	oracle, err := k.Keeper.StartRequest(ctx, msg.OracleId, authority, msg.RevealDuration)
	if err != nil {
		return nil, err
	}

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeStartRequest,
			sdk.NewAttribute(types.AttributeKeyOracleId, strconv.FormatUint(oracle.Id, 10)),
			sdk.NewAttribute(types.AttributeKeyRequestId, strconv.FormatUint(oracle.RequestId, 10)),
			sdk.NewAttribute(types.AttributeKeyRevealDeadline, strconv.FormatInt(oracle.RevealDeadline, 10)),
		),
	)

	return &types.MsgStartRequestResponse{
		RequestId:      oracle.RequestId,
		RevealDeadline: oracle.RevealDeadline,
	}, nil
}

// Commit implements types.MsgServer.
func (k msgServer) Commit(goCtx context.Context, msg *types.MsgCommit) (*types.MsgCommitResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)

	node, err := sdk.AccAddressFromBech32(msg.Node)
	if err != nil {
		return nil, err
	}

	started, err := k.Keeper.Commit(ctx, msg.OracleId, node, msg.Commitment)
	if err != nil {
		return nil, err
	}

	oracle, _ := k.GetOracle(ctx, msg.OracleId)
	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeCommit,
			sdk.NewAttribute(types.AttributeKeyOracleId, strconv.FormatUint(msg.OracleId, 10)),
			sdk.NewAttribute(types.AttributeKeyRequestId, strconv.FormatUint(oracle.RequestId, 10)),
			sdk.NewAttribute(types.AttributeKeyNode, msg.Node),
			sdk.NewAttribute(types.AttributeKeyCommitment, hex.EncodeToString(msg.Commitment)),
		),
	)

	return &types.MsgCommitResponse{RevealStarted: started}, nil
}

// Reveal implements types.MsgServer.
func (k msgServer) Reveal(goCtx context.Context, msg *types.MsgReveal) (*types.MsgRevealResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)

	node, err := sdk.AccAddressFromBech32(msg.Node)
	if err != nil {
		return nil, err
	}

	if err := k.Keeper.Reveal(ctx, msg.OracleId, node, msg.Vote, msg.Nonce); err != nil {
		return nil, err
	}

	oracle, _ := k.GetOracle(ctx, msg.OracleId)
	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeReveal,
			sdk.NewAttribute(types.AttributeKeyOracleId, strconv.FormatUint(msg.OracleId, 10)),
			sdk.NewAttribute(types.AttributeKeyRequestId, strconv.FormatUint(oracle.RequestId, 10)),
			sdk.NewAttribute(types.AttributeKeyNode, msg.Node),
			sdk.NewAttribute(types.AttributeKeyVote, strconv.FormatBool(msg.Vote)),
		),
	)

	return &types.MsgRevealResponse{}, nil
}

// SlashColluding implements types.MsgServer.
func (k msgServer) SlashColluding(goCtx context.Context, msg *types.MsgSlashColluding) (*types.MsgSlashColludingResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)

	slasher, err := sdk.AccAddressFromBech32(msg.Slasher)
	if err != nil {
		return nil, err
	}
	colluding, err := sdk.AccAddressFromBech32(msg.Colluding)
	if err != nil {
		return nil, err
	}

	// node_slashed is emitted by the keeper
	if err := k.Keeper.SlashColluding(ctx, msg.OracleId, slasher, colluding, msg.Vote, msg.Nonce); err != nil {
		return nil, err
	}

	return &types.MsgSlashColludingResponse{}, nil
}

// Resolve implements types.MsgServer.
func (k msgServer) Resolve(goCtx context.Context, msg *types.MsgResolve) (*types.MsgResolveResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)

	authority, err := sdk.AccAddressFromBech32(msg.Authority)
	if err != nil {
		return nil, err
	}

	nodes := make([]sdk.AccAddress, 0, len(msg.NodeList))
	for _, n := range msg.NodeList {
		addr, err := sdk.AccAddressFromBech32(n)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, addr)
	}

	res, err := k.Keeper.Resolve(ctx, msg.OracleId, authority, nodes)
	if err != nil {
		return nil, err
	}

	return &types.MsgResolveResponse{Resolution: res}, nil
}
