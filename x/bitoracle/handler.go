package bitoracle

import (
	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	"github.com/GPTx-global/bitoracle/x/bitoracle/types"
)

// NewHandler creates a new handler for bitoracle messages
func NewHandler(msgServer types.MsgServer) sdk.Handler {
	return func(ctx sdk.Context, msg sdk.Msg) (*sdk.Result, error) {
		ctx = ctx.WithEventManager(sdk.NewEventManager())
		goCtx := sdk.WrapSDKContext(ctx)

		var (
			res interface{}
			err error
		)
		switch msg := msg.(type) {
		case *types.MsgCreateOracle:
			res, err = msgServer.CreateOracle(goCtx, msg)

		case *types.MsgJoinNetwork:
			res, err = msgServer.JoinNetwork(goCtx, msg)

		case *types.MsgStartRequest:
			res, err = msgServer.StartRequest(goCtx, msg)

		case *types.MsgCommit:
			res, err = msgServer.Commit(goCtx, msg)

		case *types.MsgReveal:
			res, err = msgServer.Reveal(goCtx, msg)

		case *types.MsgSlashColluding:
			res, err = msgServer.SlashColluding(goCtx, msg)

		case *types.MsgResolve:
			res, err = msgServer.Resolve(goCtx, msg)

		default:
			err := errorsmod.Wrapf(sdkerrors.ErrUnknownRequest, "unrecognized %s message type: %T", types.ModuleName, msg)
			return nil, err
		}
		if err != nil {
			return nil, err
		}

		// responses are amino JSON encoded, the module has no protobuf types
		return &sdk.Result{
			Data:   types.ModuleCdc.MustMarshalJSON(res),
			Events: ctx.EventManager().ABCIEvents(),
		}, nil
	}
}
