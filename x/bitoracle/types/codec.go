package types

import (
	"github.com/cosmos/cosmos-sdk/codec"
	cryptocodec "github.com/cosmos/cosmos-sdk/crypto/codec"
)

var (
	amino = codec.NewLegacyAmino()

	// ModuleCdc encodes messages, stored records and query responses of the
	// module with amino JSON.
	ModuleCdc = amino
)

func init() {
	RegisterLegacyAminoCodec(amino)
	cryptocodec.RegisterCrypto(amino)
	amino.Seal()
}

// RegisterLegacyAminoCodec registers the module's concrete message types.
func RegisterLegacyAminoCodec(cdc *codec.LegacyAmino) {
	cdc.RegisterConcrete(&MsgCreateOracle{}, "bitoracle/MsgCreateOracle", nil)
	cdc.RegisterConcrete(&MsgJoinNetwork{}, "bitoracle/MsgJoinNetwork", nil)
	cdc.RegisterConcrete(&MsgStartRequest{}, "bitoracle/MsgStartRequest", nil)
	cdc.RegisterConcrete(&MsgCommit{}, "bitoracle/MsgCommit", nil)
	cdc.RegisterConcrete(&MsgReveal{}, "bitoracle/MsgReveal", nil)
	cdc.RegisterConcrete(&MsgSlashColluding{}, "bitoracle/MsgSlashColluding", nil)
	cdc.RegisterConcrete(&MsgResolve{}, "bitoracle/MsgResolve", nil)
}
