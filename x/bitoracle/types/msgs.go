package types

import (
	"context"

	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	"github.com/cosmos/cosmos-sdk/x/auth/migrations/legacytx"
)

var (
	_ sdk.Msg = &MsgCreateOracle{}
	_ sdk.Msg = &MsgJoinNetwork{}
	_ sdk.Msg = &MsgStartRequest{}
	_ sdk.Msg = &MsgCommit{}
	_ sdk.Msg = &MsgReveal{}
	_ sdk.Msg = &MsgSlashColluding{}
	_ sdk.Msg = &MsgResolve{}

	_ legacytx.LegacyMsg = &MsgCommit{}
)

// MsgServer is the server API for the bitoracle messages.
type MsgServer interface {
	CreateOracle(context.Context, *MsgCreateOracle) (*MsgCreateOracleResponse, error)
	JoinNetwork(context.Context, *MsgJoinNetwork) (*MsgJoinNetworkResponse, error)
	StartRequest(context.Context, *MsgStartRequest) (*MsgStartRequestResponse, error)
	Commit(context.Context, *MsgCommit) (*MsgCommitResponse, error)
	Reveal(context.Context, *MsgReveal) (*MsgRevealResponse, error)
	SlashColluding(context.Context, *MsgSlashColluding) (*MsgSlashColludingResponse, error)
	Resolve(context.Context, *MsgResolve) (*MsgResolveResponse, error)
}

func mustSigner(addr string) []sdk.AccAddress {
	signer, err := sdk.AccAddressFromBech32(addr)
	if err != nil {
		panic(err)
	}
	return []sdk.AccAddress{signer}
}

func validateAddress(field, addr string) error {
	if _, err := sdk.AccAddressFromBech32(addr); err != nil {
		return errorsmod.Wrapf(sdkerrors.ErrInvalidAddress, "invalid %s address (%s)", field, err)
	}
	return nil
}

func validateOracleId(id uint64) error {
	if id == 0 {
		return errorsmod.Wrap(sdkerrors.ErrInvalidRequest, "oracle ID cannot be zero")
	}
	return nil
}

func signBytes(msg sdk.Msg) []byte {
	return sdk.MustSortJSON(ModuleCdc.MustMarshalJSON(msg))
}

// MsgCreateOracle deploys a new oracle instance.
type MsgCreateOracle struct {
	Authority          string         `json:"authority"`
	RequiredCollateral sdk.Coin       `json:"required_collateral"`
	MaxNodes           uint64         `json:"max_nodes"`
	TieBreak           TieBreakPolicy `json:"tie_break"`
}

type MsgCreateOracleResponse struct {
	OracleId uint64 `json:"oracle_id"`
}

// NewMsgCreateOracle creates a new MsgCreateOracle instance
func NewMsgCreateOracle(authority sdk.AccAddress, collateral sdk.Coin, maxNodes uint64, tieBreak TieBreakPolicy) *MsgCreateOracle {
	return &MsgCreateOracle{
		Authority:          authority.String(),
		RequiredCollateral: collateral,
		MaxNodes:           maxNodes,
		TieBreak:           tieBreak,
	}
}

func (msg *MsgCreateOracle) Reset()         { *msg = MsgCreateOracle{} }
func (msg *MsgCreateOracle) String() string { return string(signBytes(msg)) }
func (*MsgCreateOracle) ProtoMessage()      {}

// Route implements the sdk.Msg interface
func (msg MsgCreateOracle) Route() string { return RouterKey }

// Type implements the sdk.Msg interface
func (msg MsgCreateOracle) Type() string { return "create_oracle" }

// GetSigners implements the sdk.Msg interface
func (msg MsgCreateOracle) GetSigners() []sdk.AccAddress { return mustSigner(msg.Authority) }

// GetSignBytes implements the sdk.Msg interface
func (msg MsgCreateOracle) GetSignBytes() []byte { return signBytes(&msg) }

// ValidateBasic implements the sdk.Msg interface
func (msg MsgCreateOracle) ValidateBasic() error {
	if err := validateAddress("authority", msg.Authority); err != nil {
		return err
	}
	if err := ValidateCollateral(msg.RequiredCollateral); err != nil {
		return err
	}
	return msg.TieBreak.Validate()
}

// MsgJoinNetwork posts collateral and registers the signer as a node.
type MsgJoinNetwork struct {
	OracleId   uint64   `json:"oracle_id"`
	Node       string   `json:"node"`
	Collateral sdk.Coin `json:"collateral"`
}

type MsgJoinNetworkResponse struct{}

// NewMsgJoinNetwork creates a new MsgJoinNetwork instance
func NewMsgJoinNetwork(oracleId uint64, node sdk.AccAddress, collateral sdk.Coin) *MsgJoinNetwork {
	return &MsgJoinNetwork{OracleId: oracleId, Node: node.String(), Collateral: collateral}
}

func (msg *MsgJoinNetwork) Reset()         { *msg = MsgJoinNetwork{} }
func (msg *MsgJoinNetwork) String() string { return string(signBytes(msg)) }
func (*MsgJoinNetwork) ProtoMessage()      {}

func (msg MsgJoinNetwork) Route() string                { return RouterKey }
func (msg MsgJoinNetwork) Type() string                 { return "join_network" }
func (msg MsgJoinNetwork) GetSigners() []sdk.AccAddress { return mustSigner(msg.Node) }
func (msg MsgJoinNetwork) GetSignBytes() []byte         { return signBytes(&msg) }

func (msg MsgJoinNetwork) ValidateBasic() error {
	if err := validateOracleId(msg.OracleId); err != nil {
		return err
	}
	if err := validateAddress("node", msg.Node); err != nil {
		return err
	}
	if err := msg.Collateral.Validate(); err != nil {
		return errorsmod.Wrapf(ErrInvalidCollateral, "%v", err)
	}
	return nil
}

// MsgStartRequest opens a new commit round.
type MsgStartRequest struct {
	OracleId       uint64 `json:"oracle_id"`
	Authority      string `json:"authority"`
	RevealDuration int64  `json:"reveal_duration"` // seconds
}

type MsgStartRequestResponse struct {
	RequestId      uint64 `json:"request_id"`
	RevealDeadline int64  `json:"reveal_deadline"`
}

// NewMsgStartRequest creates a new MsgStartRequest instance
func NewMsgStartRequest(oracleId uint64, authority sdk.AccAddress, revealDuration int64) *MsgStartRequest {
	return &MsgStartRequest{OracleId: oracleId, Authority: authority.String(), RevealDuration: revealDuration}
}

func (msg *MsgStartRequest) Reset()         { *msg = MsgStartRequest{} }
func (msg *MsgStartRequest) String() string { return string(signBytes(msg)) }
func (*MsgStartRequest) ProtoMessage()      {}

func (msg MsgStartRequest) Route() string                { return RouterKey }
func (msg MsgStartRequest) Type() string                 { return "start_request" }
func (msg MsgStartRequest) GetSigners() []sdk.AccAddress { return mustSigner(msg.Authority) }
func (msg MsgStartRequest) GetSignBytes() []byte         { return signBytes(&msg) }

func (msg MsgStartRequest) ValidateBasic() error {
	if err := validateOracleId(msg.OracleId); err != nil {
		return err
	}
	if err := validateAddress("authority", msg.Authority); err != nil {
		return err
	}
	if msg.RevealDuration <= 0 {
		return errorsmod.Wrapf(ErrInvalidDuration, "reveal duration must be positive, got %d", msg.RevealDuration)
	}
	return nil
}

// MsgCommit records a node's vote digest for the current request.
type MsgCommit struct {
	OracleId   uint64 `json:"oracle_id"`
	Node       string `json:"node"`
	Commitment []byte `json:"commitment"`
}

type MsgCommitResponse struct {
	// RevealStarted is set when this commit completed the round.
	RevealStarted bool `json:"reveal_started"`
}

// NewMsgCommit creates a new MsgCommit instance
func NewMsgCommit(oracleId uint64, node sdk.AccAddress, commitment []byte) *MsgCommit {
	return &MsgCommit{OracleId: oracleId, Node: node.String(), Commitment: commitment}
}

func (msg *MsgCommit) Reset()         { *msg = MsgCommit{} }
func (msg *MsgCommit) String() string { return string(signBytes(msg)) }
func (*MsgCommit) ProtoMessage()      {}

func (msg MsgCommit) Route() string                { return RouterKey }
func (msg MsgCommit) Type() string                 { return "commit" }
func (msg MsgCommit) GetSigners() []sdk.AccAddress { return mustSigner(msg.Node) }
func (msg MsgCommit) GetSignBytes() []byte         { return signBytes(&msg) }

func (msg MsgCommit) ValidateBasic() error {
	if err := validateOracleId(msg.OracleId); err != nil {
		return err
	}
	if err := validateAddress("node", msg.Node); err != nil {
		return err
	}
	return ValidateDigest(msg.Commitment)
}

// MsgReveal opens a node's commitment.
type MsgReveal struct {
	OracleId uint64 `json:"oracle_id"`
	Node     string `json:"node"`
	Vote     bool   `json:"vote"`
	Nonce    []byte `json:"nonce"`
}

type MsgRevealResponse struct{}

// NewMsgReveal creates a new MsgReveal instance
func NewMsgReveal(oracleId uint64, node sdk.AccAddress, vote bool, nonce []byte) *MsgReveal {
	return &MsgReveal{OracleId: oracleId, Node: node.String(), Vote: vote, Nonce: nonce}
}

func (msg *MsgReveal) Reset()         { *msg = MsgReveal{} }
func (msg *MsgReveal) String() string { return string(signBytes(msg)) }
func (*MsgReveal) ProtoMessage()      {}

func (msg MsgReveal) Route() string                { return RouterKey }
func (msg MsgReveal) Type() string                 { return "reveal" }
func (msg MsgReveal) GetSigners() []sdk.AccAddress { return mustSigner(msg.Node) }
func (msg MsgReveal) GetSignBytes() []byte         { return signBytes(&msg) }

func (msg MsgReveal) ValidateBasic() error {
	if err := validateOracleId(msg.OracleId); err != nil {
		return err
	}
	if err := validateAddress("node", msg.Node); err != nil {
		return err
	}
	if len(msg.Nonce) != NonceLength {
		return errorsmod.Wrapf(ErrInvalidNonce, "expected %d bytes, got %d", NonceLength, len(msg.Nonce))
	}
	return nil
}

// MsgSlashColluding proves that the slasher knows another node's unrevealed
// vote and nonce.
type MsgSlashColluding struct {
	OracleId  uint64 `json:"oracle_id"`
	Slasher   string `json:"slasher"`
	Colluding string `json:"colluding"`
	Vote      bool   `json:"vote"`
	Nonce     []byte `json:"nonce"`
}

type MsgSlashColludingResponse struct{}

// NewMsgSlashColluding creates a new MsgSlashColluding instance
func NewMsgSlashColluding(oracleId uint64, slasher, colluding sdk.AccAddress, vote bool, nonce []byte) *MsgSlashColluding {
	return &MsgSlashColluding{
		OracleId:  oracleId,
		Slasher:   slasher.String(),
		Colluding: colluding.String(),
		Vote:      vote,
		Nonce:     nonce,
	}
}

func (msg *MsgSlashColluding) Reset()         { *msg = MsgSlashColluding{} }
func (msg *MsgSlashColluding) String() string { return string(signBytes(msg)) }
func (*MsgSlashColluding) ProtoMessage()      {}

func (msg MsgSlashColluding) Route() string                { return RouterKey }
func (msg MsgSlashColluding) Type() string                 { return "slash_colluding" }
func (msg MsgSlashColluding) GetSigners() []sdk.AccAddress { return mustSigner(msg.Slasher) }
func (msg MsgSlashColluding) GetSignBytes() []byte         { return signBytes(&msg) }

func (msg MsgSlashColluding) ValidateBasic() error {
	if err := validateOracleId(msg.OracleId); err != nil {
		return err
	}
	if err := validateAddress("slasher", msg.Slasher); err != nil {
		return err
	}
	if err := validateAddress("colluding", msg.Colluding); err != nil {
		return err
	}
	if msg.Slasher == msg.Colluding {
		return ErrSelfSlash
	}
	if len(msg.Nonce) != NonceLength {
		return errorsmod.Wrapf(ErrInvalidNonce, "expected %d bytes, got %d", NonceLength, len(msg.Nonce))
	}
	return nil
}

// MsgResolve settles the current request. An empty NodeList settles every
// node registered on the oracle.
type MsgResolve struct {
	OracleId  uint64   `json:"oracle_id"`
	Authority string   `json:"authority"`
	NodeList  []string `json:"node_list"`
}

type MsgResolveResponse struct {
	Resolution Resolution `json:"resolution"`
}

// NewMsgResolve creates a new MsgResolve instance
func NewMsgResolve(oracleId uint64, authority sdk.AccAddress, nodes []sdk.AccAddress) *MsgResolve {
	list := make([]string, 0, len(nodes))
	for _, node := range nodes {
		list = append(list, node.String())
	}
	return &MsgResolve{OracleId: oracleId, Authority: authority.String(), NodeList: list}
}

func (msg *MsgResolve) Reset()         { *msg = MsgResolve{} }
func (msg *MsgResolve) String() string { return string(signBytes(msg)) }
func (*MsgResolve) ProtoMessage()      {}

func (msg MsgResolve) Route() string                { return RouterKey }
func (msg MsgResolve) Type() string                 { return "resolve" }
func (msg MsgResolve) GetSigners() []sdk.AccAddress { return mustSigner(msg.Authority) }
func (msg MsgResolve) GetSignBytes() []byte         { return signBytes(&msg) }

func (msg MsgResolve) ValidateBasic() error {
	if err := validateOracleId(msg.OracleId); err != nil {
		return err
	}
	if err := validateAddress("authority", msg.Authority); err != nil {
		return err
	}
	for _, node := range msg.NodeList {
		if err := validateAddress("node", node); err != nil {
			return err
		}
	}
	return nil
}
