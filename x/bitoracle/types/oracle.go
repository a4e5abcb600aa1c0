package types

import (
	"fmt"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Oracle is one deployed binary oracle and the state of its current request.
type Oracle struct {
	Id                 uint64         `json:"id"`
	Authority          string         `json:"authority"`
	RequiredCollateral sdk.Coin       `json:"required_collateral"`
	MaxNodes           uint64         `json:"max_nodes"`
	TieBreak           TieBreakPolicy `json:"tie_break"`

	Phase          Phase  `json:"phase"`
	RequestId      uint64 `json:"request_id"`
	RevealDeadline int64  `json:"reveal_deadline"` // unix seconds

	ActiveCommitCount uint64 `json:"active_commit_count"`
	ActiveNodeCount   uint64 `json:"active_node_count"`
	// TotalNodes counts every join, slashed nodes included. MaxNodes caps it.
	TotalNodes uint64 `json:"total_nodes"`

	IsResolved    bool `json:"is_resolved"`
	ResolutionBit bool `json:"resolution_bit"`

	// Residual is the rounding remainder of past payouts that stays in escrow.
	Residual math.Int `json:"residual"`
}

// NewOracle returns an idle oracle.
func NewOracle(id uint64, authority string, collateral sdk.Coin, maxNodes uint64, tieBreak TieBreakPolicy) Oracle {
	return Oracle{
		Id:                 id,
		Authority:          authority,
		RequiredCollateral: collateral,
		MaxNodes:           maxNodes,
		TieBreak:           tieBreak,
		Phase:              PhaseIdle,
		Residual:           math.ZeroInt(),
	}
}

// Validate performs basic validation on an Oracle
func (o Oracle) Validate() error {
	if o.Id == 0 {
		return fmt.Errorf("oracle id cannot be zero")
	}
	if _, err := sdk.AccAddressFromBech32(o.Authority); err != nil {
		return fmt.Errorf("invalid authority address: %w", err)
	}
	if err := ValidateCollateral(o.RequiredCollateral); err != nil {
		return err
	}
	if err := o.TieBreak.Validate(); err != nil {
		return err
	}
	if !o.Phase.IsValid() {
		return fmt.Errorf("invalid phase %d", int32(o.Phase))
	}
	if o.ActiveCommitCount > o.ActiveNodeCount {
		return fmt.Errorf("active commit count %d exceeds active node count %d", o.ActiveCommitCount, o.ActiveNodeCount)
	}
	if o.ActiveNodeCount > o.TotalNodes {
		return fmt.Errorf("active node count %d exceeds total node count %d", o.ActiveNodeCount, o.TotalNodes)
	}
	if o.MaxNodes != 0 && o.TotalNodes > o.MaxNodes {
		return fmt.Errorf("total node count %d exceeds max nodes %d", o.TotalNodes, o.MaxNodes)
	}
	if o.Residual.IsNil() || o.Residual.IsNegative() {
		return fmt.Errorf("residual must be non-negative")
	}
	return nil
}

// ValidateCollateral checks that a stake coin is valid and positive.
func ValidateCollateral(coin sdk.Coin) error {
	if err := coin.Validate(); err != nil {
		return errorsmod.Wrapf(ErrInvalidCollateral, "%v", err)
	}
	if !coin.IsPositive() {
		return errorsmod.Wrapf(ErrInvalidCollateral, "collateral must be positive, got %s", coin)
	}
	return nil
}

// EffectivePhase is the phase observed at time now. A commit window whose
// reveal deadline has passed is treated as Reveal so that the round can be
// resolved even if some active node never committed.
func (o Oracle) EffectivePhase(now int64) Phase {
	if o.Phase == PhaseCommit && now > o.RevealDeadline {
		return PhaseReveal
	}
	return o.Phase
}

// AllCommitted reports whether every active node holds a commitment for the
// current request.
func (o Oracle) AllCommitted() bool {
	return o.ActiveNodeCount > 0 && o.ActiveCommitCount == o.ActiveNodeCount
}

func (o Oracle) Escrow() sdk.AccAddress {
	return EscrowAddress(o.Id)
}

// Node is a participant's membership record on one oracle.
type Node struct {
	OracleId uint64   `json:"oracle_id"`
	Owner    string   `json:"owner"`
	Joined   bool     `json:"joined"`
	Slashed  bool     `json:"slashed"`
	Stake    math.Int `json:"stake"`

	Commitment      []byte `json:"commitment,omitempty"`
	CommitRequestId uint64 `json:"commit_request_id"`

	Revealed      bool   `json:"revealed"`
	RevealedVote  bool   `json:"revealed_vote"`
	RevealedNonce []byte `json:"revealed_nonce,omitempty"`
}

// IsActive reports whether the node may take part in rounds.
func (n Node) IsActive() bool {
	return n.Joined && !n.Slashed
}

// HasLiveCommitment reports whether the node committed for requestId.
// Commitments bound to earlier requests are treated as absent.
func (n Node) HasLiveCommitment(requestId uint64) bool {
	return requestId != 0 && n.CommitRequestId == requestId && len(n.Commitment) > 0
}

// HasRevealed reports whether the node revealed for requestId.
func (n Node) HasRevealed(requestId uint64) bool {
	return n.HasLiveCommitment(requestId) && n.Revealed
}

func (n Node) OwnerAddress() sdk.AccAddress {
	return sdk.MustAccAddressFromBech32(n.Owner)
}

// Validate performs basic validation on a Node
func (n Node) Validate() error {
	if n.OracleId == 0 {
		return fmt.Errorf("node oracle id cannot be zero")
	}
	if _, err := sdk.AccAddressFromBech32(n.Owner); err != nil {
		return fmt.Errorf("invalid node owner address: %w", err)
	}
	if n.Stake.IsNil() || n.Stake.IsNegative() {
		return fmt.Errorf("node %s stake must be non-negative", n.Owner)
	}
	if n.Slashed && !n.Stake.IsZero() {
		return fmt.Errorf("slashed node %s still holds stake %s", n.Owner, n.Stake)
	}
	if len(n.Commitment) > 0 {
		if err := ValidateDigest(n.Commitment); err != nil {
			return err
		}
	}
	if n.Revealed && !VerifyCommitment(n.Commitment, n.RevealedVote, n.RevealedNonce) {
		return fmt.Errorf("node %s revealed vote does not open its commitment", n.Owner)
	}
	return nil
}

// Resolution summarises one settled request.
type Resolution struct {
	OracleId      uint64   `json:"oracle_id"`
	RequestId     uint64   `json:"request_id"`
	ResolutionBit bool     `json:"resolution_bit"`
	CountTrue     uint64   `json:"count_true"`
	CountFalse    uint64   `json:"count_false"`
	Forfeited     math.Int `json:"forfeited"`
	RewardPerNode math.Int `json:"reward_per_node"`
	Remainder     math.Int `json:"remainder"`
	Winners       []string `json:"winners"`
	Losers        []string `json:"losers"`
}
