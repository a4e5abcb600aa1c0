package types

// bitoracle module event types
const (
	EventTypeCreateOracle = "create_oracle"
	EventTypeJoinNetwork  = "join_network"
	EventTypeStartRequest = "start_request"
	EventTypeCommit       = "commit"
	EventTypePhaseReveal  = "phase_reveal"
	EventTypeReveal       = "reveal"
	EventTypeNodeSlashed  = "node_slashed"
	EventTypeResolve      = "resolve"
	EventTypePayout       = "payout"
)

// Event attribute keys
const (
	AttributeKeyOracleId        = "oracle_id"
	AttributeKeyRequestId       = "request_id"
	AttributeKeyAuthority       = "authority"
	AttributeKeyCollateral      = "collateral"
	AttributeKeyMaxNodes        = "max_nodes"
	AttributeKeyTieBreak        = "tie_break"
	AttributeKeyEscrow          = "escrow"
	AttributeKeyNode            = "node"
	AttributeKeySlasher         = "slasher"
	AttributeKeyRevealDeadline  = "reveal_deadline"
	AttributeKeyCommitment      = "commitment"
	AttributeKeyVote            = "vote"
	AttributeKeyAmount          = "amount"
	AttributeKeyResolutionBit   = "resolution_bit"
	AttributeKeyCountTrue       = "count_true"
	AttributeKeyCountFalse      = "count_false"
	AttributeKeyForfeited       = "forfeited"
	AttributeKeyResidual        = "residual"
	AttributeKeyActiveNodeCount = "active_node_count"
)
