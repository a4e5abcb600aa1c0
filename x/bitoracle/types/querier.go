package types

// query endpoints supported by the bitoracle legacy querier
const (
	QueryOracle        = "oracle"
	QueryOracles       = "oracles"
	QueryNode          = "node"
	QueryNodes         = "nodes"
	QueryCalculateHash = "calculate-hash"
)

// QueryOracleParams selects one oracle.
type QueryOracleParams struct {
	OracleId uint64 `json:"oracle_id"`
}

// QueryNodeParams selects one node of an oracle.
type QueryNodeParams struct {
	OracleId uint64 `json:"oracle_id"`
	Node     string `json:"node"`
}

// QueryCalculateHashParams is the input of the commitment view.
type QueryCalculateHashParams struct {
	Vote  bool   `json:"vote"`
	Nonce []byte `json:"nonce"`
}

// QueryOracleResponse reports an oracle together with the phase observed at
// query time and the escrow balance.
type QueryOracleResponse struct {
	Oracle         Oracle `json:"oracle"`
	EffectivePhase string `json:"effective_phase"`
	Escrow         string `json:"escrow"`
}

// QueryCalculateHashResponse carries a commitment digest.
type QueryCalculateHashResponse struct {
	Commitment []byte `json:"commitment"`
}
