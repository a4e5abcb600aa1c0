package types

import (
	"fmt"
)

// GenesisState defines the bitoracle module's genesis state.
type GenesisState struct {
	NextOracleId uint64   `json:"next_oracle_id"`
	Oracles      []Oracle `json:"oracles"`
	Nodes        []Node   `json:"nodes"`
}

// NewGenesisState creates a new genesis state.
func NewGenesisState(nextOracleId uint64, oracles []Oracle, nodes []Node) GenesisState {
	return GenesisState{
		NextOracleId: nextOracleId,
		Oracles:      oracles,
		Nodes:        nodes,
	}
}

// DefaultGenesisState returns a default genesis state
func DefaultGenesisState() *GenesisState {
	return &GenesisState{
		NextOracleId: 1,
		Oracles:      []Oracle{},
		Nodes:        []Node{},
	}
}

// Validate performs basic genesis state validation returning an error upon any
// failure.
func (gs GenesisState) Validate() error {
	if gs.NextOracleId == 0 {
		return fmt.Errorf("next oracle id cannot be zero")
	}

	oracles := make(map[uint64]Oracle, len(gs.Oracles))
	for _, oracle := range gs.Oracles {
		if err := oracle.Validate(); err != nil {
			return fmt.Errorf("invalid oracle %d: %w", oracle.Id, err)
		}
		if _, dup := oracles[oracle.Id]; dup {
			return fmt.Errorf("duplicate oracle id %d", oracle.Id)
		}
		if oracle.Id >= gs.NextOracleId {
			return fmt.Errorf("oracle id %d is not below next oracle id %d", oracle.Id, gs.NextOracleId)
		}
		oracles[oracle.Id] = oracle
	}

	active := make(map[uint64]uint64, len(gs.Oracles))
	joined := make(map[uint64]uint64, len(gs.Oracles))
	seen := make(map[string]bool, len(gs.Nodes))
	for _, node := range gs.Nodes {
		if err := node.Validate(); err != nil {
			return fmt.Errorf("invalid node: %w", err)
		}
		oracle, ok := oracles[node.OracleId]
		if !ok {
			return fmt.Errorf("node %s references unknown oracle %d", node.Owner, node.OracleId)
		}
		key := fmt.Sprintf("%d/%s", node.OracleId, node.Owner)
		if seen[key] {
			return fmt.Errorf("duplicate node %s", key)
		}
		seen[key] = true
		if node.Joined {
			joined[node.OracleId]++
		}
		if node.IsActive() {
			if !node.Stake.Equal(oracle.RequiredCollateral.Amount) {
				return fmt.Errorf("active node %s stake %s differs from required collateral %s", key, node.Stake, oracle.RequiredCollateral.Amount)
			}
			active[node.OracleId]++
		}
	}

	for id, oracle := range oracles {
		if active[id] != oracle.ActiveNodeCount {
			return fmt.Errorf("oracle %d active node count %d does not match %d active nodes", id, oracle.ActiveNodeCount, active[id])
		}
		if joined[id] != oracle.TotalNodes {
			return fmt.Errorf("oracle %d total node count %d does not match %d joined nodes", id, oracle.TotalNodes, joined[id])
		}
	}

	return nil
}
