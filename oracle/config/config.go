package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/pelletier/go-toml/v2"

	"github.com/GPTx-global/bitoracle/oracle/log"
	"github.com/GPTx-global/bitoracle/x/bitoracle/types"
)

const FileName = "config.toml"

var (
	globalConfig ConfigData
	home         string
	mu           sync.Mutex
)

// ConfigData is the simulation scenario run by bitoracled simulate.
type ConfigData struct {
	Chain  ChainConfig  `toml:"chain"`
	Oracle OracleConfig `toml:"oracle"`
	Nodes  []NodeConfig `toml:"nodes"`
}

type ChainConfig struct {
	ID        string `toml:"id"`
	Denom     string `toml:"denom"`
	BlockTime string `toml:"block_time"`
}

type OracleConfig struct {
	Collateral     string `toml:"collateral"`
	MaxNodes       uint64 `toml:"max_nodes"`
	TieBreak       string `toml:"tie_break"`
	RevealDuration string `toml:"reveal_duration"`
	Rounds         int    `toml:"rounds"`
}

// NodeConfig describes one participant. LeakTo names the node that learns
// this node's secret and slashes it before the reveal.
type NodeConfig struct {
	Name    string `toml:"name"`
	Balance string `toml:"balance"`
	Vote    bool   `toml:"vote"`
	Commit  bool   `toml:"commit"`
	Reveal  bool   `toml:"reveal"`
	LeakTo  string `toml:"leak_to,omitempty"`
}

// Load reads <home>/config.toml, writing the default scenario first when the
// file does not exist.
func Load(dir string) error {
	mu.Lock()
	defer mu.Unlock()

	home = dir
	path := filepath.Join(dir, FileName)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := createDefaultConfig(path); err != nil {
			return fmt.Errorf("failed to create default config: %w", err)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg ConfigData
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return fmt.Errorf("failed to parse TOML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	globalConfig = cfg
	log.Infof("Loaded config from %s", path)
	return nil
}

// DefaultConfig is a five node round where one node leaks its secret and
// the remaining votes split three to one.
func DefaultConfig() ConfigData {
	return ConfigData{
		Chain: ChainConfig{
			ID:        "bitoracle-sim-1",
			Denom:     "stake",
			BlockTime: "5s",
		},
		Oracle: OracleConfig{
			Collateral:     "100stake",
			MaxNodes:       0,
			TieBreak:       types.TieBreakFalse.String(),
			RevealDuration: "60s",
			Rounds:         1,
		},
		Nodes: []NodeConfig{
			{Name: "alice", Balance: "1000stake", Vote: true, Commit: true, Reveal: true},
			{Name: "bob", Balance: "1000stake", Vote: true, Commit: true, Reveal: true},
			{Name: "carol", Balance: "1000stake", Vote: true, Commit: true, Reveal: true},
			{Name: "dave", Balance: "1000stake", Vote: false, Commit: true, Reveal: true},
			{Name: "erin", Balance: "1000stake", Vote: false, Commit: true, Reveal: false, LeakTo: "alice"},
		},
	}
}

func createDefaultConfig(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	data, err := toml.Marshal(DefaultConfig())
	if err != nil {
		return fmt.Errorf("failed to marshal TOML: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks that the scenario can be executed.
func (c ConfigData) Validate() error {
	if c.Chain.ID == "" {
		return fmt.Errorf("chain ID is required")
	}
	if err := sdk.ValidateDenom(c.Chain.Denom); err != nil {
		return fmt.Errorf("invalid denom: %w", err)
	}
	if d, err := time.ParseDuration(c.Chain.BlockTime); err != nil || d <= 0 {
		return fmt.Errorf("block time must be a positive duration, got %q", c.Chain.BlockTime)
	}

	collateral, err := sdk.ParseCoinNormalized(c.Oracle.Collateral)
	if err != nil {
		return fmt.Errorf("invalid collateral: %w", err)
	}
	if err := types.ValidateCollateral(collateral); err != nil {
		return err
	}
	if collateral.Denom != c.Chain.Denom {
		return fmt.Errorf("collateral denom %s differs from chain denom %s", collateral.Denom, c.Chain.Denom)
	}
	if _, err := types.ParseTieBreakPolicy(c.Oracle.TieBreak); err != nil {
		return err
	}
	if d, err := time.ParseDuration(c.Oracle.RevealDuration); err != nil || d < time.Second {
		return fmt.Errorf("reveal duration must be at least one second, got %q", c.Oracle.RevealDuration)
	}
	if c.Oracle.Rounds <= 0 {
		return fmt.Errorf("rounds must be positive")
	}

	if len(c.Nodes) == 0 {
		return fmt.Errorf("at least one node is required")
	}
	names := make(map[string]bool, len(c.Nodes))
	for _, n := range c.Nodes {
		if n.Name == "" {
			return fmt.Errorf("node name is required")
		}
		if names[n.Name] {
			return fmt.Errorf("duplicate node %s", n.Name)
		}
		names[n.Name] = true
		if _, err := sdk.ParseCoinsNormalized(n.Balance); err != nil {
			return fmt.Errorf("node %s: invalid balance: %w", n.Name, err)
		}
		if n.Reveal && !n.Commit {
			return fmt.Errorf("node %s reveals without committing", n.Name)
		}
	}
	for _, n := range c.Nodes {
		if n.LeakTo == "" {
			continue
		}
		if n.LeakTo == n.Name {
			return fmt.Errorf("node %s cannot leak to itself", n.Name)
		}
		if !names[n.LeakTo] {
			return fmt.Errorf("node %s leaks to unknown node %s", n.Name, n.LeakTo)
		}
		if !n.Commit {
			return fmt.Errorf("node %s leaks a secret it never committed", n.Name)
		}
	}

	return nil
}

func Print() {
	cfg := Get()
	log.Infof("%-15s: %s", "Home", Home())
	log.Infof("%-15s: %s", "Chain ID", cfg.Chain.ID)
	log.Infof("%-15s: %s", "Block Time", cfg.Chain.BlockTime)
	log.Infof("%-15s: %s", "Collateral", cfg.Oracle.Collateral)
	log.Infof("%-15s: %d", "Max Nodes", cfg.Oracle.MaxNodes)
	log.Infof("%-15s: %s", "Tie Break", cfg.Oracle.TieBreak)
	log.Infof("%-15s: %s", "Reveal Window", cfg.Oracle.RevealDuration)
	log.Infof("%-15s: %d", "Rounds", cfg.Oracle.Rounds)
	for _, n := range cfg.Nodes {
		log.Infof("%-15s: vote=%t commit=%t reveal=%t leak_to=%q balance=%s", n.Name, n.Vote, n.Commit, n.Reveal, n.LeakTo, n.Balance)
	}
}

func Home() string {
	mu.Lock()
	defer mu.Unlock()

	return home
}

// Get returns a copy of the loaded configuration.
func Get() ConfigData {
	mu.Lock()
	defer mu.Unlock()

	cfg := globalConfig
	cfg.Nodes = append([]NodeConfig(nil), globalConfig.Nodes...)
	return cfg
}

// BlockTime is the clock advance between simulated blocks. It is zero for
// a configuration that does not pass Validate.
func (c ConfigData) BlockTime() time.Duration {
	d, _ := time.ParseDuration(c.Chain.BlockTime)
	return d
}

func (c ConfigData) RevealDuration() time.Duration {
	d, _ := time.ParseDuration(c.Oracle.RevealDuration)
	return d
}

func (c ConfigData) Collateral() sdk.Coin {
	coin, _ := sdk.ParseCoinNormalized(c.Oracle.Collateral)
	return coin
}

func (c ConfigData) TieBreak() types.TieBreakPolicy {
	policy, _ := types.ParseTieBreakPolicy(c.Oracle.TieBreak)
	return policy
}

func SetForTesting(cfg ConfigData) {
	mu.Lock()
	defer mu.Unlock()

	globalConfig = cfg
}
