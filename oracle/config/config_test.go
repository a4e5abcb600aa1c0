package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/GPTx-global/bitoracle/x/bitoracle/types"
)

func TestLoadCreatesDefault(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "home")

	require.NoError(t, Load(dir))
	require.FileExists(t, filepath.Join(dir, FileName))
	require.Equal(t, dir, Home())

	cfg := Get()
	require.Equal(t, DefaultConfig(), cfg)
	require.Equal(t, 5*time.Second, cfg.BlockTime())
	require.Equal(t, time.Minute, cfg.RevealDuration())
	require.Equal(t, "100stake", cfg.Collateral().String())
	require.Equal(t, types.TieBreakFalse, cfg.TieBreak())
}

func TestLoadExistingFile(t *testing.T) {
	dir := t.TempDir()
	content := `
[chain]
id = "local-1"
denom = "uatom"
block_time = "1s"

[oracle]
collateral = "10uatom"
max_nodes = 3
tie_break = "true"
reveal_duration = "30s"
rounds = 2

[[nodes]]
name = "a"
balance = "100uatom"
vote = true
commit = true
reveal = true

[[nodes]]
name = "b"
balance = "100uatom"
commit = true
leak_to = "a"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0644))
	require.NoError(t, Load(dir))

	cfg := Get()
	require.Equal(t, "local-1", cfg.Chain.ID)
	require.Equal(t, uint64(3), cfg.Oracle.MaxNodes)
	require.Equal(t, 2, cfg.Oracle.Rounds)
	require.Len(t, cfg.Nodes, 2)
	require.Equal(t, "a", cfg.Nodes[1].LeakTo)
	require.Equal(t, types.TieBreakTrue, cfg.TieBreak())
	require.Equal(t, 30*time.Second, cfg.RevealDuration())
	require.Equal(t, time.Second, cfg.BlockTime())
}

func TestLoadRejectsInvalidFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte("[chain\n"), 0644))
	require.Error(t, Load(dir))
}

func TestGetReturnsCopy(t *testing.T) {
	SetForTesting(DefaultConfig())
	cfg := Get()
	cfg.Nodes[0].Name = "mallory"
	require.Equal(t, "alice", Get().Nodes[0].Name)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*ConfigData)
	}{
		{"missing chain id", func(c *ConfigData) { c.Chain.ID = "" }},
		{"bad denom", func(c *ConfigData) { c.Chain.Denom = "1" }},
		{"zero block time", func(c *ConfigData) { c.Chain.BlockTime = "0s" }},
		{"collateral denom mismatch", func(c *ConfigData) { c.Oracle.Collateral = "5atom" }},
		{"zero collateral", func(c *ConfigData) { c.Oracle.Collateral = "0stake" }},
		{"bad tie break", func(c *ConfigData) { c.Oracle.TieBreak = "coin-flip" }},
		{"sub-second reveal window", func(c *ConfigData) { c.Oracle.RevealDuration = "500ms" }},
		{"no rounds", func(c *ConfigData) { c.Oracle.Rounds = 0 }},
		{"no nodes", func(c *ConfigData) { c.Nodes = nil }},
		{"duplicate node", func(c *ConfigData) { c.Nodes[1].Name = c.Nodes[0].Name }},
		{"reveal without commit", func(c *ConfigData) { c.Nodes[0].Commit = false }},
		{"leak to self", func(c *ConfigData) { c.Nodes[4].LeakTo = c.Nodes[4].Name }},
		{"leak to unknown", func(c *ConfigData) { c.Nodes[4].LeakTo = "zed" }},
		{"bad balance", func(c *ConfigData) { c.Nodes[0].Balance = "lots" }},
	}

	require.NoError(t, DefaultConfig().Validate())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)
			require.Error(t, cfg.Validate())
		})
	}
}
