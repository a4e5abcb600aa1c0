package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/stretchr/testify/require"

	"github.com/GPTx-global/bitoracle/x/bitoracle/types"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestHashCmd(t *testing.T) {
	nonce := bytes.Repeat([]byte{0x07}, types.NonceLength)
	out, err := execute(t, "hash", "true", "0x0707070707070707070707070707070707070707070707070707070707070707", "--log_level", "none")
	require.NoError(t, err)

	want := types.MustCalculateHash(true, nonce)
	require.Equal(t, hexutil.Encode(want), strings.TrimSpace(out))
}

func TestHashCmdRejectsShortNonce(t *testing.T) {
	_, err := execute(t, "hash", "false", "0x0102", "--log_level", "none")
	require.Error(t, err)
}

func TestNonceCmd(t *testing.T) {
	out, err := execute(t, "nonce", "--log_level", "none")
	require.NoError(t, err)

	out = strings.TrimSpace(out)
	require.True(t, strings.HasPrefix(out, "0x"))
	require.Len(t, out, 2+2*types.NonceLength)
}

func TestSimulateWritesDefaultConfig(t *testing.T) {
	home := t.TempDir()
	_, err := execute(t, "simulate", "--home", home, "--log_level", "none")
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(home, "config.toml"))
	require.NoError(t, err)
}

func TestModuleCommandsMounted(t *testing.T) {
	root := NewRootCmd()

	for _, path := range [][]string{
		{"tx", "bitoracle", "commit"},
		{"tx", "bitoracle", "slash"},
		{"query", "bitoracle", "oracle"},
		{"q", "bitoracle", "nodes"},
	} {
		cmd, _, err := root.Find(path)
		require.NoError(t, err, path)
		require.Equal(t, path[len(path)-1], cmd.Name())
	}
}
