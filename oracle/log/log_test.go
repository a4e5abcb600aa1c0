package log

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, SetOutput(&buf, "info"))
	t.Cleanup(func() { require.NoError(t, InitLogger("info")) })

	Debugf("hidden %d", 1)
	Infof("shown %d", 2)
	Errorf("failed %d", 3)

	out := buf.String()
	require.NotContains(t, out, "hidden 1")
	require.Contains(t, out, "shown 2")
	require.Contains(t, out, "failed 3")
}

func TestInvalidLevel(t *testing.T) {
	require.Error(t, InitLogger("verbose"))
}

func TestLoggerSharesSink(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, SetOutput(&buf, "debug"))
	t.Cleanup(func() { require.NoError(t, InitLogger("info")) })

	Logger().With("module", "x/bitoracle").Debug("node joined")
	require.Contains(t, buf.String(), "node joined")
	require.Contains(t, buf.String(), "module=x/bitoracle")
}

func TestResetLoggerCreatesDir(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, ResetLogger(home, "info"))
	t.Cleanup(func() { require.NoError(t, InitLogger("info")) })

	require.DirExists(t, filepath.Join(home, "logs"))
}
