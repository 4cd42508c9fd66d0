package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSetupDisabled(t *testing.T) {
	t.Parallel()

	logger, cleanup, err := Setup("", "debug")
	require.NoError(t, err)
	defer cleanup()
	require.False(t, logger.Core().Enabled(zap.ErrorLevel))
}

func TestSetupWritesJSONToFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "logs", "bench.log")
	logger, cleanup, err := Setup(path, "info")
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("catalogue loaded", zap.Int("rows", 42))
	cleanup()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), `"msg":"catalogue loaded"`)
	require.Contains(t, string(data), `"rows":42`)
	require.NotContains(t, string(data), "hidden")
}

func TestSetupRejectsUnknownLevel(t *testing.T) {
	t.Parallel()

	_, _, err := Setup(filepath.Join(t.TempDir(), "x.log"), "loud")
	require.Error(t, err)
}
