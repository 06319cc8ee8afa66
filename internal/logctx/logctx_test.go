package logctx

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIntoFrom(t *testing.T) {
	t.Parallel()

	require.Same(t, slog.Default(), From(context.Background()))

	l := Discard()
	require.Same(t, l, From(Into(context.Background(), l)))

	var nilLogger *slog.Logger
	require.Same(t, slog.Default(), From(Into(context.Background(), nilLogger)))
}

func TestNew_HandlerByEnv(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	New(EnvProd, "", &buf).Info("api", slog.Int("status", 200))
	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	require.Equal(t, "api", rec["msg"])

	buf.Reset()
	New(EnvProd, "", &buf).Debug("hidden")
	require.Empty(t, buf.String())

	buf.Reset()
	New(EnvLocal, "", &buf).Debug("shown")
	require.True(t, strings.Contains(buf.String(), "msg=shown"))

	buf.Reset()
	New(EnvLocal, "error", &buf).Warn("dropped")
	require.Empty(t, buf.String())
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	require.Equal(t, slog.LevelWarn, ParseLevel(" WARN ", slog.LevelInfo))
	require.Equal(t, slog.LevelInfo, ParseLevel("verbose", slog.LevelInfo))
}

func TestOpenFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "vlp.log")
	f, err := OpenFile(path)
	require.NoError(t, err)
	New(EnvLocal, "", f).Info("hello")
	require.NoError(t, f.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "msg=hello")
}
