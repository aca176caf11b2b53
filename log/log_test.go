package log

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	setOutput(&buf)
	t.Cleanup(func() { setOutput(nil) })
	return &buf
}

func TestLogFormatsFields(t *testing.T) {
	buf := captureLog(t)

	Info(CatSearch, "rescan", "query", "foo", "matches", 3)
	out := buf.String()
	require.Contains(t, out, "[INFO] [search] rescan query=foo matches=3")
	require.True(t, strings.HasSuffix(out, "\n"))
}

func TestLogOddFields(t *testing.T) {
	buf := captureLog(t)

	Warn(CatFile, "save", "path")
	require.Contains(t, buf.String(), "[WARN] [file] save path=<missing>")
}

func TestErrorErr(t *testing.T) {
	buf := captureLog(t)

	ErrorErr(CatBuffer, "undo failed", errors.New("boom"), "seq", 4)
	require.Contains(t, buf.String(), "[ERROR] [buffer] undo failed seq=4 error=boom")

	buf.Reset()
	ErrorErr(CatBuffer, "odd", nil)
	require.Contains(t, buf.String(), "error=<nil>")
}

func TestDisabledByDefault(t *testing.T) {
	setOutput(nil)
	require.NotPanics(t, func() { Error(CatConfig, "nobody listens") })
}

func TestInitWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tedit.log")
	cleanup, err := Init(path)
	require.NoError(t, err)

	Debug(CatFile, "opened", "path", "a.txt")
	cleanup()
	Info(CatFile, "after close")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "[DEBUG] [file] opened path=a.txt")
	require.NotContains(t, string(data), "after close")
}

func TestInitBadPath(t *testing.T) {
	_, err := Init(filepath.Join(t.TempDir(), "missing", "tedit.log"))
	require.Error(t, err)
}

func TestLevelString(t *testing.T) {
	require.Equal(t, "DEBUG", levelDebug.String())
	require.Equal(t, "UNKNOWN", level(9).String())
}
