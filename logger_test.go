package mlog

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type failWriter struct{}

func (failWriter) Write(p []byte) (int, error) { return 0, errors.New("disk full") }

func consoleLogger(t *testing.T, level Level, buf *bytes.Buffer) *Logger {
	t.Helper()
	cfg, err := NewConfig("test", WithLevel(level))
	require.NoError(t, err)
	l, err := NewLogger(cfg, WithConsoleWriter(buf))
	require.NoError(t, err)
	return l
}

func emitAll(l *Logger) {
	_ = l.Debug().Msg("d")
	_ = l.Info().Msg("i")
	_ = l.Warning().Msg("w")
	_ = l.Error().Msg("e")
	_ = l.Critical().Msg("c")
}

func countLines(buf *bytes.Buffer) int {
	s := strings.TrimSuffix(buf.String(), "\n")
	if s == "" {
		return 0
	}
	return len(strings.Split(s, "\n"))
}

func TestThresholdFiltering(t *testing.T) {
	t.Parallel()

	want := map[Level]int{
		LevelDebug:    5,
		LevelInfo:     4,
		LevelWarning:  3,
		LevelError:    2,
		LevelCritical: 1,
	}
	for threshold, lines := range want {
		var buf bytes.Buffer
		l := consoleLogger(t, threshold, &buf)
		emitAll(l)
		require.Equal(t, lines, countLines(&buf), "threshold %s", threshold)
	}
}

func TestBelowThresholdIsNoop(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l := consoleLogger(t, LevelWarning, &buf)
	require.NoError(t, l.Debug().Str("k", "v").Msg("nope"))
	require.NoError(t, l.Info().Msgf("nope %d", 1))
	require.Zero(t, buf.Len())
}

func TestMsgfSubstitution(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l := consoleLogger(t, LevelInfo, &buf)
	require.NoError(t, l.Info().Msgf("User %s did %s", "alice", "login"))
	require.Contains(t, buf.String(), "User alice did login")
	require.Contains(t, buf.String(), " - test - INFO - ")
}

func TestJSONFileEndToEnd(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfg, err := NewConfig("json-logger",
		WithLevel(LevelError),
		WithTarget(TargetJSON),
		WithDirectory(filepath.Join(dir, "logs")),
		WithFilename("a.json"),
	)
	require.NoError(t, err)

	l, err := NewLogger(cfg)
	require.NoError(t, err)
	require.NoError(t, l.Debug().Msg("skip"))
	require.NoError(t, l.Info().Msg("skip"))
	require.NoError(t, l.Warning().Msg("skip"))
	require.NoError(t, l.Error().Msg("boom"))
	require.NoError(t, l.Close())

	data, err := os.ReadFile(cfg.FullPath())
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	require.Len(t, lines, 1)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &got))
	require.Equal(t, "boom", got["message"])
	require.Equal(t, "ERROR", got["level"])
	require.Equal(t, "json-logger", got["name"])
}

func TestFileSinkAppendsOnReopen(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfg, err := NewConfig("file-logger",
		WithTarget(TargetFile),
		WithDirectory(dir),
		WithFilename("app.log"),
	)
	require.NoError(t, err)

	for _, msg := range []string{"first", "second"} {
		l, err := NewLogger(cfg)
		require.NoError(t, err)
		require.NoError(t, l.Info().Msg(msg))
		require.NoError(t, l.Close())
	}

	data, err := os.ReadFile(cfg.FullPath())
	require.NoError(t, err)
	require.Contains(t, string(data), "first")
	require.Contains(t, string(data), "second")
}

func TestUnwritableDirectoryFailsConstruction(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	occupied := filepath.Join(dir, "occupied")
	require.NoError(t, os.WriteFile(occupied, []byte("x"), 0o644))

	cfg, err := NewConfig("bad",
		WithTarget(TargetFile),
		WithDirectory(filepath.Join(occupied, "sub")),
		WithFilename("app.log"),
	)
	require.NoError(t, err)

	_, err = NewLogger(cfg)
	require.ErrorIs(t, err, ErrConfiguration)
}

func TestSyncWriteFailurePropagatesHandlerError(t *testing.T) {
	t.Parallel()

	cfg, err := NewConfig("flaky")
	require.NoError(t, err)
	l, err := NewLogger(cfg, WithConsoleWriter(failWriter{}))
	require.NoError(t, err)

	err = l.Error().Msg("lost?")
	require.ErrorIs(t, err, ErrHandler)
}

func TestObserverSeesGatedEntries(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l := consoleLogger(t, LevelInfo, &buf)

	var seen []Entry
	l.AddObserver(ObserverFunc(func(e Entry) { seen = append(seen, e) }))

	require.NoError(t, l.Debug().Msg("filtered"))
	require.NoError(t, l.Info().Str("k", "v").Msg("kept"))

	require.Len(t, seen, 1)
	require.Equal(t, "kept", seen[0].Message)
	require.Equal(t, LevelInfo, seen[0].Level)
	require.Equal(t, Context{Str("k", "v")}, seen[0].Context)
}

func TestTraceCapturedInJSONOutput(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfg, err := NewConfig("tracer",
		WithTarget(TargetJSON),
		WithDirectory(dir),
		WithFilename("t.json"),
	)
	require.NoError(t, err)
	l, err := NewLogger(cfg)
	require.NoError(t, err)

	require.NoError(t, l.Error().Trace().Msg("boom"))
	require.NoError(t, l.Close())

	data, err := os.ReadFile(cfg.FullPath())
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(data), &got))
	require.Contains(t, got["exception"], "goroutine")
}
