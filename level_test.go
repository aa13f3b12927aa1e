package mlog

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLevelOrdering(t *testing.T) {
	t.Parallel()

	ordered := []Level{LevelDebug, LevelInfo, LevelWarning, LevelError, LevelCritical}
	for i := 1; i < len(ordered); i++ {
		require.Less(t, ordered[i-1], ordered[i], "severity order must be strictly increasing")
	}
}

func TestLevelString(t *testing.T) {
	t.Parallel()

	cases := map[Level]string{
		LevelDebug:    "DEBUG",
		LevelInfo:     "INFO",
		LevelWarning:  "WARNING",
		LevelError:    "ERROR",
		LevelCritical: "CRITICAL",
	}
	for level, want := range cases {
		require.Equal(t, want, level.String())
	}
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"DEBUG", "debug", " Debug "} {
		level, err := ParseLevel(s)
		require.NoError(t, err)
		require.Equal(t, LevelDebug, level)
	}

	_, err := ParseLevel("VERBOSE")
	require.ErrorIs(t, err, ErrInvalidConfiguration)
}

func TestParseTarget(t *testing.T) {
	t.Parallel()

	for s, want := range map[string]Target{
		"CONSOLE": TargetConsole,
		"file":    TargetFile,
		"Json":    TargetJSON,
	} {
		target, err := ParseTarget(s)
		require.NoError(t, err)
		require.Equal(t, want, target)
	}

	_, err := ParseTarget("SYSLOG")
	require.ErrorIs(t, err, ErrInvalidConfiguration)
}
