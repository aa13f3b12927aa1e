package mlog

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/valyala/bytebufferpool"
)

func quoteJSON(t *testing.T, s string) string {
	t.Helper()
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	appendJSONString(buf, s)
	return string(buf.B)
}

func TestAppendJSONStringPassesUTF8Verbatim(t *testing.T) {
	t.Parallel()

	for _, s := range []string{
		"café",
		"aébé",
		"日本語",
		"naïve résumé",
		"emoji 🚀 tail",
		"híghly\tmïxed\n日本",
		`quoted "日本" value`,
	} {
		got := quoteJSON(t, s)

		var back string
		require.NoError(t, json.Unmarshal([]byte(got), &back), "output is not valid JSON: %s", got)
		require.Equal(t, s, back)
	}
}

func TestAppendJSONStringEscapes(t *testing.T) {
	t.Parallel()

	require.Equal(t, `"a\nb"`, quoteJSON(t, "a\nb"))
	require.Equal(t, `"a\tb"`, quoteJSON(t, "a\tb"))
	require.Equal(t, `"a\rb"`, quoteJSON(t, "a\rb"))
	require.Equal(t, `"say \"hi\""`, quoteJSON(t, `say "hi"`))
	require.Equal(t, `"c:\\tmp"`, quoteJSON(t, `c:\tmp`))
	require.Equal(t, `"nul\u0000byte"`, quoteJSON(t, "nul\x00byte"))
}

func TestAppendJSONStringReplacesInvalidUTF8(t *testing.T) {
	t.Parallel()

	require.Equal(t, "\"a\uFFFDb\"", quoteJSON(t, "a\xffb"))
	// A truncated multi-byte sequence yields one replacement per bad byte.
	require.Equal(t, "\"x\uFFFD\uFFFD\"", quoteJSON(t, "x\xe6\x97"))
}

func TestEntryJSONNonASCIIFields(t *testing.T) {
	frozenAt(t, time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))

	e := NewEntry(LevelInfo, "café", "日本語のメッセージ", Context{Str("ciudad", "San José")})
	data, err := json.Marshal(e)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(data, &got))
	require.Equal(t, "café", got["name"])
	require.Equal(t, "日本語のメッセージ", got["message"])
	require.Equal(t, "San José", got["ciudad"])
}
