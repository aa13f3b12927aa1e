package mlog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/valyala/bytebufferpool"
)

func renderText(f *textFormatter, e Entry) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	f.appendEntry(buf, e)
	return string(buf.B)
}

func textEntry(msg string, ctx Context) Entry {
	return Entry{
		At:      time.Date(2025, 6, 1, 12, 30, 45, 0, time.UTC),
		Level:   LevelWarning,
		Name:    "svc",
		Message: msg,
		Context: ctx,
	}
}

func TestTextFormatterDefaultTemplate(t *testing.T) {
	t.Parallel()

	f := newTextFormatter(DefaultTextFormat, DefaultDateFormat)
	got := renderText(f, textEntry("disk nearly full", nil))
	require.Equal(t, "2025-06-01 12:30:45 - svc - WARNING - disk nearly full\n", got)
}

func TestTextFormatterCustomTemplateAndDateLayout(t *testing.T) {
	t.Parallel()

	f := newTextFormatter("[{level}] {timestamp} {message}", "15:04:05")
	got := renderText(f, textEntry("hi", nil))
	require.Equal(t, "[WARNING] 12:30:45 hi\n", got)
}

func TestTextFormatterUnknownPlaceholderKeptVerbatim(t *testing.T) {
	t.Parallel()

	f := newTextFormatter("{pid} {message}", DefaultDateFormat)
	got := renderText(f, textEntry("hi", nil))
	require.Equal(t, "{pid} hi\n", got)
}

func TestTextFormatterEmptyTemplateRendersNothing(t *testing.T) {
	t.Parallel()

	f := newTextFormatter("", "")
	got := renderText(f, textEntry("ignored", Context{Str("user", "alice")}))
	require.Equal(t, " user=alice\n", got, "an empty template yields no line prefix")
}

func TestTextFormatterAppendsContext(t *testing.T) {
	t.Parallel()

	f := newTextFormatter("{message}", DefaultDateFormat)
	got := renderText(f, textEntry("done", Context{Str("user", "alice"), Int("code", 200)}))
	require.Equal(t, "done user=alice code=200\n", got)
}

func TestTextFormatterQuotesAwkwardValues(t *testing.T) {
	t.Parallel()

	f := newTextFormatter("{message}", DefaultDateFormat)
	got := renderText(f, textEntry("done", Context{Str("path", "a b")}))
	require.Equal(t, "done path=\"a b\"\n", got)
}

func TestTextFormatterTraceOnOwnLines(t *testing.T) {
	t.Parallel()

	f := newTextFormatter("{message}", DefaultDateFormat)
	e := textEntry("boom", nil)
	e.Trace = "stack line"
	got := renderText(f, e)
	require.Equal(t, "boom\nstack line\n", got)
}
