package logger

import (
	"bytes"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSamplerRatio(t *testing.T) {
	s := newSampler(1, 3)
	var got []bool
	for range 6 {
		got = append(got, s.Allow())
	}
	assert.Equal(t, []bool{true, false, false, true, false, false}, got)

	s.Set(5, 2)
	assert.True(t, s.Allow())
	assert.True(t, s.Allow())

	s.Set(0, 0)
	for range 3 {
		assert.True(t, s.Allow())
	}
}

func TestParseRatio(t *testing.T) {
	cases := []struct {
		in       string
		keep, of int
	}{
		{"1/50", 1, 50},
		{" 2 / 10 ", 2, 10},
		{"20", 1, 20},
		{"0", 0, 0},
		{"a/b", 0, 0},
		{"", 0, 0},
	}
	for _, tc := range cases {
		keep, of := parseRatio(tc.in)
		assert.Equal(t, tc.keep, keep, tc.in)
		assert.Equal(t, tc.of, of, tc.in)
	}
	keep, of := debugRatio("")
	assert.Equal(t, []int{1, 50}, []int{keep, of})
}

func TestLineWriterFlushAndClose(t *testing.T) {
	var a, b bytes.Buffer
	w := newLineWriter([]io.Writer{&a, nil, &b}, 16)

	require.NoError(t, w.Write([]byte("one\n")))
	require.NoError(t, w.Flush())
	assert.Equal(t, "one\n", a.String())
	assert.Equal(t, "one\n", b.String())

	require.NoError(t, w.Write([]byte("two\n")))
	require.NoError(t, w.Close())
	require.NoError(t, w.Close())
	assert.Equal(t, "one\ntwo\n", a.String())

	assert.ErrorIs(t, w.Write([]byte("late\n")), errWriterClosed)
	assert.NoError(t, w.Flush())
}

type failingSink struct{}

func (failingSink) Write([]byte) (int, error) { return 0, io.ErrClosedPipe }

func TestLineWriterKeepsFirstError(t *testing.T) {
	w := newLineWriter([]io.Writer{failingSink{}}, 16)
	require.NoError(t, w.Write([]byte("x\n")))
	assert.ErrorIs(t, w.Close(), io.ErrClosedPipe)
	assert.ErrorIs(t, w.Write([]byte("y\n")), io.ErrClosedPipe)
}

func TestContextMeta(t *testing.T) {
	ctx := WithHandler(WithUpdateMeta(WithRID(Background(), "1:2:3"), 1, 3, 2), "shop.page")
	ctx = WithHandler(ctx, "")
	assert.Equal(t, Meta{RID: "1:2:3", UpdateID: 1, UserID: 3, ChatID: 2, Handler: "shop.page"}, MetaFrom(ctx))
	assert.Equal(t, Meta{}, MetaFrom(nil))

	l := slog.New(slog.DiscardHandler)
	assert.Same(t, l, FromContext(WithLogger(ctx, l)))
	assert.Same(t, L, FromContext(ctx))
}

func TestTextHelpers(t *testing.T) {
	assert.Equal(t, "ab\tc\nd", SanitizeLimit("a\x00b\tc\nd\u200b\x7f", 10))
	assert.Equal(t, "кро", SanitizeLimit("кросівки", 3))
	assert.Empty(t, SanitizeLimit("x", 0))

	joined, cut := SummarizeStrings([]string{"Nike", "Puma", "Vans"}, 2)
	assert.Equal(t, "Nike, Puma", joined)
	assert.True(t, cut)
	joined, cut = SummarizeStrings([]string{"Nike"}, 2)
	assert.Equal(t, "Nike", joined)
	assert.False(t, cut)

	assert.Zero(t, RoundMS(-5))
}
