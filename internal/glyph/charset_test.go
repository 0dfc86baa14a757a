package glyph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/digirain/internal/rng"
)

func TestRegisteredCharsets(t *testing.T) {
	for _, name := range Names() {
		cs, err := Lookup(name)
		require.NoError(t, err, name)
		assert.NotEmpty(t, cs, name)
		assert.False(t, cs.Contains(Blank), "%s must not contain the blank glyph", name)
	}
	assert.Equal(t, []string{"ascii", "binary", "kana", "matrix", "symbols"}, Names())
}

func TestLookupUnknown(t *testing.T) {
	_, err := Lookup("klingon")
	assert.ErrorIs(t, err, ErrUnknownCharset)
}

func TestDefaultIsMatrix(t *testing.T) {
	cs := Default()
	assert.True(t, cs.Contains("A"))
	assert.True(t, cs.Contains("ｱ"))
	assert.False(t, cs.Contains("a"))
}

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Charset
		err  error
	}{
		{"plain", "ab", Charset{"a", "b"}, nil},
		{"drops blanks and duplicates", "a a\tb", Charset{"a", "b"}, nil},
		{"narrows fullwidth", "ＡＢ", Charset{"A", "B"}, nil},
		{"narrows katakana", "アイ", Charset{"ｱ", "ｲ"}, nil},
		{"composes combining marks", "e\u0301a", Charset{"\u00e9", "a"}, nil},
		{"rejects wide", "日本", nil, ErrWideGlyph},
		{"rejects empty", "   ", nil, ErrEmptyCharset},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.in)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolve(t *testing.T) {
	cs, err := Resolve("binary")
	require.NoError(t, err)
	assert.Equal(t, Charset{"0", "1"}, cs)

	cs, err = Resolve("xyz")
	require.NoError(t, err)
	assert.Equal(t, Charset{"x", "y", "z"}, cs)

	cs, err = Resolve("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cs)
}

func TestSampleUniformCoverage(t *testing.T) {
	cs := Charset{"a", "b", "c"}
	r := rng.New(1)
	seen := map[string]int{}
	for i := 0; i < 3000; i++ {
		g := cs.Sample(r)
		require.True(t, cs.Contains(g))
		seen[g]++
	}
	for _, g := range cs {
		assert.Greater(t, seen[g], 800, "glyph %s under-sampled", g)
	}
}

func TestSampleSequence(t *testing.T) {
	cs := Charset{"a", "b"}
	seq := cs.SampleSequence(rng.NewSequence(0, 1, 1), 3)
	assert.Equal(t, []string{"a", "b", "b"}, seq)

	assert.Equal(t, []string{Blank}, cs.SampleSequence(rng.New(1), 0))
	assert.Equal(t, Blank, Charset{}.Sample(rng.New(1)))
}

func TestChooseAndBlankPool(t *testing.T) {
	assert.Equal(t, Blank, Choose(rng.New(1), nil))
	assert.Equal(t, "y", Choose(rng.NewSequence(1), []string{"x", "y"}))

	assert.True(t, IsBlankPool([]string{Blank}))
	assert.False(t, IsBlankPool([]string{Blank, Blank}))
	assert.False(t, IsBlankPool([]string{"x"}))
	assert.False(t, IsBlankPool(nil))
}
