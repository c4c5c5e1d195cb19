package template

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input string
		ok    bool
	}{
		{"{a0} announced {a1}", true},
		{"{a1} was announced by {a0}", true},
		{"  {a0} say {a1} ", true},
		{"{a0} announced", false},
		{"{a0} met {a0}", false},
		{"{a0} {a1} {a1}", false},
		{"", false},
	}

	for _, tt := range tests {
		_, err := Parse(tt.input)
		if tt.ok {
			assert.NoError(t, err, tt.input)
		} else {
			assert.True(t, errors.Is(err, ErrMalformed), tt.input)
		}
	}
}

func TestSwapMovesSlotPositions(t *testing.T) {
	tmpl := MustParse("{a1} was announced by {a0}")
	swapped := tmpl.Swap()

	assert.Equal(t, Template("{a0} was announced by {a1}"), swapped)

	a0, a1 := tmpl.SlotOffsets()
	s0, s1 := swapped.SlotOffsets()
	assert.Equal(t, a0, s1, "{a0} takes the old {a1} offset")
	assert.Equal(t, a1, s0, "{a1} takes the old {a0} offset")

	assert.Equal(t, tmpl, swapped.Swap(), "swap is an involution")
}

func TestFillAndStrip(t *testing.T) {
	tmpl := MustParse("{a0} revealed {a1}")
	assert.Equal(t, "washington revealed an agreement", tmpl.Fill("washington", "an agreement"))
	assert.Equal(t, "revealed", tmpl.Strip())

	tmpl = MustParse("{a0} ran into {a1}")
	assert.Equal(t, "ran into", tmpl.Strip())
}

func TestInsertAfterA0(t *testing.T) {
	assert.Equal(t, Template("{a0} be happy with {a1}"), MustParse("{a0} happy with {a1}").InsertAfterA0("be"))
	assert.Equal(t, Template("{a1} by {a0}"), MustParse("{a1} by {a0}").InsertAfterA0("be"), "no trailing space after {a0}")
}

func TestSlotEnds(t *testing.T) {
	assert.True(t, MustParse("{a0} beat {a1}").StartsWithSlot())
	assert.True(t, MustParse("{a0} beat {a1}").EndsWithSlot())
	assert.False(t, MustParse("yesterday {a0} beat {a1}").StartsWithSlot())
	assert.False(t, MustParse("{a0} beat {a1} again").EndsWithSlot())
}

func TestTrimAfterLastSlot(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"{a0} beat {a1} on sunday", "{a0} beat {a1}"},
		{"{a1} was beaten by {a0} yesterday", "{a1} was beaten by {a0}"},
		{"{a0} beat {a1}", "{a0} beat {a1}"},
		{" beat ", "beat"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TrimAfterLastSlot(tt.in), tt.in)
	}
}

func TestMergeAdjacent(t *testing.T) {
	t.Run("a0 a1 adjacency", func(t *testing.T) {
		m, ok := MergeAdjacent("{a0} {a1} announced {a2}", "{a0} {a1} announce {a2}", "us", "government", "a deal")
		require.True(t, ok)
		assert.Equal(t, "{a0} announced {a1}", m.Surface)
		assert.Equal(t, "{a0} announce {a1}", m.Lemma)
		assert.Equal(t, "us government", m.Arg0)
		assert.Equal(t, "a deal", m.Arg1)
	})

	t.Run("a1 a2 adjacency", func(t *testing.T) {
		m, ok := MergeAdjacent("{a0} gave {a1} {a2}", "{a0} give {a1} {a2}", "he", "the", "book")
		require.True(t, ok)
		assert.Equal(t, "{a0} gave {a1}", m.Surface)
		assert.Equal(t, "{a0} give {a1}", m.Lemma)
		assert.Equal(t, "the book", m.Arg1)
	})

	t.Run("no adjacency", func(t *testing.T) {
		m, ok := MergeAdjacent("{a0} told {a1} about {a2}", "{a0} tell {a1} about {a2}", "x", "y", "z")
		assert.False(t, ok)
		assert.Equal(t, "x", m.Arg0)
		assert.Equal(t, "y", m.Arg1)
	})
}
