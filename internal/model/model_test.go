package model

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abelbrown/paraphrase/internal/template"
)

func prop(id, sent, sf, pred, a0, a1 string) Proposition {
	return Proposition{
		SourceID:    id,
		Sentence:    sent,
		SurfacePred: template.MustParse(sf),
		Pred:        template.MustParse(pred),
		Arg0:        a0,
		Arg1:        a1,
	}
}

func TestReversed(t *testing.T) {
	p := prop("t1", "the senate passed the bill", "{a0} passed {a1}", "{a0} pass {a1}", "the senate", "the bill")
	r := p.Reversed()

	assert.Equal(t, template.Template("{a1} passed {a0}"), r.SurfacePred)
	assert.Equal(t, template.Template("{a1} pass {a0}"), r.Pred)
	assert.Equal(t, "the bill", r.Arg0)
	assert.Equal(t, "the senate", r.Arg1)
	assert.Equal(t, p.SurfacePred.Fill(p.Arg0, p.Arg1), r.SurfacePred.Fill(r.Arg0, r.Arg1), "same surface string")
	assert.Equal(t, "{a0} passed {a1}", p.SurfacePred.String(), "original untouched")
}

func TestAlignedPairKeys(t *testing.T) {
	a := AlignedPair{
		Date:  "2016_01_05",
		Left:  prop("t9", "s", "{a0} x {a1}", "{a0} x {a1}", "a", "b"),
		Right: prop("t1", "s", "{a0} y {a1}", "{a0} y {a1}", "c", "d"),
	}
	assert.Equal(t, SourceKey{"t1", "t9"}, a.Key())

	flipped := AlignedPair{Date: a.Date, Left: a.Right, Right: a.Left}
	assert.Equal(t, a.Key(), flipped.Key())
	assert.NotEqual(t, a.TupleKey(), flipped.TupleKey(), "tuple key is order sensitive")
}

func TestParsePropositionLine(t *testing.T) {
	t.Run("two arguments", func(t *testing.T) {
		p, err := ParsePropositionLine("T1\tObama Visits Cuba today\t{a0} visits {a1} today\t{a0} visit {a1} today\ta0\tObama\ta1\tCuba")
		require.NoError(t, err)
		assert.Equal(t, "t1", p.SourceID)
		assert.Equal(t, "obama visits cuba today", p.Sentence)
		assert.Equal(t, template.Template("{a0} visits {a1}"), p.SurfacePred)
		assert.Equal(t, template.Template("{a0} visit {a1}"), p.Pred)
		assert.Equal(t, "obama", p.Arg0)
		assert.Equal(t, "cuba", p.Arg1)
	})

	t.Run("three arguments merged", func(t *testing.T) {
		line := "t1\tthe us government announced a deal\t{a0} {a1} announced {a2}\t{a0} {a1} announce {a2}\ta0\tus\ta1\tgovernment\ta2\ta deal"
		p, err := ParsePropositionLine(line)
		require.NoError(t, err)
		assert.Equal(t, template.Template("{a0} announced {a1}"), p.SurfacePred)
		assert.Equal(t, "us government", p.Arg0)
		assert.Equal(t, "a deal", p.Arg1)
	})

	t.Run("too few fields", func(t *testing.T) {
		_, err := ParsePropositionLine("t1\tsentence\t{a0} x {a1}")
		assert.True(t, errors.Is(err, ErrFieldCount))
	})

	t.Run("missing placeholder", func(t *testing.T) {
		_, err := ParsePropositionLine("t1\ts\t{a0} left\t{a0} leave\ta0\tx\ta1\ty")
		assert.True(t, errors.Is(err, template.ErrMalformed))
	})
}

func TestReadPropositionsSkipsMalformed(t *testing.T) {
	input := strings.Join([]string{
		"t1\ta b\t{a0} beat {a1}\t{a0} beat {a1}\ta0\tarsenal\ta1\tchelsea",
		"broken line",
		"",
		"t2\tc d\t{a0} won {a1}\t{a0} win {a1}\ta0\tarsenal\ta1\tthe cup",
	}, "\n")

	props, skipped, err := ReadPropositions(strings.NewReader(input))
	require.NoError(t, err)
	assert.Len(t, props, 2)
	assert.Equal(t, 1, skipped)
}

func TestAlignedPairLineRoundTrip(t *testing.T) {
	a := AlignedPair{
		Date:  "2016_01_05",
		Left:  prop("t1", "the us government announced a deal", "{a0} announced {a1}", "{a0} announce {a1}", "us government", "a deal"),
		Right: prop("t2", "washington revealed an agreement", "{a0} revealed {a1}", "{a0} reveal {a1}", "washington", "an agreement"),
	}
	line := FormatAlignedPair(a)
	assert.Equal(t, 12, strings.Count(line, "\t"))

	got, err := ParseAlignedPairLine(line)
	require.NoError(t, err)
	assert.Equal(t, a, got)

	_, err = ParseAlignedPairLine("2016_01_05\tt1")
	assert.True(t, errors.Is(err, ErrFieldCount))
}

func TestWriteAndReadNegativePairs(t *testing.T) {
	n := NegativePair{
		Left:  prop("t1", "a beat b", "{a0} beat {a1}", "{a0} beat {a1}", "a", "b"),
		Right: prop("t2", "a hosted b", "{a0} hosted {a1}", "{a0} host {a1}", "a", "b"),
	}
	var buf bytes.Buffer
	require.NoError(t, WriteNegativePairs(&buf, []NegativePair{n, n}))

	got, skipped, err := ReadNegativePairs(&buf)
	require.NoError(t, err)
	assert.Zero(t, skipped)
	assert.Equal(t, []NegativePair{n, n}, got)
}
