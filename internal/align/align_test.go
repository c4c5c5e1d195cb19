package align

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abelbrown/paraphrase/internal/lexical"
	"github.com/abelbrown/paraphrase/internal/model"
	"github.com/abelbrown/paraphrase/internal/template"
	"github.com/abelbrown/paraphrase/internal/wordnet"
)

func testPairer() *Pairer {
	lex := wordnet.NewMemLexicon().
		Add(wordnet.Verb, "announce", "declare", "reveal", "disclose").
		Add(wordnet.Noun, "government", "washington", "authorities").
		Add(wordnet.Noun, "deal", "agreement", "understanding").
		Add(wordnet.Verb, "pass", "approve", "sanction").
		Add(wordnet.Noun, "bill", "measure", "legislation").
		Add(wordnet.Noun, "senate", "legislature").
		Add(wordnet.Noun, "lawmaker", "legislator", "legislature")
	return NewPairer(lexical.NewJudge(lex))
}

func prop(id, sent, sf, pred, a0, a1 string) model.Proposition {
	return model.Proposition{
		SourceID:    id,
		Sentence:    sent,
		SurfacePred: template.MustParse(sf),
		Pred:        template.MustParse(pred),
		Arg0:        a0,
		Arg1:        a1,
	}
}

func TestPairStraightAlignedPredicate(t *testing.T) {
	t1 := prop("t1", "the us government announced a deal", "{a0} announced {a1}", "{a0} announce {a1}", "us government", "a deal")
	t2 := prop("t2", "washington revealed an agreement", "{a0} revealed {a1}", "{a0} reveal {a1}", "washington", "an agreement")

	pairs, stats := testPairer().Pair("2016_01_05", []model.Proposition{t1, t2})
	require.Len(t, pairs, 2, "both orders align")
	assert.Equal(t, 2, stats.ByCase[CaseB])
	assert.Equal(t, 2, stats.AlignedPredicate)
	assert.Zero(t, stats.FreePredicate)

	deduped := Dedup(pairs)
	require.Len(t, deduped, 1)
	got := deduped[0]
	assert.Equal(t, "2016_01_05", got.Date)
	assert.Equal(t, t1, got.Left)
	assert.Equal(t, t2, got.Right, "straight order leaves the right side untouched")
}

func TestPairSwappedArguments(t *testing.T) {
	// "bill" is itself a stop word, so the object is one that survives filtering.
	x, y := "the senate", "the legislation"
	t1 := prop("t1", "the senate passed the legislation", "{a0} passed {a1}", "{a0} pass {a1}", x, y)
	// Same event, arguments in the opposite slots: ("the measure", "lawmakers").
	t2 := prop("t2", "lawmakers approved the measure", "{a1} approved {a0}", "{a1} approve {a0}", "the measure", "lawmakers")

	pairs, stats := testPairer().Pair("2016_02_01", []model.Proposition{t1, t2})
	require.NotEmpty(t, pairs)
	assert.Equal(t, 2, stats.ByCase[CaseD])

	got := Dedup(pairs)[0]
	require.Equal(t, "t1", got.Left.SourceID)
	right := got.Right

	assert.Equal(t, "lawmakers", right.Arg0, "arg0 now aligns with the left arg0")
	assert.Equal(t, "the measure", right.Arg1)
	assert.Equal(t, template.Template("{a0} approve {a1}"), right.Pred)
	assert.Equal(t, template.Template("{a0} approved {a1}"), right.SurfacePred)

	origA0, origA1 := t2.Pred.SlotOffsets()
	newA0, newA1 := right.Pred.SlotOffsets()
	assert.Equal(t, origA1, newA0, "{a0} moved to the old {a1} position")
	assert.Equal(t, origA0, newA1, "{a1} moved to the old {a0} position")

	assert.Equal(t, t2.Sentence, right.SurfacePred.Fill(right.Arg0, right.Arg1), "rewritten template still spells the sentence")
}

func TestPairSkipFilters(t *testing.T) {
	base := prop("t1", "the us government announced a deal", "{a0} announced {a1}", "{a0} announce {a1}", "us government", "a deal")

	t.Run("same source", func(t *testing.T) {
		other := prop("t1", "washington revealed an agreement", "{a0} revealed {a1}", "{a0} reveal {a1}", "washington", "an agreement")
		pairs, stats := testPairer().Pair("d", []model.Proposition{base, other})
		assert.Empty(t, pairs)
		assert.Equal(t, 2, stats.SameSource)
	})

	t.Run("near identical sentence", func(t *testing.T) {
		other := prop("t2", "the us government announced a deal", "{a0} revealed {a1}", "{a0} reveal {a1}", "washington", "an agreement")
		pairs, stats := testPairer().Pair("d", []model.Proposition{base, other})
		assert.Empty(t, pairs)
		assert.Equal(t, 2, stats.NearDuplicate)
	})

	t.Run("contained predicate and arguments", func(t *testing.T) {
		other := prop("t2", "officials say the us government quietly announced a deal", "{a0} quietly announced {a1}", "{a0} quietly announce {a1}", "government", "a deal")
		other.Pred = template.MustParse("{a0} announce {a1} today")
		pairs, stats := testPairer().Pair("d", []model.Proposition{base, other})
		assert.Empty(t, pairs)
		assert.Equal(t, 2, stats.NearDuplicate)
	})

	t.Run("pronoun argument", func(t *testing.T) {
		other := prop("t2", "washington revealed an agreement", "{a0} revealed {a1}", "{a0} reveal {a1}", "they", "an agreement")
		pairs, stats := testPairer().Pair("d", []model.Proposition{base, other})
		assert.Empty(t, pairs)
		assert.Equal(t, 2, stats.Pronoun)
	})
}

func TestClassifyIsExclusiveAndOrdered(t *testing.T) {
	caseA := func(f Flags) bool { return (f.EqualA0A0 && f.AlignedA1A1) || (f.AlignedA0A0 && f.EqualA1A1) }
	caseB := func(f Flags) bool { return f.PredAligned && f.AlignedA0A0 && f.AlignedA1A1 }
	caseC := func(f Flags) bool { return (f.EqualA0A1 && f.AlignedA1A0) || (f.AlignedA0A1 && f.EqualA1A0) }
	caseD := func(f Flags) bool { return f.PredAligned && f.AlignedA0A1 && f.AlignedA1A0 }
	conditions := []struct {
		c    Case
		cond func(Flags) bool
	}{{CaseA, caseA}, {CaseB, caseB}, {CaseC, caseC}, {CaseD, caseD}}

	for bits := 0; bits < 1<<10; bits++ {
		bit := func(i int) bool { return bits&(1<<i) != 0 }
		f := Flags{
			PredEqual: bit(0), PredAligned: bit(1),
			EqualA0A0: bit(2), EqualA1A1: bit(3), EqualA0A1: bit(4), EqualA1A0: bit(5),
			AlignedA0A0: bit(6), AlignedA1A1: bit(7), AlignedA0A1: bit(8), AlignedA1A0: bit(9),
		}

		got := Classify(f)
		if f.PredEqual {
			assert.Equal(t, NoCase, got, "equal predicates never align (bits %b)", bits)
			continue
		}

		want := NoCase
		for _, cc := range conditions {
			if cc.cond(f) {
				want = cc.c
				break
			}
		}
		assert.Equal(t, want, got, "bits %b", bits)
	}
}

func TestCaseProperties(t *testing.T) {
	assert.False(t, CaseA.Swapped())
	assert.False(t, CaseB.Swapped())
	assert.True(t, CaseC.Swapped())
	assert.True(t, CaseD.Swapped())
	assert.True(t, CaseC.FreePredicate())
	assert.False(t, CaseD.FreePredicate())
	assert.Equal(t, "B", CaseB.String())
	assert.Equal(t, "none", NoCase.String())
}

func TestDedup(t *testing.T) {
	p1 := prop("t1", "s1", "{a0} beat {a1}", "{a0} beat {a1}", "arsenal", "chelsea")
	p2 := prop("t2", "s2", "{a0} defeated {a1}", "{a0} defeat {a1}", "arsenal", "chelsea")
	p3 := prop("t3", "s3", "{a0} defeated {a1}", "{a0} defeat {a1}", "arsenal", "chelsea")

	pairs := []model.AlignedPair{
		{Date: "d", Left: p1, Right: p2},
		{Date: "d", Left: p2, Right: p1}, // same source pair
		{Date: "d", Left: p1, Right: p3}, // same tuples as the first
		{Date: "d", Left: p3, Right: p2},
	}

	once := Dedup(pairs)
	require.Len(t, once, 2)
	assert.Equal(t, pairs[0], once[0])
	assert.Equal(t, pairs[3], once[1])

	assert.Equal(t, once, Dedup(once), "idempotent")
	assert.Empty(t, Dedup(nil))
}

func TestPrefilter(t *testing.T) {
	english := func(s string) bool { return s != "hola mundo" }
	props := []model.Proposition{
		prop("t1", "obama visits cuba", "{a0} visits {a1}", "{a0} visit {a1}", "obama", "cuba"),
		prop("t2", "hola mundo", "{a0} visits {a1}", "{a0} visit {a1}", "obama", "cuba"),
		prop("t3", "x visits cuba", "{a0} visits {a1}", "{a0} visit {a1}", "x", "cuba"),
		prop("t4", "obama is president", "{a0} is {a1}", "{a0} be {a1}", "obama", "president"),
		prop("t5", "president obama", "{a1} {a0}", "{a1} {a0}", "obama", "president"),
	}

	kept, stats := Prefilter(props, english)
	require.Len(t, kept, 1)
	assert.Equal(t, "t1", kept[0].SourceID)
	assert.Equal(t, PrefilterStats{NotEnglish: 1, ShortArgument: 1, Trivial: 2}, stats)
}

func TestIsEnglish(t *testing.T) {
	assert.True(t, IsEnglish("the president of the united states announced a new trade agreement with the government of canada on tuesday morning"))
	assert.False(t, IsEnglish("президент объявил о новом торговом соглашении с правительством канады во вторник"))
}

func TestDateFromPath(t *testing.T) {
	assert.Equal(t, "2016_01_05", DateFromPath("props/2016_01_05.prop"))
	assert.Equal(t, "2016_01_05", DateFromPath("2016_01_05.txt.prop"))
	assert.Equal(t, "events", DateFromPath("/data/events"))
}
