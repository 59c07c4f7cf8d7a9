package compare

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func defaultNormalizer() Normalizer {
	return Normalizer{TrimWhitespace: true, IgnoreCase: true}
}

func TestNormalizerEqual(t *testing.T) {
	tests := []struct {
		name string
		n    Normalizer
		a, b string
		want bool
	}{
		{"identical text", defaultNormalizer(), "Effective", "Effective", true},
		{"case difference ignored", defaultNormalizer(), "Effective", "effective", true},
		{"whitespace trimmed", defaultNormalizer(), " Effective ", "Effective", true},
		{"different text", defaultNormalizer(), "Effective", "Ineffective", false},
		{"numbers compared numerically", defaultNormalizer(), "1.0", "1", true},
		{"different numbers", defaultNormalizer(), "1", "2", false},
		{"number vs text", defaultNormalizer(), "1", "one", false},
		{"case sensitive when configured", Normalizer{TrimWhitespace: true}, "Effective", "effective", false},
		{"whitespace kept when configured", Normalizer{IgnoreCase: true}, " Effective", "Effective", false},
		{"numeric compare even with strict policy", Normalizer{}, " 2 ", "2.0", true},
		{"both blank", defaultNormalizer(), "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.n.Equal(tt.a, tt.b))
		})
	}
}

func TestComparePairMatch(t *testing.T) {
	summary := &Side{Key: "AC-1", Description: "Access control", Design: "Effective", Operation: "No exceptions"}
	tested := &Side{Key: "AC-1", Design: "effective ", Operation: "no exceptions"}

	result := ComparePair(summary, tested, defaultNormalizer())

	assert.Equal(t, "AC-1", result.Key)
	assert.Equal(t, VerdictEqual, result.Design.Verdict)
	assert.Equal(t, VerdictEqual, result.Operation.Verdict)
	assert.Equal(t, PairMatch, result.Verdict)
}

func TestComparePairSingleFieldDifference(t *testing.T) {
	summary := &Side{Key: "AC-1", Design: "Effective", Operation: "No exceptions"}
	tested := &Side{Key: "AC-1", Design: "Effective", Operation: "Two deviations"}

	result := ComparePair(summary, tested, defaultNormalizer())

	assert.Equal(t, VerdictEqual, result.Design.Verdict)
	assert.Equal(t, VerdictDifferent, result.Operation.Verdict)
	assert.Equal(t, PairMismatch, result.Verdict)
}

func TestComparePairMissingSide(t *testing.T) {
	tested := &Side{Key: "PE-6", Design: "Effective", Operation: "Done"}

	result := ComparePair(nil, tested, defaultNormalizer())

	assert.Equal(t, "PE-6", result.Key)
	assert.Equal(t, VerdictMissing, result.Design.Verdict)
	assert.Equal(t, VerdictMissing, result.Operation.Verdict)
	assert.Equal(t, PairMismatch, result.Verdict)
	assert.Equal(t, "", result.Design.Summary)
	assert.Equal(t, "Effective", result.Design.Tested)
}

func TestComparePairSymmetry(t *testing.T) {
	// Swapping the two sides must keep "different" different, with the value
	// columns swapped.
	a := &Side{Key: "AC-1", Design: "Effective", Operation: "No exceptions"}
	b := &Side{Key: "AC-1", Design: "Ineffective", Operation: "No exceptions"}
	n := defaultNormalizer()

	forward := ComparePair(a, b, n)
	backward := ComparePair(b, a, n)

	assert.Equal(t, VerdictDifferent, forward.Design.Verdict)
	assert.Equal(t, VerdictDifferent, backward.Design.Verdict)
	assert.Equal(t, forward.Design.Summary, backward.Design.Tested)
	assert.Equal(t, forward.Design.Tested, backward.Design.Summary)
	assert.Equal(t, PairMismatch, forward.Verdict)
	assert.Equal(t, PairMismatch, backward.Verdict)
}

func TestBuildResultsDuplicateKeys(t *testing.T) {
	summarySide := []Side{
		{Key: "A", Design: "Effective", Operation: "Done"},
		{Key: "A", Design: "Other", Operation: "Other"},
		{Key: "B", Design: "Effective", Operation: "Done"},
	}
	testedSide := []Side{
		{Key: "A", Design: "Effective", Operation: "Done"},
		{Key: "B", Design: "Effective", Operation: "Pending"},
	}

	results := BuildResults(summarySide, testedSide, defaultNormalizer())

	assert.Len(t, results, 3)

	// First A pairs normally
	assert.Equal(t, "A", results[0].Key)
	assert.Equal(t, PairMatch, results[0].Verdict)

	// Second A is flagged, not merged
	assert.Equal(t, "A", results[1].Key)
	assert.Equal(t, PairDuplicate, results[1].Verdict)
	assert.Equal(t, "Other", results[1].Design.Summary)

	// B pairs normally
	assert.Equal(t, "B", results[2].Key)
	assert.Equal(t, PairMismatch, results[2].Verdict)
	assert.Equal(t, VerdictDifferent, results[2].Operation.Verdict)
}

func TestBuildResultsKeysOnEitherSide(t *testing.T) {
	summarySide := []Side{
		{Key: "A", Design: "Effective", Operation: "Done"},
		{Key: "C", Design: "Effective", Operation: "Done"},
	}
	testedSide := []Side{
		{Key: "A", Design: "Effective", Operation: "Done"},
		{Key: "D", Design: "Effective", Operation: "Done"},
	}

	results := BuildResults(summarySide, testedSide, defaultNormalizer())

	assert.Len(t, results, 3)
	assert.Equal(t, "A", results[0].Key)
	assert.Equal(t, PairMatch, results[0].Verdict)

	// C exists only on the summary side
	assert.Equal(t, "C", results[1].Key)
	assert.Equal(t, VerdictMissing, results[1].Design.Verdict)

	// D exists only on the tested side, reported after summary-order keys
	assert.Equal(t, "D", results[2].Key)
	assert.Equal(t, VerdictMissing, results[2].Design.Verdict)
}

func TestBuildResultsKeyNormalization(t *testing.T) {
	summarySide := []Side{{Key: " PE - 6", Design: "Effective", Operation: "Done"}}
	testedSide := []Side{{Key: "PE-6", Design: "Effective", Operation: "Done"}}

	results := BuildResults(summarySide, testedSide, defaultNormalizer())

	assert.Len(t, results, 1)
	assert.Equal(t, PairMatch, results[0].Verdict)
}
