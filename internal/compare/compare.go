// Package compare implements the conclusion pipeline: it aligns the claimed
// design/operation results from a workbook's summary sheet with the results
// actually recorded on each control sheet, and reports per-field verdicts.
package compare

import (
	"strconv"
	"strings"

	"ctrlsheet/internal/schema"
)

// Field verdicts.
type Verdict string

const (
	VerdictEqual     Verdict = "equal"
	VerdictDifferent Verdict = "different"
	VerdictMissing   Verdict = "missing"
)

// Pair verdicts.
const (
	PairMatch     = "match"
	PairMismatch  = "mismatch"
	PairDuplicate = "duplicate key"
)

// Normalizer is the equality policy for text comparison. Numbers are always
// compared numerically when both sides parse as numbers.
type Normalizer struct {
	TrimWhitespace bool
	IgnoreCase     bool
}

// Equal reports whether two cell values are equal under the policy.
func (n Normalizer) Equal(a, b string) bool {
	if fa, errA := strconv.ParseFloat(strings.TrimSpace(a), 64); errA == nil {
		if fb, errB := strconv.ParseFloat(strings.TrimSpace(b), 64); errB == nil {
			return fa == fb
		}
	}
	if n.TrimWhitespace {
		a = strings.TrimSpace(a)
		b = strings.TrimSpace(b)
	}
	if n.IgnoreCase {
		a = strings.ToLower(a)
		b = strings.ToLower(b)
	}
	return a == b
}

// Side holds one side's values for a control: the summary sheet's claims or
// a control sheet's tested results.
type Side struct {
	Key         string
	Description string
	Design      string
	Operation   string
}

// FieldResult is the per-field outcome of a pair comparison.
type FieldResult struct {
	Summary string
	Tested  string
	Verdict Verdict
}

// Result is one conclusion row: a record pair's values and verdicts, or a
// flagged duplicate key. Results are computed once and never mutated.
type Result struct {
	Key         string
	Description string
	Design      FieldResult
	Operation   FieldResult
	Verdict     string
}

// ComparePair compares one aligned pair. Either side may be nil when the key
// is present on only one side; the absent side's fields are missing.
func ComparePair(summary, tested *Side, n Normalizer) Result {
	result := Result{}

	if summary != nil {
		result.Key = summary.Key
		result.Description = summary.Description
		result.Design.Summary = summary.Design
		result.Operation.Summary = summary.Operation
	}
	if tested != nil {
		if result.Key == "" {
			result.Key = tested.Key
		}
		result.Design.Tested = tested.Design
		result.Operation.Tested = tested.Operation
	}

	if summary == nil || tested == nil {
		result.Design.Verdict = VerdictMissing
		result.Operation.Verdict = VerdictMissing
		result.Verdict = PairMismatch
		return result
	}

	result.Design.Verdict = fieldVerdict(summary.Design, tested.Design, n)
	result.Operation.Verdict = fieldVerdict(summary.Operation, tested.Operation, n)

	if result.Design.Verdict == VerdictEqual && result.Operation.Verdict == VerdictEqual {
		result.Verdict = PairMatch
	} else {
		result.Verdict = PairMismatch
	}
	return result
}

func fieldVerdict(a, b string, n Normalizer) Verdict {
	if n.Equal(a, b) {
		return VerdictEqual
	}
	return VerdictDifferent
}

// BuildResults aligns the two record sets by key and computes one result per
// pair. Pairing is first-occurrence-wins: a repeated key on either side is
// reported as an explicit duplicate-key row at the position it occurs, never
// silently merged. Output order is summary-sheet order followed by keys that
// appear only on the tested side, in sheet order.
func BuildResults(summarySide, testedSide []Side, n Normalizer) []Result {
	testedIndex := make(map[string]*Side, len(testedSide))
	for i := range testedSide {
		key := schema.NormalizeKey(testedSide[i].Key)
		if _, seen := testedIndex[key]; !seen {
			testedIndex[key] = &testedSide[i]
		}
	}

	var results []Result
	summarySeen := make(map[string]bool, len(summarySide))
	for i := range summarySide {
		record := &summarySide[i]
		key := schema.NormalizeKey(record.Key)
		if summarySeen[key] {
			results = append(results, duplicateResult(record, nil))
			continue
		}
		summarySeen[key] = true
		results = append(results, ComparePair(record, testedIndex[key], n))
	}

	testedSeen := make(map[string]bool, len(testedSide))
	for i := range testedSide {
		record := &testedSide[i]
		key := schema.NormalizeKey(record.Key)
		if testedSeen[key] {
			results = append(results, duplicateResult(nil, record))
			continue
		}
		testedSeen[key] = true
		if summarySeen[key] {
			continue // already paired above
		}
		results = append(results, ComparePair(nil, record, n))
	}

	return results
}

func duplicateResult(summary, tested *Side) Result {
	result := Result{Verdict: PairDuplicate}
	if summary != nil {
		result.Key = summary.Key
		result.Description = summary.Description
		result.Design.Summary = summary.Design
		result.Operation.Summary = summary.Operation
	}
	if tested != nil {
		result.Key = tested.Key
		result.Design.Tested = tested.Design
		result.Operation.Tested = tested.Operation
	}
	return result
}
