// Package score rescales oracle-reported quality scores in proportion to how
// much the surrounding evidence says the input was well-formed. The dampener
// is a pure function: it copies its inputs, holds no state, and callers must
// apply it at most once per payload (it cannot detect repeated application).
package score

import (
	"fmt"
	"math"

	"github.com/pkarpov/rigor/internal/model"
)

// fullTrustConfidence is the effective confidence at and above which scores
// pass through untouched.
const fullTrustConfidence = 80

// scaleFactor picks the dampening factor for an effective confidence below
// the full-trust cutoff. The band boundaries are empirically chosen
// calibration constants; tune against a labeled corpus before changing.
func scaleFactor(effectiveConfidence int) float64 {
	switch {
	case effectiveConfidence < 50:
		return 0.30
	case effectiveConfidence < 60:
		return 0.50
	case effectiveConfidence < 70:
		return 0.65
	default:
		return 0.80
	}
}

// Dampen returns a copy of the assessment with every sub-score and the
// overall score rescaled by the confidence band factor.
//
// Effective confidence is the max of the independently computed content
// validity confidence and the oracle's self-reported confidence: either
// source vouching for the input is enough to trust it. Sub-scores (1-5) are
// floored at 1 after rounding - a zero would read as "not assessed", which is
// a different state than "assessed but discounted". The overall score (0-100)
// has no floor. A limitation note stating the discount is prepended, not
// appended, so it renders before every other caveat.
func Dampen(assessment model.QualityAssessment, preValidationConfidence int) model.QualityAssessment {
	selfReported := 0
	if assessment.Confidence != nil {
		selfReported = *assessment.Confidence
	}

	effective := preValidationConfidence
	if selfReported > effective {
		effective = selfReported
	}

	out := assessment
	out.Blocks = append([]model.ScoreBlock(nil), assessment.Blocks...)
	out.Strengths = append([]string(nil), assessment.Strengths...)
	out.Limitations = append([]string(nil), assessment.Limitations...)

	if effective >= fullTrustConfidence {
		return out
	}

	factor := scaleFactor(effective)

	for i := range out.Blocks {
		scaled := int(math.Round(float64(out.Blocks[i].Score) * factor))
		if scaled < 1 {
			scaled = 1
		}
		out.Blocks[i].Score = scaled
	}

	out.OverallScore = int(math.Round(float64(out.OverallScore) * factor))

	note := fmt.Sprintf(
		"Quality scores were discounted: confidence in the input text is %d%% (below %d%%).",
		effective, fullTrustConfidence,
	)
	out.Limitations = append([]string{note}, out.Limitations...)
	out.Dampened = true

	return out
}
