// Package validate decides, from raw text alone, whether an excerpt plausibly
// belongs to the methods section of a biomedical paper. It is the gate in
// front of every oracle call: no keyword evidence, no classification request.
// The scorer is a pure single pass over fixed tables, with no backtracking
// and no I/O.
package validate

import (
	"fmt"
	"math"
	"strings"

	"github.com/pkarpov/rigor/internal/model"
)

const (
	// MinTextLength is the minimum trimmed length carrying enough structure
	// to judge. Shorter input is rejected outright with confidence 0.
	MinTextLength = 100

	// ValidThreshold is the confidence cutoff for IsValid.
	ValidThreshold = 60

	// antiPatternDecay is the per-match multiplicative penalty. Empirically
	// chosen; tune against a labeled corpus before changing.
	antiPatternDecay = 0.75

	evidenceCap  = 60 // cap on the weighted-evidence component
	diversityCap = 25 // cap on the category-diversity component
	signalCap    = 15 // cap on the high-value signal bonus
)

// highValueCategories feed the signal bonus: their phrases are the strongest
// indicators that a passage describes how a study was run.
var highValueCategories = map[string]bool{
	"design":     true,
	"statistics": true,
	"studyType":  true,
}

// MethodologyText scores whether text plausibly is a methods section and
// returns a 0-100 confidence with the full diagnostic breakdown. Each trigger
// phrase counts at most once per call; matching is lowercase substring only.
func MethodologyText(text string) model.ValidationRecord {
	trimmed := strings.TrimSpace(text)
	if len(trimmed) < MinTextLength {
		return model.ValidationRecord{
			IsValid:    false,
			Confidence: 0,
			Threshold:  ValidThreshold,
			Reason:     fmt.Sprintf("Text too short to validate (%d characters, minimum %d)", len(trimmed), MinTextLength),
			Details:    model.ValidationDetails{CategoryBreakdown: map[string]int{}},
		}
	}

	lower := strings.ToLower(trimmed)

	breakdown := make(map[string]int, len(categories))
	totalMatches := 0
	categoriesWithMatches := 0
	weightedScore := 0.0
	highValueMatches := 0

	for _, cat := range categories {
		matches := 0
		for _, phrase := range cat.phrases {
			if strings.Contains(lower, phrase) {
				matches++
			}
		}
		breakdown[cat.name] = matches
		if matches == 0 {
			continue
		}
		totalMatches += matches
		categoriesWithMatches++
		weightedScore += float64(matches) * cat.weight
		if highValueCategories[cat.name] {
			highValueMatches += matches
		}
	}

	antiPatternMatches := 0
	for _, phrase := range antiPatterns {
		if strings.Contains(lower, phrase) {
			antiPatternMatches++
		}
	}

	confidence := 0.0
	if totalMatches >= 2 && weightedScore >= 3 {
		confidence = math.Min(weightedScore*4, evidenceCap)
		confidence += math.Min(float64(categoriesWithMatches)*6, diversityCap)
		confidence += math.Min(float64(highValueMatches)*2, signalCap)
	}

	// Each anti-pattern phrase cuts the remaining confidence by 25%.
	confidence *= math.Pow(antiPatternDecay, float64(antiPatternMatches))

	rounded := int(math.Round(math.Min(math.Max(confidence, 0), 100)))
	isValid := rounded >= ValidThreshold

	var reason string
	switch {
	case isValid:
		reason = fmt.Sprintf("Found %d methodology indicators across %d categories", totalMatches, categoriesWithMatches)
	case antiPatternMatches > 0:
		reason = fmt.Sprintf("Text resembles a non-methods section (%d anti-pattern matches)", antiPatternMatches)
	default:
		reason = fmt.Sprintf("Insufficient methodology evidence (%d indicators found)", totalMatches)
	}

	return model.ValidationRecord{
		IsValid:    isValid,
		Confidence: rounded,
		Threshold:  ValidThreshold,
		Reason:     reason,
		Details: model.ValidationDetails{
			TotalMatches:          totalMatches,
			CategoriesWithMatches: categoriesWithMatches,
			AntiPatternMatches:    antiPatternMatches,
			CategoryBreakdown:     breakdown,
		},
	}
}
