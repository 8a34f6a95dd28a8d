package model

// ValidationRecord is the result of the content validity check on a block of
// text. Produced per submission, consumed once by the caller and discarded.
type ValidationRecord struct {
	IsValid    bool              `json:"is_valid"`
	Confidence int               `json:"confidence"` // 0-100
	Threshold  int               `json:"threshold"`  // validity cutoff applied to Confidence
	Reason     string            `json:"reason"`
	Details    ValidationDetails `json:"details"`
}

// ValidationDetails carries the transparent scoring breakdown so the decision
// can be audited without re-running the validator.
type ValidationDetails struct {
	TotalMatches          int            `json:"total_matches"`
	CategoriesWithMatches int            `json:"categories_with_matches"`
	AntiPatternMatches    int            `json:"anti_pattern_matches"`
	CategoryBreakdown     map[string]int `json:"category_breakdown,omitempty"`
}
