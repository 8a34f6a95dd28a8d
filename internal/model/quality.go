package model

// ScoreBlock is a named quality sub-assessment on a 1-5 scale. The dampener
// rescales an existing Score, it never invents a block.
type ScoreBlock struct {
	Name  string   `json:"name"`
	Score int      `json:"score"` // 1-5
	Notes []string `json:"notes,omitempty"`
}

// QualityAssessment is the oracle's methodological quality judgment after
// confidence-weighted dampening.
type QualityAssessment struct {
	Blocks       []ScoreBlock `json:"blocks"`
	OverallScore int          `json:"overall_score"`        // 0-100
	Confidence   *int         `json:"confidence,omitempty"` // oracle self-report, 0-100
	Strengths    []string     `json:"strengths,omitempty"`
	Limitations  []string     `json:"limitations,omitempty"`
	Dampened     bool         `json:"dampened"` // whether scores were discounted
}
