package llm

import (
	"encoding/json"

	"github.com/pkarpov/rigor/internal/model"
)

// The oracle's JSON is schema-hinted but not guaranteed: fields may be
// missing, null, or carry the wrong type, and the whole body may not be an
// object at all. The Loose* types absorb all of that without erroring, so
// "absent", "null", and "present-but-invalid" all collapse to Valid=false and
// the pipeline degrades to sentinel values instead of failing.

// LooseString is a string field tolerant of absence and wrong types.
type LooseString struct {
	Value string
	Valid bool
}

// UnmarshalJSON never fails: non-string values leave the field invalid.
func (s *LooseString) UnmarshalJSON(data []byte) error {
	var v string
	if err := json.Unmarshal(data, &v); err == nil {
		s.Value = v
		s.Valid = true
	}
	return nil
}

// LooseFloat is a numeric field tolerant of absence and wrong types.
type LooseFloat struct {
	Value float64
	Valid bool
}

func (f *LooseFloat) UnmarshalJSON(data []byte) error {
	var v float64
	if err := json.Unmarshal(data, &v); err == nil {
		f.Value = v
		f.Valid = true
	}
	return nil
}

// LooseInt accepts any JSON number and truncates it to an int.
type LooseInt struct {
	Value int
	Valid bool
}

func (i *LooseInt) UnmarshalJSON(data []byte) error {
	var v float64
	if err := json.Unmarshal(data, &v); err == nil {
		i.Value = int(v)
		i.Valid = true
	}
	return nil
}

// LooseStrings is a string-array field. Non-string elements are skipped; a
// bare string is accepted as a single-element list.
type LooseStrings struct {
	Values []string
	Valid  bool
}

func (s *LooseStrings) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err == nil {
		s.Valid = true
		for _, item := range raw {
			var v string
			if err := json.Unmarshal(item, &v); err == nil {
				s.Values = append(s.Values, v)
			}
		}
		return nil
	}
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		s.Values = []string{single}
		s.Valid = true
	}
	return nil
}

// ClassificationPayload is the oracle's raw classification output.
type ClassificationPayload struct {
	StudyType  LooseString  `json:"studyType"`
	Framework  LooseString  `json:"framework"`
	Confidence LooseFloat   `json:"confidence"`
	Reasons    LooseStrings `json:"reasons"`
}

// ParseClassification decodes untrusted classification JSON. It never fails:
// an unparseable body yields an all-invalid payload.
func ParseClassification(data []byte) ClassificationPayload {
	var payload ClassificationPayload
	_ = json.Unmarshal(data, &payload)
	return payload
}

// ConfidencePtr returns the self-reported confidence clamped to [0,1], or nil
// when absent or out of range beyond repair.
func (p ClassificationPayload) ConfidencePtr() *float64 {
	if !p.Confidence.Valid {
		return nil
	}
	v := p.Confidence.Value
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	return &v
}

// ScoreBlockPayload is one raw quality sub-assessment.
type ScoreBlockPayload struct {
	Name  LooseString  `json:"name"`
	Score LooseInt     `json:"score"`
	Notes LooseStrings `json:"notes"`
}

// AssessmentPayload is the oracle's raw quality-assessment output.
type AssessmentPayload struct {
	Scores       []ScoreBlockPayload `json:"scores"`
	OverallScore LooseInt            `json:"overallScore"`
	Confidence   LooseInt            `json:"confidence"`
	Strengths    LooseStrings        `json:"strengths"`
	Limitations  LooseStrings        `json:"limitations"`
}

// ParseAssessment decodes untrusted assessment JSON; it never fails.
func ParseAssessment(data []byte) AssessmentPayload {
	var payload AssessmentPayload
	_ = json.Unmarshal(data, &payload)
	return payload
}

// ToAssessment converts the raw payload into the typed model. Blocks without
// a usable score are dropped (never invented), kept scores are clamped to the
// 1-5 scale, and the overall score to 0-100.
func (p AssessmentPayload) ToAssessment() model.QualityAssessment {
	assessment := model.QualityAssessment{
		Strengths:   p.Strengths.Values,
		Limitations: p.Limitations.Values,
	}

	for _, raw := range p.Scores {
		if !raw.Score.Valid {
			continue
		}
		block := model.ScoreBlock{
			Name:  raw.Name.Value,
			Score: clamp(raw.Score.Value, 1, 5),
			Notes: raw.Notes.Values,
		}
		if block.Name == "" {
			block.Name = "unnamed"
		}
		assessment.Blocks = append(assessment.Blocks, block)
	}

	if p.OverallScore.Valid {
		assessment.OverallScore = clamp(p.OverallScore.Value, 0, 100)
	}
	if p.Confidence.Valid {
		c := clamp(p.Confidence.Value, 0, 100)
		assessment.Confidence = &c
	}

	return assessment
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
