package model

import "time"

// Report represents the complete analysis of one document excerpt.
type Report struct {
	Subject   string     `json:"subject"`              // short label for the document
	Source    string     `json:"source"`               // file path, URL, or "stdin"
	CheckedAt time.Time  `json:"checked_at"`           // when the check occurred
	FetchMeta *FetchMeta `json:"fetch_meta,omitempty"` // HTTP metadata when fetched from a URL

	Validation ValidationRecord `json:"validation"` // content validity gate result

	Classification *ClassificationRecord `json:"classification,omitempty"` // absent when gate failed or oracle disabled
	Assessment     *QualityAssessment    `json:"assessment,omitempty"`     // absent when gate failed or oracle disabled

	Oracle   *OracleMeta `json:"oracle,omitempty"` // which oracle produced the raw judgments
	Warnings []string    `json:"warnings,omitempty"`

	Principles Principles `json:"principles"` // core principles applied
}

// FetchMeta contains HTTP metadata from fetching the source
type FetchMeta struct {
	StatusCode  int    `json:"status_code"`
	ContentType string `json:"content_type,omitempty"`
	FinalURL    string `json:"final_url,omitempty"`
}

// OracleMeta records which external model produced the raw classification and
// assessment payloads. The payloads themselves are treated as untrusted.
type OracleMeta struct {
	Provider   string `json:"provider"`
	Model      string `json:"model,omitempty"`
	TokensUsed int    `json:"tokens_used,omitempty"`
	FromCache  bool   `json:"from_cache,omitempty"`
}

// Principles documents which core principles were applied
type Principles struct {
	DeterministicCore bool `json:"deterministic_core"` // rule tables, no statistics
	UntrustedOracle   bool `json:"untrusted_oracle"`   // oracle output is reconciled, never trusted
	Transparent       bool `json:"transparent"`        // all scoring explainable
}

// DefaultPrinciples returns the standard rigor principles
func DefaultPrinciples() Principles {
	return Principles{
		DeterministicCore: true,
		UntrustedOracle:   true,
		Transparent:       true,
	}
}
