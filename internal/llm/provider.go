package llm

import (
	"context"
	"fmt"
	"strings"
)

// systemPrompt constrains every oracle call. The JSON-only instruction is a
// request, not a guarantee: responses still go through extraction and the
// tolerant payload parser.
const systemPrompt = "You are a biomedical study appraiser. Respond with a single JSON object and nothing else: no prose, no markdown fences."

// maxPromptChars bounds how much document text is embedded in a prompt.
const maxPromptChars = 12000

// Provider defines the interface for classification/assessment oracles.
type Provider interface {
	// Name returns the provider name
	Name() string

	// Classify asks the oracle to label the study design described by the text.
	Classify(ctx context.Context, req Request) (*Response, error)

	// Assess asks the oracle to judge methodological quality of the text.
	Assess(ctx context.Context, req Request) (*Response, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// Request contains the input for an oracle call.
type Request struct {
	// Text is the document excerpt under analysis.
	Text string

	// Model is the specific model to use (provider-specific)
	Model string

	// MaxTokens limits the response length
	MaxTokens int
}

// Response contains the oracle's output with the extracted JSON payload.
// Payload is raw bytes: parsing and trust decisions belong to the caller.
type Response struct {
	Payload    []byte
	Content    string
	Model      string
	TokensUsed int
}

// Config holds oracle provider configuration
type Config struct {
	// Provider name: "openai", "anthropic", "ollama", ""
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for OpenAI/Anthropic
	APIKey string

	// BaseURL for custom endpoints (e.g., Ollama)
	BaseURL string

	// Timeout for API requests
	Timeout int // seconds

	// MaxTokens for response generation
	MaxTokens int

	// Proxy settings
	HTTPProxy  string
	HTTPSProxy string
	NoProxy    string
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Provider:  "", // Disabled by default
		Model:     "",
		Timeout:   30,
		MaxTokens: 1000,
	}
}

// BuildClassifyPrompt constructs the study classification prompt.
func BuildClassifyPrompt(text string) string {
	return fmt.Sprintf(`Classify the study design described in the following biomedical text.

Return JSON with exactly these fields:
{
  "studyType": one of ["RCT","Cohort","CaseControl","CrossSectional","SystematicReview","MetaAnalysis","DiagnosticAccuracy","CaseReport","CaseSeries","Qualitative","BasicScience","Other"],
  "framework": one of ["CONSORT","STROBE","PRISMA","STARD","CARE","COREQ","PICO","None"],
  "confidence": number between 0 and 1,
  "reasons": array of short strings quoting the textual evidence for your choice
}

Use "Other" and "None" when uncertain. Never guess a specific type without evidence.

Text:
%s`, truncate(text, maxPromptChars))
}

// BuildAssessPrompt constructs the methodological quality assessment prompt.
func BuildAssessPrompt(text string) string {
	return fmt.Sprintf(`Assess the methodological quality of the following biomedical methods text.

Return JSON with exactly these fields:
{
  "scores": [
    {"name": "randomization", "score": 1-5, "notes": [strings]},
    {"name": "blinding", "score": 1-5, "notes": [strings]},
    {"name": "sample_size", "score": 1-5, "notes": [strings]},
    {"name": "statistical_rigor", "score": 1-5, "notes": [strings]},
    {"name": "reporting", "score": 1-5, "notes": [strings]}
  ],
  "overallScore": integer 0-100,
  "confidence": integer 0-100 stating how confident you are that this text is a genuine methods section,
  "strengths": array of short strings,
  "limitations": array of short strings
}

Score only what the text supports. Omit a sub-score rather than invent one.

Text:
%s`, truncate(text, maxPromptChars))
}

// ExtractJSON pulls the first JSON object out of a possibly chatty completion:
// fenced code blocks are unwrapped, otherwise the outermost brace pair is
// taken. Returns nil when no object is present.
func ExtractJSON(content string) []byte {
	content = strings.TrimSpace(content)

	if idx := strings.Index(content, "```"); idx >= 0 {
		rest := content[idx+3:]
		rest = strings.TrimPrefix(rest, "json")
		if end := strings.Index(rest, "```"); end >= 0 {
			content = strings.TrimSpace(rest[:end])
		}
	}

	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start < 0 || end <= start {
		return nil
	}
	return []byte(content[start : end+1])
}

func truncate(text string, limit int) string {
	if len(text) <= limit {
		return text
	}
	return text[:limit]
}
