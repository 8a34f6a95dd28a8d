package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/pkarpov/rigor/internal/cache"
	"github.com/pkarpov/rigor/internal/classify"
	"github.com/pkarpov/rigor/internal/llm"
	"github.com/pkarpov/rigor/internal/model"
	"github.com/pkarpov/rigor/internal/score"
	"github.com/pkarpov/rigor/internal/validate"
)

// Pipeline runs the full document check: deterministic validity gate, oracle
// classification and quality assessment, reconciliation, score dampening.
// The oracle is optional; without one the deterministic stages still run.
type Pipeline struct {
	cfg      *model.Config
	provider llm.Provider
	cache    cache.Cache
	fetcher  *Fetcher
}

// New creates a pipeline from the configuration. Provider construction fails
// only on misconfiguration; an empty provider name disables the oracle.
func New(cfg *model.Config) (*Pipeline, error) {
	provider, err := llm.NewProvider(llm.ConfigFromModel(cfg.LLM))
	if err != nil {
		return nil, fmt.Errorf("configure oracle: %w", err)
	}

	var responseCache cache.Cache
	if cfg.Cache.Enabled {
		if cfg.Cache.Dir != "" {
			responseCache = cache.NewLayeredCache(cfg.Cache.TTL, cfg.Cache.Dir, cfg.Cache.TTL)
		} else {
			responseCache = cache.NewMemoryCache(cfg.Cache.TTL, 10*time.Minute)
		}
	}

	return &Pipeline{
		cfg:      cfg,
		provider: provider,
		cache:    responseCache,
		fetcher:  NewFetcher(cfg.HTTP),
	}, nil
}

// WithProvider replaces the oracle provider. Used by tests and by callers
// that construct providers themselves.
func (p *Pipeline) WithProvider(provider llm.Provider) *Pipeline {
	p.provider = provider
	return p
}

// CheckURL fetches the document at the URL and runs the full check on it.
func (p *Pipeline) CheckURL(ctx context.Context, rawURL string) (*model.Report, error) {
	fetched, err := p.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	report := p.CheckText(ctx, fetched.Subject, rawURL, fetched.Text)
	report.FetchMeta = &fetched.Meta
	return report, nil
}

// CheckText runs the full check on an in-memory document excerpt. It always
// returns a report: oracle failures degrade to warnings, never to an error.
func (p *Pipeline) CheckText(ctx context.Context, subject, source, text string) *model.Report {
	report := &model.Report{
		Subject:    subject,
		Source:     source,
		CheckedAt:  time.Now().UTC(),
		Validation: validate.MethodologyText(text),
		Principles: model.DefaultPrinciples(),
	}

	if !report.Validation.IsValid {
		return report
	}

	if p.provider == nil {
		report.Warnings = append(report.Warnings,
			"no oracle configured: classification and quality assessment skipped")
		return report
	}

	request := llm.Request{
		Text:      text,
		Model:     p.cfg.LLM.Model,
		MaxTokens: p.cfg.LLM.MaxTokens,
	}

	var (
		wg           sync.WaitGroup
		classifyResp *oracleResult
		assessResp   *oracleResult
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		classifyResp = p.callOracle(ctx, "classify", text, request, p.provider.Classify)
	}()
	go func() {
		defer wg.Done()
		assessResp = p.callOracle(ctx, "assess", text, request, p.provider.Assess)
	}()
	wg.Wait()

	meta := &model.OracleMeta{Provider: p.provider.Name(), Model: p.cfg.LLM.Model}

	if classifyResp.err != nil {
		report.Warnings = append(report.Warnings,
			fmt.Sprintf("classification unavailable: %v", classifyResp.err))
	} else {
		payload := llm.ParseClassification(classifyResp.payload)
		record := classify.Reconcile(
			payload.StudyType.Value,
			payload.Framework.Value,
			payload.ConfidencePtr(),
			payload.Reasons.Values,
		)
		report.Classification = &record
		meta.TokensUsed += classifyResp.tokens
		if classifyResp.model != "" {
			meta.Model = classifyResp.model
		}
	}

	if assessResp.err != nil {
		report.Warnings = append(report.Warnings,
			fmt.Sprintf("quality assessment unavailable: %v", assessResp.err))
	} else {
		payload := llm.ParseAssessment(assessResp.payload)
		assessment := score.Dampen(payload.ToAssessment(), report.Validation.Confidence)
		report.Assessment = &assessment
		meta.TokensUsed += assessResp.tokens
		if assessResp.model != "" {
			meta.Model = assessResp.model
		}
	}

	if classifyResp.err == nil || assessResp.err == nil {
		meta.FromCache = classifyResp.fromCache && assessResp.fromCache
		report.Oracle = meta
	}

	return report
}

type oracleResult struct {
	payload   []byte
	model     string
	tokens    int
	fromCache bool
	err       error
}

// cachedResponse is the serialized form of an oracle response stored in the
// cache. Only the extracted payload and accounting metadata survive.
type cachedResponse struct {
	Payload    json.RawMessage `json:"payload"`
	Model      string          `json:"model,omitempty"`
	TokensUsed int             `json:"tokens_used,omitempty"`
}

func (p *Pipeline) callOracle(
	ctx context.Context,
	operation string,
	text string,
	req llm.Request,
	call func(context.Context, llm.Request) (*llm.Response, error),
) *oracleResult {
	key := cache.Key(operation, text)

	if p.cache != nil {
		if data, ok := p.cache.Get(key); ok {
			var cached cachedResponse
			if err := json.Unmarshal(data, &cached); err == nil {
				return &oracleResult{
					payload:   cached.Payload,
					model:     cached.Model,
					fromCache: true,
				}
			}
		}
	}

	resp, err := call(ctx, req)
	if err != nil {
		return &oracleResult{err: err}
	}
	if len(resp.Payload) == 0 {
		return &oracleResult{err: fmt.Errorf("%s response contained no JSON object", operation)}
	}

	if p.cache != nil {
		data, err := json.Marshal(cachedResponse{
			Payload:    resp.Payload,
			Model:      resp.Model,
			TokensUsed: resp.TokensUsed,
		})
		if err == nil {
			_ = p.cache.Set(key, data, p.cfg.Cache.TTL)
		}
	}

	return &oracleResult{
		payload: resp.Payload,
		model:   resp.Model,
		tokens:  resp.TokensUsed,
	}
}
