package pipeline

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/sheikhmuhammadzain/vehs-analyst/internal/analytics"
	"github.com/sheikhmuhammadzain/vehs-analyst/internal/corpus"
	"github.com/sheikhmuhammadzain/vehs-analyst/internal/index"
	"github.com/sheikhmuhammadzain/vehs-analyst/internal/llm"
	"github.com/sheikhmuhammadzain/vehs-analyst/internal/model"
)

// Pipeline orchestrates one question end to end: scope extraction,
// snippet retrieval, hazard analytics, answer synthesis. Stages two
// and four are optional; the pipeline degrades to deterministic
// analytics-only answers when the index or LLM is unavailable.
type Pipeline struct {
	corpus    *corpus.Corpus
	retriever *index.Retriever
	engine    *analytics.Engine
	provider  llm.Provider // nil when LLM is disabled
	renderer  *Renderer
	config    *model.Config
}

// NewPipeline wires a pipeline from configuration plus the already
// loaded corpus and retriever. A failing LLM provider initialization
// is downgraded to a warning: analytics never depend on it.
func NewPipeline(cfg *model.Config, c *corpus.Corpus, r *index.Retriever) *Pipeline {
	var provider llm.Provider
	if cfg.LLM.Provider != "" {
		p, err := llm.NewProvider(llm.ConfigFromModel(cfg.LLM))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to initialize LLM provider: %v\n", err)
		} else {
			provider = p
		}
	}

	return &Pipeline{
		corpus:    c,
		retriever: r,
		engine:    analytics.NewEngine(cfg.Analytics.RecencyDays),
		provider:  provider,
		renderer:  NewRenderer(),
		config:    cfg,
	}
}

// Renderer returns the pipeline's output renderer
func (p *Pipeline) Renderer() *Renderer {
	return p.renderer
}

// Ask runs the full pipeline for one question. Explicit filters take
// precedence over filters extracted from the question text.
func (p *Pipeline) Ask(ctx context.Context, question string, explicit model.ScopeFilter) (*model.Answer, error) {
	// 1. Scope extraction. Best-effort: any failure means no extracted
	// filters, and explicit ones still apply.
	extracted := llm.ExtractScope(ctx, p.provider, question)
	filters := explicit.Merge(extracted)

	// 2. Retrieval. A broken index degrades to zero snippets.
	var snippets []model.Snippet
	if p.retriever != nil {
		s, err := p.retriever.Retrieve(ctx, question)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: retrieval failed: %v\n", err)
		} else {
			snippets = s
		}
	}

	// 3. Analytics, only for hazard-shaped questions
	var ranking model.Ranking
	if IsHazardQuery(question) {
		ranking = p.engine.ComputeHazardRanking(p.corpus, filters, p.config.Analytics.TopN)
	}

	answer := &model.Answer{
		Question: question,
		Filters:  filters,
		Ranking:  ranking,
		Snippets: snippets,
		ThreadID: uuid.NewString(),
	}

	// 4. Synthesis, or the deterministic fallback
	if p.provider != nil {
		if err := p.synthesize(ctx, answer); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: answer synthesis failed: %v\n", err)
			answer.Markdown = FallbackMarkdown(question, filters, ranking, snippets)
		}
	} else {
		answer.Markdown = FallbackMarkdown(question, filters, ranking, snippets)
	}

	return answer, nil
}

// Hazards computes a ranking directly, bypassing retrieval and
// synthesis. Used by the hazards command and the /api/hazards endpoint.
func (p *Pipeline) Hazards(filters model.ScopeFilter, topN int) model.Ranking {
	if topN <= 0 {
		topN = p.config.Analytics.TopN
	}
	return p.engine.ComputeHazardRanking(p.corpus, filters, topN)
}

func (p *Pipeline) synthesize(ctx context.Context, answer *model.Answer) error {
	var system, prompt string
	if len(answer.Ranking.Top) > 0 {
		system = llm.HazardSynthesisSystem
		prompt = llm.BuildHazardPrompt(answer.Question, answer.Filters, answer.Ranking, answer.Snippets)
	} else {
		system = llm.GeneralQASystem
		prompt = llm.BuildGeneralPrompt(answer.Question, answer.Filters, answer.Snippets)
	}

	resp, err := p.provider.Complete(ctx, llm.CompletionRequest{
		System:      system,
		Prompt:      prompt,
		MaxTokens:   p.config.LLM.MaxTokens,
		Temperature: 0.2,
	})
	if err != nil {
		return err
	}

	answer.Markdown = resp.Text
	answer.Provider = p.provider.Name()
	answer.Model = resp.Model
	return nil
}
