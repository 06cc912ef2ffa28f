// Copyright 2025 Genmind Contributors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package search

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Jung-Seung-hwa/genmind/ai"
	"github.com/Jung-Seung-hwa/genmind/core"
	"github.com/Jung-Seung-hwa/genmind/storage"
	"github.com/Jung-Seung-hwa/genmind/vectorstore"
)

const (
	defaultTopK = 5
	maxSources  = 5

	answerTemperature = 0.2

	answerSystemPrompt = "너는 회사 내부 규정 FAQ를 근거로 답변하는 한국어 어시스턴트다."

	answerPromptTemplate = `다음 문맥을 참고하여 질문에 답하라.
- 문맥에 근거가 없으면 모른다고 답하라.
- 답변은 간결한 한국어 문장으로 작성하라.

[문맥]
%s

[질문]
%s`

	emptyContextPlaceholder = "(관련 문맥 없음)"

	// Returned without invoking any model when the question is blank.
	emptyQuestionResponse = "질문을 입력해 주세요."

	// Returned when answer generation fails. The query path never
	// surfaces an internal generation error to the caller.
	generationFallbackResponse = "죄송합니다. 지금은 답변을 생성할 수 없습니다. 잠시 후 다시 시도해 주세요."
)

// Engine answers natural-language questions over the indexed FAQ records.
//
// Answering embeds the question, retrieves the nearest index entries for
// the tenant, and asks the language model to synthesize an answer from the
// retrieved texts. The nearest match's view count is incremented as a side
// effect; increment failures never affect the returned answer.
type Engine struct {
	faqs      storage.FAQRepository
	index     *vectorstore.Index
	embedder  ai.Embedder
	generator ai.Generator
	topK      int
	logger    *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine) error

// WithTopK sets the number of index entries retrieved per question.
// Default is 5.
func WithTopK(topK int) Option {
	return func(e *Engine) error {
		if topK < 1 {
			return ErrInvalidTopK
		}
		e.topK = topK
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) error {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
		return nil
	}
}

// NewEngine creates a retrieval query engine.
func NewEngine(
	faqs storage.FAQRepository,
	index *vectorstore.Index,
	provider ai.Provider,
	opts ...Option,
) (*Engine, error) {
	if faqs == nil {
		return nil, ErrFAQRepositoryRequired
	}
	if index == nil {
		return nil, ErrIndexRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	e := &Engine{
		faqs:      faqs,
		index:     index,
		embedder:  provider.Embedder(),
		generator: provider.Generator(),
		topK:      defaultTopK,
		logger:    slog.Default().With("component", "search"),
	}

	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}

	return e, nil
}

// Ask answers a question for a tenant. A tenantID of zero searches across
// all tenants.
//
// A blank question short-circuits with a fixed response and no model calls.
// When no index entries match, the answer is synthesized from an empty
// context and the sources list is empty. Generation failures produce a
// fallback response instead of an error.
func (e *Engine) Ask(ctx context.Context, tenantID core.ID, question string) (*core.Answer, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return &core.Answer{Text: emptyQuestionResponse}, nil
	}

	vector, err := e.embedder.EmbedText(ctx, question)
	if err != nil {
		e.logger.Error("error embedding question", "err", err)
		return nil, fmt.Errorf("%w: %w", ErrEmbeddingFailed, err)
	}

	hits, err := e.index.Search(vector, e.topK, tenantID)
	if err != nil {
		return nil, err
	}

	text := e.generateAnswer(ctx, question, hits)

	if len(hits) > 0 {
		e.countView(ctx, tenantID, hits[0])
	}

	return &core.Answer{
		Text:    text,
		Sources: collectSources(hits),
	}, nil
}

// TopFAQs returns the tenant's most viewed records with dense view-count
// ranks, covering at most limit distinct ranks.
func (e *Engine) TopFAQs(ctx context.Context, tenantID core.ID, limit int) ([]*core.RankedFAQ, error) {
	return e.faqs.TopViewed(ctx, tenantID, limit)
}

func (e *Engine) generateAnswer(ctx context.Context, question string, hits []vectorstore.Hit) string {
	contextBlock := emptyContextPlaceholder
	if len(hits) > 0 {
		texts := make([]string, len(hits))
		for i, hit := range hits {
			texts[i] = hit.Entry.Text
		}
		contextBlock = strings.Join(texts, "\n\n")
	}

	prompt := fmt.Sprintf(answerPromptTemplate, contextBlock, question)
	response, err := e.generator.Generate(ctx, answerSystemPrompt, prompt, answerTemperature)
	if err != nil {
		e.logger.Error("error generating answer", "err", err)
		return generationFallbackResponse
	}
	return strings.TrimSpace(response)
}

// countView increments the view count of the nearest match. Entries
// written by older index generations may lack a record id; those fall
// back to an exact lookup by the stored question text. Failures are
// logged and never reach the answer path.
func (e *Engine) countView(ctx context.Context, tenantID core.ID, hit vectorstore.Hit) {
	id := hit.Entry.Id
	if id == 0 {
		record, err := e.faqs.FindByQuestionExact(ctx, tenantID, hit.Entry.Meta.Question)
		if err != nil {
			e.logger.Debug("view count skipped, no record for question",
				"question", hit.Entry.Meta.Question, "err", err)
			return
		}
		id = record.Id
	}

	incremented, err := e.faqs.IncrementViews(ctx, id)
	if err != nil {
		e.logger.Error("error incrementing view count", "recordID", id, "err", err)
		return
	}
	if !incremented {
		e.logger.Debug("view count skipped, record missing", "recordID", id)
	}
}

func collectSources(hits []vectorstore.Hit) []core.Source {
	seen := make(map[core.Source]bool, len(hits))
	sources := make([]core.Source, 0, len(hits))
	for _, hit := range hits {
		source := core.Source{
			Title:      hit.Entry.Meta.SourceFile,
			RefArticle: hit.Entry.Meta.RefArticle,
		}
		if source.Title == "" {
			source.Title = "출처"
		}
		if seen[source] {
			continue
		}
		seen[source] = true
		sources = append(sources, source)
		if len(sources) == maxSources {
			break
		}
	}
	return sources
}
