package extract

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Jung-Seung-hwa/genmind/ai"
	"github.com/Jung-Seung-hwa/genmind/core"
)

const extractionSystemPrompt = "너는 한국어 문서 요약·FAQ 추출 어시스턴트다."

const extractionPromptTemplate = `
너는 한국어 법령/규정 문서 섹션에서 FAQ를 추출한다.

출력 형식(중요): 오직 JSON 배열만 출력.
각 항목은 {"question":"...", "answer":"...", "confidence":0~1, "ref_article":"제7조(…)"} 형식.

규칙:
- 최대 %d개
- 문서에 없는 내용은 "근거 부족", confidence=0.0~0.3, ref_article=""
- answer는 간결·정확·조건/예외 포함
- ref_article에는 해당 조문/항목을 간단히 기입

섹션:
"""%s"""`

const extractionTemperature = 0.2

// Result is the outcome of extracting a whole document.
type Result struct {
	Items []core.ExtractedItem

	// Sections is the number of sections the document was split into.
	Sections int

	// FailedSections counts sections whose model calls failed after all
	// retries. Their items are simply missing from Items.
	FailedSections int
}

// Extractor turns cleaned document text into deduplicated Q/A items using
// a chat model.
type Extractor struct {
	generator ai.Generator
	cfg       *Config
	logger    *slog.Logger
}

// NewExtractor creates an Extractor. A nil cfg uses DefaultConfig.
func NewExtractor(generator ai.Generator, cfg *Config) (*Extractor, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Extractor{
		generator: generator,
		cfg:       cfg,
		logger:    slog.Default().With("component", "extractor"),
	}, nil
}

// buildPrompt renders the extraction prompt for one section. The section
// text is truncated to the section size limit as a final guard.
func (e *Extractor) buildPrompt(sectionText string) string {
	return fmt.Sprintf(extractionPromptTemplate, e.cfg.MaxItemsPerSection, truncateRunes(sectionText, e.cfg.MaxSectionChars))
}

// ExtractSection runs the model over a single section and returns the
// parsed candidate items, tagged with the section index and source file.
// The model call is retried; a response that parses to zero items is not
// an error.
func (e *Extractor) ExtractSection(ctx context.Context, section core.Section, sourceFile string) ([]core.ExtractedItem, error) {
	prompt := e.buildPrompt(section.Text)

	var response string
	err := RetryLinear(ctx, func() error {
		var genErr error
		response, genErr = e.generator.Generate(ctx, extractionSystemPrompt, prompt, extractionTemperature)
		return genErr
	}, e.cfg.MaxAttempts, e.cfg.RetryBaseDelay)
	if err != nil {
		return nil, fmt.Errorf("%w: section %d: %w", ErrGenerationFailed, section.Index, err)
	}

	raw := ParseModelResponse(response)
	items := make([]core.ExtractedItem, 0, len(raw))
	for _, r := range raw {
		items = append(items, core.ExtractedItem{
			Question:   r.Question,
			Answer:     r.Answer,
			Confidence: r.Confidence,
			RefArticle: r.RefArticle,
			SectionId:  section.Index,
			SourceFile: sourceFile,
		})
	}
	return items, nil
}

// ExtractText extracts Q/A items from cleaned document text.
//
// Sections are processed sequentially. A section whose model calls fail
// after all retries is logged, counted and skipped; it never fails the
// document. The collected items are post-fixed, filtered by confidence
// and deduplicated by question similarity, in that order.
func (e *Extractor) ExtractText(ctx context.Context, text, sourceFile string) (*Result, error) {
	if text == "" {
		return &Result{}, nil
	}

	sections := SplitSections(text, e.cfg)
	result := &Result{Sections: len(sections)}

	var items []core.ExtractedItem
	for _, section := range sections {
		sectionItems, err := e.ExtractSection(ctx, section, sourceFile)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			e.logger.Warn("section extraction failed",
				"sourceFile", sourceFile,
				"section", section.Index,
				"error", err)
			result.FailedSections++
			continue
		}
		items = append(items, sectionItems...)
	}

	for i := range items {
		PostFix(&items[i], e.cfg.MinAnswerChars)
	}
	items = FilterByConfidence(items, e.cfg.MinConfidence)
	items = Dedup(items, e.cfg.DedupThreshold)

	result.Items = items
	e.logger.Info("document extraction finished",
		"sourceFile", sourceFile,
		"sections", result.Sections,
		"failedSections", result.FailedSections,
		"items", len(items))
	return result, nil
}

// ExtractFile extracts Q/A items from a PDF file on disk. A document that
// opens but yields no text produces an empty result, not an error; only
// unreadable documents fail.
func (e *Extractor) ExtractFile(ctx context.Context, path, sourceFile string) (*Result, error) {
	text, err := ExtractPDF(path)
	if err != nil {
		return nil, err
	}
	return e.ExtractText(ctx, text, sourceFile)
}
