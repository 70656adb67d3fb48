package rag

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_retriever.go -package=mocks github.com/lakshitcodes/DocuMed/internal/rag Retriever
//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_chat_client.go -package=mocks github.com/lakshitcodes/DocuMed/internal/rag ChatClient

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/lakshitcodes/DocuMed/internal/contextutil"
	"github.com/lakshitcodes/DocuMed/internal/llm"
	"github.com/lakshitcodes/DocuMed/internal/paper"
	"github.com/lakshitcodes/DocuMed/internal/vectorindex"
)

const (
	// DefaultK is the number of chunks retrieved when the request leaves K unset.
	DefaultK = 5
	// MaxK caps the number of retrieved chunks.
	MaxK = 20

	// NotIndexedMessage is returned as the analysis before any harvest has run.
	NotIndexedMessage = "No papers have been processed yet. Please update the database first."
)

// ErrSynthesis wraps failures of the language model call.
var ErrSynthesis = errors.New("answer synthesis failed")

const systemPrompt = "You are a medical research assistant analyzing academic papers. " +
	"Given the provided research papers, give a detailed analysis focusing on the practical implications and key takeaways. " +
	"Be specific and factual. Focus on well-supported conclusions and clearly indicate any uncertainty. " +
	"Include numerical data and statistics when available."

const answerStructure = `Follow this structure in your response:
1. Key Findings (focus on the most significant and well-supported conclusions)
2. Clinical Implications (specific, actionable insights for medical professionals)
3. Critical Analysis (evaluate the strength of evidence and any limitations)
4. Recommendations (concrete, evidence-based suggestions)
5. Referenced Papers (the exact titles of the papers you relied on, one per line)`

// Engine answers research questions from the indexed papers.
type Engine interface {
	Ask(ctx context.Context, req AskRequest) (AskResponse, error)
}

// Retriever finds the chunks most similar to a question.
type Retriever interface {
	Search(ctx context.Context, query string, k int) ([]vectorindex.Hit, error)
	IsEmpty(ctx context.Context) (bool, error)
}

// ChatClient sends a conversation to the language model.
type ChatClient interface {
	ChatWithMessages(ctx context.Context, messages []llm.Message, params llm.ChatParams) (string, error)
}

type ragEngine struct {
	retriever Retriever
	llmClient ChatClient
	defaultK  int
	logger    *slog.Logger
}

// Option configures the engine.
type Option func(*ragEngine)

// WithDefaultK sets the number of chunks retrieved when a request leaves K
// unset. Values outside 1..MaxK are ignored.
func WithDefaultK(k int) Option {
	return func(e *ragEngine) {
		if k > 0 && k <= MaxK {
			e.defaultK = k
		}
	}
}

// NewEngine creates a new answer synthesizer.
func NewEngine(retriever Retriever, llmClient ChatClient, opts ...Option) Engine {
	e := &ragEngine{
		retriever: retriever,
		llmClient: llmClient,
		defaultK:  DefaultK,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *ragEngine) getLogger(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(contextutil.LoggerKey()).(*slog.Logger); ok {
		return l
	}
	return e.logger
}

// Ask retrieves the closest chunks, sends them to the model in a single call
// and returns the analysis with the papers it was grounded on.
func (e *ragEngine) Ask(ctx context.Context, req AskRequest) (AskResponse, error) {
	logger := e.getLogger(ctx)

	k := e.clampK(req.K)
	logger.InfoContext(ctx, "research query started", "question_length", len(req.Question), "k", k)

	empty, err := e.retriever.IsEmpty(ctx)
	if err != nil {
		return AskResponse{}, fmt.Errorf("failed to check index: %w", err)
	}
	if empty {
		logger.InfoContext(ctx, "index is empty, skipping synthesis")
		return AskResponse{Analysis: NotIndexedMessage, Papers: []paper.Ref{}}, nil
	}

	hits, err := e.retriever.Search(ctx, req.Question, k)
	if err != nil {
		logger.ErrorContext(ctx, "failed to search index", "error", err)
		return AskResponse{}, fmt.Errorf("failed to search index: %w", err)
	}
	if len(hits) == 0 {
		return AskResponse{Analysis: NotIndexedMessage, Papers: []paper.Ref{}}, nil
	}

	if logger.Enabled(ctx, slog.LevelDebug) {
		for i, hit := range hits {
			logger.DebugContext(ctx, "retrieved chunk", "rank", i+1, "score", hit.Score, "title", hit.Meta.Title, "source", hit.Meta.Source)
		}
	}

	contextString := buildContext(hits)
	messages := []llm.Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: buildUserMessage(contextString, req.Question)},
	}

	logger.InfoContext(ctx, "sending request to LLM", "chunks", len(hits), "context_length", len(contextString))
	analysis, err := e.llmClient.ChatWithMessages(ctx, messages, llm.ChatParams{
		Temperature: 0.7,
	})
	if err != nil {
		logger.ErrorContext(ctx, "failed to get LLM response", "error", err)
		return AskResponse{}, fmt.Errorf("%w: %w", ErrSynthesis, err)
	}

	sections := ParseSections(analysis)
	papers := citations(hits, referencedTitles(sections))

	logger.InfoContext(ctx, "research query completed", "analysis_length", len(analysis), "papers", len(papers), "sections", len(sections))
	return AskResponse{
		Analysis: analysis,
		Papers:   papers,
		Sections: sections,
		Indexed:  true,
	}, nil
}

func (e *ragEngine) clampK(k int) int {
	if k <= 0 {
		return e.defaultK
	}
	if k > MaxK {
		return MaxK
	}
	return k
}

// buildContext joins chunk texts in rank order.
func buildContext(hits []vectorindex.Hit) string {
	texts := make([]string, len(hits))
	for i, hit := range hits {
		texts[i] = hit.Text
	}
	return strings.Join(texts, "\n\n")
}

func buildUserMessage(contextString, question string) string {
	var b strings.Builder
	b.WriteString("Research papers:\n")
	b.WriteString(contextString)
	b.WriteString("\n\nQuestion: ")
	b.WriteString(question)
	b.WriteString("\n\n")
	b.WriteString(answerStructure)
	return b.String()
}
