package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"topic-quiz/internal/config"
	"topic-quiz/internal/domain"
	"topic-quiz/internal/keyring"
	"topic-quiz/internal/logger"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
	"github.com/tmc/langchaingo/llms/ollama"
	"go.uber.org/zap"
)

const (
	ProviderGoogleAI = "googleai"
	ProviderOllama   = "ollama"
)

// Generator implements domain.TextGenerator. With several API keys configured
// each call goes to the next client in the ring.
type Generator struct {
	models  *keyring.Ring[llms.Model]
	timeout time.Duration
}

// New builds one langchaingo client per configured key.
func New(ctx context.Context, cfg config.LLMConfig) (*Generator, error) {
	var models []llms.Model

	switch cfg.Provider {
	case ProviderGoogleAI, "":
		if len(cfg.APIKeys) == 0 {
			return nil, fmt.Errorf("llm: at least one API key is required for %s", ProviderGoogleAI)
		}
		for i, key := range cfg.APIKeys {
			client, err := googleai.New(ctx,
				googleai.WithAPIKey(key),
				googleai.WithDefaultModel(cfg.Model),
			)
			if err != nil {
				return nil, fmt.Errorf("llm: failed to create googleai client #%d: %w", i, err)
			}
			models = append(models, client)
		}
	case ProviderOllama:
		client, err := ollama.New(
			ollama.WithModel(cfg.Model),
			ollama.WithServerURL(cfg.ServerURL),
		)
		if err != nil {
			return nil, fmt.Errorf("llm: failed to create ollama client: %w", err)
		}
		models = append(models, client)
	default:
		return nil, fmt.Errorf("llm: unsupported provider %q", cfg.Provider)
	}

	logger.Get().Info("LLM generator initialized",
		zap.String("provider", cfg.Provider),
		zap.String("model", cfg.Model),
		zap.Int("clients", len(models)))

	return NewWithModels(models, cfg.Timeout), nil
}

// NewWithModels wraps already constructed models.
func NewWithModels(models []llms.Model, timeout time.Duration) *Generator {
	return &Generator{models: keyring.New(models), timeout: timeout}
}

// Generate sends a single prompt and returns the raw text answer.
func (g *Generator) Generate(ctx context.Context, prompt string, opts domain.GenerateOptions) (string, error) {
	model, ok := g.models.Next()
	if !ok {
		return "", domain.NewLLMServiceError(errors.New("no LLM client configured"))
	}

	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	callOpts := []llms.CallOption{
		llms.WithTemperature(opts.Temperature),
		llms.WithTopP(opts.TopP),
		llms.WithTopK(opts.TopK),
		llms.WithMaxTokens(opts.MaxTokens),
	}
	if opts.JSON {
		callOpts = append(callOpts, llms.WithJSONMode())
	}

	l := logger.Get()
	start := time.Now()
	response, err := llms.GenerateFromSinglePrompt(ctx, model, prompt, callOpts...)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			l.Error("LLM request timed out", zap.Duration("timeout", g.timeout))
			return "", domain.NewLLMServiceError(fmt.Errorf("LLM request timed out: %w", err))
		}
		l.Error("Failed to get response from LLM", zap.Error(err))
		return "", domain.NewLLMServiceError(err)
	}

	l.Debug("LLM response received",
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("length", len(response)))
	return response, nil
}

var _ domain.TextGenerator = (*Generator)(nil)
