package qa

import (
	"context"
	"fmt"

	"scan-qa/pkg/config"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"
)

// Generator produces a completion for a single prompt
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Model() string
}

// LangChainGenerator adapts a langchaingo model to Generator
type LangChainGenerator struct {
	llm   llms.Model
	model string
}

// NewLangChainGenerator creates the ollama or openai backed generator named in cfg
func NewLangChainGenerator(cfg config.LLMConfig) (*LangChainGenerator, error) {
	var (
		model llms.Model
		err   error
	)

	switch cfg.Provider {
	case "ollama", "":
		opts := []ollama.Option{ollama.WithModel(cfg.Model)}
		if cfg.ServerURL != "" {
			opts = append(opts, ollama.WithServerURL(cfg.ServerURL))
		}
		model, err = ollama.New(opts...)
	case "openai":
		opts := []openai.Option{openai.WithModel(cfg.Model), openai.WithToken(cfg.APIKey)}
		if cfg.ServerURL != "" {
			opts = append(opts, openai.WithBaseURL(cfg.ServerURL))
		}
		model, err = openai.New(opts...)
	default:
		return nil, fmt.Errorf("unsupported llm provider: %s", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("create %s client: %w", cfg.Provider, err)
	}

	return &LangChainGenerator{llm: model, model: cfg.Model}, nil
}

// Generate sends prompt as a single human message at temperature 0
func (g *LangChainGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, g.llm, prompt, llms.WithTemperature(0))
}

func (g *LangChainGenerator) Model() string { return g.model }
