// Package qa answers questions about a structured document with a text-generation model.
package qa

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"scan-qa/pkg/cache"
	"scan-qa/pkg/models"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"
)

// Answer is the model's reply to one question
type Answer struct {
	Question string        `json:"question"`
	Text     string        `json:"answer"`
	Cached   bool          `json:"cached"`
	Duration time.Duration `json:"duration"`
}

// Options tunes retries and caching
type Options struct {
	MaxRetries     int
	InitialBackoff time.Duration
	Timeout        time.Duration
	CacheTTL       time.Duration
}

// Answerer asks a Generator about a document, caching replies
type Answerer struct {
	gen    Generator
	cache  cache.Client
	opts   Options
	logger zerolog.Logger
}

// NewAnswerer creates an answerer; c may be nil to disable caching
func NewAnswerer(gen Generator, c cache.Client, opts Options, logger zerolog.Logger) *Answerer {
	if opts.InitialBackoff <= 0 {
		opts.InitialBackoff = 500 * time.Millisecond
	}
	if opts.MaxRetries < 0 {
		opts.MaxRetries = 0
	}
	return &Answerer{
		gen:    gen,
		cache:  c,
		opts:   opts,
		logger: logger.With().Str("component", "qa").Logger(),
	}
}

// Ask answers question using only document
func (a *Answerer) Ask(ctx context.Context, document, question string) (*Answer, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, models.NewError(models.KindValidation, "ask", models.ErrEmptyQuestion)
	}

	start := time.Now()
	key := cacheKey(a.gen.Model(), document, question)

	if a.cache != nil {
		if hit, err := a.cache.Get(ctx, key); err == nil {
			a.logger.Debug().Str("question", question).Msg("answer served from cache")
			return &Answer{Question: question, Text: string(hit), Cached: true, Duration: time.Since(start)}, nil
		} else if !errors.Is(err, cache.ErrCacheMiss) {
			a.logger.Warn().Err(err).Msg("cache lookup failed")
		}
	}

	text, err := a.generate(ctx, BuildPrompt(document, question))
	if err != nil {
		return nil, models.NewError(models.KindLLM, "ask", fmt.Errorf("%w: %v", models.ErrLLMRequestFailed, err))
	}

	if a.cache != nil {
		if err := a.cache.Set(ctx, key, []byte(text), a.opts.CacheTTL); err != nil {
			a.logger.Warn().Err(err).Msg("cache store failed")
		}
	}

	elapsed := time.Since(start)
	a.logger.Info().
		Str("model", a.gen.Model()).
		Dur("duration", elapsed).
		Int("answer_len", len(text)).
		Msg("question answered")

	return &Answer{Question: question, Text: text, Duration: elapsed}, nil
}

func (a *Answerer) generate(ctx context.Context, prompt string) (string, error) {
	if a.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.opts.Timeout)
		defer cancel()
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = a.opts.InitialBackoff
	b := backoff.WithContext(backoff.WithMaxRetries(policy, uint64(a.opts.MaxRetries)), ctx)

	var text string
	attempt := 0
	err := backoff.Retry(func() error {
		attempt++
		out, err := a.gen.Generate(ctx, prompt)
		if err != nil {
			if ctx.Err() != nil {
				return backoff.Permanent(err)
			}
			a.logger.Warn().Err(err).Int("attempt", attempt).Msg("generation failed")
			return err
		}
		text = strings.TrimSpace(out)
		return nil
	}, b)
	return text, err
}

func cacheKey(model, document, question string) string {
	h := sha256.New()
	for _, part := range []string{model, document, question} {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}
	return "qa:" + hex.EncodeToString(h.Sum(nil))
}
