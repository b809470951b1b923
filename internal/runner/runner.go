// Package runner orchestrates the fetch -> normalize -> summarize -> store
// pipeline for a single invocation.
package runner

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/hmiyata/mailbrief/internal/config"
	"github.com/hmiyata/mailbrief/internal/fetcher"
	"github.com/hmiyata/mailbrief/internal/normalizer"
	"github.com/hmiyata/mailbrief/internal/store"
	"github.com/hmiyata/mailbrief/internal/summarizer"
	"github.com/hmiyata/mailbrief/internal/transcript"
)

// Runner executes one batch: fetch messages, summarize each sequentially,
// and persist the day's document. Emails are processed one at a time with a
// bounded delay between provider calls.
type Runner struct {
	cfg         *config.Config
	fetcher     fetcher.Fetcher
	summ        *summarizer.Summarizer
	daily       *store.DailyStore
	transcripts *store.TranscriptStore
	gen         *transcript.Generator
	log         zerolog.Logger
}

func New(cfg *config.Config, f fetcher.Fetcher, s *summarizer.Summarizer,
	daily *store.DailyStore, transcripts *store.TranscriptStore,
	gen *transcript.Generator, log zerolog.Logger) *Runner {
	return &Runner{
		cfg:         cfg,
		fetcher:     f,
		summ:        s,
		daily:       daily,
		transcripts: transcripts,
		gen:         gen,
		log:         log,
	}
}

// Run executes the summarization pipeline once for the given date
// (YYYY-MM-DD). A run always leaves a valid daily document behind: zero
// qualifying emails produce an empty document, and per-message failures
// fall back rather than aborting the batch.
func (r *Runner) Run(ctx context.Context, date string) error {
	r.log.Info().Str("query", r.cfg.Query).Int64("max_emails", r.cfg.MaxEmails).Msg("starting pipeline")

	msgs, err := r.fetcher.Fetch(ctx, r.cfg.Query, r.cfg.MaxEmails)
	if err != nil {
		return fmt.Errorf("runner: fetch failed: %w", err)
	}

	if len(msgs) == 0 {
		r.log.Info().Str("date", date).Msg("no qualifying emails found")
		if _, err := r.daily.WriteEmpty(date); err != nil {
			return fmt.Errorf("runner: %w", err)
		}
		return nil
	}

	fallbacks := 0
	for i, msg := range msgs {
		email := normalizer.Normalize(msg)
		r.log.Info().
			Int("index", i+1).
			Int("total", len(msgs)).
			Str("subject", email.Subject).
			Msg("summarizing email")

		record, usedFallback := r.summ.Summarize(ctx, email)
		if usedFallback {
			fallbacks++
		}

		if _, err := r.daily.Append(record, date); err != nil {
			return fmt.Errorf("runner: %w", err)
		}

		// Bounded delay between consecutive provider calls to respect
		// rate limits; none after the last email.
		if i < len(msgs)-1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(r.cfg.Delay()):
			}
		}
	}

	if fallbacks > 0 {
		r.log.Warn().Int("fallbacks", fallbacks).Int("total", len(msgs)).
			Msg("some emails used fallback summaries")
	}
	r.log.Info().Int("email_count", len(msgs)).Str("path", r.daily.Path(date)).Msg("pipeline completed")
	return nil
}

// RunTranscript generates the narrated transcript for an existing daily
// document and writes it, overwriting any previous transcript for the date.
func (r *Runner) RunTranscript(ctx context.Context, date string) error {
	if !r.daily.Exists(date) {
		return fmt.Errorf("runner: no daily document for %s; run the summarizer first", date)
	}

	doc, err := r.daily.Load(date)
	if err != nil {
		return fmt.Errorf("runner: %w", err)
	}

	content := r.gen.Generate(ctx, doc)

	path, err := r.transcripts.Write(content, date)
	if err != nil {
		return fmt.Errorf("runner: %w", err)
	}

	r.log.Info().Str("path", path).Int("email_count", doc.EmailCount).Msg("transcript generated")
	return nil
}
