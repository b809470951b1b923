package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/hmiyata/mailbrief/internal/config"
	"github.com/hmiyata/mailbrief/internal/fetcher"
	"github.com/hmiyata/mailbrief/internal/runner"
	"github.com/hmiyata/mailbrief/internal/store"
	"github.com/hmiyata/mailbrief/internal/summarizer"
	"github.com/hmiyata/mailbrief/internal/transcript"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	date := flag.String("date", time.Now().Format("2006-01-02"), "date to process (YYYY-MM-DD)")
	maxEmails := flag.Int64("max-emails", 0, "maximum number of emails to process (overrides config)")
	genTranscript := flag.Bool("transcript", false, "generate the narrated transcript for the date and exit")
	verbose := flag.Bool("verbose", false, "enable debug logging")
	flag.Parse()

	level := zerolog.InfoLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		Level(level).With().Timestamp().Logger()

	// Load .env if present; API keys commonly live there.
	if err := godotenv.Load(); err == nil {
		log.Debug().Msg("loaded environment from .env")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if *maxEmails > 0 {
		cfg.MaxEmails = *maxEmails
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	summ, err := summarizer.New(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build summarizer")
	}

	daily := store.NewDailyStore(cfg.OutputDir, log)
	transcripts := store.NewTranscriptStore(cfg.TranscriptDir, log)
	gen := transcript.NewGenerator(summ, log)

	// Transcript mode reads an existing daily document and needs no
	// mailbox access.
	if *genTranscript {
		r := runner.New(cfg, nil, summ, daily, transcripts, gen, log)
		if err := r.RunTranscript(ctx, *date); err != nil {
			log.Fatal().Err(err).Msg("transcript generation failed")
		}
		return
	}

	f, err := fetcher.NewGmailFetcher(ctx, fetcher.Credentials{
		ClientID:     cfg.Gmail.ClientID,
		ClientSecret: cfg.Gmail.ClientSecret,
		AccessToken:  cfg.Gmail.AccessToken,
		RefreshToken: cfg.Gmail.RefreshToken,
	}, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build Gmail fetcher")
	}

	r := runner.New(cfg, f, summ, daily, transcripts, gen, log)
	if err := r.Run(ctx, *date); err != nil {
		log.Fatal().Err(err).Msg("pipeline failed")
	}
	log.Info().Msg("done")
}
