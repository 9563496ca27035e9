package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"StockPulse/internal/analysis"
	"StockPulse/internal/collector"
	"StockPulse/internal/config"
	"StockPulse/internal/notifier"
	"StockPulse/internal/scheduler"
)

func newFetcher(cfg *config.Config) collector.Fetcher {
	switch cfg.DataSource.Provider {
	case config.ProviderREST:
		return collector.NewRESTFetcher(cfg.DataSource.BaseURL, cfg.DataSource.APIKey, cfg.Proxy)
	case config.ProviderFinanceGo:
		return collector.NewFinanceGoFetcher()
	default:
		return collector.NewYahooFetcher(cfg.Proxy)
	}
}

func newSender(cfg *config.Config) notifier.Sender {
	if cfg.DryRun {
		log.Println("[INFO] dry run: report will be printed, not posted")
		return &notifier.PreviewSender{Out: os.Stdout}
	}
	return notifier.NewDiscordNotifier(cfg.Discord.WebhookURL, cfg.Proxy)
}

func buildScheduler(ctx context.Context, cfg *config.Config) (*scheduler.Scheduler, error) {
	loc, err := time.LoadLocation(cfg.Schedule.Timezone)
	if err != nil {
		return nil, fmt.Errorf("schedule timezone: %w", err)
	}

	fetcher := newFetcher(cfg)
	log.Printf("[INFO] data source: %s", fetcher.Name())
	col := collector.NewCollector(fetcher, cfg.DataSource.LookbackDays, analysis.Options{RangeDays: cfg.Report.RangeDays})

	var logos notifier.LogoLookup
	if cfg.LogosEnabled() {
		logos = notifier.NewLogoResolver(cfg.Proxy)
	}

	return scheduler.NewScheduler(ctx, col, newSender(cfg), logos, cfg.Symbols, cfg.Discord.Username, loc), nil
}
