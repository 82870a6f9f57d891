package market

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/finsight-app/finsight-backend/internal/config"
)

// Default watch-lists shown on the dashboard.
var (
	indianWatchlist = []Listing{
		{Symbol: "RELIANCE.NSE", Name: "Reliance Industries"},
		{Symbol: "TCS.NSE", Name: "Tata Consultancy Services"},
		{Symbol: "INFY.NSE", Name: "Infosys"},
		{Symbol: "HDFCBANK.NSE", Name: "HDFC Bank"},
		{Symbol: "ICICIBANK.NSE", Name: "ICICI Bank"},
		{Symbol: "ITC.NSE", Name: "ITC Limited"},
	}
	usWatchlist = []Listing{
		{Symbol: "AAPL", Name: "Apple Inc."},
		{Symbol: "GOOGL", Name: "Alphabet Inc."},
		{Symbol: "MSFT", Name: "Microsoft Corporation"},
		{Symbol: "TSLA", Name: "Tesla Inc."},
		{Symbol: "AMZN", Name: "Amazon.com Inc."},
		{Symbol: "NVDA", Name: "NVIDIA Corporation"},
	}
)

// Service serves the market overview. Providers are tried in order per
// symbol; the overview itself never fails, falling back to the fixed mock
// dataset when no provider returns anything.
type Service struct {
	providers []Provider
	log       zerolog.Logger
	now       func() time.Time
}

// NewService builds the provider chain from configured API keys: Twelve Data
// first, then Alpha Vantage, then FMP for US listings.
func NewService(cfg config.MarketConfig, log zerolog.Logger) *Service {
	return NewServiceWithProviders([]Provider{
		NewTwelveData(cfg.TwelveDataKey),
		NewAlphaVantage(cfg.AlphaVantageKey),
		NewFMP(cfg.FMPKey),
	}, log)
}

func NewServiceWithProviders(providers []Provider, log zerolog.Logger) *Service {
	return &Service{providers: providers, log: log, now: time.Now}
}

// Overview fetches both watch-lists concurrently and attaches index values.
func (s *Service) Overview(ctx context.Context) Overview {
	var (
		wg     sync.WaitGroup
		indian []StockPrice
		us     []StockPrice
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		indian = s.fetchBatch(ctx, indianWatchlist, MarketIndian)
	}()
	go func() {
		defer wg.Done()
		us = s.fetchBatch(ctx, usWatchlist, MarketUS)
	}()
	wg.Wait()

	if len(indian) == 0 && len(us) == 0 {
		s.log.Warn().Msg("market: no provider returned quotes, serving mock dataset")
		return mockOverview(s.now())
	}

	return Overview{
		IndianStocks: indian,
		USStocks:     us,
		Indices:      mockIndices(),
		LastUpdated:  s.now(),
	}
}

// fetchBatch resolves each listing on its own goroutine, preserving
// watch-list order. Listings no provider can quote are dropped.
func (s *Service) fetchBatch(ctx context.Context, listings []Listing, m Market) []StockPrice {
	results := make([]*StockPrice, len(listings))

	var wg sync.WaitGroup
	for i, l := range listings {
		wg.Add(1)
		go func(i int, l Listing) {
			defer wg.Done()
			results[i] = s.quote(ctx, l, m)
		}(i, l)
	}
	wg.Wait()

	out := make([]StockPrice, 0, len(listings))
	for _, r := range results {
		if r != nil {
			out = append(out, *r)
		}
	}
	return out
}

func (s *Service) quote(ctx context.Context, l Listing, m Market) *StockPrice {
	for _, p := range s.providers {
		if !p.Configured() || !p.Supports(m) {
			continue
		}
		price, err := p.Quote(ctx, l.Symbol, l.Name, m)
		if err != nil {
			s.log.Debug().Err(err).Str("provider", p.Name()).Str("symbol", l.Symbol).
				Msg("market: provider failed, trying next")
			continue
		}
		if price != nil {
			return price
		}
	}
	return nil
}
