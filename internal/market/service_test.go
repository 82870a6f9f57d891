package market

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"
)

type fakeProvider struct {
	name       string
	configured bool
	usOnly     bool
	err        error
	price      *StockPrice

	mu    sync.Mutex
	calls []string
}

func (f *fakeProvider) Name() string     { return f.name }
func (f *fakeProvider) Configured() bool { return f.configured }
func (f *fakeProvider) Supports(m Market) bool {
	return !f.usOnly || m == MarketUS
}

func (f *fakeProvider) Quote(_ context.Context, symbol, name string, m Market) (*StockPrice, error) {
	f.mu.Lock()
	f.calls = append(f.calls, symbol)
	f.mu.Unlock()

	if f.err != nil {
		return nil, f.err
	}
	if f.price == nil {
		return nil, nil
	}
	p := *f.price
	p.Symbol = symbol
	p.Name = name
	p.Market = m
	p.Currency = currencyFor(m)
	return &p, nil
}

func (f *fakeProvider) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func TestOverviewFallsBackToMock(t *testing.T) {
	svc := NewServiceWithProviders([]Provider{
		&fakeProvider{name: "a", configured: true, err: errors.New("rate limited")},
		&fakeProvider{name: "b", configured: true}, // answers with no quote
	}, zerolog.Nop())

	got := svc.Overview(context.Background())

	if len(got.IndianStocks) != 6 || len(got.USStocks) != 6 {
		t.Fatalf("mock fallback sizes = %d/%d, want 6/6", len(got.IndianStocks), len(got.USStocks))
	}
	if got.IndianStocks[0].Symbol != "RELIANCE" || got.IndianStocks[0].Currency != "INR" {
		t.Errorf("first mock Indian stock = %+v", got.IndianStocks[0])
	}
	if got.Indices.Nifty50.Value == 0 || got.Indices.Nasdaq.Value == 0 {
		t.Error("mock indices must be populated")
	}
}

func TestOverviewUsesFirstWorkingProvider(t *testing.T) {
	primary := &fakeProvider{name: "primary", configured: true, price: &StockPrice{Price: 100}}
	secondary := &fakeProvider{name: "secondary", configured: true, price: &StockPrice{Price: 999}}
	svc := NewServiceWithProviders([]Provider{primary, secondary}, zerolog.Nop())

	got := svc.Overview(context.Background())

	if len(got.IndianStocks) != len(indianWatchlist) || len(got.USStocks) != len(usWatchlist) {
		t.Fatalf("sizes = %d/%d, want full watch-lists", len(got.IndianStocks), len(got.USStocks))
	}
	for _, p := range got.IndianStocks {
		if p.Price != 100 {
			t.Errorf("%s price = %v, want 100 from the primary provider", p.Symbol, p.Price)
		}
		if p.Currency != "INR" {
			t.Errorf("%s currency = %q, want INR", p.Symbol, p.Currency)
		}
	}
	if secondary.callCount() != 0 {
		t.Errorf("secondary called %d times, want 0 while primary answers", secondary.callCount())
	}
}

func TestOverviewSkipsUnconfiguredProviders(t *testing.T) {
	unconfigured := &fakeProvider{name: "unconfigured", price: &StockPrice{Price: 1}}
	working := &fakeProvider{name: "working", configured: true, price: &StockPrice{Price: 42}}
	svc := NewServiceWithProviders([]Provider{unconfigured, working}, zerolog.Nop())

	got := svc.Overview(context.Background())

	if unconfigured.callCount() != 0 {
		t.Errorf("unconfigured provider called %d times, want 0", unconfigured.callCount())
	}
	if len(got.USStocks) == 0 || got.USStocks[0].Price != 42 {
		t.Errorf("quotes = %+v, want prices from the configured provider", got.USStocks)
	}
}

func TestOverviewUSOnlyProviderSkipsIndianListings(t *testing.T) {
	usOnly := &fakeProvider{name: "fmp", configured: true, usOnly: true, price: &StockPrice{Price: 7}}
	svc := NewServiceWithProviders([]Provider{usOnly}, zerolog.Nop())

	got := svc.Overview(context.Background())

	if len(got.IndianStocks) != 0 {
		t.Errorf("Indian quotes = %+v, want none from a US-only provider", got.IndianStocks)
	}
	if len(got.USStocks) != len(usWatchlist) {
		t.Errorf("US quotes = %d, want %d", len(got.USStocks), len(usWatchlist))
	}
}

func TestOverviewFailedSymbolsDropped(t *testing.T) {
	flaky := &fakeProvider{name: "flaky", configured: true, err: errors.New("timeout")}
	usOnly := &fakeProvider{name: "us", configured: true, usOnly: true, price: &StockPrice{Price: 3}}
	svc := NewServiceWithProviders([]Provider{flaky, usOnly}, zerolog.Nop())

	got := svc.Overview(context.Background())

	// Indian listings fail entirely and are dropped; US listings resolve via
	// the second provider, so the overview still carries real data.
	if len(got.IndianStocks) != 0 || len(got.USStocks) != len(usWatchlist) {
		t.Errorf("sizes = %d/%d, want 0/%d", len(got.IndianStocks), len(got.USStocks), len(usWatchlist))
	}
}
