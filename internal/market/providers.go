package market

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Provider fetches a single quote. A nil result with a nil error means the
// provider answered but had no usable quote; the chain moves on either way.
type Provider interface {
	Name() string
	Quote(ctx context.Context, symbol, name string, m Market) (*StockPrice, error)
	// Supports reports whether the provider can serve the market at all.
	Supports(m Market) bool
	// Configured reports whether an API key is present.
	Configured() bool
}

// TwelveDataClient queries the Twelve Data /quote endpoint. Exchange
// suffixes (.NSE/.BSE) are stripped before the call.
type TwelveDataClient struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
}

func NewTwelveData(apiKey string) *TwelveDataClient {
	return &TwelveDataClient{
		APIKey:     apiKey,
		BaseURL:    "https://api.twelvedata.com",
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *TwelveDataClient) Name() string         { return "twelve_data" }
func (c *TwelveDataClient) Supports(Market) bool { return true }
func (c *TwelveDataClient) Configured() bool     { return c.APIKey != "" }

func (c *TwelveDataClient) Quote(ctx context.Context, symbol, name string, m Market) (*StockPrice, error) {
	clean := strings.NewReplacer(".NSE", "", ".BSE", "").Replace(symbol)

	var payload struct {
		Status        string `json:"status"`
		Close         string `json:"close"`
		Change        string `json:"change"`
		PercentChange string `json:"percent_change"`
		Datetime      string `json:"datetime"`
	}
	u := fmt.Sprintf("%s/quote?symbol=%s&apikey=%s", c.BaseURL, url.QueryEscape(clean), url.QueryEscape(c.APIKey))
	if err := getJSON(ctx, c.HTTPClient, u, &payload); err != nil {
		return nil, err
	}
	if payload.Status == "error" {
		return nil, nil
	}

	updated := payload.Datetime
	if updated == "" {
		updated = time.Now().UTC().Format(time.RFC3339)
	}
	return &StockPrice{
		Symbol:        clean,
		Name:          name,
		Price:         parseNumber(payload.Close),
		Change:        parseNumber(payload.Change),
		ChangePercent: parseNumber(payload.PercentChange),
		LastUpdated:   updated,
		Market:        m,
		Currency:      currencyFor(m),
	}, nil
}

// AlphaVantageClient queries the GLOBAL_QUOTE function. The vendor's "demo"
// key counts as unconfigured.
type AlphaVantageClient struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
}

func NewAlphaVantage(apiKey string) *AlphaVantageClient {
	return &AlphaVantageClient{
		APIKey:     apiKey,
		BaseURL:    "https://www.alphavantage.co/query",
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *AlphaVantageClient) Name() string         { return "alpha_vantage" }
func (c *AlphaVantageClient) Supports(Market) bool { return true }
func (c *AlphaVantageClient) Configured() bool     { return c.APIKey != "" && c.APIKey != "demo" }

func (c *AlphaVantageClient) Quote(ctx context.Context, symbol, name string, m Market) (*StockPrice, error) {
	var payload struct {
		Quote map[string]string `json:"Global Quote"`
	}
	u := fmt.Sprintf("%s?function=GLOBAL_QUOTE&symbol=%s&apikey=%s", c.BaseURL, url.QueryEscape(symbol), url.QueryEscape(c.APIKey))
	if err := getJSON(ctx, c.HTTPClient, u, &payload); err != nil {
		return nil, err
	}
	if len(payload.Quote) == 0 {
		return nil, nil
	}

	sym := payload.Quote["01. symbol"]
	if sym == "" {
		sym = symbol
	}
	updated := payload.Quote["07. latest trading day"]
	if updated == "" {
		updated = time.Now().UTC().Format("2006-01-02")
	}
	return &StockPrice{
		Symbol:        sym,
		Name:          name,
		Price:         parseNumber(payload.Quote["05. price"]),
		Change:        parseNumber(payload.Quote["09. change"]),
		ChangePercent: parseNumber(strings.TrimSuffix(payload.Quote["10. change percent"], "%")),
		LastUpdated:   updated,
		Market:        m,
		Currency:      currencyFor(m),
	}, nil
}

// FMPClient queries Financial Modeling Prep. US listings only.
type FMPClient struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
}

func NewFMP(apiKey string) *FMPClient {
	return &FMPClient{
		APIKey:     apiKey,
		BaseURL:    "https://financialmodelingprep.com/api/v3",
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *FMPClient) Name() string           { return "fmp" }
func (c *FMPClient) Supports(m Market) bool { return m == MarketUS }
func (c *FMPClient) Configured() bool       { return c.APIKey != "" }

func (c *FMPClient) Quote(ctx context.Context, symbol, name string, m Market) (*StockPrice, error) {
	var payload []struct {
		Symbol            string  `json:"symbol"`
		Price             float64 `json:"price"`
		Change            float64 `json:"change"`
		ChangesPercentage float64 `json:"changesPercentage"`
	}
	u := fmt.Sprintf("%s/quote/%s?apikey=%s", c.BaseURL, url.PathEscape(symbol), url.QueryEscape(c.APIKey))
	if err := getJSON(ctx, c.HTTPClient, u, &payload); err != nil {
		return nil, err
	}
	if len(payload) == 0 {
		return nil, nil
	}

	quote := payload[0]
	sym := quote.Symbol
	if sym == "" {
		sym = symbol
	}
	return &StockPrice{
		Symbol:        sym,
		Name:          name,
		Price:         quote.Price,
		Change:        quote.Change,
		ChangePercent: quote.ChangesPercentage,
		LastUpdated:   time.Now().UTC().Format(time.RFC3339),
		Market:        m,
		Currency:      currencyFor(m),
	}, nil
}

func getJSON(ctx context.Context, client *http.Client, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	res, err := client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return err
	}
	if res.StatusCode >= 300 {
		return fmt.Errorf("status %d: %s", res.StatusCode, body)
	}
	return json.Unmarshal(body, out)
}

func parseNumber(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}
