package market

import "time"

type Market string

const (
	MarketIndian Market = "indian"
	MarketUS     Market = "us"
)

// StockPrice is one quote row in the overview. Currency follows the market:
// INR for Indian listings, USD otherwise.
type StockPrice struct {
	Symbol        string  `json:"symbol"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"change_percent"`
	LastUpdated   string  `json:"last_updated"`
	Market        Market  `json:"market"`
	Currency      string  `json:"currency"`
}

type Index struct {
	Value         float64 `json:"value"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"change_percent"`
}

type Indices struct {
	Nifty50 Index `json:"nifty50"`
	Sensex  Index `json:"sensex"`
	SP500   Index `json:"sp500"`
	Nasdaq  Index `json:"nasdaq"`
}

type Overview struct {
	IndianStocks []StockPrice `json:"indian_stocks"`
	USStocks     []StockPrice `json:"us_stocks"`
	Indices      Indices      `json:"indices"`
	LastUpdated  time.Time    `json:"last_updated"`
}

// Listing is a watch-list entry.
type Listing struct {
	Symbol string
	Name   string
}

func currencyFor(m Market) string {
	if m == MarketIndian {
		return "INR"
	}
	return "USD"
}
