package market

import "time"

// mockOverview is the fixed fallback dataset served when every provider is
// unavailable. The widget keeps rendering; values are clearly static.
func mockOverview(now time.Time) Overview {
	day := now.UTC().Format("2006-01-02")

	indian := []StockPrice{
		{Symbol: "RELIANCE", Name: "Reliance Industries", Price: 2456.75, Change: 23.45, ChangePercent: 0.96},
		{Symbol: "TCS", Name: "Tata Consultancy Services", Price: 3678.90, Change: -12.30, ChangePercent: -0.33},
		{Symbol: "INFY", Name: "Infosys", Price: 1543.25, Change: 8.75, ChangePercent: 0.57},
		{Symbol: "HDFCBANK", Name: "HDFC Bank", Price: 1687.40, Change: 15.60, ChangePercent: 0.93},
		{Symbol: "ICICIBANK", Name: "ICICI Bank", Price: 945.80, Change: -5.20, ChangePercent: -0.55},
		{Symbol: "ITC", Name: "ITC Limited", Price: 456.30, Change: 2.10, ChangePercent: 0.46},
	}
	for i := range indian {
		indian[i].LastUpdated = day
		indian[i].Market = MarketIndian
		indian[i].Currency = "INR"
	}

	us := []StockPrice{
		{Symbol: "AAPL", Name: "Apple Inc.", Price: 175.84, Change: 2.15, ChangePercent: 1.24},
		{Symbol: "GOOGL", Name: "Alphabet Inc.", Price: 138.21, Change: -1.45, ChangePercent: -1.04},
		{Symbol: "MSFT", Name: "Microsoft Corporation", Price: 378.85, Change: 4.32, ChangePercent: 1.15},
		{Symbol: "TSLA", Name: "Tesla Inc.", Price: 248.50, Change: -8.75, ChangePercent: -3.40},
		{Symbol: "AMZN", Name: "Amazon.com Inc.", Price: 155.89, Change: 1.23, ChangePercent: 0.80},
		{Symbol: "NVDA", Name: "NVIDIA Corporation", Price: 875.28, Change: 15.67, ChangePercent: 1.82},
	}
	for i := range us {
		us[i].LastUpdated = day
		us[i].Market = MarketUS
		us[i].Currency = "USD"
	}

	return Overview{
		IndianStocks: indian,
		USStocks:     us,
		Indices:      mockIndices(),
		LastUpdated:  now,
	}
}

// mockIndices stands in for index feeds none of the quote providers carry on
// their free tiers.
func mockIndices() Indices {
	return Indices{
		Nifty50: Index{Value: 19845.65, Change: 125.30, ChangePercent: 0.63},
		Sensex:  Index{Value: 66589.93, Change: 287.50, ChangePercent: 0.43},
		SP500:   Index{Value: 4567.18, Change: 12.45, ChangePercent: 0.27},
		Nasdaq:  Index{Value: 14236.92, Change: -23.67, ChangePercent: -0.17},
	}
}
