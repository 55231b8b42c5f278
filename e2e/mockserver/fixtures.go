package mockserver

import (
	"fmt"
	"time"
)

// NiftyConfig returns a small market: "NIFTY 50" lists TCS and INFY, but only INFY
// (and RELIANCE) appear on the equity list, and only INFY.NS has Yahoo data.
func NiftyConfig() ServerConfig {
	return ServerConfig{
		Indices: map[string][]string{
			"NIFTY 50":   {"TCS", "INFY"},
			"NIFTY BANK": {"HDFCBANK"},
		},
		Listings: []Listing{
			{Symbol: "INFY", Name: "Infosys Limited", Series: "EQ", ISIN: "INE009A01021"},
			{Symbol: "RELIANCE", Name: "Reliance Industries Limited", Series: "EQ", ISIN: "INE002A01018"},
		},
		Quotes: map[string]Quote{
			"INFY": {
				LastPrice:     1500.5,
				Change:        12.25,
				PercentChange: 0.82,
				Open:          1490,
				DayHigh:       1510,
				DayLow:        1485,
				PreviousClose: 1488.25,
			},
		},
		Companies: map[string]*Company{
			"INFY.NS": InfosysCompany(),
		},
	}
}

// InfosysCompany returns overview fields, four fiscal years of statements and the
// first trading week of 2024.
func InfosysCompany() *Company {
	fundamentals := map[string][]Point{}

	years := []int{2020, 2021, 2022, 2023}
	for i, year := range years {
		asOf := fmt.Sprintf("%d-03-31", year)
		scale := float64(i + 1)

		fundamentals["annualTotalRevenue"] = append(fundamentals["annualTotalRevenue"], Point{AsOf: asOf, Value: 1000 * scale})
		fundamentals["annualNetIncome"] = append(fundamentals["annualNetIncome"], Point{AsOf: asOf, Value: 200 * scale})
		fundamentals["annualTotalAssets"] = append(fundamentals["annualTotalAssets"], Point{AsOf: asOf, Value: 5000 * scale})
		fundamentals["annualFreeCashFlow"] = append(fundamentals["annualFreeCashFlow"], Point{AsOf: asOf, Value: 150 * scale})
	}

	quarters := []string{"2023-06-30", "2023-09-30", "2023-12-31", "2024-03-31"}
	for i, asOf := range quarters {
		scale := float64(i + 1)

		fundamentals["quarterlyTotalRevenue"] = append(fundamentals["quarterlyTotalRevenue"], Point{AsOf: asOf, Value: 300 * scale})
		fundamentals["quarterlyTotalAssets"] = append(fundamentals["quarterlyTotalAssets"], Point{AsOf: asOf, Value: 5200 * scale})
	}

	ist := time.FixedZone("IST", 19800)

	var bars []Bar

	for day := 1; day <= 5; day++ {
		open := 1500 + float64(day)
		bars = append(bars, Bar{
			Time:     time.Date(2024, 1, day, 9, 15, 0, 0, ist),
			Open:     open,
			High:     open + 10,
			Low:      open - 10,
			Close:    open + 5,
			AdjClose: open + 4.5,
			Volume:   1000000 + float64(day)*1000,
		})
	}

	return &Company{
		Name:     "Infosys Limited",
		Sector:   "Technology",
		Industry: "Information Technology Services",
		Summary: map[string]float64{
			"price.marketCap":                  6.45e12,
			"summaryDetail.trailingPE":         24.8,
			"summaryDetail.dividendYield":      0.0265,
			"defaultKeyStatistics.trailingEps": 63.39,
			"defaultKeyStatistics.bookValue":   218.5,
			"defaultKeyStatistics.priceToBook": 7.2,
			"financialData.returnOnEquity":     0.3153,
			"financialData.debtToEquity":       9.1,
			"financialData.profitMargins":      0.1708,
			"financialData.operatingMargins":   0.2113,
		},
		Fundamentals: fundamentals,
		Bars:         bars,
	}
}
