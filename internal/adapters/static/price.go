package static

import (
	"context"
	"math"
	"time"

	"tickerpulse/internal/interfaces"
	"tickerpulse/internal/types"
)

// Price synthesizes a daily price series per ticker: a gentle drift plus a
// sine wave, fully determined by the ticker symbol and the bar date.
type Price struct{}

var _ interfaces.PriceAdapter = (*Price)(nil)

// NewPrice creates the fixture-backed price adapter.
func NewPrice() *Price {
	return &Price{}
}

func basePrice(ticker string) float64 {
	return 20 + float64(hashOf(ticker)%400)
}

func closeOn(ticker string, day time.Time) float64 {
	base := basePrice(ticker)
	epochDays := float64(day.Unix() / 86400)
	drift := 1 + 0.0004*epochDays/365
	wobble := 1 + 0.03*math.Sin(epochDays/9) + 0.015*math.Sin(epochDays/23)
	return base * drift * wobble
}

// GetHistoricalPrices returns one bar per calendar day in [start, end].
func (p *Price) GetHistoricalPrices(ctx context.Context, ticker string, start, end time.Time) ([]types.PriceBar, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var bars []types.PriceBar
	for day := start.UTC().Truncate(24 * time.Hour); !day.After(end); day = day.AddDate(0, 0, 1) {
		c := closeOn(ticker, day)
		o := closeOn(ticker, day.AddDate(0, 0, -1))
		hi := math.Max(o, c) * 1.01
		lo := math.Min(o, c) * 0.99
		bars = append(bars, types.PriceBar{
			Timestamp: day,
			Open:      o,
			High:      hi,
			Low:       lo,
			Close:     c,
			Volume:    1_000_000 + float64(hashOf(ticker)%500_000),
		})
	}
	return bars, nil
}

// GetCurrentPrice returns today's synthetic close.
func (p *Price) GetCurrentPrice(ctx context.Context, ticker string) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return closeOn(ticker, time.Now().UTC().Truncate(24*time.Hour)), nil
}
