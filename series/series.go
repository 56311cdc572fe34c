// Package series assembles entity time series into OHLCV frames and
// derives summary statistics from them.
package series

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"helixir/models"
)

// Bar is one row of an OHLCV frame. Addresses and Swaps are only
// filled when the frame was extended with activity series.
type Bar struct {
	Time      time.Time `json:"time"`
	Open      float64   `json:"open"`
	High      float64   `json:"high"`
	Low       float64   `json:"low"`
	Close     float64   `json:"close"`
	Volume    float64   `json:"volume"`
	Addresses int64     `json:"addresses_count"`
	Swaps     int64     `json:"swaps_count"`
}

type Bars []Bar

// FromCandles maps price candle entities onto bars, sorted by time.
func FromCandles(candles []*models.Entity) Bars {
	bars := make(Bars, 0, len(candles))
	for _, c := range candles {
		bars = append(bars, Bar{
			Time:  c.Time("time"),
			Open:  c.Float("open"),
			High:  c.Float("high"),
			Low:   c.Float("low"),
			Close: c.Float("close"),
		})
	}
	sort.Slice(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })
	return bars
}

// MergeVolumes joins a traded-volume series onto the bars by
// timestamp. Bars without a matching volume keep zero.
func (bs Bars) MergeVolumes(volumes []*models.Entity) {
	byTime := make(map[int64]float64, len(volumes))
	for _, v := range volumes {
		byTime[v.Time("time").Unix()] = v.Float("volume")
	}
	for i := range bs {
		bs[i].Volume = byTime[bs[i].Time.Unix()]
	}
}

// MergeAddresses joins an active-address count series onto the bars
// by timestamp.
func (bs Bars) MergeAddresses(counts []*models.Entity) {
	byTime := countsByTime(counts)
	for i := range bs {
		bs[i].Addresses = byTime[bs[i].Time.Unix()]
	}
}

// MergeSwaps joins a swap count series onto the bars by timestamp.
func (bs Bars) MergeSwaps(counts []*models.Entity) {
	byTime := countsByTime(counts)
	for i := range bs {
		bs[i].Swaps = byTime[bs[i].Time.Unix()]
	}
}

func countsByTime(counts []*models.Entity) map[int64]int64 {
	byTime := make(map[int64]int64, len(counts))
	for _, c := range counts {
		byTime[c.Time("time").Unix()] = c.Int("count")
	}
	return byTime
}

// Summary aggregates one OHLCV frame.
type Summary struct {
	Bars        int
	Start       time.Time
	End         time.Time
	Open        float64
	Close       float64
	High        float64
	Low         float64
	ChangePct   decimal.Decimal
	TotalVolume decimal.Decimal
}

// Summarize computes the frame summary. Reports false for an empty
// frame.
func Summarize(bars Bars) (Summary, bool) {
	if len(bars) == 0 {
		return Summary{}, false
	}
	first := bars[0]
	last := bars[len(bars)-1]

	high := first.High
	low := first.Low
	volume := decimal.Zero
	for _, b := range bars {
		if b.High > high {
			high = b.High
		}
		if b.Low < low {
			low = b.Low
		}
		volume = volume.Add(decimal.NewFromFloat(b.Volume))
	}

	change := decimal.Zero
	if first.Open != 0 {
		open := decimal.NewFromFloat(first.Open)
		change = decimal.NewFromFloat(last.Close).Sub(open).Div(open).Mul(decimal.NewFromInt(100))
	}

	return Summary{
		Bars:        len(bars),
		Start:       first.Time,
		End:         last.Time,
		Open:        first.Open,
		Close:       last.Close,
		High:        high,
		Low:         low,
		ChangePct:   change,
		TotalVolume: volume,
	}, true
}
