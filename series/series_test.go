package series

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"helixir/models"
)

func entityList(t *testing.T, responseType, src string) []*models.Entity {
	t.Helper()
	var payload any
	require.NoError(t, json.Unmarshal([]byte(src), &payload))
	got, err := models.Unmarshal(models.Default(), responseType, payload)
	require.NoError(t, err)
	list, ok := got.([]*models.Entity)
	require.True(t, ok)
	return list
}

func TestFromCandles_SortsByTime(t *testing.T) {
	candles := entityList(t, "List[TokenPriceResponse]", `[
		{"time": "2021-04-12T13:45:00Z", "open": 2.0, "high": 2.5, "low": 1.9, "close": 2.2},
		{"time": "2021-04-12T11:45:00Z", "open": 1.0, "high": 1.5, "low": 0.9, "close": 1.2},
		{"time": "2021-04-12T12:45:00Z", "open": 1.2, "high": 2.1, "low": 1.1, "close": 2.0}
	]`)

	bars := FromCandles(candles)
	require.Len(t, bars, 3)

	assert.Equal(t, time.Unix(1618227900, 0).UTC(), bars[0].Time.UTC())
	assert.Equal(t, time.Unix(1618231500, 0).UTC(), bars[1].Time.UTC())
	assert.Equal(t, time.Unix(1618235100, 0).UTC(), bars[2].Time.UTC())

	assert.Equal(t, 1.0, bars[0].Open)
	assert.Equal(t, 1.5, bars[0].High)
	assert.Equal(t, 0.9, bars[0].Low)
	assert.Equal(t, 1.2, bars[0].Close)
	assert.Zero(t, bars[0].Volume)
}

func TestMergeVolumes_JoinsByTimestamp(t *testing.T) {
	candles := entityList(t, "List[TokenPriceResponse]", `[
		{"time": "2021-04-12T11:45:00Z", "open": 1.0, "high": 1.5, "low": 0.9, "close": 1.2},
		{"time": "2021-04-12T12:45:00Z", "open": 1.2, "high": 2.1, "low": 1.1, "close": 2.0},
		{"time": "2021-04-12T13:45:00Z", "open": 2.0, "high": 2.5, "low": 1.9, "close": 2.2}
	]`)
	volumes := entityList(t, "List[TradedVolumeResponse]", `[
		{"time": "2021-04-12T13:45:00Z", "volume": 2.5},
		{"time": "2021-04-12T11:45:00Z", "volume": 1.25}
	]`)

	bars := FromCandles(candles)
	bars.MergeVolumes(volumes)

	assert.Equal(t, 1.25, bars[0].Volume)
	assert.Zero(t, bars[1].Volume, "bar without a matching volume keeps zero")
	assert.Equal(t, 2.5, bars[2].Volume)
}

func TestMergeActivity_JoinsByTimestamp(t *testing.T) {
	candles := entityList(t, "List[TokenPriceResponse]", `[
		{"time": "2021-04-12T11:45:00Z", "open": 1.0, "high": 1.5, "low": 0.9, "close": 1.2},
		{"time": "2021-04-12T12:45:00Z", "open": 1.2, "high": 2.1, "low": 1.1, "close": 2.0}
	]`)
	addresses := entityList(t, "List[ActiveAddressesResponse]", `[
		{"time": "2021-04-12T11:45:00Z", "count": 12}
	]`)
	swaps := entityList(t, "List[ActiveAddressesResponse]", `[
		{"time": "2021-04-12T12:45:00Z", "count": 4},
		{"time": "2021-04-12T11:45:00Z", "count": 9}
	]`)

	bars := FromCandles(candles)
	bars.MergeAddresses(addresses)
	bars.MergeSwaps(swaps)

	assert.Equal(t, int64(12), bars[0].Addresses)
	assert.Zero(t, bars[1].Addresses)
	assert.Equal(t, int64(9), bars[0].Swaps)
	assert.Equal(t, int64(4), bars[1].Swaps)
}

func TestSummarize(t *testing.T) {
	bars := Bars{
		{Time: time.Unix(1618227900, 0), Open: 2.0, High: 2.5, Low: 1.8, Close: 2.2, Volume: 1.25},
		{Time: time.Unix(1618231500, 0), Open: 2.2, High: 4.0, Low: 2.1, Close: 3.8, Volume: 2.5},
		{Time: time.Unix(1618235100, 0), Open: 3.8, High: 3.9, Low: 1.5, Close: 3.0, Volume: 0},
	}

	sum, ok := Summarize(bars)
	require.True(t, ok)

	assert.Equal(t, 3, sum.Bars)
	assert.Equal(t, time.Unix(1618227900, 0), sum.Start)
	assert.Equal(t, time.Unix(1618235100, 0), sum.End)
	assert.Equal(t, 2.0, sum.Open)
	assert.Equal(t, 3.0, sum.Close)
	assert.Equal(t, 4.0, sum.High)
	assert.Equal(t, 1.5, sum.Low)
	assert.Equal(t, "3.75", sum.TotalVolume.String())
	assert.Equal(t, "50", sum.ChangePct.String())
}

func TestSummarize_Empty(t *testing.T) {
	_, ok := Summarize(nil)
	assert.False(t, ok)
}

func TestSummarize_ZeroOpen(t *testing.T) {
	sum, ok := Summarize(Bars{{Open: 0, Close: 5}})
	require.True(t, ok)
	assert.True(t, sum.ChangePct.IsZero())
}
