package helixir

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder captures every request and answers with a fixed payload.
type recorder struct {
	payload string
	paths   []string
	queries []url.Values
}

func (rec *recorder) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.paths = append(rec.paths, r.URL.Path)
		rec.queries = append(rec.queries, r.URL.Query())
		w.Write([]byte(rec.payload))
	})
}

func (rec *recorder) lastQuery() url.Values {
	if len(rec.queries) == 0 {
		return url.Values{}
	}
	return rec.queries[len(rec.queries)-1]
}

func seedAssets(c *Client) {
	c.assets = []Asset{
		{Chain: 56, Contract: "0xcake", Symbol: "CAKE", IsDefault: false},
		{Chain: 56, Contract: "0xusdt56", Symbol: "USDT"},
		{Chain: 1, Contract: "0xusdt1", Symbol: "USDT"},
	}
}

func TestFarms(t *testing.T) {
	rec := &recorder{payload: `[{"name": "pancake", "true_name": "PancakeSwap", "tvl": 1250000.5}]`}
	c := testClient(t, Config{}, rec.handler())

	t.Run("Success", func(t *testing.T) {
		farms, err := c.Farms(context.Background(), ChainRequest{Chain: "bsc"})
		require.NoError(t, err)
		require.Len(t, farms, 1)
		assert.Equal(t, "pancake", farms[0].Str("name"))
		assert.Equal(t, "PancakeSwap", farms[0].Str("true_name"))
		assert.Equal(t, 1250000.5, farms[0].Float("tvl"))
		assert.Equal(t, []string{"/v1/chain/bsc/farms"}, rec.paths)
	})

	t.Run("Invalid Chain", func(t *testing.T) {
		_, err := c.Farms(context.Background(), ChainRequest{Chain: "solana"})
		assert.ErrorIs(t, err, ErrInvalidChain)
		assert.Len(t, rec.paths, 1, "invalid chain must not reach the API")
	})
}

func TestTokens_QueryAssembly(t *testing.T) {
	rec := &recorder{payload: `[{"symbol": "CAKE"}]`}
	c := testClient(t, Config{}, rec.handler())

	extended := true
	tokens, err := c.Tokens(context.Background(), TokensRequest{
		Extended: &extended,
		Limit:    10,
		Page:     2,
		Sort:     "-market_cap",
	})
	require.NoError(t, err)
	require.Len(t, tokens, 1)
	assert.Equal(t, "CAKE", tokens[0].Str("symbol"))

	assert.Equal(t, []string{"/v1/chain/bsc/tokens"}, rec.paths, "unset chain defaults to bsc")
	q := rec.lastQuery()
	assert.Equal(t, "true", q.Get("extended"))
	assert.Equal(t, "10", q.Get("limit"))
	assert.Equal(t, "2", q.Get("page"))
	assert.Equal(t, "-market_cap", q.Get("sort"))
}

func TestToken_SymbolResolvesToContract(t *testing.T) {
	rec := &recorder{payload: `{"symbol": "CAKE", "name": "PancakeSwap Token", "decimals": 18}`}
	c := testClient(t, Config{}, rec.handler())
	seedAssets(c)

	tok, err := c.Token(context.Background(), TokenRequest{TokenQuery: TokenQuery{Symbol: "CAKE"}})
	require.NoError(t, err)
	assert.Equal(t, "PancakeSwap Token", tok.Str("name"))
	assert.Equal(t, []string{"/v1/chain/bsc/tokens/0xcake"}, rec.paths)
}

func TestToken_ContractSkipsChainValidation(t *testing.T) {
	rec := &recorder{payload: `{"symbol": "X"}`}
	c := testClient(t, Config{}, rec.handler())

	// A contract lookup passes the chain through verbatim.
	_, err := c.Token(context.Background(), TokenRequest{
		TokenQuery: TokenQuery{Contract: "0xabc", Chain: "sidechain-9"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"/v1/chain/sidechain-9/tokens/0xabc"}, rec.paths)

	// Candle queries validate the chain even with a contract.
	_, err = c.Candles(context.Background(), CandlesRequest{
		TokenQuery: TokenQuery{Contract: "0xabc", Chain: "sidechain-9"},
	})
	assert.ErrorIs(t, err, ErrInvalidChain)
	assert.Len(t, rec.paths, 1)
}

func TestPrice(t *testing.T) {
	rec := &recorder{payload: `13.37`}
	c := testClient(t, Config{}, rec.handler())

	price, err := c.Price(context.Background(), PriceRequest{
		TokenQuery: TokenQuery{Contract: "0xcake"},
		Against:    AgainstPEG,
	})
	require.NoError(t, err)
	assert.Equal(t, 13.37, price)
	assert.Equal(t, []string{"/v1/chain/bsc/tokens/0xcake/price"}, rec.paths)
	assert.Equal(t, "PEG", rec.lastQuery().Get("against"))
}

func TestPriceChange_DefaultInterval(t *testing.T) {
	rec := &recorder{payload: `-2.5`}
	c := testClient(t, Config{}, rec.handler())

	change, err := c.PriceChange(context.Background(), PriceChangeRequest{
		TokenQuery: TokenQuery{Contract: "0xcake"},
	})
	require.NoError(t, err)
	assert.Equal(t, -2.5, change)
	assert.Equal(t, []string{"/v1/chain/bsc/tokens/0xcake/price/change"}, rec.paths)

	q := rec.lastQuery()
	assert.Equal(t, "D1", q.Get("interval"), "unset interval defaults to D1")
	assert.False(t, q.Has("against"))
}

func TestPairs(t *testing.T) {
	rec := &recorder{payload: `{"CAKE/WBNB": {"name": "CAKE/WBNB", "contract": "0xpair"}}`}
	c := testClient(t, Config{}, rec.handler())

	pairs, err := c.Pairs(context.Background(), TokenQuery{Contract: "0xcake"})
	require.NoError(t, err)
	require.Contains(t, pairs, "CAKE/WBNB")
	assert.Equal(t, "0xpair", pairs["CAKE/WBNB"].Str("contract"))
	assert.Equal(t, []string{"/v1/chain/bsc/tokens/0xcake/pairs"}, rec.paths)
}

func TestLPSwaps(t *testing.T) {
	rec := &recorder{payload: `[{"amount_0": "1.5", "token_symbol": "CAKE"}]`}
	c := testClient(t, Config{}, rec.handler())

	t.Run("Invalid Sort", func(t *testing.T) {
		_, err := c.LPSwaps(context.Background(), LPSwapsRequest{
			TokenQuery: TokenQuery{Contract: "0xlp"},
			Sort:       "amount_0.down",
		})
		assert.ErrorIs(t, err, ErrInvalidSort)
		assert.Empty(t, rec.paths)
	})

	t.Run("Query Assembly", func(t *testing.T) {
		swaps, err := c.LPSwaps(context.Background(), LPSwapsRequest{
			TokenQuery:    TokenQuery{Contract: "0xlp"},
			FromWallet:    "0xwhale",
			TokenContract: "0xcake",
			From:          1618240000,
			To:            1618250000,
			Limit:         50,
			Page:          2,
			Sort:          "-time",
		})
		require.NoError(t, err)
		require.Len(t, swaps, 1)
		assert.Equal(t, "CAKE", swaps[0].Str("token_symbol"))

		assert.Equal(t, []string{"/v1/chain/bsc/lps/0xlp/swaps"}, rec.paths)
		q := rec.lastQuery()
		assert.Equal(t, "1618240000", q.Get("from"))
		assert.Equal(t, "1618250000", q.Get("to"))
		assert.Equal(t, "0xwhale", q.Get("from_wallet"))
		assert.Equal(t, "0xcake", q.Get("token_contract"))
		assert.Equal(t, "50", q.Get("limit"))
		assert.Equal(t, "2", q.Get("page"))
		assert.Equal(t, "-time", q.Get("sort"))
	})
}

func TestMarketDepth(t *testing.T) {
	rec := &recorder{payload: `[{"time": "2021-04-12T12:00:00Z", "current_price": 13.4, "depth": "980/1020"}]`}
	c := testClient(t, Config{}, rec.handler())

	t.Run("Invalid Chain", func(t *testing.T) {
		_, err := c.MarketDepth(context.Background(), MarketDepthRequest{
			PoolContract: "0xpool",
			Chain:        "solana",
		})
		assert.ErrorIs(t, err, ErrInvalidChain)
		assert.Empty(t, rec.paths)
	})

	t.Run("Query Assembly", func(t *testing.T) {
		depth, err := c.MarketDepth(context.Background(), MarketDepthRequest{
			PoolContract: "0xpool",
			From:         1618240000,
			To:           1618250000,
		})
		require.NoError(t, err)
		require.Len(t, depth, 1)
		assert.Equal(t, 13.4, depth[0].Float("current_price"))
		assert.Equal(t, "980/1020", depth[0].Str("depth"))

		assert.Equal(t, []string{"/v1/chain/bsc/lps/0xpool/market_depth"}, rec.paths)
		q := rec.lastQuery()
		assert.Equal(t, "1618240000", q.Get("from"))
		assert.Equal(t, "1618250000", q.Get("to"))
	})
}

func TestWalletTransactions(t *testing.T) {
	rec := &recorder{payload: `[{"hash": "0xh1"}]`}
	c := testClient(t, Config{}, rec.handler())

	txs, err := c.WalletTransactions(context.Background(), WalletTransactionsRequest{
		Address: "0xwallet",
		From:    1618240000,
		To:      1618250000,
		Limit:   25,
		Page:    3,
	})
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, "0xh1", txs[0].Str("hash"))

	assert.Equal(t, []string{"/v1/chain/bsc/wallets/0xwallet/txs"}, rec.paths)
	q := rec.lastQuery()
	assert.Equal(t, "1618240000", q.Get("from"))
	assert.Equal(t, "1618250000", q.Get("to"))
	assert.Equal(t, "25", q.Get("limit"))
	assert.Equal(t, "3", q.Get("page"))
	assert.False(t, q.Has("sort"))
}

func TestDiscord(t *testing.T) {
	rec := &recorder{payload: `[{"author": "mod", "message": "gm"}]`}
	c := testClient(t, Config{}, rec.handler())

	posts, err := c.Discord(context.Background(), SocialRequest{
		From:  "2021-04-12T12:00:00Z",
		Limit: 5,
		Tag:   "CAKE",
	})
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "gm", posts[0].Str("message"))

	assert.Equal(t, []string{"/v1/discord"}, rec.paths)
	q := rec.lastQuery()
	assert.Equal(t, "1618228800", q.Get("from"))
	assert.Equal(t, "5", q.Get("limit"))
	assert.Equal(t, "CAKE", q.Get("tag"))
}

func TestVolumesLatest_NormalizesInterval(t *testing.T) {
	rec := &recorder{payload: `98765.4`}
	c := testClient(t, Config{}, rec.handler())

	vol, err := c.VolumesLatest(context.Background(), IntervalRequest{
		TokenQuery: TokenQuery{Contract: "0xcake"},
		Interval:   "d1",
	})
	require.NoError(t, err)
	assert.Equal(t, 98765.4, vol)
	assert.Equal(t, []string{"/v1/chain/bsc/tokens/0xcake/volumes/latest"}, rec.paths)
	assert.Equal(t, "D1", rec.lastQuery().Get("interval"))
}
