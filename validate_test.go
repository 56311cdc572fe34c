package helixir

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// quietClient builds a client that never talks to the network and
// collects warnings.
func quietClient(t *testing.T) (*Client, *[]string) {
	t.Helper()
	var warned []string
	c, err := NewClient(Config{OnWarning: func(msg string) { warned = append(warned, msg) }})
	require.NoError(t, err)
	return c, &warned
}

func TestValidateChain(t *testing.T) {
	c, _ := quietClient(t)

	t.Run("Accepted Spellings", func(t *testing.T) {
		for _, chain := range []any{56, int64(56), "56", "bsc", "BSC", 56.0} {
			id, err := c.validateChain(chain)
			require.NoError(t, err, "chain %v", chain)
			assert.EqualValues(t, 56, id)
		}
		id, err := c.validateChain("polygon")
		require.NoError(t, err)
		assert.EqualValues(t, 137, id)
	})

	t.Run("Rejected Spellings", func(t *testing.T) {
		for _, chain := range []any{"Bsc", 999, "999", 56.5, "056", true, nil, ""} {
			_, err := c.validateChain(chain)
			assert.ErrorIs(t, err, ErrInvalidChain, "chain %v", chain)
		}
	})
}

func TestValidateAgainst(t *testing.T) {
	assert.NoError(t, validateAgainst(AgainstDefault))
	assert.NoError(t, validateAgainst(AgainstUSD))
	assert.NoError(t, validateAgainst(AgainstPEG))
	assert.ErrorIs(t, validateAgainst(Against("EUR")), ErrInvalidAgainst)
	assert.ErrorIs(t, validateAgainst(Against("usd")), ErrInvalidAgainst)
}

func TestValidateDate(t *testing.T) {
	c, warned := quietClient(t)

	t.Run("Unset", func(t *testing.T) {
		_, set, err := c.validateDate(nil)
		require.NoError(t, err)
		assert.False(t, set)
	})

	t.Run("Epoch Seconds", func(t *testing.T) {
		ts, set, err := c.validateDate(1618240000)
		require.NoError(t, err)
		assert.True(t, set)
		assert.EqualValues(t, 1618240000, ts)
	})

	t.Run("Time Value", func(t *testing.T) {
		ts, set, err := c.validateDate(time.Unix(1618240000, 0))
		require.NoError(t, err)
		assert.True(t, set)
		assert.EqualValues(t, 1618240000, ts)
	})

	t.Run("ISO String", func(t *testing.T) {
		ts, set, err := c.validateDate("2021-04-12T12:00:00Z")
		require.NoError(t, err)
		assert.True(t, set)
		assert.EqualValues(t, 1618228800, ts)
	})

	t.Run("Numeric String Is Not A Date", func(t *testing.T) {
		_, _, err := c.validateDate("1618240000")
		assert.ErrorIs(t, err, ErrInvalidDate)
	})

	t.Run("Unsupported Type", func(t *testing.T) {
		_, _, err := c.validateDate(16182.5)
		assert.ErrorIs(t, err, ErrInvalidDate)
	})

	t.Run("Before Data Epoch Warns", func(t *testing.T) {
		*warned = nil
		_, set, err := c.validateDate("2020-01-01")
		require.NoError(t, err)
		assert.True(t, set)
		assert.Len(t, *warned, 1)
	})
}

func TestValidateFromTo(t *testing.T) {
	c, _ := quietClient(t)
	epoch := c.tables().DataEpoch

	t.Run("Both Unset", func(t *testing.T) {
		_, fromSet, _, toSet, err := c.validateFromTo(nil, nil)
		require.NoError(t, err)
		assert.False(t, fromSet)
		assert.False(t, toSet)
	})

	t.Run("Valid Range", func(t *testing.T) {
		fromTS, fromSet, toTS, toSet, err := c.validateFromTo(epoch, epoch+3600)
		require.NoError(t, err)
		assert.True(t, fromSet)
		assert.True(t, toSet)
		assert.Equal(t, epoch, fromTS)
		assert.Equal(t, epoch+3600, toTS)
	})

	t.Run("To Before Data Epoch", func(t *testing.T) {
		_, _, _, _, err := c.validateFromTo(nil, epoch-1)
		assert.ErrorIs(t, err, ErrRangeTooEarly)
	})

	t.Run("To Not After From", func(t *testing.T) {
		_, _, _, _, err := c.validateFromTo(epoch+3600, epoch+3600)
		assert.ErrorIs(t, err, ErrInvalidRange)

		_, _, _, _, err = c.validateFromTo(epoch+7200, epoch+3600)
		assert.ErrorIs(t, err, ErrInvalidRange)
	})

	t.Run("Only From Set", func(t *testing.T) {
		_, fromSet, _, toSet, err := c.validateFromTo(epoch+3600, nil)
		require.NoError(t, err)
		assert.True(t, fromSet)
		assert.False(t, toSet)
	})
}

func TestValidateResolution(t *testing.T) {
	res, err := validateResolution("h1")
	require.NoError(t, err)
	assert.Equal(t, H1, res)

	res, err = validateResolution(D1)
	require.NoError(t, err)
	assert.Equal(t, D1, res)

	// W1 and MN1 are valid parameters, only ranged queries reject
	// them later.
	_, err = validateResolution(W1)
	assert.NoError(t, err)

	_, err = validateResolution("X5")
	assert.ErrorIs(t, err, ErrInvalidResolution)
}

func TestValidateLimit(t *testing.T) {
	c, _ := quietClient(t)

	assert.NoError(t, c.validateLimit(0), "zero means server default")
	assert.NoError(t, c.validateLimit(1))
	assert.NoError(t, c.validateLimit(500))
	assert.ErrorIs(t, c.validateLimit(501), ErrInvalidLimit)
	assert.ErrorIs(t, c.validateLimit(-1), ErrInvalidLimit)
}

func TestValidatePage(t *testing.T) {
	c, _ := quietClient(t)
	max := c.tables().Page.Max

	assert.NoError(t, c.validatePage(0), "zero means first page")
	assert.NoError(t, c.validatePage(1))
	assert.NoError(t, c.validatePage(max))
	assert.ErrorIs(t, c.validatePage(max+1), ErrInvalidPage)
	assert.ErrorIs(t, c.validatePage(-3), ErrInvalidPage)
}

func TestValidateSort(t *testing.T) {
	c, _ := quietClient(t)
	listing := c.tables().ListingSortColumns
	swaps := c.tables().SwapSortColumns

	t.Run("Accepted", func(t *testing.T) {
		for _, sort := range []string{"", "+symbol", "-market_cap", "symbol.asc", "market_cap.desc", "SYMBOL.ASC"} {
			assert.NoError(t, c.validateSort(sort, listing), "sort %q", sort)
		}
		assert.NoError(t, c.validateSort("+time", swaps))
	})

	t.Run("Bad Order Marker", func(t *testing.T) {
		for _, sort := range []string{"symbol.down", "*symbol", "symbol"} {
			assert.ErrorIs(t, c.validateSort(sort, listing), ErrInvalidSort, "sort %q", sort)
		}
	})

	t.Run("Column Must Be Sortable Globally And On The Endpoint", func(t *testing.T) {
		// amount_0 sorts swaps but is not globally sortable.
		assert.ErrorIs(t, c.validateSort("+amount_0", swaps), ErrInvalidSort)
		// decimals appears in listings but is not globally sortable.
		assert.ErrorIs(t, c.validateSort("+decimals", listing), ErrInvalidSort)
		// time is globally sortable but listings cannot sort by it.
		assert.ErrorIs(t, c.validateSort("+time", listing), ErrInvalidSort)
		assert.ErrorIs(t, c.validateSort("+garbage", listing), ErrInvalidSort)
	})
}

func TestValidateContract(t *testing.T) {
	assert.NoError(t, validateContract("0xe9e7cea3dedca5984780bafc599bd69add087d56"))
	assert.ErrorIs(t, validateContract("e9e7cea3dedca5984780bafc599bd69add087d56"), ErrInvalidContract)
	assert.ErrorIs(t, validateContract("0x"), ErrInvalidContract)
	assert.ErrorIs(t, validateContract("0xabc def"), ErrInvalidContract)
	assert.ErrorIs(t, validateContract(""), ErrInvalidContract)
}

func TestResolveToken(t *testing.T) {
	c, _ := quietClient(t)
	c.assets = []Asset{
		{Chain: 56, Contract: "0xcake", Symbol: "CAKE", IsDefault: true},
		{Chain: 56, Contract: "0xbusd", Symbol: "BUSD", IsDefault: true},
		{Chain: 1, Contract: "0xusdt-eth", Symbol: "USDT"},
		{Chain: 56, Contract: "0xusdt-bsc", Symbol: "USDT", IsDefault: true},
		{Chain: 56, Contract: "0xdupe-a", Symbol: "DUPE"},
		{Chain: 56, Contract: "0xdupe-b", Symbol: "DUPE"},
	}
	ctx := context.Background()

	t.Run("Contract Passes Through", func(t *testing.T) {
		contract, err := c.resolveToken(ctx, "", "0xcake", "bsc")
		require.NoError(t, err)
		assert.Equal(t, "0xcake", contract)
	})

	t.Run("Contract Skips Chain Validation", func(t *testing.T) {
		contract, err := c.resolveToken(ctx, "", "0xcake", "no-such-chain")
		require.NoError(t, err)
		assert.Equal(t, "0xcake", contract)
	})

	t.Run("Bad Contract Format", func(t *testing.T) {
		_, err := c.resolveToken(ctx, "", "cake", "bsc")
		assert.ErrorIs(t, err, ErrInvalidContract)
	})

	t.Run("Neither Symbol Nor Contract", func(t *testing.T) {
		_, err := c.resolveToken(ctx, "", "", "bsc")
		assert.ErrorIs(t, err, ErrMissingToken)
	})

	t.Run("Unique Symbol", func(t *testing.T) {
		contract, err := c.resolveToken(ctx, "CAKE", "", nil)
		require.NoError(t, err)
		assert.Equal(t, "0xcake", contract)
	})

	t.Run("Unknown Symbol", func(t *testing.T) {
		_, err := c.resolveToken(ctx, "NOPE", "", nil)
		assert.ErrorIs(t, err, ErrUnknownSymbol)
	})

	t.Run("Chain Narrows Ambiguity", func(t *testing.T) {
		contract, err := c.resolveToken(ctx, "USDT", "", "eth")
		require.NoError(t, err)
		assert.Equal(t, "0xusdt-eth", contract)

		contract, err = c.resolveToken(ctx, "USDT", "", 56)
		require.NoError(t, err)
		assert.Equal(t, "0xusdt-bsc", contract)
	})

	t.Run("Ambiguous Without Chain", func(t *testing.T) {
		_, err := c.resolveToken(ctx, "USDT", "", nil)
		require.ErrorIs(t, err, ErrAmbiguousSymbol)
		assert.Contains(t, err.Error(), "56")
		assert.Contains(t, err.Error(), "1")
	})

	t.Run("Ambiguous Within Chain", func(t *testing.T) {
		_, err := c.resolveToken(ctx, "DUPE", "", "bsc")
		require.ErrorIs(t, err, ErrAmbiguousSymbol)
		assert.Contains(t, err.Error(), "0xdupe-a")
		assert.Contains(t, err.Error(), "0xdupe-b")
	})

	t.Run("Invalid Chain With Symbol", func(t *testing.T) {
		_, err := c.resolveToken(ctx, "USDT", "", "no-such-chain")
		assert.ErrorIs(t, err, ErrInvalidChain)
	})
}
