package models

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, src string) any {
	t.Helper()
	var v any
	require.NoError(t, json.Unmarshal([]byte(src), &v))
	return v
}

func TestUnmarshal_ScalarResponses(t *testing.T) {
	reg := Default()

	t.Run("Int", func(t *testing.T) {
		got, err := Unmarshal(reg, "int", decode(t, `42`))
		assert.NoError(t, err)
		assert.Equal(t, int64(42), got)
	})
	t.Run("Int From String", func(t *testing.T) {
		got, err := Unmarshal(reg, "int", decode(t, `"17"`))
		assert.NoError(t, err)
		assert.Equal(t, int64(17), got)
	})
	t.Run("Float From String", func(t *testing.T) {
		got, err := Unmarshal(reg, "float", decode(t, `"3.5"`))
		assert.NoError(t, err)
		assert.Equal(t, 3.5, got)
	})
	t.Run("String From Number", func(t *testing.T) {
		got, err := Unmarshal(reg, "str", decode(t, `12`))
		assert.NoError(t, err)
		assert.Equal(t, "12", got)
	})
	t.Run("Int Failure", func(t *testing.T) {
		_, err := Unmarshal(reg, "int", decode(t, `"not a number"`))
		var cerr *CoercionError
		assert.ErrorAs(t, err, &cerr)
	})
}

func TestUnmarshal_EntityObject(t *testing.T) {
	reg := Default()

	payload := decode(t, `{
		"active": true,
		"chain": "bsc",
		"circulating_supply": "1000000.5",
		"contract": "0xdeadbeef",
		"decimals": 18,
		"id": 7,
		"name": "Helix",
		"symbol": "HLX",
		"total_supply": 2000000,
		"rank": 3,
		"type": "erc20"
	}`)

	got, err := Unmarshal(reg, "TokenResponse", payload)
	require.NoError(t, err)
	tok, ok := got.(*Entity)
	require.True(t, ok)

	assert.Equal(t, "TokenResponse", tok.Type())
	assert.True(t, tok.Bool("active"))
	assert.Equal(t, "bsc", tok.Str("chain"))
	assert.Equal(t, 1000000.5, tok.Float("circulating_supply"))
	assert.Equal(t, 18.0, tok.Float("decimals"))
	assert.Equal(t, int64(7), tok.Int("id"))

	t.Run("Unknown Fields Preserved", func(t *testing.T) {
		rank, ok := tok.Get("rank")
		assert.True(t, ok)
		assert.Equal(t, 3.0, rank)
	})
	t.Run("Keyword Fields Renamed", func(t *testing.T) {
		_, ok := tok.Get("type")
		assert.False(t, ok)
		v, ok := tok.Get("type_")
		assert.True(t, ok)
		assert.Equal(t, "erc20", v)
	})
}

func TestUnmarshal_NestedEntity(t *testing.T) {
	reg := Default()

	payload := decode(t, `{
		"chain": "bsc",
		"contract": "0xpair",
		"decimals": 18,
		"id": 1,
		"name": "HLX-WBNB",
		"symbol": "HLX-WBNB",
		"token_0": {"symbol": "HLX", "decimals": "18"},
		"token_1": {"symbol": "WBNB", "decimals": 18},
		"total_supply": 5
	}`)

	got, err := Unmarshal(reg, "LPTokenResponse", payload)
	require.NoError(t, err)
	lp := got.(*Entity)

	t0 := lp.Nested("token_0")
	require.NotNil(t, t0)
	assert.Equal(t, "TokenResponse", t0.Type())
	assert.Equal(t, "HLX", t0.Str("symbol"))
	assert.Equal(t, 18.0, t0.Float("decimals"))
	assert.Equal(t, "WBNB", lp.Nested("token_1").Str("symbol"))
}

func TestUnmarshal_ListOfEntities(t *testing.T) {
	reg := Default()

	payload := decode(t, `[
		{"close": 1.2, "high": 1.3, "low": 1.1, "open": 1.15, "time": "2021-04-12T12:00:00Z"},
		{"close": "1.25", "high": 1.35, "low": 1.2, "open": 1.2, "time": "2021-04-12 14:00:00"}
	]`)

	got, err := Unmarshal(reg, "List[TokenPriceResponse]", payload)
	require.NoError(t, err)
	candles, ok := got.([]*Entity)
	require.True(t, ok)
	require.Len(t, candles, 2)

	assert.Equal(t, 1.2, candles[0].Float("close"))
	want := time.Date(2021, 4, 12, 12, 0, 0, 0, time.UTC)
	assert.True(t, candles[0].Time("time").Equal(want))
	assert.Equal(t, 1.25, candles[1].Float("close"))
}

func TestUnmarshal_EmptyList(t *testing.T) {
	got, err := Unmarshal(Default(), "List[TokenPriceResponse]", decode(t, `[]`))
	assert.NoError(t, err)
	candles, ok := got.([]*Entity)
	assert.True(t, ok)
	assert.NotNil(t, candles)
	assert.Len(t, candles, 0)
}

func TestUnmarshal_Dict(t *testing.T) {
	payload := decode(t, `{
		"0xpair1": {"contract": "0xpair1", "symbol": "HLX-WBNB", "decimals": 18},
		"0xpair2": {"contract": "0xpair2", "symbol": "HLX-BUSD", "decimals": 18}
	}`)

	got, err := Unmarshal(Default(), "Dict[str, LPTokenResponse]", payload)
	require.NoError(t, err)
	pairs, ok := got.(map[string]any)
	require.True(t, ok)
	require.Len(t, pairs, 2)

	p1, ok := pairs["0xpair1"].(*Entity)
	require.True(t, ok)
	assert.Equal(t, "LPTokenResponse", p1.Type())
	assert.Equal(t, "HLX-WBNB", p1.Str("symbol"))
}

func TestUnmarshal_ArrayPayloadFillsFirstField(t *testing.T) {
	payload := decode(t, `[
		{"farm_name": "PancakeSwap", "pools_balance": [{"balance": 10, "token": "CAKE"}]},
		{"farm_name": "Biswap", "pools_balance": []}
	]`)

	got, err := Unmarshal(Default(), "FarmsPortfolioResponse", payload)
	require.NoError(t, err)
	pf, ok := got.(*Entity)
	require.True(t, ok)

	pools := pf.List("lp_pools")
	require.Len(t, pools, 2)
	assert.Equal(t, "PancakeSwap", pools[0].Str("farm_name"))

	balances := pools[0].List("pools_balance")
	require.Len(t, balances, 1)
	assert.Equal(t, 10.0, balances[0].Float("balance"))
	assert.Equal(t, "CAKE", balances[0].Str("token"))

	_, ok = pf.Get("single_asset_pools")
	assert.False(t, ok)
}

func TestUnmarshal_ScalarPayloadForEntityPassesThrough(t *testing.T) {
	got, err := Unmarshal(Default(), "TokenResponse", decode(t, `7`))
	assert.NoError(t, err)
	assert.Equal(t, 7.0, got)
}

func TestUnmarshal_NullFields(t *testing.T) {
	reg := Default()

	t.Run("Null Bool Is False", func(t *testing.T) {
		got, err := Unmarshal(reg, "TokenResponse", decode(t, `{"active": null, "symbol": "HLX"}`))
		require.NoError(t, err)
		assert.False(t, got.(*Entity).Bool("active"))
	})
	t.Run("Null Float Fails", func(t *testing.T) {
		_, err := Unmarshal(reg, "TokenResponse", decode(t, `{"total_supply": null}`))
		var cerr *CoercionError
		require.ErrorAs(t, err, &cerr)
		assert.Equal(t, "TokenResponse", cerr.Type)
		assert.Equal(t, "total_supply", cerr.Field)
	})
	t.Run("Null Time Fails", func(t *testing.T) {
		_, err := Unmarshal(reg, "ActiveAddressesResponse", decode(t, `{"count": 3, "time": null}`))
		var cerr *CoercionError
		assert.ErrorAs(t, err, &cerr)
	})
}

func TestUnmarshal_ShapeMismatches(t *testing.T) {
	reg := Default()

	t.Run("List On Object", func(t *testing.T) {
		_, err := Unmarshal(reg, "List[FarmResponse]", decode(t, `{"name": "x"}`))
		var cerr *CoercionError
		assert.ErrorAs(t, err, &cerr)
	})
	t.Run("Dict On Array", func(t *testing.T) {
		_, err := Unmarshal(reg, "Dict[str, LPTokenResponse]", decode(t, `[]`))
		var cerr *CoercionError
		assert.ErrorAs(t, err, &cerr)
	})
	t.Run("List Element Not Object", func(t *testing.T) {
		_, err := Unmarshal(reg, "List[FarmResponse]", decode(t, `[1, 2]`))
		var cerr *CoercionError
		assert.ErrorAs(t, err, &cerr)
	})
}

func TestUnmarshal_UnknownEntity(t *testing.T) {
	_, err := Unmarshal(Default(), "NoSuchEntity", decode(t, `{}`))
	assert.ErrorIs(t, err, ErrUnknownType)

	_, err = Unmarshal(Default(), "List[NoSuchEntity]", decode(t, `[]`))
	assert.ErrorIs(t, err, ErrUnknownType)
}

func TestUnmarshal_NestedCoercionErrorNamesPath(t *testing.T) {
	payload := decode(t, `{"token_0": {"id": "abc"}}`)
	_, err := Unmarshal(Default(), "LPTokenResponse", payload)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LPTokenResponse.token_0")
	var cerr *CoercionError
	assert.True(t, errors.As(err, &cerr))
	assert.Equal(t, "id", cerr.Field)
}

func TestRegistry_ResolveAndTypes(t *testing.T) {
	reg := Default()

	d, err := reg.Resolve("TokenPriceResponse")
	require.NoError(t, err)
	f, ok := d.Field("close")
	assert.True(t, ok)
	assert.True(t, f.Primitive)
	assert.Equal(t, KindFloat, f.Scalar)

	_, err = reg.Resolve("Bogus")
	assert.ErrorIs(t, err, ErrUnknownType)

	types := reg.Types()
	assert.Contains(t, types, "FarmsPortfolioResponse")
	assert.Contains(t, types, "TweetPublic")
	assert.Len(t, types, len(builtinDescriptors))
}
