package models

// Wire schemas for every response entity the API serves. Field order
// follows the served schema and is load-bearing for bare-array
// payloads.

func prim(wire string, k Kind) Field {
	return Field{Wire: wire, Local: wire, Primitive: true, Scalar: k}
}

func nested(wire, entity string) Field {
	return Field{Wire: wire, Local: wire, Type: &TypeRef{Kind: RefEntity, Name: entity}}
}

func nestedList(wire, entity string) Field {
	elem := &TypeRef{Kind: RefEntity, Name: entity}
	return Field{Wire: wire, Local: wire, Type: &TypeRef{Kind: RefList, Elem: elem}}
}

var builtinDescriptors = []*Descriptor{
	NewDescriptor("PoolBalance",
		prim("balance", KindFloat),
		prim("pending_reward", KindFloat),
		prim("pending_reward_price", KindFloat),
		prim("price", KindFloat),
		prim("reward_token", KindString),
		prim("token", KindString),
		prim("token_address", KindString),
	),
	NewDescriptor("WhitelistedAddress",
		prim("address", KindString),
		prim("id", KindInt),
	),
	NewDescriptor("FarmPortfolio",
		prim("farm_icon", KindString),
		prim("farm_name", KindString),
		prim("farm_true_name", KindString),
		nestedList("pools_balance", "PoolBalance"),
	),
	NewDescriptor("TokenResponse",
		prim("active", KindBool),
		prim("chain", KindString),
		prim("circulating_supply", KindFloat),
		prim("contract", KindString),
		prim("decimals", KindFloat),
		prim("id", KindInt),
		prim("name", KindString),
		prim("symbol", KindString),
		prim("total_supply", KindFloat),
	),
	NewDescriptor("BasicPoolInfo",
		prim("apr", KindFloat),
		prim("apy", KindFloat),
		prim("reward_token", KindString),
		prim("token", KindString),
		prim("token_address", KindString),
		prim("tvl", KindFloat),
	),
	NewDescriptor("BasicOptimizerPoolInfo",
		prim("apy", KindFloat),
		prim("farm_apr", KindFloat),
		prim("from_platform", KindString),
		prim("reward_token", KindString),
		prim("rewards_apr", KindFloat),
		prim("token", KindString),
		prim("token_address", KindString),
		prim("tvl", KindFloat),
	),
	NewDescriptor("Domain",
		prim("authority", KindInt),
		prim("url", KindString),
	),
	NewDescriptor("Tag",
		prim("id", KindInt),
		prim("tag", KindString),
	),
	NewDescriptor("BasicPool",
		prim("reward_token", KindString),
		prim("token", KindString),
		prim("token_address", KindString),
	),
	NewDescriptor("BasicOptimizerPool",
		prim("from_platform", KindString),
		prim("reward_token", KindString),
		prim("token", KindString),
		prim("token_address", KindString),
	),
	NewDescriptor("Balance",
		prim("createdAt", KindString),
		prim("portfolio", KindString),
		nested("wallet", "WhitelistedAddress"),
		prim("walletID", KindInt),
	),
	NewDescriptor("BalanceMove",
		prim("move", KindFloat),
		prim("timestamp", KindString),
		prim("token_id", KindInt),
		prim("wallet_id", KindInt),
	),
	NewDescriptor("BalanceMoveLP",
		prim("move", KindFloat),
		prim("timestamp", KindString),
		prim("token_id", KindInt),
		prim("wallet_id", KindInt),
	),
	NewDescriptor("Liquidity",
		prim("platform_id", KindInt),
		prim("reserve_0", KindFloat),
		prim("reserve_1", KindFloat),
		prim("timestamp", KindString),
		prim("token_id", KindInt),
	),
	NewDescriptor("PriceTick",
		prim("circulating_supply", KindFloat),
		prim("platform_id", KindInt),
		prim("price_peg", KindFloat),
		prim("price_stable", KindFloat),
		prim("timestamp", KindString),
		prim("token_id", KindInt),
	),
	NewDescriptor("VolumeTick",
		prim("platform_id", KindInt),
		prim("timestamp", KindString),
		prim("token_id", KindInt),
		prim("volume", KindFloat),
	),
	NewDescriptor("ActiveAddressesResponse",
		prim("count", KindInt),
		prim("time", KindTime),
	),
	NewDescriptor("FarmResponse",
		prim("name", KindString),
		prim("true_name", KindString),
		prim("tvl", KindFloat),
	),
	NewDescriptor("FarmsPortfolioResponse",
		nestedList("lp_pools", "FarmPortfolio"),
		nestedList("optimizer_lp_pools", "FarmPortfolio"),
		nestedList("optimizer_single_asset_pools", "FarmPortfolio"),
		nestedList("single_asset_pools", "FarmPortfolio"),
	),
	NewDescriptor("LPLiquidityResponse",
		prim("liquidity_0", KindFloat),
		prim("liquidity_1", KindFloat),
		prim("time", KindTime),
	),
	NewDescriptor("LPMoveResponse",
		prim("amount_0", KindFloat),
		prim("amount_1", KindFloat),
		prim("time", KindTime),
		prim("token_contract", KindString),
		prim("token_symbol", KindString),
	),
	NewDescriptor("LPTokenResponse",
		prim("chain", KindString),
		prim("contract", KindString),
		prim("decimals", KindFloat),
		prim("id", KindInt),
		prim("name", KindString),
		prim("symbol", KindString),
		nested("token_0", "TokenResponse"),
		nested("token_1", "TokenResponse"),
		prim("total_supply", KindFloat),
	),
	NewDescriptor("PoolsInfoResponse",
		nestedList("lp_pools", "BasicPoolInfo"),
		nestedList("optimizer_lp_pools", "BasicOptimizerPoolInfo"),
		nestedList("optimizer_single_asset_pools", "BasicOptimizerPoolInfo"),
		nestedList("single_asset_pools", "BasicPoolInfo"),
	),
	NewDescriptor("PoolsResponse",
		nestedList("lp_pools", "BasicPool"),
		nestedList("optimizer_lp_pools", "BasicOptimizerPool"),
		nestedList("optimizer_single_asset_pools", "BasicOptimizerPool"),
		nestedList("single_asset_pools", "BasicPool"),
	),
	NewDescriptor("PortfolioResponse",
		prim("portfolio", KindString),
		prim("time", KindTime),
	),
	NewDescriptor("TokenPortfolioResponse",
		prim("balance", KindFloat),
		prim("token_address", KindString),
		prim("token_icon", KindString),
		prim("token_name", KindString),
		prim("token_symbol", KindString),
		prim("usd_value", KindFloat),
	),
	NewDescriptor("TokenPriceResponse",
		prim("close", KindFloat),
		prim("high", KindFloat),
		prim("low", KindFloat),
		prim("open", KindFloat),
		prim("time", KindTime),
	),
	NewDescriptor("TokenResponseExtended",
		prim("active", KindBool),
		prim("chain", KindString),
		prim("circulating_supply", KindFloat),
		prim("contract", KindString),
		prim("decimals", KindFloat),
		prim("id", KindInt),
		prim("liquidity_usd", KindFloat),
		prim("market_cap", KindFloat),
		prim("name", KindString),
		prim("price_change_24_h", KindFloat),
		prim("price_change_7_d", KindFloat),
		prim("price_peg", KindFloat),
		prim("price_usd", KindFloat),
		prim("symbol", KindString),
		prim("total_supply", KindFloat),
		prim("volume_24_h", KindFloat),
	),
	NewDescriptor("TradedVolumeResponse",
		prim("time", KindTime),
		prim("volume", KindFloat),
	),
	NewDescriptor("TransactionResponse",
		prim("block", KindInt),
		prim("from_address", KindString),
		prim("time", KindTime),
		prim("to_address", KindString),
		prim("tx_fee", KindFloat),
		prim("tx_hash", KindString),
		prim("value", KindFloat),
	),
	NewDescriptor("WalletMoveResponse",
		prim("amount", KindFloat),
		prim("time", KindTime),
		prim("token", KindString),
	),
	NewDescriptor("MarketDepth",
		prim("time", KindTime),
		prim("current_price", KindFloat),
		prim("depth", KindString),
	),
	NewDescriptor("AvailableAsset",
		prim("chain", KindInt),
		prim("contract", KindString),
		prim("is_default", KindBool),
		prim("symbol", KindString),
	),
	NewDescriptor("DiscordPublicMessage",
		prim("content", KindString),
		prim("created_at", KindTime),
		prim("id", KindInt),
	),
	NewDescriptor("PublicReadable",
		prim("created_at", KindTime),
		nested("domain", "Domain"),
		prim("source", KindString),
		prim("text", KindString),
		prim("title", KindString),
	),
	NewDescriptor("Readable",
		prim("comment_count", KindInt),
		prim("created_at", KindTime),
		nested("domain", "Domain"),
		prim("emotion", KindFloat),
		prim("id", KindInt),
		prim("published_at", KindString),
		prim("source", KindString),
		nestedList("tags", "Tag"),
		prim("title", KindString),
		prim("view_count", KindInt),
	),
	NewDescriptor("TelegramPublicMessage",
		prim("content", KindString),
		prim("created_at", KindTime),
		prim("message_id", KindInt),
		prim("sent_at", KindTime),
	),
	NewDescriptor("TweetPublic",
		prim("content", KindString),
		prim("created_at", KindTime),
		prim("tweet_id", KindInt),
	),
}
