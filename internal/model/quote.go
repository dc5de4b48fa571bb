package model

// QuoteSnapshot is a point-in-time price observation for a single pool,
// oriented as quote-token units per base-token unit.
type QuoteSnapshot struct {
	ChainID      uint64    `json:"chain_id"`
	PoolAddress  string    `json:"pool_address"`
	BaseToken    TokenMeta `json:"base_token"`
	QuoteToken   TokenMeta `json:"quote_token"`
	Fee          uint32    `json:"fee"`
	SqrtPriceX96 string    `json:"sqrt_price_x96"`
	Tick         int32     `json:"tick"`
	Price        string    `json:"price"`
	PriceFloat   float64   `json:"price_float"`
	Timestamp    int64     `json:"timestamp"`
}
