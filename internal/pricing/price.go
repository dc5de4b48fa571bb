// Package pricing converts the Q96 square-root price encoding used by V3
// pools into exact rational prices. All intermediate arithmetic is done on
// big.Rat; floating point appears only when callers format for display.
package pricing

import (
	"errors"
	"fmt"
	"math/big"
)

// ErrUninitializedPool is returned when sqrtPriceX96 is zero, which a pool
// reports before its first initialize call.
var ErrUninitializedPool = errors.New("pool is uninitialized: sqrtPriceX96 is zero")

var (
	q96        = new(big.Int).Lsh(big.NewInt(1), 96)
	maxUint160 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 160), big.NewInt(1))
)

// SqrtRatioFromX96 recovers the exact square-root price v / 2^96.
func SqrtRatioFromX96(sqrtPriceX96 *big.Int) (*big.Rat, error) {
	if sqrtPriceX96 == nil {
		return nil, fmt.Errorf("sqrtPriceX96 is nil")
	}
	if sqrtPriceX96.Sign() < 0 {
		return nil, fmt.Errorf("sqrtPriceX96 is negative: %s", sqrtPriceX96)
	}
	if sqrtPriceX96.Sign() == 0 {
		return nil, ErrUninitializedPool
	}
	if sqrtPriceX96.Cmp(maxUint160) > 0 {
		return nil, fmt.Errorf("sqrtPriceX96 exceeds uint160: %s", sqrtPriceX96)
	}
	return new(big.Rat).SetFrac(new(big.Int).Set(sqrtPriceX96), q96), nil
}

// PriceFromSqrtPriceX96 returns the exact pool price in human units, quoted
// as token1 per token0: (v / 2^96)^2 * 10^(decimals0 - decimals1).
func PriceFromSqrtPriceX96(sqrtPriceX96 *big.Int, decimals0, decimals1 uint8) (*big.Rat, error) {
	sqrt, err := SqrtRatioFromX96(sqrtPriceX96)
	if err != nil {
		return nil, err
	}

	price := new(big.Rat).Mul(sqrt, sqrt)
	price.Mul(price, decimalsFactor(decimals0, decimals1))
	return price, nil
}

// Quote orients the pool price as quote-token units per base-token unit.
// baseIsToken0 reflects the pool's actual internal ordering, not the order
// the caller passed to the factory.
func Quote(sqrtPriceX96 *big.Int, decimals0, decimals1 uint8, baseIsToken0 bool) (*big.Rat, error) {
	price, err := PriceFromSqrtPriceX96(sqrtPriceX96, decimals0, decimals1)
	if err != nil {
		return nil, err
	}
	if baseIsToken0 {
		return price, nil
	}
	// price is nonzero: SqrtRatioFromX96 rejects zero input.
	return price.Inv(price), nil
}

// SqrtPriceX96FromPrice encodes a token1-per-token0 price back into the Q96
// square-root form, rounding down to the 160-bit grid.
func SqrtPriceX96FromPrice(price *big.Rat, decimals0, decimals1 uint8) (*big.Int, error) {
	if price == nil {
		return nil, fmt.Errorf("price is nil")
	}
	if price.Sign() <= 0 {
		return nil, fmt.Errorf("price must be positive: %s", price.RatString())
	}

	// Raw base-unit ratio = price / 10^(decimals0 - decimals1).
	raw := new(big.Rat).Quo(price, decimalsFactor(decimals0, decimals1))

	// floor(sqrt(raw) * 2^96) = isqrt(num * 2^192 / den).
	scaled := new(big.Int).Mul(raw.Num(), new(big.Int).Lsh(big.NewInt(1), 192))
	scaled.Quo(scaled, raw.Denom())
	sqrtPriceX96 := new(big.Int).Sqrt(scaled)

	if sqrtPriceX96.Cmp(maxUint160) > 0 {
		return nil, fmt.Errorf("price out of uint160 range: %s", price.RatString())
	}
	return sqrtPriceX96, nil
}

// decimalsFactor returns 10^(decimals0 - decimals1) as an exact rational.
func decimalsFactor(decimals0, decimals1 uint8) *big.Rat {
	exp := int64(decimals0) - int64(decimals1)
	if exp >= 0 {
		pow := new(big.Int).Exp(big.NewInt(10), big.NewInt(exp), nil)
		return new(big.Rat).SetInt(pow)
	}
	pow := new(big.Int).Exp(big.NewInt(10), big.NewInt(-exp), nil)
	return new(big.Rat).SetFrac(big.NewInt(1), pow)
}
