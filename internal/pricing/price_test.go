package pricing

import (
	"errors"
	"math/big"
	"testing"
)

func TestSqrtRatioFromX96Exact(t *testing.T) {
	v, ok := new(big.Int).SetString("1234567890123456789012345678901234567890", 10)
	if !ok {
		t.Fatalf("parse value")
	}

	ratio, err := SqrtRatioFromX96(v)
	if err != nil {
		t.Fatalf("sqrt ratio: %v", err)
	}

	want := new(big.Rat).SetFrac(v, new(big.Int).Lsh(big.NewInt(1), 96))
	if ratio.Cmp(want) != 0 {
		t.Fatalf("ratio mismatch: got %s want %s", ratio.RatString(), want.RatString())
	}
}

func TestPriceFromSqrtPriceX96Formula(t *testing.T) {
	// sqrtPrice = 3 encoded as 3 * 2^96; raw price = 9.
	v := new(big.Int).Mul(big.NewInt(3), new(big.Int).Lsh(big.NewInt(1), 96))

	price, err := PriceFromSqrtPriceX96(v, 8, 6)
	if err != nil {
		t.Fatalf("price: %v", err)
	}

	want := big.NewRat(900, 1)
	if price.Cmp(want) != 0 {
		t.Fatalf("price mismatch: got %s want %s", price.RatString(), want.RatString())
	}
}

func TestPriceUnitSqrtWithDecimals(t *testing.T) {
	// sqrtPriceX96 = 2^96 means sqrtPrice = 1; with decimals 18/6 the price
	// must be exactly 10^12.
	v := new(big.Int).Lsh(big.NewInt(1), 96)
	if v.String() != "79228162514264337593543950336" {
		t.Fatalf("unexpected 2^96 constant: %s", v)
	}

	price, err := PriceFromSqrtPriceX96(v, 18, 6)
	if err != nil {
		t.Fatalf("price: %v", err)
	}

	want := new(big.Rat).SetInt(new(big.Int).Exp(big.NewInt(10), big.NewInt(12), nil))
	if price.Cmp(want) != 0 {
		t.Fatalf("price mismatch: got %s want %s", price.RatString(), want.RatString())
	}
}

func TestZeroSqrtPriceFails(t *testing.T) {
	if _, err := SqrtRatioFromX96(big.NewInt(0)); !errors.Is(err, ErrUninitializedPool) {
		t.Fatalf("expected ErrUninitializedPool, got %v", err)
	}
	if _, err := PriceFromSqrtPriceX96(big.NewInt(0), 18, 6); !errors.Is(err, ErrUninitializedPool) {
		t.Fatalf("expected ErrUninitializedPool, got %v", err)
	}
	if _, err := Quote(big.NewInt(0), 18, 6, false); !errors.Is(err, ErrUninitializedPool) {
		t.Fatalf("expected ErrUninitializedPool, got %v", err)
	}
}

func TestMaxUint160Decodes(t *testing.T) {
	max := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 160), big.NewInt(1))

	price, err := PriceFromSqrtPriceX96(max, 18, 6)
	if err != nil {
		t.Fatalf("price: %v", err)
	}
	if price.Sign() <= 0 {
		t.Fatalf("price must be positive: %s", price.RatString())
	}

	over := new(big.Int).Add(max, big.NewInt(1))
	if _, err := SqrtRatioFromX96(over); err == nil {
		t.Fatalf("expected range error for 2^160")
	}
}

func TestInvalidInputsRejected(t *testing.T) {
	if _, err := SqrtRatioFromX96(nil); err == nil {
		t.Fatalf("expected error for nil input")
	}
	if _, err := SqrtRatioFromX96(big.NewInt(-1)); err == nil {
		t.Fatalf("expected error for negative input")
	}
}

func TestQuoteOrientation(t *testing.T) {
	// sqrtPrice = 2, raw price = 4 token1 per token0 with equal decimals.
	v := new(big.Int).Lsh(big.NewInt(2), 96)

	asToken0, err := Quote(v, 18, 18, true)
	if err != nil {
		t.Fatalf("quote: %v", err)
	}
	if asToken0.Cmp(big.NewRat(4, 1)) != 0 {
		t.Fatalf("base=token0 mismatch: %s", asToken0.RatString())
	}

	asToken1, err := Quote(v, 18, 18, false)
	if err != nil {
		t.Fatalf("quote: %v", err)
	}
	if asToken1.Cmp(big.NewRat(1, 4)) != 0 {
		t.Fatalf("base=token1 mismatch: %s", asToken1.RatString())
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	// A WETH/USDC-like price: 3847.25 token1 per token0 in human units.
	price := big.NewRat(384725, 100)

	encoded, err := SqrtPriceX96FromPrice(price, 6, 18)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if encoded.Sign() <= 0 {
		t.Fatalf("encoded must be positive")
	}

	decoded, err := PriceFromSqrtPriceX96(encoded, 6, 18)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	// The 160-bit grid floor loses at most a couple of ulps of the square
	// root, so the relative error stays far below 2^-72.
	diff := new(big.Rat).Sub(decoded, price)
	diff.Quo(diff, price)
	diff.Abs(diff)
	tolerance := new(big.Rat).SetFrac(big.NewInt(1), new(big.Int).Lsh(big.NewInt(1), 72))
	if diff.Cmp(tolerance) > 0 {
		t.Fatalf("round trip error too large: %s", diff.FloatString(40))
	}
}

func TestEncodeKnownValue(t *testing.T) {
	// price 10^12 with decimals 18/6 is raw ratio 1, sqrtPriceX96 = 2^96.
	price := new(big.Rat).SetInt(new(big.Int).Exp(big.NewInt(10), big.NewInt(12), nil))

	encoded, err := SqrtPriceX96FromPrice(price, 18, 6)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	want := new(big.Int).Lsh(big.NewInt(1), 96)
	if encoded.Cmp(want) != 0 {
		t.Fatalf("encoded mismatch: got %s want %s", encoded, want)
	}
}

func TestEncodeRejectsNonPositive(t *testing.T) {
	if _, err := SqrtPriceX96FromPrice(nil, 18, 6); err == nil {
		t.Fatalf("expected error for nil price")
	}
	if _, err := SqrtPriceX96FromPrice(big.NewRat(0, 1), 18, 6); err == nil {
		t.Fatalf("expected error for zero price")
	}
	if _, err := SqrtPriceX96FromPrice(big.NewRat(-5, 1), 18, 6); err == nil {
		t.Fatalf("expected error for negative price")
	}
}
