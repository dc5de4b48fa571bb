package storage

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"priceScope/internal/model"
)

func TestJsonlStoragePutQuote(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "quotes.jsonl")
	sink := NewJsonlStorage(path)

	quote := model.QuoteSnapshot{
		ChainID:      1,
		PoolAddress:  "0x8ad599c3A0ff1De082011EFDDc58f1908eb6e6D8",
		BaseToken:    model.TokenMeta{Address: "0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2", Decimals: 18, Symbol: "WETH"},
		QuoteToken:   model.TokenMeta{Address: "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48", Decimals: 6, Symbol: "USDC"},
		Fee:          3000,
		SqrtPriceX96: "1974849632132783762612",
		Tick:         -201234,
		Price:        "3847.250000000000000000",
		PriceFloat:   3847.25,
		Timestamp:    1700000000,
	}

	if err := sink.PutQuote(quote); err != nil {
		t.Fatalf("put quote: %v", err)
	}
	if err := sink.PutQuote(quote); err != nil {
		t.Fatalf("put quote again: %v", err)
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("open output: %v", err)
	}
	defer file.Close()

	var lines int
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		lines++
		var got model.QuoteSnapshot
		if err := json.Unmarshal(scanner.Bytes(), &got); err != nil {
			t.Fatalf("unmarshal line %d: %v", lines, err)
		}
		if got.PoolAddress != quote.PoolAddress || got.SqrtPriceX96 != quote.SqrtPriceX96 {
			t.Fatalf("snapshot mismatch: %+v", got)
		}
		if got.BaseToken.Symbol != "WETH" || got.QuoteToken.Decimals != 6 {
			t.Fatalf("token meta mismatch: %+v", got)
		}
	}
	if err := scanner.Err(); err != nil {
		t.Fatalf("scan: %v", err)
	}
	if lines != 2 {
		t.Fatalf("expected 2 lines, got %d", lines)
	}
}
