package model

import (
	"math/big"
	"testing"
)

func TestSlot0String(t *testing.T) {
	slot := Slot0{
		SqrtPriceX96:               big.NewInt(79228162514264337),
		Tick:                       -100,
		ObservationIndex:           3,
		ObservationCardinality:     10,
		ObservationCardinalityNext: 12,
		FeeProtocol:                4,
		Unlocked:                   true,
	}

	want := "sqrtPriceX96=79228162514264337 tick=-100 observationIndex=3 observationCardinality=10 observationCardinalityNext=12 feeProtocol=4 unlocked=true"
	if got := slot.String(); got != want {
		t.Fatalf("string mismatch:\n got %s\nwant %s", got, want)
	}
}

func TestSlot0StringNilPrice(t *testing.T) {
	var slot Slot0
	got := slot.String()
	if got == "" {
		t.Fatalf("empty string")
	}
}
