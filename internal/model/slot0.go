package model

import (
	"fmt"
	"math/big"
)

// Slot0 is the packed state tuple returned by a V3 pool's slot0 call.
type Slot0 struct {
	SqrtPriceX96               *big.Int
	Tick                       int32
	ObservationIndex           uint16
	ObservationCardinality     uint16
	ObservationCardinalityNext uint16
	FeeProtocol                uint8
	Unlocked                   bool
}

func (s Slot0) String() string {
	sqrt := "<nil>"
	if s.SqrtPriceX96 != nil {
		sqrt = s.SqrtPriceX96.String()
	}
	return fmt.Sprintf(
		"sqrtPriceX96=%s tick=%d observationIndex=%d observationCardinality=%d observationCardinalityNext=%d feeProtocol=%d unlocked=%t",
		sqrt,
		s.Tick,
		s.ObservationIndex,
		s.ObservationCardinality,
		s.ObservationCardinalityNext,
		s.FeeProtocol,
		s.Unlocked,
	)
}
