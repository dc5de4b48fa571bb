package dex

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"

	"priceScope/internal/chain"
)

// ErrPoolNotFound is returned when the factory reports the zero address for a
// token pair and fee tier.
var ErrPoolNotFound = errors.New("pool does not exist for token pair and fee")

// ResolvePool asks the factory for the pool address of (tokenA, tokenB, fee).
// The factory ignores token ordering; the fee is in hundredths of a bip
// (3000 = 0.3%).
func ResolvePool(ctx context.Context, chainClient *chain.Client, factory, tokenA, tokenB common.Address, fee uint32) (common.Address, error) {
	if chainClient == nil {
		return common.Address{}, fmt.Errorf("chain client is nil")
	}

	factoryABI, err := V3FactoryABI()
	if err != nil {
		return common.Address{}, fmt.Errorf("parse factory abi: %w", err)
	}

	data, err := factoryABI.Pack("getPool", tokenA, tokenB, new(big.Int).SetUint64(uint64(fee)))
	if err != nil {
		return common.Address{}, fmt.Errorf("pack getPool: %w", err)
	}

	msg := ethereum.CallMsg{To: &factory, Data: data}
	resp, err := chainClient.CallContract(ctx, msg, nil)
	if err != nil {
		return common.Address{}, fmt.Errorf("call getPool: %w", err)
	}

	values, err := factoryABI.Unpack("getPool", resp)
	if err != nil {
		return common.Address{}, fmt.Errorf("unpack getPool: %w", err)
	}

	return poolFromValues(values)
}

// poolFromValues extracts the pool address from unpacked getPool outputs.
// The zero address means the pool does not exist; the pipeline must stop
// rather than issue calls against it.
func poolFromValues(values []interface{}) (common.Address, error) {
	if len(values) != 1 {
		return common.Address{}, fmt.Errorf("unexpected getPool values: %d", len(values))
	}

	pool, err := asAddress(values[0])
	if err != nil {
		return common.Address{}, fmt.Errorf("getPool: %w", err)
	}
	if pool == (common.Address{}) {
		return common.Address{}, ErrPoolNotFound
	}

	return pool, nil
}
