package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"priceScope/internal/chain"
	"priceScope/internal/config"
	"priceScope/internal/dex"
	"priceScope/internal/model"
	"priceScope/internal/pricing"
	"priceScope/internal/storage"
	"priceScope/internal/storage/postgres"
)

func runQuote(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	rpcURL, err := cfg.ResolveRPCURL()
	if err != nil {
		return err
	}

	factory, base, quoteToken, err := parseQuoteAddresses(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	chainClient, err := chain.NewClient(ctx, rpcURL)
	if err != nil {
		return fmt.Errorf("connect rpc: %w", err)
	}
	defer chainClient.Close()

	logger.Info("quote start",
		zap.String("factory", factory.Hex()),
		zap.String("base_token", base.Hex()),
		zap.String("quote_token", quoteToken.Hex()),
		zap.Uint32("fee", cfg.Fee),
	)

	pool, err := dex.ResolvePool(ctx, chainClient, factory, base, quoteToken, cfg.Fee)
	if err != nil {
		return err
	}
	fmt.Printf("pool: %s\n", pool.Hex())

	token0, token1, err := dex.FetchPoolTokens(ctx, chainClient, pool)
	if err != nil {
		return err
	}

	var baseIsToken0 bool
	switch base {
	case token0:
		baseIsToken0 = true
	case token1:
		baseIsToken0 = false
	default:
		return fmt.Errorf("base token %s is not in pool %s (token0=%s token1=%s)",
			base.Hex(), pool.Hex(), token0.Hex(), token1.Hex())
	}

	baseMeta, err := tokenMeta(ctx, chainClient, base, cfg.BaseDecimals, logger)
	if err != nil {
		return fmt.Errorf("base token metadata: %w", err)
	}
	quoteMeta, err := tokenMeta(ctx, chainClient, quoteToken, cfg.QuoteDecimals, logger)
	if err != nil {
		return fmt.Errorf("quote token metadata: %w", err)
	}

	slot, err := dex.FetchSlot0(ctx, chainClient, pool)
	if err != nil {
		return err
	}
	fmt.Printf("slot0: %s\n", slot)

	decimals0, decimals1 := baseMeta.Decimals, quoteMeta.Decimals
	if !baseIsToken0 {
		decimals0, decimals1 = quoteMeta.Decimals, baseMeta.Decimals
	}

	price, err := pricing.Quote(slot.SqrtPriceX96, decimals0, decimals1, baseIsToken0)
	if err != nil {
		return err
	}
	fmt.Printf("price: %s\n", price.FloatString(8))

	logger.Info("quote complete",
		zap.String("pool", pool.Hex()),
		zap.String("sqrt_price_x96", slot.SqrtPriceX96.String()),
		zap.Int32("tick", slot.Tick),
		zap.String("base_symbol", baseMeta.Symbol),
		zap.String("quote_symbol", quoteMeta.Symbol),
		zap.String("price", price.FloatString(8)),
	)

	if cfg.Out == "" && cfg.PGDSN == "" {
		return nil
	}

	chainID, err := chainClient.ChainID(ctx)
	if err != nil {
		return fmt.Errorf("chain id: %w", err)
	}

	priceFloat, _ := price.Float64()
	snapshot := model.QuoteSnapshot{
		ChainID:      chainID.Uint64(),
		PoolAddress:  pool.Hex(),
		BaseToken:    baseMeta,
		QuoteToken:   quoteMeta,
		Fee:          cfg.Fee,
		SqrtPriceX96: slot.SqrtPriceX96.String(),
		Tick:         slot.Tick,
		Price:        price.FloatString(18),
		PriceFloat:   priceFloat,
		Timestamp:    time.Now().Unix(),
	}

	if cfg.Out != "" {
		sink := storage.NewJsonlStorage(cfg.Out)
		if err := sink.PutQuote(snapshot); err != nil {
			return fmt.Errorf("write snapshot: %w", err)
		}
	}

	if cfg.PGDSN != "" {
		store, err := postgres.NewStore(ctx, cfg.PGDSN)
		if err != nil {
			return fmt.Errorf("connect postgres: %w", err)
		}
		defer store.Close()
		if err := store.UpsertQuotes(ctx, []model.QuoteSnapshot{snapshot}); err != nil {
			return fmt.Errorf("persist snapshot: %w", err)
		}
	}

	return nil
}

func tokenMeta(ctx context.Context, chainClient *chain.Client, token common.Address, decimalsOverride int, logger *zap.Logger) (model.TokenMeta, error) {
	if decimalsOverride >= 0 {
		if decimalsOverride > 255 {
			return model.TokenMeta{}, fmt.Errorf("decimals override out of range: %d", decimalsOverride)
		}
		return model.TokenMeta{Address: token.Hex(), Decimals: uint8(decimalsOverride)}, nil
	}
	return dex.FetchTokenMeta(ctx, chainClient, token, logger)
}

func parseQuoteAddresses(cfg config.QuoteConfig) (factory, base, quote common.Address, err error) {
	factory, err = parseAddress("factory", cfg.Factory)
	if err != nil {
		return
	}
	base, err = parseAddress("base token", cfg.BaseToken)
	if err != nil {
		return
	}
	quote, err = parseAddress("quote token", cfg.QuoteToken)
	if err != nil {
		return
	}
	if base == quote {
		err = fmt.Errorf("base and quote tokens are identical: %s", base.Hex())
	}
	return
}

func parseAddress(name, value string) (common.Address, error) {
	if value == "" {
		return common.Address{}, fmt.Errorf("%s address is required", name)
	}
	if !common.IsHexAddress(value) {
		return common.Address{}, fmt.Errorf("invalid %s address: %s", name, value)
	}
	return common.HexToAddress(value), nil
}
