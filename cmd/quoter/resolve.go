package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"priceScope/internal/chain"
	"priceScope/internal/config"
	"priceScope/internal/dex"
)

func runResolve(cmd *cobra.Command, _ []string) error {
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

	factory, base, quote, err := parseQuoteAddresses(cfg)
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

	pool, err := dex.ResolvePool(ctx, chainClient, factory, base, quote, cfg.Fee)
	if err != nil {
		return err
	}

	logger.Info("pool resolved",
		zap.String("factory", factory.Hex()),
		zap.String("base_token", base.Hex()),
		zap.String("quote_token", quote.Hex()),
		zap.Uint32("fee", cfg.Fee),
		zap.String("pool", pool.Hex()),
	)

	fmt.Printf("pool: %s\n", pool.Hex())
	return nil
}
