package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	root := &cobra.Command{
		Use:          "quoter",
		Short:        "Uniswap V3 pool price quoter",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "", "config file path")

	quoteCmd := &cobra.Command{
		Use:   "quote",
		Short: "Resolve a pool and print its current price",
		RunE:  runQuote,
	}

	quoteCmd.Flags().String("rpc", "", "Ethereum RPC URL (overrides ALCHEMY_API_KEY)")
	quoteCmd.Flags().String("factory", "", "V3 factory address")
	quoteCmd.Flags().String("base-token", "", "base token address (price denominator)")
	quoteCmd.Flags().String("quote-token", "", "quote token address (price numerator)")
	quoteCmd.Flags().Uint32("fee", 3000, "fee tier in hundredths of a bip (3000 = 0.3%)")
	quoteCmd.Flags().Int("base-decimals", -1, "base token decimals override (-1 fetches from chain)")
	quoteCmd.Flags().Int("quote-decimals", -1, "quote token decimals override (-1 fetches from chain)")
	quoteCmd.Flags().String("out", "", "optional JSONL path for the quote snapshot")
	quoteCmd.Flags().String("pg-dsn", "", "optional Postgres DSN for the quote snapshot")
	quoteCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(quoteCmd)

	resolveCmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve a pool address from the factory",
		RunE:  runResolve,
	}

	resolveCmd.Flags().String("rpc", "", "Ethereum RPC URL (overrides ALCHEMY_API_KEY)")
	resolveCmd.Flags().String("factory", "", "V3 factory address")
	resolveCmd.Flags().String("base-token", "", "base token address")
	resolveCmd.Flags().String("quote-token", "", "quote token address")
	resolveCmd.Flags().Uint32("fee", 3000, "fee tier in hundredths of a bip (3000 = 0.3%)")
	resolveCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(resolveCmd)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevel()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}

	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build()
}
