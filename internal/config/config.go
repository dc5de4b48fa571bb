package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Mainnet defaults matching the WETH/USDC 0.3% pool setup.
const (
	DefaultFactory    = "0x1F98431c8aD98523631AE4a59f267346ea31F984"
	DefaultBaseToken  = "0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2" // WETH
	DefaultQuoteToken = "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48" // USDC
	DefaultFee        = uint32(3000)
)

const alchemyURLTemplate = "https://eth-mainnet.g.alchemy.com/v2/%s"

// QuoteConfig holds configuration values loaded from flags, env, or config file.
type QuoteConfig struct {
	RPCURL        string
	APIKey        string
	Factory       string
	BaseToken     string
	QuoteToken    string
	Fee           uint32
	BaseDecimals  int
	QuoteDecimals int
	Out           string
	PGDSN         string
	LogLevel      string
}

// Load merges config file, environment variables, and flags into QuoteConfig.
func Load(cfgFile string, flags *pflag.FlagSet) (QuoteConfig, error) {
	v := viper.New()
	v.SetEnvPrefix("QUOTER")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	// ALCHEMY_API_KEY is the conventional provider variable; QUOTER_API_KEY
	// also works through the automatic env binding.
	if err := v.BindEnv("api-key", "QUOTER_API_KEY", "ALCHEMY_API_KEY"); err != nil {
		return QuoteConfig{}, fmt.Errorf("bind env: %w", err)
	}

	v.SetDefault("factory", DefaultFactory)
	v.SetDefault("base-token", DefaultBaseToken)
	v.SetDefault("quote-token", DefaultQuoteToken)
	v.SetDefault("fee", DefaultFee)
	v.SetDefault("base-decimals", -1)
	v.SetDefault("quote-decimals", -1)
	v.SetDefault("log-level", "info")

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return QuoteConfig{}, fmt.Errorf("bind flags: %w", err)
		}
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return QuoteConfig{}, fmt.Errorf("read config: %w", err)
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return QuoteConfig{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	cfg := QuoteConfig{
		RPCURL:        v.GetString("rpc"),
		APIKey:        v.GetString("api-key"),
		Factory:       v.GetString("factory"),
		BaseToken:     v.GetString("base-token"),
		QuoteToken:    v.GetString("quote-token"),
		Fee:           v.GetUint32("fee"),
		BaseDecimals:  v.GetInt("base-decimals"),
		QuoteDecimals: v.GetInt("quote-decimals"),
		Out:           v.GetString("out"),
		PGDSN:         v.GetString("pg-dsn"),
		LogLevel:      v.GetString("log-level"),
	}

	return cfg, nil
}

// ResolveRPCURL returns the endpoint to dial: an explicit --rpc value, or the
// Alchemy mainnet URL templated from the API key. An empty result is a
// configuration error and nothing is dialed.
func (c QuoteConfig) ResolveRPCURL() (string, error) {
	if c.RPCURL != "" {
		return c.RPCURL, nil
	}
	if c.APIKey != "" {
		return fmt.Sprintf(alchemyURLTemplate, c.APIKey), nil
	}
	return "", fmt.Errorf("rpc url or ALCHEMY_API_KEY is required")
}
