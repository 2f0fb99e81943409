package config

import (
	"errors"
	"fmt"
	"strings"

	"des-go/pkg/des"

	"github.com/spf13/viper"
)

type Config struct {
	Key                   string `mapstructure:"key"`
	TraceGroup            int    `mapstructure:"trace_group"`
	APIListenAddr         string `mapstructure:"api_listen_address"`
	LogDB                 string `mapstructure:"log_db"`
	LogLevel              string `mapstructure:"log_level"`
	TranscriptCompression string `mapstructure:"transcript_compression"`
	ConfigFile            string `mapstructure:"config_file"`
}

func DefaultConfig() *Config {
	return &Config{
		TraceGroup:            4,
		APIListenAddr:         ":7780",
		LogDB:                 "des.db",
		LogLevel:              "info",
		TranscriptCompression: "zstd",
		ConfigFile:            "des",
	}
}

// Load reads configuration from the config file, then DES_* environment
// variables. An explicit configFile must exist; otherwise a missing file is
// ignored and defaults apply.
func Load(configFile string) (*Config, error) {
	cfg := DefaultConfig()
	v := viper.New()

	v.SetDefault("key", cfg.Key)
	v.SetDefault("trace_group", cfg.TraceGroup)
	v.SetDefault("api_listen_address", cfg.APIListenAddr)
	v.SetDefault("log_db", cfg.LogDB)
	v.SetDefault("log_level", cfg.LogLevel)
	v.SetDefault("transcript_compression", cfg.TranscriptCompression)
	v.SetDefault("config_file", cfg.ConfigFile)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(cfg.ConfigFile)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/des-go/")
		v.AddConfigPath("$HOME/.des-go")
	}
	v.SetEnvPrefix("DES")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: %w", err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if used := v.ConfigFileUsed(); used != "" {
		cfg.ConfigFile = used
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that would otherwise fail late.
func (c *Config) Validate() error {
	if c.TraceGroup < 0 || c.TraceGroup > 64 {
		return fmt.Errorf("config: trace_group %d out of range [0, 64]", c.TraceGroup)
	}
	switch strings.ToLower(c.TranscriptCompression) {
	case "", "none", "gzip", "zstd":
	default:
		return fmt.Errorf("config: unknown transcript_compression %q", c.TranscriptCompression)
	}
	if c.Key != "" {
		if _, err := des.ParseKey(c.Key); err != nil {
			return fmt.Errorf("config: %w", err)
		}
	}
	return nil
}

// MasterKey parses the configured key.
func (c *Config) MasterKey() (uint64, error) {
	return des.ParseKey(c.Key)
}
