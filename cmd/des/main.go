package main

import (
	"fmt"
	"os"
	"strings"

	"des-go/pkg/config"
	"des-go/pkg/log"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"
)

// Version information - set at build time
var (
	Version   = "dev"
	BuildTime = "unknown"
)

var cfg *config.Config

var globalFlags = []cli.Flag{
	&cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to the configuration `FILE`",
	},
	&cli.StringFlag{
		Name:    "key",
		Aliases: []string{"k"},
		Usage:   "Master key as 16 hex digits `KEY` (overrides config)",
		EnvVars: []string{"DES_KEY"},
	},
	&cli.StringFlag{
		Name:  "log-db",
		Usage: "SQLite log database `FILE`; empty logs to stderr",
	},
	&cli.StringFlag{
		Name:  "log-level",
		Usage: "Log `LEVEL` (debug, info, warn, error)",
	},
}

func before(c *cli.Context) error {
	var err error
	cfg, err = config.Load(c.String("config"))
	if err != nil {
		return cli.Exit(fmt.Sprintf("Failed to load configuration: %v", err), 1)
	}
	if c.IsSet("key") {
		cfg.Key = c.String("key")
	}
	if c.IsSet("log-db") {
		cfg.LogDB = c.String("log-db")
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}
	if err := cfg.Validate(); err != nil {
		return cli.Exit(err.Error(), 1)
	}

	level, err := zerolog.ParseLevel(strings.ToLower(cfg.LogLevel))
	if err != nil {
		return cli.Exit(fmt.Sprintf("Invalid log level %q", cfg.LogLevel), 1)
	}
	// logs reads the database itself
	if c.Args().First() == "logs" {
		return nil
	}
	if cfg.LogDB == "" {
		log.SetStd(level)
		return nil
	}
	if err := log.Init(cfg.LogDB); err != nil {
		return cli.Exit(fmt.Sprintf("Failed to initialize logger: %v", err), 1)
	}
	zerolog.SetGlobalLevel(level)
	return nil
}

func after(c *cli.Context) error {
	return log.Close()
}

func newApp() *cli.App {
	return &cli.App{
		Name:    "des",
		Usage:   "DES single-block encryption engine",
		Version: fmt.Sprintf("%s (built %s)", Version, BuildTime),
		Flags:   globalFlags,
		Before:  before,
		After:   after,
		Commands: []*cli.Command{
			encryptCommand,
			decryptCommand,
			traceCommand,
			graphCommand,
			selftestCommand,
			serveCommand,
			logsCommand,
		},
	}
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
