package main

import (
	"errors"
	"fmt"

	"des-go/pkg/des"
	"des-go/pkg/log"

	"github.com/urfave/cli/v2"
)

var (
	encryptCommand = &cli.Command{
		Name:      "encrypt",
		Usage:     "encrypts one 64-bit block",
		UsageText: "des encrypt [--key KEY] BLOCK",
		Action:    blockCmd(des.Encrypt),
	}
	decryptCommand = &cli.Command{
		Name:      "decrypt",
		Usage:     "decrypts one 64-bit block",
		UsageText: "des decrypt [--key KEY] BLOCK",
		Action:    blockCmd(des.Decrypt),
	}
)

// masterKey returns the configured key; the command fails before any other
// work when it is missing or invalid.
func masterKey() (uint64, error) {
	if cfg.Key == "" {
		return 0, cli.Exit("Error: a master key is required (--key, DES_KEY or config 'key')", 1)
	}
	key, err := cfg.MasterKey()
	if err != nil {
		return 0, cli.Exit(fmt.Sprintf("Error: %v", err), 1)
	}
	return key, nil
}

func blockArg(c *cli.Context) (uint64, error) {
	if c.NArg() != 1 {
		return 0, cli.Exit(fmt.Sprintf("Error: expected exactly one block, got %d arguments", c.NArg()), 1)
	}
	block, err := des.ParseBlock(c.Args().First())
	if err != nil {
		return 0, cli.Exit(fmt.Sprintf("Error: %v", err), 1)
	}
	return block, nil
}

func blockCmd(dir des.Direction) cli.ActionFunc {
	return func(c *cli.Context) error {
		key, err := masterKey()
		if err != nil {
			return err
		}
		block, err := blockArg(c)
		if err != nil {
			return err
		}

		var opts []des.Option
		if log.Enabled() {
			opts = append(opts, des.WithObserver(log.RoundObserver{Group: cfg.TraceGroup}))
		}
		cipher := des.New(key, opts...)
		var out uint64
		switch dir {
		case des.Encrypt:
			out = cipher.EncryptBlock(block)
		case des.Decrypt:
			out = cipher.DecryptBlock(block)
		default:
			return errors.New("unknown direction")
		}
		log.Info().Str("op", dir.String()).Str("input", des.FormatHex(block)).
			Str("output", des.FormatHex(out)).Msg("block")
		fmt.Fprintln(c.App.Writer, des.FormatHex(out))
		return nil
	}
}
