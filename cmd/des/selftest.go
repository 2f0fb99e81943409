package main

import (
	"fmt"

	"des-go/pkg/des"
	"des-go/pkg/log"

	"github.com/urfave/cli/v2"
)

var selftestCommand = &cli.Command{
	Name:   "selftest",
	Usage:  "checks the engine against published test vectors",
	Action: selftestCmd,
}

func selftestCmd(c *cli.Context) error {
	for _, v := range des.KnownAnswers {
		fmt.Fprintf(c.App.Writer, "key %016x  plain %016x  cipher %016x\n", v.Key, v.Plaintext, v.Ciphertext)
	}
	if err := des.SelfTest(); err != nil {
		log.Error().Err(err).Msg("self test failed")
		return cli.Exit(fmt.Sprintf("FAIL: %v", err), 1)
	}
	log.Info().Int("vectors", len(des.KnownAnswers)).Msg("self test passed")
	fmt.Fprintf(c.App.Writer, "OK: %d vectors\n", len(des.KnownAnswers))
	return nil
}
