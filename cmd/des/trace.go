package main

import (
	"context"
	"fmt"
	"os"

	"des-go/pkg/des"
	"des-go/pkg/log"
	"des-go/pkg/roundviz"
	"des-go/pkg/transcript"
	"des-go/pkg/transform"

	"github.com/urfave/cli/v2"
)

var traceFlags = []cli.Flag{
	&cli.BoolFlag{
		Name:    "decrypt",
		Aliases: []string{"d"},
		Usage:   "Trace decryption instead of encryption",
	},
	&cli.IntFlag{
		Name:    "group",
		Aliases: []string{"g"},
		Usage:   "Bits per group in binary output `N` (0 disables grouping, default from config)",
		Value:   -1,
	},
}

var (
	traceCommand = &cli.Command{
		Name:      "trace",
		Usage:     "prints every intermediate register of one block operation",
		UsageText: "des trace [--decrypt] [--group N] [--save FILE] BLOCK\n   des trace --load FILE",
		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:  "save",
				Usage: "Also store the transcript in `FILE` (compressed per config)",
			},
			&cli.StringFlag{
				Name:  "load",
				Usage: "Print a transcript previously stored with --save from `FILE`",
			},
		}, traceFlags...),
		Action: traceCmd,
	}
	graphCommand = &cli.Command{
		Name:      "graph",
		Usage:     "draws the Feistel rounds of one block operation",
		UsageText: "des graph [--decrypt] [--svg --out FILE] BLOCK",
		Flags: append([]cli.Flag{
			&cli.BoolFlag{
				Name:  "svg",
				Usage: "Render SVG instead of printing DOT",
			},
			&cli.StringFlag{
				Name:    "out",
				Aliases: []string{"o"},
				Usage:   "Write output to `FILE` instead of stdout",
			},
		}, traceFlags...),
		Action: graphCmd,
	}
)

func traceGroup(c *cli.Context) int {
	if g := c.Int("group"); g >= 0 {
		return g
	}
	return cfg.TraceGroup
}

func processor() (*transform.PayloadProcessor, error) {
	proc, err := transform.NewProcessorByName(cfg.TranscriptCompression)
	if err != nil {
		return nil, cli.Exit(fmt.Sprintf("Error: %v", err), 1)
	}
	return proc, nil
}

func recordFromArgs(c *cli.Context) (*transcript.Transcript, error) {
	key, err := masterKey()
	if err != nil {
		return nil, err
	}
	block, err := blockArg(c)
	if err != nil {
		return nil, err
	}
	dir := des.Encrypt
	if c.Bool("decrypt") {
		dir = des.Decrypt
	}
	return transcript.Record(key, block, dir)
}

func traceCmd(c *cli.Context) error {
	proc, err := processor()
	if err != nil {
		return err
	}

	var t *transcript.Transcript
	if path := c.String("load"); path != "" {
		if t, err = transcript.Load(path, proc); err != nil {
			return cli.Exit(fmt.Sprintf("Error: %v", err), 1)
		}
	} else if t, err = recordFromArgs(c); err != nil {
		return err
	}

	text, err := t.Text(traceGroup(c))
	if err != nil {
		return cli.Exit(fmt.Sprintf("Error: %v", err), 1)
	}
	fmt.Fprint(c.App.Writer, text)

	if path := c.String("save"); path != "" {
		if err := transcript.Save(path, t, proc); err != nil {
			return cli.Exit(fmt.Sprintf("Error: %v", err), 1)
		}
		log.Info().Str("path", path).Str("compression", cfg.TranscriptCompression).Msg("transcript saved")
	}
	return nil
}

func graphCmd(c *cli.Context) error {
	t, err := recordFromArgs(c)
	if err != nil {
		return err
	}
	var out []byte
	if c.Bool("svg") {
		out, err = roundviz.SVG(context.Background(), t, traceGroup(c))
	} else {
		var dot string
		dot, err = roundviz.DOT(t, traceGroup(c))
		out = []byte(dot)
	}
	if err != nil {
		return cli.Exit(fmt.Sprintf("Error: %v", err), 1)
	}
	if path := c.String("out"); path != "" {
		if err := os.WriteFile(path, out, 0644); err != nil {
			return cli.Exit(fmt.Sprintf("Error: %v", err), 1)
		}
		return nil
	}
	_, err = c.App.Writer.Write(out)
	return err
}
