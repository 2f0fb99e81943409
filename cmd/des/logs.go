package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"des-go/pkg/log"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"
)

// timeFormats are tried in order when parsing absolute time strings.
var timeFormats = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// parseTimeSpec accepts a duration back from now ("1h", "30m") or an
// absolute timestamp.
func parseTimeSpec(spec string, now time.Time) (time.Time, error) {
	if duration, err := time.ParseDuration(spec); err == nil {
		return now.Add(-duration), nil
	}
	for _, layout := range timeFormats {
		if ts, err := time.ParseInLocation(layout, spec, time.Local); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid time specification: '%s'. Use relative duration (e.g., '1h', '30m') or absolute format (e.g., '2023-10-27T15:04:05Z')", spec)
}

const logsCommandHelpTemplate = `NAME:
   {{.HelpName}} - {{.Usage}}

USAGE:
   {{.HelpName}} {{if .UsageText}}{{.UsageText}}{{else}}[command options] argument...{{end}}
{{if .Description}}
DESCRIPTION:
   {{.Description | Indent 4}}
{{end}}
MODES (choose one; defaults to --last if no mode specified):
     --last                 Retrieve the most recent N log entries.
     --since                Retrieve logs since a specific start time up to now.
     --between              Retrieve logs between a specific start and end time.

OPTIONS:
{{range .VisibleFlags}}   {{.}}
{{end}}
TIME SPECIFICATION (<time_spec>):
     1. Relative Duration: "5m" (5 minutes ago), "1h30m" (1 hour 30 minutes ago).
     2. Absolute Timestamp: "2023-10-27T15:04:05Z", "2023-10-27 10:00:00", "2023-10-27".

EXAMPLES:
     des logs -n 50
     des logs --since -s 1h --pretty
     des logs -f /var/lib/des/des.db --between -s "2023-10-20" -e "2023-10-25" --limit 2000

`

var logsCommand = &cli.Command{
	Name:               "logs",
	Usage:              "Retrieve JSON log entries from the log database",
	UsageText:          "des logs [command options] [--last|--since|--between] [mode options]",
	Description:        `Retrieves logs stored in the SQLite database (config 'log_db' or -f/--dbfile).`,
	CustomHelpTemplate: logsCommandHelpTemplate,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "dbfile",
			Aliases: []string{"f"},
			Usage:   "Path to the SQLite log database file `PATH` (default from config)",
		},
		&cli.BoolFlag{
			Name:    "pretty",
			Aliases: []string{"p"},
			Usage:   "Output logs in a human-readable format instead of raw JSON",
		},
		&cli.BoolFlag{
			Name:  "last",
			Usage: "Mode: Retrieve the most recent N log entries (default)",
		},
		&cli.BoolFlag{
			Name:  "since",
			Usage: "Mode: Retrieve logs since a specific start time",
		},
		&cli.BoolFlag{
			Name:  "between",
			Usage: "Mode: Retrieve logs between a specific start and end time",
		},
		&cli.IntFlag{
			Name:    "count",
			Aliases: []string{"n"},
			Usage:   "Number of entries for --last mode `NUMBER`",
			Value:   100,
		},
		&cli.StringFlag{
			Name:    "start",
			Aliases: []string{"s"},
			Usage:   "Start time for --since/--between `TIME_SPEC`",
		},
		&cli.StringFlag{
			Name:    "end",
			Aliases: []string{"e"},
			Usage:   "End time for --between `TIME_SPEC`",
		},
		&cli.IntFlag{
			Name:    "limit",
			Aliases: []string{"l"},
			Usage:   "Max entries for --since/--between `NUMBER`",
			Value:   1000,
		},
	},
	Action: logsCmd,
}

func logsCmd(c *cli.Context) error {
	dbFile := cfg.LogDB
	if c.IsSet("dbfile") {
		dbFile = c.String("dbfile")
	}
	if dbFile == "" {
		return cli.Exit("Error: no log database configured (use -f/--dbfile or config 'log_db').", 1)
	}

	isLast, isSince, isBetween := c.Bool("last"), c.Bool("since"), c.Bool("between")
	modeCount := 0
	for _, m := range []bool{isLast, isSince, isBetween} {
		if m {
			modeCount++
		}
	}
	if modeCount == 0 {
		isLast = true
	} else if modeCount > 1 {
		return cli.Exit("Error: Only one mode flag (--last, --since, --between) can be specified at a time.", 1)
	}

	if err := log.Init(dbFile); err != nil {
		return cli.Exit(fmt.Sprintf("Error opening log database: %v", err), 1)
	}
	defer log.Close()

	now := time.Now()
	var results []log.LogEntry
	var retrievalErr error

	switch {
	case isLast:
		count := c.Int("count")
		if count <= 0 {
			return cli.Exit("Error: --count (-n) must be a positive number.", 1)
		}
		results, retrievalErr = log.GetLastNLogs(count)
	case isSince:
		if !c.IsSet("start") {
			return cli.Exit("Error: --start (-s) flag is required for --since mode.", 1)
		}
		startTime, err := parseTimeSpec(c.String("start"), now)
		if err != nil {
			return cli.Exit(fmt.Sprintf("Error parsing start time: %v", err), 1)
		}
		results, retrievalErr = log.GetLogsSince(startTime, c.Int("limit"))
	case isBetween:
		if !c.IsSet("start") || !c.IsSet("end") {
			return cli.Exit("Error: --start (-s) and --end (-e) are required for --between mode.", 1)
		}
		startTime, err := parseTimeSpec(c.String("start"), now)
		if err != nil {
			return cli.Exit(fmt.Sprintf("Error parsing start time: %v", err), 1)
		}
		endTime, err := parseTimeSpec(c.String("end"), now)
		if err != nil {
			return cli.Exit(fmt.Sprintf("Error parsing end time: %v", err), 1)
		}
		if startTime.After(endTime) {
			fmt.Fprintf(os.Stderr, "Warning: Start time (%s) is after end time (%s).\n", startTime.Format(time.RFC3339), endTime.Format(time.RFC3339))
		}
		results, retrievalErr = log.GetLogsBetween(startTime, endTime, c.Int("limit"))
	}

	if retrievalErr != nil {
		if errors.Is(retrievalErr, log.ErrNotInitialized) {
			return cli.Exit("Internal Error: Logger DB handle became unavailable.", 2)
		}
		return cli.Exit(fmt.Sprintf("Error retrieving logs: %v", retrievalErr), 1)
	}
	if len(results) == 0 {
		fmt.Fprintln(os.Stderr, "No log entries found matching the criteria.")
		return nil
	}

	if c.Bool("pretty") {
		w := zerolog.ConsoleWriter{Out: c.App.Writer, NoColor: true, TimeFormat: time.RFC3339}
		for _, entry := range results {
			if _, err := w.Write([]byte(entry.LogData)); err != nil {
				fmt.Fprintln(c.App.Writer, entry.LogData)
			}
		}
		return nil
	}
	for _, entry := range results {
		fmt.Fprintln(c.App.Writer, entry.LogData)
	}
	return nil
}
