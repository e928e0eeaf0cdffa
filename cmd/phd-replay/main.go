// Command phd-replay feeds a recorded APDU trace through a manager and
// prints every decoded measurement.
//
// A trace is a text file with one APDU per line in hex. Blank lines and
// lines starting with '#' are skipped; spaces and colons inside a line are
// ignored. Every APDU is processed as if received from the agent, so the
// trace normally starts with the agent's AARQ.
//
// Usage:
//
//	phd-replay -trace <file> [flags]
//
// Examples:
//
//	# Print measurements as JSON
//	phd-replay -trace thermometer.hex
//
//	# Print as XML and write a protocol log
//	phd-replay -trace thermometer.hex -format xml -protocol-log replay.plog
//
//	# Show the DIM tree built from the trace
//	phd-replay -trace thermometer.hex -dump
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/phd-protocol/phd-go/pkg/log"
	"github.com/phd-protocol/phd-go/pkg/service"
)

func main() {
	fs := flag.NewFlagSet("phd-replay", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `phd-replay - Replay a PHD APDU trace through a manager

Usage:
  phd-replay -trace <file> [flags]

Flags:
`)
		fs.PrintDefaults()
	}

	trace := fs.String("trace", "", "APDU trace file (required)")
	format := fs.String("format", "json", "Output format (json, xml, text)")
	configPath := fs.String("config", "", "Manager config file (YAML)")
	protocolLog := fs.String("protocol-log", "", "Write a protocol log to this file")
	dump := fs.Bool("dump", false, "Print the DIM tree after the replay")
	verbose := fs.Bool("v", false, "Log protocol events to stderr")

	if err := fs.Parse(os.Args[1:]); err != nil {
		os.Exit(1)
	}
	if *trace == "" {
		fmt.Fprintln(os.Stderr, "Error: -trace is required")
		fs.Usage()
		os.Exit(1)
	}

	cfg := service.DefaultManagerConfig()
	if *configPath != "" {
		var err error
		if cfg, err = service.LoadConfig(*configPath); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	var (
		loggers []log.Logger
		fl      *log.FileLogger
	)
	if *protocolLog != "" {
		var err error
		if fl, err = log.NewFileLogger(*protocolLog); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		loggers = append(loggers, fl)
	}
	if *verbose {
		h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})
		loggers = append(loggers, log.NewSlogAdapter(slog.New(h)))
	}
	if len(loggers) > 0 {
		cfg.ProtocolLogger = log.NewMultiLogger(loggers...)
	}

	opts := Options{Format: *format, Dump: *dump}
	runErr := Run(*trace, cfg, opts, os.Stdout, os.Stderr)
	if fl != nil {
		if err := fl.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: protocol log: %v\n", err)
		}
		written, failed := fl.Written()
		fmt.Fprintf(os.Stderr, "protocol log: %d events written to %s", written, *protocolLog)
		if failed > 0 {
			fmt.Fprintf(os.Stderr, ", %d dropped", failed)
		}
		fmt.Fprintln(os.Stderr)
	}
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", runErr)
		os.Exit(1)
	}
}
