// cmd/romdump/main.go
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/retroenv/retrogolib/log"

	"github.com/tamzrod/rom-dumper/internal/board"
	"github.com/tamzrod/rom-dumper/internal/config"
	"github.com/tamzrod/rom-dumper/internal/dumper"
	"github.com/tamzrod/rom-dumper/internal/sink"
)

type optionFlags struct {
	config string
	ports  bool
	debug  bool
	quiet  bool
	exit   bool
}

func main() {
	opts := readArguments()
	logger := config.CreateLogger(opts.debug, opts.quiet)

	if opts.ports {
		if err := listPorts(); err != nil {
			logger.Fatal(err.Error())
		}
		return
	}

	// --------------------
	// Load + validate config
	// --------------------

	cfg := config.Default()
	if opts.config != "" {
		var err error
		if cfg, err = config.Load(opts.config); err != nil {
			logger.Fatal("Config load failed", log.Err(err))
		}
	}

	if err := config.Validate(cfg); err != nil {
		logger.Fatal("Config validation failed", log.Err(err))
	}
	config.Normalize(cfg)

	// The dump owns stdout; keep the log to errors unless asked.
	if cfg.Output.Kind == config.OutputStdout && !opts.debug {
		logger = config.CreateLogger(false, true)
	}

	// --------------------
	// Wire lines + sink
	// --------------------

	lines, closeLines, err := board.Build(cfg)
	if err != nil {
		logger.Fatal("Line setup failed", log.String("driver", cfg.Driver.Kind), log.Err(err))
	}
	defer closeLines()

	out, closeOut, err := sink.Open(cfg.Output)
	if err != nil {
		logger.Fatal("Output setup failed", log.String("output", cfg.Output.Kind), log.Err(err))
	}
	defer closeOut()

	ctl, err := dumper.New(cfg.Dumper(), lines, out, logger)
	if err != nil {
		logger.Fatal("Scan setup failed", log.Err(err))
	}

	// --------------------
	// Scan once
	// --------------------

	if err := ctl.Run(); err != nil {
		snap := ctl.Snapshot()
		logger.Error("Scan aborted",
			log.Hex("address", snap.Address),
			log.Int("groups", snap.Groups),
			log.Err(err))
		_ = closeOut()
		_ = closeLines()
		os.Exit(1)
	}

	if opts.exit {
		return
	}

	// --------------------
	// Done: hold the lines until reset (no second pass)
	// --------------------
	logger.Info("Holding until reset; interrupt to exit")
	for {
		time.Sleep(time.Hour)
	}
}

func readArguments() optionFlags {
	flags := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	options := optionFlags{}

	flags.StringVar(&options.config, "config", "", "YAML profile to use instead of the built-in one")
	flags.BoolVar(&options.ports, "ports", false, "list serial ports and exit")
	flags.BoolVar(&options.debug, "debug", false, "log every emitted line")
	flags.BoolVar(&options.quiet, "q", false, "log errors only")
	flags.BoolVar(&options.exit, "exit", false, "exit after the scan instead of holding until reset")

	if err := flags.Parse(os.Args[1:]); err != nil || flags.NArg() != 0 {
		fmt.Printf("usage: romdump [options]\n\n")
		flags.PrintDefaults()
		os.Exit(1)
	}
	return options
}

func listPorts() error {
	ports, err := sink.Ports()
	if err != nil {
		return err
	}
	if len(ports) == 0 {
		fmt.Println("no serial ports found")
		return nil
	}
	for _, p := range ports {
		if p.USB {
			fmt.Printf("%s\tusb %s:%s serial=%s %s\n", p.Name, p.VID, p.PID, p.Serial, p.Product)
		} else {
			fmt.Println(p.Name)
		}
	}
	return nil
}
