package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/danmuck/commsbind/internal/config"
	"github.com/danmuck/commsbind/internal/logging"
)

func main() {
	configPath := flag.String("config", "", "path to a framectl config (toml or yaml)")
	initTemplate := flag.String("init-template", "", "write a config template to this path and exit")
	kind := flag.String("kind", "toml", "template kind: toml|yaml")
	force := flag.Bool("force", false, "overwrite an existing template")
	frameName := flag.String("frame", "", "qualified frame name, overrides config")
	format := flag.String("format", "", "input format hex|binary, overrides config")
	chunk := flag.Int("chunk", -1, "octets fed per decode call, overrides config")
	resync := flag.Bool("resync", false, "skip one octet and continue after a bad frame")
	list := flag.Bool("list", false, "list known frames and messages and exit")
	metrics := flag.Bool("metrics", false, "print frame counters after decoding")
	flag.Parse()

	logging.ConfigureRuntime()

	if *initTemplate != "" {
		if err := config.WriteTemplate(*initTemplate, *kind, *force); err != nil {
			fatal(err)
		}
		log.Info().Str("path", *initTemplate).Str("kind", *kind).Msg("wrote config template")
		return
	}

	cfg := config.DefaultToolConfig()
	if *configPath != "" {
		loaded, err := config.LoadToolConfig(*configPath)
		if err != nil {
			fatal(err)
		}
		cfg = loaded
	}
	cfg = cfg.WithOverrides(*frameName, *format, *chunk)
	if err := config.ValidateToolConfig(cfg); err != nil {
		fatal(err)
	}
	if !logging.SetLevel(cfg.LogLevel) {
		log.Warn().Str("level", cfg.LogLevel).Msg("unknown log level ignored")
	}

	opts := options{
		cfg:     cfg,
		input:   flag.Arg(0),
		resync:  *resync,
		metrics: *metrics,
		list:    *list,
	}
	if err := run(opts, os.Stdin, os.Stdout); err != nil {
		fatal(err)
	}
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "framectl: %v\n", err)
	os.Exit(1)
}
