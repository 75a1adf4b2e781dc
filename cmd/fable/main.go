// Fable is a deterministic, data-driven engine for text adventures.
// Usage: fable [flags] <game_directory>
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"

	"github.com/cfirth/fable/cli"
	"github.com/cfirth/fable/config"
	"github.com/cfirth/fable/debug"
	"github.com/cfirth/fable/engine"
	"github.com/cfirth/fable/engine/parser"
	"github.com/cfirth/fable/engine/save"
	"github.com/cfirth/fable/loader"
	"github.com/cfirth/fable/observability"
	"github.com/cfirth/fable/tui"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	var (
		showVersion = flag.Bool("version", false, "print version and exit")
		plain       = flag.Bool("plain", false, "use the plain line-mode frontend instead of the TUI")
		scriptFile  = flag.String("script", "", "play back commands from a script file")
		configPath  = flag.String("config", "fable.yaml", "path to the config file")
		seed        = flag.Int64("seed", 0, "RNG seed (0 = random)")
		debugFlag   = flag.Bool("debug", false, "write debug log")
		saveDir     = flag.String("save-dir", "", "override save directory")
		parserName  = flag.String("parser", "", "parser backend: keyword or llm")
	)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: fable [flags] <game_directory>\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if *showVersion {
		fmt.Printf("fable %s (commit %s, built %s)\n", version, commit, date)
		return
	}

	gameDir := flag.Arg(0)
	if gameDir == "" {
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fatal("Error loading config: %v", err)
	}

	// Flags win over the config file.
	if *seed != 0 {
		cfg.Seed = *seed
	}
	if *debugFlag {
		cfg.Debug = true
	}
	if *saveDir != "" {
		cfg.SaveDir = *saveDir
	}
	if *parserName != "" {
		cfg.Parser = *parserName
	}
	if cfg.Seed == 0 {
		cfg.Seed = rand.Int63()
	}

	w, err := loader.Load(gameDir)
	if err != nil {
		fatal("Error loading game: %v", err)
	}

	ctx := context.Background()

	var store save.Store
	switch cfg.SaveBackend {
	case "sqlite":
		st, err := save.NewSQLiteStore(cfg.SaveDB)
		if err != nil {
			fatal("Error opening save database: %v", err)
		}
		defer st.Close()
		store = st
	default:
		st, err := save.NewFileStore(cfg.SaveDir)
		if err != nil {
			fatal("Error creating save directory: %v", err)
		}
		store = st
	}

	var p parser.Parser
	if cfg.Parser == "llm" {
		llm, err := parser.NewLLM(ctx, cfg.APIKey, cfg.Model)
		if err != nil {
			fatal("Error starting LLM parser: %v", err)
		}
		defer llm.Close()
		p = llm
	} else {
		p = parser.NewKeyword()
	}

	tp, err := observability.Init(ctx, observability.Config{
		ServiceName:    "fable",
		ServiceVersion: version,
		Endpoint:       cfg.Tracing.Endpoint,
		Enabled:        cfg.Tracing.Enabled,
	})
	if err != nil {
		fatal("Error starting tracing: %v", err)
	}
	defer tp.Shutdown(ctx)

	eng := engine.New(w, engine.Options{
		Parser: p,
		Store:  store,
		Seed:   cfg.Seed,
		Log:    debug.NewLogger(cfg.Debug, cfg.DebugLog),
		Tracer: tp.Tracer("fable"),
	})

	// Script mode: open file, force plain, echo commands.
	if *scriptFile != "" {
		f, err := os.Open(*scriptFile)
		if err != nil {
			fatal("Error opening script: %v", err)
		}
		defer f.Close()
		c := cli.New(eng)
		c.In = f
		c.EchoInput = true
		c.Run()
		return
	}

	// Use the plain CLI if --plain or stdout is not a terminal.
	if *plain || !isTerminal() {
		cli.New(eng).Run()
		return
	}

	if err := tui.Run(eng); err != nil {
		fatal("Error: %v", err)
	}
}

func fatal(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

// isTerminal returns true if stdout is a terminal (not piped/redirected).
func isTerminal() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
