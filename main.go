package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/esimov/ascii-particles/config"
	"github.com/esimov/ascii-particles/engine"
	"github.com/esimov/ascii-particles/http"
	"github.com/esimov/ascii-particles/logger"
	particle "github.com/esimov/ascii-particles/particle-system"
	"github.com/esimov/ascii-particles/terminal"
	"github.com/esimov/ascii-particles/websocket"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfgPath := flag.String("c", "config.yaml", "configuration file")
	mode := flag.String("m", "", "run mode: terminal, server")
	addr := flag.String("a", "", "address to serve(host:port)")
	prefix := flag.String("p", "", "prefix path under")
	root := flag.String("r", "", "root path to serve")
	seed := flag.Int64("s", 0, "random seed, 0 picks one from the clock")
	level := flag.String("d", "", "output level: debug, info, warn, error")
	logFile := flag.String("o", "", "log file")
	flag.Parse()

	cfg, err := config.Load(*cfgPath, !isFlagSet("c"))
	if err != nil {
		log.Fatal(err)
	}
	override(&cfg.Mode, *mode)
	override(&cfg.Server.Address, *addr)
	override(&cfg.Server.Prefix, *prefix)
	override(&cfg.Server.Root, *root)
	override(&cfg.Log.Level, *level)
	override(&cfg.Log.File, *logFile)
	if *seed != 0 {
		cfg.Seed = *seed
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	sugar, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatal(err)
	}
	defer sugar.Sync()

	if err := run(cfg, sugar); err != nil {
		sugar.Errorw("exited", "err", err)
		sugar.Sync()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cfg config.Config, log *zap.SugaredLogger) error {
	sim, err := particle.NewSimulation(cfg.Simulation(), particle.NewRand(cfg.Seed))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, ctx := errgroup.WithContext(ctx)

	switch cfg.Mode {
	case config.ModeServer:
		http.InitServer(http.Params{
			Address: cfg.Server.Address,
			Prefix:  cfg.Server.Prefix,
			Root:    cfg.Server.Root,
		})
		hub := websocket.NewHub(cfg.Simulation().Viewport(), log)
		defer hub.Close()
		srv, err := websocket.NewServer(http.GetParams(), hub, log)
		if err != nil {
			return err
		}
		g.Go(func() error {
			return websocket.Serve(ctx, srv)
		})
		g.Go(func() error {
			return engine.New(sim, hub, cfg.FPS, log).Run(ctx)
		})
	default:
		term := terminal.New(cfg.Simulation().Viewport(), log)
		if err := term.Open(); err != nil {
			return fmt.Errorf("opening terminal: %w", err)
		}
		defer term.Close()
		g.Go(func() error {
			err := engine.New(sim, term, cfg.FPS, log).Run(ctx)
			stop()
			return err
		})
	}
	return g.Wait()
}

func override(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func isFlagSet(name string) bool {
	set := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}
