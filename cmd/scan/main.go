package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"tickerpulse/internal/adapters/static"
	"tickerpulse/internal/interfaces"
	"tickerpulse/internal/lexicon"
	"tickerpulse/internal/logger"
	"tickerpulse/internal/signals"
	"tickerpulse/internal/signals/signalsobs"
	"tickerpulse/internal/store"
	"tickerpulse/internal/trace"
	"tickerpulse/internal/types"
)

func main() {
	_ = godotenv.Load()

	configPath := flag.String("config", "config.yaml", "path to config file")
	ticker := flag.String("ticker", "", "ticker symbol to analyze (required)")
	signalFlag := flag.String("signal", "all", "signal type to run, or 'all'")
	currentHours := flag.Int("current-hours", 0, "current window in hours (0 = config default)")
	historicalHours := flag.Int("historical-hours", 0, "historical window in hours (0 = config default)")
	flag.Parse()

	if *ticker == "" {
		fmt.Println("Error: -ticker is required")
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(); err != nil {
		fmt.Printf("Error initializing logger: %v\n", err)
		os.Exit(1)
	}
	if err := trace.Init(); err != nil {
		fmt.Printf("Error initializing tracing: %v\n", err)
		os.Exit(1)
	}
	ctx := context.Background()
	defer func() { _ = trace.Shutdown(ctx) }()

	lex, err := lexicon.NewLexicon(cfg.ExtraKeywords)
	if err != nil {
		fmt.Printf("Error building lexicon: %v\n", err)
		os.Exit(1)
	}

	eng := signalsobs.Wrap(signals.NewEngine(cfg, lex, static.NewSocial(), static.NewLLM()))

	windows := interfaces.WindowParams{
		CurrentHours:    *currentHours,
		HistoricalHours: *historicalHours,
	}

	kinds, err := resolveSignals(*signalFlag)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	exitCode := 0
	for _, kind := range kinds {
		result, err := eng.Run(ctx, kind, strings.ToUpper(*ticker), windows)
		if err != nil {
			fmt.Printf("[%s] run error: %v\n", kind, err)
			exitCode = 1
			continue
		}
		b, _ := json.MarshalIndent(result, "", "  ")
		fmt.Println(string(b))
	}
	os.Exit(exitCode)
}

func loadConfig(path string) (*store.Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := store.DefaultConfig()
		return cfg, cfg.Validate()
	}
	return store.LoadConfig(path)
}

func resolveSignals(flagValue string) ([]types.SignalType, error) {
	if flagValue == "all" {
		return types.AllSignalTypes, nil
	}
	kind := types.SignalType(flagValue)
	for _, st := range types.AllSignalTypes {
		if st == kind {
			return []types.SignalType{kind}, nil
		}
	}
	return nil, fmt.Errorf("unknown signal type %q", flagValue)
}
