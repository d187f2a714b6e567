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
	"tickerpulse/internal/lexicon"
	"tickerpulse/internal/logger"
	"tickerpulse/internal/simulation"
	"tickerpulse/internal/store"
	"tickerpulse/internal/trace"
)

func main() {
	_ = godotenv.Load()

	configPath := flag.String("config", "config.yaml", "path to config file")
	ticker := flag.String("ticker", "", "ticker symbol to simulate (required)")
	horizon := flag.Int("horizon", 30, "simulation horizon in trading days")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-seeded, overrides config when set)")
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
	if *seed != 0 {
		cfg.Simulator.Seed = *seed
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

	sim := simulation.NewSimulator(cfg, lex, static.NewPrice(), static.NewSocial())

	result, err := sim.Run(ctx, strings.ToUpper(*ticker), *horizon)
	if err != nil {
		fmt.Printf("Simulation failed: %v\n", err)
		os.Exit(1)
	}

	b, _ := json.MarshalIndent(result, "", "  ")
	fmt.Println(string(b))

	fmt.Printf("\nSimulated %s over %d days (bias %.2f):\n", result.Ticker, result.HorizonDays, result.SentimentBias)
	for _, sc := range result.Scenarios {
		fmt.Printf("  %-8s final %.2f  return %+.2f%%  p=%.2f  conf=%.2f\n",
			sc.Scenario, sc.FinalPrice, sc.ExpectedReturnPct, sc.Probability, sc.Confidence)
	}
}

func loadConfig(path string) (*store.Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := store.DefaultConfig()
		return cfg, cfg.Validate()
	}
	return store.LoadConfig(path)
}
