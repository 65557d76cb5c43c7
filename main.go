package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/clipfetch/clipfetch/internal"
	"github.com/joho/godotenv"
)

// main is the entry point to the program. Configuration is sourced
// from an optional YAML file (via -config) layered with the process
// environment, with a .env file loaded first if one is present.
func main() {
	configPath := flag.String("config", "", "path to a YAML configuration file (optional)")
	flag.Parse()

	godotenv.Load()

	config := internal.ClipfetchConfig{}
	var err error
	if *configPath != "" {
		err = config.LoadFromFile(*configPath)
	} else {
		err = config.LoadFromEnv()
	}
	if err != nil {
		log.Panicf("Failed to load configuration - %v\n", err.Error())
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := internal.New(config).Run(ctx); err != nil {
		log.Panicf("Failed to run Clipfetch - %v\n", err.Error())
	}
}
