package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/claridad-labs/claridad/internal/adapters/driving/cli"
)

func main() {
	// Load .env if present; environment variables win over the config file.
	_ = godotenv.Load()

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
