// Package main mints an admin API token for the configured server key.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/beadfanatic/server/internal/auth"
	"github.com/beadfanatic/server/internal/config"
)

func main() {
	subject := flag.String("subject", "admin", "Token subject")

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	key, err := auth.LoadOrGenerateKey(cfg.TokenKeyPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load token key: %v\n", err)
		os.Exit(1)
	}

	tokens, err := auth.NewTokenService(key, cfg.Auth.TokenDuration)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create token service: %v\n", err)
		os.Exit(1)
	}

	token, err := tokens.Mint(*subject)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to mint token: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Admin token for %q (valid %s):\n%s\n", *subject, tokens.Duration(), token)
}
