package main

import (
	"fmt"
	"os"

	"jotter/internal/client"
	"jotter/internal/config"
	"jotter/internal/tui"
)

func main() {
	cfg := config.Load()

	c := client.New(cfg.ServerURL)
	if err := tui.Run(c); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
